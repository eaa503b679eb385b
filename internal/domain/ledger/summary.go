package ledger

import "github.com/shopspring/decimal"

// Summary holds the totals of a ledger
type Summary struct {
	TotalCredit decimal.Decimal
	TotalDebit  decimal.Decimal
	Balance     decimal.Decimal
}

// Summarize totals credits and debits. Balance equals the final running
// balance Assemble produces for the same transactions.
func Summarize(transactions []Transaction) Summary {
	credit, debit := decimal.Zero, decimal.Zero
	for _, tx := range transactions {
		credit = credit.Add(tx.Credit)
		debit = debit.Add(tx.Debit)
	}
	return Summary{
		TotalCredit: credit,
		TotalDebit:  debit,
		Balance:     credit.Sub(debit),
	}
}
