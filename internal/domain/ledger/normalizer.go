package ledger

import "github.com/shopspring/decimal"

// DetailProduction labels transactions derived from production challans
const DetailProduction = "Production"

// NormalizeChallans maps each challan to a credit transaction of quantity × rate
func NormalizeChallans(challans []ProductionChallan) []Transaction {
	txs := make([]Transaction, 0, len(challans))
	for i := range challans {
		c := &challans[i]
		txs = append(txs, Transaction{
			Date:   c.Date,
			Detail: DetailProduction,
			Remark: c.Reference,
			Credit: c.CreditAmount(),
			Debit:  decimal.Zero,
			Source: SourceProduction,
		})
	}
	return txs
}

// NormalizeVouchers maps each voucher to a transaction. codes must be
// aligned with vouchers, as returned by Sequencer.Assign; a missing code
// leaves the remark empty.
func NormalizeVouchers(vouchers []PaymentVoucher, codes []string) []Transaction {
	txs := make([]Transaction, 0, len(vouchers))
	for i := range vouchers {
		v := &vouchers[i]
		tx := Transaction{
			Date:   v.Date,
			Detail: v.Purpose,
			Credit: decimal.Zero,
			Debit:  decimal.Zero,
			Source: SourceVoucher,
		}
		if i < len(codes) {
			tx.Remark = codes[i]
		}
		if v.IsCredit() {
			tx.Credit = v.Amount
		} else {
			tx.Debit = v.Amount
		}
		txs = append(txs, tx)
	}
	return txs
}
