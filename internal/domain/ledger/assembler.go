package ledger

import (
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// Assemble merges production and voucher transactions into a running-balance
// ledger, newest entry first.
//
// Transactions are sorted by date with a stable sort, so on the same date
// production entries stay ahead of vouchers and each stream keeps its own
// order. The balance of every entry is the sum of credit minus debit over
// all entries up to and including it in date order.
func Assemble(production, vouchers []Transaction) []LedgerEntry {
	all := make([]Transaction, 0, len(production)+len(vouchers))
	all = append(all, production...)
	all = append(all, vouchers...)

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date.Before(all[j].Date)
	})

	entries := make([]LedgerEntry, len(all))
	balance := decimal.Zero
	for i, tx := range all {
		balance = balance.Add(tx.Net())
		entries[i] = LedgerEntry{Transaction: tx, Balance: balance}
	}

	slices.Reverse(entries)
	return entries
}
