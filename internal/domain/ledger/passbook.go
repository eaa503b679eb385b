package ledger

// Passbook is the assembled statement of one account
type Passbook struct {
	Entries []LedgerEntry
	Summary Summary
}

// BuildPassbook runs the whole projection: normalize both sources, code the
// vouchers, assemble the running balance and total it. It is a pure function
// of its inputs.
func BuildPassbook(challans []ProductionChallan, vouchers []PaymentVoucher, seq *Sequencer) Passbook {
	production := NormalizeChallans(challans)
	payments := NormalizeVouchers(vouchers, seq.Assign(vouchers))

	all := make([]Transaction, 0, len(production)+len(payments))
	all = append(all, production...)
	all = append(all, payments...)

	return Passbook{
		Entries: Assemble(production, payments),
		Summary: Summarize(all),
	}
}
