package ledger

import (
	"fmt"
	"sort"
	"time"
)

// TieBreak decides the order of vouchers that share the same date
type TieBreak string

const (
	// TieBreakFetchOrder keeps same-date vouchers in the order they were fetched
	TieBreakFetchOrder TieBreak = "fetch_order"
	// TieBreakVoucherID orders same-date vouchers by ascending voucher ID
	TieBreakVoucherID TieBreak = "voucher_id"
)

// ParseTieBreak returns the tie-break policy named by s, defaulting to fetch order
func ParseTieBreak(s string) TieBreak {
	if TieBreak(s) == TieBreakVoucherID {
		return TieBreakVoucherID
	}
	return TieBreakFetchOrder
}

// Sequencer assigns VCH-{C|D}-{YYYYMM}{NNN} reference codes.
//
// Credit and Debit vouchers each draw from one counter that runs across all
// months; it never resets when the month changes. The YYYYMM part is the
// voucher's own month. Codes already handed out depend on this numbering,
// so it must stay a global sequence.
type Sequencer struct {
	tieBreak TieBreak
}

// NewSequencer creates a sequencer with the given tie-break policy
func NewSequencer(tieBreak TieBreak) *Sequencer {
	return &Sequencer{tieBreak: ParseTieBreak(string(tieBreak))}
}

// TieBreak returns the policy in use
func (s *Sequencer) TieBreak() TieBreak {
	return s.tieBreak
}

// Assign returns one code per voucher, aligned with the input slice.
// The input is not reordered.
func (s *Sequencer) Assign(vouchers []PaymentVoucher) []string {
	order := s.Order(vouchers)

	codes := make([]string, len(vouchers))
	var credits, debits int
	for _, idx := range order {
		v := &vouchers[idx]
		var ordinal int
		if v.IsCredit() {
			credits++
			ordinal = credits
		} else {
			debits++
			ordinal = debits
		}
		codes[idx] = FormatVoucherCode(v.Type, v.Date, ordinal)
	}
	return codes
}

// Order returns the indexes of vouchers in sequencing order: date ascending,
// ties resolved by the tie-break policy. When the ID policy is selected but
// any voucher has no ID, ties fall back to input order.
func (s *Sequencer) Order(vouchers []PaymentVoucher) []int {
	order := make([]int, len(vouchers))
	for i := range order {
		order[i] = i
	}

	byID := s.tieBreak == TieBreakVoucherID && allIdentified(vouchers)
	sort.SliceStable(order, func(a, b int) bool {
		va, vb := &vouchers[order[a]], &vouchers[order[b]]
		if !va.Date.Equal(vb.Date) {
			return va.Date.Before(vb.Date)
		}
		if byID {
			return va.ID < vb.ID
		}
		return false
	})
	return order
}

func allIdentified(vouchers []PaymentVoucher) bool {
	for i := range vouchers {
		if vouchers[i].ID == 0 {
			return false
		}
	}
	return true
}

// FormatVoucherCode renders a voucher code. Ordinals are zero-padded to three
// digits and widen past 999.
func FormatVoucherCode(t VoucherType, date time.Time, ordinal int) string {
	return fmt.Sprintf("VCH-%s-%s%03d", t.Code(), date.Format("200601"), ordinal)
}

// SequencedVoucher pairs a voucher with its assigned code
type SequencedVoucher struct {
	PaymentVoucher
	Code string
}

// Sequence returns vouchers with their codes in sequencing order
func (s *Sequencer) Sequence(vouchers []PaymentVoucher) []SequencedVoucher {
	codes := s.Assign(vouchers)
	out := make([]SequencedVoucher, 0, len(vouchers))
	for _, idx := range s.Order(vouchers) {
		out = append(out, SequencedVoucher{PaymentVoucher: vouchers[idx], Code: codes[idx]})
	}
	return out
}
