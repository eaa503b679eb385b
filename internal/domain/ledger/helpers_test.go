package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var testAccountID = uuid.MustParse("6f1c2d34-5b6a-4c7d-8e9f-0a1b2c3d4e5f")

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func challan(date time.Time, ref string, qty int64, spec string) ProductionChallan {
	c := ProductionChallan{
		AccountID: testAccountID,
		Date:      date,
		Reference: ref,
		Quantity:  decimal.NewFromInt(qty),
	}
	c.ID = uuid.New()
	if spec != "" {
		c.QualitySpec = []byte(spec)
	}
	return c
}

func voucher(id int64, date time.Time, vt VoucherType, amount int64) PaymentVoucher {
	return PaymentVoucher{
		ID:        id,
		AccountID: testAccountID,
		Date:      date,
		Purpose:   "Payment",
		Type:      vt,
		Amount:    decimal.NewFromInt(amount),
	}
}
