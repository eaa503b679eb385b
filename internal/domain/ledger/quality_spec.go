package ledger

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// SpecShape tags the JSON shape a quality specification was stored in
type SpecShape int

const (
	SpecMissing SpecShape = iota
	SpecList
	SpecObject
	SpecMalformed
)

func (s SpecShape) String() string {
	switch s {
	case SpecMissing:
		return "missing"
	case SpecList:
		return "list"
	case SpecObject:
		return "object"
	default:
		return "malformed"
	}
}

// QualityRate is one entry of a quality specification
type QualityRate struct {
	QualityName string
	Rate        decimal.Decimal
}

// QualitySpec is the parsed form of a challan's quality specification blob.
// Only the list shape carries rates; every other shape resolves to no rates.
type QualitySpec struct {
	Shape SpecShape
	Rates []QualityRate
}

// FirstRate returns the rate of the first entry, or zero when there is none
func (q QualitySpec) FirstRate() decimal.Decimal {
	if len(q.Rates) == 0 {
		return decimal.Zero
	}
	return q.Rates[0].Rate
}

type qualityEntry struct {
	QualityName *string         `json:"qualityName"`
	Quality     *string         `json:"quality"`
	Name        *string         `json:"name"`
	Rate        json.RawMessage `json:"rate"`
}

func (e qualityEntry) name() string {
	for _, s := range []*string{e.QualityName, e.Quality, e.Name} {
		if s != nil {
			return *s
		}
	}
	return ""
}

// ParseQualitySpec decodes a raw quality specification. It never fails:
// anything it cannot read yields a spec without rates, so the challan's
// rate falls back to zero.
//
// A JSON string is treated as an encoded document and decoded once more.
func ParseQualitySpec(raw []byte) QualitySpec {
	return parseQualitySpec(raw, true)
}

func parseQualitySpec(raw []byte, unwrapString bool) QualitySpec {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return QualitySpec{Shape: SpecMissing}
	}

	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return QualitySpec{Shape: SpecMalformed}
		}
		rates := make([]QualityRate, 0, len(items))
		for _, item := range items {
			rates = append(rates, parseQualityEntry(item))
		}
		return QualitySpec{Shape: SpecList, Rates: rates}
	case '{':
		if !json.Valid(raw) {
			return QualitySpec{Shape: SpecMalformed}
		}
		return QualitySpec{Shape: SpecObject}
	case '"':
		if !unwrapString {
			return QualitySpec{Shape: SpecMalformed}
		}
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return QualitySpec{Shape: SpecMalformed}
		}
		return parseQualitySpec([]byte(inner), false)
	default:
		return QualitySpec{Shape: SpecMalformed}
	}
}

func parseQualityEntry(raw json.RawMessage) QualityRate {
	var entry qualityEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return QualityRate{Rate: decimal.Zero}
	}
	return QualityRate{
		QualityName: entry.name(),
		Rate:        parseRate(entry.Rate),
	}
}

// parseRate accepts a JSON number or a numeric string. Negative or
// non-numeric values resolve to zero.
func parseRate(raw json.RawMessage) decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero
		}
		text = strings.TrimSpace(text)
	}

	rate, err := decimal.NewFromString(text)
	if err != nil || rate.IsNegative() {
		return decimal.Zero
	}
	return rate
}
