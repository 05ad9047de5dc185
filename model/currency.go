package model

import "strings"

type Currency string

const (
	FREN Currency = "FREN"
	GM   Currency = "GM"
	GN   Currency = "GN"
)

var Currencies = []Currency{FREN, GM, GN}

// ParseCurrency maps a decoded currency tag to a known currency, ignoring case.
func ParseCurrency(tag string) (Currency, bool) {
	switch Currency(strings.ToUpper(strings.TrimSpace(tag))) {
	case FREN:
		return FREN, true
	case GM:
		return GM, true
	case GN:
		return GN, true
	}
	return "", false
}

func (c Currency) String() string { return string(c) }
