package model

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/autonity/autonity/common/math"
)

// Amount decodes a non-negative quantity given as a JSON number, a decimal string or a
// 0x-prefixed hex string. null decodes to nil.
type Amount struct {
	v *big.Int
}

func (a *Amount) UnmarshalJSON(input []byte) error {
	s := strings.Trim(strings.TrimSpace(string(input)), `"`)
	if s == "null" {
		a.v = nil
		return nil
	}
	if s == "" {
		return fmt.Errorf("empty amount")
	}
	v, ok := math.ParseBig256(s)
	if !ok {
		return fmt.Errorf("invalid amount %q", s)
	}
	if v.Sign() < 0 {
		return fmt.Errorf("negative amount %q", s)
	}
	a.v = v
	return nil
}

func (a *Amount) MarshalJSON() ([]byte, error) {
	if a == nil || a.v == nil {
		return []byte("null"), nil
	}
	return []byte(`"` + a.v.String() + `"`), nil
}

// Big returns a copy of the value, or nil if unset.
func (a *Amount) Big() *big.Int {
	if a == nil || a.v == nil {
		return nil
	}
	return new(big.Int).Set(a.v)
}

// OrZero is Big with nil mapped to zero.
func (a *Amount) OrZero() *big.Int {
	if v := a.Big(); v != nil {
		return v
	}
	return new(big.Int)
}

func NewAmount(v *big.Int) *Amount {
	if v == nil {
		return &Amount{}
	}
	return &Amount{v: new(big.Int).Set(v)}
}
