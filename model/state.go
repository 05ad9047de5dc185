package model

import "math/big"

// NativeAccountData is the balance part of System.Account.
type NativeAccountData struct {
	Free       *big.Int
	Reserved   *big.Int
	MiscFrozen *big.Int
	FeeFrozen  *big.Int
}

// TokenAccountData is a Tokens.Accounts entry for one currency.
type TokenAccountData struct {
	Free     *big.Int
	Reserved *big.Int
	Frozen   *big.Int
}

type IdentityRecord struct {
	Display  *string
	Discord  *string
	Twitter  *string
	Verified bool
}
