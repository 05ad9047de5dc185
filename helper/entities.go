package helper

import "gmseer/model"

// GetOrCreateAccount returns the batch's instance of the account, creating a zeroed one
// on first reference. A created account is tracked but not dirty.
func GetOrCreateAccount(c *EntityCache, id string) *model.Account {
	if acc, ok := c.Account(id); ok {
		return acc
	}
	acc := model.NewAccount(id)
	c.Track(acc)
	return acc
}

func GetOrCreateBalance(c *EntityCache, account *model.Account, currency model.Currency) *model.AccountBalance {
	if balance, ok := c.Balance(model.BalanceID(account.ID, currency)); ok {
		balance.Account = account
		return balance
	}
	balance := model.NewAccountBalance(account, currency)
	c.Track(balance)
	return balance
}
