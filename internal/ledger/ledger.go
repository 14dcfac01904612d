package ledger

import (
	"github.com/shopspring/decimal"
)

// Account identifies which balance a posting affects.
type Account string

const (
	AccountWallet  Account = "wallet"
	AccountSavings Account = "savings"
)

// Valid reports whether the account is one of the known accounts.
func (a Account) Valid() bool {
	return a == AccountWallet || a == AccountSavings
}

// Posting is a single signed contribution to an account balance.
// Balances are never stored: every balance in the system is the fold of
// the postings derived from persisted transaction rows.
type Posting struct {
	Account Account
	Amount  decimal.Decimal
}

// Credit returns a posting that increases the account balance.
func Credit(account Account, amount decimal.Decimal) Posting {
	return Posting{Account: account, Amount: amount}
}

// Debit returns a posting that decreases the account balance.
func Debit(account Account, amount decimal.Decimal) Posting {
	return Posting{Account: account, Amount: amount.Neg()}
}

// Balance folds the postings for one account. The fold is commutative:
// the result does not depend on the order of the postings.
func Balance(account Account, postings []Posting) decimal.Decimal {
	total := decimal.Zero
	for _, p := range postings {
		if p.Account == account {
			total = total.Add(p.Amount)
		}
	}
	return Quantize(total)
}

// WalletBalance folds the wallet postings.
func WalletBalance(postings []Posting) decimal.Decimal {
	return Balance(AccountWallet, postings)
}

// SavingsBalance folds the savings postings.
func SavingsBalance(postings []Posting) decimal.Decimal {
	return Balance(AccountSavings, postings)
}

// Quantize rounds a currency amount to two decimal places, half up.
func Quantize(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
