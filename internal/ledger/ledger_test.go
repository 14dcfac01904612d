package ledger

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestBalance_FoldsSignedPostings(t *testing.T) {
	postings := []Posting{
		Credit(AccountWallet, d("1000")),
		Debit(AccountWallet, d("250.50")),
		Credit(AccountWallet, d("500")),
		Debit(AccountWallet, d("100")),
		Credit(AccountSavings, d("300")),
	}

	assert.True(t, WalletBalance(postings).Equal(d("1149.50")))
	assert.True(t, SavingsBalance(postings).Equal(d("300")))
}

func TestBalance_IgnoresOtherAccounts(t *testing.T) {
	postings := []Posting{
		Credit(AccountSavings, d("100")),
		Debit(AccountSavings, d("40")),
	}

	assert.True(t, WalletBalance(postings).IsZero())
	assert.True(t, SavingsBalance(postings).Equal(d("60")))
}

func TestBalance_OrderIndependent(t *testing.T) {
	postings := []Posting{
		Credit(AccountWallet, d("1000")),
		Debit(AccountWallet, d("333.33")),
		Credit(AccountWallet, d("0.01")),
		Debit(AccountWallet, d("12.99")),
		Credit(AccountWallet, d("87.50")),
	}

	want := WalletBalance(postings)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]Posting, len(postings))
		copy(shuffled, postings)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.True(t, WalletBalance(shuffled).Equal(want))
	}
}

func TestBalance_LendScenario(t *testing.T) {
	// Wallet of 5000, lend 1000 out, then receive 400 back
	postings := []Posting{
		Credit(AccountWallet, d("5000")),
		Debit(AccountWallet, d("1000")),
	}
	assert.True(t, WalletBalance(postings).Equal(d("4000")))

	postings = append(postings, Credit(AccountWallet, d("400")))
	assert.True(t, WalletBalance(postings).Equal(d("4400")))
}

func TestBalance_EmptyIsZero(t *testing.T) {
	assert.True(t, WalletBalance(nil).IsZero())
}

func TestDebit_Negates(t *testing.T) {
	p := Debit(AccountWallet, d("10"))
	assert.True(t, p.Amount.Equal(d("-10")))
}

func TestQuantize_TwoDecimalPlaces(t *testing.T) {
	assert.Equal(t, "10.13", Quantize(d("10.125")).StringFixed(2))
	assert.Equal(t, "10.12", Quantize(d("10.124")).StringFixed(2))
	assert.Equal(t, "10.00", Quantize(d("10")).StringFixed(2))
}

func TestAccount_Valid(t *testing.T) {
	assert.True(t, AccountWallet.Valid())
	assert.True(t, AccountSavings.Valid())
	assert.False(t, Account("checking").Valid())
	assert.False(t, Account("").Valid())
}
