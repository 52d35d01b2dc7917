/*
account.go - Monetary account owned by a customer

PURPOSE:
  A single balance cell with deposit, debit and transfer operations.

INVARIANT:
  Balance >= 0 at all times. Any operation that would violate this is
  rejected and leaves the balance unchanged.

FAILURE MODES:
  Deposit:  reports false for non-positive amounts (no error type; the
            caller simply did nothing).
  Debit:    ErrInvalidAmount for non-positive amounts,
            *InsufficientFundsError when the amount exceeds the balance.
            The latter is the one recoverable condition callers must be
            able to catch (e.g. to keep a sale open on finalize).
  Transfer: all-or-nothing at single-goroutine granularity; a failed
            debit means no deposit happens.
*/
package ledger

// Account holds a customer's balance. Created with balance zero when
// the customer is registered; mutated only through its methods.
type Account struct {
	number  int
	balance Money
}

// NewAccount creates an account with the given number and zero balance.
func NewAccount(number int) *Account {
	return &Account{number: number, balance: ZeroMoney()}
}

func (a *Account) Number() int    { return a.number }
func (a *Account) Balance() Money { return a.balance }

// Deposit increases the balance by amount. Returns false, with no
// mutation, unless amount is strictly positive.
func (a *Account) Deposit(amount Money) bool {
	if !amount.IsPositive() {
		return false
	}
	a.balance = a.balance.Add(amount)
	return true
}

// Debit decreases the balance by amount. Fails with ErrInvalidAmount
// for non-positive amounts and with *InsufficientFundsError when the
// amount exceeds the current balance.
func (a *Account) Debit(amount Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(a.balance) {
		return &InsufficientFundsError{
			AccountNumber: a.number,
			Available:     a.balance,
			Requested:     amount,
		}
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

// Transfer debits this account and deposits into dest. If the debit
// fails, no deposit occurs.
func (a *Account) Transfer(dest *Account, amount Money) error {
	if err := a.Debit(amount); err != nil {
		return err
	}
	dest.Deposit(amount)
	return nil
}
