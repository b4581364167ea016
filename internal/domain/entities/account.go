package entities

import (
	"fmt"

	"github.com/fincore/bankd/internal/models/errs"
	"github.com/shopspring/decimal"
)

type AccountKind string

const (
	Checking AccountKind = "CHECKING"
	Savings  AccountKind = "SAVINGS"
)

type AccountID int64

// Account is a closed tagged variant: shared fields plus the payload of
// exactly one kind. Operations dispatch on Kind, there is no third variant.
type Account struct {
	// Assigned by the bank, monotonically increasing, never reused.
	ID AccountID
	// Document of the owning client. Non-owning back-reference: the client
	// holds the account, the account only knows the lookup key.
	OwnerDocument string
	Kind          AccountKind
	Balance       decimal.Decimal
	Movements     []Movement

	// Checking payload: the largest amount a single withdrawal or
	// outgoing transfer may move.
	Limit decimal.Decimal

	// Savings payload: lifetime cap on withdrawals and outgoing transfers,
	// how many of them already happened, and the flat monthly rate.
	OperationLimit int
	OperationsUsed int
	MonthlyRate    decimal.Decimal
}

func NewCheckingAccount(balance, limit decimal.Decimal) *Account {
	return &Account{
		Kind:    Checking,
		Balance: balance,
		Limit:   limit,
	}
}

func NewSavingsAccount(balance, monthlyRate decimal.Decimal, operationLimit int) *Account {
	return &Account{
		Kind:           Savings,
		Balance:        balance,
		MonthlyRate:    monthlyRate,
		OperationLimit: operationLimit,
	}
}

// Withdraw removes amount from the balance and records a withdrawal
// movement. A savings withdrawal consumes one operation of the allowance.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if err := a.debitAllowed(amount); err != nil {
		return err
	}

	a.Balance = a.Balance.Sub(amount)
	a.countDebit()
	a.record(MovementWithdrawal, amount,
		fmt.Sprintf("withdrawal from %s account %d", a.kindLabel(), a.ID))

	return nil
}

// Deposit adds amount to the balance. Deposits never consume a savings
// operation and are not bounded by the checking limit.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: must be greater than zero", errs.ErrInvalidAmount)
	}

	a.Balance = a.Balance.Add(amount)
	a.record(MovementDeposit, amount,
		fmt.Sprintf("deposit to %s account %d", a.kindLabel(), a.ID))

	return nil
}

// TransferTo moves amount from a to the recipient. All checks run against
// the sender before either balance is touched, so a failure never leaves
// any account mutated. The recipient's movement is recorded before the
// sender's; each log is independent, the order is kept for parity with
// existing log consumers.
func (a *Account) TransferTo(to *Account, amount decimal.Decimal) error {
	if err := a.debitAllowed(amount); err != nil {
		return err
	}

	a.Balance = a.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)
	a.countDebit()

	detail := fmt.Sprintf("transfer from account %d to account %d", a.ID, to.ID)
	to.record(MovementTransferIn, amount, detail)
	a.record(MovementTransferOut, amount, detail)

	return nil
}

// ApplyInterest credits one month of interest at the account's rate and
// records it. It consumes no operation allowance and cannot fail; a
// checking account is left untouched.
func (a *Account) ApplyInterest() {
	if a.Kind != Savings {
		return
	}

	earned := a.MonthlyRate.Mul(a.Balance)
	a.Balance = a.Balance.Add(earned)
	a.record(MovementInterest, earned,
		fmt.Sprintf("monthly interest on savings account %d", a.ID))
}

// debitAllowed validates a withdrawal or outgoing transfer without
// mutating anything. Check order differs per kind and is part of the
// contract: savings rejects on an exhausted allowance before even looking
// at the amount; checking validates the amount before its limit.
func (a *Account) debitAllowed(amount decimal.Decimal) error {
	if a.Kind == Savings && a.OperationsUsed >= a.OperationLimit {
		return fmt.Errorf("%w: savings account %d spent all %d operations",
			errs.ErrLimitExceeded, a.ID, a.OperationLimit)
	}

	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: must be greater than zero", errs.ErrInvalidAmount)
	}

	if a.Kind == Checking && amount.GreaterThan(a.Limit) {
		return fmt.Errorf("%w: exceeds the account limit of %s", errs.ErrInvalidAmount, a.Limit)
	}

	if a.Balance.LessThan(amount) {
		return fmt.Errorf("%w: requested %s, available %s", errs.ErrInsufficientBalance, amount, a.Balance)
	}

	return nil
}

func (a *Account) countDebit() {
	if a.Kind == Savings {
		a.OperationsUsed++
	}
}

func (a *Account) record(kind MovementKind, amount decimal.Decimal, detail string) {
	a.Movements = append(a.Movements, newMovement(kind, amount, detail, a.Balance))
}

func (a *Account) kindLabel() string {
	if a.Kind == Savings {
		return "savings"
	}
	return "checking"
}

func (a *Account) String() string {
	switch a.Kind {
	case Savings:
		return fmt.Sprintf("savings account{id: %d, owner: %s, balance: %s, rate: %s, operations: %d/%d}",
			a.ID, a.OwnerDocument, a.Balance, a.MonthlyRate, a.OperationsUsed, a.OperationLimit)
	default:
		return fmt.Sprintf("checking account{id: %d, owner: %s, balance: %s, limit: %s}",
			a.ID, a.OwnerDocument, a.Balance, a.Limit)
	}
}
