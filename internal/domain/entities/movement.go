package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MovementKind string

const (
	MovementWithdrawal  MovementKind = "WITHDRAWAL"
	MovementDeposit     MovementKind = "DEPOSIT"
	MovementTransferOut MovementKind = "TRANSFER_OUT"
	MovementTransferIn  MovementKind = "TRANSFER_IN"
	MovementInterest    MovementKind = "INTEREST"
)

// Movement is one balance-affecting event on an account. Records are
// append-only: once written they are never reordered, mutated or deleted.
type Movement struct {
	ID           uuid.UUID
	Kind         MovementKind
	Amount       decimal.Decimal
	ProcessedAt  time.Time
	Detail       string
	BalanceAfter decimal.Decimal
}

func newMovement(kind MovementKind, amount decimal.Decimal, detail string, balanceAfter decimal.Decimal) Movement {
	return Movement{
		ID:           uuid.New(),
		Kind:         kind,
		Amount:       amount,
		ProcessedAt:  time.Now(),
		Detail:       detail,
		BalanceAfter: balanceAfter,
	}
}

func (m Movement) String() string {
	return fmt.Sprintf("[%s] %s of %s (%s :: balance %s)",
		m.ProcessedAt.Format("2006-01-02 15:04:05"), m.Kind, m.Amount, m.Detail, m.BalanceAfter)
}
