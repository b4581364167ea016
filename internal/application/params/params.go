package params

import (
	"github.com/fincore/bankd/internal/domain/entities"
	"github.com/shopspring/decimal"
)

type Withdraw struct {
	Document  string
	AccountID entities.AccountID
	Amount    decimal.Decimal
}

func NewWithdraw(document string, id entities.AccountID, amount decimal.Decimal) *Withdraw {
	return &Withdraw{Document: document, AccountID: id, Amount: amount}
}

type Deposit struct {
	Document  string
	AccountID entities.AccountID
	Amount    decimal.Decimal
}

func NewDeposit(document string, id entities.AccountID, amount decimal.Decimal) *Deposit {
	return &Deposit{Document: document, AccountID: id, Amount: amount}
}

type Transfer struct {
	FromDocument  string
	ToDocument    string
	FromAccountID entities.AccountID
	ToAccountID   entities.AccountID
	Amount        decimal.Decimal
}

func NewTransfer(fromDoc, toDoc string, fromID, toID entities.AccountID, amount decimal.Decimal) *Transfer {
	return &Transfer{
		FromDocument:  fromDoc,
		ToDocument:    toDoc,
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
	}
}
