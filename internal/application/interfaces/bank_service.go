package interfaces

import (
	"context"

	"github.com/fincore/bankd/internal/application/params"
	"github.com/fincore/bankd/internal/domain/entities"
)

// BankService represents all service actions.
type BankService interface {
	AddClient(context.Context, *entities.Client) error
	FindClient(ctx context.Context, document string) (*entities.Client, error)
	RemoveClient(ctx context.Context, document string) error

	AddAccount(ctx context.Context, document string, account *entities.Account) (*entities.Account, error)
	FindAccount(context.Context, entities.AccountID) (*entities.Account, error)
	RemoveAccount(ctx context.Context, document string, id entities.AccountID) error

	Withdraw(context.Context, *params.Withdraw) error
	Deposit(context.Context, *params.Deposit) error
	Transfer(context.Context, *params.Transfer) error
	ApplyInterest(context.Context) int

	ListClients(context.Context) []*entities.Client
	ListAccounts(ctx context.Context, document string) ([]*entities.Account, error)
	ListAllAccounts(context.Context) []*entities.Account
	ListMovements(ctx context.Context, document string, id entities.AccountID) ([]entities.Movement, error)

	ClientCount(context.Context) int
	AccountCount(context.Context) int
}
