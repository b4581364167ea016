package services

import (
	"context"
	"testing"

	"github.com/fincore/bankd/internal/application/params"
	"github.com/fincore/bankd/internal/domain/entities"
	"github.com/fincore/bankd/internal/models/errs"
	"github.com/fincore/bankd/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestBank(t *testing.T) *BankService {
	t.Helper()
	bank, err := NewBankService(logger.NewNop())
	require.NoError(t, err)
	return bank
}

func TestAddClientValidation(t *testing.T) {
	tests := []struct {
		name    string
		client  *entities.Client
		wantErr bool
	}{
		{
			name:   "valid individual",
			client: entities.NewIndividual("Bob", "bob@example.com", "111", "555-0000"),
		},
		{
			name:   "valid organization",
			client: entities.NewOrganization("Acme", "acme@example.com", "222", "Acme Ltda"),
		},
		{
			name:    "blank name",
			client:  entities.NewIndividual("", "bob@example.com", "333", "555-0000"),
			wantErr: true,
		},
		{
			name:    "blank email",
			client:  entities.NewIndividual("Bob", "", "333", "555-0000"),
			wantErr: true,
		},
		{
			name:    "blank document",
			client:  entities.NewIndividual("Bob", "bob@example.com", "", "555-0000"),
			wantErr: true,
		},
		{
			name:    "individual without phone",
			client:  entities.NewIndividual("Bob", "bob@example.com", "333", ""),
			wantErr: true,
		},
		{
			name:    "organization without legal name",
			client:  entities.NewOrganization("Acme", "acme@example.com", "333", ""),
			wantErr: true,
		},
		{
			name:    "whitespace-only name",
			client:  entities.NewIndividual("   ", "bob@example.com", "333", "555-0000"),
			wantErr: true,
		},
		{
			name:    "whitespace-only phone",
			client:  entities.NewIndividual("Bob", "bob@example.com", "333", "   "),
			wantErr: true,
		},
		{
			name:    "whitespace-only legal name",
			client:  entities.NewOrganization("Acme", "acme@example.com", "333", "   "),
			wantErr: true,
		},
	}

	ctx := context.Background()
	bank := newTestBank(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bank.AddClient(ctx, tt.client)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAddClientDuplicateDocument(t *testing.T) {
	ctx := context.Background()
	bank := newTestBank(t)

	require.NoError(t, bank.AddClient(ctx, entities.NewIndividual("Bob", "bob@example.com", "AbC-1", "555")))

	// Case-insensitive match on the document.
	err := bank.AddClient(ctx, entities.NewOrganization("Acme", "acme@example.com", "aBc-1", "Acme Ltda"))
	require.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.Equal(t, 1, bank.ClientCount(ctx), "a rejected client must not be appended")
}

func TestAddAccount(t *testing.T) {
	ctx := context.Background()
	bank := newTestBank(t)

	require.NoError(t, bank.AddClient(ctx, entities.NewIndividual("Bob", "bob@example.com", "111", "555")))
	require.NoError(t, bank.AddClient(ctx, entities.NewOrganization("Acme", "acme@example.com", "222", "Acme Ltda")))

	_, err := bank.AddAccount(ctx, "999", entities.NewCheckingAccount(dec("0"), dec("10")))
	require.ErrorIs(t, err, errs.ErrClientNotFound)

	first, err := bank.AddAccount(ctx, "111", entities.NewCheckingAccount(dec("100"), dec("50")))
	require.NoError(t, err)
	second, err := bank.AddAccount(ctx, "222", entities.NewSavingsAccount(dec("10"), dec("0.05"), 3))
	require.NoError(t, err)

	// Ids are sequential across clients, starting at 1.
	assert.Equal(t, entities.AccountID(1), first.ID)
	assert.Equal(t, entities.AccountID(2), second.ID)
	assert.Equal(t, "111", first.OwnerDocument)
	assert.Equal(t, 2, bank.AccountCount(ctx))

	found, err := bank.FindAccount(ctx, 2)
	require.NoError(t, err)
	assert.Same(t, second, found)
}

func TestAddAccountValidation(t *testing.T) {
	tests := []struct {
		name    string
		account *entities.Account
	}{
		{
			name:    "negative initial balance",
			account: entities.NewCheckingAccount(dec("-1"), dec("10")),
		},
		{
			name:    "negative checking limit",
			account: entities.NewCheckingAccount(dec("0"), dec("-10")),
		},
		{
			name:    "zero monthly rate",
			account: entities.NewSavingsAccount(dec("0"), dec("0"), 3),
		},
		{
			name:    "negative monthly rate",
			account: entities.NewSavingsAccount(dec("0"), dec("-0.05"), 3),
		},
		{
			name:    "negative operation limit",
			account: entities.NewSavingsAccount(dec("0"), dec("0.05"), -1),
		},
	}

	ctx := context.Background()
	bank := newTestBank(t)
	require.NoError(t, bank.AddClient(ctx, entities.NewIndividual("Bob", "bob@example.com", "111", "555")))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bank.AddAccount(ctx, "111", tt.account)
			require.ErrorIs(t, err, errs.ErrInvalidInput)
		})
	}

	assert.Equal(t, 0, bank.AccountCount(ctx), "rejected accounts must not be counted")

	kept, err := bank.AddAccount(ctx, "111", entities.NewCheckingAccount(dec("0"), dec("10")))
	require.NoError(t, err)
	assert.Equal(t, entities.AccountID(1), kept.ID, "rejected accounts must not consume ids")
}

func TestWithdrawRouting(t *testing.T) {
	ctx := context.Background()
	bank := newTestBank(t)

	require.NoError(t, bank.AddClient(ctx, entities.NewIndividual("Bob", "bob@example.com", "111", "555")))
	require.NoError(t, bank.AddClient(ctx, entities.NewIndividual("Eve", "eve@example.com", "222", "556")))
	account, err := bank.AddAccount(ctx, "111", entities.NewCheckingAccount(dec("100"), dec("50")))
	require.NoError(t, err)

	err = bank.Withdraw(ctx, params.NewWithdraw("999", account.ID, dec("10")))
	require.ErrorIs(t, err, errs.ErrClientNotFound)

	err = bank.Withdraw(ctx, params.NewWithdraw("111", 99, dec("10")))
	require.ErrorIs(t, err, errs.ErrAccountNotFound)

	// The account must belong to the resolved client.
	err = bank.Withdraw(ctx, params.NewWithdraw("222", account.ID, dec("10")))
	require.ErrorIs(t, err, errs.ErrAccountNotFound)

	assert.Equal(t, "100", account.Balance.String())
}

func TestWithdrawDepositArithmetic(t *testing.T) {
	ctx := context.Background()
	bank := newTestBank(t)

	require.NoError(t, bank.AddClient(ctx, entities.NewIndividual("Bob", "bob@example.com", "111", "555")))
	account, err := bank.AddAccount(ctx, "111", entities.NewCheckingAccount(dec("100"), dec("50")))
	require.NoError(t, err)

	err = bank.Withdraw(ctx, params.NewWithdraw("111", account.ID, dec("60")))
	require.ErrorIs(t, err, errs.ErrInvalidAmount)

	require.NoError(t, bank.Withdraw(ctx, params.NewWithdraw("111", account.ID, dec("50"))))
	assert.Equal(t, "50", account.Balance.String())

	require.NoError(t, bank.Deposit(ctx, params.NewDeposit("111", account.ID, dec("25"))))
	assert.Equal(t, "75", account.Balance.String())

	movements, err := bank.ListMovements(ctx, "111", account.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, entities.MovementWithdrawal, movements[0].Kind)
	assert.Equal(t, entities.MovementDeposit, movements[1].Kind)
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	bank := newTestBank(t)

	require.NoError(t, bank.AddClient(ctx, entities.NewIndividual("Bob", "bob@example.com", "111", "555")))
	require.NoError(t, bank.AddClient(ctx, entities.NewOrganization("Acme", "acme@example.com", "222", "Acme Ltda")))
	from, err := bank.AddAccount(ctx, "111", entities.NewCheckingAccount(dec("100"), dec("50")))
	require.NoError(t, err)
	to, err := bank.AddAccount(ctx, "222", entities.NewSavingsAccount(dec("10"), dec("0.05"), 3))
	require.NoError(t, err)

	err = bank.Transfer(ctx, params.NewTransfer("111", "999", from.ID, to.ID, dec("30")))
	require.ErrorIs(t, err, errs.ErrClientNotFound)

	err = bank.Transfer(ctx, params.NewTransfer("111", "222", from.ID, 99, dec("30")))
	require.ErrorIs(t, err, errs.ErrAccountNotFound)

	require.NoError(t, bank.Transfer(ctx, params.NewTransfer("111", "222", from.ID, to.ID, dec("30"))))

	assert.Equal(t, "70", from.Balance.String())
	assert.Equal(t, "40", to.Balance.String())

	outMovs, err := bank.ListMovements(ctx, "111", from.ID)
	require.NoError(t, err)
	require.Len(t, outMovs, 1)
	assert.Equal(t, entities.MovementTransferOut, outMovs[0].Kind)
	assert.Equal(t, "70", outMovs[0].BalanceAfter.String())

	inMovs, err := bank.ListMovements(ctx, "222", to.ID)
	require.NoError(t, err)
	require.Len(t, inMovs, 1)
	assert.Equal(t, entities.MovementTransferIn, inMovs[0].Kind)
	assert.Equal(t, "40", inMovs[0].BalanceAfter.String())
}

func TestApplyInterestSweep(t *testing.T) {
	ctx := context.Background()
	bank := newTestBank(t)

	require.NoError(t, bank.AddClient(ctx, entities.NewIndividual("Bob", "bob@example.com", "111", "555")))
	require.NoError(t, bank.AddClient(ctx, entities.NewOrganization("Acme", "acme@example.com", "222", "Acme Ltda")))

	checking, err := bank.AddAccount(ctx, "111", entities.NewCheckingAccount(dec("100"), dec("50")))
	require.NoError(t, err)
	first, err := bank.AddAccount(ctx, "111", entities.NewSavingsAccount(dec("100"), dec("0.1"), 3))
	require.NoError(t, err)
	second, err := bank.AddAccount(ctx, "222", entities.NewSavingsAccount(dec("200"), dec("0.05"), 3))
	require.NoError(t, err)

	swept := bank.ApplyInterest(ctx)

	assert.Equal(t, 2, swept)
	assert.Equal(t, "100", checking.Balance.String())
	assert.Equal(t, "110", first.Balance.String())
	assert.Equal(t, "210", second.Balance.String())
}

func TestRemoveClient(t *testing.T) {
	ctx := context.Background()
	bank := newTestBank(t)

	require.NoError(t, bank.AddClient(ctx, entities.NewIndividual("Bob", "bob@example.com", "111", "555")))
	_, err := bank.AddAccount(ctx, "111", entities.NewCheckingAccount(dec("0"), dec("10")))
	require.NoError(t, err)

	err = bank.RemoveClient(ctx, "999")
	require.ErrorIs(t, err, errs.ErrClientNotFound)

	require.NoError(t, bank.RemoveClient(ctx, "111"))
	assert.Equal(t, 0, bank.ClientCount(ctx))
	assert.Equal(t, 0, bank.AccountCount(ctx), "accounts leave with their client")
}

func TestRemoveAccount(t *testing.T) {
	ctx := context.Background()
	bank := newTestBank(t)

	require.NoError(t, bank.AddClient(ctx, entities.NewIndividual("Bob", "bob@example.com", "111", "555")))
	require.NoError(t, bank.AddClient(ctx, entities.NewIndividual("Eve", "eve@example.com", "222", "556")))
	account, err := bank.AddAccount(ctx, "111", entities.NewCheckingAccount(dec("0"), dec("10")))
	require.NoError(t, err)

	err = bank.RemoveAccount(ctx, "999", account.ID)
	require.ErrorIs(t, err, errs.ErrClientNotFound)

	err = bank.RemoveAccount(ctx, "111", 99)
	require.ErrorIs(t, err, errs.ErrAccountNotFound)

	// Resolvable account owned by a different client.
	err = bank.RemoveAccount(ctx, "222", account.ID)
	require.ErrorIs(t, err, errs.ErrAccountNotFound)
	assert.Equal(t, 1, bank.AccountCount(ctx))

	require.NoError(t, bank.RemoveAccount(ctx, "111", account.ID))
	assert.Equal(t, 0, bank.AccountCount(ctx))

	_, err = bank.FindAccount(ctx, account.ID)
	require.ErrorIs(t, err, errs.ErrAccountNotFound)
}

func TestListClients(t *testing.T) {
	ctx := context.Background()
	bank := newTestBank(t)

	assert.Empty(t, bank.ListClients(ctx))

	require.NoError(t, bank.AddClient(ctx, entities.NewIndividual("Bob", "bob@example.com", "111", "555")))
	require.NoError(t, bank.AddClient(ctx, entities.NewOrganization("Acme", "acme@example.com", "222", "Acme Ltda")))

	clients := bank.ListClients(ctx)
	require.Len(t, clients, 2)
	assert.Equal(t, "Bob", clients[0].Name)
	assert.Equal(t, "Acme", clients[1].Name)
}

func TestListAllAccounts(t *testing.T) {
	ctx := context.Background()
	bank := newTestBank(t)

	assert.Empty(t, bank.ListAllAccounts(ctx))

	require.NoError(t, bank.AddClient(ctx, entities.NewIndividual("Bob", "bob@example.com", "111", "555")))
	require.NoError(t, bank.AddClient(ctx, entities.NewOrganization("Acme", "acme@example.com", "222", "Acme Ltda")))

	first, err := bank.AddAccount(ctx, "111", entities.NewCheckingAccount(dec("100"), dec("50")))
	require.NoError(t, err)
	second, err := bank.AddAccount(ctx, "222", entities.NewSavingsAccount(dec("10"), dec("0.05"), 3))
	require.NoError(t, err)
	third, err := bank.AddAccount(ctx, "111", entities.NewSavingsAccount(dec("20"), dec("0.05"), 3))
	require.NoError(t, err)

	accounts := bank.ListAllAccounts(ctx)
	require.Len(t, accounts, 3)
	// Client order, then insertion order within a client.
	assert.Same(t, first, accounts[0])
	assert.Same(t, third, accounts[1])
	assert.Same(t, second, accounts[2])
}
