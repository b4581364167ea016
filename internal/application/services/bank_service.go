package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fincore/bankd/internal/application/interfaces"
	"github.com/fincore/bankd/internal/application/params"
	"github.com/fincore/bankd/internal/domain/entities"
	"github.com/fincore/bankd/internal/models/errs"
	"github.com/fincore/bankd/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// BankService is the aggregate root: it owns the client collection, hands
// out account ids and routes every operation to the right client and
// account. One exclusive lock serializes all state changes, so a transfer
// is never observed half-applied.
type BankService struct {
	mu            sync.Mutex
	clients       []*entities.Client
	nextAccountID entities.AccountID
	accountCount  int

	validate *validator.Validate
	logger   logger.Logger
}

func NewBankService(logger logger.Logger) (*BankService, error) {
	if logger == nil {
		return nil, errors.New("nil dependency: logger")
	}

	validate := validator.New()
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, fmt.Errorf("register validation: %w", err)
	}

	return &BankService{validate: validate, logger: logger}, nil
}

var _ interfaces.BankService = (*BankService)(nil)

// AddClient validates and appends a new client. The duplicate check runs
// first; documents compare case-insensitively bank-wide.
func (s *BankService) AddClient(ctx context.Context, client *entities.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.clients {
		if strings.EqualFold(c.Document, client.Document) {
			return &errs.AlreadyExistsError{FieldName: "document", Value: client.Document}
		}
	}

	if err := s.validateClient(client); err != nil {
		return err
	}

	s.clients = append(s.clients, client)
	// A client may arrive with accounts already attached; fold them into
	// the running total.
	s.accountCount += len(client.Accounts)

	s.logger.With(ctx, "document", client.Document, "kind", client.Kind).
		Infof("client %s added", client.Name)

	return nil
}

func (s *BankService) FindClient(ctx context.Context, document string) (*entities.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findClient(document)
}

func (s *BankService) RemoveClient(ctx context.Context, document string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.clients {
		if strings.EqualFold(c.Document, document) {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			// The client's accounts leave with it.
			s.accountCount -= len(c.Accounts)
			s.logger.With(ctx, "document", c.Document).Infof("client %s removed", c.Name)
			return nil
		}
	}

	return fmt.Errorf("%w: no client with document %q", errs.ErrClientNotFound, document)
}

// AddAccount resolves the owner, validates the account, then assigns the
// next sequential id and hands the account to the client. The id counter
// only moves on success.
func (s *BankService) AddAccount(ctx context.Context, document string, account *entities.Account) (*entities.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := s.findClient(document)
	if err != nil {
		return nil, err
	}

	account.OwnerDocument = client.Document
	if err := validateAccount(account); err != nil {
		return nil, err
	}

	s.nextAccountID++
	s.accountCount++
	account.ID = s.nextAccountID
	client.AddAccount(account)

	s.logger.With(ctx, "account", account.ID, "document", client.Document).
		Infof("%s account opened with balance %s", strings.ToLower(string(account.Kind)), account.Balance)

	return account, nil
}

// FindAccount scans every client's accounts for the given id.
func (s *BankService) FindAccount(ctx context.Context, id entities.AccountID) (*entities.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findAccount(id)
}

// RemoveAccount resolves both the owning client and the account; the
// account must exist globally and belong to that client.
func (s *BankService) RemoveAccount(ctx context.Context, document string, id entities.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := s.findClient(document)
	if err != nil {
		return err
	}
	account, err := s.findAccount(id)
	if err != nil {
		return err
	}

	if err := client.RemoveAccount(account.ID); err != nil {
		return err
	}
	s.accountCount--

	s.logger.With(ctx, "account", id, "document", client.Document).Infof("account removed")

	return nil
}

func (s *BankService) Withdraw(ctx context.Context, p *params.Withdraw) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.clientAccount(p.Document, p.AccountID)
	if err != nil {
		return err
	}

	if err := account.Withdraw(p.Amount); err != nil {
		s.logger.With(ctx, "account", account.ID).Debugf("withdrawal rejected: %v", err)
		return err
	}

	s.logger.With(ctx, "account", account.ID).Infof("withdrew %s", p.Amount)

	return nil
}

func (s *BankService) Deposit(ctx context.Context, p *params.Deposit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.clientAccount(p.Document, p.AccountID)
	if err != nil {
		return err
	}

	if err := account.Deposit(p.Amount); err != nil {
		s.logger.With(ctx, "account", account.ID).Debugf("deposit rejected: %v", err)
		return err
	}

	s.logger.With(ctx, "account", account.ID).Infof("deposited %s", p.Amount)

	return nil
}

// Transfer resolves the sender and recipient pairs independently, then
// delegates to the sender account.
func (s *BankService) Transfer(ctx context.Context, p *params.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sender, err := s.clientAccount(p.FromDocument, p.FromAccountID)
	if err != nil {
		return err
	}
	recipient, err := s.clientAccount(p.ToDocument, p.ToAccountID)
	if err != nil {
		return err
	}

	if err := sender.TransferTo(recipient, p.Amount); err != nil {
		s.logger.With(ctx, "from", sender.ID, "to", recipient.ID).
			Debugf("transfer rejected: %v", err)
		return err
	}

	s.logger.With(ctx, "from", sender.ID, "to", recipient.ID).
		Infof("transferred %s", p.Amount)

	return nil
}

// ApplyInterest sweeps every savings account of every client and reports
// how many were credited. Checking accounts are skipped; the sweep never
// fails.
func (s *BankService) ApplyInterest(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	swept := 0
	for _, client := range s.clients {
		for _, account := range client.Accounts {
			if account.Kind != entities.Savings {
				continue
			}
			account.ApplyInterest()
			swept++
		}
	}

	s.logger.With(ctx, "accounts", swept).Infof("monthly interest applied")

	return swept
}

func (s *BankService) ListClients(ctx context.Context) []*entities.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entities.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

func (s *BankService) ListAccounts(ctx context.Context, document string) ([]*entities.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := s.findClient(document)
	if err != nil {
		return nil, err
	}

	out := make([]*entities.Account, len(client.Accounts))
	copy(out, client.Accounts)
	return out, nil
}

// ListAllAccounts returns every account of every client, in client order.
func (s *BankService) ListAllAccounts(ctx context.Context) []*entities.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entities.Account, 0, s.accountCount)
	for _, c := range s.clients {
		out = append(out, c.Accounts...)
	}
	return out
}

func (s *BankService) ListMovements(ctx context.Context, document string, id entities.AccountID) ([]entities.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.clientAccount(document, id)
	if err != nil {
		return nil, err
	}

	out := make([]entities.Movement, len(account.Movements))
	copy(out, account.Movements)
	return out, nil
}

func (s *BankService) ClientCount(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *BankService) AccountCount(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountCount
}

// findClient matches the document case-insensitively. Callers must hold
// the lock.
func (s *BankService) findClient(document string) (*entities.Client, error) {
	for _, c := range s.clients {
		if strings.EqualFold(c.Document, document) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: no client with document %q", errs.ErrClientNotFound, document)
}

func (s *BankService) findAccount(id entities.AccountID) (*entities.Account, error) {
	for _, c := range s.clients {
		for _, a := range c.Accounts {
			if a.ID == id {
				return a, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: no account with id %d", errs.ErrAccountNotFound, id)
}

// clientAccount resolves the client first, then the account within that
// client's own collection.
func (s *BankService) clientAccount(document string, id entities.AccountID) (*entities.Account, error) {
	client, err := s.findClient(document)
	if err != nil {
		return nil, err
	}
	return client.FindAccount(id)
}

func (s *BankService) validateClient(client *entities.Client) error {
	err := s.validate.Struct(client)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s is required", errs.ErrInvalidInput, strings.ToLower(verrs[0].Field()))
	}

	return fmt.Errorf("%w: %v", errs.ErrInvalidInput, err)
}

func validateAccount(a *entities.Account) error {
	if a.OwnerDocument == "" {
		return fmt.Errorf("%w: account owner must be set", errs.ErrInvalidInput)
	}
	if a.Balance.Sign() < 0 {
		return fmt.Errorf("%w: initial balance cannot be negative", errs.ErrInvalidInput)
	}

	switch a.Kind {
	case entities.Savings:
		if a.MonthlyRate.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: monthly rate must be greater than zero", errs.ErrInvalidInput)
		}
		if a.OperationLimit < 0 {
			return fmt.Errorf("%w: operation limit cannot be negative", errs.ErrInvalidInput)
		}
	case entities.Checking:
		if a.Limit.Sign() < 0 {
			return fmt.Errorf("%w: limit cannot be negative", errs.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown account kind %q", errs.ErrInvalidInput, a.Kind)
	}

	return nil
}
