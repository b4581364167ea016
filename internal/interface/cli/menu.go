// Package cli implements the interactive text menu. It is deliberately
// thin glue: it prompts, parses raw input into typed fields, calls the
// bank service and renders results or failures, looping until exit.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fincore/bankd/internal/application/interfaces"
	"github.com/fincore/bankd/internal/application/params"
	"github.com/fincore/bankd/internal/domain/entities"
	"github.com/fincore/bankd/internal/models/errs"
	"github.com/fincore/bankd/pkg/logger"
	"github.com/shopspring/decimal"
)

type Menu struct {
	service interfaces.BankService
	in      *bufio.Scanner
	out     io.Writer
	logger  logger.Logger
}

func NewMenu(service interfaces.BankService, in io.Reader, out io.Writer, logger logger.Logger) (*Menu, error) {
	if service == nil {
		return nil, errors.New("nil dependency: bank service")
	}
	if in == nil || out == nil {
		return nil, errors.New("nil dependency: input/output stream")
	}
	return &Menu{
		service: service,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger,
	}, nil
}

// Run loops over the menu until the exit option, the end of the input
// stream or context cancellation. Every failure is rendered as a message
// and the loop resumes; no failure is fatal.
func (m *Menu) Run(ctx context.Context) error {
	fmt.Fprintln(m.out, "===== bankd =====")

	for {
		if ctx.Err() != nil {
			return nil
		}

		m.printOptions()

		choice, err := m.readInt("Choose an option: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			m.render(err)
			continue
		}

		var actionErr error
		switch choice {
		case 1:
			actionErr = m.addClient(ctx)
		case 2:
			actionErr = m.addAccount(ctx)
		case 3:
			actionErr = m.listings(ctx)
		case 4:
			actionErr = m.withdraw(ctx)
		case 5:
			actionErr = m.deposit(ctx)
		case 6:
			actionErr = m.transfer(ctx)
		case 7:
			swept := m.service.ApplyInterest(ctx)
			fmt.Fprintf(m.out, "Interest applied to %d savings accounts >>>\n", swept)
		case 8:
			actionErr = m.removeClient(ctx)
		case 9:
			actionErr = m.removeAccount(ctx)
		case 0:
			fmt.Fprintln(m.out, "Shutting down...")
			return nil
		default:
			actionErr = fmt.Errorf("%w: unknown option %d", errs.ErrInvalidInput, choice)
		}

		if actionErr != nil {
			if errors.Is(actionErr, io.EOF) {
				return nil
			}
			m.render(actionErr)
		}
		fmt.Fprintln(m.out, "=================")
	}
}

func (m *Menu) printOptions() {
	fmt.Fprintln(m.out, "\n=== Operations ===")
	fmt.Fprintln(m.out, "1. Add client")
	fmt.Fprintln(m.out, "2. Add account")
	fmt.Fprintln(m.out, "3. List clients, accounts or movements")
	fmt.Fprintln(m.out, "4. Withdraw")
	fmt.Fprintln(m.out, "5. Deposit")
	fmt.Fprintln(m.out, "6. Transfer")
	fmt.Fprintln(m.out, "7. Apply interest")
	fmt.Fprintln(m.out, "8. Remove client")
	fmt.Fprintln(m.out, "9. Remove account")
	fmt.Fprintln(m.out, "0. Exit")
	fmt.Fprintln(m.out, "=================")
}

func (m *Menu) addClient(ctx context.Context) error {
	fmt.Fprintln(m.out, "Adding client >>>")

	kind, err := m.readInt("Client kind (1 - individual | 2 - organization): ")
	if err != nil {
		return err
	}
	name, err := m.readLine("Name: ")
	if err != nil {
		return err
	}
	email, err := m.readLine("Email: ")
	if err != nil {
		return err
	}

	var client *entities.Client
	switch kind {
	case 1:
		document, err := m.readLine("Document (tax id): ")
		if err != nil {
			return err
		}
		phone, err := m.readLine("Phone: ")
		if err != nil {
			return err
		}
		client = entities.NewIndividual(name, email, document, phone)
	case 2:
		document, err := m.readLine("Document (registration id): ")
		if err != nil {
			return err
		}
		legalName, err := m.readLine("Legal name: ")
		if err != nil {
			return err
		}
		client = entities.NewOrganization(name, email, document, legalName)
	default:
		return fmt.Errorf("%w: unknown client kind", errs.ErrInvalidInput)
	}

	if err := m.service.AddClient(ctx, client); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Client added >>>")
	return nil
}

func (m *Menu) addAccount(ctx context.Context) error {
	fmt.Fprintln(m.out, "Adding account >>>")

	document, err := m.readLine("Client document: ")
	if err != nil {
		return err
	}
	kind, err := m.readInt("Account kind (1 - checking | 2 - savings): ")
	if err != nil {
		return err
	}
	balance, err := m.readDecimal("Initial balance: ")
	if err != nil {
		return err
	}

	var account *entities.Account
	switch kind {
	case 1:
		limit, err := m.readDecimal("Per-operation limit: ")
		if err != nil {
			return err
		}
		account = entities.NewCheckingAccount(balance, limit)
	case 2:
		operationLimit, err := m.readInt("Lifetime operation limit: ")
		if err != nil {
			return err
		}
		rate, err := m.readDecimal("Monthly rate (e.g. 0.05): ")
		if err != nil {
			return err
		}
		account = entities.NewSavingsAccount(balance, rate, operationLimit)
	default:
		return fmt.Errorf("%w: unknown account kind", errs.ErrInvalidInput)
	}

	added, err := m.service.AddAccount(ctx, document, account)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Account added with id %d >>>\n", added.ID)
	return nil
}

func (m *Menu) listings(ctx context.Context) error {
	choice, err := m.readInt("Listing (1 - clients | 2 - accounts of a client | 3 - movements | 4 - all accounts): ")
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		fmt.Fprintln(m.out, "Listing clients >>>")
		for _, c := range m.service.ListClients(ctx) {
			fmt.Fprintln(m.out, c)
		}
	case 2:
		document, err := m.readLine("Client document: ")
		if err != nil {
			return err
		}
		accounts, err := m.service.ListAccounts(ctx, document)
		if err != nil {
			return err
		}
		fmt.Fprintln(m.out, "Listing accounts >>>")
		for _, a := range accounts {
			fmt.Fprintln(m.out, a)
		}
	case 3:
		document, err := m.readLine("Client document: ")
		if err != nil {
			return err
		}
		id, err := m.readAccountID("Account id: ")
		if err != nil {
			return err
		}
		movements, err := m.service.ListMovements(ctx, document, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(m.out, "Listing movements >>>")
		if len(movements) == 0 {
			fmt.Fprintln(m.out, "No movements to list >>>")
		}
		for _, mov := range movements {
			fmt.Fprintln(m.out, mov)
		}
	case 4:
		fmt.Fprintln(m.out, "Listing all accounts >>>")
		for _, a := range m.service.ListAllAccounts(ctx) {
			fmt.Fprintln(m.out, a)
		}
	default:
		return fmt.Errorf("%w: unknown listing %d", errs.ErrInvalidInput, choice)
	}

	return nil
}

func (m *Menu) withdraw(ctx context.Context) error {
	fmt.Fprintln(m.out, "Withdrawal >>>")

	document, id, err := m.readAccountRef()
	if err != nil {
		return err
	}
	amount, err := m.readDecimal("Amount: ")
	if err != nil {
		return err
	}

	if err := m.service.Withdraw(ctx, params.NewWithdraw(document, id, amount)); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Withdrawal complete >>>")
	return nil
}

func (m *Menu) deposit(ctx context.Context) error {
	fmt.Fprintln(m.out, "Deposit >>>")

	document, id, err := m.readAccountRef()
	if err != nil {
		return err
	}
	amount, err := m.readDecimal("Amount: ")
	if err != nil {
		return err
	}

	if err := m.service.Deposit(ctx, params.NewDeposit(document, id, amount)); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Deposit complete >>>")
	return nil
}

func (m *Menu) transfer(ctx context.Context) error {
	fmt.Fprintln(m.out, "Transfer >>>")

	fromDoc, err := m.readLine("Sender document: ")
	if err != nil {
		return err
	}
	fromID, err := m.readAccountID("Sender account id: ")
	if err != nil {
		return err
	}
	toDoc, err := m.readLine("Recipient document: ")
	if err != nil {
		return err
	}
	toID, err := m.readAccountID("Recipient account id: ")
	if err != nil {
		return err
	}
	amount, err := m.readDecimal("Amount: ")
	if err != nil {
		return err
	}

	if err := m.service.Transfer(ctx, params.NewTransfer(fromDoc, toDoc, fromID, toID, amount)); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Transfer complete >>>")
	return nil
}

func (m *Menu) removeClient(ctx context.Context) error {
	fmt.Fprintln(m.out, "Removing client >>>")

	document, err := m.readLine("Client document: ")
	if err != nil {
		return err
	}

	if err := m.service.RemoveClient(ctx, document); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Client removed >>>")
	return nil
}

func (m *Menu) removeAccount(ctx context.Context) error {
	fmt.Fprintln(m.out, "Removing account >>>")

	document, id, err := m.readAccountRef()
	if err != nil {
		return err
	}

	if err := m.service.RemoveAccount(ctx, document, id); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Account removed >>>")
	return nil
}

func (m *Menu) readAccountRef() (string, entities.AccountID, error) {
	document, err := m.readLine("Document: ")
	if err != nil {
		return "", 0, err
	}
	id, err := m.readAccountID("Account id: ")
	if err != nil {
		return "", 0, err
	}
	return document, id, nil
}

// readLine prompts and returns the next input line, trimmed. io.EOF
// signals that the input stream terminated.
func (m *Menu) readLine(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) readInt(prompt string) (int, error) {
	line, err := m.readLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errs.ErrInvalidInput, line)
	}
	return n, nil
}

func (m *Menu) readAccountID(prompt string) (entities.AccountID, error) {
	line, err := m.readLine(prompt)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an account id", errs.ErrInvalidInput, line)
	}
	return entities.AccountID(id), nil
}

func (m *Menu) readDecimal(prompt string) (decimal.Decimal, error) {
	line, err := m.readLine(prompt)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(line)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not an amount", errs.ErrInvalidInput, line)
	}
	return d, nil
}

func (m *Menu) render(err error) {
	if m.logger != nil {
		m.logger.Debugf("operation failed: %v", err)
	}
	fmt.Fprintf(m.out, "Error -> %v\n", err)
}
