package entities

import (
	"fmt"

	"github.com/fincore/bankd/internal/models/errs"
)

type ClientKind string

const (
	Individual   ClientKind = "INDIVIDUAL"
	Organization ClientKind = "ORGANIZATION"
)

// Client is a closed tagged variant over Individual and Organization.
// A client exclusively owns its accounts; every owned account carries the
// client's document as its back-reference key.
type Client struct {
	Kind     ClientKind `validate:"required,oneof=INDIVIDUAL ORGANIZATION"`
	Name     string     `validate:"notblank"`
	Email    string     `validate:"notblank"`
	Document string     `validate:"notblank"`

	// Individual payload.
	Phone string `validate:"required_if=Kind INDIVIDUAL,omitempty,notblank"`
	// Organization payload.
	LegalName string `validate:"required_if=Kind ORGANIZATION,omitempty,notblank"`

	Accounts []*Account
}

func NewIndividual(name, email, document, phone string) *Client {
	return &Client{
		Kind:     Individual,
		Name:     name,
		Email:    email,
		Document: document,
		Phone:    phone,
	}
}

func NewOrganization(name, email, document, legalName string) *Client {
	return &Client{
		Kind:      Organization,
		Name:      name,
		Email:     email,
		Document:  document,
		LegalName: legalName,
	}
}

// AddAccount appends the account to the client's collection and sets the
// back-reference atomically with the insertion.
func (c *Client) AddAccount(a *Account) {
	a.OwnerDocument = c.Document
	c.Accounts = append(c.Accounts, a)
}

// FindAccount looks the account up within this client's collection only.
func (c *Client) FindAccount(id AccountID) (*Account, error) {
	for _, a := range c.Accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: client %s owns no account with id %d", errs.ErrAccountNotFound, c.Name, id)
}

func (c *Client) RemoveAccount(id AccountID) error {
	for i, a := range c.Accounts {
		if a.ID == id {
			c.Accounts = append(c.Accounts[:i], c.Accounts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: client %s owns no account with id %d", errs.ErrAccountNotFound, c.Name, id)
}

func (c *Client) String() string {
	switch c.Kind {
	case Organization:
		return fmt.Sprintf("organization{document: %s, name: %s, legal name: %s, email: %s, accounts: %d}",
			c.Document, c.Name, c.LegalName, c.Email, len(c.Accounts))
	default:
		return fmt.Sprintf("individual{document: %s, name: %s, email: %s, phone: %s, accounts: %d}",
			c.Document, c.Name, c.Email, c.Phone, len(c.Accounts))
	}
}
