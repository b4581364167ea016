package entities

import (
	"testing"

	"github.com/fincore/bankd/internal/models/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAccounts(t *testing.T) {
	client := NewIndividual("Bob", "bob@example.com", "123", "555-0000")

	first := NewCheckingAccount(dec("100"), dec("50"))
	first.ID = 1
	second := NewSavingsAccount(dec("10"), dec("0.05"), 3)
	second.ID = 2

	client.AddAccount(first)
	client.AddAccount(second)

	assert.Equal(t, "123", first.OwnerDocument, "back-reference must be set on add")
	assert.Equal(t, "123", second.OwnerDocument)

	found, err := client.FindAccount(2)
	require.NoError(t, err)
	assert.Same(t, second, found)

	_, err = client.FindAccount(99)
	require.ErrorIs(t, err, errs.ErrAccountNotFound)

	require.NoError(t, client.RemoveAccount(1))
	assert.Len(t, client.Accounts, 1)

	err = client.RemoveAccount(1)
	require.ErrorIs(t, err, errs.ErrAccountNotFound)
}
