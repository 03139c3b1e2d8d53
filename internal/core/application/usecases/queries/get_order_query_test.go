package queries_test

import (
	"testing"

	"takeaway/internal/core/application/usecases/queries"
	"takeaway/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOrderQuery(101, 42)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, int64(101), query.OrderID())
	assert.Equal(t, int64(42), query.UserID())
}

func TestNewGetOrderQuery_OperatorLookup(t *testing.T) {
	query, err := queries.NewGetOrderQuery(101, 0)
	require.NoError(t, err)
	assert.Zero(t, query.UserID())
}

func TestNewGetOrderQuery_InvalidOrderID(t *testing.T) {
	_, err := queries.NewGetOrderQuery(0, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestGetOrderQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}
