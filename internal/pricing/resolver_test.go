package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPricer struct {
	prices map[uint64]decimal.Decimal
	err    error
	calls  int
}

func (s *stubPricer) CatalogPrice(_ context.Context, _ Kind, id uint64) (decimal.Decimal, error) {
	s.calls++
	if s.err != nil {
		return decimal.Zero, s.err
	}
	p, ok := s.prices[id]
	if !ok {
		return decimal.Zero, ErrNotPriced
	}
	return p, nil
}

func TestResolveExplicitWins(t *testing.T) {
	stub := &stubPricer{prices: map[uint64]decimal.Decimal{1: decimal.NewFromInt(900)}}
	r := NewResolver(stub)

	explicit := decimal.RequireFromString("1234.567")
	got, err := r.Resolve(context.Background(), &explicit, KindSupplier, 1)
	require.NoError(t, err)
	assert.Equal(t, "1234.57", got.StringFixed(2))
	assert.Zero(t, stub.calls, "catalog must not be consulted when an explicit price is given")
}

func TestResolveExplicitZeroHonored(t *testing.T) {
	stub := &stubPricer{prices: map[uint64]decimal.Decimal{1: decimal.NewFromInt(900)}}
	r := NewResolver(stub)

	zero := decimal.Zero
	got, err := r.Resolve(context.Background(), &zero, KindVenue, 1)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
	assert.Zero(t, stub.calls)
}

func TestResolveCatalogFallback(t *testing.T) {
	stub := &stubPricer{prices: map[uint64]decimal.Decimal{7: decimal.RequireFromString("55000.005")}}
	r := NewResolver(stub)

	got, err := r.Resolve(context.Background(), nil, KindVenue, 7)
	require.NoError(t, err)
	assert.Equal(t, "55000.01", got.StringFixed(2))
}

func TestResolveMissingCatalogRowIsZero(t *testing.T) {
	r := NewResolver(&stubPricer{prices: map[uint64]decimal.Decimal{}})

	got, err := r.Resolve(context.Background(), nil, KindOutfit, 99)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestResolveStorageErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	r := NewResolver(&stubPricer{err: boom})

	_, err := r.Resolve(context.Background(), nil, KindService, 3)
	assert.ErrorIs(t, err, boom)
}
