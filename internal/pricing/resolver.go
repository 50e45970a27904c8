// Package pricing resolves the effective price of a catalog selection at
// booking time. Every selection kind goes through the same three-tier
// fallback: an explicit client price wins, else the current catalog price,
// else zero. The resolved price is snapshotted onto the booking line and
// never re-read from the catalog, so later catalog edits cannot reprice
// existing orders.
package pricing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Kind identifies which catalog table a price lookup targets.
type Kind string

const (
	KindVenue       Kind = "venue"
	KindSupplier    Kind = "supplier"
	KindGownPackage Kind = "gown_package"
	KindOutfit      Kind = "outfit"
	KindService     Kind = "service"
)

// ErrNotPriced is returned by a CatalogPricer when the referenced catalog
// row does not exist or carries no price. The resolver maps it to zero
// rather than failing the order; a missing catalog price is a data gap, not
// a client error.
var ErrNotPriced = errors.New("no catalog price for reference")

// CatalogPricer looks up the current catalog price of one reference.
type CatalogPricer interface {
	CatalogPrice(ctx context.Context, kind Kind, id uint64) (decimal.Decimal, error)
}

// Resolver applies the explicit → catalog → zero fallback.
type Resolver struct {
	catalog CatalogPricer
}

func NewResolver(catalog CatalogPricer) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve returns the effective price for one selection, rounded to two
// decimal places. explicit is the client-supplied price, nil when absent.
// A zero explicit price is honored as-is: clients legitimately book
// complimentary lines.
func (r *Resolver) Resolve(ctx context.Context, explicit *decimal.Decimal, kind Kind, id uint64) (decimal.Decimal, error) {
	if explicit != nil {
		return explicit.Round(2), nil
	}
	price, err := r.catalog.CatalogPrice(ctx, kind, id)
	if err != nil {
		if errors.Is(err, ErrNotPriced) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return price.Round(2), nil
}
