package repositories

import (
	"context"
	"time"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
)

// ConversionReader defines read operations for conversion data.
type ConversionReader interface {
	// FindConversionByID retrieves a specific conversion by its unique identifier.
	FindConversionByID(ctx context.Context, conversionID string) (*domain.Conversion, error)

	// ListConversions retrieves conversions matching the filter, newest first.
	ListConversions(ctx context.Context, filter domain.ConversionListFilter) ([]domain.Conversion, error)

	// ListConversionsInRange retrieves conversions dated in [from, to), oldest
	// first. Used by the full recompute.
	ListConversionsInRange(ctx context.Context, from, to time.Time) ([]domain.Conversion, error)
}

// ConversionWriter defines the transactional write operation for conversions.
type ConversionWriter interface {
	// SaveConversion persists the conversion, its spawned movement legs, the
	// account balance deltas and the outbox events as one database transaction.
	// Sequence numbers for the conversion and each leg are assigned from the
	// atomic counters; the returned values carry them.
	SaveConversion(ctx context.Context, conversion domain.Conversion, legs []domain.Movement, deltas []domain.BalanceDelta, events []domain.LedgerEvent) (*domain.Conversion, []domain.Movement, error)
}

// ConversionRepositoryFacade combines all conversion-related repository interfaces.
type ConversionRepositoryFacade interface {
	ConversionReader
	ConversionWriter
}
