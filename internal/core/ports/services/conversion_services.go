package services

import (
	"context"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
	"github.com/andeantrade/treasury_backend/internal/dto"
)

// ConversionReaderSvc defines read operations for currency conversions
type ConversionReaderSvc interface {
	// GetConversionByID retrieves a specific conversion by its unique identifier.
	GetConversionByID(ctx context.Context, conversionID string) (*domain.Conversion, error)

	// ListConversions retrieves conversions matching the filter, newest first.
	ListConversions(ctx context.Context, filter domain.ConversionListFilter) ([]domain.Conversion, error)
}

// ConversionWriterSvc defines write operations for currency conversions
type ConversionWriterSvc interface {
	// RegisterConversion derives the destination amount, spread and
	// difference-vs-reference, persists the conversion and, when accounts are
	// linked, its movement legs, all in one transaction. It returns the stored
	// conversion and the legs it spawned.
	RegisterConversion(ctx context.Context, req dto.RegisterConversionRequest, actorID string) (*domain.Conversion, []domain.Movement, error)
}

// ConversionSvcFacade combines all conversion-related service interfaces
type ConversionSvcFacade interface {
	ConversionReaderSvc
	ConversionWriterSvc
}
