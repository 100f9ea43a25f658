package mapping

import (
	"github.com/andeantrade/treasury_backend/internal/core/domain"
	"github.com/andeantrade/treasury_backend/internal/models"
)

// ToModelConversion converts a domain Conversion to a model Conversion
func ToModelConversion(d domain.Conversion) models.Conversion {
	return models.Conversion{
		ConversionID:          d.ConversionID,
		Number:                d.Number,
		OriginCurrency:        string(d.OriginCurrency),
		DestinationCurrency:   string(d.DestinationCurrency),
		OriginAmount:          d.OriginAmount,
		DestinationAmount:     d.DestinationAmount,
		AppliedRate:           d.AppliedRate,
		ReferenceRate:         d.ReferenceRate,
		SpreadPercent:         d.SpreadPercent,
		DifferenceVsReference: d.DifferenceVsReference,
		SourceAccountID:       d.SourceAccountID,
		DestinationAccountID:  d.DestinationAccountID,
		Entity:                d.Entity,
		Motive:                d.Motive,
		Notes:                 d.Notes,
		ConversionDate:        d.ConversionDate,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainConversion converts a model Conversion to a domain Conversion
func ToDomainConversion(m models.Conversion) domain.Conversion {
	return domain.Conversion{
		ConversionID:          m.ConversionID,
		Number:                m.Number,
		OriginCurrency:        domain.Currency(m.OriginCurrency),
		DestinationCurrency:   domain.Currency(m.DestinationCurrency),
		OriginAmount:          m.OriginAmount,
		DestinationAmount:     m.DestinationAmount,
		AppliedRate:           m.AppliedRate,
		ReferenceRate:         m.ReferenceRate,
		SpreadPercent:         m.SpreadPercent,
		DifferenceVsReference: m.DifferenceVsReference,
		SourceAccountID:       m.SourceAccountID,
		DestinationAccountID:  m.DestinationAccountID,
		Entity:                m.Entity,
		Motive:                m.Motive,
		Notes:                 m.Notes,
		ConversionDate:        m.ConversionDate,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainConversionSlice converts a slice of model Conversions to domain Conversions
func ToDomainConversionSlice(ms []models.Conversion) []domain.Conversion {
	ds := make([]domain.Conversion, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainConversion(m)
	}
	return ds
}
