package mapping

import (
	"github.com/andeantrade/treasury_backend/internal/core/domain"
	"github.com/andeantrade/treasury_backend/internal/models"
)

// ToModelMovement converts a domain Movement to a model Movement
func ToModelMovement(d domain.Movement) models.Movement {
	return models.Movement{
		MovementID:           d.MovementID,
		Number:               d.Number,
		Kind:                 string(d.Kind),
		Direction:            string(d.Direction),
		Status:               string(d.Status),
		CurrencyCode:         string(d.CurrencyCode),
		Amount:               d.Amount,
		ExchangeRate:         d.ExchangeRate,
		AmountUSD:            d.AmountUSD,
		AmountPEN:            d.AmountPEN,
		SourceAccountID:      d.SourceAccountID,
		DestinationAccountID: d.DestinationAccountID,
		Method:               d.Method,
		Concept:              d.Concept,
		Reference:            d.Reference,
		Notes:                d.Notes,
		ConversionID:         d.ConversionID,
		RelatedDocumentID:    d.RelatedDocumentID,
		RelatedDocumentType:  d.RelatedDocumentType,
		MovementDate:         d.MovementDate,
		VoidedAt:             d.VoidedAt,
		VoidedBy:             d.VoidedBy,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMovement converts a model Movement to a domain Movement
func ToDomainMovement(m models.Movement) domain.Movement {
	return domain.Movement{
		MovementID:           m.MovementID,
		Number:               m.Number,
		Kind:                 domain.MovementKind(m.Kind),
		Direction:            domain.LegDirection(m.Direction),
		Status:               domain.MovementStatus(m.Status),
		CurrencyCode:         domain.Currency(m.CurrencyCode),
		Amount:               m.Amount,
		ExchangeRate:         m.ExchangeRate,
		AmountUSD:            m.AmountUSD,
		AmountPEN:            m.AmountPEN,
		SourceAccountID:      m.SourceAccountID,
		DestinationAccountID: m.DestinationAccountID,
		Method:               m.Method,
		Concept:              m.Concept,
		Reference:            m.Reference,
		Notes:                m.Notes,
		ConversionID:         m.ConversionID,
		RelatedDocumentID:    m.RelatedDocumentID,
		RelatedDocumentType:  m.RelatedDocumentType,
		MovementDate:         m.MovementDate,
		VoidedAt:             m.VoidedAt,
		VoidedBy:             m.VoidedBy,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMovementSlice converts a slice of model Movements to domain Movements
func ToDomainMovementSlice(ms []models.Movement) []domain.Movement {
	ds := make([]domain.Movement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMovement(m)
	}
	return ds
}
