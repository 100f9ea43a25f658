package dto

import (
	"time"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterMovementRequest defines the data needed to register a ledger movement.
// Direction is required when (and only when) Kind is CONVERSION_LEG.
type RegisterMovementRequest struct {
	Kind                 domain.MovementKind `json:"kind" binding:"required,movementkind"`
	Direction            domain.LegDirection `json:"direction" binding:"omitempty,oneof=INBOUND OUTBOUND"`
	CurrencyCode         domain.Currency     `json:"currencyCode" binding:"required,oneof=USD PEN"`
	Amount               decimal.Decimal     `json:"amount" binding:"required"`
	ExchangeRate         decimal.Decimal     `json:"exchangeRate" binding:"required"`
	Method               string              `json:"method"`
	Concept              string              `json:"concept" binding:"required"`
	Reference            string              `json:"reference"`
	Notes                string              `json:"notes"`
	Date                 time.Time           `json:"date"`
	SourceAccountID      string              `json:"sourceAccountID"`
	DestinationAccountID string              `json:"destinationAccountID"`
	RelatedDocumentID    string              `json:"relatedDocumentID"`
	RelatedDocumentType  string              `json:"relatedDocumentType"`
}

// UpdateMovementRequest defines the fields an executed movement may change.
// Amount/rate/currency changes replay the balance delta; the rest update freely.
type UpdateMovementRequest struct {
	Kind         *domain.MovementKind `json:"kind" binding:"omitempty,movementkind"`
	CurrencyCode *domain.Currency     `json:"currencyCode" binding:"omitempty,oneof=USD PEN"`
	Amount       *decimal.Decimal     `json:"amount"`
	ExchangeRate *decimal.Decimal     `json:"exchangeRate"`
	Method       *string              `json:"method"`
	Concept      *string              `json:"concept"`
	Reference    *string              `json:"reference"`
	Notes        *string              `json:"notes"`
	Date         *time.Time           `json:"date"`
}

// ListMovementsParams defines query parameters for listing movements.
type ListMovementsParams struct {
	Kind            string     `form:"kind"`
	Status          string     `form:"status"`
	Currency        string     `form:"currency"`
	SourceAccountID string     `form:"sourceAccountID"`
	From            *time.Time `form:"from" time_format:"2006-01-02"`
	To              *time.Time `form:"to" time_format:"2006-01-02"`
	Limit           int        `form:"limit,default=50"`
}

// ToFilter converts the query parameters into a domain listing filter.
func (p ListMovementsParams) ToFilter() domain.MovementListFilter {
	return domain.MovementListFilter{
		Kind:            domain.MovementKind(p.Kind),
		Status:          domain.MovementStatus(p.Status),
		Currency:        domain.Currency(p.Currency),
		SourceAccountID: p.SourceAccountID,
		From:            p.From,
		To:              p.To,
		Limit:           p.Limit,
	}
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	MovementID           string                `json:"movementID"`
	Number               string                `json:"number"`
	Kind                 domain.MovementKind   `json:"kind"`
	Direction            domain.LegDirection   `json:"direction,omitempty"`
	Status               domain.MovementStatus `json:"status"`
	CurrencyCode         domain.Currency       `json:"currencyCode"`
	Amount               decimal.Decimal       `json:"amount"`
	ExchangeRate         decimal.Decimal       `json:"exchangeRate"`
	AmountUSD            decimal.Decimal       `json:"amountUSD"`
	AmountPEN            decimal.Decimal       `json:"amountPEN"`
	SourceAccountID      string                `json:"sourceAccountID,omitempty"`
	DestinationAccountID string                `json:"destinationAccountID,omitempty"`
	Method               string                `json:"method,omitempty"`
	Concept              string                `json:"concept"`
	Reference            string                `json:"reference,omitempty"`
	Notes                string                `json:"notes,omitempty"`
	ConversionID         string                `json:"conversionID,omitempty"`
	RelatedDocumentID    string                `json:"relatedDocumentID,omitempty"`
	RelatedDocumentType  string                `json:"relatedDocumentType,omitempty"`
	MovementDate         time.Time             `json:"movementDate"`
	VoidedAt             *time.Time            `json:"voidedAt,omitempty"`
	VoidedBy             string                `json:"voidedBy,omitempty"`
	CreatedAt            time.Time             `json:"createdAt"`
	CreatedBy            string                `json:"createdBy"`
}

// ToMovementResponse converts a domain.Movement to MovementResponse.
func ToMovementResponse(m *domain.Movement) MovementResponse {
	return MovementResponse{
		MovementID:           m.MovementID,
		Number:               m.Number,
		Kind:                 m.Kind,
		Direction:            m.Direction,
		Status:               m.Status,
		CurrencyCode:         m.CurrencyCode,
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
		CreatedAt:            m.CreatedAt,
		CreatedBy:            m.CreatedBy,
	}
}

// ToMovementResponses converts a slice of domain.Movement to responses.
func ToMovementResponses(movements []domain.Movement) []MovementResponse {
	res := make([]MovementResponse, len(movements))
	for i := range movements {
		res[i] = ToMovementResponse(&movements[i])
	}
	return res
}
