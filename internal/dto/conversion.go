package dto

import (
	"time"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterConversionRequest defines the data needed to register a currency
// conversion. The destination amount is always derived, never entered.
type RegisterConversionRequest struct {
	OriginCurrency       domain.Currency `json:"originCurrency" binding:"required,oneof=USD PEN"`
	OriginAmount         decimal.Decimal `json:"originAmount" binding:"required"`
	AppliedRate          decimal.Decimal `json:"appliedRate" binding:"required"`
	Date                 time.Time       `json:"date"`
	Entity               string          `json:"entity"`
	Motive               string          `json:"motive" binding:"required"`
	Notes                string          `json:"notes"`
	SourceAccountID      string          `json:"sourceAccountID"`
	DestinationAccountID string          `json:"destinationAccountID"`
}

// ListConversionsParams defines query parameters for listing conversions.
type ListConversionsParams struct {
	OriginCurrency string     `form:"originCurrency"`
	Entity         string     `form:"entity"`
	From           *time.Time `form:"from" time_format:"2006-01-02"`
	To             *time.Time `form:"to" time_format:"2006-01-02"`
	Limit          int        `form:"limit,default=50"`
}

// ToFilter converts the query parameters into a domain listing filter.
func (p ListConversionsParams) ToFilter() domain.ConversionListFilter {
	return domain.ConversionListFilter{
		OriginCurrency: domain.Currency(p.OriginCurrency),
		Entity:         p.Entity,
		From:           p.From,
		To:             p.To,
		Limit:          p.Limit,
	}
}

// ConversionResponse defines the data returned for a conversion.
type ConversionResponse struct {
	ConversionID          string          `json:"conversionID"`
	Number                string          `json:"number"`
	OriginCurrency        domain.Currency `json:"originCurrency"`
	DestinationCurrency   domain.Currency `json:"destinationCurrency"`
	OriginAmount          decimal.Decimal `json:"originAmount"`
	DestinationAmount     decimal.Decimal `json:"destinationAmount"`
	AppliedRate           decimal.Decimal `json:"appliedRate"`
	ReferenceRate         decimal.Decimal `json:"referenceRate"`
	SpreadPercent         decimal.Decimal `json:"spreadPercent"`
	DifferenceVsReference decimal.Decimal `json:"differenceVsReference"`
	SourceAccountID       string          `json:"sourceAccountID,omitempty"`
	DestinationAccountID  string          `json:"destinationAccountID,omitempty"`
	Entity                string          `json:"entity,omitempty"`
	Motive                string          `json:"motive"`
	Notes                 string          `json:"notes,omitempty"`
	ConversionDate        time.Time       `json:"conversionDate"`
	CreatedAt             time.Time       `json:"createdAt"`
	CreatedBy             string          `json:"createdBy"`
}

// RegisterConversionResponse pairs the conversion with the movement legs it
// spawned, when accounts were linked.
type RegisterConversionResponse struct {
	Conversion ConversionResponse `json:"conversion"`
	Legs       []MovementResponse `json:"legs,omitempty"`
}

// ToConversionResponse converts a domain.Conversion to ConversionResponse.
func ToConversionResponse(c *domain.Conversion) ConversionResponse {
	return ConversionResponse{
		ConversionID:          c.ConversionID,
		Number:                c.Number,
		OriginCurrency:        c.OriginCurrency,
		DestinationCurrency:   c.DestinationCurrency,
		OriginAmount:          c.OriginAmount,
		DestinationAmount:     c.DestinationAmount,
		AppliedRate:           c.AppliedRate,
		ReferenceRate:         c.ReferenceRate,
		SpreadPercent:         c.SpreadPercent,
		DifferenceVsReference: c.DifferenceVsReference,
		SourceAccountID:       c.SourceAccountID,
		DestinationAccountID:  c.DestinationAccountID,
		Entity:                c.Entity,
		Motive:                c.Motive,
		Notes:                 c.Notes,
		ConversionDate:        c.ConversionDate,
		CreatedAt:             c.CreatedAt,
		CreatedBy:             c.CreatedBy,
	}
}

// ToConversionResponses converts a slice of domain.Conversion to responses.
func ToConversionResponses(conversions []domain.Conversion) []ConversionResponse {
	res := make([]ConversionResponse, len(conversions))
	for i := range conversions {
		res[i] = ToConversionResponse(&conversions[i])
	}
	return res
}
