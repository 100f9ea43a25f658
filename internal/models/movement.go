package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement represents a ledger movement row. Both currency equivalents are
// stored at registration time so history survives later rate changes.
type Movement struct {
	MovementID           string          `db:"movement_id"`
	Number               string          `db:"number"`
	Kind                 string          `db:"kind"`
	Direction            string          `db:"direction"` // Only set for conversion legs
	Status               string          `db:"status"`
	CurrencyCode         string          `db:"currency_code"`
	Amount               decimal.Decimal `db:"amount"`
	ExchangeRate         decimal.Decimal `db:"exchange_rate"`
	AmountUSD            decimal.Decimal `db:"amount_usd"`
	AmountPEN            decimal.Decimal `db:"amount_pen"`
	SourceAccountID      string          `db:"source_account_id"`      // Nullable
	DestinationAccountID string          `db:"destination_account_id"` // Nullable
	Method               string          `db:"method"`
	Concept              string          `db:"concept"`
	Reference            string          `db:"reference"`
	Notes                string          `db:"notes"`
	ConversionID         string          `db:"conversion_id"` // Nullable, set on legs
	RelatedDocumentID    string          `db:"related_document_id"`
	RelatedDocumentType  string          `db:"related_document_type"`
	MovementDate         time.Time       `db:"movement_date"`
	VoidedAt             *time.Time      `db:"voided_at"`
	VoidedBy             string          `db:"voided_by"`
	AuditFields
}
