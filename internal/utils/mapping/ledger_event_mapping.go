package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
	"github.com/andeantrade/treasury_backend/internal/models"
)

// ledgerEventPayload is the JSON body of an outbox row. Exactly one of the
// two fields is set, matching the event type.
type ledgerEventPayload struct {
	Movement   *domain.Movement   `json:"movement,omitempty"`
	Conversion *domain.Conversion `json:"conversion,omitempty"`
}

// ToModelLedgerEvent converts a domain LedgerEvent to an outbox row.
func ToModelLedgerEvent(d domain.LedgerEvent) (models.LedgerEvent, error) {
	payload, err := json.Marshal(ledgerEventPayload{
		Movement:   d.Movement,
		Conversion: d.Conversion,
	})
	if err != nil {
		return models.LedgerEvent{}, fmt.Errorf("marshal ledger event payload: %w", err)
	}
	return models.LedgerEvent{
		EventID:     d.EventID,
		EventType:   string(d.Type),
		Payload:     payload,
		CreatedAt:   d.CreatedAt,
		CreatedBy:   d.CreatedBy,
		ProcessedAt: d.ProcessedAt,
		Attempts:    d.Attempts,
		LastError:   d.LastError,
	}, nil
}

// ToDomainLedgerEvent converts an outbox row back to a domain LedgerEvent.
func ToDomainLedgerEvent(m models.LedgerEvent) (domain.LedgerEvent, error) {
	var payload ledgerEventPayload
	if len(m.Payload) > 0 {
		if err := json.Unmarshal(m.Payload, &payload); err != nil {
			return domain.LedgerEvent{}, fmt.Errorf("unmarshal ledger event payload: %w", err)
		}
	}
	return domain.LedgerEvent{
		EventID:     m.EventID,
		Type:        domain.LedgerEventType(m.EventType),
		Movement:    payload.Movement,
		Conversion:  payload.Conversion,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
		ProcessedAt: m.ProcessedAt,
		Attempts:    m.Attempts,
		LastError:   m.LastError,
	}, nil
}
