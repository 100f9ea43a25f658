package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
	"github.com/andeantrade/treasury_backend/internal/models"
)

// ToModelSnapshot converts a domain TreasurySnapshot to its singleton row,
// marshalling the rollups into JSONB payloads.
func ToModelSnapshot(d domain.TreasurySnapshot) (models.TreasurySnapshot, error) {
	currentMonth, err := json.Marshal(d.CurrentMonth)
	if err != nil {
		return models.TreasurySnapshot{}, fmt.Errorf("marshal current month rollup: %w", err)
	}
	months, err := json.Marshal(d.Months)
	if err != nil {
		return models.TreasurySnapshot{}, fmt.Errorf("marshal month history: %w", err)
	}
	ytd, err := json.Marshal(d.YearToDate)
	if err != nil {
		return models.TreasurySnapshot{}, fmt.Errorf("marshal year-to-date rollup: %w", err)
	}
	return models.TreasurySnapshot{
		ID:                 1,
		TotalUSD:           d.TotalUSD,
		TotalPEN:           d.TotalPEN,
		TotalEquivalentPEN: d.TotalEquivalentPEN,
		ReferenceRate:      d.ReferenceRate,
		CurrentMonthKey:    d.CurrentMonthKey,
		CurrentMonth:       currentMonth,
		Months:             months,
		YearToDate:         ytd,
		UpdatedAt:          d.UpdatedAt,
		UpdatedBy:          d.UpdatedBy,
	}, nil
}

// ToDomainSnapshot converts the singleton row back to a domain TreasurySnapshot.
func ToDomainSnapshot(m models.TreasurySnapshot) (domain.TreasurySnapshot, error) {
	d := domain.TreasurySnapshot{
		TotalUSD:           m.TotalUSD,
		TotalPEN:           m.TotalPEN,
		TotalEquivalentPEN: m.TotalEquivalentPEN,
		ReferenceRate:      m.ReferenceRate,
		CurrentMonthKey:    m.CurrentMonthKey,
		Months:             map[string]domain.PeriodRollup{},
		UpdatedAt:          m.UpdatedAt,
		UpdatedBy:          m.UpdatedBy,
	}
	if len(m.CurrentMonth) > 0 {
		if err := json.Unmarshal(m.CurrentMonth, &d.CurrentMonth); err != nil {
			return domain.TreasurySnapshot{}, fmt.Errorf("unmarshal current month rollup: %w", err)
		}
	}
	if len(m.Months) > 0 {
		if err := json.Unmarshal(m.Months, &d.Months); err != nil {
			return domain.TreasurySnapshot{}, fmt.Errorf("unmarshal month history: %w", err)
		}
	}
	if len(m.YearToDate) > 0 {
		if err := json.Unmarshal(m.YearToDate, &d.YearToDate); err != nil {
			return domain.TreasurySnapshot{}, fmt.Errorf("unmarshal year-to-date rollup: %w", err)
		}
	}
	return d, nil
}
