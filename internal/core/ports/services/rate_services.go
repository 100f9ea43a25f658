package services

import (
	"context"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
)

// RateProvider supplies the day's reference exchange rate pair. Failures are
// tolerated by callers; conversions fall back to the applied rate.
type RateProvider interface {
	TodayRate(ctx context.Context) (domain.RatePair, error)
}
