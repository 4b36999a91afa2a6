package util

import (
	"fmt"
	"time"

	"github.com/epeers/investdash/internal/models"
)

// PlanExpiry returns the moment a subscription bought at now lapses.
// Monthly adds one calendar month and yearly one calendar year; day overflow
// normalizes forward (Jan 31 + 1 month = Mar 3 in a non-leap year).
func PlanExpiry(plan models.PlanType, now time.Time) (time.Time, error) {
	switch plan {
	case models.PlanMonthly:
		return now.AddDate(0, 1, 0), nil
	case models.PlanYearly:
		return now.AddDate(1, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("unknown plan %q", plan)
}
