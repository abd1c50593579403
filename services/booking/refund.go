package booking

import (
	"fmt"
	"math"
	"time"

	"bookhive/models"
)

// RefundQuote is the outcome of evaluating a booking's cancellation policy at
// a given instant.
type RefundQuote struct {
	RefundAmount      float64                   `json:"refundAmount"`
	RefundPercentage  int                       `json:"refundPercentage"`
	Policy            models.CancellationPolicy `json:"policyName"`
	HoursUntilService float64                   `json:"hoursUntilService"`
	Description       string                    `json:"description"`
}

// CalculateRefund computes the refund owed if the booking were cancelled at
// the given instant. The signed hours-until-service drives the policy
// comparisons; the returned HoursUntilService is clamped to zero for display.
// The amount is rounded to 2 decimal places.
func CalculateRefund(b *models.Booking, now time.Time) (RefundQuote, error) {
	anchor, err := refundAnchor(b)
	if err != nil {
		return RefundQuote{}, err
	}

	hours := anchor.Sub(now).Hours()
	pct := refundPercentage(b.Policy, hours)
	amount := math.Round(b.TotalAmount*float64(pct)) / 100

	return RefundQuote{
		RefundAmount:      amount,
		RefundPercentage:  pct,
		Policy:            b.Policy,
		HoursUntilService: math.Max(0, hours),
		Description:       refundDescription(b, pct),
	}, nil
}

// refundAnchor picks the instant "hours until service" is measured against:
// the slot date for time-based bookings, the check-in date otherwise.
func refundAnchor(b *models.Booking) (time.Time, error) {
	dateStr := b.CheckInDate
	if b.ServiceType == models.ServiceTypeTimeBased && b.TimeSlot != nil && b.TimeSlot.Date != "" {
		dateStr = b.TimeSlot.Date
	}
	anchor, err := parseDay(dateStr)
	if err != nil {
		return time.Time{}, NewValidationError("booking %s has an unparseable service date %q", b.ID, dateStr)
	}
	return anchor, nil
}

// refundPercentage applies the policy decision table with first-match
// semantics over the signed hours-until-service. Unrecognized policies fall
// back to the 24-hour terms.
func refundPercentage(policy models.CancellationPolicy, hours float64) int {
	switch policy {
	case models.Policy48Hours:
		if hours >= 48 {
			return 100
		}
		return 0
	case models.Policy72Hours:
		if hours >= 72 {
			return 100
		}
		return 0
	case models.PolicyFlexible:
		if hours >= 24 {
			return 100
		}
		if hours >= 12 {
			return 50
		}
		return 0
	case models.PolicyStrict:
		if hours >= 72 {
			return 50
		}
		return 0
	default:
		if hours >= 24 {
			return 100
		}
		return 0
	}
}

// fullRefundCutoffHours is the threshold quoted in the full-refund message.
func fullRefundCutoffHours(policy models.CancellationPolicy) int {
	switch policy {
	case models.Policy48Hours:
		return 48
	case models.Policy72Hours:
		return 72
	default:
		return 24
	}
}

// refundDescription picks the message by percentage bucket. Only the
// full-refund message quotes the policy's cutoff hours.
func refundDescription(b *models.Booking, pct int) string {
	anchorLabel := "check-in"
	if b.ServiceType == models.ServiceTypeTimeBased {
		anchorLabel = "service time"
	}
	switch pct {
	case 100:
		return fmt.Sprintf("Full refund: cancelled at least %d hours before %s", fullRefundCutoffHours(b.Policy), anchorLabel)
	case 50:
		return fmt.Sprintf("Partial 50%% refund: cancelled close to %s", anchorLabel)
	default:
		return fmt.Sprintf("No refund: cancelled too close to %s", anchorLabel)
	}
}
