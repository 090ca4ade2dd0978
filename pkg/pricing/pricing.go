// Package pricing holds the hardcoded price list.
package pricing

import (
	"time"

	"github.com/ironclub/ironclub-api/pkg/domain"
)

// MembershipPrices maps membership levels to their monthly price in rubles.
var MembershipPrices = map[domain.LevelType]int64{
	domain.LevelSimple:   790,
	domain.LevelInfinity: 1490,
	domain.LevelPremium:  1790,
}

// MinAppointmentPrice is the floor price for any trainer appointment.
const MinAppointmentPrice = 1000

// AppointmentPrice calculates the price of a trainer appointment. Every
// hour costs 1000 rubles, with MinAppointmentPrice as the minimum.
func AppointmentPrice(appointedAt, endsAt time.Time) int64 {
	price := endsAt.Sub(appointedAt).Milliseconds() / 3600
	if price < MinAppointmentPrice {
		return MinAppointmentPrice
	}
	return price
}
