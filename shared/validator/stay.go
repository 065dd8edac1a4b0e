package validator

import "time"

const (
	MessageInvalidDates          = "Dates must be valid."
	MessageCheckInBeforeCheckOut = "Check-in date must be before check-out date."
	MessageOrderDateAfterCheckIn = "Order date cannot be later than check-in date."
)

// StayOrder checks orderDate <= checkIn < checkOut. Nil or zero dates are
// skipped together with the rules that involve them.
func StayOrder(orderDate, checkIn, checkOut *time.Time) []string {
	set := func(t *time.Time) bool { return t != nil && !t.IsZero() }

	var msgs []string

	if set(checkIn) && set(checkOut) && !checkIn.Before(*checkOut) {
		msgs = append(msgs, MessageCheckInBeforeCheckOut)
	}

	if set(orderDate) && set(checkIn) && orderDate.After(*checkIn) {
		msgs = append(msgs, MessageOrderDateAfterCheckIn)
	}

	return msgs
}
