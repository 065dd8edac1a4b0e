package model

import (
	"dashboard/shared/model"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                = "id"
	FieldReservationNumber = "reservation_number"
	FieldGuestFullName     = "guest_full_name"
	FieldRoomNumber        = "room_number"
	FieldRoomType          = "room_type"
	FieldRate              = "rate"
	FieldStatus            = "status"
	FieldOrderDate         = "order_date"
	FieldCheckIn           = "check_in"
	FieldCheckOut          = "check_out"
	FieldCreatedAt         = "created_at"
)

const (
	StatusCheckIn    = "Check-In"
	StatusCheckOut   = "Check-Out"
	StatusInProgress = "In Progress"
)

const (
	EventCreated = "booking.created"
	EventUpdated = "booking.updated"
	EventDeleted = "booking.deleted"
)

// SortableFields lists the columns a booking list may be ordered by.
var SortableFields = []string{
	FieldReservationNumber, FieldGuestFullName, FieldRoomNumber, FieldRoomType,
	FieldStatus, FieldOrderDate, FieldCheckIn, FieldCheckOut, FieldCreatedAt,
}

// DateFields are the calendar date columns of a booking.
var DateFields = []string{FieldOrderDate, FieldCheckIn, FieldCheckOut}

type Booking struct {
	ID                string         `db:"id"`
	ReservationNumber string         `db:"reservation_number"`
	GuestFullName     string         `db:"guest_full_name"`
	GuestImage        string         `db:"guest_image"`
	Photo             string         `db:"photo"`
	RoomPhoto         pq.StringArray `db:"room_photo"`
	RoomNumber        string         `db:"room_number"`
	RoomType          string         `db:"room_type"`
	Facilities        string         `db:"facilities"`
	Rate              string         `db:"rate"`
	OfferPrice        *string        `db:"offer_price"`
	Status            string         `db:"status"`
	OrderDate         time.Time      `db:"order_date"`
	CheckIn           time.Time      `db:"check_in"`
	CheckOut          time.Time      `db:"check_out"`
	SpecialRequest    string         `db:"special_request"`
	model.Metadata
}
