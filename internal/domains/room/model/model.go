package model

import (
	"dashboard/shared/model"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldRoomNumber = "room_number"
	FieldRoomPhoto  = "room_photo"
	FieldRoomType   = "room_type"
	FieldRate       = "rate"
	FieldOfferPrice = "offer_price"
	FieldStatus     = "status"
	FieldOrderDate  = "order_date"
	FieldCheckIn    = "check_in"
	FieldCheckOut   = "check_out"
	FieldCreatedAt  = "created_at"
)

const (
	StatusAvailable = "Available"
	StatusBooked    = "Booked"
)

var SortableFields = []string{
	FieldRoomNumber, FieldRoomType, FieldRate, FieldOfferPrice, FieldStatus, FieldCheckIn, FieldCreatedAt,
}

var DateFields = []string{FieldOrderDate, FieldCheckIn, FieldCheckOut}

type Room struct {
	ID                     string         `db:"id"`
	RoomNumber             string         `db:"room_number"`
	RoomPhoto              string         `db:"room_photo"`
	RoomType               string         `db:"room_type"`
	Facilities             string         `db:"facilities"`
	Rate                   string         `db:"rate"`
	OfferPrice             string         `db:"offer_price"`
	Status                 string         `db:"status"`
	GuestFullName          *string        `db:"guest_full_name"`
	GuestReservationNumber *string        `db:"guest_reservation_number"`
	GuestImage             *string        `db:"guest_image"`
	OrderDate              *time.Time     `db:"order_date"`
	CheckIn                *time.Time     `db:"check_in"`
	CheckOut               *time.Time     `db:"check_out"`
	Description            string         `db:"description"`
	Offer                  string         `db:"offer"`
	Discount               string         `db:"discount"`
	CancellationPolicy     string         `db:"cancellation_policy"`
	Amenities              pq.StringArray `db:"amenities"`
	Photos                 pq.StringArray `db:"photos"`
	model.Metadata
}
