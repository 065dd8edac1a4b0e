package dto

import (
	"dashboard/internal/domains/booking/model"
	"dashboard/shared"
	gDto "dashboard/shared/dto"
	gModel "dashboard/shared/model"
	"dashboard/shared/timezone"
	"dashboard/shared/validator"
	"time"

	"github.com/google/uuid"
)

const MsgReservationNumberChanged = "Reservation number cannot be changed."

type Guest struct {
	FullName          string `json:"fullName"          validate:"required,notblank" msg:"Guest must have a full name and a reservation number."`
	ReservationNumber string `json:"reservationNumber" validate:"required,notblank" msg:"Guest must have a full name and a reservation number."`
	Image             string `json:"image"`
}

type CreateBookingRequest struct {
	Guest          *Guest   `json:"guest"          validate:"required"                                         msg:"Guest must have a full name and a reservation number."`
	Photo          string   `json:"photo"`
	RoomPhoto      []string `json:"roomPhoto"`
	RoomNumber     string   `json:"roomNumber"     validate:"required,notblank"                                msg:"Room number must be a valid string."`
	RoomType       string   `json:"roomType"       validate:"required,notblank"                                msg:"Room type must be a valid string."`
	Facilities     string   `json:"facilities"`
	Rate           string   `json:"rate"           validate:"required,numeric"                                 msg:"Rate must be a valid number."`
	OfferPrice     *string  `json:"offerPrice"     validate:"omitnil,numeric"                                  msg:"Offer price must be a valid number."`
	Status         string   `json:"status"         validate:"required,oneof=Check-In Check-Out 'In Progress'" msg:"Status must be 'Check-In', 'Check-Out', or 'In Progress'."`
	OrderDate      string   `json:"orderDate"      validate:"required,date"                                    msg:"Dates must be valid."`
	CheckIn        string   `json:"checkIn"        validate:"required,datetime=2006-01-02"                     msg:"Check-in and check-out dates must be in 'YYYY-MM-DD' format."`
	CheckOut       string   `json:"checkOut"       validate:"required,datetime=2006-01-02"                     msg:"Check-in and check-out dates must be in 'YYYY-MM-DD' format."`
	SpecialRequest string   `json:"specialRequest"`
}

// Validate checks the stay dates once each of them parses.
func (c *CreateBookingRequest) Validate() []string {
	orderDate, errOrder := timezone.ParseDate(c.OrderDate)
	checkIn, errIn := timezone.ParseDate(c.CheckIn)
	checkOut, errOut := timezone.ParseDate(c.CheckOut)

	if errOrder != nil || errIn != nil || errOut != nil {
		return []string{validator.MessageInvalidDates}
	}

	return validator.StayOrder(&orderDate, &checkIn, &checkOut)
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	orderDate, err := timezone.ParseDate(c.OrderDate)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	checkIn, err := timezone.ParseDate(c.CheckIn)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	checkOut, err := timezone.ParseDate(c.CheckOut)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	guest := Guest{}
	if c.Guest != nil {
		guest = *c.Guest
	}

	now := timezone.Now()

	return model.Booking{
		ID:                uuid.NewString(),
		ReservationNumber: guest.ReservationNumber,
		GuestFullName:     guest.FullName,
		GuestImage:        guest.Image,
		Photo:             c.Photo,
		RoomPhoto:         c.RoomPhoto,
		RoomNumber:        c.RoomNumber,
		RoomType:          c.RoomType,
		Facilities:        c.Facilities,
		Rate:              c.Rate,
		OfferPrice:        c.OfferPrice,
		Status:            c.Status,
		OrderDate:         orderDate,
		CheckIn:           checkIn,
		CheckOut:          checkOut,
		SpecialRequest:    c.SpecialRequest,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateGuest struct {
	FullName          *string `db:"guest_full_name" json:"fullName"          validate:"omitnil,notblank" msg:"Guest must have a full name and a reservation number."`
	ReservationNumber *string `db:"-"               json:"reservationNumber" validate:"omitnil,notblank" msg:"Guest must have a full name and a reservation number."`
	Image             *string `db:"guest_image"     json:"image"`
}

type UpdateBookingRequest struct {
	Guest          *UpdateGuest `json:"guest"`
	Photo          *string      `db:"photo"           json:"photo"`
	RoomPhoto      []string     `db:"room_photo"      json:"roomPhoto"`
	RoomNumber     *string      `db:"room_number"     json:"roomNumber"     validate:"omitnil,notblank"                                msg:"Room number must be a valid string."`
	RoomType       *string      `db:"room_type"       json:"roomType"       validate:"omitnil,notblank"                                msg:"Room type must be a valid string."`
	Facilities     *string      `db:"facilities"      json:"facilities"`
	Rate           *string      `db:"rate"            json:"rate"           validate:"omitnil,numeric"                                 msg:"Rate must be a valid number."`
	OfferPrice     *string      `db:"offer_price"     json:"offerPrice"     validate:"omitnil,numeric"                                 msg:"Offer price must be a valid number."`
	Status         *string      `db:"status"          json:"status"         validate:"omitnil,oneof=Check-In Check-Out 'In Progress'" msg:"Status must be 'Check-In', 'Check-Out', or 'In Progress'."`
	OrderDate      *string      `db:"order_date"      json:"orderDate"      validate:"omitnil,date"                                    msg:"Dates must be valid."`
	CheckIn        *string      `db:"check_in"        json:"checkIn"        validate:"omitnil,datetime=2006-01-02"                     msg:"Check-in and check-out dates must be in 'YYYY-MM-DD' format."`
	CheckOut       *string      `db:"check_out"       json:"checkOut"       validate:"omitnil,datetime=2006-01-02"                     msg:"Check-in and check-out dates must be in 'YYYY-MM-DD' format."`
	SpecialRequest *string      `db:"special_request" json:"specialRequest"`
}

// ChangesKey reports whether the patch tries to move the booking to another
// reservation number.
func (u *UpdateBookingRequest) ChangesKey(reservationNumber string) bool {
	return u.Guest != nil && u.Guest.ReservationNumber != nil && *u.Guest.ReservationNumber != reservationNumber
}

// StayErrors re-checks the date ordering of current once the patch is applied.
func (u *UpdateBookingRequest) StayErrors(current model.Booking) []string {
	orderDate, checkIn, checkOut := current.OrderDate, current.CheckIn, current.CheckOut

	override := func(raw *string, target *time.Time) {
		if raw == nil {
			return
		}

		if parsed, err := timezone.ParseDate(*raw); err == nil {
			*target = parsed
		}
	}

	override(u.OrderDate, &orderDate)
	override(u.CheckIn, &checkIn)
	override(u.CheckOut, &checkOut)

	return validator.StayOrder(&orderDate, &checkIn, &checkOut)
}

// ToFields returns the columns to update with dates already parsed.
func (u *UpdateBookingRequest) ToFields(user string) map[string]any {
	return shared.ParseDateFields(shared.TransformFields(u, user), model.DateFields...)
}

type GuestResponse struct {
	FullName          string `json:"fullName"`
	ReservationNumber string `json:"reservationNumber"`
	Image             string `json:"image"`
}

type BookingResponse struct {
	Guest          GuestResponse `json:"guest"`
	Photo          string        `json:"photo"`
	RoomPhoto      []string      `json:"roomPhoto"`
	RoomNumber     string        `json:"roomNumber"`
	RoomType       string        `json:"roomType"`
	Facilities     string        `json:"facilities"`
	Rate           string        `json:"rate"`
	OfferPrice     *string       `json:"offerPrice,omitempty"`
	Status         string        `json:"status"`
	OrderDate      string        `json:"orderDate"`
	CheckIn        string        `json:"checkIn"`
	CheckOut       string        `json:"checkOut"`
	SpecialRequest string        `json:"specialRequest"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.Guest = GuestResponse{
		FullName:          model.GuestFullName,
		ReservationNumber: model.ReservationNumber,
		Image:             model.GuestImage,
	}
	r.Photo = model.Photo
	r.RoomPhoto = append([]string{}, model.RoomPhoto...)
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.Facilities = model.Facilities
	r.Rate = model.Rate
	r.OfferPrice = model.OfferPrice
	r.Status = model.Status
	r.OrderDate = timezone.FormatDate(model.OrderDate)
	r.CheckIn = timezone.FormatDate(model.CheckIn)
	r.CheckOut = timezone.FormatDate(model.CheckOut)
	r.SpecialRequest = model.SpecialRequest
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"totalPage"`
	TotalData int               `json:"totalData"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingEvent is published on every booking mutation.
type BookingEvent struct {
	Type              string           `json:"type"`
	ReservationNumber string           `json:"reservationNumber"`
	Booking           *BookingResponse `json:"booking,omitempty"`
	OccurredAt        time.Time        `json:"occurredAt"`
	Actor             string           `json:"actor"`
}
