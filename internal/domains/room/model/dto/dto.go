package dto

import (
	"dashboard/internal/domains/room/model"
	"dashboard/shared"
	gDto "dashboard/shared/dto"
	gModel "dashboard/shared/model"
	"dashboard/shared/timezone"
	"dashboard/shared/validator"
	"time"

	"github.com/google/uuid"
)

const MsgRoomNumberChanged = "Room number cannot be changed."

type Guest struct {
	FullName          string `json:"fullName"`
	ReservationNumber string `json:"reservationNumber"`
	Image             string `json:"image"`
}

type CreateRoomRequest struct {
	RoomPhoto          string   `json:"roomPhoto"          validate:"required,notblank"                 msg:"Room photo is required and must be a non-empty string."`
	RoomNumber         string   `json:"roomNumber"         validate:"required,notblank"                 msg:"Room number must be a valid non-empty string."`
	RoomType           string   `json:"roomType"           validate:"required,notblank"                 msg:"Room type must be a valid non-empty string."`
	Facilities         string   `json:"facilities"         validate:"required,notblank"                 msg:"Facilities must be a valid non-empty string."`
	Rate               string   `json:"rate"               validate:"required,numeric"                  msg:"Rate must be a valid number."`
	OfferPrice         string   `json:"offerPrice"         validate:"required,numeric"                  msg:"Offer price must be a valid number."`
	Status             string   `json:"status"             validate:"required,oneof=Available Booked"   msg:"Room status must be 'Available' or 'Booked'."`
	Guest              *Guest   `json:"guest"`
	OrderDate          string   `json:"orderDate"          validate:"omitempty,date"                    msg:"Order date must be a valid date."`
	CheckIn            string   `json:"checkIn"            validate:"omitempty,date"                    msg:"Check-in date must be a valid date."`
	CheckOut           string   `json:"checkOut"           validate:"omitempty,date"                    msg:"Check-out date must be a valid date."`
	Description        string   `json:"description"`
	Offer              string   `json:"offer"`
	Discount           string   `json:"discount"`
	CancellationPolicy string   `json:"cancellationPolicy"`
	Amenities          []string `json:"amenities"`
	Photos             []string `json:"photos"`
}

// parseOptional returns nil for an empty or unparseable date.
func parseOptional(value string) *time.Time {
	if value == "" {
		return nil
	}

	t, err := timezone.ParseDate(value)
	if err != nil {
		return nil
	}

	return &t
}

// Validate checks the ordering of whichever stay dates are present.
func (c *CreateRoomRequest) Validate() []string {
	return validator.StayOrder(parseOptional(c.OrderDate), parseOptional(c.CheckIn), parseOptional(c.CheckOut))
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	now := timezone.Now()

	room := model.Room{
		ID:                 uuid.NewString(),
		RoomNumber:         c.RoomNumber,
		RoomPhoto:          c.RoomPhoto,
		RoomType:           c.RoomType,
		Facilities:         c.Facilities,
		Rate:               c.Rate,
		OfferPrice:         c.OfferPrice,
		Status:             c.Status,
		OrderDate:          parseOptional(c.OrderDate),
		CheckIn:            parseOptional(c.CheckIn),
		CheckOut:           parseOptional(c.CheckOut),
		Description:        c.Description,
		Offer:              c.Offer,
		Discount:           c.Discount,
		CancellationPolicy: c.CancellationPolicy,
		Amenities:          c.Amenities,
		Photos:             c.Photos,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if c.Guest != nil {
		room.GuestFullName = &c.Guest.FullName
		room.GuestReservationNumber = &c.Guest.ReservationNumber
		room.GuestImage = &c.Guest.Image
	}

	return room
}

type UpdateGuest struct {
	FullName          *string `db:"guest_full_name"          json:"fullName"`
	ReservationNumber *string `db:"guest_reservation_number" json:"reservationNumber"`
	Image             *string `db:"guest_image"              json:"image"`
}

type UpdateRoomRequest struct {
	RoomNumber         *string      `db:"-"                   json:"roomNumber"         validate:"omitnil,notblank"               msg:"Room number must be a valid non-empty string."`
	RoomPhoto          *string      `db:"room_photo"          json:"roomPhoto"          validate:"omitnil,notblank"               msg:"Room photo is required and must be a non-empty string."`
	RoomType           *string      `db:"room_type"           json:"roomType"           validate:"omitnil,notblank"               msg:"Room type must be a valid non-empty string."`
	Facilities         *string      `db:"facilities"          json:"facilities"         validate:"omitnil,notblank"               msg:"Facilities must be a valid non-empty string."`
	Rate               *string      `db:"rate"                json:"rate"               validate:"omitnil,numeric"                msg:"Rate must be a valid number."`
	OfferPrice         *string      `db:"offer_price"         json:"offerPrice"         validate:"omitnil,numeric"                msg:"Offer price must be a valid number."`
	Status             *string      `db:"status"              json:"status"             validate:"omitnil,oneof=Available Booked" msg:"Room status must be 'Available' or 'Booked'."`
	Guest              *UpdateGuest `json:"guest"`
	OrderDate          *string      `db:"order_date"          json:"orderDate"          validate:"omitnil,date"                   msg:"Order date must be a valid date."`
	CheckIn            *string      `db:"check_in"            json:"checkIn"            validate:"omitnil,date"                   msg:"Check-in date must be a valid date."`
	CheckOut           *string      `db:"check_out"           json:"checkOut"           validate:"omitnil,date"                   msg:"Check-out date must be a valid date."`
	Description        *string      `db:"description"         json:"description"`
	Offer              *string      `db:"offer"               json:"offer"`
	Discount           *string      `db:"discount"            json:"discount"`
	CancellationPolicy *string      `db:"cancellation_policy" json:"cancellationPolicy"`
	Amenities          []string     `db:"amenities"           json:"amenities"`
	Photos             []string     `db:"photos"              json:"photos"`
}

// ChangesKey reports whether the patch tries to renumber the room.
func (u *UpdateRoomRequest) ChangesKey(roomNumber string) bool {
	return u.RoomNumber != nil && *u.RoomNumber != roomNumber
}

// StayErrors re-checks the date ordering of current once the patch is applied.
func (u *UpdateRoomRequest) StayErrors(current model.Room) []string {
	orderDate, checkIn, checkOut := current.OrderDate, current.CheckIn, current.CheckOut

	if u.OrderDate != nil {
		orderDate = parseOptional(*u.OrderDate)
	}

	if u.CheckIn != nil {
		checkIn = parseOptional(*u.CheckIn)
	}

	if u.CheckOut != nil {
		checkOut = parseOptional(*u.CheckOut)
	}

	return validator.StayOrder(orderDate, checkIn, checkOut)
}

func (u *UpdateRoomRequest) ToFields(user string) map[string]any {
	return shared.ParseDateFields(shared.TransformFields(u, user), model.DateFields...)
}

type RoomResponse struct {
	RoomNumber         string         `json:"roomNumber"`
	RoomPhoto          string         `json:"roomPhoto"`
	RoomType           string         `json:"roomType"`
	Facilities         string         `json:"facilities"`
	Rate               string         `json:"rate"`
	OfferPrice         string         `json:"offerPrice"`
	Status             string         `json:"status"`
	Guest              *GuestResponse `json:"guest,omitempty"`
	OrderDate          string         `json:"orderDate,omitempty"`
	CheckIn            string         `json:"checkIn,omitempty"`
	CheckOut           string         `json:"checkOut,omitempty"`
	Description        string         `json:"description"`
	Offer              string         `json:"offer"`
	Discount           string         `json:"discount"`
	CancellationPolicy string         `json:"cancellationPolicy"`
	Amenities          []string       `json:"amenities"`
	Photos             []string       `json:"photos"`
	gDto.Metadata
}

type GuestResponse struct {
	FullName          string `json:"fullName"`
	ReservationNumber string `json:"reservationNumber"`
	Image             string `json:"image"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.RoomNumber = model.RoomNumber
	r.RoomPhoto = model.RoomPhoto
	r.RoomType = model.RoomType
	r.Facilities = model.Facilities
	r.Rate = model.Rate
	r.OfferPrice = model.OfferPrice
	r.Status = model.Status
	r.OrderDate = timezone.FormatDatePtr(model.OrderDate)
	r.CheckIn = timezone.FormatDatePtr(model.CheckIn)
	r.CheckOut = timezone.FormatDatePtr(model.CheckOut)
	r.Description = model.Description
	r.Offer = model.Offer
	r.Discount = model.Discount
	r.CancellationPolicy = model.CancellationPolicy
	r.Amenities = append([]string{}, model.Amenities...)
	r.Photos = append([]string{}, model.Photos...)
	r.Metadata.FromModel(model.Metadata)

	r.Guest = nil
	if model.GuestFullName != nil || model.GuestReservationNumber != nil {
		r.Guest = &GuestResponse{
			FullName:          deref(model.GuestFullName),
			ReservationNumber: deref(model.GuestReservationNumber),
			Image:             deref(model.GuestImage),
		}
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"totalPage"`
	TotalData int            `json:"totalData"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
