package dto_test

import (
	"dashboard/internal/domains/room/model"
	"dashboard/internal/domains/room/model/dto"
	"dashboard/shared/failure"
	"dashboard/shared/validator"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func validRequest() dto.CreateRoomRequest {
	return dto.CreateRoomRequest{
		RoomPhoto:  "https://img/101.png",
		RoomNumber: "101",
		RoomType:   "Double Bed",
		Facilities: "Wifi, TV",
		Rate:       "150",
		OfferPrice: "120",
		Status:     model.StatusAvailable,
	}
}

func TestCreateRoomRequest_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *dto.CreateRoomRequest)
		expected []string
	}{
		{
			name:   "available room without a guest",
			mutate: func(_ *dto.CreateRoomRequest) {},
		},
		{
			name: "booked room with an ordered stay",
			mutate: func(r *dto.CreateRoomRequest) {
				r.Status = model.StatusBooked
				r.Guest = &dto.Guest{FullName: "Ana Lopez", ReservationNumber: "RES-1"}
				r.OrderDate = "2024-05-01"
				r.CheckIn = "2024-05-10"
				r.CheckOut = "2024-05-12T12:00:00Z"
			},
		},
		{
			name:     "status outside the vocabulary",
			mutate:   func(r *dto.CreateRoomRequest) { r.Status = "Cleaning" },
			expected: []string{"Room status must be 'Available' or 'Booked'."},
		},
		{
			name: "required strings and numbers",
			mutate: func(r *dto.CreateRoomRequest) {
				r.RoomPhoto = ""
				r.Facilities = "  "
				r.OfferPrice = "cheap"
			},
			expected: []string{
				"Room photo is required and must be a non-empty string.",
				"Facilities must be a valid non-empty string.",
				"Offer price must be a valid number.",
			},
		},
		{
			name:     "unparseable check-in",
			mutate:   func(r *dto.CreateRoomRequest) { r.CheckIn = "tomorrow" },
			expected: []string{"Check-in date must be a valid date."},
		},
		{
			name: "check-out before check-in",
			mutate: func(r *dto.CreateRoomRequest) {
				r.CheckIn = "2024-05-10"
				r.CheckOut = "2024-05-09"
			},
			expected: []string{validator.MessageCheckInBeforeCheckOut},
		},
		{
			name: "order date after check-in",
			mutate: func(r *dto.CreateRoomRequest) {
				r.OrderDate = "2024-05-11"
				r.CheckIn = "2024-05-10"
			},
			expected: []string{validator.MessageOrderDateAfterCheckIn},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.expected == nil {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.expected, failure.GetErrors(err))
		})
	}
}

func TestCreateRoomRequest_ToModel(t *testing.T) {
	req := validRequest()
	req.Guest = &dto.Guest{FullName: "Ana Lopez", ReservationNumber: "RES-1"}
	req.CheckIn = "2024-05-10"
	req.Amenities = []string{"Pool"}

	room := req.ToModel("EMP-1")

	assert.NotEmpty(t, room.ID)
	require.NotNil(t, room.CheckIn)
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), *room.CheckIn)
	assert.Nil(t, room.CheckOut)
	assert.Equal(t, "RES-1", *room.GuestReservationNumber)

	var res dto.RoomResponse
	res.FromModel(room)

	assert.Equal(t, "2024-05-10", res.CheckIn)
	assert.Empty(t, res.CheckOut)
	require.NotNil(t, res.Guest)
	assert.Equal(t, "Ana Lopez", res.Guest.FullName)
	assert.Equal(t, []string{"Pool"}, res.Amenities)
	assert.Equal(t, []string{}, res.Photos)
}

func TestUpdateRoomRequest(t *testing.T) {
	t.Run("status outside the vocabulary", func(t *testing.T) {
		err := validator.ValidateStruct(&dto.UpdateRoomRequest{Status: ptr("Dirty")})

		require.Error(t, err)
		assert.Equal(t, []string{"Room status must be 'Available' or 'Booked'."}, failure.GetErrors(err))
	})

	t.Run("room number is immutable", func(t *testing.T) {
		assert.False(t, (&dto.UpdateRoomRequest{RoomNumber: ptr("101")}).ChangesKey("101"))
		assert.True(t, (&dto.UpdateRoomRequest{RoomNumber: ptr("102")}).ChangesKey("101"))
		assert.NotContains(t, (&dto.UpdateRoomRequest{RoomNumber: ptr("101")}).ToFields("EMP-1"), model.FieldRoomNumber)
	})

	t.Run("stay is checked against the stored room", func(t *testing.T) {
		checkIn := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
		current := model.Room{CheckIn: &checkIn}

		assert.Empty(t, (&dto.UpdateRoomRequest{CheckOut: ptr("2024-05-11")}).StayErrors(current))
		assert.Equal(t,
			[]string{validator.MessageCheckInBeforeCheckOut},
			(&dto.UpdateRoomRequest{CheckOut: ptr("2024-05-10")}).StayErrors(current),
		)
	})

	t.Run("guest and dates are flattened", func(t *testing.T) {
		fields := (&dto.UpdateRoomRequest{
			Guest:   &dto.UpdateGuest{FullName: ptr("Ana")},
			CheckIn: ptr("2024-06-01"),
		}).ToFields("EMP-1")

		assert.Equal(t, "Ana", fields["guest_full_name"])
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), fields[model.FieldCheckIn])
	})
}
