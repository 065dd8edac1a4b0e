package dto_test

import (
	"dashboard/internal/domains/booking/model"
	"dashboard/internal/domains/booking/model/dto"
	"dashboard/shared/constant"
	"dashboard/shared/failure"
	"dashboard/shared/validator"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		Guest:      &dto.Guest{FullName: "Ana Lopez", ReservationNumber: "RES-1001"},
		RoomNumber: "101",
		RoomType:   "Deluxe",
		Rate:       "150",
		Status:     model.StatusCheckIn,
		OrderDate:  "2024-05-01",
		CheckIn:    "2024-05-10",
		CheckOut:   "2024-05-12",
	}
}

func TestCreateBookingRequest_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *dto.CreateBookingRequest)
		expected []string
	}{
		{
			name:   "valid request",
			mutate: func(_ *dto.CreateBookingRequest) {},
		},
		{
			name:   "order date equal to check-in is allowed",
			mutate: func(r *dto.CreateBookingRequest) { r.OrderDate = "2024-05-10" },
		},
		{
			name:   "order date may be a timestamp",
			mutate: func(r *dto.CreateBookingRequest) { r.OrderDate = "2024-05-01T10:00:00Z" },
		},
		{
			name:     "missing guest",
			mutate:   func(r *dto.CreateBookingRequest) { r.Guest = nil },
			expected: []string{"Guest must have a full name and a reservation number."},
		},
		{
			name: "guest without reservation number",
			mutate: func(r *dto.CreateBookingRequest) {
				r.Guest.ReservationNumber = " "
			},
			expected: []string{"Guest must have a full name and a reservation number."},
		},
		{
			name:     "unknown status",
			mutate:   func(r *dto.CreateBookingRequest) { r.Status = "Cancelled" },
			expected: []string{"Status must be 'Check-In', 'Check-Out', or 'In Progress'."},
		},
		{
			name:     "rate and offer price must be numeric",
			mutate:   func(r *dto.CreateBookingRequest) { r.Rate = "abc"; r.OfferPrice = ptr("1O0") },
			expected: []string{"Rate must be a valid number.", "Offer price must be a valid number."},
		},
		{
			name:     "check-in not before check-out",
			mutate:   func(r *dto.CreateBookingRequest) { r.CheckIn = "2024-05-12" },
			expected: []string{validator.MessageCheckInBeforeCheckOut},
		},
		{
			name:     "order date after check-in",
			mutate:   func(r *dto.CreateBookingRequest) { r.OrderDate = "2024-05-11" },
			expected: []string{validator.MessageOrderDateAfterCheckIn},
		},
		{
			name:   "wrong date format",
			mutate: func(r *dto.CreateBookingRequest) { r.CheckOut = "12/05/2024" },
			expected: []string{
				"Check-in and check-out dates must be in 'YYYY-MM-DD' format.",
				validator.MessageInvalidDates,
			},
		},
		{
			name: "every violation is reported",
			mutate: func(r *dto.CreateBookingRequest) {
				r.RoomNumber = ""
				r.RoomType = ""
				r.Status = ""
				r.CheckIn = "2024-05-20"
			},
			expected: []string{
				"Room number must be a valid string.",
				"Room type must be a valid string.",
				"Status must be 'Check-In', 'Check-Out', or 'In Progress'.",
				validator.MessageCheckInBeforeCheckOut,
			},
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

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := validRequest()
	req.RoomPhoto = []string{"a.png", "b.png"}

	booking, err := req.ToModel("EMP-1")
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "RES-1001", booking.ReservationNumber)
	assert.Equal(t, "Ana Lopez", booking.GuestFullName)
	assert.Equal(t, pq.StringArray{"a.png", "b.png"}, booking.RoomPhoto)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), booking.OrderDate)
	assert.Equal(t, "EMP-1", booking.CreatedBy)

	var res dto.BookingResponse
	res.FromModel(booking)

	assert.Equal(t, "2024-05-10", res.CheckIn)
	assert.Equal(t, "RES-1001", res.Guest.ReservationNumber)
}

func TestUpdateBookingRequest(t *testing.T) {
	current := model.Booking{
		OrderDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		CheckIn:   time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:  time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
	}

	t.Run("blank fields are rejected", func(t *testing.T) {
		req := dto.UpdateBookingRequest{RoomType: ptr(""), Status: ptr("Gone")}

		err := validator.ValidateStruct(&req)
		require.Error(t, err)
		assert.Equal(t, []string{
			"Room type must be a valid string.",
			"Status must be 'Check-In', 'Check-Out', or 'In Progress'.",
		}, failure.GetErrors(err))
	})

	t.Run("stay is checked against the stored booking", func(t *testing.T) {
		assert.Empty(t, (&dto.UpdateBookingRequest{CheckOut: ptr("2024-05-20")}).StayErrors(current))
		assert.Equal(t,
			[]string{validator.MessageCheckInBeforeCheckOut},
			(&dto.UpdateBookingRequest{CheckIn: ptr("2024-05-12")}).StayErrors(current),
		)
		assert.Equal(t,
			[]string{validator.MessageOrderDateAfterCheckIn},
			(&dto.UpdateBookingRequest{OrderDate: ptr("2024-05-11")}).StayErrors(current),
		)
	})

	t.Run("reservation number is immutable", func(t *testing.T) {
		same := dto.UpdateBookingRequest{Guest: &dto.UpdateGuest{ReservationNumber: ptr("RES-1")}}
		other := dto.UpdateBookingRequest{Guest: &dto.UpdateGuest{ReservationNumber: ptr("RES-2")}}

		assert.False(t, same.ChangesKey("RES-1"))
		assert.True(t, other.ChangesKey("RES-1"))
	})

	t.Run("fields are flattened with parsed dates", func(t *testing.T) {
		req := dto.UpdateBookingRequest{
			Guest:     &dto.UpdateGuest{FullName: ptr("Ana L."), ReservationNumber: ptr("RES-1")},
			CheckIn:   ptr("2024-06-01"),
			RoomPhoto: []string{"c.png"},
		}

		fields := req.ToFields("EMP-2")

		assert.Equal(t, "Ana L.", fields[model.FieldGuestFullName])
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), fields[model.FieldCheckIn])
		assert.Equal(t, pq.StringArray{"c.png"}, fields["room_photo"])
		assert.Equal(t, "EMP-2", fields[constant.FieldModifiedBy])
		assert.NotContains(t, fields, model.FieldReservationNumber)
	})
}
