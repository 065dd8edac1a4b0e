package booking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	otelMocks "dashboard/infras/otel/mocks"
	"dashboard/internal/domains/booking/model/dto"
	serviceMocks "dashboard/internal/domains/booking/service/mocks"
	"dashboard/internal/handlers/booking"
	"dashboard/shared/constant"
	gDto "dashboard/shared/dto"
	"dashboard/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const validBody = `{
	"guest": {"fullName": "Ana Lopez", "reservationNumber": "RES-1001"},
	"roomNumber": "101",
	"roomType": "Deluxe",
	"rate": "150",
	"status": "Check-In",
	"orderDate": "2024-05-01",
	"checkIn": "2024-05-10",
	"checkOut": "2024-05-12"
}`

func setup(t *testing.T) (*serviceMocks.MockBooking, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := serviceMocks.NewMockBooking(ctrl)

	handler := booking.New(service, otelMocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return service, router
}

func TestCreateBooking(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		setupMock    func(s *serviceMocks.MockBooking)
		expectedCode int
		expectedKey  string
	}{
		{
			name: "created",
			body: validBody,
			setupMock: func(s *serviceMocks.MockBooking) {
				s.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ any, req dto.CreateBookingRequest) (dto.BookingResponse, error) {
						res := dto.BookingResponse{Guest: dto.GuestResponse{ReservationNumber: req.Guest.ReservationNumber}}

						return res, nil
					})
			},
			expectedCode: http.StatusCreated,
			expectedKey:  "data",
		},
		{
			name:         "every violation is reported",
			body:         `{"roomNumber": ""}`,
			setupMock:    func(_ *serviceMocks.MockBooking) {},
			expectedCode: http.StatusBadRequest,
			expectedKey:  "errors",
		},
		{
			name: "duplicate reservation",
			body: validBody,
			setupMock: func(s *serviceMocks.MockBooking) {
				s.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(dto.BookingResponse{}, failure.Conflict("Booking [RES-1001] already exists"))
			},
			expectedCode: http.StatusConflict,
			expectedKey:  "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, router := setup(t)
			tt.setupMock(service)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedCode, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body, tt.expectedKey)
		})
	}
}

func TestGetBookings(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
			assert.Equal(t, 2, params.Limit)
			assert.Equal(t, "check_in", params.SortBy)
			require.Len(t, filter.Filters, 3)

			search, ok := filter.Filters[1].(gDto.FilterGroup)
			require.True(t, ok)
			assert.Equal(t, gDto.FilterGroupOperatorOr, search.Operator)
			assert.Len(t, search.Filters, 2)

			from, ok := filter.Filters[2].(gDto.Filter)
			require.True(t, ok)
			assert.Equal(t, gDto.FilterOperatorGreaterEq, from.Operator)
			assert.Equal(t, "check_in", from.Field)

			return dto.GetBookingsResponse{
				Bookings:  []dto.BookingResponse{{RoomNumber: "101"}, {RoomNumber: "102"}},
				TotalData: 5,
				TotalPage: 3,
			}, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/bookings?limit=2&sort_by=check_in&status=Check-In&search=lopez&check_in_from=2024-05-01", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", rec.Header().Get(constant.ResponseHeaderTotalCount))
	assert.Equal(t, "3", rec.Header().Get(constant.ResponseHeaderTotalPages))

	var body struct {
		Data []dto.BookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
}

func TestGetBookings_InvalidDateRange(t *testing.T) {
	_, router := setup(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings?check_in_to=tomorrow", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"check_in_to must be a valid date."}`, rec.Body.String())
}

func TestDeleteBooking(t *testing.T) {
	t.Run("unknown reservation", func(t *testing.T) {
		service, router := setup(t)
		service.EXPECT().Delete(gomock.Any(), "RES-404").Return(failure.NotFound("Booking not found"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/bookings/RES-404", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Booking not found"}`, rec.Body.String())
	})

	t.Run("deleted", func(t *testing.T) {
		service, router := setup(t)
		service.EXPECT().Delete(gomock.Any(), "RES-1").Return(nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/bookings/RES-1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":"Booking [RES-1] deleted"}`, rec.Body.String())
	})
}

func TestUpdateBooking(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().Update(gomock.Any(), gomock.Any(), "RES-1").DoAndReturn(
		func(_ any, req dto.UpdateBookingRequest, _ string) (dto.BookingResponse, error) {
			require.NotNil(t, req.Status)

			return dto.BookingResponse{Status: *req.Status}, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/bookings/RES-1", strings.NewReader(`{"status":"Check-Out"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"Check-Out"`)
}
