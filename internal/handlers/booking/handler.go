package booking

import (
	"dashboard/infras/otel"
	"dashboard/internal/domains/booking/model"
	"dashboard/internal/domains/booking/model/dto"
	"dashboard/internal/domains/booking/service"
	"dashboard/shared/constant"
	gDto "dashboard/shared/dto"
	"dashboard/shared/validator"
	"dashboard/transport/http/response"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{"+constant.RequestParamReservationNumber+"}", handler.GetBooking)
		routerGroup.Patch("/{"+constant.RequestParamReservationNumber+"}", handler.UpdateBooking)
		routerGroup.Delete("/{"+constant.RequestParamReservationNumber+"}", handler.DeleteBooking)
	})
}

// CreateBooking responds 201 with the stored booking.
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetBookings lists bookings, optionally paged, sorted and filtered by
// status, room_number, room_type, a guest search and a check-in date range.
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)
	queryParams.RestrictSort(model.SortableFields...)

	query := r.URL.Query()
	filterGroup := gDto.EqualsFromQuery(query, model.TableName,
		model.FieldStatus, model.FieldRoomNumber, model.FieldRoomType)
	filterGroup.AddSearch(query, model.TableName, model.FieldGuestFullName, model.FieldReservationNumber)

	if err := filterGroup.AddDateRange(query, model.TableName, model.FieldCheckIn); err != nil {
		log.Warn().Err(err).Msg("invalid booking date range")

		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithList(w, bookings.Bookings, bookings.TotalData, bookings.TotalPage)
}

func (handler *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBooking")
	defer scope.End()

	reservationNumber := chi.URLParam(r, constant.RequestParamReservationNumber)

	booking, err := handler.service.Get(ctx, reservationNumber)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBooking applies a partial update and responds with the stored booking.
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	reservationNumber := chi.URLParam(r, constant.RequestParamReservationNumber)

	req := dto.UpdateBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Update(ctx, req, reservationNumber)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, booking)
}

func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	reservationNumber := chi.URLParam(r, constant.RequestParamReservationNumber)

	if err := handler.service.Delete(ctx, reservationNumber); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking deleted successfully by user " + user)

	response.WithJSON(w, http.StatusOK, fmt.Sprintf("Booking [%s] deleted", reservationNumber))
}
