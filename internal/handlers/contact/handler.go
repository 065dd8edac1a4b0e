package contact

import (
	"dashboard/infras/otel"
	"dashboard/internal/domains/contact/model"
	"dashboard/internal/domains/contact/model/dto"
	"dashboard/internal/domains/contact/service"
	"dashboard/shared/constant"
	gDto "dashboard/shared/dto"
	"dashboard/shared/validator"
	"dashboard/transport/http/response"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const messagePath = "/{" + constant.RequestParamMessageID + "}"

type Handler struct {
	service service.Contact
	otel    otel.Otel
}

func New(service service.Contact, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/contacts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateContact)
		routerGroup.Get("/", handler.GetContacts)
		routerGroup.Get(messagePath, handler.GetContact)
		routerGroup.Patch(messagePath, handler.UpdateContact)
		routerGroup.Delete(messagePath, handler.DeleteContact)
	})
}

func (handler *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateContact")
	defer scope.End()

	req := dto.CreateContactRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	contact, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create contact")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, contact)
}

// GetContacts lists messages, filterable by status, email and date range and
// searchable by sender or subject.
func (handler *Handler) GetContacts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContacts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)
	queryParams.RestrictSort(model.SortableFields...)

	query := r.URL.Query()
	filterGroup := gDto.EqualsFromQuery(query, model.TableName, model.FieldStatus, model.FieldEmail)
	filterGroup.AddSearch(query, model.TableName, model.FieldFullName, model.FieldSubject)

	if err := filterGroup.AddDateRange(query, model.TableName, model.FieldDate); err != nil {
		log.Warn().Err(err).Msg("invalid message date range")

		response.WithError(w, err)

		return
	}

	contacts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contacts")

		response.WithError(w, err)

		return
	}

	response.WithList(w, contacts.Contacts, contacts.TotalData, contacts.TotalPage)
}

func (handler *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContact")
	defer scope.End()

	contact, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamMessageID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, contact)
}

func (handler *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateContact")
	defer scope.End()

	messageID := chi.URLParam(r, constant.RequestParamMessageID)

	req := dto.UpdateContactRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	contact, err := handler.service.Update(ctx, req, messageID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update contact")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, contact)
}

func (handler *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteContact")
	defer scope.End()

	messageID := chi.URLParam(r, constant.RequestParamMessageID)

	if err := handler.service.Delete(ctx, messageID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete contact")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Contact deleted by user " + user)

	response.WithJSON(w, http.StatusOK, fmt.Sprintf("Message [%s] deleted", messageID))
}
