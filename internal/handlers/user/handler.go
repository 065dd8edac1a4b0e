package user

import (
	"dashboard/infras/otel"
	"dashboard/internal/domains/user/model"
	"dashboard/internal/domains/user/model/dto"
	"dashboard/internal/domains/user/service"
	"dashboard/shared/constant"
	gDto "dashboard/shared/dto"
	"dashboard/shared/validator"
	"dashboard/transport/http/response"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const employeePath = "/{" + constant.RequestParamEmployeeID + "}"

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateUser)
		routerGroup.Get("/", handler.GetUsers)
		routerGroup.Get(employeePath, handler.GetUser)
		routerGroup.Patch(employeePath, handler.UpdateUser)
		routerGroup.Put(employeePath, handler.ReplaceUser)
		routerGroup.Delete(employeePath, handler.DeleteUser)
		routerGroup.Post(employeePath+"/photo", handler.UploadPhoto)
	})
}

func (handler *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUser")
	defer scope.End()

	req := dto.CreateUserRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create user")

		response.WithError(w, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("User created by " + actor)

	response.WithJSON(w, http.StatusCreated, user)
}

// GetUsers lists staff, filterable by status and searchable by name or email.
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)
	queryParams.RestrictSort(model.SortableFields...)

	filterGroup := gDto.EqualsFromQuery(r.URL.Query(), model.TableName, model.FieldStatus)
	filterGroup.AddSearch(r.URL.Query(), model.TableName, model.FieldName, model.FieldEmail)

	users, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get users")

		response.WithError(w, err)

		return
	}

	response.WithList(w, users.Users, users.TotalData, users.TotalPage)
}

func (handler *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUser")
	defer scope.End()

	user, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamEmployeeID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

func (handler *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUser")
	defer scope.End()

	employeeID := chi.URLParam(r, constant.RequestParamEmployeeID)

	req := dto.UpdateUserRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, err := handler.service.Update(ctx, req, employeeID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// ReplaceUser overwrites the whole profile. The password changes only when one is sent.
func (handler *Handler) ReplaceUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReplaceUser")
	defer scope.End()

	employeeID := chi.URLParam(r, constant.RequestParamEmployeeID)

	req := dto.ReplaceUserRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, err := handler.service.Replace(ctx, req, employeeID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to replace user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

func (handler *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadUserPhoto")
	defer scope.End()

	employeeID := chi.URLParam(r, constant.RequestParamEmployeeID)

	req := gDto.PhotoUpload{}
	if err := req.FromRequest(r); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read photo upload")

		response.WithError(w, err)

		return
	}
	defer req.File.Close()

	user, err := handler.service.UploadPhoto(ctx, req, employeeID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload user photo")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

func (handler *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUser")
	defer scope.End()

	employeeID := chi.URLParam(r, constant.RequestParamEmployeeID)

	if err := handler.service.Delete(ctx, employeeID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete user")

		response.WithError(w, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("User " + employeeID + " deleted by " + actor)

	response.WithJSON(w, http.StatusOK, fmt.Sprintf("User [%s] deleted", employeeID))
}
