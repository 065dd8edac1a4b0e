package user_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	otelMocks "dashboard/infras/otel/mocks"
	"dashboard/internal/domains/user/model/dto"
	serviceMocks "dashboard/internal/domains/user/service/mocks"
	"dashboard/internal/handlers/user"
	"dashboard/shared/constant"
	"dashboard/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const profile = `{
	"photo": "/Profile2.png",
	"name": "Shaun Jaycox",
	"employeeId": "EMP-32",
	"email": "Shaun@Test.com",
	"password": "123456",
	"startDate": "2024-11-13",
	"description": "Front Desk Receptionist.",
	"contact": "7339602795",
	"status": "ACTIVE"
}`

func setup(t *testing.T) (*serviceMocks.MockUser, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := serviceMocks.NewMockUser(ctrl)

	handler := user.New(service, otelMocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return service, router
}

func TestCreateUser(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req dto.CreateUserRequest) (dto.UserResponse, error) {
			assert.Equal(t, "123456", req.Password)

			return dto.UserResponse{EmployeeID: req.EmployeeID, Email: "shaun@test.com"}, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(profile)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"employeeId":"EMP-32"`)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestCreateUser_Invalid(t *testing.T) {
	_, router := setup(t)

	body := strings.Replace(profile, `"7339602795"`, `"12ab"`, 1)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":["Contact is required and must be a valid phone number."]}`, rec.Body.String())
}

func TestReplaceUser(t *testing.T) {
	t.Run("replaced", func(t *testing.T) {
		service, router := setup(t)
		service.EXPECT().Replace(gomock.Any(), gomock.Any(), "EMP-32").
			Return(dto.UserResponse{EmployeeID: "EMP-32", Name: "Shaun Jaycox"}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/EMP-32", strings.NewReader(profile)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("employee id cannot change", func(t *testing.T) {
		service, router := setup(t)
		service.EXPECT().Replace(gomock.Any(), gomock.Any(), "EMP-1").
			Return(dto.UserResponse{}, failure.BadRequestFromString(dto.MsgEmployeeIDChanged))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/EMP-1", strings.NewReader(profile)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Employee ID cannot be changed."}`, rec.Body.String())
	})
}

func TestGetUsers(t *testing.T) {
	service, router := setup(t)
	service.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(dto.GetUsersResponse{Users: []dto.UserResponse{{EmployeeID: "EMP-1"}}, TotalData: 1, TotalPage: 1}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users?status=ACTIVE", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get(constant.ResponseHeaderTotalCount))
	assert.Equal(t, "1", rec.Header().Get(constant.ResponseHeaderTotalPages))
}

func TestDeleteUser(t *testing.T) {
	service, router := setup(t)
	service.EXPECT().Delete(gomock.Any(), "EMP-404").Return(failure.NotFound("User not found"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/users/EMP-404", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, rec.Body.String())
}
