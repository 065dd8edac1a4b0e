package service_test

import (
	"context"
	"dashboard/config"
	otelMocks "dashboard/infras/otel/mocks"
	s3Mocks "dashboard/infras/s3/mocks"
	userMocks "dashboard/internal/domains/user/mocks"
	"dashboard/internal/domains/user/model"
	"dashboard/internal/domains/user/model/dto"
	"dashboard/internal/domains/user/repository"
	"dashboard/internal/domains/user/service"
	"dashboard/shared/cache"
	cacheMocks "dashboard/shared/cache/mocks"
	"dashboard/shared/constant"
	"dashboard/shared/failure"
	"dashboard/shared/password"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func ptr[T any](v T) *T {
	return &v
}

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Password.BcryptCost = 4

	return cfg
}

func validCreateRequest() dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Photo:       "https://img/eva.png",
		Name:        "Eva Ruiz",
		EmployeeID:  "EMP-7",
		Email:       "Eva.Ruiz@Hotel.test",
		Password:    "s3cret",
		StartDate:   "2023-02-01",
		Description: "Front desk",
		Contact:     "600111222",
		Status:      model.StatusActive,
	}
}

func storedUser() model.User {
	return model.User{
		ID:         "u-1",
		EmployeeID: "EMP-7",
		Name:       "Eva Ruiz",
		Email:      "eva.ruiz@hotel.test",
		Password:   "hash",
		Status:     model.StatusActive,
	}
}

type fixture struct {
	repo *userMocks.MockUser
	s3   *s3Mocks.MockS3
	svc  service.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	f := fixture{
		repo: userMocks.NewMockUser(ctrl),
		s3:   s3Mocks.NewMockS3(ctrl),
	}

	f.svc = service.New(f.repo, newConfig(), redisCache, otelMocks.NewOtel(), f.s3)

	redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	redisCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "EMP-1")
}

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "password is hashed and email lower-cased",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u model.User) error {
					assert.Equal(t, "eva.ruiz@hotel.test", u.Email)
					assert.NotEqual(t, "s3cret", u.Password)
					assert.NoError(t, password.Verify("s3cret", u.Password))

					return nil
				})
			},
		},
		{
			name: "duplicate employee id",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "email already registered",
			setupMock: func(f fixture) {
				gomock.InOrder(
					f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil),
					f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
				)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "insert fails",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(userContext(), validCreateRequest())

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "EMP-7", res.EmployeeID)
			assert.Equal(t, "eva.ruiz@hotel.test", res.Email)
		})
	}
}

func TestUserService_Update(t *testing.T) {
	t.Run("employee id cannot change", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(userContext(), dto.UpdateUserRequest{EmployeeID: ptr("EMP-8")}, "EMP-7")
		assert.Equal(t, dto.MsgEmployeeIDChanged, err.Error())
	})

	t.Run("empty patch", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(userContext(), dto.UpdateUserRequest{}, "EMP-7")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := f.svc.Update(userContext(), dto.UpdateUserRequest{Name: ptr("Eva")}, "EMP-404")
		assert.Equal(t, "User not found", err.Error())
	})

	t.Run("new password is hashed", func(t *testing.T) {
		f := newFixture(t)

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser(), nil),
			f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, fields map[string]any, _ any) error {
					hashed, ok := fields[model.FieldPassword].(string)
					require.True(t, ok)
					assert.NoError(t, password.Verify("rotated", hashed))

					return nil
				}),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser(), nil),
		)

		_, err := f.svc.Update(userContext(), dto.UpdateUserRequest{Password: ptr("rotated")}, "EMP-7")
		require.NoError(t, err)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser(), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Update(userContext(), dto.UpdateUserRequest{Email: ptr("taken@hotel.test")}, "EMP-7")
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("same email skips the uniqueness check", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser(), nil).Times(2)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Update(userContext(), dto.UpdateUserRequest{Email: ptr("EVA.RUIZ@hotel.test")}, "EMP-7")
		require.NoError(t, err)
	})
}

func TestUserService_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := cache.NewMemory()

	repo := repository.NewMemory()
	svc := service.New(repo, newConfig(), redisCache, otelMocks.NewOtel(), s3Mocks.NewMockS3(ctrl))
	ctx := userContext()

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	got, err := svc.Get(ctx, "EMP-7")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	stored, err := repo.Get(ctx, repository.ByEmail("EVA.RUIZ@HOTEL.TEST"))
	require.NoError(t, err)
	assert.NoError(t, password.Verify("s3cret", stored.Password))

	replaced, err := svc.Replace(ctx, dto.ReplaceUserRequest{
		Photo:       "https://img/eva2.png",
		Name:        "Eva R.",
		Email:       "eva@hotel.test",
		StartDate:   "2023-03-01",
		Description: "Night manager",
		Contact:     "600999888",
		Status:      model.StatusInactive,
	}, "EMP-7")
	require.NoError(t, err)
	assert.Equal(t, "2023-03-01", replaced.StartDate)
	assert.Equal(t, model.StatusInactive, replaced.Status)

	got, err = svc.Get(ctx, "EMP-7")
	require.NoError(t, err)
	assert.Equal(t, replaced, got)

	second := validCreateRequest()
	second.EmployeeID = "EMP-8"
	second.Email = "eva@hotel.test"

	_, err = svc.Create(ctx, second)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	require.NoError(t, svc.Delete(ctx, "EMP-7"))

	_, err = svc.Get(ctx, "EMP-7")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	assert.Equal(t, http.StatusNotFound, failure.GetCode(svc.Delete(ctx, "EMP-7")))
}
