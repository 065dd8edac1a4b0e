package service_test

import (
	"context"
	"dashboard/config"
	otelMocks "dashboard/infras/otel/mocks"
	s3Mocks "dashboard/infras/s3/mocks"
	roomMocks "dashboard/internal/domains/room/mocks"
	"dashboard/internal/domains/room/model"
	"dashboard/internal/domains/room/model/dto"
	"dashboard/internal/domains/room/repository"
	"dashboard/internal/domains/room/service"
	"dashboard/shared/cache"
	cacheMocks "dashboard/shared/cache/mocks"
	"dashboard/shared/constant"
	gDto "dashboard/shared/dto"
	"dashboard/shared/failure"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
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

	return cfg
}

func validCreateRequest() dto.CreateRoomRequest {
	return dto.CreateRoomRequest{
		RoomPhoto:  "https://cdn.hotel.test/rooms/101-old.png",
		RoomNumber: "101",
		RoomType:   "Double Bed",
		Facilities: "Wifi, TV",
		Rate:       "150",
		OfferPrice: "120",
		Status:     model.StatusAvailable,
		Amenities:  []string{"Pool"},
	}
}

func storedRoom() model.Room {
	return model.Room{
		ID:         "r-1",
		RoomNumber: "101",
		RoomPhoto:  "https://cdn.hotel.test/rooms/101-old.png",
		RoomType:   "Double Bed",
		Rate:       "150",
		OfferPrice: "120",
		Status:     model.StatusAvailable,
	}
}

type fixture struct {
	repo  *roomMocks.MockRoom
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Room
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  roomMocks.NewMockRoom(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	f.svc = service.New(f.repo, newConfig(), f.cache, otelMocks.NewOtel(), f.s3)

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "EMP-1")
}

type photoFile struct {
	*strings.Reader
}

func (photoFile) Close() error { return nil }

func photoUpload() gDto.PhotoUpload {
	header := &multipart.FileHeader{Filename: "Suite.PNG", Size: 4}

	return gDto.PhotoUpload{Header: header, File: photoFile{strings.NewReader("png!")}}
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r model.Room) error {
					assert.Equal(t, "101", r.RoomNumber)
					assert.Equal(t, "EMP-1", r.CreatedBy)
					assert.Nil(t, r.GuestFullName)

					return nil
				})
			},
		},
		{
			name: "duplicate room number",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "exist check fails",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
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
			assert.Equal(t, "101", res.RoomNumber)
			assert.Nil(t, res.Guest)
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "room:get:999", gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Get(context.Background(), "999")
		require.Error(t, err)
		assert.Equal(t, "Room not found", err.Error())
	})

	t.Run("found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil)

		res, err := f.svc.Get(context.Background(), "101")
		require.NoError(t, err)
		assert.Equal(t, model.StatusAvailable, res.Status)
	})
}

func TestRoomService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Room{storedRoom()}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Rooms, 1)
}

func TestRoomService_Update(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		setupMock func(f fixture)
		wantCode  int
		wantMsg   string
	}{
		{
			name:     "room number cannot change",
			req:      dto.UpdateRoomRequest{RoomNumber: ptr("102")},
			wantCode: http.StatusBadRequest,
			wantMsg:  dto.MsgRoomNumberChanged,
		},
		{
			name:     "empty patch",
			req:      dto.UpdateRoomRequest{},
			wantCode: http.StatusBadRequest,
			wantMsg:  "update request cannot be empty",
		},
		{
			name: "room not found",
			req:  dto.UpdateRoomRequest{Status: ptr(model.StatusBooked)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
			wantMsg:  "Room not found",
		},
		{
			name: "book the room",
			req: dto.UpdateRoomRequest{
				Status:  ptr(model.StatusBooked),
				Guest:   &dto.UpdateGuest{FullName: ptr("Ana Lopez")},
				CheckIn: ptr("2024-05-10"),
			},
			setupMock: func(f fixture) {
				booked := storedRoom()
				booked.Status = model.StatusBooked
				booked.GuestFullName = ptr("Ana Lopez")

				gomock.InOrder(
					f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil),
					f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, fields map[string]any, _ any) error {
							assert.Equal(t, model.StatusBooked, fields[model.FieldStatus])
							assert.Equal(t, "Ana Lopez", fields["guest_full_name"])

							return nil
						}),
					f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booked, nil),
				)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			res, err := f.svc.Update(userContext(), tt.req, "101")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Equal(t, tt.wantMsg, err.Error())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.StatusBooked, res.Status)
			require.NotNil(t, res.Guest)
			assert.Equal(t, "Ana Lopez", res.Guest.FullName)
		})
	}
}

func TestRoomService_UploadPhoto(t *testing.T) {
	t.Run("replaces the previous photo", func(t *testing.T) {
		f := newFixture(t)
		newURL := "https://cdn.hotel.test/rooms/101-new.png"

		updated := storedRoom()
		updated.RoomPhoto = newURL

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil),
			f.s3.EXPECT().UploadFile(gomock.Any(), "", model.TableName, gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, _, _ string, _ multipart.File, _ *multipart.FileHeader, name string) (string, error) {
					assert.True(t, strings.HasPrefix(name, "101-"))
					assert.True(t, strings.HasSuffix(name, ".png"))

					return newURL, nil
				}),
			f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, fields map[string]any, _ any) error {
					assert.Equal(t, newURL, fields[model.FieldRoomPhoto])

					return nil
				}),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil),
			f.s3.EXPECT().GetObjectNameFromURL(storedRoom().RoomPhoto).Return("rooms/101-old.png"),
			f.s3.EXPECT().DeleteFile(gomock.Any(), "", "rooms/101-old.png").Return(nil),
		)

		res, err := f.svc.UploadPhoto(userContext(), photoUpload(), "101")
		require.NoError(t, err)
		assert.Equal(t, newURL, res.RoomPhoto)
	})

	t.Run("removes the upload when the update fails", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.hotel.test/rooms/101-x.png", nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
		f.s3.EXPECT().DeleteFile(gomock.Any(), "", gomock.Any()).DoAndReturn(func(_ context.Context, _, key string) error {
			assert.True(t, strings.HasPrefix(key, "rooms/101-"))

			return nil
		})

		_, err := f.svc.UploadPhoto(userContext(), photoUpload(), "101")
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("unknown room uploads nothing", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.UploadPhoto(userContext(), photoUpload(), "999")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := cache.NewMemory()

	svc := service.New(repository.NewMemory(), newConfig(), redisCache, otelMocks.NewOtel(), s3Mocks.NewMockS3(ctrl))
	ctx := userContext()

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	got, err := svc.Get(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	cached, err := svc.Get(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, got, cached)

	patched, err := svc.Update(ctx, dto.UpdateRoomRequest{Status: ptr(model.StatusBooked), CheckIn: ptr("2024-05-10")}, "101")
	require.NoError(t, err)
	assert.Equal(t, model.StatusBooked, patched.Status)
	assert.Equal(t, "2024-05-10", patched.CheckIn)

	got, err = svc.Get(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, patched, got)

	require.NoError(t, svc.Delete(ctx, "101"))

	_, err = svc.Get(ctx, "101")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	err = svc.Delete(ctx, "101")
	assert.Equal(t, "Room not found", err.Error())
}
