package room_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	otelMocks "dashboard/infras/otel/mocks"
	"dashboard/internal/domains/room/model/dto"
	serviceMocks "dashboard/internal/domains/room/service/mocks"
	"dashboard/internal/handlers/room"
	"dashboard/shared/constant"
	gDto "dashboard/shared/dto"
	"dashboard/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*serviceMocks.MockRoom, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := serviceMocks.NewMockRoom(ctrl)

	handler := room.New(service, otelMocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return service, router
}

func photoRequest(t *testing.T, contentType string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="suite.png"`)
	header.Set(constant.RequestHeaderContentType, contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/rooms/101/photo", body)
	req.Header.Set(constant.RequestHeaderContentType, writer.FormDataContentType())

	return req
}

func TestUpdateRoom(t *testing.T) {
	t.Run("invalid status names the field", func(t *testing.T) {
		_, router := setup(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/rooms/101", strings.NewReader(`{"status":"Closed"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"errors":["Room status must be 'Available' or 'Booked'."]}`, rec.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		_, router := setup(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/rooms/101", strings.NewReader(`{"status":`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error"`)
	})

	t.Run("updated", func(t *testing.T) {
		service, router := setup(t)
		service.EXPECT().Update(gomock.Any(), gomock.Any(), "101").
			Return(dto.RoomResponse{RoomNumber: "101", Status: "Booked"}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/rooms/101", strings.NewReader(`{"status":"Booked"}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"Booked"`)
	})

	t.Run("unknown room", func(t *testing.T) {
		service, router := setup(t)
		service.EXPECT().Update(gomock.Any(), gomock.Any(), "999").
			Return(dto.RoomResponse{}, failure.NotFound("Room not found"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/rooms/999", strings.NewReader(`{"status":"Booked"}`)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Room not found"}`, rec.Body.String())
	})
}

func TestUploadPhoto(t *testing.T) {
	t.Run("stored", func(t *testing.T) {
		service, router := setup(t)
		service.EXPECT().UploadPhoto(gomock.Any(), gomock.Any(), "101").DoAndReturn(
			func(_ any, req gDto.PhotoUpload, _ string) (dto.RoomResponse, error) {
				assert.Equal(t, "suite.png", req.Header.Filename)

				return dto.RoomResponse{RoomNumber: "101", RoomPhoto: "https://cdn.test/rooms/101.png"}, nil
			})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, photoRequest(t, "image/png", []byte("png-bytes")))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "https://cdn.test/rooms/101.png")
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, router := setup(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, photoRequest(t, "application/pdf", []byte("%PDF")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"errors":["Photo must be a PNG, JPEG or WEBP image of at most 5 MB."]}`, rec.Body.String())
	})

	t.Run("no file", func(t *testing.T) {
		_, router := setup(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rooms/101/photo", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"errors":["Photo file is required."]}`, rec.Body.String())
	})
}

func TestDeleteRoom(t *testing.T) {
	service, router := setup(t)
	service.EXPECT().Delete(gomock.Any(), "101").Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/rooms/101", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":"Room [101] deleted"}`, rec.Body.String())
}
