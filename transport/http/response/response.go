package response

import (
	"dashboard/shared/constant"
	"dashboard/shared/failure"
	"dashboard/shared/logger"
	"encoding/json"
	"net/http"
	"strconv"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Errors struct {
	Errors []string `json:"errors"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithBody sends payload as the whole body, without the data envelope.
func WithBody(writer http.ResponseWriter, code int, payload any) {
	response(writer, code, payload)
}

// WithList sends a page of records. The unpaged total goes in X-Total-Count
// and the number of pages in X-Total-Pages.
func WithList[T any](writer http.ResponseWriter, items []T, total, pages int) {
	if items == nil {
		items = []T{}
	}

	writer.Header().Set(constant.ResponseHeaderTotalCount, strconv.Itoa(total))
	writer.Header().Set(constant.ResponseHeaderTotalPages, strconv.Itoa(pages))
	response(writer, http.StatusOK, Data[[]T]{Data: &items})
}

// WithError sends a response with an error message.
// Validation failures list every violation; server errors never leak their cause.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	if code >= http.StatusInternalServerError {
		logger.ErrorWithStack(err)

		errMsg := constant.ResponseErrorInternal
		response(writer, code, Error{Error: &errMsg})

		return
	}

	if errs := failure.GetErrors(err); len(errs) > 0 {
		response(writer, code, Errors{Errors: errs})

		return
	}

	errMsg := err.Error()
	response(writer, code, Error{Error: &errMsg})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
