package validator

import (
	"dashboard/shared/constant"
	"dashboard/shared/failure"
	"dashboard/shared/timezone"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

const bytesPerMB = 1024 * 1024

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// CrossFieldValidator is implemented by payloads with checks spanning several fields.
type CrossFieldValidator interface {
	Validate() []string
}

// registerMimetypeValidation checks the declared Content-Type of an uploaded part.
func registerMimetypeValidation(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	contentType := file.Header.Get(constant.RequestHeaderContentType)

	return slices.Contains(strings.Fields(field.Param()), contentType)
}

// registerFileSizeValidation caps an uploaded part at the given number of megabytes.
func registerFileSizeValidation(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(file.Size) <= maxSizeMB*bytesPerMB
}

func fileHeader(field val.FieldLevel) (multipart.FileHeader, bool) {
	switch file := field.Field().Interface().(type) {
	case multipart.FileHeader:
		return file, true
	case *multipart.FileHeader:
		if file == nil {
			return multipart.FileHeader{}, false
		}

		return *file, true
	default:
		return multipart.FileHeader{}, false
	}
}

func registerNotBlankValidation(field val.FieldLevel) bool {
	if field.Field().Kind() != reflect.String {
		return !field.Field().IsZero()
	}

	return strings.TrimSpace(field.Field().String()) != ""
}

// registerEmailValidation replaces the RFC 5322 email rule with a plain
// address shape: no quoted local parts and a top-level domain of at least
// two letters.
func registerEmailValidation(field val.FieldLevel) bool {
	if field.Field().Kind() != reflect.String {
		return false
	}

	return emailPattern.MatchString(field.Field().String())
}

func registerDateValidation(field val.FieldLevel) bool {
	if field.Field().Kind() != reflect.String {
		return false
	}

	_, err := timezone.ParseDate(field.Field().String())

	return err == nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}

		return name
	})

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		empty := fl.Field().IsZero()

		return empty
	})

	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("notblank", registerNotBlankValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("email", registerEmailValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("date", registerDateValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("mimetypes", registerMimetypeValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("maxfilesize", registerFileSizeValidation)
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error listing every violation is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

// ValidateStruct runs every tag rule and the payload's cross-field checks,
// returning all violations in field order without duplicates.
func ValidateStruct[T any](data *T) error {
	return failure.Validation(Errors(data)...) //nolint:wrapcheck
}

// Errors lists the violations of data without wrapping them in a failure.
func Errors[T any](data *T) []string {
	msgs := []string{}
	seen := map[string]struct{}{}

	add := func(list ...string) {
		for _, msg := range list {
			if _, ok := seen[msg]; ok {
				continue
			}

			seen[msg] = struct{}{}
			msgs = append(msgs, msg)
		}
	}

	if err := validate.Struct(data); err != nil {
		add(messageList(reflect.TypeOf(data), err)...)
	}

	if cross, ok := any(data).(CrossFieldValidator); ok {
		add(cross.Validate()...)
	}

	return msgs
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		return failure.Validation(messageList(nil, err)...) //nolint:wrapcheck
	}

	return nil
}
