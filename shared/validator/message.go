package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const (
	tagMessage       = "msg"
	tagMessagePrefix = "msg_"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"notblank": "{field} must not be blank",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be less than or equal to {param}",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"numeric":  "{field} must be a valid number",
		"number":   "{field} must be a valid number",
		"date":     "{field} must be a valid date",
		"datetime": "{field} must match the format {param}",
	}
)

// messageList turns validation errors into human messages, one per failed field.
func messageList(root reflect.Type, err error) []string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(valErrors))
	for _, valErr := range valErrors {
		msgs = append(msgs, fieldMessage(root, valErr))
	}

	return msgs
}

func fieldMessage(root reflect.Type, valErr val.FieldError) string {
	if field, ok := lookupField(root, valErr.StructNamespace()); ok {
		if msg := field.Tag.Get(tagMessagePrefix + valErr.Tag()); msg != "" {
			return msg
		}

		if msg := field.Tag.Get(tagMessage); msg != "" {
			return msg
		}
	}

	return genericMessage(valErr)
}

func genericMessage(valErr val.FieldError) string {
	errStr := messages[valErr.Tag()]
	if errStr == "" {
		return valErr.Error()
	}

	errStr = strings.ReplaceAll(errStr, "{field}", valErr.Field())
	errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

	return errStr
}

// lookupField walks a namespace such as "CreateBookingRequest.Guest.FullName"
// down from root and returns the final struct field.
func lookupField(root reflect.Type, namespace string) (reflect.StructField, bool) {
	if root == nil {
		return reflect.StructField{}, false
	}

	parts := strings.Split(namespace, ".")
	if len(parts) < 2 {
		return reflect.StructField{}, false
	}

	current := root
	var field reflect.StructField

	for _, part := range parts[1:] {
		current = indirect(current)
		if current.Kind() != reflect.Struct {
			return reflect.StructField{}, false
		}

		if idx := strings.IndexByte(part, '['); idx >= 0 {
			part = part[:idx]
		}

		found, ok := current.FieldByName(part)
		if !ok {
			return reflect.StructField{}, false
		}

		field = found
		current = found.Type
	}

	return field, true
}

func indirect(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Pointer || typ.Kind() == reflect.Slice || typ.Kind() == reflect.Array || typ.Kind() == reflect.Map {
		typ = typ.Elem()
	}

	return typ
}
