package dto_test

import (
	"dashboard/internal/domains/contact/model"
	"dashboard/internal/domains/contact/model/dto"
	"dashboard/shared/failure"
	"dashboard/shared/validator"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() dto.CreateContactRequest {
	return dto.CreateContactRequest{
		Photo:     "https://img/ana.png",
		Date:      "2024-05-01T09:30:00Z",
		MessageID: "MSG-1",
		FullName:  "Ana Lopez",
		Email:     "ana@test.com",
		Phone:     "600111222",
		Subject:   "Late check-in",
		Comment:   "We arrive at midnight.",
		Status:    model.StatusUnread,
	}
}

func TestCreateContactRequest_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *dto.CreateContactRequest)
		expected []string
	}{
		{
			name:   "valid message",
			mutate: func(_ *dto.CreateContactRequest) {},
		},
		{
			name:   "calendar date is accepted",
			mutate: func(r *dto.CreateContactRequest) { r.Date = "2024-05-01" },
		},
		{
			name:     "malformed email",
			mutate:   func(r *dto.CreateContactRequest) { r.Email = "ana.test.com" },
			expected: []string{"Email must be a valid email address."},
		},
		{
			name:     "quoted local part",
			mutate:   func(r *dto.CreateContactRequest) { r.Email = `"a b"@test.com` },
			expected: []string{"Email must be a valid email address."},
		},
		{
			name:     "status outside the vocabulary",
			mutate:   func(r *dto.CreateContactRequest) { r.Status = "archived" },
			expected: []string{"Status must be either 'read' or 'unread'."},
		},
		{
			name: "all violations are listed",
			mutate: func(r *dto.CreateContactRequest) {
				r.Date = "yesterday"
				r.MessageID = " "
				r.Comment = ""
			},
			expected: []string{
				"Date must be a valid date string.",
				"Message ID is required and must be a valid non-empty string.",
				"Comment is required and must be a valid non-empty string.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.expected == nil {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.expected, failure.GetErrors(err))
		})
	}
}

func TestCreateContactRequest_ToModel(t *testing.T) {
	req := validRequest()

	contact, err := req.ToModel("EMP-1")
	require.NoError(t, err)
	assert.True(t, contact.Date.Equal(time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)))

	var res dto.ContactResponse
	res.FromModel(contact)

	rendered, err := time.Parse(time.RFC3339, res.Date)
	require.NoError(t, err)
	assert.True(t, rendered.Equal(contact.Date))
	assert.Equal(t, "MSG-1", res.MessageID)
}

func TestUpdateContactRequest(t *testing.T) {
	read := model.StatusRead
	other := "MSG-2"

	fields := (&dto.UpdateContactRequest{Status: &read}).ToFields("EMP-1")
	assert.Equal(t, model.StatusRead, fields[model.FieldStatus])

	assert.True(t, (&dto.UpdateContactRequest{MessageID: &other}).ChangesKey("MSG-1"))
}
