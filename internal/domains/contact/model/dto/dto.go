package dto

import (
	"dashboard/internal/domains/contact/model"
	"dashboard/shared"
	gDto "dashboard/shared/dto"
	gModel "dashboard/shared/model"
	"dashboard/shared/timezone"
	"time"

	"github.com/google/uuid"
)

const MsgMessageIDChanged = "Message ID cannot be changed."

type CreateContactRequest struct {
	Photo     string `json:"photo"     validate:"required,notblank"          msg:"Photo URL is required and must be a valid non-empty string."`
	Date      string `json:"date"      validate:"required,date"              msg:"Date must be a valid date string."`
	MessageID string `json:"messageId" validate:"required,notblank"          msg:"Message ID is required and must be a valid non-empty string."`
	FullName  string `json:"fullName"  validate:"required,notblank"          msg:"Full name is required and must be a valid non-empty string."`
	Email     string `json:"email"     validate:"required,email"             msg:"Email must be a valid email address."`
	Phone     string `json:"phone"     validate:"required,notblank"          msg:"Phone number is required and must be a valid non-empty string."`
	Subject   string `json:"subject"   validate:"required,notblank"          msg:"Subject is required and must be a valid non-empty string."`
	Comment   string `json:"comment"   validate:"required,notblank"          msg:"Comment is required and must be a valid non-empty string."`
	Status    string `json:"status"    validate:"required,oneof=read unread" msg:"Status must be either 'read' or 'unread'."`
}

func (c *CreateContactRequest) ToModel(user string) (model.Contact, error) {
	date, err := timezone.ParseDate(c.Date)
	if err != nil {
		return model.Contact{}, err //nolint:wrapcheck
	}

	now := timezone.Now()

	return model.Contact{
		ID:        uuid.NewString(),
		MessageID: c.MessageID,
		Photo:     c.Photo,
		Date:      date,
		FullName:  c.FullName,
		Email:     c.Email,
		Phone:     c.Phone,
		Subject:   c.Subject,
		Comment:   c.Comment,
		Status:    c.Status,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateContactRequest struct {
	MessageID *string `db:"-"         json:"messageId" validate:"omitnil,notblank"          msg:"Message ID is required and must be a valid non-empty string."`
	Photo     *string `db:"photo"     json:"photo"     validate:"omitnil,notblank"          msg:"Photo URL is required and must be a valid non-empty string."`
	Date      *string `db:"date"      json:"date"      validate:"omitnil,date"              msg:"Date must be a valid date string."`
	FullName  *string `db:"full_name" json:"fullName"  validate:"omitnil,notblank"          msg:"Full name is required and must be a valid non-empty string."`
	Email     *string `db:"email"     json:"email"     validate:"omitnil,email"             msg:"Email must be a valid email address."`
	Phone     *string `db:"phone"     json:"phone"     validate:"omitnil,notblank"          msg:"Phone number is required and must be a valid non-empty string."`
	Subject   *string `db:"subject"   json:"subject"   validate:"omitnil,notblank"          msg:"Subject is required and must be a valid non-empty string."`
	Comment   *string `db:"comment"   json:"comment"   validate:"omitnil,notblank"          msg:"Comment is required and must be a valid non-empty string."`
	Status    *string `db:"status"    json:"status"    validate:"omitnil,oneof=read unread" msg:"Status must be either 'read' or 'unread'."`
}

func (u *UpdateContactRequest) ChangesKey(messageID string) bool {
	return u.MessageID != nil && *u.MessageID != messageID
}

func (u *UpdateContactRequest) ToFields(user string) map[string]any {
	return shared.ParseDateFields(shared.TransformFields(u, user), model.FieldDate)
}

type ContactResponse struct {
	MessageID string `json:"messageId"`
	Photo     string `json:"photo"`
	Date      string `json:"date"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Comment   string `json:"comment"`
	Status    string `json:"status"`
	gDto.Metadata
}

func (r *ContactResponse) FromModel(model model.Contact) {
	r.MessageID = model.MessageID
	r.Photo = model.Photo
	r.Date = timezone.Format(model.Date, time.RFC3339)
	r.FullName = model.FullName
	r.Email = model.Email
	r.Phone = model.Phone
	r.Subject = model.Subject
	r.Comment = model.Comment
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetContactsResponse struct {
	Contacts  []ContactResponse `json:"contacts"`
	TotalPage int               `json:"totalPage"`
	TotalData int               `json:"totalData"`
}

func (r *GetContactsResponse) FromModels(models []model.Contact, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Contacts = make([]ContactResponse, len(models))
	for i, mod := range models {
		r.Contacts[i].FromModel(mod)
	}
}
