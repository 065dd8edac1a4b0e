package dto

import (
	"dashboard/internal/domains/user/model"
	"dashboard/shared"
	gDto "dashboard/shared/dto"
	gModel "dashboard/shared/model"
	"dashboard/shared/timezone"

	"github.com/google/uuid"
)

const MsgEmployeeIDChanged = "Employee ID cannot be changed."

type CreateUserRequest struct {
	Photo       string `json:"photo"       validate:"required"                      msg:"Photo is required and must be a string."`
	Name        string `json:"name"        validate:"required,notblank"             msg:"Name is required and must be a non-empty string."`
	EmployeeID  string `json:"employeeId"  validate:"required,notblank"             msg:"Employee ID is required and must be a string."`
	Email       string `json:"email"       validate:"required,email"                msg:"Email is required and must be a valid email address."`
	Password    string `json:"password"    validate:"required,notblank"             msg:"Password is required."`
	StartDate   string `json:"startDate"   validate:"required,date"                 msg:"Start Date is required and must be a valid date."`
	Description string `json:"description" validate:"required,notblank"             msg:"Description is required and must be a non-empty string."`
	Contact     string `json:"contact"     validate:"required,number,min=9,max=12"  msg:"Contact is required and must be a valid phone number."`
	Status      string `json:"status"      validate:"required,oneof=ACTIVE INACTIVE" msg:"Status is required and must be either \"ACTIVE\" or \"INACTIVE\"."`
}

func (c *CreateUserRequest) ToModel(user, hashedPassword string) (model.User, error) {
	startDate, err := timezone.ParseDate(c.StartDate)
	if err != nil {
		return model.User{}, err //nolint:wrapcheck
	}

	now := timezone.Now()

	return model.User{
		ID:          uuid.NewString(),
		EmployeeID:  c.EmployeeID,
		Photo:       c.Photo,
		Name:        c.Name,
		Email:       model.NormalizeEmail(c.Email),
		Password:    hashedPassword,
		StartDate:   startDate,
		Description: c.Description,
		Contact:     c.Contact,
		Status:      c.Status,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

// ReplaceUserRequest is a full profile sent with PUT. The password is kept
// unless a new one is supplied.
type ReplaceUserRequest struct {
	Photo       string  `db:"photo"       json:"photo"       validate:"required"                       msg:"Photo is required and must be a string."`
	Name        string  `db:"name"        json:"name"        validate:"required,notblank"              msg:"Name is required and must be a non-empty string."`
	EmployeeID  string  `db:"-"           json:"employeeId"  validate:"omitempty,notblank"             msg:"Employee ID is required and must be a string."`
	Email       string  `db:"email"       json:"email"       validate:"required,email"                 msg:"Email is required and must be a valid email address."`
	Password    *string `db:"-"           json:"password"    validate:"omitnil,notblank"               msg:"Password is required."`
	StartDate   string  `db:"start_date"  json:"startDate"   validate:"required,date"                  msg:"Start Date is required and must be a valid date."`
	Description string  `db:"description" json:"description" validate:"required,notblank"              msg:"Description is required and must be a non-empty string."`
	Contact     string  `db:"contact"     json:"contact"     validate:"required,number,min=9,max=12"   msg:"Contact is required and must be a valid phone number."`
	Status      string  `db:"status"      json:"status"      validate:"required,oneof=ACTIVE INACTIVE" msg:"Status is required and must be either \"ACTIVE\" or \"INACTIVE\"."`
}

func (r *ReplaceUserRequest) ChangesKey(employeeID string) bool {
	return r.EmployeeID != "" && r.EmployeeID != employeeID
}

func (r *ReplaceUserRequest) NewEmail() *string {
	email := model.NormalizeEmail(r.Email)

	return &email
}

func (r *ReplaceUserRequest) NewPassword() *string {
	return r.Password
}

func (r *ReplaceUserRequest) ToFields(user string) map[string]any {
	fields := shared.TransformFields(r, user)
	fields[model.FieldEmail] = model.NormalizeEmail(r.Email)

	return shared.ParseDateFields(fields, model.FieldStartDate)
}

type UpdateUserRequest struct {
	Photo       *string `db:"photo"       json:"photo"       validate:"omitnil"                       msg:"Photo is required and must be a string."`
	Name        *string `db:"name"        json:"name"        validate:"omitnil,notblank"              msg:"Name is required and must be a non-empty string."`
	EmployeeID  *string `db:"-"           json:"employeeId"  validate:"omitnil,notblank"              msg:"Employee ID is required and must be a string."`
	Email       *string `db:"email"       json:"email"       validate:"omitnil,email"                 msg:"Email is required and must be a valid email address."`
	Password    *string `db:"-"           json:"password"    validate:"omitnil,notblank"              msg:"Password is required."`
	StartDate   *string `db:"start_date"  json:"startDate"   validate:"omitnil,date"                  msg:"Start Date is required and must be a valid date."`
	Description *string `db:"description" json:"description" validate:"omitnil,notblank"              msg:"Description is required and must be a non-empty string."`
	Contact     *string `db:"contact"     json:"contact"     validate:"omitnil,number,min=9,max=12"   msg:"Contact is required and must be a valid phone number."`
	Status      *string `db:"status"      json:"status"      validate:"omitnil,oneof=ACTIVE INACTIVE" msg:"Status is required and must be either \"ACTIVE\" or \"INACTIVE\"."`
}

func (u *UpdateUserRequest) ChangesKey(employeeID string) bool {
	return u.EmployeeID != nil && *u.EmployeeID != employeeID
}

func (u *UpdateUserRequest) NewEmail() *string {
	if u.Email == nil {
		return nil
	}

	email := model.NormalizeEmail(*u.Email)

	return &email
}

func (u *UpdateUserRequest) NewPassword() *string {
	return u.Password
}

func (u *UpdateUserRequest) ToFields(user string) map[string]any {
	fields := shared.TransformFields(u, user)
	if email := u.NewEmail(); email != nil {
		fields[model.FieldEmail] = *email
	}

	return shared.ParseDateFields(fields, model.FieldStartDate)
}

type UserResponse struct {
	EmployeeID  string `json:"employeeId"`
	Photo       string `json:"photo"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	StartDate   string `json:"startDate"`
	Description string `json:"description"`
	Contact     string `json:"contact"`
	Status      string `json:"status"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.EmployeeID = user.EmployeeID
	r.Photo = user.Photo
	r.Name = user.Name
	r.Email = user.Email
	r.StartDate = timezone.FormatDate(user.StartDate)
	r.Description = user.Description
	r.Contact = user.Contact
	r.Status = user.Status
	r.Metadata.FromModel(user.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"totalPage"`
	TotalData int            `json:"totalData"`
}

func (r *GetUsersResponse) FromModels(users []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(users))
	for i, user := range users {
		r.Users[i].FromModel(user)
	}
}
