package model

import (
	"dashboard/shared/model"
	"strings"
	"time"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID          = "id"
	FieldEmployeeID  = "employee_id"
	FieldPhoto       = "photo"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldStartDate   = "start_date"
	FieldDescription = "description"
	FieldContact     = "contact"
	FieldStatus      = "status"
	FieldCreatedAt   = "created_at"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

var SortableFields = []string{FieldEmployeeID, FieldName, FieldEmail, FieldStartDate, FieldStatus, FieldCreatedAt}

type User struct {
	ID          string    `db:"id"`
	EmployeeID  string    `db:"employee_id"`
	Photo       string    `db:"photo"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	Password    string    `db:"password"`
	StartDate   time.Time `db:"start_date"`
	Description string    `db:"description"`
	Contact     string    `db:"contact"`
	Status      string    `db:"status"`
	model.Metadata
}

// NormalizeEmail is the stored form of an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
