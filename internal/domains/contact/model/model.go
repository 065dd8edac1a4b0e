package model

import (
	"dashboard/shared/model"
	"time"
)

const (
	TableName  = "contacts"
	EntityName = "contact"

	FieldID        = "id"
	FieldMessageID = "message_id"
	FieldDate      = "date"
	FieldFullName  = "full_name"
	FieldEmail     = "email"
	FieldSubject   = "subject"
	FieldStatus    = "status"
	FieldCreatedAt = "created_at"
)

const (
	StatusRead   = "read"
	StatusUnread = "unread"
)

var SortableFields = []string{FieldMessageID, FieldDate, FieldFullName, FieldEmail, FieldSubject, FieldStatus, FieldCreatedAt}

type Contact struct {
	ID        string    `db:"id"`
	MessageID string    `db:"message_id"`
	Photo     string    `db:"photo"`
	Date      time.Time `db:"date"`
	FullName  string    `db:"full_name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Subject   string    `db:"subject"`
	Comment   string    `db:"comment"`
	Status    string    `db:"status"`
	model.Metadata
}
