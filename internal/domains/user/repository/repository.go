package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"dashboard/infras/otel"
	"dashboard/infras/postgres"
	"dashboard/internal/domains/user/model"
	"dashboard/shared"
	gDto "dashboard/shared/dto"
	gRepo "dashboard/shared/repository"
)

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// NewMemory keeps users in process, unique by employee id and by email.
func NewMemory() User {
	return gRepo.NewMemory[model.User](model.EntityName, model.FieldEmployeeID, model.FieldEmail)
}

// ByEmail filters users on their stored, lower-cased address.
func ByEmail(email string) gDto.FilterGroup {
	return shared.FilterByID(model.NormalizeEmail(email), model.FieldEmail, model.TableName)
}
