package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"dashboard/infras/jwt"
	"dashboard/infras/otel"
	"dashboard/internal/domains/auth/model/dto"
	userModel "dashboard/internal/domains/user/model"
	userRepo "dashboard/internal/domains/user/repository"
	"dashboard/shared/constant"
	"dashboard/shared/failure"
	"dashboard/shared/password"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

const msgInvalidCredentials = "Invalid credentials"

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		otel:       otel,
		jwtService: jwt,
	}
}

// Login exchanges valid credentials for a signed access token. Unknown users,
// wrong passwords and inactive accounts are indistinguishable to the caller.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, userRepo.ByEmail(req.Login()))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Login()).Msg("login attempt with unknown email")

		return res, failure.Unauthorized(msgInvalidCredentials) //nolint:wrapcheck
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		if !errors.Is(err, password.ErrInvalidPassword) {
			log.Error().Err(err).Msg("failed to verify password")

			return res, fmt.Errorf("failed to verify password: %w", err)
		}

		log.Warn().Str("email", req.Login()).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(msgInvalidCredentials) //nolint:wrapcheck
	}

	if user.Status != userModel.StatusActive {
		log.Warn().Str("employeeId", user.EmployeeID).Msg("login attempt on inactive account")

		return res, failure.Unauthorized(msgInvalidCredentials) //nolint:wrapcheck
	}

	token, err := s.jwtService.GenerateToken(user.EmployeeID, user.Email, user.Name)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	res.Token = token

	return res, nil
}
