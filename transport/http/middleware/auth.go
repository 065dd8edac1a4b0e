package middleware

import (
	"context"
	"dashboard/infras/jwt"
	"dashboard/infras/otel"
	"dashboard/shared/constant"
	"dashboard/shared/failure"
	"dashboard/transport/http/response"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// Auth guards the resource routes with a bearer access token.
type Auth interface {
	Auth(http.Handler) http.Handler
}

type authImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
}

func NewAuthMiddleware(jwtService jwt.JWT, otel otel.Otel) Auth {
	return &authImpl{
		jwtService: jwtService,
		otel:       otel,
	}
}

// Auth rejects requests without a verifiable token and places the verified
// claims in the request context.
func (m *authImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
		})

		authHeader := strings.TrimSpace(request.Header.Get(constant.RequestHeaderAuthorization))
		if authHeader == "" || !strings.Contains(authHeader, " ") {
			err := failure.Unauthorized(constant.ResponseErrorNoToken)
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			log.Debug().Err(err).Msg("malformed authorization header")

			err := failure.Unauthorized(constant.ResponseErrorInvalidToken)
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil || claims.UserID == "" {
			log.Debug().Err(err).Msg("rejected access token")

			err := failure.Unauthorized(constant.ResponseErrorInvalidToken)
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserName, claims.Name)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.ID)

		scope.SetAttribute("user.id", claims.UserID)
		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
