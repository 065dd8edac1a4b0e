package jwt_test

import (
	"errors"
	"testing"
	"time"

	"dashboard/config"
	"dashboard/infras/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestIssueAndVerify(t *testing.T) {
	claims := jwt.Claims{UserID: "EMP-1", Email: "user@test.com", Name: "Admin"}

	token, err := jwt.Issue(claims, secret, time.Hour)
	require.NoError(t, err)

	got, err := jwt.Verify(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "EMP-1", got.UserID)
	assert.Equal(t, "user@test.com", got.Email)
	assert.Equal(t, "Admin", got.Name)
	assert.Equal(t, "EMP-1", got.Subject)
	assert.NotEmpty(t, got.ID)
}

func TestVerify_Failures(t *testing.T) {
	claims := jwt.Claims{UserID: "EMP-1", Email: "user@test.com", Name: "Admin"}

	valid, err := jwt.Issue(claims, secret, time.Hour)
	require.NoError(t, err)

	expired, err := jwt.Issue(claims, secret, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		secret   string
		expected error
	}{
		{name: "expired", token: expired, secret: secret, expected: jwt.ErrExpiredToken},
		{name: "different secret", token: valid, secret: "other", expected: jwt.ErrInvalidToken},
		{name: "malformed", token: "not.a.token", secret: secret, expected: jwt.ErrInvalidToken},
		{name: "empty", token: "", secret: secret, expected: jwt.ErrInvalidToken},
		{name: "tampered", token: valid + "x", secret: secret, expected: jwt.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jwt.Verify(tt.token, tt.secret)

			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.expected)
			assert.ErrorIs(t, err, jwt.ErrInvalidToken)
		})
	}
}

func TestIssue_MissingSecret(t *testing.T) {
	_, err := jwt.Issue(jwt.Claims{UserID: "EMP-1"}, "", time.Hour)

	assert.True(t, errors.Is(err, jwt.ErrMissingSecret))
}

func TestService(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "hotel-dashboard"
	cfg.JWT.AccessSecret = secret
	cfg.JWT.AccessExpireMin = 60

	service := jwt.New(cfg)

	token, err := service.GenerateToken("EMP-7", "staff@test.com", "Staff")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "EMP-7", claims.UserID)
	assert.Equal(t, "hotel-dashboard", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
		wantErr  bool
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", expected: "abc.def.ghi"},
		{name: "empty header", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic dXNlcg==", wantErr: true},
		{name: "missing token", header: "Bearer ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}
