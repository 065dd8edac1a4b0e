package dto

import (
	"dashboard/shared/validator"
	"strings"
)

const (
	MsgEmailRequired    = "Valid email is required."
	MsgPasswordRequired = "Password is required."
	MsgEmailInvalid     = "User must be a valid email."
)

// LoginRequest accepts the address under "identifier" or its alias "email".
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// Login is the address the user signs in with.
func (l *LoginRequest) Login() string {
	if strings.TrimSpace(l.Identifier) != "" {
		return strings.TrimSpace(l.Identifier)
	}

	return strings.TrimSpace(l.Email)
}

func (l *LoginRequest) Validate() []string {
	var errs []string

	login := l.Login()

	if login == "" {
		errs = append(errs, MsgEmailRequired)
	}

	if strings.TrimSpace(l.Password) == "" {
		errs = append(errs, MsgPasswordRequired)
	}

	if login != "" && validator.ValidateVar(login, "email") != nil {
		errs = append(errs, MsgEmailInvalid)
	}

	return errs
}

type LoginResponse struct {
	Token string `json:"token"`
}
