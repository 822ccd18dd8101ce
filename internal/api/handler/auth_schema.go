package handler

import "time"

// errorResponse documents the error envelope rendered by the central error
// handler. Handlers never build it directly.
type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

type loginResponse struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
}

type registerRequest struct {
	Username        string `json:"username"        validate:"required,max=100"`
	Password        string `json:"password"        validate:"required,min=6,max=100"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Email           string `json:"email,omitempty" validate:"omitempty,email,max=150"`
}

type registerResponse struct {
	Message string `json:"message"`
}
