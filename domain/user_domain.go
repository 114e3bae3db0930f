package domain

import (
	"errors"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login success"
	MessageSuccessGetMe          = "success get profile"
	MessageSuccessUpdateUser     = "user updated successfully"
	MessageSuccessDeleteUser     = "user deleted successfully"
	MessageSuccessForgotPassword = "password recovery email sent"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetMe          = "failed to get profile"
	MessageFailedUpdateUser     = "failed to update user"
	MessageFailedDeleteUser     = "failed to delete user"
	MessageFailedForgotPassword = "failed to send password recovery email"

	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyUsed    = errors.New("email already used")
	ErrUsernameAlreadyUsed = errors.New("username already used")
	ErrInvalidCredentials  = errors.New("invalid email or password")
)

type (
	RegisterRequest struct {
		Username string `json:"username" validate:"required,min=3,max=32"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}

	// Pointer fields distinguish "not provided" from "explicitly set";
	// nil keeps the stored value.
	UpdateUserRequest struct {
		Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=32"`
		Email    *string `json:"email,omitempty" validate:"omitempty,email"`
		Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	UserResponse struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		IsAdmin   bool   `json:"is_admin"`
		AvatarURL string `json:"avatar_url,omitempty"`
	}
)
