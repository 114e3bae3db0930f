package domain

import (
	"errors"
)

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageUserNotAllowed       = "user not allowed"

	ErrParseUUID       = errors.New("failed to parse UUID")
	ErrUserNotAllowed  = errors.New("user not allowed")
	ErrUnauthenticated = errors.New("missing or invalid credentials")
	ErrTokenNotFound   = errors.New("token not found")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrDecodingFailed  = errors.New("failed to decode ciphertext")
)
