package biz

import (
	"errors"
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidJWT         = errors.New("invalid jwt token")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrMemberLimitReached = errors.New("organization member limit reached")
	ErrAlreadyMember      = errors.New("user is already a member")
	ErrInternal           = errors.New("server internal error, please try again later")
)
