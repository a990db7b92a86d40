package service

import (
	"errors"

	"github.com/veioenza/seqr/internal/repository"
)

var (
	ErrNotFound  = repository.ErrNotFound
	ErrForbidden = errors.New("permission denied")
	ErrInvalid   = errors.New("invalid request")
)
