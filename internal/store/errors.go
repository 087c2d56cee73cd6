package store

import "errors"

var (
	ErrDuplicateID        = errors.New("duplicate id")
	ErrNotFound           = errors.New("not found")
	ErrNotOwner           = errors.New("actor does not own relationship")
	ErrEmptyID            = errors.New("id is required")
	ErrEmptyKey           = errors.New("key is required")
	ErrEmptyContent       = errors.New("content is required")
	ErrInvalidEpisodeType = errors.New("invalid episode type")
)
