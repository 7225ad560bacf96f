package apperrors

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyMerged = errors.New("project is already merged")
	ErrSelfMerge     = errors.New("cannot merge a project into itself")
)
