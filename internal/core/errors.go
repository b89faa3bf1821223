package core

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrInvalidPosition   = errors.New("position must be \"before\" or \"after\"")
	ErrCycleTaskCap      = errors.New("cycle already holds the maximum number of tasks")
	ErrJarNotFound       = errors.New("jar not found")
	ErrJarNotEmpty       = errors.New("jar holds a balance and needs a transfer target")
	ErrEmptyLabel        = errors.New("empty label")
)
