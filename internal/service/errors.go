package service

import "errors"

// Sentinel errors for service layer
var (
	ErrNotFound = errors.New("not found")
)
