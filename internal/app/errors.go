package service

import "errors"

// Sentinel kinds for service lifecycle errors.
var (
	ErrListen   = errors.New("listen failed")
	ErrShutdown = errors.New("shutdown failed")
)
