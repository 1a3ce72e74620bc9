package services

import "errors"

// Sentinel errors returned by services so handlers can map them to
// HTTP status codes without inspecting gorm internals.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrSubtaskNotFound = errors.New("subtask not found")
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrUnknownStat     = errors.New("unknown stat name")
)
