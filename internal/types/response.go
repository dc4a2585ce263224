package types

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidID   = errors.New("invalid id")
	ErrUnavailable = errors.New("upstream unavailable")
	ErrQueueFull   = errors.New("queue is full")
)

// ApiResponse is the envelope every JSON endpoint returns.
type ApiResponse[T any] struct {
	Success   bool      `json:"success"`
	Data      T         `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func OK[T any](data T) ApiResponse[T] {
	return ApiResponse[T]{Success: true, Data: data, Timestamp: time.Now().UTC()}
}

func Failed[T any](data T) ApiResponse[T] {
	return ApiResponse[T]{Success: false, Data: data, Timestamp: time.Now().UTC()}
}
