package redisconn

import "errors"

var (
	// ErrFailedToParseConnString is returned when the connection URL is not a valid Redis URL.
	ErrFailedToParseConnString = errors.New("failed to parse redis connection string")

	// ErrRedisNotReady is returned when the server cannot be reached within the configured retries.
	ErrRedisNotReady = errors.New("redis server is not ready")
)
