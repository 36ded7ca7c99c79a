package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts. The request timeout is generous because a turn may
// wait on a slow synthesis backend before the webhook can be answered.
const (
	ServerRequestTimeout  = 240 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Background job intervals
const CleanupJobInterval = 1 * time.Hour

// Message-log retention; feedback retention is configured separately.
const MessageLogRetention = 30 * 24 * time.Hour

// Twilio REST API send timeout
const TwilioSendTimeout = 15 * time.Second
