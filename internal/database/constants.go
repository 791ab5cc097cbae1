package database

import "time"

const (
	// DefaultMinConnections keeps a couple of warm connections in the pool
	// so the first requests after idle do not pay connection setup.
	DefaultMinConnections = 2

	// ConnectPingTimeout bounds the startup connectivity check.
	ConnectPingTimeout = 10 * time.Second
)

const (
	LogMsgDatabaseConnected = "Connected to the database"
)
