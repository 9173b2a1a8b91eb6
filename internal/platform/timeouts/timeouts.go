// Package timeouts defines shared timeout constants used across skyline
// commands.
package timeouts

import "time"

// GRPCDial caps the wait for a gRPC peer to report SERVING.
const GRPCDial = 2 * time.Second

// GRPCRequest caps the time allowed for a single call from the skyline client
// to the building service.
const GRPCRequest = 2 * time.Second

// Shutdown limits how long a gRPC server waits for in-flight requests during
// graceful shutdown before it is stopped.
const Shutdown = 5 * time.Second
