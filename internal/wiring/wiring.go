// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pin/internal/adapters/fingerprint"
	_ "go.trai.ch/pin/internal/adapters/index"
	_ "go.trai.ch/pin/internal/adapters/lockstore"
	_ "go.trai.ch/pin/internal/adapters/logger"
	_ "go.trai.ch/pin/internal/adapters/pinfile"
	_ "go.trai.ch/pin/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/pin/internal/app"
	_ "go.trai.ch/pin/internal/engine/locker"
)
