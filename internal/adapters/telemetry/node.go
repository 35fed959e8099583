package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"golang.org/x/term"

	"go.trai.ch/pin/internal/adapters/telemetry/progrock"
	"go.trai.ch/pin/internal/core/ports"
)

// NodeID is the unique identifier for the telemetry adapter node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			// Progress rendering only makes sense on an interactive terminal;
			// piped output gets the silent recorder.
			if term.IsTerminal(int(os.Stderr.Fd())) {
				return progrock.New(), nil
			}
			return NewNoOp(), nil
		},
	})
}
