package locker

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pin/internal/adapters/fingerprint" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pin/internal/adapters/index"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pin/internal/adapters/telemetry"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pin/internal/core/ports"
)

// NodeID is the unique identifier for the locker engine node.
const NodeID graft.ID = "engine.locker"

func init() {
	graft.Register(graft.Node[*Locker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			index.NodeID,
			fingerprint.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Locker, error) {
			resolver, err := graft.Dep[ports.VersionResolver](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewLocker(resolver, hasher, tel), nil
		},
	})
}
