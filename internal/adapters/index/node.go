package index

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pin/internal/core/ports"
)

// NodeID is the unique identifier for the package index resolver node.
const NodeID graft.ID = "adapter.index"

func init() {
	graft.Register(graft.Node[ports.VersionResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VersionResolver, error) {
			return NewClient()
		},
	})
}
