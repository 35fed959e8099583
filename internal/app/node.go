package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pin/internal/adapters/fingerprint" //nolint:depguard // Wired in app layer
	"go.trai.ch/pin/internal/adapters/lockstore"   //nolint:depguard // Wired in app layer
	"go.trai.ch/pin/internal/adapters/logger"      //nolint:depguard // Wired in app layer
	"go.trai.ch/pin/internal/adapters/pinfile"     //nolint:depguard // Wired in app layer
	"go.trai.ch/pin/internal/adapters/telemetry"   //nolint:depguard // Wired in app layer
	"go.trai.ch/pin/internal/core/ports"
	"go.trai.ch/pin/internal/engine/locker"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			pinfile.NodeID,
			locker.NodeID,
			lockstore.NodeID,
			fingerprint.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			store, err := graft.Dep[*pinfile.Store](ctx)
			if err != nil {
				return nil, err
			}

			lock, err := graft.Dep[*locker.Locker](ctx)
			if err != nil {
				return nil, err
			}

			lockStore, err := graft.Dep[ports.LockStore](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(store, lock, lockStore, hasher, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       application,
		Logger:    log,
		Telemetry: tel,
	}, nil
}
