package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pin/internal/adapters/telemetry"
)

func TestNoOp(t *testing.T) {
	noop := telemetry.NewNoOp()

	ctx, vertex := noop.Record(context.Background(), "pytest")
	assert.Equal(t, context.Background(), ctx)

	// None of these should panic or block.
	vertex.Log("resolving")
	vertex.Cached()
	vertex.Complete(errors.New("ignored"))

	assert.NoError(t, noop.Close())
}
