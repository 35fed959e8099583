package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pin/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestWithMeta_KeepsSentinelMatchable(t *testing.T) {
	err := domain.WithMeta(domain.ErrPinNotFound, "name", "pytest")

	// The sentinel must survive decoration: callers branch on errors.Is.
	require.ErrorIs(t, err, domain.ErrPinNotFound)
	assert.Equal(t, domain.ErrPinNotFound.Error(), err.Error())

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "pytest", zErr.Metadata()["name"])
}

func TestWithMeta_ChainsFurtherMetadata(t *testing.T) {
	err := domain.WithMeta(domain.ErrConflictingPins, "name", "mypy")
	err = zerr.With(err, "existing", "==0.782")

	require.True(t, errors.Is(err, domain.ErrConflictingPins))

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	meta := zErr.Metadata()
	assert.Equal(t, "mypy", meta["name"])
	assert.Equal(t, "==0.782", meta["existing"])
}
