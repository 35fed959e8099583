package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pin/internal/core/domain"
)

func TestCheckDocument_Clean(t *testing.T) {
	doc := domain.NewDocument()
	doc.Append(pinLine("pytest", domain.CompEqual, "6.0.1", 1))
	doc.Append(pinLine("coverage", domain.CompEqual, "5.2.1", 2))

	assert.Empty(t, domain.CheckDocument(doc))
}

func TestCheckDocument_ConflictingConstraint(t *testing.T) {
	doc := domain.NewDocument()
	doc.Append(pinLine("mypy", domain.CompEqual, "0.782", 1))
	doc.Append(pinLine("mypy", domain.CompEqual, "0.790", 3))

	findings := domain.CheckDocument(doc)
	require.Len(t, findings, 1)
	assert.Equal(t, domain.SeverityError, findings[0].Severity)
	assert.Equal(t, 3, findings[0].Line)
	assert.Contains(t, findings[0].Message, "already pinned")
	assert.True(t, domain.HasErrors(findings))
}

func TestCheckDocument_IdenticalDuplicate(t *testing.T) {
	doc := domain.NewDocument()
	doc.Append(pinLine("pytest", domain.CompEqual, "6.0.1", 1))
	doc.Append(pinLine("pytest", domain.CompEqual, "6.0.1", 2))

	findings := domain.CheckDocument(doc)
	require.Len(t, findings, 1)
	assert.Equal(t, domain.SeverityWarning, findings[0].Severity)
	assert.False(t, domain.HasErrors(findings))
}

func TestCheckDocument_ArbitraryEquality(t *testing.T) {
	doc := domain.NewDocument()
	doc.Append(pinLine("vendored", domain.CompArbitraryEqual, "1.0+fork2", 1))

	findings := domain.CheckDocument(doc)
	require.Len(t, findings, 1)
	assert.Equal(t, domain.SeverityWarning, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "arbitrary equality")
}

func TestFindingString(t *testing.T) {
	f := domain.Finding{Severity: domain.SeverityError, Line: 4, Message: "boom"}
	assert.Equal(t, "4: error: boom", f.String())

	f = domain.Finding{Severity: domain.SeverityWarning, Message: "loose"}
	assert.Equal(t, "warning: loose", f.String())
}
