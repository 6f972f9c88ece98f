package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCategory_CaseInsensitive(t *testing.T) {
	for _, raw := range []string{"medical", "Medical", "MEDICAL", "  medical  "} {
		category, err := NormalizeCategory(raw)
		require.NoError(t, err, "input %q", raw)
		assert.Equal(t, CategoryMedical, category)
	}
}

func TestNormalizeCategory_EmptyDefaultsToGeneral(t *testing.T) {
	category, err := NormalizeCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryGeneral, category)
}

func TestNormalizeCategory_Unknown(t *testing.T) {
	_, err := NormalizeCategory("plumbing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNormalizePriority(t *testing.T) {
	priority, err := NormalizePriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, priority)

	priority, err = NormalizePriority("Critical")
	require.NoError(t, err)
	assert.Equal(t, PriorityCritical, priority)

	_, err = NormalizePriority("urgent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, status)

	status, err = ParseStatus("in-progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, status)

	_, err = ParseStatus("done")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusAccepted.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}

func TestHelpRequestHasLocation(t *testing.T) {
	lat, lng := 55.75, 37.61

	req := &HelpRequest{}
	assert.False(t, req.HasLocation())

	req.Latitude = &lat
	assert.False(t, req.HasLocation(), "latitude alone is not a location")

	req.Longitude = &lng
	assert.True(t, req.HasLocation())
}

func TestDomainError_IsMatchesOnKind(t *testing.T) {
	err := NewConflictError("help request is not pending")

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestDomainError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDependencyError("redis unavailable", cause)

	assert.True(t, errors.Is(err, ErrDependency))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "redis unavailable")
	assert.Contains(t, err.Error(), "connection refused")
}
