package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	n := New(LevelWarning, "%d items changed", 3)

	assert.Equal(t, LevelWarning, n.Level)
	assert.Equal(t, "3 items changed", n.Message)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestLevelHelpers(t *testing.T) {
	assert.Equal(t, LevelInfo, Info("x").Level)
	assert.Equal(t, LevelSuccess, Success("x").Level)
	assert.Equal(t, LevelWarning, Warning("x").Level)

	n := Error("save failed", errors.New("disk full"))
	assert.Equal(t, LevelError, n.Level)
	assert.Equal(t, "save failed: disk full", n.Message)
}
