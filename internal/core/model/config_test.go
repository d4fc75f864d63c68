package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettleDuration(t *testing.T) {
	assert.Equal(t, DefaultAnimationDuration, SettleDuration(0))
	assert.Equal(t, DefaultAnimationDuration, SettleDuration(-time.Second))
	assert.Equal(t, 80*time.Millisecond, SettleDuration(80*time.Millisecond))

	config := DefaultDialogConfig()
	config.AnimationDuration = 0
	assert.Equal(t, DefaultAnimationDuration, config.SettleDuration())
}

func TestPointerEventsModes(t *testing.T) {
	assert.False(t, PointerEventsUnset.Valid())
	assert.False(t, PointerEvents("sideways").Valid())
	assert.True(t, PointerEventsBoxNone.Valid())

	assert.True(t, PointerEventsAuto.Intercepts())
	assert.True(t, PointerEventsBoxOnly.Intercepts())
	assert.False(t, PointerEventsNone.Intercepts())
	assert.False(t, PointerEventsBoxNone.Intercepts())
}
