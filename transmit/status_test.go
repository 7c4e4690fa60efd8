package transmit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusDefaultsAndMutation(t *testing.T) {
	s := NewStatus()
	assert.False(t, s.RadioConnected())

	s.SetRadioConnected(true)
	assert.True(t, s.RadioConnected())

	s.IncrementErrorCount()
	s.IncrementErrorCount()
	s.RecordTransmission()

	snap := s.Snapshot(3)
	assert.Equal(t, 2, snap.ErrorCount)
	assert.True(t, snap.RadioConnected)
	assert.Equal(t, 3, snap.QueueSize)
	assert.False(t, snap.LastTransmission.IsZero())

	s.Reset()
	assert.False(t, s.RadioConnected())
	assert.Equal(t, 0, s.Snapshot(0).ErrorCount)
}
