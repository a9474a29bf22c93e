package cooling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetFrequencySlot() {
	freqSlot.mu.Lock()
	freqSlot.fn = nil
	freqSlot.mu.Unlock()
}

func TestCurrentFrequencyBeforeInstall(t *testing.T) {
	resetFrequencySlot()

	freq, ok := CurrentFrequency()
	assert.False(t, ok, "absent callback must read as no information")
	assert.Equal(t, 0, freq)
}

func TestInstallFrequencyCallback(t *testing.T) {
	resetFrequencySlot()

	InstallFrequencyCallback(func() int { return 1500 })

	freq, ok := CurrentFrequency()
	assert.True(t, ok)
	assert.Equal(t, 1500, freq)
}

func TestInstallNilKeepsPreviousCallback(t *testing.T) {
	resetFrequencySlot()

	InstallFrequencyCallback(func() int { return 1500 })
	InstallFrequencyCallback(nil)

	freq, ok := CurrentFrequency()
	assert.True(t, ok, "nil install must not clear the slot")
	assert.Equal(t, 1500, freq)
}

func TestInstallLastWriterWins(t *testing.T) {
	resetFrequencySlot()

	InstallFrequencyCallback(func() int { return 1500 })
	InstallFrequencyCallback(func() int { return 2100 })

	freq, ok := CurrentFrequency()
	assert.True(t, ok)
	assert.Equal(t, 2100, freq)
}
