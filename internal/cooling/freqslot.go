package cooling

import "sync"

// Process-wide slot for the ambient GPU frequency query. The frequency
// driver installs a callback once so other subsystems can read the current
// clock without a direct dependency on the driver. Last meaningful writer
// wins: installing nil never clears an earlier registration.
var freqSlot struct {
	mu sync.RWMutex
	fn func() int
}

// InstallFrequencyCallback installs fn as the process-wide frequency
// query. A nil fn is a no-op that leaves any previous callback in place.
func InstallFrequencyCallback(fn func() int) {
	if fn == nil {
		return
	}

	freqSlot.mu.Lock()
	freqSlot.fn = fn
	freqSlot.mu.Unlock()
}

// CurrentFrequency invokes the installed callback. ok is false when no
// callback has ever been installed; callers must treat that as "no
// frequency information", not as zero.
func CurrentFrequency() (freq int, ok bool) {
	freqSlot.mu.RLock()
	fn := freqSlot.fn
	freqSlot.mu.RUnlock()

	if fn == nil {
		return 0, false
	}

	return fn(), true
}
