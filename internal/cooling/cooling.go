package cooling

import (
	"sync"

	"codeberg.org/avhel/gpucoolctl/internal/errors"
	"codeberg.org/avhel/gpucoolctl/internal/logger"
	"codeberg.org/avhel/gpucoolctl/internal/registry"
)

// Callbacks are the hooks a frequency driver supplies when constructing a
// cooling device. Each hook is optional; a partially-capable device is
// tolerated (see the per-operation notes on Device).
type Callbacks struct {
	// MaxLevel returns the number of frequency levels the hardware
	// supports. Valid level indices run [0, MaxLevel()-1].
	MaxLevel func() int
	// CurrentLevel returns the frequency level currently in effect.
	CurrentLevel func() int
	// SetLevel requests the hardware move to the given level index.
	SetLevel func(level int)
}

// Device maps governor-facing cooling states onto driver-facing frequency
// levels. The two orderings share one index space, mirrored: level 0 is
// the lowest performance and therefore the deepest cooling state, so
// state = maxState - 1 - level in both directions.
//
// Get/set operations are safe to call concurrently, but registration and
// unregistration must not race with them; callers quiesce a device before
// unregistering it.
type Device struct {
	callbacks Callbacks

	mu         sync.Mutex
	id         int
	name       string
	handle     registry.Handle
	requested  int
	registered bool
}

// NewDevice constructs an unregistered device around the given callbacks.
// It becomes visible to the governor only once a Registrar registers it.
func NewDevice(cb Callbacks) *Device {
	return &Device{
		callbacks: cb,
		id:        -1,
	}
}

// MaxState returns the deepest cooling state the device supports, which
// equals the number of frequency levels. A device without a MaxLevel hook
// reports 0 without error; level-less devices are tolerated rather than
// rejected.
func (d *Device) MaxState() (int, error) {
	if d.callbacks.MaxLevel == nil {
		return 0, nil
	}

	return d.callbacks.MaxLevel(), nil
}

// CurrentState returns the cooling state mirrored from the current
// frequency level. Unlike MaxState, a device that cannot report its level
// is an error: there is no meaningful default for "how throttled am I".
func (d *Device) CurrentState() (int, error) {
	errFactory := errors.New()

	if d.callbacks.CurrentLevel == nil {
		return 0, errFactory.WithData(ErrStateUnsupported, d.Name())
	}

	maxState, err := d.MaxState()
	if err != nil {
		return 0, err
	}
	level := d.callbacks.CurrentLevel()

	return maxState - 1 - level, nil
}

// SetState records the governor's request and forwards the mirrored level
// to the driver. The requested state is stored unconditionally for
// diagnostics; it is never fed back into level queries. Requests whose
// mirrored level falls outside [0, maxState] are dropped without error —
// the governor asked for deeper throttling than the hardware can express.
func (d *Device) SetState(state int) error {
	d.mu.Lock()
	d.requested = state
	d.mu.Unlock()

	maxState, err := d.MaxState()
	if err != nil {
		return err
	}

	level := maxState - 1 - state
	if level < 0 || level > maxState {
		logger.Debug().
			Str("device", d.Name()).
			Int("state", state).
			Msg("Cooling state out of range, ignored")

		return nil
	}

	if d.callbacks.SetLevel != nil {
		d.callbacks.SetLevel(level)
	}

	return nil
}

// RequestedState returns the last state accepted by SetState. Diagnostic
// only; the authoritative state comes from CurrentState.
func (d *Device) RequestedState() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.requested
}

// ID returns the allocated identifier, or -1 before registration.
func (d *Device) ID() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.id
}

// Name returns the registry name, or "" before registration.
func (d *Device) Name() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.name
}

// Registered reports whether the device is currently published.
func (d *Device) Registered() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.registered
}
