package registry

import (
	"sort"
	"sync"

	"codeberg.org/avhel/gpucoolctl/internal/errors"
	"codeberg.org/avhel/gpucoolctl/internal/logger"
)

// StateController is the callback table a published cooling device exposes
// to the governor. Cooling states are governor-ordered: 0 means no
// throttling and larger values mean deeper throttling.
type StateController interface {
	// MaxState returns the deepest cooling state the device supports.
	MaxState() (int, error)
	// CurrentState returns the cooling state currently in effect.
	CurrentState() (int, error)
	// SetState requests the given cooling state.
	SetState(state int) error
}

// Registry is the publication boundary between cooling devices and the
// governor. Devices publish under a unique name and unpublish with the
// handle they got back.
type Registry interface {
	Publish(name string, ops StateController) (Handle, error)
	Unpublish(h Handle) error
}

// Handle refers to a published device. The zero value is invalid.
type Handle struct {
	name string
}

// Valid reports whether the handle refers to a publication.
func (h Handle) Valid() bool {
	return h.name != ""
}

// Name returns the name the device was published under.
func (h Handle) Name() string {
	return h.name
}

// DeviceRegistry is the in-process Registry implementation, keyed by
// device name.
type DeviceRegistry struct {
	mu      sync.RWMutex
	devices map[string]StateController
}

func NewDeviceRegistry() *DeviceRegistry {
	return &DeviceRegistry{
		devices: make(map[string]StateController),
	}
}

// Publish registers ops under name. Names must be unique for the lifetime
// of the publication.
func (r *DeviceRegistry) Publish(name string, ops StateController) (Handle, error) {
	errFactory := errors.New()

	if name == "" {
		return Handle{}, errFactory.New(ErrEmptyName)
	}
	if ops == nil {
		return Handle{}, errFactory.WithData(ErrNilController, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.devices[name]; exists {
		return Handle{}, errFactory.WithData(ErrDuplicateName, name)
	}
	r.devices[name] = ops

	logger.Debug().Str("device", name).Msg("Cooling device published")

	return Handle{name: name}, nil
}

// Unpublish removes the device the handle refers to. Unpublishing a zero
// or stale handle is an error, not a panic.
func (r *DeviceRegistry) Unpublish(h Handle) error {
	errFactory := errors.New()

	if !h.Valid() {
		return errFactory.New(ErrInvalidHandle)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.devices[h.name]; !exists {
		return errFactory.WithData(ErrUnknownDevice, h.name)
	}
	delete(r.devices, h.name)

	logger.Debug().Str("device", h.name).Msg("Cooling device unpublished")

	return nil
}

// Lookup returns the controller published under name.
func (r *DeviceRegistry) Lookup(name string) (StateController, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ops, ok := r.devices[name]

	return ops, ok
}

// Names returns the names of all published devices, sorted.
func (r *DeviceRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.devices))
	for name := range r.devices {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Len returns the number of published devices.
func (r *DeviceRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.devices)
}
