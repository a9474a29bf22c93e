package cooling

import (
	"fmt"

	"codeberg.org/avhel/gpucoolctl/internal/errors"
	"codeberg.org/avhel/gpucoolctl/internal/idpool"
	"codeberg.org/avhel/gpucoolctl/internal/logger"
	"codeberg.org/avhel/gpucoolctl/internal/registry"
)

// NamePrefix is the registry naming prefix for gpufreq cooling devices.
// Devices publish as "<NamePrefix>-<id>" with the decimal allocated id.
const NamePrefix = "thermal-gpufreq"

// Registrar ties cooling devices to an identifier pool and a device
// registry. Construct one explicitly and share it; there is no implicit
// process-wide instance.
type Registrar struct {
	ids *idpool.Pool
	reg registry.Registry
}

func NewRegistrar(reg registry.Registry, ids *idpool.Pool) *Registrar {
	return &Registrar{
		ids: ids,
		reg: reg,
	}
}

// Register allocates an identifier for dev, publishes it into the registry
// under the derived name, and links the two lifetimes. On any failure the
// device is left exactly as it was: no identifier held, nothing published,
// ownership with the caller.
func (r *Registrar) Register(dev *Device) error {
	errFactory := errors.New()

	if dev == nil {
		return errFactory.New(ErrNilDevice)
	}
	if dev.Registered() {
		return errFactory.WithData(ErrAlreadyRegistered, dev.Name())
	}

	id, err := r.ids.Allocate()
	if err != nil {
		return errFactory.Wrap(ErrRegisterFailed, err)
	}

	name := fmt.Sprintf("%s-%d", NamePrefix, id)

	handle, err := r.reg.Publish(name, dev)
	if err != nil {
		r.ids.Release(id)
		return errFactory.Wrap(ErrPublishFailed, err)
	}

	dev.mu.Lock()
	dev.id = id
	dev.name = name
	dev.handle = handle
	dev.requested = 0
	dev.registered = true
	dev.mu.Unlock()

	logger.Info().Str("device", name).Msg("Cooling device registered")

	return nil
}

// Unregister unpublishes dev and returns its identifier to the pool,
// making it immediately reusable. A nil or unregistered device is a no-op.
// The caller must quiesce the device first; no operation may be issued on
// it afterward.
func (r *Registrar) Unregister(dev *Device) {
	if dev == nil {
		return
	}

	dev.mu.Lock()
	if !dev.registered {
		dev.mu.Unlock()
		return
	}
	id := dev.id
	name := dev.name
	handle := dev.handle
	dev.registered = false
	dev.handle = registry.Handle{}
	dev.id = -1
	dev.mu.Unlock()

	if err := r.reg.Unpublish(handle); err != nil {
		logger.Warn().Err(err).Str("device", name).Msg("Failed to unpublish cooling device")
	}
	r.ids.Release(id)

	logger.Info().Str("device", name).Msg("Cooling device unregistered")
}
