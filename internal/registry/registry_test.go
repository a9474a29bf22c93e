package registry_test

import (
	"testing"

	"codeberg.org/avhel/gpucoolctl/internal/errors"
	"codeberg.org/avhel/gpucoolctl/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubController struct {
	state int
}

func (s *stubController) MaxState() (int, error)     { return 4, nil }
func (s *stubController) CurrentState() (int, error) { return s.state, nil }
func (s *stubController) SetState(state int) error {
	s.state = state
	return nil
}

func TestPublishAndLookup(t *testing.T) {
	reg := registry.NewDeviceRegistry()
	ctrl := &stubController{}

	handle, err := reg.Publish("thermal-gpufreq-0", ctrl)
	require.NoError(t, err)
	assert.True(t, handle.Valid())
	assert.Equal(t, "thermal-gpufreq-0", handle.Name())

	got, ok := reg.Lookup("thermal-gpufreq-0")
	require.True(t, ok)
	assert.Same(t, ctrl, got.(*stubController))
}

func TestPublishDuplicateName(t *testing.T) {
	reg := registry.NewDeviceRegistry()

	_, err := reg.Publish("thermal-gpufreq-0", &stubController{})
	require.NoError(t, err)

	_, err = reg.Publish("thermal-gpufreq-0", &stubController{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, registry.ErrDuplicateName))
}

func TestPublishRejectsEmptyNameAndNilController(t *testing.T) {
	reg := registry.NewDeviceRegistry()

	_, err := reg.Publish("", &stubController{})
	assert.True(t, errors.HasCode(err, registry.ErrEmptyName))

	_, err = reg.Publish("thermal-gpufreq-0", nil)
	assert.True(t, errors.HasCode(err, registry.ErrNilController))
}

func TestUnpublish(t *testing.T) {
	reg := registry.NewDeviceRegistry()

	handle, err := reg.Publish("thermal-gpufreq-0", &stubController{})
	require.NoError(t, err)

	require.NoError(t, reg.Unpublish(handle))
	_, ok := reg.Lookup("thermal-gpufreq-0")
	assert.False(t, ok)

	err = reg.Unpublish(handle)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, registry.ErrUnknownDevice))

	err = reg.Unpublish(registry.Handle{})
	assert.True(t, errors.HasCode(err, registry.ErrInvalidHandle))
}

func TestNames(t *testing.T) {
	reg := registry.NewDeviceRegistry()

	_, err := reg.Publish("thermal-gpufreq-1", &stubController{})
	require.NoError(t, err)
	_, err = reg.Publish("thermal-gpufreq-0", &stubController{})
	require.NoError(t, err)

	assert.Equal(t, []string{"thermal-gpufreq-0", "thermal-gpufreq-1"}, reg.Names())
	assert.Equal(t, 2, reg.Len())
}
