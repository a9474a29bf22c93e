package cooling_test

import (
	"testing"

	"codeberg.org/avhel/gpucoolctl/internal/cooling"
	"codeberg.org/avhel/gpucoolctl/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDriver mimics a frequency driver with four levels (0..3) and records
// every level request.
type fakeDriver struct {
	maxLevel     int
	currentLevel int
	requests     []int
}

func (f *fakeDriver) callbacks() cooling.Callbacks {
	return cooling.Callbacks{
		MaxLevel:     func() int { return f.maxLevel },
		CurrentLevel: func() int { return f.currentLevel },
		SetLevel:     func(level int) { f.requests = append(f.requests, level) },
	}
}

func TestMaxStateMirrorsMaxLevel(t *testing.T) {
	driver := &fakeDriver{maxLevel: 4}
	dev := cooling.NewDevice(driver.callbacks())

	state, err := dev.MaxState()
	require.NoError(t, err)
	assert.Equal(t, 4, state)
}

func TestMaxStateWithoutHookIsZero(t *testing.T) {
	dev := cooling.NewDevice(cooling.Callbacks{})

	state, err := dev.MaxState()
	require.NoError(t, err)
	assert.Equal(t, 0, state, "level-less devices report no throttling capacity")
}

func TestCurrentStateInversion(t *testing.T) {
	driver := &fakeDriver{maxLevel: 4, currentLevel: 1}
	dev := cooling.NewDevice(driver.callbacks())

	state, err := dev.CurrentState()
	require.NoError(t, err)
	assert.Equal(t, 2, state, "level 1 of 4 mirrors to state 4-1-1")
}

func TestCurrentStateExtremes(t *testing.T) {
	driver := &fakeDriver{maxLevel: 4}

	driver.currentLevel = 0
	dev := cooling.NewDevice(driver.callbacks())
	state, err := dev.CurrentState()
	require.NoError(t, err)
	assert.Equal(t, 3, state, "lowest performance is the deepest cooling state")

	driver.currentLevel = 3
	state, err = dev.CurrentState()
	require.NoError(t, err)
	assert.Equal(t, 0, state, "highest performance is unthrottled")
}

func TestCurrentStateWithoutHook(t *testing.T) {
	driver := &fakeDriver{maxLevel: 4}
	dev := cooling.NewDevice(cooling.Callbacks{
		MaxLevel: driver.callbacks().MaxLevel,
	})

	_, err := dev.CurrentState()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, cooling.ErrStateUnsupported))
}

func TestSetStateInversion(t *testing.T) {
	driver := &fakeDriver{maxLevel: 4}
	dev := cooling.NewDevice(driver.callbacks())

	require.NoError(t, dev.SetState(0))
	require.NoError(t, dev.SetState(3))
	assert.Equal(t, []int{3, 0}, driver.requests)
}

func TestSetStateBoundary(t *testing.T) {
	driver := &fakeDriver{maxLevel: 4}
	dev := cooling.NewDevice(driver.callbacks())

	// max-1 is the deepest expressible state; anything past it is dropped.
	require.NoError(t, dev.SetState(3))
	require.NoError(t, dev.SetState(4))
	require.NoError(t, dev.SetState(5))
	assert.Equal(t, []int{0}, driver.requests)
}

func TestSetStateRecordsRequestEvenWhenDropped(t *testing.T) {
	driver := &fakeDriver{maxLevel: 4}
	dev := cooling.NewDevice(driver.callbacks())

	require.NoError(t, dev.SetState(7))
	assert.Equal(t, 7, dev.RequestedState())
	assert.Empty(t, driver.requests)
}

func TestSetStateWithoutHookIsNoOp(t *testing.T) {
	driver := &fakeDriver{maxLevel: 4}
	dev := cooling.NewDevice(cooling.Callbacks{
		MaxLevel: driver.callbacks().MaxLevel,
	})

	require.NoError(t, dev.SetState(1))
	assert.Equal(t, 1, dev.RequestedState())
}

func TestNewDeviceIsUnregistered(t *testing.T) {
	dev := cooling.NewDevice(cooling.Callbacks{})

	assert.False(t, dev.Registered())
	assert.Equal(t, -1, dev.ID())
	assert.Empty(t, dev.Name())
}
