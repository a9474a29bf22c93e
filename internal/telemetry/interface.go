package telemetry

import (
	"context"
	"time"
)

// Collector records cooling transitions for later inspection.
type Collector interface {
	Record(ctx context.Context, snapshot *Snapshot) error
	Close() error
}

// Snapshot captures one governor tick for one cooling device.
type Snapshot struct {
	Timestamp      time.Time
	Device         string
	Temperature    int
	RequestedState int
	MaxState       int
	// Level is the frequency level the request mirrored to, or -1 when
	// the request was out of range and dropped.
	Level int
	// Frequency is the ambient GPU clock in MHz. HasFrequency is false
	// when no frequency callback was installed; absence is not zero.
	Frequency    int
	HasFrequency bool
}
