package contact

import "time"

// Timer is a pending callback that can be cancelled
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks so tests can replace real time
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock is backed by time.AfterFunc
type RealClock struct{}

func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
