package ui

import "time"

// Clock abstrai o relógio para toasts e expiração de workspaces.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
