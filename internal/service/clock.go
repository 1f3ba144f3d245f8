package service

import (
	"time"

	"payment-journey-tracker/internal/core/ports"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() ports.Clock { return systemClock{} }
