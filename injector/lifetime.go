package injector

import (
	"fmt"
)

// Lifetime specifies how often a binding's constructor runs.
type Lifetime int

const (
	// LifetimeSingleton creates one instance on first request and shares it
	// for the lifetime of the Injector.
	LifetimeSingleton Lifetime = iota

	// LifetimeTransient creates a new instance every time the binding is resolved.
	LifetimeTransient
)

// String returns the string representation of the Lifetime.
func (l Lifetime) String() string {
	switch l {
	case LifetimeSingleton:
		return "Singleton"
	case LifetimeTransient:
		return "Transient"
	default:
		return fmt.Sprintf("Unknown(%d)", int(l))
	}
}

// IsValid checks if the lifetime is valid.
func (l Lifetime) IsValid() bool {
	return l >= LifetimeSingleton && l <= LifetimeTransient
}

// MarshalText implements encoding.TextMarshaler.
func (l Lifetime) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Lifetime) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Singleton", "singleton":
		*l = LifetimeSingleton
	case "Transient", "transient":
		*l = LifetimeTransient
	default:
		return LifetimeError{Value: string(text)}
	}
	return nil
}
