package injector

import "context"

// Disposable is implemented by singletons that release resources when the
// Injector is closed.
//
// Example:
//
//	type DatabaseConnection struct {
//	    conn *sql.DB
//	}
//
//	func (dc *DatabaseConnection) Close() error {
//	    return dc.conn.Close()
//	}
type Disposable interface {
	Close() error
}

// DisposableWithContext allows disposal with context for graceful shutdown.
// The context carries the deadline passed to CloseContext.
type DisposableWithContext interface {
	Close(ctx context.Context) error
}

// dispose closes instance if it is disposable.
func dispose(ctx context.Context, instance any) error {
	switch d := instance.(type) {
	case DisposableWithContext:
		return d.Close(ctx)
	case Disposable:
		return d.Close()
	default:
		return nil
	}
}

func isDisposable(instance any) bool {
	switch instance.(type) {
	case Disposable, DisposableWithContext:
		return true
	default:
		return false
	}
}
