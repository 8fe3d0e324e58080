package testutil

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Common test errors
var (
	ErrTest        = errors.New("test error")
	ErrConstructor = errors.New("constructor error")
)

// TestBean is the bean most lookups in the tests ask for.
type TestBean struct {
	name string
}

// NewTestBean creates a bean reporting name.
func NewTestBean(name string) *TestBean {
	return &TestBean{name: name}
}

func (b *TestBean) Name() string { return b.name }

// NonExistentBean is never bound anywhere.
type NonExistentBean struct{}

// TestService is a basic test service
type TestService struct {
	ID        string
	CreatedAt time.Time
}

// NewTestService creates a new test service
func NewTestService() *TestService {
	return &TestService{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
}

// TestLogger is a test logger interface
type TestLogger interface {
	Log(msg string)
	GetLogs() []string
}

// TestLoggerImpl implements TestLogger
type TestLoggerImpl struct {
	logs []string
	mu   sync.Mutex
}

func NewTestLogger() TestLogger {
	return &TestLoggerImpl{}
}

func (l *TestLoggerImpl) Log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, msg)
}

func (l *TestLoggerImpl) GetLogs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := make([]string, len(l.logs))
	copy(result, l.logs)
	return result
}

// Replica is a marker qualifier with a member.
type Replica struct {
	Region string
}

// Primary is a marker qualifier without members.
type Primary struct{}
