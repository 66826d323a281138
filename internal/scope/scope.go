package scope

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/roach88/batchrun/internal/collector"
)

// Stoppable is a service that releases its resources when its scope ends.
type Stoppable interface {
	Stop()
}

// StopFunc adapts a plain function to Stoppable.
type StopFunc func()

// Stop calls f.
func (f StopFunc) Stop() { f() }

// Scope stops registered services in reverse registration order.
//
// Thread-safety: all methods are safe for concurrent use.
type Scope struct {
	name   string
	logger *slog.Logger

	mu       sync.Mutex
	services []Stoppable
	closed   bool
}

// New creates an empty scope. A nil logger uses slog.Default().
func New(name string, logger *slog.Logger) *Scope {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scope{name: name, logger: logger.With("scope", name)}
}

// Name returns the scope name.
func (s *Scope) Name() string {
	return s.name
}

// Register adds svc to the scope. Services registered after Close are
// stopped immediately.
func (s *Scope) Register(svc Stoppable) {
	s.mu.Lock()
	if !s.closed {
		s.services = append(s.services, svc)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if err := s.stop(svc); err != nil {
		s.logger.Error("stop after close failed", "error", err)
	}
}

// Close stops every registered service, newest first. A panicking service
// does not prevent the others from stopping; its panic is returned as part
// of the joined error. Calls after the first are no-ops.
func (s *Scope) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	services := s.services
	s.services = nil
	s.mu.Unlock()

	var errs []error
	for i := len(services) - 1; i >= 0; i-- {
		if err := s.stop(services[i]); err != nil {
			s.logger.Error("service stop failed", "error", err)
			errs = append(errs, err)
		}
	}
	s.logger.Debug("scope closed", "services", len(services))
	return errors.Join(errs...)
}

func (s *Scope) stop(svc Stoppable) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stop %T: panic: %v", svc, r)
		}
	}()
	svc.Stop()
	return nil
}

// Build is the scope of a single build invocation.
type Build struct {
	*Scope

	// ID uniquely identifies the build.
	ID string

	// Collector receives failures suppressed during the build.
	Collector *collector.Collector
}

// NewBuild creates a build scope with a fresh collector registered as its
// first service. A nil gen uses UUIDv7Generator.
func NewBuild(name string, suppressErrors bool, gen IDGenerator, logger *slog.Logger) *Build {
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	id := gen.Generate()
	b := &Build{
		Scope:     New(name, logger.With("build_id", id)),
		ID:        id,
		Collector: collector.New(suppressErrors),
	}
	b.Register(b.Collector)
	b.logger.Debug("build scope created", "suppress_errors", suppressErrors)
	return b
}
