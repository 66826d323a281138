package collector

import (
	"errors"
	"sync"
)

// Collector stores failures raised by decorated actions.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Collector struct {
	suppressed bool

	mu   sync.Mutex
	errs []error
}

// New creates an empty collector. The suppression flag is fixed for the
// collector's lifetime.
func New(suppressed bool) *Collector {
	return &Collector{suppressed: suppressed}
}

// IsSuppressed reports whether decorated actions swallow their failures.
func (c *Collector) IsSuppressed() bool {
	return c.suppressed
}

// Add records err. Nil errors are ignored.
//
// Add never fails and does not consult the suppression flag.
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	c.errs = append(c.errs, err)
	c.mu.Unlock()
}

// Errors returns a copy of the collected failures in the order they were
// added.
func (c *Collector) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]error, len(c.errs))
	copy(out, c.errs)
	return out
}

// Len returns the number of collected failures.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errs)
}

// Err joins the collected failures, or returns nil if there are none.
func (c *Collector) Err() error {
	return errors.Join(c.Errors()...)
}

// Stop discards the collected failures. The collector remains usable.
func (c *Collector) Stop() {
	c.mu.Lock()
	// Release the backing array rather than truncating it.
	c.errs = nil
	c.mu.Unlock()
}
