// Package collector suppresses and collects action failures for tooling.
//
// A Collector is created once per build scope with a fixed suppression
// flag. Decorate wraps an Action so that, when suppression is enabled,
// failures are recorded in the collector instead of reaching the caller:
//
//	c := collector.New(true)
//	run := collector.Decorate(c, action)
//	for _, p := range projects {
//		_ = run(p) // always nil; failures are in c.Errors()
//	}
//
// With suppression disabled, Decorate returns the action unchanged.
//
// A failure is either a non-nil error returned by the action or a panic.
// Recovered panics are recorded as *PanicError.
//
// Stop clears the collected failures. It does not close the collector:
// Add keeps working afterwards.
package collector
