// Package scope manages the lifetime of per-build services.
//
// A Scope owns a set of Stoppable services and stops them, newest first,
// when the scope is closed. NewBuild creates the scope for one build
// invocation together with its failure collector.
package scope
