// Package runner applies every action of a build to every project.
//
// Each (action, project) pair is a Target. Targets run on a bounded worker
// pool through an action decorated by the build's collector, so the
// collector's suppression flag decides the batch semantics:
//
//   - suppression off: the first failure cancels the remaining targets and
//     is returned from Run.
//   - suppression on: every target runs, failures are recorded in the
//     collector, and Run returns nil.
package runner
