// Package report persists suppressed build failures for tooling.
//
// A report database holds one row per build and one row per collected
// failure. Failures keep the collector's insertion order in their seq
// column; all reads order by it.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Failure messages are stored NFC-normalized so reports written on
// different platforms compare byte for byte.
package report
