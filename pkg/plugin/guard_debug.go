//go:build debug
// +build debug

package plugin

// debugChecks enables the borrow guard and output sanity checks.
const debugChecks = true
