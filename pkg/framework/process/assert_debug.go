//go:build debug
// +build debug

package process

// debugChecks enables host-honesty and view-lifetime assertions.
const debugChecks = true
