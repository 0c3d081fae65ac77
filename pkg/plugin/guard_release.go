//go:build !debug
// +build !debug

package plugin

const debugChecks = false
