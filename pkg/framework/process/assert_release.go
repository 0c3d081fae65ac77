//go:build !debug
// +build !debug

package process

const debugChecks = false
