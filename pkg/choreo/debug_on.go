//go:build towerview_debug

package choreo

const debugChecks = true
