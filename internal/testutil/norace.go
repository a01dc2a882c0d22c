//go:build !race

package testutil

// Race is true when the race detector is enabled.
const Race = false
