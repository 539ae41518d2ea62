//go:build !chladnidebug

package assert

const enabled = false
