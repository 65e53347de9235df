//go:build darwin
// +build darwin

package socket

import (
	"syscall"
)

// Darwin (macOS) specific socket options
const (
	// TCP_KEEPALIVE - macOS equivalent of Linux TCP_KEEPIDLE
	TCP_KEEPALIVE = 0x10

	// SO_NOSIGPIPE - Don't send SIGPIPE on broken pipe (macOS specific)
	SO_NOSIGPIPE = 0x1022
)

// applyPlatformOptions applies Darwin-specific socket options.
// Called from Apply() in tuning.go.
func applyPlatformOptions(fd int, cfg *Config) {
	// SO_NOSIGPIPE - Prevent SIGPIPE on write to closed socket
	// This is macOS-specific; Linux uses MSG_NOSIGNAL on send()
	_ = syscall.SetsockoptInt(fd, syscall.SOL_SOCKET, SO_NOSIGPIPE, 1)

	// Fine-tune keepalive parameters if enabled
	if cfg.KeepAlive {
		// TCP_KEEPALIVE on macOS sets the idle time in seconds
		// Start probing after 60 seconds of idle
		_ = syscall.SetsockoptInt(fd, syscall.IPPROTO_TCP, TCP_KEEPALIVE, 60)
	}
}
