//go:build linux
// +build linux

package socket

import (
	"syscall"
)

// Linux-specific socket options
// These constants may not be defined in older Go versions' syscall package
const (
	// TCP_QUICKACK - Send immediate ACK (disable delayed ACK)
	// Reduces latency by eliminating 40ms delayed ACK timer
	// Must be set per-connection (not persistent)
	TCP_QUICKACK = 12

	// TCP_USER_TIMEOUT - Maximum time to retransmit unacknowledged data
	// Helps detect dead connections faster
	TCP_USER_TIMEOUT = 18

	// TCP_KEEPIDLE - Time before first keepalive probe
	TCP_KEEPIDLE = 4

	// TCP_KEEPINTVL - Interval between keepalive probes
	TCP_KEEPINTVL = 5

	// TCP_KEEPCNT - Number of keepalive probes before giving up
	TCP_KEEPCNT = 6
)

// applyPlatformOptions applies Linux-specific socket options.
// Called from Apply() in tuning.go.
func applyPlatformOptions(fd int, cfg *Config) {
	// TCP_QUICKACK - Immediate ACKs for low latency
	// NOTE: This option is NOT persistent. It gets cleared after each ACK.
	// For persistent QuickACK, you'd need to set it after each read.
	// Here we set it once as a best-effort optimization.
	if cfg.QuickAck {
		_ = syscall.SetsockoptInt(fd, syscall.IPPROTO_TCP, TCP_QUICKACK, 1)
	}

	// TCP_USER_TIMEOUT - Detect dead connections faster (10 seconds)
	// This helps clean up zombie connections quickly
	_ = syscall.SetsockoptInt(fd, syscall.IPPROTO_TCP, TCP_USER_TIMEOUT, 10000)

	// Fine-tune keepalive parameters if enabled
	if cfg.KeepAlive {
		// Start probing after 60 seconds of idle
		_ = syscall.SetsockoptInt(fd, syscall.IPPROTO_TCP, TCP_KEEPIDLE, 60)

		// Probe every 10 seconds
		_ = syscall.SetsockoptInt(fd, syscall.IPPROTO_TCP, TCP_KEEPINTVL, 10)

		// Give up after 3 failed probes (total: 60 + 3*10 = 90 seconds)
		_ = syscall.SetsockoptInt(fd, syscall.IPPROTO_TCP, TCP_KEEPCNT, 3)
	}
}

