//go:build linux
// +build linux

// Package sysconn is demo-only I/O-layer glue (spec §1 places the
// concrete I/O layer out of scope for the core codec): it tunes the
// listener socket cmd/httpcodec-demo accepts connections on, layering
// SO_REUSEPORT (via golang.org/x/sys/unix, which pkg/shockwave/socket's
// hand-rolled syscall constants don't cover) on top of the teacher's
// existing TCP_NODELAY/buffer/keepalive tuning.
package sysconn

import (
	"net"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/yourusername/httpcodec/pkg/shockwave/socket"
)

// TuneAccepted applies the teacher's default connection tuning
// (pkg/shockwave/socket.DefaultConfig) to a freshly accepted
// connection.
func TuneAccepted(conn net.Conn) error {
	return socket.Apply(conn, socket.DefaultConfig())
}

// ListenConfig returns a net.ListenConfig whose Control hook enables
// SO_REUSEPORT on the listening socket before bind, letting
// cmd/httpcodec-demo run multiple listener instances across
// processes/goroutines on the same port.
func ListenConfig() net.ListenConfig {
	return net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var sockErr error
			err := c.Control(func(fd uintptr) {
				sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
			})
			if err != nil {
				return err
			}
			return sockErr
		},
	}
}
