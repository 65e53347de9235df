//go:build !linux
// +build !linux

package sysconn

import (
	"net"

	"github.com/yourusername/httpcodec/pkg/shockwave/socket"
)

// TuneAccepted applies the teacher's default connection tuning on
// platforms where SO_REUSEPORT tuning isn't available.
func TuneAccepted(conn net.Conn) error {
	return socket.Apply(conn, socket.DefaultConfig())
}

// ListenConfig returns the zero-value net.ListenConfig; SO_REUSEPORT
// is Linux-specific (spec §1 keeps this out of the core regardless).
func ListenConfig() net.ListenConfig {
	return net.ListenConfig{}
}
