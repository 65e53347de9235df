package decoder

import (
	"fmt"

	"github.com/yourusername/httpcodec/header"
)

type unsupportedVersionErr struct{ token string }

func (e *unsupportedVersionErr) Error() string {
	return fmt.Sprintf("unsupported HTTP version %q", e.token)
}

// parseProtocol maps the wire token to the enumerated set of versions
// spec §3/§7 allow (UnsupportedVersion for anything else).
func parseProtocol(token string) (header.Protocol, error) {
	switch token {
	case "HTTP/1.1":
		return header.HTTP11, nil
	case "HTTP/1.0":
		return header.HTTP10, nil
	default:
		return header.ProtocolUnknown, &unsupportedVersionErr{token: token}
	}
}
