package httpmsg

import "errors"

// ErrUnsupportedVersion names a protocol token outside the enumerated
// set (spec §7 UnsupportedVersion). No function in this module returns
// it; the decoder reports such tokens as a decoder.Error of kind
// UnsupportedVersion.
var ErrUnsupportedVersion = errors.New("httpmsg: unsupported HTTP version")
