package encoder

import "errors"

// ErrInvalidState is returned by Encode when a final message is latched
// before the previous one has fully drained (spec §7 InvalidState).
// Step does not return it: body bytes offered while no message is
// active are left unconsumed and reported as Underflow.
var ErrInvalidState = errors.New("encoder: message latched before the previous one drained")
