package stun

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error is the type for constant sentinel errors in this package.
//
// See http://dave.cheney.net/2016/04/07/constant-errors for more info.
type Error string

func (e Error) Error() string {
	return string(e)
}

// Sentinel errors for the four categories from the error taxonomy:
// Malformed (decode-time), IllegalAttribute (encode/add-time), InvalidState
// (encode-time, strict mode), InvalidArgument (constructor-time).
const (
	// ErrMalformed means the wire bytes could not be parsed: truncated
	// buffer, a length field that doesn't fit the remaining buffer, or a
	// bad FINGERPRINT checksum.
	ErrMalformed Error = "malformed STUN message"

	// ErrIllegalAttribute means an attribute's presentity is N/A for the
	// message type it is being added to.
	ErrIllegalAttribute Error = "attribute not allowed for this message type"

	// ErrInvalidState means a mandatory attribute is missing at encode
	// time (RFC 3489 compatibility mode only).
	ErrInvalidState Error = "mandatory attribute missing"

	// ErrInvalidArgument means a constructor argument violates an
	// invariant, e.g. a transaction ID that isn't 12 bytes or a
	// component ID outside [1, 256].
	ErrInvalidArgument Error = "invalid argument"

	// ErrUnknownAttribute means a comprehension-required attribute type
	// was not recognized while decoding. The message codec records it
	// rather than failing outright; the caller decides whether to
	// surface it (e.g. respond 420 with UNKNOWN-ATTRIBUTES).
	ErrUnknownAttribute Error = "unknown comprehension-required attribute"

	// ErrAttributeNotFound means the requested attribute type is not
	// present in the message.
	ErrAttributeNotFound Error = "attribute not found"

	// ErrIntegrityMismatch means a decoded MESSAGE-INTEGRITY value does not
	// match the HMAC recomputed under the credential the caller supplied.
	ErrIntegrityMismatch Error = "message integrity mismatch"
)

// malformedf wraps ErrMalformed with positional context.
func malformedf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformed, format, args...)
}

// illegalAttributef wraps ErrIllegalAttribute with the offending type.
func illegalAttributef(t AttrType, msgType MessageType) error {
	return errors.Wrapf(ErrIllegalAttribute, "%s not allowed in %s", t, msgType)
}

// CRCMismatch is returned when a decoded FINGERPRINT value does not match
// the recomputed one. It unwraps to ErrMalformed.
type CRCMismatch struct {
	Expected uint32
	Actual   uint32
}

func (m *CRCMismatch) Unwrap() error { return ErrMalformed }

func (m *CRCMismatch) Error() string {
	return fmt.Sprintf("CRC mismatch: %#x (expected) != %#x (actual)", m.Expected, m.Actual)
}
