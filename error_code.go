package stun

// ErrorCode is the ERROR-CODE attribute (RFC 5389 section 15.6): a 3-digit
// class/number pair plus a human-readable reason phrase, carried on every
// error-response message.
type ErrorCode struct {
	Code   int // e.g. 401, 420, 437
	Reason string
}

const errorCodeHeaderSize = 4

func (e ErrorCode) Type() AttrType { return AttrErrorCode }

func (e ErrorCode) DataLength() uint16 {
	return uint16(errorCodeHeaderSize + len(e.Reason)) //nolint:gosec
}

func (e ErrorCode) Error() string {
	return e.String()
}

func (e ErrorCode) String() string {
	return e.Reason
}

func (e ErrorCode) Encode(*Message) []byte {
	class := byte(e.Code / 100)
	number := byte(e.Code % 100)
	b := make([]byte, errorCodeHeaderSize+len(e.Reason))
	b[2] = class
	b[3] = number
	copy(b[errorCodeHeaderSize:], e.Reason)
	return b
}

func init() {
	registerAttr(AttrErrorCode, func(payload []byte) (Attribute, error) {
		if len(payload) < errorCodeHeaderSize {
			return nil, malformedf("ERROR-CODE: too short")
		}
		class := int(payload[2] & 0x7)
		number := int(payload[3])
		return ErrorCode{
			Code:   class*100 + number,
			Reason: string(payload[errorCodeHeaderSize:]),
		}, nil
	})
}

// UnknownAttributesAttr is the UNKNOWN-ATTRIBUTES attribute (RFC 5389
// section 15.9): the list of comprehension-required attribute types an
// error response's 420 (Unknown Attribute) error is complaining about.
//
// Distinct from Message.UnknownAttributes, which records types this
// package's decoder itself didn't recognize on *any* message; this type is
// the wire attribute an agent builds to report that fact back to its peer.
type UnknownAttributesAttr struct {
	Types []AttrType
}

func (u UnknownAttributesAttr) Type() AttrType { return AttrUnknownAttrs }

func (u UnknownAttributesAttr) DataLength() uint16 {
	return uint16(2 * len(u.Types)) //nolint:gosec
}

func (u UnknownAttributesAttr) Encode(*Message) []byte {
	b := make([]byte, 2*len(u.Types))
	for i, t := range u.Types {
		bin.PutUint16(b[2*i:2*i+2], uint16(t))
	}
	return b
}

func init() {
	registerAttr(AttrUnknownAttrs, func(payload []byte) (Attribute, error) {
		if len(payload)%2 != 0 {
			return nil, malformedf("UNKNOWN-ATTRIBUTES: odd payload length %d", len(payload))
		}
		types := make([]AttrType, len(payload)/2)
		for i := range types {
			types[i] = AttrType(bin.Uint16(payload[2*i : 2*i+2]))
		}
		return UnknownAttributesAttr{Types: types}, nil
	})
}
