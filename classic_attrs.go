package stun

// ChangeRequest is the classic CHANGE-REQUEST attribute (RFC 3489 section
// 11.2.4, retained by RFC 5780 and by this package's RFC3489Compat mode):
// flags telling a server to respond from a different IP and/or port, used
// to probe NAT binding behavior.
type ChangeRequest struct {
	ChangeIP   bool
	ChangePort bool
}

const changeRequestSize = 4

const (
	changeIPFlag   = 0x4
	changePortFlag = 0x2
)

func (c ChangeRequest) Type() AttrType     { return AttrChangeRequest }
func (c ChangeRequest) DataLength() uint16 { return changeRequestSize }
func (c ChangeRequest) Encode(*Message) []byte {
	var flags uint32
	if c.ChangeIP {
		flags |= changeIPFlag
	}
	if c.ChangePort {
		flags |= changePortFlag
	}
	b := make([]byte, changeRequestSize)
	bin.PutUint32(b, flags)
	return b
}

func init() {
	registerAttr(AttrChangeRequest, func(payload []byte) (Attribute, error) {
		if err := checkSize(AttrChangeRequest, len(payload), changeRequestSize); err != nil {
			return nil, err
		}
		flags := bin.Uint32(payload)
		return ChangeRequest{
			ChangeIP:   flags&changeIPFlag != 0,
			ChangePort: flags&changePortFlag != 0,
		}, nil
	})
}

// XOROnly is the classic XOR-ONLY attribute: a zero-length flag, present
// only for RFC 3489-to-5389 transition testing, asking a server to encode
// MAPPED-ADDRESS as XOR-MAPPED-ADDRESS instead.
type XOROnly struct{}

func (XOROnly) Type() AttrType        { return AttrXOROnly }
func (XOROnly) DataLength() uint16    { return 0 }
func (XOROnly) Encode(*Message) []byte { return nil }

func init() {
	registerAttr(AttrXOROnly, func(payload []byte) (Attribute, error) {
		if err := checkSize(AttrXOROnly, len(payload), 0); err != nil {
			return nil, err
		}
		return XOROnly{}, nil
	})
}

// ReflectedFrom is the classic REFLECTED-FROM attribute (RFC 3489 section
// 11.2.7): the source address of a request that triggered a
// RESPONSE-ADDRESS-redirected response, letting the redirect target know
// who originated the request.
type ReflectedFrom struct {
	plainAddress
}

func init() {
	registerAttr(AttrReflectedFrom, func(payload []byte) (Attribute, error) {
		a, err := decodePlainAddress(AttrReflectedFrom, payload)
		if err != nil {
			return nil, err
		}
		return ReflectedFrom{plainAddress: a.(plainAddress)}, nil
	})
}
