// Package stun implements message encoding and decoding for Session
// Traversal Utilities for NAT (STUN, RFC 5389), Traversal Using Relays
// around NAT (TURN, RFC 5766), and the attribute extensions used by
// Interactive Connectivity Establishment (ICE, RFC 5245).
//
// Definitions
//
// STUN Agent: An entity that implements the STUN protocol, either a STUN
// client or a STUN server.
//
// Transport Address: The combination of an IP address and port number.
package stun

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strconv"
)

var bin = binary.BigEndian

const (
	// magicCookie distinguishes STUN packets from other protocols when
	// multiplexed on the same port. Present in every message header but,
	// per this package's decode contract, not validated against this
	// constant — callers that need RFC 5389 strictness check it themselves.
	magicCookie         = 0x2112A442
	attributeHeaderSize = 4
	messageHeaderSize   = 20
	transactionIDSize   = 12 // 96 bit
)

// MaxPacketSize is a receive-buffer size for a single STUN datagram.
// DecodeMessage does not check buffers against it.
const MaxPacketSize = 2048

// TransactionID is a 96-bit STUN transaction identifier.
type TransactionID [transactionIDSize]byte

// NewTransactionID returns a new random transaction ID using crypto/rand.
func NewTransactionID() (t TransactionID) {
	if _, err := rand.Read(t[:]); err != nil {
		panic(err)
	}
	return t
}

// IsMessage reports whether b looks like a STUN message by header shape and
// magic cookie. Does not guarantee a subsequent Decode will succeed.
func IsMessage(b []byte) bool {
	return len(b) >= messageHeaderSize && bin.Uint32(b[4:8]) == magicCookie
}

// MessageClass is the 2-bit class of a STUN message type.
type MessageClass byte

// Possible values for MessageClass.
const (
	ClassRequest         MessageClass = 0x00 // 0b00
	ClassIndication      MessageClass = 0x01 // 0b01
	ClassSuccessResponse MessageClass = 0x02 // 0b10
	ClassErrorResponse   MessageClass = 0x03 // 0b11
)

func (c MessageClass) String() string {
	switch c {
	case ClassRequest:
		return "request"
	case ClassIndication:
		return "indication"
	case ClassSuccessResponse:
		return "success response"
	case ClassErrorResponse:
		return "error response"
	default:
		return fmt.Sprintf("class(0x%x)", byte(c))
	}
}

// Method is the 12-bit STUN/TURN method of a message type.
type Method uint16

// Possible values for Method.
const (
	MethodBinding          Method = 0x001
	MethodAllocate         Method = 0x003
	MethodRefresh          Method = 0x004
	MethodSend             Method = 0x006
	MethodData             Method = 0x007
	MethodCreatePermission Method = 0x008
	MethodChannelBind      Method = 0x009
)

func (m Method) String() string {
	switch m {
	case MethodBinding:
		return "binding"
	case MethodAllocate:
		return "allocate"
	case MethodRefresh:
		return "refresh"
	case MethodSend:
		return "send"
	case MethodData:
		return "data"
	case MethodCreatePermission:
		return "create permission"
	case MethodChannelBind:
		return "channel bind"
	default:
		return "0x" + strconv.FormatUint(uint64(m), 16)
	}
}

// MessageType is the STUN message type field: a method and a class, packed
// into 14 bits on the wire with the class bits interleaved between method
// bits per RFC 5389 section 6.
type MessageType struct {
	Class  MessageClass
	Method Method
}

const (
	methodABits = 0xf   // 0b0000000000001111
	methodBBits = 0x70  // 0b0000000001110000
	methodDBits = 0xf80 // 0b0000111110000000

	methodBShift = 1
	methodDShift = 2

	firstBit  = 0x1
	secondBit = 0x2

	c0Bit = firstBit
	c1Bit = secondBit

	classC0Shift = 4
	classC1Shift = 7
)

// Value returns the bit representation of t.
//
//	 0                 1
//	 2  3  4 5 6 7 8 9 0 1 2 3 4 5
//	+--+--+-+-+-+-+-+-+-+-+-+-+-+-+
//	|M |M |M|M|M|C|M|M|M|C|M|M|M|M|
//	|11|10|9|8|7|1|6|5|4|0|3|2|1|0|
//	+--+--+-+-+-+-+-+-+-+-+-+-+-+-+
//
// Method is split into A (M0-M3), B (M4-M6), D (M7-M11) and the class bits
// are interleaved at positions 4 and 8.
func (t MessageType) Value() uint16 {
	m := uint16(t.Method)
	a := m & methodABits
	b := m & methodBBits
	d := m & methodDBits

	m = a + (b << methodBShift) + (d << methodDShift)

	c := uint16(t.Class)
	c0 := (c & c0Bit) << classC0Shift
	c1 := (c & c1Bit) << classC1Shift

	return m + c0 + c1
}

// ReadValue decodes the wire representation v into t.
func (t *MessageType) ReadValue(v uint16) {
	c0 := (v >> classC0Shift) & c0Bit
	c1 := (v >> classC1Shift) & c1Bit
	t.Class = MessageClass(c0 + c1)

	a := v & methodABits
	b := (v >> methodBShift) & methodBBits
	d := (v >> methodDShift) & methodDBits
	t.Method = Method(a + b + d)
}

func (t MessageType) String() string {
	return fmt.Sprintf("%s %s", t.Method, t.Class)
}

// IsRequest reports whether t is a request-class type.
func (t MessageType) IsRequest() bool { return t.Class == ClassRequest }

// IsIndication reports whether t is an indication-class type.
func (t MessageType) IsIndication() bool { return t.Class == ClassIndication }

// IsSuccess reports whether t is a success-response-class type.
func (t MessageType) IsSuccess() bool { return t.Class == ClassSuccessResponse }

// IsError reports whether t is an error-response-class type.
func (t MessageType) IsError() bool { return t.Class == ClassErrorResponse }

// CodecConfig controls Message.Encode behavior that the wire format itself
// doesn't dictate.
type CodecConfig struct {
	// Software, if non-empty, is added as a SOFTWARE attribute by Encode,
	// unless one is already present. Encode fails with ErrIllegalAttribute
	// for message types on which SOFTWARE is NotApplicable.
	Software string

	// AlwaysFingerprint appends a FINGERPRINT attribute on every encode
	// unless one is already present.
	AlwaysFingerprint bool

	// RFC3489Compat enables legacy-mode presentity checks: a mandatory
	// attribute absent at encode time is reported via ErrInvalidState.
	// Off by default (RFC 5389 agents only reject N/A attributes).
	RFC3489Compat bool
}

// Message is a STUN/TURN message: a type, a transaction ID, and an ordered
// sequence of attributes. Unlike a raw byte buffer, Message enforces the
// attribute-list invariants directly: at most one attribute of a given type
// is held at a time (AddAttribute replaces in place, preserving the
// original position), and Encode places MESSAGE-INTEGRITY and FINGERPRINT
// at the tail in the order the wire format requires regardless of the
// order the caller added them.
type Message struct {
	Type          MessageType
	TransactionID TransactionID

	// UnknownAttributes records comprehension-required attribute types
	// seen during Decode that this package does not recognize. A caller
	// may use this to build a 420 (Unknown Attribute) error response.
	UnknownAttributes []AttrType

	attrs []Attribute
	index map[AttrType]int
}

// NewMessage builds an empty message of the given type with a fresh random
// transaction ID.
func NewMessage(t MessageType) *Message {
	return &Message{
		Type:          t,
		TransactionID: NewTransactionID(),
		index:         make(map[AttrType]int),
	}
}

func (m *Message) ensureIndex() {
	if m.index == nil {
		m.index = make(map[AttrType]int, len(m.attrs))
		for i, a := range m.attrs {
			m.index[a.Type()] = i
		}
	}
}

// AddAttribute appends a to the message, replacing any existing attribute
// of the same type in place. Returns ErrIllegalAttribute if a's presentity
// for m.Type is NotApplicable.
func (m *Message) AddAttribute(a Attribute) error {
	if presentityOf(a.Type(), m.Type) == NotApplicable {
		return illegalAttributef(a.Type(), m.Type)
	}
	m.ensureIndex()
	if i, ok := m.index[a.Type()]; ok {
		m.attrs[i] = a
		return nil
	}
	m.index[a.Type()] = len(m.attrs)
	m.attrs = append(m.attrs, a)
	return nil
}

// Get returns the attribute of type t, if present.
func (m *Message) Get(t AttrType) (Attribute, bool) {
	m.ensureIndex()
	i, ok := m.index[t]
	if !ok {
		return nil, false
	}
	return m.attrs[i], true
}

// Has reports whether an attribute of type t is present.
func (m *Message) Has(t AttrType) bool {
	_, ok := m.Get(t)
	return ok
}

// Remove deletes the attribute of type t, if present, preserving the
// relative order of the remaining attributes.
func (m *Message) Remove(t AttrType) {
	m.ensureIndex()
	i, ok := m.index[t]
	if !ok {
		return
	}
	m.attrs = append(m.attrs[:i], m.attrs[i+1:]...)
	delete(m.index, t)
	for typ, idx := range m.index {
		if idx > i {
			m.index[typ] = idx - 1
		}
	}
}

// Attributes returns the attributes currently held, in add order (any
// replaced attribute keeps its original position).
func (m *Message) Attributes() []Attribute {
	return m.attrs
}

func (m Message) String() string {
	return fmt.Sprintf("%s l=%d attrs=%d id=%s",
		m.Type, m.wireLength(), len(m.attrs),
		base64.StdEncoding.EncodeToString(m.TransactionID[:]))
}

func (m *Message) wireLength() int {
	n := 0
	for _, a := range m.attrs {
		n += attributeHeaderSize + paddedLen(int(a.DataLength()))
	}
	return n
}

// validatePresentity walks every registered attribute index (not merely
// those reachable from this message's attribute list) and, in RFC3489Compat
// mode, reports ErrInvalidState if any MandatoryAttr attribute is absent.
// Unlike the original this model is ported from, this iterates every known
// attribute index rather than stopping partway through the table, so a
// mandatory attribute added after the table's midpoint is no longer missed.
func (m *Message) validatePresentity(cfg CodecConfig) error {
	if !cfg.RFC3489Compat {
		return nil
	}
	kind, ok := msgKindOf(m.Type)
	if !ok {
		return nil
	}
	for idx := attrIndex(0); idx < numAttrIndices; idx++ {
		if presentityTable[idx][kind] != MandatoryAttr {
			continue
		}
		t, ok := indexToAttrType(idx)
		if !ok {
			continue
		}
		if !m.Has(t) {
			return fmt.Errorf("%w: %s", ErrInvalidState, t)
		}
	}
	return nil
}

// Encode serializes m to wire format. MESSAGE-INTEGRITY (if present) is
// placed immediately before FINGERPRINT (if present or implied by
// cfg.AlwaysFingerprint), which is always last, regardless of the order the
// attributes were added in. The message-length header field is finalized
// before any content-dependent attribute is encoded, so FINGERPRINT's CRC
// and MESSAGE-INTEGRITY's HMAC are always computed over the final byte
// image.
func (m *Message) Encode(cfg CodecConfig) ([]byte, error) {
	if cfg.Software != "" && !m.Has(AttrSoftware) {
		if err := m.AddAttribute(Software{Text: cfg.Software}); err != nil {
			return nil, err
		}
	}

	ordered, err := m.orderedForEncode(cfg)
	if err != nil {
		return nil, err
	}

	if err := m.validatePresentity(cfg); err != nil {
		return nil, err
	}

	length := 0
	for _, a := range ordered {
		length += attributeHeaderSize + paddedLen(int(a.DataLength()))
	}
	if length > 0xFFFF {
		return nil, malformedf("encoded length %d exceeds uint16", length)
	}

	raw := make([]byte, messageHeaderSize, messageHeaderSize+length)
	bin.PutUint16(raw[0:2], m.Type.Value())
	bin.PutUint16(raw[2:4], uint16(length)) //nolint:gosec
	bin.PutUint32(raw[4:8], magicCookie)
	copy(raw[8:messageHeaderSize], m.TransactionID[:])

	offset := messageHeaderSize
	for _, a := range ordered {
		var payload []byte
		if cd, ok := a.(ContentDependentAttribute); ok {
			raw = append(raw, make([]byte, attributeHeaderSize)...)
			bin.PutUint16(raw[offset:offset+2], uint16(a.Type()))
			bin.PutUint16(raw[offset+2:offset+4], a.DataLength())
			payload = cd.EncodeContentDependent(raw, 0, offset)
			raw = append(raw[:offset+attributeHeaderSize], payload...)
		} else {
			payload = a.Encode(m)
			raw = append(raw, make([]byte, attributeHeaderSize)...)
			bin.PutUint16(raw[offset:offset+2], uint16(a.Type()))
			bin.PutUint16(raw[offset+2:offset+4], uint16(len(payload))) //nolint:gosec
			raw = append(raw, payload...)
		}
		raw = append(raw, make([]byte, padLen(len(payload)))...)
		offset += attributeHeaderSize + paddedLen(len(payload))
	}
	return raw, nil
}

// orderedForEncode returns m.attrs with MESSAGE-INTEGRITY (if present) moved
// to the penultimate position and FINGERPRINT moved (or added, per
// cfg.AlwaysFingerprint) to the last position.
func (m *Message) orderedForEncode(cfg CodecConfig) ([]Attribute, error) {
	ordered := make([]Attribute, 0, len(m.attrs)+2)
	var integrity, fingerprint Attribute
	for _, a := range m.attrs {
		switch a.Type() {
		case AttrMessageIntegrity:
			integrity = a
		case AttrFingerprint:
			fingerprint = a
		default:
			ordered = append(ordered, a)
		}
	}
	if integrity != nil {
		ordered = append(ordered, integrity)
	}
	if fingerprint != nil {
		ordered = append(ordered, fingerprint)
	} else if cfg.AlwaysFingerprint {
		ordered = append(ordered, &Fingerprint{})
	}
	return ordered, nil
}

// DecodeMessage parses a wire-format STUN message. The magic cookie is read
// but not validated against the fixed constant — multiplexed deployments
// that need strict RFC 5389 framing should check IsMessage before calling
// this. A comprehension-required attribute this package doesn't recognize
// is recorded in UnknownAttributes rather than failing the decode; a
// FINGERPRINT with a bad checksum does fail the decode.
func DecodeMessage(buf []byte) (*Message, error) {
	if len(buf) < messageHeaderSize {
		return nil, malformedf("buffer length %d less than header size %d", len(buf), messageHeaderSize)
	}
	m := &Message{index: make(map[AttrType]int)}
	var tv uint16
	tv = bin.Uint16(buf[0:2])
	m.Type.ReadValue(tv)
	size := int(bin.Uint16(buf[2:4]))
	copy(m.TransactionID[:], buf[8:messageHeaderSize])

	fullSize := messageHeaderSize + size
	if len(buf) < fullSize {
		return nil, malformedf("buffer length %d less than declared message size %d", len(buf), fullSize)
	}

	offset := 0
	b := buf[messageHeaderSize:fullSize]
	for offset < size {
		if len(b) < attributeHeaderSize {
			return nil, malformedf("truncated attribute header at offset %d", offset)
		}
		t := AttrType(bin.Uint16(b[0:2]))
		l := int(bin.Uint16(b[2:4]))
		pL := paddedLen(l)
		b = b[attributeHeaderSize:]
		offset += attributeHeaderSize
		if len(b) < pL {
			return nil, malformedf("%s: truncated value, need %d have %d", t, pL, len(b))
		}
		payload := b[:l]

		var a Attribute
		var err error
		switch {
		case t == AttrFingerprint:
			a, err = decodeFingerprint(payload, buf, messageHeaderSize+offset-attributeHeaderSize)
		case isXorAddressType(t):
			a, err = decodeXorAddress(t, payload, m.TransactionID)
		default:
			a, err = decodeAttribute(t, payload)
		}
		if err != nil {
			if unkT, ok := AttrTypeOf(err); ok {
				m.UnknownAttributes = append(m.UnknownAttributes, unkT)
			} else {
				return nil, err
			}
		}
		if a != nil {
			if i, dup := m.index[t]; dup {
				m.attrs[i] = a
			} else {
				m.index[t] = len(m.attrs)
				m.attrs = append(m.attrs, a)
			}
		}

		offset += pL
		b = b[pL:]
	}
	return m, nil
}

// indexToAttrType is the inverse of attrTypeToIndex, used only by mandatory
// presentity checks which need to name the missing attribute.
func indexToAttrType(idx attrIndex) (AttrType, bool) {
	for t, i := range attrTypeToIndex {
		if i == idx {
			return t, true
		}
	}
	return 0, false
}
