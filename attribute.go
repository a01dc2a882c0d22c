package stun

import "fmt"

// AttrType is a STUN/TURN/ICE attribute type code.
//
// Comprehension-required types are in [0x0000, 0x7FFF]; an agent that does
// not recognize one of these must treat the message as malformed rather
// than ignore the attribute. Comprehension-optional types are in
// [0x8000, 0xFFFF] and may be safely ignored when unrecognized.
type AttrType uint16

// Classic and RFC 5389 STUN attributes.
const (
	AttrMappedAddress    AttrType = 0x0001
	AttrResponseAddress  AttrType = 0x0002
	AttrChangeRequest    AttrType = 0x0003
	AttrSourceAddress    AttrType = 0x0004
	AttrChangedAddress   AttrType = 0x0005
	AttrUsername         AttrType = 0x0006
	AttrPassword         AttrType = 0x0007
	AttrMessageIntegrity AttrType = 0x0008
	AttrErrorCode        AttrType = 0x0009
	AttrUnknownAttrs     AttrType = 0x000A
	AttrReflectedFrom    AttrType = 0x000B
	AttrXORMappedAddress AttrType = 0x0020
	AttrXOROnly          AttrType = 0x0021
	AttrSoftware         AttrType = 0x8022
	AttrAlternateServer  AttrType = 0x8023
	AttrFingerprint      AttrType = 0x8028
)

// RFC 5766 (TURN) attributes.
const (
	AttrChannelNumber      AttrType = 0x000C
	AttrLifetime           AttrType = 0x000D
	AttrXORPeerAddress     AttrType = 0x0012
	AttrData               AttrType = 0x0013
	AttrRealm              AttrType = 0x0014
	AttrNonce              AttrType = 0x0015
	AttrXORRelayedAddress  AttrType = 0x0016
	AttrEvenPort           AttrType = 0x0018
	AttrRequestedTransport AttrType = 0x0019
	AttrDontFragment       AttrType = 0x001A
	AttrReservationToken   AttrType = 0x0022
)

// RFC 5245 (ICE) attributes — the one coupling point between the codec and
// the Component model: these are only legal on connectivity-check messages.
const (
	AttrPriority       AttrType = 0x0024
	AttrUseCandidate   AttrType = 0x0025
	AttrICEControlled  AttrType = 0x8029
	AttrICEControlling AttrType = 0x802A
)

var attrTypeNames = map[AttrType]string{
	AttrMappedAddress:      "MAPPED-ADDRESS",
	AttrResponseAddress:    "RESPONSE-ADDRESS",
	AttrChangeRequest:      "CHANGE-REQUEST",
	AttrSourceAddress:      "SOURCE-ADDRESS",
	AttrChangedAddress:     "CHANGED-ADDRESS",
	AttrUsername:           "USERNAME",
	AttrPassword:           "PASSWORD",
	AttrMessageIntegrity:   "MESSAGE-INTEGRITY",
	AttrErrorCode:          "ERROR-CODE",
	AttrUnknownAttrs:       "UNKNOWN-ATTRIBUTES",
	AttrReflectedFrom:      "REFLECTED-FROM",
	AttrXORMappedAddress:   "XOR-MAPPED-ADDRESS",
	AttrXOROnly:            "XOR-ONLY",
	AttrSoftware:           "SOFTWARE",
	AttrAlternateServer:    "ALTERNATE-SERVER",
	AttrFingerprint:        "FINGERPRINT",
	AttrChannelNumber:      "CHANNEL-NUMBER",
	AttrLifetime:           "LIFETIME",
	AttrXORPeerAddress:     "XOR-PEER-ADDRESS",
	AttrData:               "DATA",
	AttrRealm:              "REALM",
	AttrNonce:              "NONCE",
	AttrXORRelayedAddress:  "XOR-RELAYED-ADDRESS",
	AttrEvenPort:           "EVEN-PORT",
	AttrRequestedTransport: "REQUESTED-TRANSPORT",
	AttrDontFragment:       "DONT-FRAGMENT",
	AttrReservationToken:   "RESERVATION-TOKEN",
	AttrPriority:           "PRIORITY",
	AttrUseCandidate:       "USE-CANDIDATE",
	AttrICEControlled:      "ICE-CONTROLLED",
	AttrICEControlling:     "ICE-CONTROLLING",
}

func (t AttrType) String() string {
	if n, ok := attrTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("0x%04x", uint16(t))
}

// comprehensionRequired reports whether an agent that doesn't recognize t
// must treat the message as malformed (true) or may ignore the attribute
// (false, comprehension-optional: top bit set).
func (t AttrType) comprehensionRequired() bool {
	return t&0x8000 == 0
}

// Attribute is a decoded STUN attribute value. Every concrete attribute
// type (Username, Priority, XORMappedAddress, ...) implements this.
//
// Encode returns the wire payload only — the 4-byte type/length header and
// any trailing padding are added by the message codec, not by Encode
// itself. msg is provided for attributes whose encoding depends on message
// state (the XOR-address family needs msg.TransactionID).
type Attribute interface {
	Type() AttrType
	DataLength() uint16
	Encode(msg *Message) []byte
}

// ContentDependentAttribute is an Attribute whose payload depends on the
// bytes of the message written so far (FINGERPRINT, MESSAGE-INTEGRITY).
// EncodeContentDependent is called during message emission once raw[:offset]
// holds the complete header and every attribute preceding this one,
// including the final dataLength already written into the header.
type ContentDependentAttribute interface {
	Attribute
	EncodeContentDependent(raw []byte, msgOffset, offset int) []byte
}

// attrDecoder parses an attribute payload (header already consumed) into a
// typed Attribute.
type attrDecoder func(payload []byte) (Attribute, error)

var attrDecoders = map[AttrType]attrDecoder{}

// registerAttr wires a decoder into the global registry. Called from each
// attribute's file-level init, mirroring the teacher's per-file attribute
// definitions.
func registerAttr(t AttrType, d attrDecoder) {
	attrDecoders[t] = d
}

// RawAttribute is the decode result for an attribute type with no
// registered decoder: FINGERPRINT and MESSAGE-INTEGRITY excepted (which
// are always recognized), an unrecognized comprehension-optional attribute
// is preserved verbatim so a caller can still inspect or re-encode it.
type RawAttribute struct {
	AttrType AttrType
	Raw      []byte
}

func (r RawAttribute) Type() AttrType      { return r.AttrType }
func (r RawAttribute) DataLength() uint16  { return uint16(len(r.Raw)) } //nolint:gosec
func (r RawAttribute) Encode(*Message) []byte {
	return r.Raw
}

// decodeAttribute parses one attribute's payload given its type, dispatching
// to a registered decoder or falling back to RawAttribute for
// comprehension-optional types. Comprehension-required unknown types are
// reported via ErrUnknownAttribute so the message codec can record them.
func decodeAttribute(t AttrType, payload []byte) (Attribute, error) {
	if dec, ok := attrDecoders[t]; ok {
		return dec(payload)
	}
	if t.comprehensionRequired() {
		return RawAttribute{AttrType: t, Raw: payload}, errorsWrapUnknown(t)
	}
	return RawAttribute{AttrType: t, Raw: payload}, nil
}

func errorsWrapUnknown(t AttrType) error {
	return &unknownAttributeErr{t: t}
}

type unknownAttributeErr struct{ t AttrType }

func (e *unknownAttributeErr) Error() string {
	return ErrUnknownAttribute.Error() + ": " + e.t.String()
}

func (e *unknownAttributeErr) Unwrap() error { return ErrUnknownAttribute }

// AttrTypeOf returns the AttrType an unknownAttributeErr was raised for, or
// 0, false if err is not one.
func AttrTypeOf(err error) (AttrType, bool) {
	if e, ok := err.(*unknownAttributeErr); ok {
		return e.t, true
	}
	return 0, false
}
