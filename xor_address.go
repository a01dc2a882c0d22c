package stun

import (
	"fmt"
	"net"
)

// The address family values from RFC 5389 section 15.1.
const (
	familyIPv4 uint16 = 0x01
	familyIPv6 uint16 = 0x02
)

// isZeros reports whether every byte of p is zero.
func isZeros(p net.IP) bool {
	for _, b := range p {
		if b != 0 {
			return false
		}
	}
	return true
}

// isIPv4 reports whether a 16-byte IP is an IPv4-mapped address.
func isIPv4(ip net.IP) bool {
	return len(ip) == net.IPv6len && isZeros(ip[0:10]) && ip[10] == 0xff && ip[11] == 0xff
}

func xorBytes(dst, a, b []byte) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dst[i] = a[i] ^ b[i]
	}
}

// xorKey returns the 16-byte value every XOR-address family XORs the
// address bits against: the magic cookie followed by the transaction ID.
func xorKey(txID TransactionID) []byte {
	k := make([]byte, 4+transactionIDSize)
	bin.PutUint32(k[0:4], magicCookie)
	copy(k[4:], txID[:])
	return k
}

// xorAddress is the shared representation for XOR-MAPPED-ADDRESS,
// XOR-PEER-ADDRESS and XOR-RELAYED-ADDRESS (RFC 5389 section 15.2, RFC
// 5766 sections 14.3 and 14.5): identical wire encoding, different
// attribute type codes.
type xorAddress struct {
	attrType AttrType
	IP       net.IP
	Port     int
}

func (a xorAddress) Type() AttrType { return a.attrType }

func (a xorAddress) DataLength() uint16 {
	ip := a.IP
	if len(ip) == net.IPv6len && isIPv4(ip) {
		ip = ip[12:16]
	}
	return uint16(4 + len(ip)) //nolint:gosec
}

func (a xorAddress) String() string {
	return net.JoinHostPort(a.IP.String(), fmt.Sprintf("%d", a.Port))
}

func (a xorAddress) encode(txID TransactionID) ([]byte, error) {
	family := familyIPv4
	ip := a.IP
	switch {
	case len(ip) == net.IPv6len && isIPv4(ip):
		ip = ip[12:16]
	case len(ip) == net.IPv6len:
		family = familyIPv6
	case len(ip) != net.IPv4len:
		return nil, malformedf("%s: invalid IP length %d", a.attrType, len(ip))
	}

	v := make([]byte, 4+len(ip))
	bin.PutUint16(v[0:2], family)
	key := xorKey(txID)
	var portBuf [2]byte
	bin.PutUint16(portBuf[:], uint16(a.Port)) //nolint:gosec
	xorBytes(v[2:4], portBuf[:], key[0:2])
	xorBytes(v[4:], ip, key)
	return v, nil
}

func (a xorAddress) Encode(msg *Message) []byte {
	v, err := a.encode(msg.TransactionID)
	if err != nil {
		// a.IP is neither 4 nor 16 bytes long; surface it as an empty
		// payload rather than panicking.
		return nil
	}
	return v
}

func decodeXorAddress(attrType AttrType, payload []byte, txID TransactionID) (Attribute, error) {
	if len(payload) < 4 {
		return nil, malformedf("%s: too short", attrType)
	}
	family := bin.Uint16(payload[0:2])
	var ipLen int
	switch family {
	case familyIPv4:
		ipLen = net.IPv4len
	case familyIPv6:
		ipLen = net.IPv6len
	default:
		return nil, malformedf("%s: bad address family %d", attrType, family)
	}
	if err := checkSize(attrType, len(payload), 4+ipLen); err != nil {
		return nil, err
	}

	key := xorKey(txID)
	var portBuf [2]byte
	xorBytes(portBuf[:], payload[2:4], key[0:2])
	ip := make(net.IP, ipLen)
	xorBytes(ip, payload[4:], key)

	return xorAddress{attrType: attrType, IP: ip, Port: int(bin.Uint16(portBuf[:]))}, nil
}

// isXorAddressType reports whether t is one of the XOR-address family. The
// message codec dispatches these directly to decodeXorAddress instead of
// through the attrDecoders registry, because unlike every other attribute
// their decoding depends on message state (the transaction ID).
func isXorAddressType(t AttrType) bool {
	switch t {
	case AttrXORMappedAddress, AttrXORPeerAddress, AttrXORRelayedAddress:
		return true
	default:
		return false
	}
}

// NewXORMappedAddress returns an Attribute for the XOR-MAPPED-ADDRESS attribute.
func NewXORMappedAddress(ip net.IP, port int) Attribute {
	return xorAddress{attrType: AttrXORMappedAddress, IP: ip, Port: port}
}

// NewXORPeerAddress returns an Attribute for the XOR-PEER-ADDRESS attribute.
func NewXORPeerAddress(ip net.IP, port int) Attribute {
	return xorAddress{attrType: AttrXORPeerAddress, IP: ip, Port: port}
}

// NewXORRelayedAddress returns an Attribute for the XOR-RELAYED-ADDRESS attribute.
func NewXORRelayedAddress(ip net.IP, port int) Attribute {
	return xorAddress{attrType: AttrXORRelayedAddress, IP: ip, Port: port}
}
