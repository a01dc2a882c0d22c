package stun

import (
	"fmt"
	"net"
)

// plainAddress is the shared representation for the classic, non-XOR
// address attributes: MAPPED-ADDRESS, RESPONSE-ADDRESS, SOURCE-ADDRESS,
// CHANGED-ADDRESS and ALTERNATE-SERVER (RFC 5389 sections 15.1, 15.9 and
// the RFC 3489 legacy attributes kept for compatibility mode).
type plainAddress struct {
	attrType AttrType
	IP       net.IP
	Port     int
}

func (a plainAddress) Type() AttrType { return a.attrType }

func (a plainAddress) DataLength() uint16 {
	ip := a.IP
	if len(ip) == net.IPv6len && isIPv4(ip) {
		ip = ip[12:16]
	}
	return uint16(4 + len(ip)) //nolint:gosec
}

func (a plainAddress) String() string {
	return net.JoinHostPort(a.IP.String(), fmt.Sprintf("%d", a.Port))
}

func (a plainAddress) Encode(*Message) []byte {
	family := familyIPv4
	ip := a.IP
	switch {
	case len(ip) == net.IPv6len && isIPv4(ip):
		ip = ip[12:16]
	case len(ip) == net.IPv6len:
		family = familyIPv6
	case len(ip) != net.IPv4len:
		return nil
	}
	v := make([]byte, 4+len(ip))
	bin.PutUint16(v[0:2], family)
	bin.PutUint16(v[2:4], uint16(a.Port)) //nolint:gosec
	copy(v[4:], ip)
	return v
}

func decodePlainAddress(attrType AttrType, payload []byte) (Attribute, error) {
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
	ip := make(net.IP, ipLen)
	copy(ip, payload[4:])
	return plainAddress{attrType: attrType, IP: ip, Port: int(bin.Uint16(payload[2:4]))}, nil
}

func init() {
	for _, t := range []AttrType{
		AttrMappedAddress,
		AttrResponseAddress,
		AttrSourceAddress,
		AttrChangedAddress,
		AttrAlternateServer,
	} {
		t := t
		registerAttr(t, func(payload []byte) (Attribute, error) {
			return decodePlainAddress(t, payload)
		})
	}
}

// NewMappedAddress constructs the MAPPED-ADDRESS attribute.
func NewMappedAddress(ip net.IP, port int) Attribute {
	return plainAddress{attrType: AttrMappedAddress, IP: ip, Port: port}
}

// NewAlternateServer constructs the ALTERNATE-SERVER attribute.
func NewAlternateServer(ip net.IP, port int) Attribute {
	return plainAddress{attrType: AttrAlternateServer, IP: ip, Port: port}
}
