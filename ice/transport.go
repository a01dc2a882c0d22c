// Package ice models the ICE (RFC 5245) candidate bookkeeping that sits on
// top of the stun package's connectivity-check message codec: candidates,
// their priorities, and the per-component lists a connectivity-check agent
// consults to pick pairs.
package ice

import "fmt"

// Transport is the transport protocol a candidate is reachable over.
type Transport byte

// Possible values for Transport.
const (
	TransportUDP Transport = iota
	TransportTCP
	TransportTLS
	TransportDTLS
)

func (t Transport) String() string {
	switch t {
	case TransportUDP:
		return "udp"
	case TransportTCP:
		return "tcp"
	case TransportTLS:
		return "tls"
	case TransportDTLS:
		return "dtls"
	default:
		return fmt.Sprintf("transport(%d)", byte(t))
	}
}

// ComponentID identifies a component within a media stream. RFC 5245
// section 4.1.1.1 reserves 1 for RTP and 2 for RTCP; component IDs for
// other stream types are caller-defined in [1, 256].
type ComponentID uint16

// The two component IDs RFC 5245 names explicitly.
const (
	ComponentRTP  ComponentID = 1
	ComponentRTCP ComponentID = 2
)
