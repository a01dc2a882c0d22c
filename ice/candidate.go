package ice

import (
	"fmt"
	"net"
)

// CandidateType is the origin of a candidate, per RFC 5245 section 4.1.1.
type CandidateType byte

// Possible values for CandidateType.
const (
	CandidateTypeHost CandidateType = iota
	CandidateTypeServerReflexive
	CandidateTypePeerReflexive
	CandidateTypeRelayed
)

func (t CandidateType) String() string {
	switch t {
	case CandidateTypeHost:
		return "host"
	case CandidateTypeServerReflexive:
		return "srflx"
	case CandidateTypePeerReflexive:
		return "prflx"
	case CandidateTypeRelayed:
		return "relay"
	default:
		return fmt.Sprintf("type(%d)", byte(t))
	}
}

// typePreference values from RFC 5245 section 4.1.2.2's recommended
// formula: 126 for host, 100 for server reflexive, 110 for peer reflexive,
// 0 for relayed.
func (t CandidateType) typePreference() uint32 {
	switch t {
	case CandidateTypeHost:
		return 126
	case CandidateTypePeerReflexive:
		return 110
	case CandidateTypeServerReflexive:
		return 100
	case CandidateTypeRelayed:
		return 0
	default:
		return 0
	}
}

// TransportAddress is an IP/port pair reachable over a given Transport.
type TransportAddress struct {
	IP        net.IP
	Port      int
	Transport Transport
}

func (a TransportAddress) String() string {
	return fmt.Sprintf("%s:%s", a.Transport, net.JoinHostPort(a.IP.String(), fmt.Sprintf("%d", a.Port)))
}

// Equal reports whether a and b name the same transport address.
func (a TransportAddress) Equal(b TransportAddress) bool {
	return a.Port == b.Port && a.Transport == b.Transport && a.IP.Equal(b.IP)
}

// Candidate is a transport address an agent offers (or receives) as a
// potential endpoint for a component, along with the bookkeeping RFC 5245
// needs to compare and prioritize it against others.
type Candidate struct {
	// TransportAddress is the address this candidate is reachable at.
	TransportAddress TransportAddress

	// Base is the local address packets sent from this candidate actually
	// originate from. For host candidates Base equals TransportAddress;
	// for reflexive and relayed candidates it is the local socket the
	// server response or relay allocation came back on.
	Base TransportAddress

	// Type is this candidate's origin.
	Type CandidateType

	// Priority is the computed RFC 5245 §4.1.2.1 priority. Zero until
	// ComputePriority is called.
	Priority uint32

	// LocalPreference ranks same-type candidates on a multihomed host;
	// RFC 5245 recommends 65535 when only one interface is in play.
	LocalPreference uint16

	// Foundation groups candidates that share a type, base, and (for
	// reflexive/relayed) STUN/TURN server, per RFC 5245 §4.1.1.3. Stored
	// only; nothing in this package reads it.
	Foundation string

	// DefaultPreference ranks a candidate for selection as its
	// component's default candidate. SelectDefaultCandidate picks the
	// local candidate with the highest DefaultPreference, first-seen
	// winning ties.
	DefaultPreference uint32

	// IsVirtual marks a candidate synthesized for bookkeeping (e.g. a
	// placeholder default candidate) rather than one backed by a live
	// socket.
	IsVirtual bool
}

// ComputePriority sets and returns c.Priority using the formula from RFC
// 5245 section 4.1.2.1:
//
//	priority = 2^24 * type-preference + 2^8 * local-preference + (256 - component-id)
func (c *Candidate) ComputePriority(component ComponentID) uint32 {
	p := c.Type.typePreference()<<24 | uint32(c.LocalPreference)<<8 | uint32(256-uint16(component))
	c.Priority = p
	return p
}

// Free releases any resources Candidate holds. Host candidates hold
// nothing; relayed candidates backed by a TURN allocation in a larger
// deployment would release it here. Present so Component.Free can call it
// uniformly across candidate types without a type switch.
func (c *Candidate) Free() {}

func (c Candidate) String() string {
	return fmt.Sprintf("%s candidate %s (base %s) priority=%d", c.Type, c.TransportAddress, c.Base, c.Priority)
}

// equalEndpoint reports whether a and b are redundant per RFC 5245
// section 4.1.3: same transport address AND same base. A redundant pair
// keeps only the higher-priority candidate.
func equalEndpoint(a, b Candidate) bool {
	return a.TransportAddress.Equal(b.TransportAddress) && a.Base.Equal(b.Base)
}
