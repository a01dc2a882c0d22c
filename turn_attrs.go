package stun

// ChannelNumber is the CHANNEL-NUMBER attribute (RFC 5766 section 14.1): a
// 16-bit channel identifier in [0x4000, 0x7FFE] followed by 2 reserved
// bytes.
type ChannelNumber struct {
	Number uint16
}

const channelNumberSize = 4

func (c ChannelNumber) Type() AttrType     { return AttrChannelNumber }
func (c ChannelNumber) DataLength() uint16 { return channelNumberSize }
func (c ChannelNumber) Encode(*Message) []byte {
	b := make([]byte, channelNumberSize)
	bin.PutUint16(b[0:2], c.Number)
	return b
}

func init() {
	registerAttr(AttrChannelNumber, func(payload []byte) (Attribute, error) {
		if err := checkSize(AttrChannelNumber, len(payload), channelNumberSize); err != nil {
			return nil, err
		}
		return ChannelNumber{Number: bin.Uint16(payload[0:2])}, nil
	})
}

// Lifetime is the LIFETIME attribute (RFC 5766 section 14.2): the
// requested or granted allocation lifetime in seconds.
type Lifetime struct {
	Seconds uint32
}

const lifetimeSize = 4

func (l Lifetime) Type() AttrType     { return AttrLifetime }
func (l Lifetime) DataLength() uint16 { return lifetimeSize }
func (l Lifetime) Encode(*Message) []byte {
	b := make([]byte, lifetimeSize)
	bin.PutUint32(b, l.Seconds)
	return b
}

func init() {
	registerAttr(AttrLifetime, func(payload []byte) (Attribute, error) {
		if err := checkSize(AttrLifetime, len(payload), lifetimeSize); err != nil {
			return nil, err
		}
		return Lifetime{Seconds: bin.Uint32(payload)}, nil
	})
}

// Data is the DATA attribute (RFC 5766 section 14.4): the application
// payload carried by a Send or Data indication.
type Data struct {
	Payload []byte
}

func (d Data) Type() AttrType     { return AttrData }
func (d Data) DataLength() uint16 { return uint16(len(d.Payload)) } //nolint:gosec
func (d Data) Encode(*Message) []byte {
	return d.Payload
}

func init() {
	registerAttr(AttrData, func(payload []byte) (Attribute, error) {
		cp := make([]byte, len(payload))
		copy(cp, payload)
		return Data{Payload: cp}, nil
	})
}

// EvenPort is the EVEN-PORT attribute (RFC 5766 section 14.6): a
// reservation hint requesting an even relayed port, optionally also
// reserving the next higher odd port.
type EvenPort struct {
	ReserveNext bool
}

const evenPortSize = 1

func (e EvenPort) Type() AttrType     { return AttrEvenPort }
func (e EvenPort) DataLength() uint16 { return evenPortSize }
func (e EvenPort) Encode(*Message) []byte {
	b := make([]byte, evenPortSize)
	if e.ReserveNext {
		b[0] = 0x80
	}
	return b
}

func init() {
	registerAttr(AttrEvenPort, func(payload []byte) (Attribute, error) {
		if err := checkSize(AttrEvenPort, len(payload), evenPortSize); err != nil {
			return nil, err
		}
		return EvenPort{ReserveNext: payload[0]&0x80 != 0}, nil
	})
}

// requestedTransportUDP is the only protocol number RFC 5766 defines for
// REQUESTED-TRANSPORT (17, the IANA protocol number for UDP).
const requestedTransportUDP = 17

// RequestedTransport is the REQUESTED-TRANSPORT attribute (RFC 5766
// section 14.7): the desired relayed transport protocol, always UDP (17)
// per the base TURN specification.
type RequestedTransport struct {
	Protocol byte
}

const requestedTransportSize = 4

func (r RequestedTransport) Type() AttrType     { return AttrRequestedTransport }
func (r RequestedTransport) DataLength() uint16 { return requestedTransportSize }
func (r RequestedTransport) Encode(*Message) []byte {
	b := make([]byte, requestedTransportSize)
	b[0] = r.Protocol
	return b
}

func init() {
	registerAttr(AttrRequestedTransport, func(payload []byte) (Attribute, error) {
		if err := checkSize(AttrRequestedTransport, len(payload), requestedTransportSize); err != nil {
			return nil, err
		}
		return RequestedTransport{Protocol: payload[0]}, nil
	})
}

// DontFragment is the DONT-FRAGMENT attribute (RFC 5766 section 14.8): a
// zero-length flag asking the relay to set the IP don't-fragment bit.
type DontFragment struct{}

func (DontFragment) Type() AttrType        { return AttrDontFragment }
func (DontFragment) DataLength() uint16    { return 0 }
func (DontFragment) Encode(*Message) []byte { return nil }

func init() {
	registerAttr(AttrDontFragment, func(payload []byte) (Attribute, error) {
		if err := checkSize(AttrDontFragment, len(payload), 0); err != nil {
			return nil, err
		}
		return DontFragment{}, nil
	})
}

// ReservationToken is the RESERVATION-TOKEN attribute (RFC 5766 section
// 14.9): an 8-byte opaque token letting a subsequent Allocate request
// claim a previously reserved port.
type ReservationToken struct {
	Token [8]byte
}

const reservationTokenSize = 8

func (r ReservationToken) Type() AttrType     { return AttrReservationToken }
func (r ReservationToken) DataLength() uint16 { return reservationTokenSize }
func (r ReservationToken) Encode(*Message) []byte {
	b := make([]byte, reservationTokenSize)
	copy(b, r.Token[:])
	return b
}

func init() {
	registerAttr(AttrReservationToken, func(payload []byte) (Attribute, error) {
		if err := checkSize(AttrReservationToken, len(payload), reservationTokenSize); err != nil {
			return nil, err
		}
		var tok [8]byte
		copy(tok[:], payload)
		return ReservationToken{Token: tok}, nil
	})
}
