package stun

// Length limits from RFC 5389 sections 15.3, 15.6, 15.7, 15.8: USERNAME is
// bounded by the shared 513-byte STUN value ceiling; REALM, NONCE and
// SOFTWARE share the 763-byte ceiling used for quoted-string attributes.
const (
	maxUsernameBytes = 513
	maxRealmBytes    = 763
	maxNonceBytes    = 763
	maxSoftwareBytes = 763
)

// Username is the USERNAME attribute: the identity of the party sending
// the message, used to key MESSAGE-INTEGRITY verification.
type Username struct{ Text string }

func (u Username) Type() AttrType     { return AttrUsername }
func (u Username) DataLength() uint16 { return uint16(len(u.Text)) } //nolint:gosec
func (u Username) String() string     { return u.Text }
func (u Username) Encode(*Message) []byte {
	return []byte(u.Text)
}

func init() {
	registerAttr(AttrUsername, func(payload []byte) (Attribute, error) {
		if len(payload) > maxUsernameBytes {
			return nil, malformedf("USERNAME: %d bytes exceeds %d byte limit", len(payload), maxUsernameBytes)
		}
		return Username{Text: string(payload)}, nil
	})
}

// Realm is the REALM attribute: the domain a long-term credential is
// scoped to.
type Realm struct{ Text string }

func (r Realm) Type() AttrType     { return AttrRealm }
func (r Realm) DataLength() uint16 { return uint16(len(r.Text)) } //nolint:gosec
func (r Realm) String() string     { return r.Text }
func (r Realm) Encode(*Message) []byte {
	return []byte(r.Text)
}

func init() {
	registerAttr(AttrRealm, func(payload []byte) (Attribute, error) {
		if len(payload) > maxRealmBytes {
			return nil, malformedf("REALM: %d bytes exceeds %d byte limit", len(payload), maxRealmBytes)
		}
		return Realm{Text: string(payload)}, nil
	})
}

// Nonce is the NONCE attribute: a server-issued replay-protection token
// echoed back by the client on a subsequent long-term-credential request.
type Nonce struct{ Text string }

func (n Nonce) Type() AttrType     { return AttrNonce }
func (n Nonce) DataLength() uint16 { return uint16(len(n.Text)) } //nolint:gosec
func (n Nonce) String() string     { return n.Text }
func (n Nonce) Encode(*Message) []byte {
	return []byte(n.Text)
}

func init() {
	registerAttr(AttrNonce, func(payload []byte) (Attribute, error) {
		if len(payload) > maxNonceBytes {
			return nil, malformedf("NONCE: %d bytes exceeds %d byte limit", len(payload), maxNonceBytes)
		}
		return Nonce{Text: string(payload)}, nil
	})
}

// Software is the SOFTWARE attribute: a textual description of the
// software creating the message, for diagnostics only.
type Software struct{ Text string }

func (s Software) Type() AttrType     { return AttrSoftware }
func (s Software) DataLength() uint16 { return uint16(len(s.Text)) } //nolint:gosec
func (s Software) String() string     { return s.Text }
func (s Software) Encode(*Message) []byte {
	return []byte(s.Text)
}

func init() {
	registerAttr(AttrSoftware, func(payload []byte) (Attribute, error) {
		if len(payload) > maxSoftwareBytes {
			return nil, malformedf("SOFTWARE: %d bytes exceeds %d byte limit", len(payload), maxSoftwareBytes)
		}
		return Software{Text: string(payload)}, nil
	})
}

// Password is the classic RFC 3489 PASSWORD attribute: a shared secret
// returned by a Shared Secret response, never sent on a Binding message.
type Password struct{ Text string }

func (p Password) Type() AttrType     { return AttrPassword }
func (p Password) DataLength() uint16 { return uint16(len(p.Text)) } //nolint:gosec
func (p Password) String() string     { return p.Text }
func (p Password) Encode(*Message) []byte {
	return []byte(p.Text)
}

func init() {
	registerAttr(AttrPassword, func(payload []byte) (Attribute, error) {
		return Password{Text: string(payload)}, nil
	})
}
