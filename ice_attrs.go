package stun

// priorityAttr is the PRIORITY attribute (RFC 5245 section 19.1): the
// ICE candidate-pair priority an agent is offering for this check,
// carried on a Binding request only.
type priorityAttr struct {
	Value uint32
}

const prioritySize = 4

func (p priorityAttr) Type() AttrType     { return AttrPriority }
func (p priorityAttr) DataLength() uint16 { return prioritySize }
func (p priorityAttr) Encode(*Message) []byte {
	b := make([]byte, prioritySize)
	bin.PutUint32(b, p.Value)
	return b
}

// Priority constructs the PRIORITY attribute.
func Priority(value uint32) Attribute { return priorityAttr{Value: value} }

func init() {
	registerAttr(AttrPriority, func(payload []byte) (Attribute, error) {
		if err := checkSize(AttrPriority, len(payload), prioritySize); err != nil {
			return nil, err
		}
		return priorityAttr{Value: bin.Uint32(payload)}, nil
	})
}

// useCandidateAttr is the USE-CANDIDATE attribute (RFC 5245 section 19.1):
// a zero-length flag set by a controlling agent to nominate a pair.
type useCandidateAttr struct{}

func (useCandidateAttr) Type() AttrType        { return AttrUseCandidate }
func (useCandidateAttr) DataLength() uint16    { return 0 }
func (useCandidateAttr) Encode(*Message) []byte { return nil }

// UseCandidate constructs the USE-CANDIDATE flag attribute.
func UseCandidate() Attribute { return useCandidateAttr{} }

func init() {
	registerAttr(AttrUseCandidate, func(payload []byte) (Attribute, error) {
		if err := checkSize(AttrUseCandidate, len(payload), 0); err != nil {
			return nil, err
		}
		return useCandidateAttr{}, nil
	})
}

// tieBreakerAttr backs both ICE-CONTROLLING and ICE-CONTROLLED: an 8-byte
// opaque tiebreaker value used to resolve a role conflict between two
// agents that both believe they are controlling (RFC 5245 section 7.1.2.2).
type tieBreakerAttr struct {
	attrType AttrType
	Value    uint64
}

const tieBreakerSize = 8

func (t tieBreakerAttr) Type() AttrType     { return t.attrType }
func (t tieBreakerAttr) DataLength() uint16 { return tieBreakerSize }
func (t tieBreakerAttr) Encode(*Message) []byte {
	b := make([]byte, tieBreakerSize)
	bin.PutUint64(b, t.Value)
	return b
}

// ICEControlling constructs the ICE-CONTROLLING attribute.
func ICEControlling(tieBreaker uint64) Attribute {
	return tieBreakerAttr{attrType: AttrICEControlling, Value: tieBreaker}
}

// ICEControlled constructs the ICE-CONTROLLED attribute.
func ICEControlled(tieBreaker uint64) Attribute {
	return tieBreakerAttr{attrType: AttrICEControlled, Value: tieBreaker}
}

func init() {
	decode := func(t AttrType) attrDecoder {
		return func(payload []byte) (Attribute, error) {
			if err := checkSize(t, len(payload), tieBreakerSize); err != nil {
				return nil, err
			}
			return tieBreakerAttr{attrType: t, Value: bin.Uint64(payload)}, nil
		}
	}
	registerAttr(AttrICEControlling, decode(AttrICEControlling))
	registerAttr(AttrICEControlled, decode(AttrICEControlled))
}
