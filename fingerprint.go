package stun

import "hash/crc32"

const (
	fingerprintXORValue uint32 = 0x5354554e
	fingerprintSize            = 4 // 32 bit
)

// FingerprintValue returns the CRC-32 (IEEE) of b XOR-ed with 0x5354554e,
// chosen so a FINGERPRINT value collides less often with application
// traffic that also happens to carry a bare CRC-32.
func FingerprintValue(b []byte) uint32 {
	return crc32.ChecksumIEEE(b) ^ fingerprintXORValue
}

// Fingerprint is the FINGERPRINT attribute (RFC 5389 section 15.5). Its
// value is computed over the message bytes that precede it, so it must be
// the last attribute encoded.
type Fingerprint struct {
	CRC uint32
}

func (Fingerprint) Type() AttrType     { return AttrFingerprint }
func (Fingerprint) DataLength() uint16 { return fingerprintSize }

// Encode is never called directly for Fingerprint; EncodeContentDependent
// is used instead. Present to satisfy Attribute.
func (f Fingerprint) Encode(*Message) []byte {
	b := make([]byte, fingerprintSize)
	bin.PutUint32(b, f.CRC)
	return b
}

// EncodeContentDependent computes the CRC over raw[msgOffset:offset], the
// message header through the last attribute preceding this one. The caller
// is expected to have already written this attribute's own 4-byte header
// into raw at offset before calling this, per the message-length-first
// encode discipline.
func (f *Fingerprint) EncodeContentDependent(raw []byte, msgOffset, offset int) []byte {
	crc := FingerprintValue(raw[msgOffset:offset])
	f.CRC = crc
	b := make([]byte, fingerprintSize)
	bin.PutUint32(b, crc)
	return b
}

// decodeFingerprint parses a FINGERPRINT payload and validates its CRC
// against raw[:attrHeaderOffset], the bytes of the message preceding this
// attribute's 4-byte header.
func decodeFingerprint(payload, raw []byte, attrHeaderOffset int) (Attribute, error) {
	if err := checkSize(AttrFingerprint, len(payload), fingerprintSize); err != nil {
		return nil, err
	}
	got := bin.Uint32(payload)
	expected := FingerprintValue(raw[:attrHeaderOffset])
	if got != expected {
		return nil, &CRCMismatch{Expected: expected, Actual: got}
	}
	return &Fingerprint{CRC: got}, nil
}
