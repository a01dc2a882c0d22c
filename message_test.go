package stun

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindingRequest() *Message {
	return NewMessage(MessageType{Class: ClassRequest, Method: MethodBinding})
}

func TestMessageEncodeDecodeRoundTrip(t *testing.T) {
	// XOR-MAPPED-ADDRESS and SOFTWARE are N/A on a Binding request, so the
	// round trip uses a Binding success response.
	m := NewMessage(MessageType{Class: ClassSuccessResponse, Method: MethodBinding})
	require.NoError(t, m.AddAttribute(NewMappedAddress(net.ParseIP("203.0.113.5"), 54321)))
	require.NoError(t, m.AddAttribute(NewXORMappedAddress(net.ParseIP("203.0.113.5"), 54321).(xorAddress)))

	raw, err := m.Encode(CodecConfig{Software: "stunice-test", AlwaysFingerprint: true})
	require.NoError(t, err)

	decoded, err := DecodeMessage(raw)
	require.NoError(t, err)

	assert.Equal(t, m.Type, decoded.Type)
	assert.Equal(t, m.TransactionID, decoded.TransactionID)
	assert.Empty(t, decoded.UnknownAttributes)

	ma, ok := decoded.Get(AttrMappedAddress)
	require.True(t, ok)
	assert.Equal(t, 54321, ma.(plainAddress).Port)

	xa, ok := decoded.Get(AttrXORMappedAddress)
	require.True(t, ok)
	addr := xa.(xorAddress)
	assert.Equal(t, 54321, addr.Port)
	assert.True(t, addr.IP.Equal(net.ParseIP("203.0.113.5")))

	sw, ok := decoded.Get(AttrSoftware)
	require.True(t, ok)
	assert.Equal(t, "stunice-test", sw.(Software).Text)

	_, ok = decoded.Get(AttrFingerprint)
	assert.True(t, ok, "FINGERPRINT should have been appended")
}

func TestMessageFingerprintDetectsCorruption(t *testing.T) {
	m := bindingRequest()
	raw, err := m.Encode(CodecConfig{AlwaysFingerprint: true})
	require.NoError(t, err)

	raw[len(raw)-1] ^= 0xFF // flip a bit inside the FINGERPRINT payload

	_, err = DecodeMessage(raw)
	require.Error(t, err)
	var mismatch *CRCMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestMessageIntegrityRoundTrip(t *testing.T) {
	m := bindingRequest()
	require.NoError(t, m.AddAttribute(Username{Text: "alice"}))

	key := NewShortTermIntegrity("s3cret")
	require.NoError(t, m.AddAttribute(key))

	raw, err := m.Encode(CodecConfig{AlwaysFingerprint: true})
	require.NoError(t, err)

	decoded, err := DecodeMessage(raw)
	require.NoError(t, err)

	require.NoError(t, key.Check(decoded, raw))
}

func TestMessageIntegrityRejectsWrongKey(t *testing.T) {
	m := bindingRequest()
	require.NoError(t, m.AddAttribute(NewShortTermIntegrity("s3cret")))

	raw, err := m.Encode(CodecConfig{})
	require.NoError(t, err)

	decoded, err := DecodeMessage(raw)
	require.NoError(t, err)

	err = NewShortTermIntegrity("wrong").Check(decoded, raw)
	assert.ErrorIs(t, err, ErrIntegrityMismatch)
}

func TestAddAttributeRejectsIllegalAttribute(t *testing.T) {
	m := NewMessage(MessageType{Class: ClassSuccessResponse, Method: MethodBinding})
	// PRIORITY is N/A outside a Binding request.
	err := m.AddAttribute(priorityAttr{Value: 100})
	assert.ErrorIs(t, err, ErrIllegalAttribute)
}

func TestAddAttributeReplacesInPlace(t *testing.T) {
	m := bindingRequest()
	require.NoError(t, m.AddAttribute(Username{Text: "first"}))
	require.NoError(t, m.AddAttribute(Priority(100)))
	require.NoError(t, m.AddAttribute(Username{Text: "second"}))

	attrs := m.Attributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, AttrUsername, attrs[0].Type())
	assert.Equal(t, "second", attrs[0].(Username).Text)
}

func TestUnknownComprehensionRequiredAttributeIsRecordedNotFatal(t *testing.T) {
	m := bindingRequest()
	raw, err := m.Encode(CodecConfig{})
	require.NoError(t, err)

	// Append a fabricated comprehension-required attribute (top bit clear)
	// directly, then fix up the header length.
	extra := []byte{0x00, 0x3F, 0x00, 0x04, 1, 2, 3, 4}
	bin.PutUint16(raw[2:4], uint16(len(raw)-messageHeaderSize+len(extra)))
	raw = append(raw, extra...)

	decoded, err := DecodeMessage(raw)
	require.NoError(t, err)
	require.Len(t, decoded.UnknownAttributes, 1)
	assert.Equal(t, AttrType(0x3F), decoded.UnknownAttributes[0])
}

func TestDecodeMessageTruncatedBufferIsMalformed(t *testing.T) {
	_, err := DecodeMessage([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestMessageTypeValueRoundTrip(t *testing.T) {
	for _, tt := range []MessageType{
		{Class: ClassRequest, Method: MethodBinding},
		{Class: ClassSuccessResponse, Method: MethodBinding},
		{Class: ClassErrorResponse, Method: MethodAllocate},
		{Class: ClassIndication, Method: MethodData},
	} {
		var got MessageType
		got.ReadValue(tt.Value())
		assert.Equal(t, tt, got)
	}
}
