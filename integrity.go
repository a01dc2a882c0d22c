// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package stun

import (
	"crypto/md5" //nolint:gosec
	"fmt"
	"hash"
	"strings"

	"github.com/netwrx/stunice/internal/hmac"
)

// writeOrPanic writes b to h, panicking on error. A hash.Hash (or the HMAC
// wrapper over one) never returns an error from Write, so this converts an
// impossible failure into a stack trace instead of threading it through
// every caller.
func writeOrPanic(h hash.Hash, b []byte) {
	if _, err := h.Write(b); err != nil {
		panic(err)
	}
}

const credentialsSep = ":"

const messageIntegritySize = 20

// NewLongTermIntegrity returns a MessageIntegrity key for long-term
// credentials. username, realm and password must already be SASL-prepared.
func NewLongTermIntegrity(username, realm, password string) MessageIntegrity {
	k := strings.Join([]string{username, realm, password}, credentialsSep)
	h := md5.New() //nolint:gosec
	fmt.Fprint(h, k)
	return MessageIntegrity(h.Sum(nil))
}

// NewShortTermIntegrity returns a MessageIntegrity key for short-term
// credentials. password must already be SASL-prepared.
func NewShortTermIntegrity(password string) MessageIntegrity {
	return MessageIntegrity(password)
}

// MessageIntegrity is the MESSAGE-INTEGRITY attribute (RFC 5389 section
// 15.4): an HMAC-SHA1 over the message bytes preceding it, keyed by a
// short-term or long-term credential. Its value is a ContentDependentAttribute
// must immediately precede FINGERPRINT when both are present.
type MessageIntegrity []byte

func (i MessageIntegrity) Type() AttrType     { return AttrMessageIntegrity }
func (i MessageIntegrity) DataLength() uint16 { return messageIntegritySize }

func (i MessageIntegrity) String() string {
	return fmt.Sprintf("KEY: 0x%x", []byte(i))
}

// Encode is never called directly; EncodeContentDependent is used instead.
func (i MessageIntegrity) Encode(*Message) []byte {
	return make([]byte, messageIntegritySize)
}

// EncodeContentDependent computes the HMAC over raw[msgOffset:offset] under
// key i.
func (i MessageIntegrity) EncodeContentDependent(raw []byte, msgOffset, offset int) []byte {
	mac := hmac.AcquireSHA1(i)
	defer hmac.PutSHA1(mac)
	writeOrPanic(mac, raw[msgOffset:offset])
	return mac.Sum(nil)
}

// messageIntegrityAttr is the decode result: the raw HMAC bytes as read off
// the wire, kept distinct from MessageIntegrity (a key) to avoid confusing
// the two roles.
type messageIntegrityAttr struct {
	mac []byte
}

func (a messageIntegrityAttr) Type() AttrType     { return AttrMessageIntegrity }
func (a messageIntegrityAttr) DataLength() uint16 { return uint16(len(a.mac)) } //nolint:gosec
func (a messageIntegrityAttr) Encode(*Message) []byte {
	return a.mac
}

func init() {
	registerAttr(AttrMessageIntegrity, func(payload []byte) (Attribute, error) {
		if err := checkSize(AttrMessageIntegrity, len(payload), messageIntegritySize); err != nil {
			return nil, err
		}
		mac := make([]byte, messageIntegritySize)
		copy(mac, payload)
		return messageIntegrityAttr{mac: mac}, nil
	})
}

// Check verifies a decoded message's MESSAGE-INTEGRITY attribute against the
// HMAC recomputed under key i, covering the bytes of raw preceding the
// attribute's own header.
func (i MessageIntegrity) Check(msg *Message, raw []byte) error {
	a, ok := msg.Get(AttrMessageIntegrity)
	if !ok {
		return ErrAttributeNotFound
	}
	mi, ok := a.(messageIntegrityAttr)
	if !ok {
		return ErrAttributeNotFound
	}
	offset, err := attrHeaderOffset(raw, AttrMessageIntegrity)
	if err != nil {
		return err
	}
	expected := i.EncodeContentDependent(raw, 0, offset)
	return checkHMAC(mi.mac, expected)
}

// attrHeaderOffset scans raw's attribute list and returns the byte offset
// of the 4-byte header of the first attribute of type t.
func attrHeaderOffset(raw []byte, t AttrType) (int, error) {
	if len(raw) < messageHeaderSize {
		return 0, malformedf("buffer shorter than header")
	}
	size := int(bin.Uint16(raw[2:4]))
	fullSize := messageHeaderSize + size
	if len(raw) < fullSize {
		return 0, malformedf("buffer shorter than declared size")
	}
	offset := messageHeaderSize
	for offset < fullSize {
		at := AttrType(bin.Uint16(raw[offset : offset+2]))
		l := int(bin.Uint16(raw[offset+2 : offset+4]))
		if at == t {
			return offset, nil
		}
		offset += attributeHeaderSize + paddedLen(l)
	}
	return 0, ErrAttributeNotFound
}
