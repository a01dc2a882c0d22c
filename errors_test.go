package stun

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMalformedfWrapsSentinel(t *testing.T) {
	err := malformedf("bad length %d", 7)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "bad length 7")
}

func TestIllegalAttributefNamesOffender(t *testing.T) {
	mt := MessageType{Class: ClassSuccessResponse, Method: MethodBinding}
	err := illegalAttributef(AttrPriority, mt)
	assert.ErrorIs(t, err, ErrIllegalAttribute)
	assert.Contains(t, err.Error(), "PRIORITY")
}

func TestCRCMismatchError(t *testing.T) {
	err := &CRCMismatch{Expected: 1, Actual: 2}
	assert.Contains(t, err.Error(), "0x1")
	assert.Contains(t, err.Error(), "0x2")
}
