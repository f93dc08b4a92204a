package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("s3cret")
	WipeByteArray(buf)
	assert.Equal(t, make([]byte, 6), buf)
}

func TestWipeByteArray_NilIsNoop(t *testing.T) {
	assert.NotPanics(t, func() { WipeByteArray(nil) })
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "Bearer abc.def", BearerToken("abc.def"))
}
