package conn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMD5PasswordVector(t *testing.T) {
	salt := [4]byte{0x81, 0x4F, 0xA3, 0x5A}
	got := md5Password("cascat", "michael", salt)
	assert.Equal(t, "md5ced873c22ed2ff40045eec5872ad4ea0", got)
}
