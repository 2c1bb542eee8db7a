package conn

import (
	"crypto/md5"
	"encoding/hex"
)

// md5Password computes the bit-exact "md5"-prefixed challenge response
// spec.md §4.5 requires: md5(password ∥ user) hex-encoded, then
// md5(that hex string ∥ salt) hex-encoded, with the literal "md5" prefix on
// the wire value. golang.org/x/crypto is not involved — this is a stdlib
// crypto/md5 algorithm, not a concern that module's packages address (see
// DESIGN.md).
func md5Password(password, user string, salt [4]byte) string {
	inner := md5.Sum([]byte(password + user))
	innerHex := hex.EncodeToString(inner[:])

	outer := md5.New()
	outer.Write([]byte(innerHex))
	outer.Write(salt[:])
	outerHex := hex.EncodeToString(outer.Sum(nil))

	return "md5" + outerHex
}
