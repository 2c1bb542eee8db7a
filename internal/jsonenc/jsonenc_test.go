package jsonenc

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/caslabs/casql/internal/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, s resolve.Serializer, raw []byte) string {
	t.Helper()
	var buf bytes.Buffer
	out := bufio.NewWriter(&buf)
	require.NoError(t, WriteValue(out, s, raw, resolve.New(nil)))
	require.NoError(t, out.Flush())
	return buf.String()
}

func be16(v int16) []byte { return []byte{byte(v >> 8), byte(v)} }
func be32(v int32) []byte { return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)} }
func be64(v int64) []byte {
	return []byte{byte(v >> 56), byte(v >> 48), byte(v >> 40), byte(v >> 32), byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func TestWriteBool(t *testing.T) {
	assert.Equal(t, "true", render(t, resolve.Bool, []byte{1}))
	assert.Equal(t, "false", render(t, resolve.Bool, []byte{0}))
}

func TestWriteIntegers(t *testing.T) {
	assert.Equal(t, "12345", render(t, resolve.Int16, be16(12345)))
	assert.Equal(t, "12345678", render(t, resolve.Int32, be32(12345678)))
	assert.Equal(t, "123456790123", render(t, resolve.Int64, be64(123456790123)))
}

func TestWriteFloatSpecials(t *testing.T) {
	assert.Equal(t, `"NaN"`, render(t, resolve.Float64, be64(int64(0x7FF8000000000000))))
	assert.Equal(t, `"Infinity"`, render(t, resolve.Float64, be64(int64(0x7FF0000000000000))))
	assert.Equal(t, `"-Infinity"`, render(t, resolve.Float64, be64(-0x0010000000000000))) // bits 0xFFF0000000000000
}

func TestWriteBigNumBoundary(t *testing.T) {
	// 0.0000000002: the only stored digit block is the third fractional
	// base-10000 group (decimal digits 9-12), weight -3, value 200 (the
	// group "0200" truncated to its first two digits by dscale=10).
	var buf bytes.Buffer
	buf.Write(be16(1))      // ndigits
	buf.Write(be16(-3))     // weight
	buf.Write([]byte{0, 0}) // sign positive
	buf.Write(be16(10))     // dscale
	buf.Write(be16(200))    // single digit block
	assert.Equal(t, "0.0000000002", render(t, resolve.BigNum, buf.Bytes()))
}

func TestWriteBigNumNaN(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(be16(0))
	buf.Write(be16(0))
	buf.Write([]byte{0xC0, 0x00})
	buf.Write(be16(0))
	assert.Equal(t, `"NaN"`, render(t, resolve.BigNum, buf.Bytes()))
}

func TestWriteDateAncientBC(t *testing.T) {
	// '4713-01-01 BC' is 2451507 days before 2000-01-01 in the proleptic
	// Gregorian calendar; astronomical year is -4712.
	assert.Equal(t, `"-4712-01-01"`, render(t, resolve.Date, be32(-2451507)))
}

func TestWriteInterval(t *testing.T) {
	micros := int64(-(4*3600+5*60+6)) * 1_000_000
	var buf bytes.Buffer
	buf.Write(be64(micros))
	buf.Write(be32(-3))  // days
	buf.Write(be32(-14)) // months (-1y -2mo)
	assert.Equal(t, `"P-1Y-2M-3DT-4H-5M-6S"`, render(t, resolve.Interval, buf.Bytes()))
}

func TestWriteIntervalEmpty(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(be64(0))
	buf.Write(be32(0))
	buf.Write(be32(0))
	assert.Equal(t, `"P0D"`, render(t, resolve.Interval, buf.Bytes()))
}

func TestWriteBitString(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(be32(5))
	buf.Write([]byte{0b10110000})
	assert.Equal(t, `"10110"`, render(t, resolve.BitString, buf.Bytes()))
}

func TestWriteBytesAsDecimalArray(t *testing.T) {
	assert.Equal(t, "[1,2,255]", render(t, resolve.Bytes, []byte{1, 2, 255}))
}

func TestWriteUUID(t *testing.T) {
	raw := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
	assert.Equal(t, `"00112233-4455-6677-8899-aabbccddeeff"`, render(t, resolve.Uuid, raw))
}

func TestWriteTid(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(be32(7))
	buf.Write(be16(3))
	assert.Equal(t, "[7,3]", render(t, resolve.Tid, buf.Bytes()))
}

func TestWritePoint(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(be64(int64(0x3FF3333333333333))) // 1.2
	buf.Write(be64(int64(0x400B333333333333))) // 3.4
	assert.Equal(t, "[1.2,3.4]", render(t, resolve.Point, buf.Bytes()))
}

func TestWriteString(t *testing.T) {
	assert.Equal(t, `"line1\nquote\""`, render(t, resolve.String, []byte("line1\nquote\"")))
}

func TestWriteUnknown(t *testing.T) {
	assert.Equal(t, `"???"`, render(t, resolve.Unknown, nil))
}
