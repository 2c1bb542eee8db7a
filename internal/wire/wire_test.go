package wire

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontendEncoderParse(t *testing.T) {
	msg := Parse("select 1")
	require.Equal(t, byte('P'), msg[0])
	length := int32(msg[1])<<24 | int32(msg[2])<<16 | int32(msg[3])<<8 | int32(msg[4])
	assert.Equal(t, len(msg)-1, int(length))
}

func TestFrontendEncoderSync(t *testing.T) {
	msg := Sync()
	assert.Equal(t, []byte{'S', 0, 0, 0, 4}, msg)
}

func TestFrontendEncoderBindNullParam(t *testing.T) {
	msg := Bind([][]byte{nil, []byte("x")})
	require.Equal(t, byte('B'), msg[0])
	r := NewBinaryReader(msg[5:])
	_, err := r.CString() // portal
	require.NoError(t, err)
	_, err = r.CString() // statement
	require.NoError(t, err)
	formatCodeCount, err := r.Int16()
	require.NoError(t, err)
	assert.Equal(t, int16(1), formatCodeCount)
	_, err = r.Int16()
	require.NoError(t, err)
	paramCount, err := r.Int16()
	require.NoError(t, err)
	assert.Equal(t, int16(2), paramCount)
	firstLen, err := r.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), firstLen)
	secondLen, err := r.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(1), secondLen)
}

func TestMessageStreamSplitsBuffered(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte('Z')
	buf.Write([]byte{0, 0, 0, 5})
	buf.WriteByte('I')
	ms := NewMessageStream(&buf, nil)
	tag, payload, err := ms.Next()
	require.NoError(t, err)
	assert.Equal(t, ServerReady, tag)
	assert.Equal(t, []byte{'I'}, payload)
}

func TestMessageStreamRefillsAcrossReads(t *testing.T) {
	pr, pw := io.Pipe()
	ms := NewMessageStream(pr, nil)
	go func() {
		pw.Write([]byte{'Z'})
		pw.Write([]byte{0, 0, 0, 5})
		pw.Write([]byte{'Q'})
		pw.Close()
	}()
	tag, payload, err := ms.Next()
	require.NoError(t, err)
	assert.Equal(t, ServerReady, tag)
	assert.Equal(t, []byte{'Q'}, payload)
}

func TestParseRowDescription(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	bw.Write([]byte{0, 1})           // field count
	bw.WriteString("col1")
	bw.WriteByte(0)
	bw.Write(make([]byte, 6))        // table oid + attnum
	bw.Write([]byte{0, 0, 0, 23})    // oid 23 (int4)
	bw.Write(make([]byte, 8))        // size + modifier + format
	bw.Flush()

	fields, err := ParseRowDescription(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "col1", fields[0].Name)
	assert.Equal(t, uint32(23), fields[0].TypeOID)
}

func TestParseErrorResponse(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte('S')
	buf.WriteString("ERROR")
	buf.WriteByte(0)
	buf.WriteByte('C')
	buf.WriteString("42601")
	buf.WriteByte(0)
	buf.WriteByte('M')
	buf.WriteString("syntax error")
	buf.WriteByte(0)
	buf.WriteByte(0)

	fields, err := ParseErrorResponse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "ERROR", fields.Severity())
	assert.Equal(t, "42601", fields.SQLState())
	assert.Equal(t, "syntax error", fields.Message())
}
