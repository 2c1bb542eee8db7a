package wire

import (
	"bytes"
	"encoding/binary"
)

// FrontendEncoder builds the seven client messages casql ever sends: Startup,
// Password, Parse, Describe, Bind, Execute, Sync. Ported from the teacher's
// pkg/buffer.Writer Start/Add.../End patch-length idiom, specialized to
// frontend message shapes instead of backend ones.
type FrontendEncoder struct {
	buf bytes.Buffer
	pos int // offset of the length field being patched
}

// NewFrontendEncoder returns a ready-to-use encoder.
func NewFrontendEncoder() *FrontendEncoder {
	return &FrontendEncoder{}
}

// Start begins a new message. If tag is non-zero, it is written first (the
// startup message has no tag). A placeholder i32 length follows; End patches
// it once the payload is known.
func (e *FrontendEncoder) Start(tag ClientMessage) {
	e.buf.Reset()
	if tag != 0 {
		e.buf.WriteByte(byte(tag))
	}
	e.pos = e.buf.Len()
	e.buf.Write([]byte{0, 0, 0, 0})
}

// AddInt16 appends a big-endian int16.
func (e *FrontendEncoder) AddInt16(v int16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	e.buf.Write(b[:])
}

// AddInt32 appends a big-endian int32.
func (e *FrontendEncoder) AddInt32(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	e.buf.Write(b[:])
}

// AddBytes appends raw bytes with no length prefix and no terminator.
func (e *FrontendEncoder) AddBytes(b []byte) {
	e.buf.Write(b)
}

// AddString appends raw string bytes with no length prefix or terminator.
func (e *FrontendEncoder) AddString(s string) {
	e.buf.WriteString(s)
}

// AddNullTerminate appends a string followed by a single NUL byte.
func (e *FrontendEncoder) AddNullTerminate(s string) {
	e.buf.WriteString(s)
	e.buf.WriteByte(0)
}

// End patches the length field placed by Start with the payload length
// measured from that field (inclusive) to the current end of buffer, and
// returns the complete message bytes.
func (e *FrontendEncoder) End() []byte {
	out := e.buf.Bytes()
	binary.BigEndian.PutUint32(out[e.pos:e.pos+4], uint32(len(out)-e.pos))
	return out
}

// Startup builds the startup message: protocol version then null-terminated
// "user"/user/"database"/database pairs, terminated by a zero byte. There is
// no leading tag byte.
func Startup(user, database string) []byte {
	e := NewFrontendEncoder()
	e.Start(0)
	e.AddInt32(int32(Version30))
	e.AddNullTerminate("user")
	e.AddNullTerminate(user)
	e.AddNullTerminate("database")
	e.AddNullTerminate(database)
	e.buf.WriteByte(0)
	return e.End()
}

// Password builds the password message (tag 'p'): a single null-terminated
// string, either cleartext or the "md5"-prefixed challenge response.
func Password(value string) []byte {
	e := NewFrontendEncoder()
	e.Start(ClientPassword)
	e.AddNullTerminate(value)
	return e.End()
}

// Parse builds the Parse message (tag 'P'): an empty (unnamed) statement
// name, the query text, and zero declared parameter oids.
func Parse(query string) []byte {
	e := NewFrontendEncoder()
	e.Start(ClientParse)
	e.AddNullTerminate("")
	e.AddNullTerminate(query)
	e.AddInt16(0)
	return e.End()
}

// Describe builds the Describe message (tag 'D') describing the unnamed
// prepared statement.
func Describe() []byte {
	e := NewFrontendEncoder()
	e.Start(ClientDescribe)
	e.AddBytes([]byte{'S'})
	e.AddNullTerminate("")
	return e.End()
}

// Bind builds the Bind message (tag 'B') against the unnamed statement and
// unnamed portal: one format code (text) for every parameter, the parameter
// values themselves (each as an i32 length followed by its text bytes, or
// length -1 for NULL), and one result format code (binary) applied to every
// result column. Parameters are always sent as text per spec.
func Bind(params [][]byte) []byte {
	e := NewFrontendEncoder()
	e.Start(ClientBind)
	e.AddNullTerminate("")
	e.AddNullTerminate("")
	e.AddInt16(1)
	e.AddInt16(0) // text format for all parameters
	e.AddInt16(int16(len(params)))
	for _, p := range params {
		if p == nil {
			e.AddInt32(-1)
			continue
		}
		e.AddInt32(int32(len(p)))
		e.AddBytes(p)
	}
	e.AddInt16(1)
	e.AddInt16(1) // binary format for all result columns
	return e.End()
}

// Execute builds the Execute message (tag 'E') against the unnamed portal,
// requesting an unlimited number of rows.
func Execute() []byte {
	e := NewFrontendEncoder()
	e.Start(ClientExecute)
	e.AddNullTerminate("")
	e.AddInt32(0)
	return e.End()
}

// Sync builds the Sync message (tag 'S'), carrying no payload.
func Sync() []byte {
	e := NewFrontendEncoder()
	e.Start(ClientSync)
	return e.End()
}
