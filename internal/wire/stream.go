package wire

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
)

// minBufSize is the smallest read buffer MessageStream will use; spec.md
// §4.4 asks for at least 1 KiB.
const minBufSize = 4096

// MessageStream wraps a bufio.Reader over the TCP connection and turns the
// byte stream into one complete backend message per Next call, grounded on
// the teacher's pkg/buffer.Reader (ReadTypedMsg/ReadUntypedMsg/reset): the
// same "read what's buffered, allocate and refill for the rest" shape, run
// in the opposite direction (decoding backend messages instead of frontend
// ones).
type MessageStream struct {
	r   *bufio.Reader
	log *slog.Logger
}

// NewMessageStream constructs a stream over r, buffering at least minBufSize
// bytes at a time.
func NewMessageStream(r io.Reader, log *slog.Logger) *MessageStream {
	if log == nil {
		log = slog.Default()
	}
	return &MessageStream{r: bufio.NewReaderSize(r, minBufSize), log: log}
}

// Next returns the tag and payload (everything after the 4-byte length
// field) of exactly one backend message. It never returns a partial message
// and never merges two messages into one return.
func (s *MessageStream) Next() (ServerMessage, []byte, error) {
	header, err := s.readFull(5)
	if err != nil {
		return 0, nil, err
	}
	tag := ServerMessage(header[0])
	length := int32(binary.BigEndian.Uint32(header[1:5]))
	if length < 4 {
		return 0, nil, fmt.Errorf("wire: malformed message length %d for tag %q", length, byte(tag))
	}
	payloadLen := int(length) - 4
	if payloadLen == 0 {
		s.log.Debug("<- incoming message", "tag", tag.String(), "length", length)
		return tag, nil, nil
	}
	payload, err := s.readFull(payloadLen)
	if err != nil {
		return 0, nil, err
	}
	s.log.Debug("<- incoming message", "tag", tag.String(), "length", length)
	return tag, payload, nil
}

// readFull returns exactly n bytes in a freshly allocated slice:
//  1. When n fits bufio's buffer, Peek returns the n bytes (refilling the
//     buffer itself as often as needed) and they are copied out.
//  2. When Peek fails (n larger than the buffer, or a read error), io.ReadFull
//     drives however many refills are needed, copying into the new slice.
// bufio.Reader's refill loop covers both of spec's case 2 and case 3 (short
// payload, and fewer than 5 header bytes present); every message is copied
// out of the read buffer either way.
func (s *MessageStream) readFull(n int) ([]byte, error) {
	if b, err := s.r.Peek(n); err == nil {
		out := make([]byte, n)
		copy(out, b)
		if _, err := s.r.Discard(n); err != nil {
			return nil, err
		}
		return out, nil
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(s.r, out); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("wire: read: %w", err)
	}
	return out, nil
}
