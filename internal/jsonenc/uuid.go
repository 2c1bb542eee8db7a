package jsonenc

import (
	"bufio"

	"github.com/google/uuid"
)

// writeUUID writes raw's 16 bytes as the canonical lowercase 8-4-4-4-12
// string, via google/uuid rather than hand-rolled hex formatting.
func writeUUID(out *bufio.Writer, raw []byte) error {
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return err
	}
	return writeJSONString(out, id.String())
}
