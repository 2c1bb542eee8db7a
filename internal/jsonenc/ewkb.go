package jsonenc

import (
	"bufio"

	"github.com/caslabs/casql/internal/ewkb"
	"github.com/caslabs/casql/internal/wire"
)

func writeEwkb(out *bufio.Writer, r *wire.BinaryReader) error {
	return ewkb.Write(out, r)
}
