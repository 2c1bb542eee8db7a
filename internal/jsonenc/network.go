package jsonenc

import (
	"bufio"
	"fmt"
	"net"

	"github.com/caslabs/casql/internal/wire"
)

const (
	pgAFInet  = 2
	pgAFInet6 = 3
)

// writeInet decodes an inet/cidr value's family+netmask+is-cidr+address
// header and writes dotted-quad or colon-hex text, with a `/bits` suffix
// whenever the netmask is narrower than the address's full width.
func writeInet(out *bufio.Writer, r *wire.BinaryReader) error {
	family, err := r.Byte()
	if err != nil {
		return err
	}
	bits, err := r.Byte()
	if err != nil {
		return err
	}
	if _, err := r.Byte(); err != nil { // is_cidr flag; not needed to render text
		return err
	}
	addrLen, err := r.Byte()
	if err != nil {
		return err
	}
	addr, err := r.Bytes(int(addrLen))
	if err != nil {
		return err
	}
	ip := net.IP(addr)
	full := 32
	if family == pgAFInet6 {
		full = 128
	}
	text := ip.String()
	if int(bits) < full {
		text = fmt.Sprintf("%s/%d", text, bits)
	}
	return writeJSONString(out, text)
}

// writeMacAddr decodes a macaddr (6 bytes) or macaddr8 (8 bytes) value —
// stored on the wire as raw address bytes with no header — and writes
// standard colon-hex text via net.HardwareAddr.
func writeMacAddr(out *bufio.Writer, r *wire.BinaryReader, rawLen int) error {
	addr, err := r.Bytes(rawLen)
	if err != nil {
		return err
	}
	return writeJSONString(out, net.HardwareAddr(addr).String())
}
