// Package conn implements Connection (spec.md §4.5): the protocol state
// machine that dials the backend, completes startup and authentication,
// and drives query(sql) through MessageStream/RowStream into a JsonWriter.
// Grounded on the teacher's handshake.go (the same startup/auth exchange,
// run in the opposite direction: casql sends Startup and Password instead
// of reading and answering them) and command.go's message-dispatch shape.
package conn

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"syscall"

	"github.com/caslabs/casql/internal/casqlerr"
	"github.com/caslabs/casql/internal/jsonenc"
	"github.com/caslabs/casql/internal/resolve"
	"github.com/caslabs/casql/internal/rowstream"
	"github.com/caslabs/casql/internal/wire"
	"github.com/lib/pq/oid"
)

// state is the ConnectionState closed enum from spec.md §3.
type state int

const (
	stateUninitialised state = iota
	stateAwaitingCleartextPassword
	stateAwaitingMD5Password
	stateReady
)

// Conn is a single-use connection: one TCP socket, one MessageStream, one
// TypeResolver, living for exactly as long as the one query this process
// runs (spec.md §3's Lifecycles).
type Conn struct {
	params Params
	log    *slog.Logger

	nc net.Conn
	ms *wire.MessageStream

	dynamic  *resolve.DynamicTypes
	resolver *resolve.TypeResolver

	state state
}

// Dial opens the TCP socket, completes the Startup/authentication exchange
// (spec.md §4.5's state machine), and — if params.EnableExtensions is set —
// runs the extension-oid prefetch before returning a Conn ready for Query.
func Dial(params Params, log *slog.Logger) (*Conn, error) {
	if log == nil {
		log = slog.Default()
	}
	params = params.Normalize()

	addr := fmt.Sprintf("%s:%d", params.Host, params.Port)
	nc, err := net.Dial("tcp", addr)
	if err != nil {
		if isRefused(err) {
			return nil, casqlerr.Wrap(casqlerr.IoConnRefused, err)
		}
		return nil, casqlerr.Wrap(casqlerr.IoOther, err)
	}

	c := &Conn{
		params: params,
		log:    log,
		nc:     nc,
		ms:     wire.NewMessageStream(nc, log),
		state:  stateUninitialised,
	}

	if err := c.startup(); err != nil {
		nc.Close()
		return nil, err
	}

	if params.EnableExtensions {
		c.dynamic = resolve.NewDynamicTypes()
		if err := c.prefetchExtensions(); err != nil {
			nc.Close()
			return nil, err
		}
	}
	c.resolver = resolve.New(c.dynamic)

	return c, nil
}

// Close releases the TCP socket. Connection lives until the query
// completes or fails and closes on drop (spec.md §3).
func (c *Conn) Close() error {
	return c.nc.Close()
}

func isRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}

func (c *Conn) write(b []byte) error {
	c.log.Debug("-> writing message", "bytes", len(b))
	if _, err := c.nc.Write(b); err != nil {
		return casqlerr.Wrap(casqlerr.IoOther, err)
	}
	return nil
}

// startup runs the Startup message and drives the Authenticating state
// machine through to ReadyForQuery (spec.md §4.5).
func (c *Conn) startup() error {
	if err := c.write(wire.Startup(c.params.User, c.params.Database)); err != nil {
		return err
	}

	for {
		tag, payload, err := c.ms.Next()
		if err != nil {
			return casqlerr.Wrap(casqlerr.IoOther, err)
		}
		switch tag {
		case wire.ServerAuth:
			if err := c.handleAuth(payload); err != nil {
				return err
			}
		case wire.ServerBackendKeyData, wire.ServerParameterStatus, wire.ServerNoticeResponse:
			continue
		case wire.ServerReady:
			c.state = stateReady
			return nil
		case wire.ServerErrorResponse:
			return backendError(payload)
		default:
			return casqlerr.Newf(casqlerr.ProtocolError, "wire: unexpected message %q during startup", byte(tag))
		}
	}
}

func (c *Conn) handleAuth(payload []byte) error {
	code, err := wire.AuthSubCode(payload)
	if err != nil {
		return casqlerr.Wrap(casqlerr.ProtocolError, err)
	}
	switch code {
	case wire.AuthOK:
		return nil
	case wire.AuthCleartext:
		c.state = stateAwaitingCleartextPassword
		return c.write(wire.Password(c.params.Password))
	case wire.AuthMD5Password:
		c.state = stateAwaitingMD5Password
		saltBytes, err := wire.MD5Salt(payload)
		if err != nil {
			return casqlerr.Wrap(casqlerr.ProtocolError, err)
		}
		var salt [4]byte
		copy(salt[:], saltBytes)
		response := md5Password(c.params.Password, c.params.User, salt)
		return c.write(wire.Password(response))
	default:
		return casqlerr.Newf(casqlerr.ProtocolError, "wire: unsupported authentication method %d", code)
	}
}

func backendError(payload []byte) error {
	fields, err := wire.ParseErrorResponse(payload)
	if err != nil {
		return casqlerr.Wrap(casqlerr.ProtocolError, err)
	}
	return casqlerr.NewBackend(casqlerr.BackendFields{
		Severity: fields.Severity(),
		SQLState: fields.SQLState(),
		Message:  fields.Message(),
	})
}

// extensionPrefetchQuery is kept byte-identical to the original casql's
// query text (see SPEC_FULL.md §11).
const extensionPrefetchQuery = `SELECT typname, oid FROM pg_type WHERE typname IN ('geometry','geography','box2d','box3d','geometry_dump')`

func (c *Conn) prefetchExtensions() error {
	rows, err := c.runExtendedQuery(extensionPrefetchQuery, nil)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if len(row) != 2 {
			continue
		}
		name := string(row[0])
		o, err := parseOid(row[1])
		if err != nil {
			continue
		}
		c.dynamic.Register(name, o)
	}
	return nil
}

func parseOid(raw []byte) (oid.Oid, error) {
	r := wire.NewBinaryReader(raw)
	v, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	return oid.Oid(v), nil
}

// runExtendedQuery drives Parse/Describe/Bind/Execute/Sync for sql and
// collects every row's raw value slices. Used only by prefetchExtensions,
// whose result set is always tiny (at most five rows); Query itself never
// buffers rows this way.
func (c *Conn) runExtendedQuery(sql string, params [][]byte) ([][][]byte, error) {
	if err := c.sendExtendedQuery(sql, params); err != nil {
		return nil, err
	}
	rs, firstRow, err := rowstream.New(c.ms, c.log)
	if err != nil {
		return nil, err
	}
	var out [][][]byte
	collect := func(row *wire.DataRow) error {
		n := row.Len()
		values := make([][]byte, n)
		for i := 0; i < n; i++ {
			v, isNull, err := row.Next()
			if err != nil {
				return err
			}
			if !isNull {
				values[i] = append([]byte(nil), v...)
			}
		}
		out = append(out, values)
		return nil
	}
	if firstRow != nil {
		if err := collect(firstRow); err != nil {
			return nil, err
		}
	}
	for {
		row, ok, err := rs.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := collect(row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *Conn) sendExtendedQuery(sql string, params [][]byte) error {
	for _, msg := range [][]byte{
		wire.Parse(sql),
		wire.Describe(),
		wire.Bind(params),
		wire.Execute(),
		wire.Sync(),
	} {
		if err := c.write(msg); err != nil {
			return err
		}
	}
	return nil
}

// Query runs sql with no parameters, streaming every result row through a
// JsonWriter into sink (spec.md §4.5): one TCP socket, one fixed read
// buffer, one buffered output writer, O(single-row) memory regardless of
// result-set size.
func (c *Conn) Query(sql string, sink io.Writer) error {
	if err := c.sendExtendedQuery(sql, nil); err != nil {
		return err
	}
	rs, firstRow, err := rowstream.New(c.ms, c.log)
	if err != nil {
		return err
	}

	fields := rs.Fields()
	serializers := make([]resolve.Serializer, len(fields))
	for i, f := range fields {
		serializers[i] = c.resolver.Resolve(oid.Oid(f.TypeOID))
	}

	jw := jsonenc.New(sink)
	if err := jw.Open(); err != nil {
		return err
	}

	writeRow := func(row *wire.DataRow) error {
		return jw.Row(fields, serializers, row, c.resolver)
	}

	if firstRow != nil {
		if err := writeRow(firstRow); err != nil {
			return err
		}
	}
	for {
		row, ok, err := rs.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := writeRow(row); err != nil {
			return err
		}
	}

	return jw.Close()
}
