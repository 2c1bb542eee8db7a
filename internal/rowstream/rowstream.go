// Package rowstream turns the backend message sequence that follows a Bind
// into one DataRow at a time, the pull-based iterator spec.md §4.6 names:
// RowStream. Grounded on the teacher's row.go/command.go message-dispatch
// shape (a switch over ServerMessage tags), run over the frontend's
// expected response sequence instead of the backend's own command loop.
package rowstream

import (
	"log/slog"

	"github.com/caslabs/casql/internal/casqlerr"
	"github.com/caslabs/casql/internal/wire"
)

// RowStream yields one DataRow's raw value tuples per Next call, having
// already consumed ParseComplete, ParameterDescription, RowDescription and
// BindComplete (in whatever order the server sent them) during New.
type RowStream struct {
	ms     *wire.MessageStream
	log    *slog.Logger
	fields []wire.Field
	done   bool
}

// Fields returns the column descriptors captured from RowDescription, in
// RowDescription order — the order every emitted JSON object's keys follow.
func (rs *RowStream) Fields() []wire.Field { return rs.fields }

// New consumes every message up to and including the first DataRow or
// CommandComplete/ReadyForQuery that can end a statement with no rows,
// capturing the RowDescription's Field list along the way.
func New(ms *wire.MessageStream, log *slog.Logger) (*RowStream, *wire.DataRow, error) {
	if log == nil {
		log = slog.Default()
	}
	rs := &RowStream{ms: ms, log: log}
	for {
		tag, payload, err := ms.Next()
		if err != nil {
			return nil, nil, casqlerr.Wrap(casqlerr.IoOther, err)
		}
		switch tag {
		case wire.ServerParseComplete, wire.ServerBindComplete, wire.ServerParameterDescription:
			continue
		case wire.ServerRowDescription:
			fields, err := wire.ParseRowDescription(payload)
			if err != nil {
				return nil, nil, casqlerr.Wrap(casqlerr.ProtocolError, err)
			}
			rs.fields = fields
			continue
		case wire.ServerNoticeResponse:
			continue
		case wire.ServerDataRow:
			row, err := wire.NewDataRow(payload)
			if err != nil {
				return nil, nil, casqlerr.Wrap(casqlerr.ProtocolError, err)
			}
			return rs, row, nil
		case wire.ServerCommandComplete:
			// A statement that returns no rows (e.g. DDL) still flows
			// through RowStream, but CommandComplete is always followed by
			// ReadyForQuery; keep reading so New doesn't return with that
			// ReadyForQuery still unread in the buffered stream.
			continue
		case wire.ServerErrorResponse:
			fields, perr := wire.ParseErrorResponse(payload)
			if perr != nil {
				return nil, nil, casqlerr.Wrap(casqlerr.ProtocolError, perr)
			}
			return nil, nil, casqlerr.NewBackend(casqlerr.BackendFields{
				Severity: fields.Severity(),
				SQLState: fields.SQLState(),
				Message:  fields.Message(),
			})
		case wire.ServerReady:
			rs.done = true
			return rs, nil, nil
		default:
			return nil, nil, casqlerr.Newf(casqlerr.ProtocolError, "wire: unexpected message %q before first row", byte(tag))
		}
	}
}

// Next returns the next row's value tuples, or (nil, false, nil) once the
// stream has reached ReadyForQuery.
func (rs *RowStream) Next() (*wire.DataRow, bool, error) {
	if rs.done {
		return nil, false, nil
	}
	for {
		tag, payload, err := rs.ms.Next()
		if err != nil {
			return nil, false, casqlerr.Wrap(casqlerr.IoOther, err)
		}
		switch tag {
		case wire.ServerDataRow:
			row, err := wire.NewDataRow(payload)
			if err != nil {
				return nil, false, casqlerr.Wrap(casqlerr.ProtocolError, err)
			}
			return row, true, nil
		case wire.ServerCommandComplete:
			continue
		case wire.ServerNoticeResponse:
			continue
		case wire.ServerCloseComplete:
			continue
		case wire.ServerReady:
			rs.done = true
			return nil, false, nil
		case wire.ServerErrorResponse:
			fields, perr := wire.ParseErrorResponse(payload)
			if perr != nil {
				return nil, false, casqlerr.Wrap(casqlerr.ProtocolError, perr)
			}
			rs.done = true
			return nil, false, casqlerr.NewBackend(casqlerr.BackendFields{
				Severity: fields.Severity(),
				SQLState: fields.SQLState(),
				Message:  fields.Message(),
			})
		default:
			rs.log.Warn("unexpected message in row stream, treating as protocol violation", "tag", tag.String())
			return nil, false, casqlerr.Newf(casqlerr.ProtocolError, "wire: unexpected message %q mid-stream", byte(tag))
		}
	}
}
