package casqlerr

import "fmt"

// withKind decorates a cause with a Kind, the same shape as the teacher's
// withSeverity (errors/severity.go): a struct holding cause error plus one
// classification field, Error() returning its own message or else the
// cause's, Unwrap() exposing the cause to errors.Is/As.
type withKind struct {
	cause error
	kind  Kind
	msg   string
}

// Error satisfies the error interface. When msg is set it is used verbatim
// (the cause, if any, is still reachable via Unwrap); otherwise the cause's
// own message is used.
func (e *withKind) Error() string {
	if e.msg != "" {
		return e.msg
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.kind.String()
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *withKind) Unwrap() error { return e.cause }

// New builds a Kind-classified error with its own message and no cause.
func New(kind Kind, msg string) error {
	return &withKind{kind: kind, msg: msg}
}

// Newf is New with fmt.Sprintf formatting.
func Newf(kind Kind, format string, args ...any) error {
	return &withKind{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap decorates cause with kind, keeping cause's message as the visible
// text and cause itself reachable via errors.Unwrap.
func Wrap(kind Kind, cause error) error {
	if cause == nil {
		return nil
	}
	return &withKind{kind: kind, cause: cause}
}

// Wrapf decorates cause with kind and a new leading message.
func Wrapf(kind Kind, cause error, format string, args ...any) error {
	if cause == nil {
		return nil
	}
	return &withKind{kind: kind, cause: cause, msg: fmt.Sprintf(format, args...) + ": " + cause.Error()}
}

// KindOf walks err's Unwrap chain for the first withKind decoration and
// returns its Kind. An err with no decoration reports IoOther — the
// catch-all the CLI falls back to when a failure wasn't explicitly
// classified at the point it occurred.
func KindOf(err error) Kind {
	for err != nil {
		if wk, ok := err.(*withKind); ok {
			return wk.kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return IoOther
}
