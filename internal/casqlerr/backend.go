package casqlerr

import (
	"fmt"

	"github.com/caslabs/casql/internal/codes"
)

// BackendFields is the minimal subset of an ErrorResponse casql reports:
// severity, SQLSTATE and message text (spec.md §4.3, §7).
type BackendFields struct {
	Severity string
	SQLState string
	Message  string
}

// NewBackend builds a BackendError from a parsed ErrorResponse. The SQLSTATE
// is looked up against codes.Code purely to decide whether the single
// printed line calls out a recognized class by name; an unrecognized code
// is still reported verbatim.
func NewBackend(f BackendFields) error {
	class := ""
	if name, ok := codeName(codes.Code(f.SQLState)); ok {
		class = " (" + name + ")"
	}
	msg := fmt.Sprintf("%s: %s%s [%s]", f.Severity, f.Message, class, f.SQLState)
	return &withKind{kind: BackendError, msg: msg}
}

// codeName reports the recognized name for a handful of SQLSTATEs common
// enough in practice to be worth naming in the stderr line; the full
// codes.Code catalogue remains available to callers that need the rest.
func codeName(c codes.Code) (string, bool) {
	switch c {
	case codes.SyntaxErrorOrAccessRuleViolation:
		return "syntax error", true
	case codes.UndefinedColumn:
		return "undefined column", true
	case codes.UndefinedTable:
		return "undefined table", true
	case codes.UndefinedFunction:
		return "undefined function", true
	case codes.InvalidPassword:
		return "invalid password", true
	case codes.InvalidAuthorizationSpecification:
		return "invalid authorization", true
	case codes.ConnectionException:
		return "connection exception", true
	default:
		return "", false
	}
}
