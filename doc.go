// Package errcause builds rich, named errors and chains them into causal
// sequences.
//
// An errcause error has a name, a message, a stack trace and any number of
// diagnostic fields merged from property bags. Wrapping a lower-level
// failure keeps it as an inspectable cause whose own cause fields are hidden,
// so logging or marshaling an error never expands the chain recursively,
// while the full history stays available in the stack text and in the
// ordered cause chain.
//
// # Creating errors
//
//	err := errcause.New("NotFoundError", "user not found",
//	    errcause.Props{"userID": id, "attempt": 1},
//	    errcause.Props{"attempt": 2}, // later bags win
//	)
//
//	err.Name()          // "NotFoundError"
//	err.Get("attempt")  // 2
//	err.Stack()         // "NotFoundError: user not found\n    at main.lookup (...)"
//
// The stack starts at the caller of New. Helpers built on top of the
// constructors pass themselves to NewAbove to keep their own frames out of
// the trace.
//
// # Custom error types
//
// A property bag can select how the error value is instantiated:
//
//	type HTTPError struct {
//	    errcause.Base
//	    Status int
//	}
//
//	func (e *HTTPError) InitError(name, message string, props errcause.Props) {
//	    e.Status, _ = props["status"].(int)
//	}
//
//	err := errcause.New("BadGateway", "upstream failed", errcause.Props{
//	    errcause.BaseClassProp: (*HTTPError)(nil),
//	    "status":               502,
//	})
//
// FactoryFunctionProp selects a Factory instead. Setting both is a
// configuration error (ErrSelectorConflict).
//
// # Wrapping errors
//
//	if err := db.Ping(ctx); err != nil {
//	    return errcause.Wrap(err, "StartupError", "database unreachable", errcause.Props{
//	        "dsn": redacted,
//	    })
//	}
//
// The wrapping error gets:
//
//   - cause: a View of the original error that hides the original's own
//     cause and causeChain from Keys, Has, JSON and logs.
//   - causeChain: views of every ancestor, nearest first.
//   - the original's fields it does not define itself, read through to the
//     original at access time.
//   - the original's stack appended under a "caused by" line.
//
// Unwrap returns the original error, so errors.Is and errors.As keep
// working on the concrete types.
//
// WrapFailure, WrapRejection and NewWrapper adapt the same wrapping to
// fallible calls, asynchronous results and reusable wrapping functions.
//
// # Logging and serialization
//
// Errors implement slog.LogValuer, logr.Marshaler, json.Marshaler and
// fmt.Formatter (%+v prints the stack with every "caused by" block). The
// package itself never logs.
package errcause
