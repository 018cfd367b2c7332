package main

import "fmt"

//
// Error taxonomy for the interpreter core (spec.md §7). These are
// kinds, not distinct Go error types - the original DEC BASIC-PLUS
// error-number table this project descends from mapped each fault to
// a bare string; we keep that flavor but narrow it to the six kinds
// the ZX80 dialect actually surfaces.
//

type errKind int

const (
	errGeneric errKind = iota // SYNTAX in immediate mode, LINE_ERROR during RUN
	errLineNotFound
	errBadLine
	errOutOfMemory
	errBreak
)

// engineFault is what runtimeError/runtimeCheck panic with.
// Engine.recoverFault (see driver.go) is the sole recover site and
// turns it into the user-visible message.
type engineFault struct {
	kind errKind
	msg  string // detail for errGeneric; ignored otherwise
}

func (f *engineFault) Error() string {
	return f.msg
}

//
// runtimeCheck panics with errGeneric if chk is false. This is the
// workhorse assertion used throughout stmt.go/execute.go/eval.go -
// same role as the teacher's runtimeCheck in basic.go.
//

func runtimeCheck(chk bool, format string, args ...any) {
	if !chk {
		runtimeError(format, args...)
	}
}

func runtimeError(format string, args ...any) {
	panic(&engineFault{kind: errGeneric, msg: fmt.Sprintf(format, args...)})
}

func lineNotFoundError() {
	panic(&engineFault{kind: errLineNotFound})
}

func badLineError() {
	panic(&engineFault{kind: errBadLine})
}

func outOfMemoryError() {
	panic(&engineFault{kind: errOutOfMemory})
}

//
// messageFor renders the CR/LF-terminated text the host should print
// for a given fault, per the table in spec.md §7. errGeneric's text
// depends on whether the fault happened in immediate mode (curLine
// zero) or while RUN was walking the program.
//

func messageFor(f *engineFault, curLine uint16, immediate bool) string {
	switch f.kind {
	case errLineNotFound:
		return "LINE NOT FOUND\r\n"

	case errBadLine:
		return "BAD LINE\r\n"

	case errOutOfMemory:
		return "OUT OF MEMORY\r\n"

	case errBreak:
		return "BREAK\r\n"

	default:
		if immediate {
			return "SYNTAX ERROR\r\n"
		}
		return fmt.Sprintf("ERROR IN %d\r\n", curLine)
	}
}
