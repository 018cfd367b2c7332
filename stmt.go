package main

//
// Statement dispatcher (C5). One routine per keyword; each mutates
// engine state, produces output, and/or returns the driver hint
// spec.md §4.4/§9 asks for as a tagged dispatchResult rather than the
// overloaded integer/out-parameter convention the original interpreter
// this dialect descends from used.
//
// execCtx carries the two program-store pointers a statement needs to
// know where it is: ptr (this line's own record) and next (the record
// immediately following it). Both are meaningless in immediate mode,
// where immediate is true and GOSUB/FOR (which need a "resume here"
// pointer into the program) are rejected outright.
//

type execCtx struct {
	ptr       int
	next      int
	immediate bool
}

//
// dispatchStatement recognizes the statement's keyword (case
// insensitive, terminated by a non-letter) and runs its body. A line
// with no recognized keyword and no bare "var = expr" shape is a
// syntax error.
//

func dispatchStatement(e *Engine, body []byte, ctx execCtx) dispatchResult {
	s := &scanner{src: body}
	s.skipSpace()

	if s.atEnd() {
		return dispatchResult{}
	}

	switch {
	case s.matchKeyword("REM"):
		return dispatchResult{}

	case s.matchKeyword("PRINT"):
		executePrint(e, s)

	case s.matchKeyword("LET"):
		executeLet(e, s)

	case s.matchKeyword("INPUT"):
		executeInput(e, s)

	case s.matchKeyword("IF"):
		return executeIf(e, s, ctx)

	case s.matchKeyword("GOTO"):
		return executeGoto(s)

	case s.matchKeyword("GOSUB"):
		runtimeCheck(!ctx.immediate, "GOSUB not valid in immediate mode")
		return executeGosub(e, s, ctx)

	case s.matchKeyword("RETURN"):
		return executeReturn(e)

	case s.matchKeyword("FOR"):
		runtimeCheck(!ctx.immediate, "FOR not valid in immediate mode")
		return executeFor(e, s, ctx)

	case s.matchKeyword("NEXT"):
		return executeNext(e, s)

	case s.matchKeyword("END"):
		e.hasContPtr = false
		return dispatchResult{kind: dispHalt}

	case s.matchKeyword("STOP"):
		return executeStop(e, ctx)

	case s.matchKeyword("CONTINUE"), s.matchKeyword("CONT"):
		runtimeCheck(e.hasContPtr, "Unable to continue")
		return dispatchResult{kind: dispResumeAt, ptr: e.contPtr}

	case s.matchKeyword("RUN"):
		return executeRun(s)

	case s.matchKeyword("LIST"):
		executeList(e)

	case s.matchKeyword("NEW"):
		e.fullReset()

	case s.matchKeyword("CLS"):
		executeCls(e)

	case s.matchKeyword("DIM"):
		executeDim(e, s)

	case s.matchKeyword("POKE"):
		executePoke(e, s)

	case s.matchKeyword("RANDOMISE"), s.matchKeyword("RAND"):
		executeRandomize(e, s)

	case s.matchKeyword("SAVE"), s.matchKeyword("LOAD"):
		// Recognised, does nothing - persistence is a host concern
		// (spec.md §4.4/§9).

	default:
		executeAssign(e, s)
	}

	return dispatchResult{}
}
