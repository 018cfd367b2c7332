package main

import (
	"strconv"
	"strings"
)

//
// PRINT: items separated by ';' (no separator) or ',' (one inserted
// space). A trailing ';' suppresses the terminating CR/LF; a trailing
// ',' or no trailing separator emits it (spec.md §4.4).
//

func executePrint(e *Engine, s *scanner) {
	s.skipSpace()

	if s.atEnd() {
		writeString(e, "\r\n")
		return
	}

	var lastSep byte

	for {
		s.skipSpace()
		if s.atEnd() {
			break
		}

		if s.matchByte('"') {
			start := s.pos
			for !s.atEnd() && s.src[s.pos] != '"' {
				s.pos++
			}
			runtimeCheck(!s.atEnd(), "Unterminated string")
			writeString(e, string(s.src[start:s.pos]))
			s.pos++
		} else {
			v := e.evalExpr(s)
			writeString(e, strconv.FormatInt(int64(v), 10))
		}

		s.skipSpace()

		switch {
		case s.matchByte(';'):
			lastSep = ';'
			continue

		case s.matchByte(','):
			writeString(e, " ")
			lastSep = ','
			continue
		}

		lastSep = 0
		break
	}

	if lastSep != ';' {
		writeString(e, "\r\n")
	}
}

func writeString(e *Engine, str string) {
	for i := 0; i < len(str); i++ {
		e.io.WriteChar(str[i])
	}
}

//
// LET v = e, plain v = e, and v(i[,j]) = e (spec.md §4.4).
//

func executeLet(e *Engine, s *scanner) {
	executeAssign(e, s)
}

func executeAssign(e *Engine, s *scanner) {
	letter, ok := s.parseLetter()
	runtimeCheck(ok, "Syntax error")

	if s.matchByte('(') {
		arr := e.vars.findArray(letter)
		runtimeCheck(arr != nil, "Undimensioned array %c", letter)

		i := e.evalExpr(s)

		var j int32
		hasJ := false
		if s.matchByte(',') {
			j = e.evalExpr(s)
			hasJ = true
		}
		s.expectByte(')')

		runtimeCheck((arr.dims == 1 && !hasJ) || (arr.dims == 2 && hasJ),
			"Dimension mismatch for %c", letter)

		s.expectByte('=')
		v := e.evalExpr(s)
		e.vars.writeCell(arr, i, j, v)
		return
	}

	s.expectByte('=')
	v := e.evalExpr(s)
	e.vars.writeScalar(letter, v)
}

//
// INPUT v: prompt, block for a line, parse a signed integer (empty or
// non-numeric input becomes 0), assign (spec.md §4.4).
//

func executeInput(e *Engine, s *scanner) {
	letter, ok := s.parseLetter()
	runtimeCheck(ok, "Syntax error")

	writeString(e, "? ")

	var v int32

	if line, ok := e.io.ReadLine(); ok {
		if n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 32); err == nil {
			v = int32(n)
		}
	}

	e.vars.writeScalar(letter, v)
}

//
// IF e THEN ...: the remainder is either a bare line number (treated
// as GOTO) or another statement, recursively dispatched (spec.md
// §4.4).
//

func executeIf(e *Engine, s *scanner, ctx execCtx) dispatchResult {
	cond := e.evalExpr(s)

	runtimeCheck(s.matchKeyword("THEN"), "IF without THEN")

	if cond == 0 {
		return dispatchResult{}
	}

	s.skipSpace()

	if n, ok := s.parseNumber(); ok {
		runtimeCheck(n >= 0 && n <= maxLineNumber, "Bad line number")
		return dispatchResult{kind: dispJumpToLine, line: uint16(n)}
	}

	return dispatchStatement(e, s.rest(), ctx)
}

func executeGoto(s *scanner) dispatchResult {
	n, ok := s.parseNumber()
	runtimeCheck(ok, "Syntax error")

	return dispatchResult{kind: dispJumpToLine, line: uint16(n)}
}

func executeGosub(e *Engine, s *scanner, ctx execCtx) dispatchResult {
	n, ok := s.parseNumber()
	runtimeCheck(ok, "Syntax error")

	runtimeCheck(len(e.gosubStack) < gosubStackMax, "GOSUB stack overflow")
	e.gosubStack = append(e.gosubStack, ctx.next)

	return dispatchResult{kind: dispJumpToLine, line: uint16(n)}
}

func executeReturn(e *Engine) dispatchResult {
	runtimeCheck(len(e.gosubStack) > 0, "GOSUB stack underflow")

	p := e.gosubStack[len(e.gosubStack)-1]
	e.gosubStack = e.gosubStack[:len(e.gosubStack)-1]

	return dispatchResult{kind: dispResumeAt, ptr: p}
}

//
// FOR v = a TO b [STEP s]: if the loop's first iteration would not
// run, skip forward past the matching NEXT rather than pushing a
// frame at all (spec.md §4.4).
//

func executeFor(e *Engine, s *scanner, ctx execCtx) dispatchResult {
	letter, ok := s.parseLetter()
	runtimeCheck(ok, "Syntax error")
	s.expectByte('=')

	start := e.evalExpr(s)

	runtimeCheck(s.matchKeyword("TO"), "FOR without TO")
	end := e.evalExpr(s)

	step := int32(1)
	if s.matchKeyword("STEP") {
		step = e.evalExpr(s)
	}

	e.vars.writeScalar(letter, start)

	if (step >= 0 && start > end) || (step < 0 && start < end) {
		return dispatchResult{kind: dispResumeAt, ptr: skipForBody(e, ctx.next, letter)}
	}

	runtimeCheck(len(e.forStack) < forStackMax, "FOR stack overflow")
	e.forStack = append(e.forStack, &forFrame{
		varIndex:      letterIndex(letter),
		end:           end,
		step:          step,
		loopBodyEntry: ctx.next,
	})

	return dispatchResult{}
}

//
// skipForBody scans forward from a skipped FOR's body, tracking
// nested FOR/NEXT depth, and returns the pointer just past the first
// depth-0 NEXT whose variable matches (or omits) v (spec.md §4.6).
//

func skipForBody(e *Engine, start int, loopVar byte) int {
	depth := 0

	for p := start; p < e.prog.end; {
		pl := e.prog.lineAt(p)

		ls := &scanner{src: pl.body}

		switch {
		case ls.matchKeyword("FOR"):
			depth++

		case ls.matchKeyword("NEXT"):
			if depth == 0 {
				if v, ok := ls.parseLetter(); !ok || v == loopVar {
					return pl.next
				}
			} else {
				depth--
			}
		}

		p = pl.next
	}

	runtimeError("No matching NEXT")
	panic("unreachable")
}

func executeNext(e *Engine, s *scanner) dispatchResult {
	runtimeCheck(len(e.forStack) > 0, "FOR stack underflow")

	top := e.forStack[len(e.forStack)-1]

	if letter, ok := s.parseLetter(); ok {
		runtimeCheck(top.varIndex == letterIndex(letter), "NEXT without matching FOR")
	}

	v := e.vars.scalars[top.varIndex] + top.step
	e.vars.scalars[top.varIndex] = v

	holds := (top.step >= 0 && v <= top.end) || (top.step < 0 && v >= top.end)
	if holds {
		return dispatchResult{kind: dispResumeAt, ptr: top.loopBodyEntry}
	}

	e.forStack = e.forStack[:len(e.forStack)-1]
	return dispatchResult{}
}

func executeStop(e *Engine, ctx execCtx) dispatchResult {
	if !ctx.immediate {
		e.contPtr = ctx.next
		e.hasContPtr = true
	} else {
		e.hasContPtr = false
	}

	return dispatchResult{kind: dispHalt}
}

func executeRun(s *scanner) dispatchResult {
	if n, ok := s.parseNumber(); ok {
		return dispatchResult{kind: dispRunNow, line: uint16(n), hasLine: true}
	}
	return dispatchResult{kind: dispRunNow}
}

func executeList(e *Engine) {
	e.prog.each(func(pl programLine) {
		writeString(e, strconv.Itoa(int(pl.lineNo)))
		writeString(e, " ")
		writeString(e, string(pl.body))
		writeString(e, "\r\n")
	})
}

func executeCls(e *Engine) {
	for i := 0; i < 8; i++ {
		writeString(e, "\r\n")
	}
}

//
// DIM v(s1[,s2]) [, ...]: additive, comma-separated (spec.md §4.4).
//

func executeDim(e *Engine, s *scanner) {
	for {
		letter, ok := s.parseLetter()
		runtimeCheck(ok, "Syntax error")
		s.expectByte('(')

		d1 := e.evalExpr(s)
		runtimeCheck(d1 >= 0, "Bad subscript")

		dims := 1
		var d2 int32

		if s.matchByte(',') {
			d2 = e.evalExpr(s)
			runtimeCheck(d2 >= 0, "Bad subscript")
			dims = 2
		}

		s.expectByte(')')

		e.vars.dim(letter, dims, uint16(d1), uint16(d2))

		if !s.matchByte(',') {
			break
		}
	}
}

func executePoke(e *Engine, s *scanner) {
	addr := e.evalExpr(s)
	s.expectByte(',')
	value := e.evalExpr(s)

	e.prog.pokeByte(addr, byte(value))
}

//
// RAND / RANDOMISE [e]: reseed the LCG, defaulting to progEnd+1 when
// no expression is given (spec.md §4.4).
//

func executeRandomize(e *Engine, s *scanner) {
	s.skipSpace()

	if s.atEnd() {
		e.seedRNG(int32(e.prog.end) + 1)
		return
	}

	e.seedRNG(e.evalExpr(s))
}
