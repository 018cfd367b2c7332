package main

import (
	"strconv"
	"strings"
)

//
// NewEngine binds the two fixed slabs and the I/O adapter - the
// init(ram_slab, array_slab, io) operation of spec.md §6. Both slabs
// are reserved here, once. The GOSUB and FOR stacks, the FOR frames
// and the array descriptor table are not pre-reserved: they grow on
// demand during execution, capped at gosubStackMax, forStackMax and
// arrayTableMax entries.
//

func NewEngine(progSize, arraySize int, io ioAdapter) *Engine {
	e := &Engine{
		prog: newProgramStore(progSize),
		vars: newVarBank(arraySize),
		io:   io,
	}
	e.rngState = 1

	return e
}

// Reset is the engine's reset() operation (spec.md §6) - equivalent
// to NEW: program, variables, arrays, stacks and the PRNG all clear.
func (e *Engine) Reset() {
	e.fullReset()
}

func (e *Engine) fullReset() {
	e.prog.reset()
	e.vars.reset()
	e.gosubStack = e.gosubStack[:0]
	e.forStack = e.forStack[:0]
	e.hasContPtr = false
	e.rngState = 1
}

// prepareRun clears the GOSUB/FOR stacks and the continuation pointer
// - done before every RUN, immediate or programmatic (spec.md §4.5).
func (e *Engine) prepareRun() {
	e.gosubStack = e.gosubStack[:0]
	e.forStack = e.forStack[:0]
	e.hasContPtr = false
}

// Run is the engine's run() operation (spec.md §6): equivalent to an
// immediate RUN with no argument, starting at the first program line.
func (e *Engine) Run() {
	defer e.recoverFault()

	e.prepareRun()
	e.runFrom(0)
}

// List is the engine's list() operation (spec.md §6).
func (e *Engine) List() {
	defer e.recoverFault()

	executeList(e)
}

//
// recoverFault is the engine's one recover site, the equivalent of
// the teacher's call()/decodePanic pair in basic.go: it turns an
// engineFault panic into the CR/LF-terminated text spec.md §7 wants
// written back to the host, and lets anything else propagate as a
// genuine bug.
//

func (e *Engine) recoverFault() {
	r := recover()
	if r == nil {
		return
	}

	f, ok := r.(*engineFault)
	if !ok {
		panic(r)
	}

	writeString(e, messageFor(f, e.curLine, e.curLine == 0))
	e.curLine = 0
}

//
// HandleLine is the C7 line-entry dispatcher, and the engine's
// handle_line(text) operation (spec.md §6). A line starting with a
// digit edits the program store; otherwise it is dispatched as an
// immediate statement.
//

func (e *Engine) HandleLine(text string) {
	defer e.recoverFault()

	trimmed := strings.TrimLeft(text, " \t")
	if trimmed == "" {
		return
	}

	if isDigit(trimmed[0]) {
		e.editLine(trimmed)
		return
	}

	e.curLine = 0
	result := dispatchStatement(e, []byte(trimmed), execCtx{ptr: -1, next: -1, immediate: true})
	e.applyResult(result)
}

func (e *Engine) editLine(trimmed string) {
	i := 0
	for i < len(trimmed) && isDigit(trimmed[i]) {
		i++
	}

	n, err := strconv.Atoi(trimmed[:i])
	if err != nil || n < 0 || n > maxLineNumber {
		badLineError()
	}

	rest := strings.TrimLeft(trimmed[i:], " \t")

	if rest == "" {
		e.prog.delete(uint16(n))
		return
	}

	if len(rest) > maxBodyLength {
		outOfMemoryError()
	}

	e.prog.insert(uint16(n), []byte(rest))
}

//
// applyResult is what the C7 dispatcher does with a jump/run request
// coming out of immediate mode: resolve the target and hand off to
// the C6 driver, per spec.md §4.6. FOR and GOSUB never reach here in
// immediate mode - dispatchStatement rejects them outright.
//

func (e *Engine) applyResult(result dispatchResult) {
	switch result.kind {
	case dispResumeAt:
		e.runFrom(result.ptr)

	case dispJumpToLine:
		ptr, ok := e.prog.find(result.line)
		if !ok {
			lineNotFoundError()
		}
		e.runFrom(ptr)

	case dispRunNow:
		e.prepareRun()
		e.runFrom(e.resolveRunTarget(result))
	}
}

func (e *Engine) resolveRunTarget(result dispatchResult) int {
	if !result.hasLine {
		return 0
	}

	ptr, ok := e.prog.find(result.line)
	if !ok {
		lineNotFoundError()
	}

	return ptr
}

//
// runFrom is the C6 execution driver: it walks the program store from
// ptr, invoking the statement dispatcher per line, polling for break
// once per line, and obeying the four ways a statement can redirect
// control (spec.md §4.5).
//

func (e *Engine) runFrom(ptr int) {
	pc := ptr

	for {
		if pc >= e.prog.end {
			e.curLine = 0
			return
		}

		pl := e.prog.lineAt(pc)

		if e.io.BreakCheck() {
			e.contPtr = pl.next
			e.hasContPtr = true
			writeString(e, "BREAK\r\n")
			e.curLine = 0
			return
		}

		e.curLine = pl.lineNo
		e.stats.numStatements++

		result := dispatchStatement(e, pl.body, execCtx{ptr: pc, next: pl.next, immediate: false})

		switch result.kind {
		case dispHalt:
			e.curLine = 0
			return

		case dispResumeAt:
			pc = result.ptr

		case dispJumpToLine:
			p, ok := e.prog.find(result.line)
			if !ok {
				lineNotFoundError()
			}
			pc = p

		case dispRunNow:
			e.prepareRun()
			pc = e.resolveRunTarget(result)

		default:
			pc = pl.next
		}
	}
}
