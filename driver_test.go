package main

import (
	"strings"
	"testing"
)

// fakeIO is a scripted ioAdapter for tests: WriteChar accumulates into
// out, ReadLine pops canned lines, BreakCheck returns a fixed verdict.
type fakeIO struct {
	out    []byte
	inputs []string
	brk    bool
}

func (f *fakeIO) WriteChar(c byte) { f.out = append(f.out, c) }

func (f *fakeIO) ReadLine() (string, bool) {
	if len(f.inputs) == 0 {
		return "", false
	}
	line := f.inputs[0]
	f.inputs = f.inputs[1:]
	return line, true
}

func (f *fakeIO) BreakCheck() bool { return f.brk }

func runProgram(t *testing.T, lines []string) string {
	t.Helper()

	io := &fakeIO{}
	e := NewEngine(1024, 256, io)

	for _, l := range lines {
		e.HandleLine(l)
	}
	e.HandleLine("RUN")

	return string(io.out)
}

func TestScenarioLetAndPrint(t *testing.T) {
	got := runProgram(t, []string{
		`10 LET A = 3`,
		`20 PRINT A*2+1`,
	})
	if got != "7\r\n" {
		t.Fatalf("output = %q, want %q", got, "7\r\n")
	}
}

func TestScenarioForLoop(t *testing.T) {
	got := runProgram(t, []string{
		`10 FOR I = 1 TO 3`,
		`20 PRINT I;`,
		`30 NEXT I`,
	})
	if got != "123" {
		t.Fatalf("output = %q, want %q", got, "123")
	}
}

func TestScenarioForZeroIterations(t *testing.T) {
	got := runProgram(t, []string{
		`10 FOR I = 5 TO 1`,
		`20 PRINT I;`,
		`30 NEXT I`,
		`40 PRINT "DONE"`,
	})
	if got != "DONE\r\n" {
		t.Fatalf("output = %q, want only DONE (zero iterations)", got)
	}
}

func TestScenarioNestedIf(t *testing.T) {
	got := runProgram(t, []string{
		`10 LET A = 5`,
		`20 IF A > 3 THEN IF A < 10 THEN PRINT "MID"`,
	})
	if got != "MID\r\n" {
		t.Fatalf("output = %q, want %q", got, "MID\r\n")
	}
}

func TestScenarioGosubReturn(t *testing.T) {
	got := runProgram(t, []string{
		`10 GOSUB 100`,
		`20 PRINT "BACK";`,
		`30 END`,
		`100 PRINT "SUB";`,
		`110 RETURN`,
	})
	if got != "SUBBACK" {
		t.Fatalf("output = %q, want %q", got, "SUBBACK")
	}
}

func TestScenario2DArray(t *testing.T) {
	got := runProgram(t, []string{
		`10 DIM M(2,2)`,
		`20 LET M(1,1) = 9`,
		`30 PRINT M(1,1);`,
	})
	if got != "9" {
		t.Fatalf("output = %q, want %q", got, "9")
	}
}

func TestScenarioImmediateDivisionByZero(t *testing.T) {
	io := &fakeIO{}
	e := NewEngine(1024, 256, io)

	e.HandleLine("PRINT 7/0")

	if string(io.out) != "0\r\n" {
		t.Fatalf("output = %q, want %q", io.out, "0\r\n")
	}
}

func TestScenarioGosubStackOverflowErrorsWithoutGrowingPastMax(t *testing.T) {
	io := &fakeIO{}
	e := NewEngine(1024, 256, io)

	e.HandleLine("10 GOSUB 10") // self-recursive: overflows the stack
	e.HandleLine("RUN")

	if len(e.gosubStack) != gosubStackMax {
		t.Fatalf("gosubStack len = %d after overflow, want exactly %d", len(e.gosubStack), gosubStackMax)
	}
	if string(io.out) != "ERROR IN 10\r\n" {
		t.Fatalf("output = %q, want ERROR IN 10", io.out)
	}
}

func TestScenarioBreakDuringRun(t *testing.T) {
	io := &fakeIO{brk: true}
	e := NewEngine(1024, 256, io)

	e.HandleLine(`10 PRINT "X"`)
	e.HandleLine(`20 PRINT "Y"`)
	e.HandleLine("RUN")

	if string(io.out) != "BREAK\r\n" {
		t.Fatalf("output = %q, want immediate BREAK (poll happens before line 10 dispatches)", io.out)
	}
	if !e.hasContPtr {
		t.Fatal("hasContPtr = false after BREAK, want true")
	}
}

func TestScenarioListRoundTrip(t *testing.T) {
	io := &fakeIO{}
	e := NewEngine(1024, 256, io)

	e.HandleLine(`10 PRINT "A"`)
	e.HandleLine(`20 PRINT "B"`)
	e.HandleLine("LIST")

	want := "10 PRINT \"A\"\r\n20 PRINT \"B\"\r\n"
	if string(io.out) != want {
		t.Fatalf("LIST output = %q, want %q", io.out, want)
	}

	// feed the listing back after NEW: the slab must come back byte for byte
	saved := string(e.prog.slab[:e.prog.end])
	listing := string(io.out)

	e.HandleLine("NEW")
	for _, l := range strings.Split(strings.TrimSuffix(listing, "\r\n"), "\r\n") {
		e.HandleLine(l)
	}

	if got := string(e.prog.slab[:e.prog.end]); got != saved {
		t.Fatalf("program after round trip = %q, want %q", got, saved)
	}
}

func TestScenarioInputReadsAndAssigns(t *testing.T) {
	io := &fakeIO{inputs: []string{"42"}}
	e := NewEngine(1024, 256, io)

	e.HandleLine(`10 INPUT A`)
	e.HandleLine(`20 PRINT A*2;`)
	e.HandleLine("RUN")

	if string(io.out) != "? 84" {
		t.Fatalf("output = %q, want %q", io.out, "? 84")
	}
}

func TestScenarioRunWithEmptyProgramFallsThroughCleanly(t *testing.T) {
	io := &fakeIO{}
	e := NewEngine(1024, 256, io)

	e.HandleLine("RUN")

	if len(io.out) != 0 {
		t.Fatalf("output = %q, want empty (no program, no fault)", io.out)
	}
}
