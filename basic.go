package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/danswartzendruber/liner"
	"github.com/goforj/godump"
)

const version = "0.1"

//
// replIO is the host's ioAdapter (spec.md §6): a liner.State for
// reading lines, a buffered stdout for writing them, and a flag the
// signal handler goroutine sets so the driver's once-per-line poll
// (runFrom in driver.go) can see it.
//

type replIO struct {
	l           *liner.State
	w           *bufio.Writer
	interrupted atomic.Bool
}

func (r *replIO) WriteChar(c byte) {
	r.w.WriteByte(c)
	r.w.Flush()
}

func (r *replIO) ReadLine() (string, bool) {
	line, err := r.l.Prompt("")
	if err != nil {
		return "", false
	}

	r.l.AppendHistory(line)

	return line, true
}

func (r *replIO) BreakCheck() bool {
	return r.interrupted.Swap(false)
}

//
// sigHdlr mirrors the teacher's signal goroutine in basic.go - one
// goroutine, one channel, running for the life of the process.
//

func sigHdlr(io *replIO) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT)

	for range ch {
		io.interrupted.Store(true)
	}
}

var (
	startTime          time.Time
	baseUtime, baseStime int64
)

func main() {
	checkTerminal()

	l := setupLiner()
	defer cleanupLiner(l)

	io := &replIO{l: l, w: bufio.NewWriter(os.Stdout)}

	eng := NewEngine(defaultProgSize, defaultArraySize, io)

	go sigHdlr(io)

	fmt.Println(strings.Repeat("-", terminalWidth()))
	fmt.Printf("zx80basic %s\n", version)

	startTime = time.Now()
	baseUtime, baseStime = getCPUTicks()

	if args := os.Args[1:]; len(args) == 1 {
		loadFile(eng, args[0])
	}

	repl(eng, l)
}

//
// loadFile feeds a .bas file's lines through HandleLine, one at a
// time, exactly as if they had been typed at the prompt - there is no
// separate bulk-load path (spec.md §9: SAVE/LOAD are host no-ops, so
// this is the only way a stored program actually gets into the
// engine from disk).
//

func loadFile(eng *Engine, filename string) {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Printf("Unable to open %q (%v)\n", filename, err)
		return
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		eng.HandleLine(sc.Text())
	}
}

//
// repl is the top-level command loop. Lines starting with a backslash
// are meta-commands handled here; everything else goes straight to
// the engine's line-entry dispatcher.
//

func repl(eng *Engine, l *liner.State) {
	for {
		line, err := l.Prompt("] ")
		if err == io.EOF {
			return
		}
		if err != nil {
			return
		}

		l.AppendHistory(line)

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if trimmed[0] == '\\' {
			if !metaCommand(eng, trimmed) {
				return
			}
			continue
		}

		eng.HandleLine(line)
	}
}

// metaCommand handles the \DUMP, \STAT, \HELP and \BYE REPL commands.
// It returns false when the REPL should exit.
func metaCommand(eng *Engine, trimmed string) bool {
	upper := strings.ToUpper(trimmed)
	fields := strings.Fields(upper)
	cmd := fields[0]

	switch cmd {
	case "\\BYE":
		return false

	case "\\DUMP":
		dumpState(eng)

	case "\\STAT":
		printStats(eng)

	case "\\HELP":
		topic := ""
		if len(fields) > 1 {
			topic = strings.TrimPrefix(fields[1], "\\")
			switch topic {
			case "DUMP", "STAT", "BYE":
				topic = "\\" + topic
			}
		}
		executeHelp(topic)

	default:
		fmt.Printf("Unknown command %q\n", trimmed)
	}

	return true
}

//
// dumpState pretty-prints a summary of the engine's state with godump:
// the program end offset, scalars, array descriptors, both stacks, the
// continuation pointer, the PRNG state and the statement count. The
// program text and the array cells are not included. godump is the
// teacher's own debugging tool (makeStmtNode/makeTokenNode in basic.go
// dump parse nodes the same way when g.traceDump is set).
//

func dumpState(eng *Engine) {
	godump.Dump(struct {
		ProgEnd    int
		CurLine    uint16
		Scalars    [26]int32
		Arrays     []arrayDesc
		GosubStack []int
		ForStack   []*forFrame
		HasContPtr bool
		ContPtr    int
		RNGState   uint32
		Statements int64
	}{
		ProgEnd:    eng.prog.end,
		CurLine:    eng.curLine,
		Scalars:    eng.vars.scalars,
		Arrays:     eng.vars.arrays,
		GosubStack: eng.gosubStack,
		ForStack:   eng.forStack,
		HasContPtr: eng.hasContPtr,
		ContPtr:    eng.contPtr,
		RNGState:   eng.rngState,
		Statements: eng.stats.numStatements,
	})
}

//
// printStats reports wall-clock time and CPU seconds since startup, plus the
// statement counter the engine keeps in execStats - the equivalent of
// the teacher's printCpuUsage/printStatistics pair in basic.go/utils.go.
//

func printStats(eng *Engine) {
	elapsed := time.Since(startTime).Round(time.Second)
	ut, st := getCPUTicks()

	fmt.Printf("Elapsed: %s  CPU: %ds user %ds sys\n", elapsed, ut-baseUtime, st-baseStime)
	fmt.Printf("%d statements executed\n", eng.stats.numStatements)
}
