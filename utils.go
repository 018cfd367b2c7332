package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/danswartzendruber/liner"
	"github.com/tklauser/go-sysconf"
	"golang.org/x/term"
)

//
// Ensure we are connected to a tty before handing control to liner -
// same guard the teacher's checkTerminal runs in basic.go.
//

func checkTerminal() {
	if !term.IsTerminal(0) {
		crash("Standard input must be a terminal")
	}

	if !term.IsTerminal(1) {
		crash("Standard output must be a terminal")
	}
}

func terminalWidth() int {
	if w, _, err := term.GetSize(1); err == nil && w > 0 {
		return w
	}
	return 80
}

//
// setupLiner/cleanupLiner mirror the teacher's Liner handling in
// basic.go/utils.go, minus the second "input" instance - this dialect
// reads INPUT through the same liner.State (and the same history) as
// the command line, since there is no separate cooked/raw mode split
// to preserve here.
//

func setupLiner() *liner.State {
	l := liner.NewLiner()
	l.SetMultiLineMode(false)
	return l
}

func cleanupLiner(l *liner.State) {
	if l != nil {
		l.Close()
	}
}

func crash(msg string) {
	if msg != "" {
		fmt.Println(msg)
	}
	os.Exit(1)
}

//
// CPU/elapsed reporting for the STAT meta-command, grounded in the
// teacher's printCpuUsage/getCPUInfo (utils.go): read /proc/self/stat
// and scale by SC_CLK_TCK.
//

func getCPUTicks() (utime, stime int64) {
	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil || clktck == 0 {
		return 0, 0
	}

	contents, err := ioutil.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0
	}

	fields := strings.Fields(string(contents))
	if len(fields) < 15 {
		return 0, 0
	}

	ut, _ := strconv.ParseInt(fields[13], 10, 64)
	st, _ := strconv.ParseInt(fields[14], 10, 64)

	return ut / clktck, st / clktck
}
