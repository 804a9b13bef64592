package bf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// DebugConsole runs a program and stops at every breakpoint to accept
// commands through stdio.
// commands:
//   c:
//     continue to the next breakpoint (or to the end).
//   p:
//     print the execution state.
//   w:
//     dump the tape window around the cursor.
//   t <offset> <size>:
//     hex-dump a tape range.
//   q:
//     quit.
type DebugConsole struct {
	program *Program
	env     *Env
	ctx     *Context
	in      *bufio.Reader
	out     io.Writer
}

// NewDebugConsole creates a console reading commands from stdin and
// printing to stderr, so program output on stdout stays clean.
func NewDebugConsole(program *Program, env *Env) *DebugConsole {
	return &DebugConsole{
		program: program,
		env:     env,
		ctx:     &Context{},
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stderr,
	}
}

// Run executes the program, entering the command loop at every
// breakpoint. Returns nil when the program halts or the user quits.
func (c *DebugConsole) Run() error {
	for {
		err := c.program.Execute(c.env, c.ctx)
		if err != ErrBreakpoint {
			return err
		}
		glog.V(1).Infof("breakpoint: pc=%d, mc=%d", c.ctx.PC, c.ctx.MC)
		fmt.Fprintf(c.out, "Breakpoint, 'q' to quit\n")
		if quit := c.commandLoop(); quit {
			return nil
		}
	}
}

// commandLoop reads commands until one resumes execution or quits.
func (c *DebugConsole) commandLoop() bool {
	for {
		fmt.Fprintf(c.out, ">> ")
		line, err := c.in.ReadString('\n')
		if err != nil {
			return true
		}
		if quit, resume := c.handleCommand(line); quit || resume {
			return quit
		}
	}
}

func (c *DebugConsole) handleCommand(line string) (quit, resume bool) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, false
	}
	switch args[0] {
	case "c", "continue":
		return false, true
	case "p", "print":
		c.printState()
	case "w", "window":
		DumpTapeWindow(c.ctx, c.out)
	case "t", "tape":
		c.tapeCommand(args)
	case "q", "quit":
		return true, false
	default:
		fmt.Fprintf(c.out, "Unknown command %q\n", args[0])
	}
	return false, false
}

func (c *DebugConsole) printState() {
	fmt.Fprintln(c.out, "--------------------------------------------------")
	fmt.Fprintf(c.out, "PC=%d, MC=%d, cell=0x%02x\n",
		c.ctx.PC, c.ctx.MC, c.ctx.Mem[c.ctx.MC])
}

func (c *DebugConsole) tapeCommand(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(c.out, "usage: t <offset> <size>")
		return
	}
	offset, err := strconv.Atoi(args[1])
	if err != nil || offset < 0 {
		fmt.Fprintf(c.out, "bad offset %q\n", args[1])
		return
	}
	size, err := strconv.Atoi(args[2])
	if err != nil || size < 0 {
		fmt.Fprintf(c.out, "bad size %q\n", args[2])
		return
	}
	DumpTapeText(c.ctx, c.out, offset, size)
}
