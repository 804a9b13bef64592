package bf

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DumpInstructions prints up to limit instruction words of p to w, one
// per line as `[addr]: hex - description`. Loop bodies indent two
// spaces per nesting level and the low word of a long jump gets its own
// continuation line. A negative limit prints everything. The dump stops
// at the halt word.
func DumpInstructions(p *Program, w io.Writer, limit int) {
	if p == nil || len(p.items) == 0 {
		return
	}
	if limit < 0 || limit > len(p.items) {
		limit = len(p.items)
	}
	width := 1
	if len(p.items) > 2 {
		width = len(strconv.Itoa(len(p.items) - 2))
	}

	depth := 0
	i := 0
	for i < limit && p.items[i] != opHalt {
		in := p.items[i]
		var next instr
		if i+1 < len(p.items) {
			next = p.items[i+1]
		}
		if in&maskKind3 == opJnz && depth > 0 {
			depth--
		}
		text, words := describeInstr(in, next)
		fmt.Fprintf(w, "[%*d]: %04x - %s%s\n", width, i, in, strings.Repeat("  ", depth), text)
		if words == 2 {
			fmt.Fprintf(w, "[%*d]: %04x\n", width, i+1, next)
		}
		if in&maskKind3 == opJez {
			depth++
		}
		i += words
	}

	if i < len(p.items) && p.items[i] != opHalt {
		fmt.Fprintln(w, "...")
	}
}

// describeInstr renders one instruction and reports how many words it
// occupies (two for long jumps, where next holds the low distance word).
func describeInstr(in, next instr) (string, int) {
	switch in & maskKind3 {
	case kindInc:
		return fmt.Sprintf("increment by %d", signExtend14(in)), 1
	case kindDec:
		return fmt.Sprintf("decrement by %d", -signExtend14(in)), 1
	case kindMoveRt:
		return fmt.Sprintf("move right by %d", signExtend14(in)), 1
	case kindMoveLt:
		return fmt.Sprintf("move left by %d", -signExtend14(in)), 1
	case opJez:
		if in&jmpLongBit != 0 {
			dist := int(in&mask12)<<16 + int(next) + 1
			return fmt.Sprintf("jump ahead by %d", dist), 2
		}
		return fmt.Sprintf("jump ahead by %d", in&mask12), 1
	case opJnz:
		if in&jmpLongBit != 0 {
			dist := int(in&mask12)<<16 + int(next) + 1
			return fmt.Sprintf("jump back by %d", dist), 2
		}
		return fmt.Sprintf("jump back by %d", in&mask12), 1
	case kindExtIm:
		switch in {
		case opInput:
			return "input character", 1
		case opMemsetZero:
			return "set zero value", 1
		case opScanRt:
			return "move to right until it's zero", 1
		case opScanLt:
			return "move to left until it's zero", 1
		case opBreakpoint:
			return "breakpoint", 1
		case opHalt:
			return "halt", 1
		}
		return "unknown instruction", 1
	default: // kindExtEx
		arg := int(in & maskArg)
		switch in & maskKind8 {
		case opOutNTimes:
			if arg > 0 {
				return fmt.Sprintf("output character %d times", arg+1), 1
			}
			return "output character", 1
		case opCyclicAddRt:
			return fmt.Sprintf("add value to right cell mul by %d", arg), 1
		case opCyclicAddLt:
			return fmt.Sprintf("add value to left cell mul by %d", arg), 1
		case opCyclicMovRt:
			return fmt.Sprintf("move value to right by %d", arg), 1
		case opCyclicMovLt:
			return fmt.Sprintf("move value to left by %d", arg), 1
		case opCyclicMovAddRt:
			return fmt.Sprintf("move value to right by %d mul by %d", arg>>4, arg&0xF), 1
		case opCyclicMovAddLt:
			return fmt.Sprintf("move value to left by %d mul by %d", arg>>4, arg&0xF), 1
		}
		return "unknown instruction", 1
	}
}

// DumpTapeText writes size cells starting at offset as hex bytes,
// 32 to a row with a wider gap every eight.
func DumpTapeText(ctx *Context, w io.Writer, offset, size int) {
	if ctx == nil || ctx.Mem == nil || offset >= len(ctx.Mem) {
		return
	}
	if size > len(ctx.Mem)-offset {
		size = len(ctx.Mem) - offset
	}
	for size > 0 {
		row := size
		if row > 32 {
			row = 32
		}
		for i := 1; i <= row; i++ {
			sep := " "
			if i%8 == 0 {
				sep = "  "
			}
			fmt.Fprintf(w, "%02x%s", ctx.Mem[offset], sep)
			offset++
		}
		fmt.Fprintln(w)
		size -= row
	}
}

// DumpTapeBinary writes size cells starting at offset as raw bytes.
func DumpTapeBinary(ctx *Context, w io.Writer, offset, size int) {
	if ctx == nil || ctx.Mem == nil || offset >= len(ctx.Mem) {
		return
	}
	if size > len(ctx.Mem)-offset {
		size = len(ctx.Mem) - offset
	}
	w.Write(ctx.Mem[offset : offset+size])
}

// DumpTapeWindow shows the 19 cells around the cursor, positions
// labeled relative to it. Cells beyond either tape edge print as "--".
func DumpTapeWindow(ctx *Context, w io.Writer) {
	if ctx == nil || ctx.Mem == nil {
		return
	}
	for i := -9; i <= 9; i++ {
		fmt.Fprintf(w, "%+d ", i)
	}
	fmt.Fprintln(w)
	for i := -9; i <= 9; i++ {
		pos := ctx.MC + i
		if pos >= 0 && pos < len(ctx.Mem) {
			fmt.Fprintf(w, "%02x ", ctx.Mem[pos])
		} else {
			fmt.Fprint(w, "-- ")
		}
	}
	fmt.Fprintln(w)
}
