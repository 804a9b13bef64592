package bf

import "io"

// Env is the I/O environment a program runs against. Input feeds the
// `,` instruction one byte at a time; Output receives the bytes the
// `.` instruction emits. A failed read (end of input included) stores
// a zero in the current cell.
type Env struct {
	Input  io.ByteReader
	Output io.ByteWriter
}

func (e *Env) valid() bool {
	return e.Input != nil && e.Output != nil
}

// Context is a suspended execution: program counter, memory cursor and
// the tape itself. Execute fills it in when the program hits a
// breakpoint, and a Context whose Mem is non-nil resumes where it left
// off. The tape belongs to whoever holds the Context.
type Context struct {
	PC  int
	MC  int
	Mem []byte
}

// Execute runs the program to completion or to the next breakpoint.
// With a nil ctx breakpoints are inert and the program runs on a fresh
// tape; with a ctx whose Mem is set, execution resumes from the saved
// state. Returns nil on halt, ErrBreakpoint on suspension, or a fatal
// error.
func (p *Program) Execute(env *Env, ext *Context) error {
	if p == nil || env == nil {
		return ErrNullPointer
	}
	if !env.valid() {
		return ErrInvalidEnv
	}

	var ctx Context
	if ext != nil && ext.Mem != nil {
		ctx = *ext
	} else {
		ctx.Mem = make([]byte, TapeLen)
	}

	for {
		if ctx.PC < 0 || ctx.PC >= len(p.items) {
			return ErrUnreachable
		}
		in := p.items[ctx.PC]
		ctx.PC++

		switch in & maskKind2 {
		case kindChange:
			ctx.Mem[ctx.MC] += byte(signExtend14(in))

		case kindMove:
			ctx.MC += signExtend14(in)
			if ctx.MC < 0 || ctx.MC >= TapeLen {
				return ErrMemoryCorruption
			}

		case kindJump:
			dist := int(in & mask12)
			if in&jmpLongBit != 0 {
				// The word after a long jump header was inserted after
				// distances were fixed; compensate by one.
				dist = dist<<16 + int(p.items[ctx.PC]) + 1
				ctx.PC++
			}
			zbit := in&jmpZBit != 0
			if (ctx.Mem[ctx.MC] != 0) == zbit {
				if zbit {
					ctx.PC -= dist
				} else {
					ctx.PC += dist
				}
			}

		default: // kindExt
			if in&maskKind3 == kindExtIm {
				switch in {
				case opHalt:
					return nil
				case opInput:
					b, err := env.Input.ReadByte()
					if err != nil {
						b = 0
					}
					ctx.Mem[ctx.MC] = b
				case opMemsetZero:
					ctx.Mem[ctx.MC] = 0
				case opScanRt:
					mc := ctx.MC
					for mc < TapeLen-1 && ctx.Mem[mc] != 0 {
						mc++
					}
					if ctx.Mem[mc] != 0 {
						return ErrMemoryCorruption
					}
					ctx.MC = mc
				case opScanLt:
					mc := ctx.MC
					for mc > 0 && ctx.Mem[mc] != 0 {
						mc--
					}
					if ctx.Mem[mc] != 0 {
						return ErrMemoryCorruption
					}
					ctx.MC = mc
				case opBreakpoint:
					// Without a caller context there is nobody to hand
					// the state to; the breakpoint does nothing.
					if ext != nil {
						*ext = ctx
						return ErrBreakpoint
					}
				default:
					return ErrUnknownInstr
				}
				continue
			}

			switch in & maskKind8 {
			case opOutNTimes:
				for n := 0; n <= int(in&maskArg); n++ {
					env.Output.WriteByte(ctx.Mem[ctx.MC])
				}
			case opCyclicAddRt:
				if err := cyclicMovAdd(&ctx, byte(in&maskArg), 1); err != nil {
					return err
				}
			case opCyclicAddLt:
				if err := cyclicMovAdd(&ctx, byte(in&maskArg), -1); err != nil {
					return err
				}
			case opCyclicMovRt:
				if err := cyclicMovAdd(&ctx, 1, int(in&maskArg)); err != nil {
					return err
				}
			case opCyclicMovLt:
				if err := cyclicMovAdd(&ctx, 1, -int(in&maskArg)); err != nil {
					return err
				}
			case opCyclicMovAddRt:
				if err := cyclicMovAdd(&ctx, byte(in&0xF), int(in>>4&0xF)); err != nil {
					return err
				}
			case opCyclicMovAddLt:
				if err := cyclicMovAdd(&ctx, byte(in&0xF), -int(in>>4&0xF)); err != nil {
					return err
				}
			default:
				return ErrUnknownInstr
			}
		}
	}
}

// cyclicMovAdd adds coef times the current cell to the cell off away
// and zeroes the current cell. A zero current cell is a no-op, so the
// target is only bounds-checked when something would actually move.
func cyclicMovAdd(ctx *Context, coef byte, off int) error {
	v := ctx.Mem[ctx.MC]
	if v == 0 {
		return nil
	}
	target := ctx.MC + off
	if target < 0 || target >= TapeLen {
		return ErrMemoryCorruption
	}
	ctx.Mem[target] += v * coef
	ctx.Mem[ctx.MC] = 0
	return nil
}
