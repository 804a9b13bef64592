package bf

import (
	"strings"
	"testing"
)

func mustCompile(t *testing.T, src string) *Program {
	t.Helper()
	p, err := Compile([]byte(src))
	if err != nil {
		t.Fatalf("Compile(%q): %v", src, err)
	}
	return p
}

func wantWords(t *testing.T, src string, want []instr) {
	t.Helper()
	p := mustCompile(t, src)
	if len(p.items) != len(want) {
		t.Fatalf("Compile(%q): got %d words %04x, want %d words %04x",
			src, len(p.items), p.items, len(want), want)
	}
	for i, w := range want {
		if p.items[i] != w {
			t.Errorf("Compile(%q) word %d: got=%04x, want=%04x", src, i, p.items[i], w)
		}
	}
}

func TestCoalesceRuns(t *testing.T) {
	tests := []struct {
		src  string
		want []instr
	}{
		{"+++++", []instr{0x0005, opHalt}},
		{"+-+-+-", []instr{opHalt}},
		{"++-", []instr{0x0001, opHalt}},
		{"-", []instr{0x3FFF, opHalt}},
		{">>", []instr{0x4002, opHalt}},
		{"<<<", []instr{0x7FFD, opHalt}},
		{"><", []instr{opHalt}},
		{"+++>>>", []instr{0x0003, 0x4003, opHalt}},
	}
	for _, tt := range tests {
		wantWords(t, tt.src, tt.want)
	}
}

func TestCoalesceSaturation(t *testing.T) {
	p := mustCompile(t, strings.Repeat("+", 8193))
	if len(p.items) != 3 {
		t.Fatalf("words: got=%d, want=3 (%04x)", len(p.items), p.items)
	}
	first := signExtend14(p.items[0])
	second := signExtend14(p.items[1])
	if first < int14Min || first > int14Max || second < int14Min || second > int14Max {
		t.Errorf("payloads out of range: %d, %d", first, second)
	}
	if first+second != 8193 {
		t.Errorf("payload sum: got=%d, want=8193", first+second)
	}
}

func TestCommentInvariance(t *testing.T) {
	plain := mustCompile(t, "+++[->+<].")
	noisy := mustCompile(t, "+ hello\n+ world\n+[- comments > ignored +\n<].")
	if len(plain.items) != len(noisy.items) {
		t.Fatalf("word counts differ: %d vs %d", len(plain.items), len(noisy.items))
	}
	for i := range plain.items {
		if plain.items[i] != noisy.items[i] {
			t.Errorf("word %d differs: %04x vs %04x", i, plain.items[i], noisy.items[i])
		}
	}
}

func TestBracketIdioms(t *testing.T) {
	tests := []struct {
		src  string
		want []instr
	}{
		{"[-]", []instr{opMemsetZero, opHalt}},
		{"[+]", []instr{opMemsetZero, opHalt}},
		{"[>]", []instr{opScanRt, opHalt}},
		{"[<]", []instr{opScanLt, opHalt}},
		{"[ - ]", []instr{opMemsetZero, opHalt}},
	}
	for _, tt := range tests {
		wantWords(t, tt.src, tt.want)
	}
}

func TestOutputRun(t *testing.T) {
	wantWords(t, ".", []instr{opOutNTimes, opHalt})
	wantWords(t, "...", []instr{opOutNTimes | 2, opHalt})
	// A run longer than the argument limit splits.
	wantWords(t, strings.Repeat(".", 300), []instr{opOutNTimes | 255, opOutNTimes | 43, opHalt})
}

func TestSimpleEmits(t *testing.T) {
	wantWords(t, ",", []instr{opInput, opHalt})
	wantWords(t, "@", []instr{opBreakpoint, opHalt})
}

func TestCyclicRecognition(t *testing.T) {
	tests := []struct {
		src  string
		want instr
	}{
		{"[->+<]", opCyclicAddRt | 1},
		{"[->+++<]", opCyclicAddRt | 3},
		{"[<+>-]", opCyclicAddLt | 1},
		{"[>+<-]", opCyclicAddRt | 1},
		{"[->>+<<]", opCyclicMovRt | 2},
		{"[-<<+>>]", opCyclicMovLt | 2},
		{"[->>+++<<]", opCyclicMovAddRt | 2<<4 | 3},
		{"[-<<<++>>>]", opCyclicMovAddLt | 3<<4 | 2},
	}
	for _, tt := range tests {
		wantWords(t, tt.src, []instr{tt.want, opHalt})
	}
}

func TestCyclicRejection(t *testing.T) {
	// The body is five words but not a cyclic shape, so it compiles as
	// an ordinary short loop.
	wantWords(t, "+[+>+<]", []instr{
		0x0001,
		opJez | 5, 0x0001, 0x4001, 0x0001, 0x7FFF, opJnz | 5,
		opHalt,
	})
	// Unbalanced cursor moves are no cyclic shape either.
	wantWords(t, "+[->+<<]", []instr{
		0x0001,
		opJez | 5, 0x3FFF, 0x4001, 0x0001, 0x7FFE, opJnz | 5,
		opHalt,
	})
}

func TestShortLoop(t *testing.T) {
	wantWords(t, "+[[-]]", []instr{
		0x0001,
		opJez | 2, opMemsetZero, opJnz | 2,
		opHalt,
	})
}

func TestDeadPrefixRemoval(t *testing.T) {
	wantWords(t, "[+++]hello", []instr{opHalt})
	wantWords(t, "[+[-]+]+", []instr{0x0001, opHalt})
	// Two dead loops in a row both go.
	wantWords(t, "[+++][--->+]+", []instr{0x0001, opHalt})

	p := mustCompile(t, "[+++]")
	if p.items[0]&maskKind2 == kindJump {
		t.Errorf("first word is still a jump: %04x", p.items[0])
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		src  string
		want error
	}{
		{"[[[", ErrUnbalancedBrackets},
		{"]", ErrUnbalancedBrackets},
		{"[+]]", ErrUnbalancedBrackets},
		{strings.Repeat("[+", 1024), ErrStackOverflow},
	}
	for _, tt := range tests {
		if _, err := Compile([]byte(tt.src)); err != tt.want {
			t.Errorf("Compile(%.16q...): got=%v, want=%v", tt.src, err, tt.want)
		}
	}
}

func TestLongJumpLayout(t *testing.T) {
	// 2050 "+>" pairs make a 4100-word body, past the short-jump limit.
	src := ">[" + strings.Repeat("+>", 2050) + "]"
	p := mustCompile(t, src)

	open := p.items[1]
	if open&maskKind3 != opJez || open&jmpLongBit == 0 {
		t.Fatalf("open jump: got=%04x, want long jump-if-zero", open)
	}
	dist := int(open&mask12)<<16 + int(p.items[2])
	if dist != 4101 {
		t.Errorf("stored open distance: got=%d, want=4101", dist)
	}

	closePos := len(p.items) - 3
	cl := p.items[closePos]
	if cl&maskKind3 != opJnz || cl&jmpLongBit == 0 {
		t.Fatalf("close jump: got=%04x, want long jump-if-nonzero", cl)
	}
	if got := int(cl&mask12)<<16 + int(p.items[closePos+1]); got != dist {
		t.Errorf("close distance: got=%d, want=%d", got, dist)
	}
	if p.items[len(p.items)-1] != opHalt {
		t.Errorf("last word: got=%04x, want=%04x", p.items[len(p.items)-1], instr(opHalt))
	}
}

func TestHaltIsTerminal(t *testing.T) {
	a := mustCompile(t, "+[-]")
	b := mustCompile(t, "+[-] trailing comments only\n")
	if len(a.items) != len(b.items) {
		t.Fatalf("word counts differ: %d vs %d", len(a.items), len(b.items))
	}
	for i := range a.items {
		if a.items[i] != b.items[i] {
			t.Errorf("word %d differs: %04x vs %04x", i, a.items[i], b.items[i])
		}
	}
	if a.items[len(a.items)-1] != opHalt {
		t.Errorf("program does not end with halt: %04x", a.items[len(a.items)-1])
	}
}
