package bf

// codeBuffer is the instruction sequence under construction. It grows
// geometrically (64 words first, then half again each time) so that the
// compiler's push is amortized constant; insert and erase shift the
// tail and stay linear.
type codeBuffer struct {
	items []instr
}

func (b *codeBuffer) reserve(n int) {
	if len(b.items)+n <= cap(b.items) {
		return
	}
	capacity := cap(b.items)
	if capacity == 0 {
		capacity = 64
	}
	for len(b.items)+n > capacity {
		capacity += capacity / 2
	}
	items := make([]instr, len(b.items), capacity)
	copy(items, b.items)
	b.items = items
}

func (b *codeBuffer) push(w instr) {
	b.reserve(1)
	b.items = append(b.items, w)
}

// insert places w at pos, shifting everything from pos up by one word.
func (b *codeBuffer) insert(pos int, w instr) {
	b.reserve(1)
	b.items = append(b.items, 0)
	copy(b.items[pos+1:], b.items[pos:])
	b.items[pos] = w
}

// erase removes n words starting at pos.
func (b *codeBuffer) erase(pos, n int) {
	b.items = append(b.items[:pos], b.items[pos+n:]...)
}

func (b *codeBuffer) len() int             { return len(b.items) }
func (b *codeBuffer) at(pos int) instr     { return b.items[pos] }
func (b *codeBuffer) set(pos int, w instr) { b.items[pos] = w }

func (b *codeBuffer) last() instr     { return b.items[len(b.items)-1] }
func (b *codeBuffer) setLast(w instr) { b.items[len(b.items)-1] = w }
func (b *codeBuffer) dropLast()       { b.items = b.items[:len(b.items)-1] }
func (b *codeBuffer) truncate(n int)  { b.items = b.items[:n] }

// shrink returns the finished sequence trimmed to its exact length.
func (b *codeBuffer) shrink() []instr {
	items := make([]instr, len(b.items))
	copy(items, b.items)
	return items
}
