package bf

// The scanner presents the source bytes as a logical stream of
// operators. Everything that is not an operator is a comment; the
// helpers step over comment bytes, so pattern checks and run folding
// only ever compare operators.

func isOperator(ch byte) bool {
	return ch == ',' || ch == '.' || ch == '+' || ch == '-' ||
		ch == '>' || ch == '<' || ch == '[' || ch == ']' ||
		ch == breakpointChar
}

// nextOperator returns the position of the next operator at or after i,
// or len(src) when none remains.
func nextOperator(src []byte, i int) int {
	for i < len(src) && !isOperator(src[i]) {
		i++
	}
	return i
}

// skipOperators consumes the next n operator positions.
func skipOperators(src []byte, i, n int) int {
	for i < len(src) && n > 0 {
		if isOperator(src[i]) {
			n--
		}
		i++
	}
	return i
}

// hasPattern reports whether the operators starting at i spell pattern
// exactly, ignoring any comment bytes between them.
func hasPattern(src []byte, i int, pattern string) bool {
	i = nextOperator(src, i)
	j := 0
	for i < len(src) && j < len(pattern) && src[i] == pattern[j] {
		i = nextOperator(src, i+1)
		j++
	}
	return j == len(pattern)
}

// collapseOperators folds a run of inc/dec operators into acc, stopping
// at the first operator of another class, at the end of source, or when
// one more step would leave the signed 14-bit range. The stopping
// operator is not consumed.
func collapseOperators(src []byte, i int, acc *int16, inc, dec byte) int {
	i = nextOperator(src, i)
	for i < len(src) {
		switch src[i] {
		case inc:
			if *acc >= int14Max {
				return i
			}
			*acc++
		case dec:
			if *acc <= int14Min {
				return i
			}
			*acc--
		default:
			return i
		}
		i = nextOperator(src, i+1)
	}
	return i
}
