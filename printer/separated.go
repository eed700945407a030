package printer

// OpenBlock writes open, increases indentation, and starts a new line —
// the common "{\n\t" shape of entering a nested block.
func OpenBlock[K any](p Printer[K], open K) {
	p.Token(open)
	p.Builder().Indent()
	p.Builder().Newline()
}

// CloseBlock decreases indentation, starts a new line, and writes close —
// the mirror image of OpenBlock.
func CloseBlock[K any](p Printer[K], close K) {
	p.Builder().Dedent()
	p.Builder().Newline()
	p.Token(close)
}

// WriteSeparated writes each item via write, placing sep between
// consecutive items. trailing controls whether sep also follows the last
// item; newlineAfterSep controls whether a newline follows each
// non-final separator.
func WriteSeparated[K any, T any](
	p Printer[K],
	items []T,
	write func(T),
	sep K,
	trailing bool,
	newlineAfterSep bool,
) {
	n := len(items)
	for i, item := range items {
		write(item)
		last := i == n-1
		if !last || trailing {
			p.Token(sep)
			if newlineAfterSep && !last {
				p.Builder().Newline()
			}
		}
	}
}

// WriteSeparatedInline writes items with sep followed by a space between
// them, with no trailing separator and no newlines — the common
// comma-space-separated shape of an argument list.
func WriteSeparatedInline[K any, T any](p Printer[K], items []T, write func(T), sep K) {
	n := len(items)
	for i, item := range items {
		write(item)
		if i < n-1 {
			p.Token(sep)
			p.Builder().Space()
		}
	}
}
