package parser

// CursorArgumentIndex locates the token slot under the cursor.
// It scans left from the cursor to the nearest space (or the start of the line) and counts the
// spaces up to that boundary: 0 is the command-name slot, 1 the first argument, and so on.
// Quoted arguments containing spaces are counted per space, matching what the user typed.
func CursorArgumentIndex(input string, cursor int) (boundary int, index int) {
	pos := len(input) - 1
	if cursor < len(input) {
		pos = cursor - 1
	}
	if pos < 0 {
		return 0, 0
	}

	for pos > 0 && input[pos] != ' ' {
		pos--
	}

	for i := 0; i <= pos; i++ {
		if input[i] == ' ' {
			index++
		}
	}

	return pos, index
}

// ReplaceArg returns args with the token at position i set to value, growing the slice if needed.
// The input slice is not modified.
func ReplaceArg(args []string, i int, value string) []string {
	size := len(args)
	if i >= size {
		size = i + 1
	}
	out := make([]string, size)
	copy(out, args)
	out[i] = value
	return out
}

// Equal reports whether two tokenized commands have the same name and arguments.
func Equal(a, b *Command) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if a.Args[i] != b.Args[i] {
			return false
		}
	}
	return true
}
