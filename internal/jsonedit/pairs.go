package jsonedit

// pairTable maps each supported opener to its closer.
var pairTable = map[rune]rune{
	'{': '}',
	'[': ']',
	'"': '"',
}

// closers are the characters eligible for pair-skip.
var closers = map[rune]bool{
	'}': true,
	']': true,
	'"': true,
}

// CloserFor returns the closer paired with opener.
func CloserFor(opener rune) (rune, bool) {
	c, ok := pairTable[opener]
	return c, ok
}

// IsOpener reports whether r opens a pair.
func IsOpener(r rune) bool {
	_, ok := pairTable[r]
	return ok
}

// IsCloser reports whether r is a standalone closing character.
func IsCloser(r rune) bool { return closers[r] }

// isBlockOpener reports whether r opens an indented block on Enter.
func isBlockOpener(r rune) bool { return r == '{' || r == '[' }
