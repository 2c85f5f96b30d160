package name

// Reserved is a set of words that may not be used as an internal name as-is.
type Reserved map[string]struct{}

// NewReserved builds a Reserved set from the given words.
func NewReserved(words ...string) Reserved {
	r := make(Reserved, len(words))
	for _, w := range words {
		r[w] = struct{}{}
	}
	return r
}

// Contains returns true if word is reserved. A nil set reserves nothing.
func (r Reserved) Contains(word string) bool {
	_, found := r[word]
	return found
}

// Words returns the reserved words in no particular order.
func (r Reserved) Words() []string {
	ws := make([]string, 0, len(r))
	for w := range r {
		ws = append(ws, w)
	}
	return ws
}

// GoKeywords holds the keywords of the Go language.
var GoKeywords = NewReserved(
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type",
	"var",
)

// PythonKeywords holds the Python 3 keywords. Use this set to produce the same
// internal names as other limbs implementations, e.g., "From" becomes "from_".
var PythonKeywords = NewReserved(
	"False", "None", "True", "and", "as", "assert", "async", "await", "break",
	"class", "continue", "def", "del", "elif", "else", "except", "finally",
	"for", "from", "global", "if", "import", "in", "is", "lambda", "nonlocal",
	"not", "or", "pass", "raise", "return", "try", "while", "with", "yield",
)
