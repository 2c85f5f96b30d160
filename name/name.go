// Package name converts header field names between the wire form found in a
// file ("Field-One") and the internal form used as a key in a record
// ("field_one").
//
// The conversion from wire to internal form is lossy: case and the exact
// placement of surrounding dashes are forgotten. The conversion from internal
// form to wire form and back again is always the identity for names produced
// by ToInternal.
package name

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidFieldName is matched by every InvalidFieldNameError.
var ErrInvalidFieldName = errors.New("invalid field name")

// InvalidFieldNameError is returned by ToInternal when a field name does not
// mangle into a valid identifier.
type InvalidFieldNameError struct {
	Name string // the name after mangling
}

// Error returns the error message.
func (err *InvalidFieldNameError) Error() string {
	return "invalid field name: '" + err.Name + "'"
}

// Is returns true for ErrInvalidFieldName.
func (err *InvalidFieldNameError) Is(target error) bool {
	return target == ErrInvalidFieldName
}

// Mangler performs the name conversions using a particular set of reserved
// words. The zero value uses no reserved words at all.
type Mangler struct {
	reserved Reserved
}

// Default is the Mangler used by the package-level functions. It reserves the
// Go keywords.
var Default = New(GoKeywords)

// New returns a Mangler that suffixes any of the given reserved words with an
// underscore.
func New(reserved Reserved) *Mangler {
	return &Mangler{reserved}
}

// Reserved returns the reserved word set of this mangler.
func (m *Mangler) Reserved() Reserved {
	return m.reserved
}

// ToInternal converts a wire name to an internal name using the Default
// mangler.
func ToInternal(wire string) (string, error) {
	return Default.ToInternal(wire)
}

// ToWire converts an internal name to a wire name using the Default mangler.
func ToWire(internal string) string {
	return Default.ToWire(internal)
}

// ToInternal strips surrounding spaces, tabs, and dashes from the wire name,
// turns the remaining dashes into underscores, and lowercases the result. The
// name is NFC normalized first so that decomposed accents count as letters.
//
// If the result is not an identifier, an *InvalidFieldNameError is returned.
// If the result is a reserved word, an underscore is appended.
func (m *Mangler) ToInternal(wire string) (string, error) {
	id := norm.NFC.String(wire)
	id = strings.Trim(id, " \t-")
	id = strings.ReplaceAll(id, "-", "_")
	id = strings.ToLower(id)

	if !IsIdentifier(id) {
		return "", &InvalidFieldNameError{id}
	}

	if m.reserved.Contains(id) {
		id += "_"
	}

	return id, nil
}

// ToWire turns underscores into dashes, strips surrounding dashes, and
// title-cases the first letter of every dash-separated segment.
func (m *Mangler) ToWire(internal string) string {
	wire := strings.ReplaceAll(internal, "_", "-")
	wire = strings.Trim(wire, "-")

	segs := strings.Split(wire, "-")
	for i, seg := range segs {
		segs[i] = titleSegment(seg)
	}

	return strings.Join(segs, "-")
}

// titleSegment upper cases the first rune of seg. Runes whose title case does
// not lowercase back to the same rune are left alone.
func titleSegment(seg string) string {
	r, size := utf8.DecodeRuneInString(seg)
	if r == utf8.RuneError {
		return seg
	}

	t := unicode.ToTitle(r)
	if t == r || unicode.ToLower(t) != r {
		return seg
	}

	return string(t) + seg[size:]
}

// IsIdentifier reports whether s follows the Go identifier grammar: a letter
// or underscore followed by any number of letters, digits, and underscores.
// Letters and digits may come from any script.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}

	return true
}
