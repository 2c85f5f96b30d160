// Package convert provides the conversions that may be applied to field values
// as they are decoded. A conversion is either named by a well-known tag found
// in the registry, such as "bool" or "int", or it is a custom function.
//
// The registry is fixed at compile time and is never modified, so it is safe
// to share between goroutines.
package convert

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/coreos/go-semver/semver"
	"github.com/zostay/go-addr/pkg/addr"
)

// Errors returned by conversions.
var (
	// ErrUnknownConversion is returned by Spec.Apply when the tag does not
	// name a registered conversion.
	ErrUnknownConversion = errors.New("unknown conversion")

	// ErrNotBool is returned by Bool when the value is not one of the
	// accepted boolean spellings.
	ErrNotBool = errors.New("expected boolean value")
)

// Func converts the string value of a field into some other value.
type Func func(value string) (any, error)

// Tags of the registered conversions.
const (
	TagBool      = "bool"
	TagInt       = "int"
	TagFloat     = "float"
	TagTime      = "time"
	TagSemver    = "semver"
	TagAddresses = "addresses"
)

var registry = map[string]Func{
	TagBool:      Bool,
	TagInt:       Int,
	TagFloat:     Float,
	TagTime:      Time,
	TagSemver:    Semver,
	TagAddresses: Addresses,
}

// Lookup returns the conversion registered under the given tag.
func Lookup(tag string) (Func, bool) {
	fn, found := registry[tag]
	return fn, found
}

// Tags returns the sorted list of registered tags.
func Tags() []string {
	tags := make([]string, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Spec describes the conversion to apply to a single field. The zero Spec
// leaves the value as a string.
type Spec struct {
	tag string
	fn  Func
}

// Named returns a Spec referring to a registered conversion by tag. The tag
// is resolved when the Spec is applied.
func Named(tag string) Spec {
	return Spec{tag: tag}
}

// Using returns a Spec that applies the given function.
func Using(fn Func) Spec {
	return Spec{fn: fn}
}

// IsZero returns true if the Spec performs no conversion.
func (s Spec) IsZero() bool {
	return s.tag == "" && s.fn == nil
}

// Tag returns the registry tag of the Spec or an empty string for custom
// conversions.
func (s Spec) Tag() string {
	return s.tag
}

// String describes the Spec.
func (s Spec) String() string {
	switch {
	case s.fn != nil:
		return "custom"
	case s.tag != "":
		return s.tag
	default:
		return "none"
	}
}

// Apply converts the value. The zero Spec returns the value unchanged.
func (s Spec) Apply(value string) (any, error) {
	if s.fn != nil {
		return s.fn(value)
	}

	if s.tag == "" {
		return value, nil
	}

	fn, found := Lookup(s.tag)
	if !found {
		return nil, fmt.Errorf("%w %q", ErrUnknownConversion, s.tag)
	}

	return fn(value)
}

// Bool accepts 0, no, false, 1, yes, and true in any case.
func Bool(value string) (any, error) {
	switch strings.ToLower(value) {
	case "0", "no", "false":
		return false, nil
	case "1", "yes", "true":
		return true, nil
	}
	return nil, fmt.Errorf("%w, but %q not in 0, 1, no, yes, false, true", ErrNotBool, value)
}

// Int parses a base 10 integer and returns an int.
func Int(value string) (any, error) {
	return strconv.Atoi(strings.TrimSpace(value))
}

// Float parses a floating point number and returns a float64.
func Float(value string) (any, error) {
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}

// Time parses a date and time in nearly any common format and returns a
// time.Time.
func Time(value string) (any, error) {
	return dateparse.ParseAny(value)
}

// Semver parses a semantic version and returns a *semver.Version.
func Semver(value string) (any, error) {
	return semver.NewVersion(strings.TrimSpace(value))
}

// Addresses parses a comma-separated list of email addresses and returns an
// addr.AddressList.
func Addresses(value string) (any, error) {
	return addr.ParseEmailAddressList(value)
}
