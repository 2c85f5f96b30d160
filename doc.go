// Package limbs reads and writes limbs files: like MIME, but simpler. A limbs
// file is a simple, human-readable flat file with a header composed of fields
// followed by an optional body of arbitrary bytes. It works well for keeping
// a little metadata next to a large blob of data that would be painful to
// edit if it were embedded in something like JSON.
//
//	Title: My Data Set
//	Description: The description spans multiple lines
//	  by indenting each continuation line.
//	Verbose: yes
//
//	...raw body bytes follow the blank line...
//
// The general format is the same as that of internet messages, but with a few
// differences. The header is always UTF-8. CRLF line breaks in the header are
// read as LF and only LF is written. The body is never interpreted: it is
// handed over as a byte stream on read and copied out verbatim on write.
//
// Field names are mangled into identifiers when read: surrounding whitespace
// and dashes are stripped, dashes become underscores, and the result is
// lowercased, so "Field-One" becomes "field_one". If the result is a reserved
// word, an underscore is appended. Names that do not mangle into an
// identifier are an error. On write, the mangling is reversed as far as it
// can be: "field_one" becomes "Field-One". See package name for the details.
//
// Values are strings, unless a conversion is registered for the field. See
// package convert for the conversions available.
//
// The primary API is Load, LoadInto, Loads, Dump, and Dumps. Records may be a
// *Record, a map[string]any, a pointer to a struct, or any type implementing
// the capability interfaces FieldSetter and FieldLister.
package limbs
