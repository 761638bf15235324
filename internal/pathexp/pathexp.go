// Package pathexp builds the JSONPath-like addresses that key matching rules
// and generators. Addresses compose left to right:
//
//	$            document root
//	.name        field whose name is a bare identifier
//	['a b']      any other field name
//	[3]          concrete array index
//	[*]          every element of an array
//	.*           every key of an object
//
// All functions are total and do not validate field names.
package pathexp

import "strconv"

// Root is the document root symbol.
const Root = "$"

// Wildcard is the array segment that applies to every element.
const Wildcard = "[*]"

// AnyKeySegment is the object segment that applies to every key.
const AnyKeySegment = ".*"

// IsIdentifier reports whether name matches [A-Za-z_][A-Za-z0-9_]*.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// FieldSegment renders the segment for a single field access.
func FieldSegment(name string) string {
	if IsIdentifier(name) {
		return "." + name
	}
	return "['" + name + "']"
}

// Field appends a field access to parent.
func Field(parent, name string) string { return parent + FieldSegment(name) }

// IndexSegment renders an array segment. With wildcard set it is always [*];
// otherwise the index is length-1+offset. Offset 1 addresses the element about
// to be appended, offset 0 the element appended last.
func IndexSegment(wildcard bool, length, offset int) string {
	if wildcard {
		return Wildcard
	}
	return "[" + strconv.Itoa(length-1+offset) + "]"
}

// Index appends an array segment to parent.
func Index(parent string, wildcard bool, length, offset int) string {
	return parent + IndexSegment(wildcard, length, offset)
}

// AnyKey appends the every-key segment to parent.
func AnyKey(parent string) string { return parent + AnyKeySegment }

// Rebase prefixes a relative address with root.
func Rebase(root, addr string) string { return root + addr }
