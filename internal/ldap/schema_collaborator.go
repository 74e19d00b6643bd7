// Package ldap implements LDAP protocol message parsing and encoding
// as specified in RFC 4511.
package ldap

// SchemaCollaborator is the only capability the codec consults from the
// schema subsystem: attribute-name canonicalization and
// syntax-binary-or-text classification. This package never imports that
// subsystem directly, so any type exposing these two methods
// (internal/schema's *Schema does, via its
// CanonicalAttributeName/IsBinarySyntax methods) can serve as one. A nil
// SchemaCollaborator is valid: every attribute name passes through
// unchanged and every value classifies as text.
type SchemaCollaborator interface {
	// CanonicalAttributeName resolves a possibly-aliased attribute
	// description to its primary name, or returns it unchanged if unknown.
	CanonicalAttributeName(nameOrOID string) string
	// IsBinarySyntax reports whether the named attribute's syntax is
	// binary rather than text.
	IsBinarySyntax(nameOrOID string) bool
}

// Value wraps a decoded attribute value together with the schema
// collaborator's text-or-binary hint. The codec itself never interprets
// Raw; Text is advisory for callers deciding how to render or log the
// value.
type Value struct {
	Raw  []byte
	Text bool
}

// ClassifyValues canonicalizes attrType against schema (if non-nil) and
// wraps each raw value with that schema's binary/text classification. With
// no schema collaborator available, canonicalization is a no-op and every
// value defaults to text.
func ClassifyValues(schema SchemaCollaborator, attrType string, values [][]byte) (canonicalType string, classified []Value) {
	canonicalType = attrType
	isBinary := false
	if schema != nil {
		canonicalType = schema.CanonicalAttributeName(attrType)
		isBinary = schema.IsBinarySyntax(canonicalType)
	}

	classified = make([]Value, len(values))
	for i, raw := range values {
		classified[i] = Value{Raw: raw, Text: !isBinary}
	}
	return canonicalType, classified
}

// ClassifyEntry canonicalizes every attribute's type name in place against
// this Dialect's configured Schema collaborator and returns the matching
// per-attribute classified values, indexed the same as entry.Attributes.
// With no Schema configured, entry's attribute names are left untouched
// and every value is classified as text.
func (d *Dialect) ClassifyEntry(entry *SearchResultEntry) [][]Value {
	result := make([][]Value, len(entry.Attributes))
	for i, attr := range entry.Attributes {
		canonical, values := ClassifyValues(d.Schema, attr.Type, attr.Values)
		entry.Attributes[i].Type = canonical
		result[i] = values
	}
	return result
}

// ClassifyAttribute canonicalizes a single AddRequest/ModifyRequest
// attribute's type name in place against this Dialect's Schema
// collaborator and returns its classified values.
func (d *Dialect) ClassifyAttribute(attr *Attribute) []Value {
	canonical, values := ClassifyValues(d.Schema, attr.Type, attr.Values)
	attr.Type = canonical
	return values
}
