// Package schema holds the slice of the RFC 4512 schema model the wire
// codec consumes: a registry of attribute types, object classes, matching
// rules and syntaxes, resolvable by OID or by any name,
// case-insensitively.
//
// The codec itself touches the registry through exactly two capabilities
// (see collaborator.go): canonicalizing an attribute description to its
// primary name, and classifying an attribute's values as text or binary by
// their effective syntax. Everything else — entry validation against
// object classes, schema enforcement, subschema publication — belongs to
// the layers above and is deliberately absent here.
//
// # Building a registry
//
// LoadDefaultSchema parses the built-in RFC 4512/4519/2798 definition
// tables:
//
//	s := schema.LoadDefaultSchema()
//	at := s.LookupAttribute("commonName") // the cn definition
//
// A custom registry is assembled from textual definitions or literal
// values:
//
//	s := schema.NewSchema()
//	s.AddAttribute(&schema.AttributeType{
//	    OID:    "1.2.3.4.5",
//	    Names:  []string{"myAttr"},
//	    Syntax: schema.SyntaxDirectoryString,
//	})
//
// # Inheritance
//
// Definitions are stored exactly as written; fields inherited through SUP
// (a syntax, a matching rule, a class's required attributes) are resolved
// on demand by the Schema's Effective*/MustAttributes/MayAttributes
// accessors rather than baked in at load time.
package schema
