package schema

// binarySyntaxOIDs lists the well-known RFC 4517 syntax OIDs whose values
// are binary rather than human-readable text. An attribute whose syntax OID
// is not in this set is treated as text by default.
var binarySyntaxOIDs = map[string]bool{
	SyntaxOctetString:               true,
	SyntaxBitString:                 true,
	"1.3.6.1.4.1.1466.115.121.1.5":  true, // Binary
	"1.3.6.1.4.1.1466.115.121.1.8":  true, // Certificate
	"1.3.6.1.4.1.1466.115.121.1.9":  true, // Certificate List
	"1.3.6.1.4.1.1466.115.121.1.10": true, // Certificate Pair
	"1.3.6.1.4.1.1466.115.121.1.28": true, // JPEG
}

// CanonicalAttributeName resolves nameOrOID against s's attribute-type
// registry and returns its canonical (primary) name. Unknown attributes are
// returned unchanged: the codec must not fail to decode an entry just
// because the schema doesn't recognize one of its attributes.
func CanonicalAttributeName(s *Schema, nameOrOID string) string {
	if s == nil {
		return nameOrOID
	}
	at := s.LookupAttribute(nameOrOID)
	if at == nil {
		return nameOrOID
	}
	return at.Name()
}

// IsBinarySyntax reports whether nameOrOID's attribute type (per s) uses a
// binary syntax, per RFC 4517's standard syntax OID table. The syntax is
// resolved along the attribute's SUP chain; an attribute with no
// registered type, or whose effective syntax is not registered as binary,
// classifies as text by default.
func IsBinarySyntax(s *Schema, nameOrOID string) bool {
	if s == nil {
		return false
	}
	return binarySyntaxOIDs[s.EffectiveSyntax(nameOrOID)]
}

// CanonicalAttributeName is the method form of the package-level function
// of the same name, letting *Schema satisfy internal/ldap's
// SchemaCollaborator interface without that package importing this one.
func (s *Schema) CanonicalAttributeName(nameOrOID string) string {
	return CanonicalAttributeName(s, nameOrOID)
}

// IsBinarySyntax is the method form of the package-level function of the
// same name, letting *Schema satisfy internal/ldap's SchemaCollaborator
// interface without that package importing this one.
func (s *Schema) IsBinarySyntax(nameOrOID string) bool {
	return IsBinarySyntax(s, nameOrOID)
}
