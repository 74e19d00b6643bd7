package schema

// Syntax is one ldapSyntaxes definition (RFC 4512 §4.1.5): an OID naming a
// value format, with its human-readable description. The codec attaches no
// validation behavior to a syntax; it only cares which syntaxes hold
// binary rather than textual values (see collaborator.go).
type Syntax struct {
	OID  string
	Desc string
}

// Well-known RFC 4517 syntax OIDs referenced by the built-in definitions.
const (
	SyntaxBitString       = "1.3.6.1.4.1.1466.115.121.1.6"
	SyntaxBoolean         = "1.3.6.1.4.1.1466.115.121.1.7"
	SyntaxDN              = "1.3.6.1.4.1.1466.115.121.1.12"
	SyntaxDirectoryString = "1.3.6.1.4.1.1466.115.121.1.15"
	SyntaxGeneralizedTime = "1.3.6.1.4.1.1466.115.121.1.24"
	SyntaxIA5String       = "1.3.6.1.4.1.1466.115.121.1.26"
	SyntaxInteger         = "1.3.6.1.4.1.1466.115.121.1.27"
	SyntaxNumericString   = "1.3.6.1.4.1.1466.115.121.1.36"
	SyntaxOID             = "1.3.6.1.4.1.1466.115.121.1.38"
	SyntaxOctetString     = "1.3.6.1.4.1.1466.115.121.1.40"
	SyntaxPrintableString = "1.3.6.1.4.1.1466.115.121.1.44"
	SyntaxTelephoneNumber = "1.3.6.1.4.1.1466.115.121.1.50"
	SyntaxUUID            = "1.3.6.1.1.16.1"
)
