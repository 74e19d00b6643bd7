// Package ldap implements LDAP protocol message parsing and encoding
// as specified in RFC 4511.
//
// # Message envelope
//
// Every PDU is an LDAPMessage envelope:
//
//	LDAPMessage ::= SEQUENCE {
//	    messageID       MessageID,
//	    protocolOp      CHOICE { ... },
//	    controls        [0] Controls OPTIONAL
//	}
//
// ParseLDAPMessage decodes one complete envelope, leaving the operation as
// a RawOperation (tag plus undecoded content bytes). For a byte stream
// where PDU boundaries fall anywhere, Container buffers reads and hands
// out envelopes as they complete.
//
// # Operations
//
// A Dialect dispatches a RawOperation to its typed request or response
// struct and carries the decode limits (filter nesting depth, PDU size)
// plus the control registry:
//
//	dialect := ldap.NewDialect()
//	op, err := dialect.DecodeOperation(msg.Operation)
//	switch req := op.(type) {
//	case *ldap.BindRequest:
//	    // req.Name, req.SimplePassword / req.SASLCredentials
//	case *ldap.SearchRequest:
//	    // req.Filter is the root of the decoded filter tree
//	}
//
// All twenty-one operation kinds of RFC 4511 §4.2 decode and encode;
// every Encode method produces the operation's content bytes, and the
// LDAPMessage envelope supplies the APPLICATION tag.
//
// DN-typed request fields (a bind name, a search base, the entry of an
// add/modify/compare/delete) are checked against the DN validator during
// the typed parse. DecodeRequestOperation turns such failures — and any
// other grammar violation on a request with a response form — into a
// ResponseCarryingError holding a ready-to-send error response.
//
// # Filters
//
// Search filters decode into a SearchFilter tree:
//
//	// (&(objectClass=person)(uid=alice))
//	filter := &ldap.SearchFilter{
//	    Type: ldap.FilterTagAnd,
//	    Children: []*ldap.SearchFilter{
//	        {Type: ldap.FilterTagEquality, Attribute: "objectClass", Value: []byte("person")},
//	        {Type: ldap.FilterTagEquality, Attribute: "uid", Value: []byte("alice")},
//	    },
//	}
//
// Substring ordering, non-empty and/or sets, and the nesting depth cap
// are enforced at decode time; a well-formed canonical input re-encodes
// byte for byte.
//
// # References
//
//   - RFC 4511: LDAP Protocol
//   - RFC 4514: String Representation of Distinguished Names
//   - RFC 4517: Syntaxes and Matching Rules
package ldap
