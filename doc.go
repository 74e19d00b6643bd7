// Package ldapcodec implements the LDAPv3 wire protocol (RFC 4511): a BER
// decoder and encoder for LDAPMessage PDUs, their operations, controls,
// and search filters, plus an RFC 4512 schema registry used to
// canonicalize attribute names and classify values as text or binary.
//
// # Decoding a stream
//
// Container accumulates bytes from a connection and decodes complete
// LDAPMessage PDUs as they become available, tolerating reads that split a
// PDU across chunks or deliver several PDUs at once:
//
//	container := ldapcodec.NewContainer()
//	for {
//	    n, _ := conn.Read(buf)
//	    messages, err := container.Feed(buf[:n])
//	    if err != nil {
//	        // fatal: the container requires Reset before further use
//	    }
//	    for _, msg := range messages {
//	        handle(msg)
//	    }
//	}
//
// # Decoding an operation
//
// A Dialect dispatches an LDAPMessage's operation to its typed request or
// response struct, and resolves control OIDs against a registry of typed
// control codecs:
//
//	dialect := ldapcodec.NewDialect()
//	op, err := dialect.DecodeOperation(msg.Operation)
//	switch req := op.(type) {
//	case *ldapcodec.BindRequest:
//	    // ...
//	case *ldapcodec.SearchRequest:
//	    // req.Filter is the root of the decoded filter tree
//	}
//
// # Encoding
//
// Every request/response struct has an Encode method producing its
// operation-content bytes; wrap the result in an LDAPMessage and call its
// own Encode to produce the full wire PDU:
//
//	data, _ := (&ldapcodec.BindResponse{LDAPResult: ldapcodec.NewSuccessResult()}).Encode()
//	msg := &ldapcodec.LDAPMessage{
//	    MessageID: requestID,
//	    Operation: &ldapcodec.RawOperation{Tag: ldapcodec.ApplicationBindResponse, Data: data},
//	}
//	wire, err := msg.Encode()
//
// # Schema-aware classification
//
// The schema subpackage is a registry of RFC 4512 attribute types and
// object classes. The codec never validates values against it; a Dialect
// built with NewDialectWithSchema consults a Schema for exactly two
// things: canonicalizing an attribute description to its registered name,
// and classifying its values as text or binary:
//
//	dialect := ldapcodec.NewDialectWithSchema(ldapcodec.LoadDefaultSchema())
//	entry := op.(*ldapcodec.SearchResultEntry)
//	perAttributeValues := dialect.ClassifyEntry(entry)
package ldapcodec
