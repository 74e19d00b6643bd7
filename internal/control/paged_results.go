package control

import (
	"github.com/obaldap/ldapcodec/internal/ber"
)

// PagedResultsOID is the OID for the Simple Paged Results Control (RFC 2696).
const PagedResultsOID = "1.2.840.113556.1.4.319"

// PagedResults is the control value:
//
//	realSearchControlValue ::= SEQUENCE {
//	    size    INTEGER (0..maxInt),
//	    cookie  OCTET STRING
//	}
//
// Size is the requested page size (client) or estimated total count
// (server); Cookie is an opaque pagination cursor.
type PagedResults struct {
	Size   int32
	Cookie []byte
}

var pagedResultsEntry = Entry{
	OID:     PagedResultsOID,
	HasBody: true,
	Decode:  decodePagedResults,
	Encode:  encodePagedResults,
}

func decodePagedResults(value []byte) (any, error) {
	if len(value) == 0 {
		return &PagedResults{}, nil
	}
	d := ber.NewBERDecoder(value)
	sub, err := d.ReadSequenceContents()
	if err != nil {
		return nil, err
	}
	size, err := sub.ReadInteger()
	if err != nil {
		return nil, err
	}
	cookie, err := sub.ReadOctetString()
	if err != nil {
		return nil, err
	}
	return &PagedResults{Size: int32(size), Cookie: cookie}, nil
}

func encodePagedResults(payload any) ([]byte, error) {
	p, ok := payload.(*PagedResults)
	if !ok {
		p = &PagedResults{}
	}
	e := ber.NewBEREncoder(32)
	pos := e.BeginSequence()
	if err := e.WriteInteger(int64(p.Size)); err != nil {
		return nil, err
	}
	if err := e.WriteOctetString(p.Cookie); err != nil {
		return nil, err
	}
	if err := e.EndSequence(pos); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}
