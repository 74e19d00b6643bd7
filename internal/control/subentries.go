package control

import "github.com/obaldap/ldapcodec/internal/ber"

// SubentriesOID is the OID for the Subentries control (RFC 3672), which
// carries a single BOOLEAN value selecting whether a search returns
// subentries or ordinary entries.
const SubentriesOID = "1.3.6.1.4.1.4203.1.10.1"

// Subentries is the control value: visibility of subentries in a search.
type Subentries struct {
	Visibility bool
}

var subentriesEntry = Entry{
	OID:     SubentriesOID,
	HasBody: true,
	Decode:  decodeSubentries,
	Encode:  encodeSubentries,
}

func decodeSubentries(value []byte) (any, error) {
	d := ber.NewBERDecoder(value)
	v, err := d.ReadBoolean()
	if err != nil {
		return nil, err
	}
	return &Subentries{Visibility: v}, nil
}

func encodeSubentries(payload any) ([]byte, error) {
	s, ok := payload.(*Subentries)
	if !ok {
		s = &Subentries{}
	}
	e := ber.NewBEREncoder(8)
	if err := e.WriteBoolean(s.Visibility); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}
