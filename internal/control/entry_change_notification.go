package control

import "github.com/obaldap/ldapcodec/internal/ber"

// EntryChangeNotificationOID is the OID for the Entry Change Notification
// control (RFC 4528), attached to SearchResultEntry responses of a
// persistent search to describe what changed.
const EntryChangeNotificationOID = "2.16.840.1.113730.3.4.7"

// ChangeType mirrors the persistent-search changeType ENUMERATED values.
type ChangeType int64

const (
	ChangeTypeAdd    ChangeType = 1
	ChangeTypeDelete ChangeType = 2
	ChangeTypeModify ChangeType = 4
	ChangeTypeModDN  ChangeType = 8
)

// EntryChangeNotification is the control value:
//
//	EntryChangeNotification ::= SEQUENCE {
//	    changeType       ENUMERATED { ... },
//	    previousDN       LDAPDN OPTIONAL,
//	    changeNumber     INTEGER OPTIONAL
//	}
type EntryChangeNotification struct {
	ChangeType   ChangeType
	PreviousDN   string
	HasChangeNum bool
	ChangeNumber int64
}

var entryChangeNotificationEntry = Entry{
	OID:     EntryChangeNotificationOID,
	HasBody: true,
	Decode:  decodeEntryChangeNotification,
	Encode:  encodeEntryChangeNotification,
}

func decodeEntryChangeNotification(value []byte) (any, error) {
	d := ber.NewBERDecoder(value)
	sub, err := d.ReadSequenceContents()
	if err != nil {
		return nil, err
	}
	changeType, err := sub.ReadEnumerated()
	if err != nil {
		return nil, err
	}
	ecn := &EntryChangeNotification{ChangeType: ChangeType(changeType)}

	if sub.Remaining() > 0 {
		class, _, number, err := sub.PeekTag()
		if err == nil && class == ber.ClassUniversal && number == ber.TagOctetString {
			dnBytes, err := sub.ReadOctetString()
			if err != nil {
				return nil, err
			}
			ecn.PreviousDN = string(dnBytes)
		}
	}
	if sub.Remaining() > 0 {
		n, err := sub.ReadInteger()
		if err != nil {
			return nil, err
		}
		ecn.HasChangeNum = true
		ecn.ChangeNumber = n
	}

	return ecn, nil
}

func encodeEntryChangeNotification(payload any) ([]byte, error) {
	ecn, ok := payload.(*EntryChangeNotification)
	if !ok {
		ecn = &EntryChangeNotification{}
	}
	e := ber.NewBEREncoder(32)
	pos := e.BeginSequence()
	if err := e.WriteEnumerated(int64(ecn.ChangeType)); err != nil {
		return nil, err
	}
	if ecn.PreviousDN != "" {
		if err := e.WriteOctetString([]byte(ecn.PreviousDN)); err != nil {
			return nil, err
		}
	}
	if ecn.HasChangeNum {
		if err := e.WriteInteger(ecn.ChangeNumber); err != nil {
			return nil, err
		}
	}
	if err := e.EndSequence(pos); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}
