package control

// ManageDsaITOID is the OID for the ManageDsaIT control (RFC 3296), which
// tells the server to treat referral/alias entries as ordinary entries
// rather than following or dereferencing them. It carries no value.
const ManageDsaITOID = "2.16.840.1.113730.3.4.2"

var manageDsaITEntry = Entry{
	OID:     ManageDsaITOID,
	HasBody: false,
}
