// Package control implements the generic LDAP control envelope and a
// registry that dispatches an opaque control value to a typed decoder by
// OID, per RFC 4511 §4.1.11.
//
// The registry is a mapping from OID to a capability triple (decode,
// encode, has-body) rather than a type hierarchy, so new controls can be
// registered at startup without touching the envelope codec.
package control

// Decoder turns a control's raw value bytes into a typed payload.
// Registry.DecodeValue passes it whatever value bytes it is given, empty
// included; flag controls with no value body register no Decoder.
type Decoder func(value []byte) (any, error)

// Encoder turns a typed payload back into the control's raw value bytes.
type Encoder func(payload any) ([]byte, error)

// Entry is the registered capability triple for one control OID.
type Entry struct {
	OID     string
	Decode  Decoder
	Encode  Encoder
	HasBody bool // false for flag controls that never carry a value
}

// Registry maps control OIDs to their typed codec.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// NewDefaultRegistry returns a registry pre-populated with the control
// types this module implements: ManageDsaIT, Subentries, PagedResults and
// EntryChangeNotification.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(manageDsaITEntry)
	r.Register(subentriesEntry)
	r.Register(pagedResultsEntry)
	r.Register(entryChangeNotificationEntry)
	return r
}

// Register adds or replaces the entry for e.OID.
func (r *Registry) Register(e Entry) {
	r.entries[e.OID] = e
}

// Lookup returns the entry registered for oid, if any.
func (r *Registry) Lookup(oid string) (Entry, bool) {
	e, ok := r.entries[oid]
	return e, ok
}

// DecodeValue decodes value using the typed decoder registered for oid. If
// no decoder is registered, the value passes through unchanged as opaque
// bytes.
func (r *Registry) DecodeValue(oid string, value []byte) (any, error) {
	e, ok := r.Lookup(oid)
	if !ok || e.Decode == nil {
		return value, nil
	}
	return e.Decode(value)
}
