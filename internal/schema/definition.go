package schema

// Usage classifies an attribute type per RFC 4512 §2.5: user attributes
// versus the three flavors of operational attribute.
type Usage int

const (
	// UsageUserApplications marks an ordinary user attribute.
	UsageUserApplications Usage = iota
	// UsageDirectoryOperation marks a server-maintained operational
	// attribute (createTimestamp, entryUUID, ...).
	UsageDirectoryOperation
	// UsageDistributedOperation marks an operational attribute shared
	// between cooperating servers.
	UsageDistributedOperation
	// UsageDSAOperation marks an operational attribute local to one server.
	UsageDSAOperation
)

func (u Usage) String() string {
	switch u {
	case UsageUserApplications:
		return "userApplications"
	case UsageDirectoryOperation:
		return "directoryOperation"
	case UsageDistributedOperation:
		return "distributedOperation"
	case UsageDSAOperation:
		return "dSAOperation"
	}
	return "unknown"
}

// Operational reports whether the usage marks an operational attribute.
func (u Usage) Operational() bool {
	return u != UsageUserApplications
}

// AttributeType is one attributeTypes definition (RFC 4512 §4.1.2). The
// first entry of Names is the canonical name; the rest are aliases. Fields
// left empty may be inherited along the Sup chain — the Schema's
// Effective* accessors resolve that, the definition itself stays as
// written.
type AttributeType struct {
	OID                string
	Names              []string
	Desc               string
	Sup                string
	Equality           string
	Ordering           string
	Substr             string
	Syntax             string
	SingleValue        bool
	Collective         bool
	NoUserModification bool
	Obsolete           bool
	Usage              Usage
}

// Name returns the canonical name, falling back to the OID for a
// definition with no NAME clause.
func (at *AttributeType) Name() string {
	if len(at.Names) > 0 {
		return at.Names[0]
	}
	return at.OID
}

// Kind is an object class's category (RFC 4512 §2.4).
type Kind int

const (
	KindAbstract Kind = iota
	KindStructural
	KindAuxiliary
)

func (k Kind) String() string {
	switch k {
	case KindAbstract:
		return "ABSTRACT"
	case KindStructural:
		return "STRUCTURAL"
	case KindAuxiliary:
		return "AUXILIARY"
	}
	return "UNKNOWN"
}

// ObjectClass is one objectClasses definition (RFC 4512 §4.1.1). Must and
// May list only this definition's own attributes; the Schema's
// MustAttributes/MayAttributes fold in the Sup chain.
type ObjectClass struct {
	OID      string
	Names    []string
	Desc     string
	Sup      string
	Kind     Kind
	Must     []string
	May      []string
	Obsolete bool
}

// Name returns the canonical name, falling back to the OID.
func (oc *ObjectClass) Name() string {
	if len(oc.Names) > 0 {
		return oc.Names[0]
	}
	return oc.OID
}

// Allows reports whether attr appears in this class's own MUST or MAY
// list (not counting inherited classes), compared case-insensitively.
func (oc *ObjectClass) Allows(attr string) bool {
	return containsFold(oc.Must, attr) || containsFold(oc.May, attr)
}

// MatchingRule is one matchingRules definition (RFC 4512 §4.1.3).
type MatchingRule struct {
	OID      string
	Names    []string
	Desc     string
	Syntax   string
	Obsolete bool
}

// Name returns the canonical name, falling back to the OID.
func (mr *MatchingRule) Name() string {
	if len(mr.Names) > 0 {
		return mr.Names[0]
	}
	return mr.OID
}
