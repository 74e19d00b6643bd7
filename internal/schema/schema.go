package schema

import "strings"

// Schema is the registry of attribute types, object classes, matching
// rules and syntaxes. Every definition is indexed under its OID and under
// each of its names, all lower-cased, so lookups are case-insensitive and
// alias-aware in one map access — attribute descriptions on the wire
// ("CN", "commonName", "2.5.4.3") all resolve to the same definition.
//
// A Schema is populated once (LoadDefaultSchema, or Add* calls at startup)
// and read-only afterwards; it has no internal locking.
type Schema struct {
	attributes map[string]*AttributeType
	classes    map[string]*ObjectClass
	rules      map[string]*MatchingRule
	syntaxes   map[string]*Syntax
}

// NewSchema returns an empty registry.
func NewSchema() *Schema {
	return &Schema{
		attributes: make(map[string]*AttributeType),
		classes:    make(map[string]*ObjectClass),
		rules:      make(map[string]*MatchingRule),
		syntaxes:   make(map[string]*Syntax),
	}
}

// maxSupHops bounds Sup-chain walks so a cyclic set of definitions cannot
// loop an Effective* or MustAttributes call forever.
const maxSupHops = 16

func lookupKey(s string) string {
	return strings.ToLower(s)
}

// AddAttribute registers at under its OID and every name.
func (s *Schema) AddAttribute(at *AttributeType) {
	if at.OID != "" {
		s.attributes[lookupKey(at.OID)] = at
	}
	for _, name := range at.Names {
		s.attributes[lookupKey(name)] = at
	}
}

// AddClass registers oc under its OID and every name.
func (s *Schema) AddClass(oc *ObjectClass) {
	if oc.OID != "" {
		s.classes[lookupKey(oc.OID)] = oc
	}
	for _, name := range oc.Names {
		s.classes[lookupKey(name)] = oc
	}
}

// AddRule registers mr under its OID and every name.
func (s *Schema) AddRule(mr *MatchingRule) {
	if mr.OID != "" {
		s.rules[lookupKey(mr.OID)] = mr
	}
	for _, name := range mr.Names {
		s.rules[lookupKey(name)] = mr
	}
}

// AddSyntax registers syn under its OID.
func (s *Schema) AddSyntax(syn *Syntax) {
	if syn.OID != "" {
		s.syntaxes[lookupKey(syn.OID)] = syn
	}
}

// LookupAttribute resolves an attribute type by any of its names or its
// OID, case-insensitively. Nil if unknown.
func (s *Schema) LookupAttribute(nameOrOID string) *AttributeType {
	return s.attributes[lookupKey(nameOrOID)]
}

// LookupClass resolves an object class by any of its names or its OID,
// case-insensitively. Nil if unknown.
func (s *Schema) LookupClass(nameOrOID string) *ObjectClass {
	return s.classes[lookupKey(nameOrOID)]
}

// LookupRule resolves a matching rule by any of its names or its OID,
// case-insensitively. Nil if unknown.
func (s *Schema) LookupRule(nameOrOID string) *MatchingRule {
	return s.rules[lookupKey(nameOrOID)]
}

// LookupSyntax resolves a syntax by OID. Nil if unknown.
func (s *Schema) LookupSyntax(oid string) *Syntax {
	return s.syntaxes[lookupKey(oid)]
}

// EffectiveSyntax returns the syntax OID governing the named attribute,
// walking the Sup chain when the definition itself carries no SYNTAX
// clause (cn SUP name resolves to name's Directory String). Empty if the
// attribute is unknown or nothing along the chain names a syntax.
func (s *Schema) EffectiveSyntax(nameOrOID string) string {
	at := s.LookupAttribute(nameOrOID)
	for hops := 0; at != nil && hops < maxSupHops; hops++ {
		if at.Syntax != "" {
			return at.Syntax
		}
		if at.Sup == "" {
			break
		}
		at = s.LookupAttribute(at.Sup)
	}
	return ""
}

// EffectiveEquality returns the equality matching rule governing the named
// attribute, walking the Sup chain like EffectiveSyntax.
func (s *Schema) EffectiveEquality(nameOrOID string) string {
	at := s.LookupAttribute(nameOrOID)
	for hops := 0; at != nil && hops < maxSupHops; hops++ {
		if at.Equality != "" {
			return at.Equality
		}
		if at.Sup == "" {
			break
		}
		at = s.LookupAttribute(at.Sup)
	}
	return ""
}

// supChain returns the named class followed by its superiors, nearest
// first, bounded by maxSupHops.
func (s *Schema) supChain(nameOrOID string) []*ObjectClass {
	var chain []*ObjectClass
	oc := s.LookupClass(nameOrOID)
	for hops := 0; oc != nil && hops < maxSupHops; hops++ {
		chain = append(chain, oc)
		if oc.Sup == "" {
			break
		}
		oc = s.LookupClass(oc.Sup)
	}
	return chain
}

// MustAttributes returns every attribute the named class requires,
// including those inherited from its superiors, root-most class first.
func (s *Schema) MustAttributes(classNameOrOID string) []string {
	return s.collectClassAttrs(classNameOrOID, func(oc *ObjectClass) []string { return oc.Must })
}

// MayAttributes returns every attribute the named class permits beyond its
// required ones, including inherited entries, root-most class first.
func (s *Schema) MayAttributes(classNameOrOID string) []string {
	return s.collectClassAttrs(classNameOrOID, func(oc *ObjectClass) []string { return oc.May })
}

func (s *Schema) collectClassAttrs(classNameOrOID string, pick func(*ObjectClass) []string) []string {
	chain := s.supChain(classNameOrOID)

	var out []string
	for i := len(chain) - 1; i >= 0; i-- {
		for _, attr := range pick(chain[i]) {
			if !containsFold(out, attr) {
				out = append(out, attr)
			}
		}
	}
	return out
}

func containsFold(list []string, want string) bool {
	for _, have := range list {
		if strings.EqualFold(have, want) {
			return true
		}
	}
	return false
}
