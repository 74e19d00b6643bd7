// Package ldap implements LDAP protocol message parsing and encoding
// as specified in RFC 4511.
package ldap

import (
	"errors"

	"github.com/obaldap/ldapcodec/internal/ber"
	"github.com/obaldap/ldapcodec/internal/dn"
)

// SearchScope represents the scope of an LDAP search operation
type SearchScope int

const (
	// ScopeBaseObject searches only the base object
	ScopeBaseObject SearchScope = 0
	// ScopeSingleLevel searches one level below the base object
	ScopeSingleLevel SearchScope = 1
	// ScopeWholeSubtree searches the entire subtree
	ScopeWholeSubtree SearchScope = 2
)

// String returns the string representation of the search scope
func (s SearchScope) String() string {
	switch s {
	case ScopeBaseObject:
		return "BaseObject"
	case ScopeSingleLevel:
		return "SingleLevel"
	case ScopeWholeSubtree:
		return "WholeSubtree"
	default:
		return "Unknown"
	}
}

// DerefAliases represents how aliases should be dereferenced during search
type DerefAliases int

const (
	// DerefNever never dereferences aliases
	DerefNever DerefAliases = 0
	// DerefInSearching dereferences aliases when searching subordinates
	DerefInSearching DerefAliases = 1
	// DerefFindingBaseObj dereferences aliases when finding the base object
	DerefFindingBaseObj DerefAliases = 2
	// DerefAlways always dereferences aliases
	DerefAlways DerefAliases = 3
)

// String returns the string representation of the deref aliases setting
func (d DerefAliases) String() string {
	switch d {
	case DerefNever:
		return "NeverDerefAliases"
	case DerefInSearching:
		return "DerefInSearching"
	case DerefFindingBaseObj:
		return "DerefFindingBaseObj"
	case DerefAlways:
		return "DerefAlways"
	default:
		return "Unknown"
	}
}

// SearchRequest represents an LDAP Search Request
// SearchRequest ::= [APPLICATION 3] SEQUENCE {
//
//	baseObject      LDAPDN,
//	scope           ENUMERATED { baseObject(0), singleLevel(1), wholeSubtree(2) },
//	derefAliases    ENUMERATED { neverDerefAliases(0), derefInSearching(1),
//	                             derefFindingBaseObj(2), derefAlways(3) },
//	sizeLimit       INTEGER (0 .. maxInt),
//	timeLimit       INTEGER (0 .. maxInt),
//	typesOnly       BOOLEAN,
//	filter          Filter,
//	attributes      AttributeSelection
//
// }
type SearchRequest struct {
	// BaseObject is the base DN for the search
	BaseObject string
	// Scope is the search scope
	Scope SearchScope
	// DerefAliases specifies how aliases should be dereferenced
	DerefAliases DerefAliases
	// SizeLimit is the maximum number of entries to return (0 = no limit)
	SizeLimit int
	// TimeLimit is the maximum time in seconds (0 = no limit)
	TimeLimit int
	// TypesOnly if true, only attribute types are returned (no values)
	TypesOnly bool
	// Filter is the root of the search filter tree
	Filter *SearchFilter
	// Attributes is the list of attributes to return (empty = all user attributes)
	Attributes []string
}

// Errors for SearchRequest parsing
var (
	// ErrInvalidSearchScope is returned when the search scope is invalid
	ErrInvalidSearchScope = errors.New("ldap: invalid search scope")
	// ErrInvalidDerefAliases is returned when the deref aliases value is invalid
	ErrInvalidDerefAliases = errors.New("ldap: invalid deref aliases value")
)

// ParseSearchRequest parses a SearchRequest from raw operation data, using
// the default maximum filter nesting depth.
func ParseSearchRequest(data []byte) (*SearchRequest, error) {
	return ParseSearchRequestWithLimits(data, DefaultMaxFilterDepth)
}

// ParseSearchRequestWithLimits parses a SearchRequest, rejecting filter
// trees nested deeper than maxFilterDepth.
func ParseSearchRequestWithLimits(data []byte, maxFilterDepth int) (*SearchRequest, error) {
	if len(data) == 0 {
		return nil, NewParseError(0, "empty search request data", nil)
	}

	decoder := ber.NewBERDecoder(data)
	req := &SearchRequest{}

	// Read baseObject (LDAPDN - OCTET STRING)
	baseBytes, err := decoder.ReadOctetString()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read baseObject", err)
	}
	req.BaseObject = string(baseBytes)
	if err := dn.Validate(req.BaseObject); err != nil {
		return nil, NewInvalidDNError(decoder.Offset(), "baseObject", err)
	}

	// Read scope (ENUMERATED)
	scope, err := decoder.ReadEnumerated()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read scope", err)
	}
	if scope < 0 || scope > 2 {
		return nil, NewStructuralError(decoder.Offset(), "scope out of range", ErrInvalidSearchScope)
	}
	req.Scope = SearchScope(scope)

	// Read derefAliases (ENUMERATED)
	deref, err := decoder.ReadEnumerated()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read derefAliases", err)
	}
	if deref < 0 || deref > 3 {
		return nil, NewStructuralError(decoder.Offset(), "derefAliases out of range", ErrInvalidDerefAliases)
	}
	req.DerefAliases = DerefAliases(deref)

	// Read sizeLimit (INTEGER)
	sizeLimit, err := decoder.ReadInteger()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read sizeLimit", err)
	}
	req.SizeLimit = int(sizeLimit)

	// Read timeLimit (INTEGER)
	timeLimit, err := decoder.ReadInteger()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read timeLimit", err)
	}
	req.TimeLimit = int(timeLimit)

	// Read typesOnly (BOOLEAN)
	typesOnly, err := decoder.ReadBoolean()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read typesOnly", err)
	}
	req.TypesOnly = typesOnly

	// Read filter (context-specific tagged, recursive)
	filter, err := parseSearchFilter(decoder, 0, maxFilterDepth)
	if err != nil {
		return nil, err
	}
	req.Filter = filter

	// Read attributes (SEQUENCE OF AttributeDescription). A single empty
	// attribute description (04 00) is legal here on decode; it is dropped
	// again on re-encode. Trailing bytes after the attribute list (zero
	// padding in the wild) are left unconsumed and ignored.
	attrsDecoder, err := decoder.ReadSequenceContents()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read attributes sequence", err)
	}

	var attributes []string
	for attrsDecoder.Remaining() > 0 {
		attrBytes, err := attrsDecoder.ReadOctetString()
		if err != nil {
			return nil, NewParseError(attrsDecoder.Offset(), "failed to read attribute", err)
		}
		attributes = append(attributes, string(attrBytes))
	}
	req.Attributes = attributes

	return req, nil
}

// Encode encodes the SearchRequest to BER format (without the APPLICATION
// tag). Attribute descriptions that decoded as the empty string are
// dropped rather than round-tripped: an empty descriptor is legal on the
// wire but selects nothing, so the canonical re-encoding omits it.
func (r *SearchRequest) Encode() ([]byte, error) {
	encoder := ber.NewBEREncoder(256)

	if err := encoder.WriteOctetString([]byte(r.BaseObject)); err != nil {
		return nil, err
	}
	if err := encoder.WriteEnumerated(int64(r.Scope)); err != nil {
		return nil, err
	}
	if err := encoder.WriteEnumerated(int64(r.DerefAliases)); err != nil {
		return nil, err
	}
	if err := encoder.WriteInteger(int64(r.SizeLimit)); err != nil {
		return nil, err
	}
	if err := encoder.WriteInteger(int64(r.TimeLimit)); err != nil {
		return nil, err
	}
	if err := encoder.WriteBoolean(r.TypesOnly); err != nil {
		return nil, err
	}

	if r.Filter == nil {
		return nil, ErrInvalidFilter
	}
	if err := r.Filter.Encode(encoder); err != nil {
		return nil, err
	}

	attrPos := encoder.BeginSequence()
	for _, attr := range r.Attributes {
		if attr == "" {
			continue
		}
		if err := encoder.WriteOctetString([]byte(attr)); err != nil {
			return nil, err
		}
	}
	if err := encoder.EndSequence(attrPos); err != nil {
		return nil, err
	}

	return encoder.Bytes(), nil
}
