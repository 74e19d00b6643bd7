// Package ldap implements LDAP protocol message parsing and encoding
// as specified in RFC 4511.
package ldap

import (
	"errors"

	"github.com/obaldap/ldapcodec/internal/ber"
)

// DefaultMaxFilterDepth bounds search filter recursion so a pathological
// PDU cannot drive the decoder into unbounded stack growth.
const DefaultMaxFilterDepth = 100

// Filter tag numbers (context-specific) per RFC 4511
const (
	FilterTagAnd             = 0 // [0] SET OF filter
	FilterTagOr              = 1 // [1] SET OF filter
	FilterTagNot             = 2 // [2] Filter
	FilterTagEquality        = 3 // [3] AttributeValueAssertion
	FilterTagSubstrings      = 4 // [4] SubstringFilter
	FilterTagGreaterOrEqual  = 5 // [5] AttributeValueAssertion
	FilterTagLessOrEqual     = 6 // [6] AttributeValueAssertion
	FilterTagPresent         = 7 // [7] AttributeDescription
	FilterTagApproxMatch     = 8 // [8] AttributeValueAssertion
	FilterTagExtensibleMatch = 9 // [9] MatchingRuleAssertion
)

// Substring filter component tags
const (
	SubstringInitial = 0 // [0] initial
	SubstringAny     = 1 // [1] any
	SubstringFinal   = 2 // [2] final
)

// Extensible match component tags
const (
	ExtMatchMatchingRule = 1 // [1] matchingRule
	ExtMatchType         = 2 // [2] type
	ExtMatchMatchValue   = 3 // [3] matchValue
	ExtMatchDNAttributes = 4 // [4] dnAttributes
)

// SearchFilter is the root of a recursively decoded search filter tree: a
// tagged sum represented as one struct carrying only the fields its Type
// uses rather than as an interface hierarchy or a separate type per
// variant.
type SearchFilter struct {
	// Type is the filter type tag (one of the FilterTag* constants)
	Type int
	// Attribute is the attribute name (for comparison filters)
	Attribute string
	// Value is the assertion value (for comparison filters)
	Value []byte
	// Children contains sub-filters (for AND/OR); always non-empty
	Children []*SearchFilter
	// Child contains the negated filter (for NOT)
	Child *SearchFilter
	// Substrings contains substring components (for substring filter)
	Substrings *SubstringComponents
	// ExtensibleMatch contains extensible match components
	ExtensibleMatch *ExtensibleMatchComponents
}

// SubstringComponents represents the components of a substring filter.
// The ordering and non-emptiness invariants are enforced at decode time,
// not here: by the time a SubstringComponents value exists, it is already
// known to satisfy them.
type SubstringComponents struct {
	// Initial is the initial substring (before the first *), if any
	Initial []byte
	// Any contains the interior substrings (between *s), in order
	Any [][]byte
	// Final is the final substring (after the last *), if any
	Final []byte
}

// ExtensibleMatchComponents represents the components of an extensible
// match filter. At least one of MatchingRule and Type is always present.
type ExtensibleMatchComponents struct {
	// MatchingRule is the OID of the matching rule (optional)
	MatchingRule string
	// Type is the attribute type (optional)
	Type string
	// MatchValue is the assertion value
	MatchValue []byte
	// DNAttributes if true, also match against DN attributes
	DNAttributes bool
}

// Errors for filter parsing
var (
	// ErrInvalidFilter is returned when the filter is malformed
	ErrInvalidFilter = errors.New("ldap: invalid search filter")
	// ErrInvalidSubstringFilter is returned when a substring filter is malformed
	ErrInvalidSubstringFilter = errors.New("ldap: invalid substring filter")
	// ErrEmptyFilterSet is returned when an And/Or filter has no children
	ErrEmptyFilterSet = errors.New("ldap: and/or filter must have at least one child")
	// ErrEmptyExtensibleMatch is returned when neither matchingRule nor
	// type is present on an extensible match filter
	ErrEmptyExtensibleMatch = errors.New("ldap: extensible match requires matchingRule or type")
)

// parseSearchFilter parses a search filter from the decoder, enforcing the
// RFC 4511 §4.5.1 structural constraints and the configured recursion
// depth limit.
func parseSearchFilter(decoder *ber.BERDecoder, depth, maxDepth int) (*SearchFilter, error) {
	if depth > maxDepth {
		return nil, NewDepthExceededError(decoder.Offset(), "filter nesting exceeds configured maximum")
	}

	tagNum, constructed, filterData, err := decoder.ReadTaggedValue()
	if err != nil {
		return nil, err
	}

	filter := &SearchFilter{Type: tagNum}

	switch tagNum {
	case FilterTagAnd, FilterTagOr:
		if !constructed {
			return nil, NewStructuralError(decoder.Offset(), "AND/OR filter must be constructed", ErrInvalidFilter)
		}
		subDecoder := ber.NewBERDecoder(filterData)
		var children []*SearchFilter
		for subDecoder.Remaining() > 0 {
			child, err := parseSearchFilter(subDecoder, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if len(children) == 0 {
			return nil, NewStructuralError(decoder.Offset(), "AND/OR filter has no children", ErrEmptyFilterSet)
		}
		filter.Children = children

	case FilterTagNot:
		if !constructed {
			return nil, NewStructuralError(decoder.Offset(), "NOT filter must be constructed", ErrInvalidFilter)
		}
		subDecoder := ber.NewBERDecoder(filterData)
		child, err := parseSearchFilter(subDecoder, depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		filter.Child = child

	case FilterTagEquality, FilterTagGreaterOrEqual, FilterTagLessOrEqual, FilterTagApproxMatch:
		// AttributeValueAssertion ::= SEQUENCE { attributeDesc, assertionValue }
		if !constructed {
			return nil, NewStructuralError(decoder.Offset(), "comparison filter must be constructed", ErrInvalidFilter)
		}
		subDecoder := ber.NewBERDecoder(filterData)

		attrBytes, err := subDecoder.ReadOctetString()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read filter attribute", err)
		}
		filter.Attribute = string(attrBytes)

		valueBytes, err := subDecoder.ReadOctetString()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read filter value", err)
		}
		filter.Value = valueBytes

	case FilterTagSubstrings:
		if !constructed {
			return nil, NewStructuralError(decoder.Offset(), "substring filter must be constructed", ErrInvalidFilter)
		}
		subDecoder := ber.NewBERDecoder(filterData)
		substrings, attr, err := parseSubstringFilter(subDecoder)
		if err != nil {
			return nil, err
		}
		if attr == "" {
			return nil, NewStructuralError(decoder.Offset(), "substring filter attribute must be non-empty", ErrInvalidSubstringFilter)
		}
		filter.Attribute = attr
		filter.Substrings = substrings

	case FilterTagPresent:
		if constructed {
			return nil, NewStructuralError(decoder.Offset(), "present filter must be primitive", ErrInvalidFilter)
		}
		filter.Attribute = string(filterData)

	case FilterTagExtensibleMatch:
		if !constructed {
			return nil, NewStructuralError(decoder.Offset(), "extensible match filter must be constructed", ErrInvalidFilter)
		}
		subDecoder := ber.NewBERDecoder(filterData)
		extMatch, err := parseExtensibleMatch(subDecoder)
		if err != nil {
			return nil, err
		}
		if extMatch.MatchingRule == "" && extMatch.Type == "" {
			return nil, NewStructuralError(decoder.Offset(), "extensible match has neither matchingRule nor type", ErrEmptyExtensibleMatch)
		}
		filter.ExtensibleMatch = extMatch

	default:
		return nil, NewStructuralError(decoder.Offset(), "unknown filter type", ErrInvalidFilter)
	}

	return filter, nil
}

// parseSubstringFilter parses a substring filter's attribute and its
// ordered SEQUENCE of initial/any/final pieces, enforcing every ordering
// and non-emptiness invariant strictly: at most one initial piece and only
// first, at most one final piece and only last, at least one piece total,
// every piece non-empty. Any violation is a StructuralDecodeError, never a
// lenient skip.
func parseSubstringFilter(decoder *ber.BERDecoder) (*SubstringComponents, string, error) {
	attrBytes, err := decoder.ReadOctetString()
	if err != nil {
		return nil, "", NewParseError(decoder.Offset(), "failed to read substring attribute", err)
	}
	attr := string(attrBytes)

	pieces, err := decoder.ReadSequenceContents()
	if err != nil {
		return nil, "", NewParseError(decoder.Offset(), "failed to read substrings sequence", err)
	}

	components := &SubstringComponents{}

	haveInitial := false
	haveFinal := false
	first := true
	pieceCount := 0

	for pieces.Remaining() > 0 {
		if haveFinal {
			return nil, "", NewStructuralError(pieces.Offset(), "final substring piece must be last", ErrInvalidSubstringFilter)
		}

		tagNum, _, value, err := pieces.ReadTaggedValue()
		if err != nil {
			return nil, "", NewParseError(pieces.Offset(), "failed to read substring component", err)
		}
		if len(value) == 0 {
			return nil, "", NewStructuralError(pieces.Offset(), "substring piece must be a non-empty octet string", ErrInvalidSubstringFilter)
		}

		switch tagNum {
		case SubstringInitial:
			if !first {
				return nil, "", NewStructuralError(pieces.Offset(), "initial substring piece must be first", ErrInvalidSubstringFilter)
			}
			haveInitial = true
			components.Initial = value
		case SubstringAny:
			components.Any = append(components.Any, value)
		case SubstringFinal:
			haveFinal = true
			components.Final = value
		default:
			return nil, "", NewStructuralError(pieces.Offset(), "unknown substring component tag", ErrInvalidSubstringFilter)
		}

		first = false
		pieceCount++
	}

	if pieceCount == 0 {
		return nil, "", NewStructuralError(decoder.Offset(), "substrings sequence has no pieces", ErrInvalidSubstringFilter)
	}
	if len(components.Any) == 0 && !haveInitial && !haveFinal {
		return nil, "", NewStructuralError(decoder.Offset(), "substrings sequence has no pieces", ErrInvalidSubstringFilter)
	}

	return components, attr, nil
}

// parseExtensibleMatch parses an extensible match filter's optional
// sub-fields. The "at least one of matchingRule/type" invariant is
// enforced by the caller, which knows the offset to report.
func parseExtensibleMatch(decoder *ber.BERDecoder) (*ExtensibleMatchComponents, error) {
	components := &ExtensibleMatchComponents{}

	for decoder.Remaining() > 0 {
		tagNum, _, value, err := decoder.ReadTaggedValue()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read extensible match component", err)
		}

		switch tagNum {
		case ExtMatchMatchingRule:
			components.MatchingRule = string(value)
		case ExtMatchType:
			components.Type = string(value)
		case ExtMatchMatchValue:
			components.MatchValue = value
		case ExtMatchDNAttributes:
			if len(value) > 0 && value[0] != 0 {
				components.DNAttributes = true
			}
		default:
			return nil, NewStructuralError(decoder.Offset(), "unknown extensible match component tag", ErrInvalidFilter)
		}
	}

	return components, nil
}

// Encode writes the filter tree to enc as its context-specific tagged
// CHOICE form, reproducing byte-for-byte whatever well-formed canonical
// encoding produced it.
func (f *SearchFilter) Encode(enc *ber.BEREncoder) error {
	switch f.Type {
	case FilterTagAnd, FilterTagOr:
		pos := enc.WriteContextTag(f.Type, true)
		for _, child := range f.Children {
			if err := child.Encode(enc); err != nil {
				return err
			}
		}
		return enc.EndContextTag(pos)

	case FilterTagNot:
		pos := enc.WriteContextTag(f.Type, true)
		if err := f.Child.Encode(enc); err != nil {
			return err
		}
		return enc.EndContextTag(pos)

	case FilterTagEquality, FilterTagGreaterOrEqual, FilterTagLessOrEqual, FilterTagApproxMatch:
		pos := enc.WriteContextTag(f.Type, true)
		if err := enc.WriteOctetString([]byte(f.Attribute)); err != nil {
			return err
		}
		if err := enc.WriteOctetString(f.Value); err != nil {
			return err
		}
		return enc.EndContextTag(pos)

	case FilterTagPresent:
		return enc.WriteTaggedValue(FilterTagPresent, false, []byte(f.Attribute))

	case FilterTagSubstrings:
		pos := enc.WriteContextTag(f.Type, true)
		if err := enc.WriteOctetString([]byte(f.Attribute)); err != nil {
			return err
		}
		subPos := enc.BeginSequence()
		s := f.Substrings
		if len(s.Initial) > 0 {
			if err := enc.WriteTaggedValue(SubstringInitial, false, s.Initial); err != nil {
				return err
			}
		}
		for _, piece := range s.Any {
			if err := enc.WriteTaggedValue(SubstringAny, false, piece); err != nil {
				return err
			}
		}
		if len(s.Final) > 0 {
			if err := enc.WriteTaggedValue(SubstringFinal, false, s.Final); err != nil {
				return err
			}
		}
		if err := enc.EndSequence(subPos); err != nil {
			return err
		}
		return enc.EndContextTag(pos)

	case FilterTagExtensibleMatch:
		pos := enc.WriteContextTag(f.Type, true)
		m := f.ExtensibleMatch
		if m.MatchingRule != "" {
			if err := enc.WriteTaggedValue(ExtMatchMatchingRule, false, []byte(m.MatchingRule)); err != nil {
				return err
			}
		}
		if m.Type != "" {
			if err := enc.WriteTaggedValue(ExtMatchType, false, []byte(m.Type)); err != nil {
				return err
			}
		}
		if err := enc.WriteTaggedValue(ExtMatchMatchValue, false, m.MatchValue); err != nil {
			return err
		}
		if m.DNAttributes {
			if err := enc.WriteTaggedValue(ExtMatchDNAttributes, false, []byte{0xFF}); err != nil {
				return err
			}
		}
		return enc.EndContextTag(pos)

	default:
		return ErrInvalidFilter
	}
}
