// Package ldap implements LDAP protocol message parsing and encoding
// as specified in RFC 4511.
package ldap

import (
	"errors"

	"github.com/obaldap/ldapcodec/internal/control"
)

// Dialect is the single configured entry point a caller uses to decode and
// encode LDAP operations: it owns the knobs that bound how permissive
// decoding is and the control registry that resolves a control OID to its
// typed codec, instead of leaving every caller of
// ParseBindRequest/ParseSearchRequest/etc. to independently decide defaults.
type Dialect struct {
	// Controls resolves a control OID to its typed decode/encode pair.
	// Unregistered OIDs decode as opaque bytes per control.Registry.
	Controls *control.Registry
	// MaxFilterDepth bounds search filter nesting.
	MaxFilterDepth int
	// MaxPDUSize bounds a single LDAPMessage's declared length when read
	// through a Container.
	MaxPDUSize int
	// Schema is the optional external collaborator consulted for
	// attribute-name canonicalization and syntax classification. Nil means
	// no schema is available; ClassifyEntry/ClassifyAttribute fall back to
	// their stated defaults.
	Schema SchemaCollaborator
	// AllowTrailingBytes is carried as configuration, but no decode path
	// reads it: a Container always treats bytes that follow a complete
	// LDAPMessage as the start of the next PDU (skipping zero bytes at a
	// PDU boundary), and ParseLDAPMessage ignores bytes after the outer
	// SEQUENCE, whatever this field holds.
	AllowTrailingBytes bool
}

// NewDialect returns a Dialect configured with this module's defaults: the
// built-in control registry, a filter depth cap of DefaultMaxFilterDepth,
// and a PDU size cap of DefaultMaxPDUSize.
func NewDialect() *Dialect {
	return &Dialect{
		Controls:       control.NewDefaultRegistry(),
		MaxFilterDepth: DefaultMaxFilterDepth,
		MaxPDUSize:     DefaultMaxPDUSize,
	}
}

// NewDialectWithSchema returns a Dialect configured like NewDialect, plus
// schema consulted by ClassifyEntry/ClassifyAttribute for attribute-name
// canonicalization and syntax classification.
func NewDialectWithSchema(schema SchemaCollaborator) *Dialect {
	d := NewDialect()
	d.Schema = schema
	return d
}

// NewContainer returns a Container configured with this Dialect's
// MaxPDUSize.
func (d *Dialect) NewContainer() *Container {
	return NewContainerWithMaxSize(d.MaxPDUSize)
}

// DecodeOperation dispatches raw's tag to the matching typed parser,
// applying this Dialect's configured limits (currently MaxFilterDepth, for
// SearchRequest). Callers type-switch on the result.
func (d *Dialect) DecodeOperation(raw *RawOperation) (any, error) {
	if raw == nil {
		return nil, ErrMissingOperation
	}

	switch raw.Tag {
	case ApplicationBindRequest:
		return ParseBindRequest(raw.Data)
	case ApplicationBindResponse:
		return ParseBindResponse(raw.Data)
	case ApplicationUnbindRequest:
		return ParseUnbindRequest(raw.Data)
	case ApplicationSearchRequest:
		return ParseSearchRequestWithLimits(raw.Data, d.MaxFilterDepth)
	case ApplicationSearchResultEntry:
		return ParseSearchResultEntry(raw.Data)
	case ApplicationSearchResultDone:
		return ParseSearchResultDone(raw.Data)
	case ApplicationSearchResultReference:
		return ParseSearchResultReference(raw.Data)
	case ApplicationModifyRequest:
		return ParseModifyRequest(raw.Data)
	case ApplicationModifyResponse:
		return ParseModifyResponse(raw.Data)
	case ApplicationAddRequest:
		return ParseAddRequest(raw.Data)
	case ApplicationAddResponse:
		return ParseAddResponse(raw.Data)
	case ApplicationDelRequest:
		return ParseDeleteRequest(raw.Data)
	case ApplicationDelResponse:
		return ParseDeleteResponse(raw.Data)
	case ApplicationModifyDNRequest:
		return ParseModifyDNRequest(raw.Data)
	case ApplicationModifyDNResponse:
		return ParseModifyDNResponse(raw.Data)
	case ApplicationCompareRequest:
		return ParseCompareRequest(raw.Data)
	case ApplicationCompareResponse:
		return ParseCompareResponse(raw.Data)
	case ApplicationAbandonRequest:
		return ParseAbandonRequest(raw.Data)
	case ApplicationExtendedRequest:
		return ParseExtendedRequest(raw.Data)
	case ApplicationExtendedResponse:
		return ParseExtendedResponse(raw.Data)
	case ApplicationIntermediateResponse:
		return ParseIntermediateResponse(raw.Data)
	default:
		return nil, NewStructuralError(0, "unsupported operation tag for DecodeOperation", ErrInvalidOperation)
	}
}

// DecodeRequestOperation is DecodeOperation for a request PDU whose message
// ID is known: when the operation's grammar is violated and its kind has a
// response form, the returned error is a *ResponseCarryingError holding a
// pre-built error response the caller can send back without any further
// parsing. Other failures (truncation, tag mismatches, operation kinds with
// no response form) pass through unchanged.
func (d *Dialect) DecodeRequestOperation(messageID int, raw *RawOperation) (any, error) {
	op, err := d.DecodeOperation(raw)
	if err == nil {
		return op, nil
	}

	var structErr *StructuralDecodeError
	if !errors.As(err, &structErr) {
		return nil, err
	}

	resp, ok := BuildErrorResponse(messageID, raw.Tag, resultCodeForKind(structErr.Kind), structErr.Message)
	if !ok {
		return nil, err
	}
	return nil, NewResponseCarryingError(structErr, messageID, resp)
}

// resultCodeForKind picks the LDAPResult code an error response carries for
// a given structural failure kind.
func resultCodeForKind(kind ErrorKind) ResultCode {
	if kind == KindInvalidDN {
		return ResultInvalidDNSyntax
	}
	return ResultProtocolError
}

// encodableOperation is satisfied by every request/response type this
// package exposes an Encode method on.
type encodableOperation interface {
	Encode() ([]byte, error)
}

// EncodeOperation encodes op (one of this package's typed request/response
// structs) under the given APPLICATION tag, producing the RawOperation a
// LDAPMessage carries.
func (d *Dialect) EncodeOperation(tag int, op encodableOperation) (*RawOperation, error) {
	data, err := op.Encode()
	if err != nil {
		return nil, err
	}
	return &RawOperation{Tag: tag, Data: data}, nil
}

// LookupControl resolves oid against this Dialect's control registry,
// reporting whether a typed codec is registered for it.
func (d *Dialect) LookupControl(oid string) (control.Entry, bool) {
	return d.Controls.Lookup(oid)
}

// DecodeControlValue decodes a control's raw value using the typed decoder
// registered for oid, or returns the value unchanged if none is
// registered.
func (d *Dialect) DecodeControlValue(oid string, value []byte) (any, error) {
	return d.Controls.DecodeValue(oid, value)
}

// DecodedControl pairs a parsed Control envelope with its typed value, or
// records why decoding it did not produce one.
type DecodedControl struct {
	Control
	// Decoded is the typed payload produced by the registered decoder for
	// this OID, or nil if no decoder is registered or decoding failed on
	// a non-critical control.
	Decoded any
	// Opaque is true when Decoded is nil because either no decoder is
	// registered for this OID, or decoding failed and the control was
	// non-critical so it was downgraded instead of rejected.
	Opaque bool
}

// DecodeControls resolves every control's typed value against this
// Dialect's registry. A critical control whose typed decoder rejects its
// value is a fatal StructuralDecodeError; a non-critical control is
// downgraded to opaque instead.
func (d *Dialect) DecodeControls(controls []Control) ([]DecodedControl, error) {
	decoded := make([]DecodedControl, 0, len(controls))
	for _, ctrl := range controls {
		entry, registered := d.Controls.Lookup(ctrl.OID)
		if !registered || entry.Decode == nil || len(ctrl.Value) == 0 {
			decoded = append(decoded, DecodedControl{Control: ctrl, Opaque: true})
			continue
		}

		value, err := entry.Decode(ctrl.Value)
		if err != nil {
			cvErr := &ControlValueError{OID: ctrl.OID, Criticality: ctrl.Criticality, Err: err}
			if ctrl.Criticality {
				return nil, cvErr.AsStructural(0)
			}
			decoded = append(decoded, DecodedControl{Control: ctrl, Opaque: true})
			continue
		}

		decoded = append(decoded, DecodedControl{Control: ctrl, Decoded: value})
	}
	return decoded, nil
}
