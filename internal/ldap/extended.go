// Package ldap implements LDAP protocol message parsing and encoding
// as specified in RFC 4511.
package ldap

import (
	"github.com/obaldap/ldapcodec/internal/ber"
)

// Context-specific tags for ExtendedRequest/ExtendedResponse/
// IntermediateResponse fields (RFC 4511 Section 4.12, 4.13).
const (
	ContextTagExtendedRequestName       = 0 // [0] requestName
	ContextTagExtendedRequestValue      = 1 // [1] requestValue OPTIONAL
	ContextTagExtendedResponseName      = 10 // [10] responseName OPTIONAL
	ContextTagExtendedResponseValue     = 11 // [11] response OPTIONAL
	ContextTagIntermediateResponseName  = 0 // [0] responseName OPTIONAL
	ContextTagIntermediateResponseValue = 1 // [1] responseValue OPTIONAL
)

// ExtendedRequest represents an LDAP Extended operation request.
// Per RFC 4511 Section 4.12:
// ExtendedRequest ::= [APPLICATION 23] SEQUENCE {
//
//	requestName      [0] LDAPOID,
//	requestValue     [1] OCTET STRING OPTIONAL
//
// }
type ExtendedRequest struct {
	// Name is the request OID identifying the extended operation.
	Name string
	// Value is the optional opaque request payload.
	Value []byte
}

// ParseExtendedRequest parses an ExtendedRequest from raw operation data
// (the contents of the APPLICATION 23 tag, without tag and length).
func ParseExtendedRequest(data []byte) (*ExtendedRequest, error) {
	decoder := ber.NewBERDecoder(data)
	req := &ExtendedRequest{}

	nameTag, _, name, err := decoder.ReadTaggedValue()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read requestName", err)
	}
	if nameTag != ContextTagExtendedRequestName {
		return nil, NewStructuralError(decoder.Offset(), "expected [0] requestName", ErrInvalidOperation)
	}
	req.Name = string(name)

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagExtendedRequestValue) {
		_, _, value, err := decoder.ReadTaggedValue()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read requestValue", err)
		}
		req.Value = value
	}

	return req, nil
}

// Encode encodes the ExtendedRequest to BER format (without the
// APPLICATION tag).
func (r *ExtendedRequest) Encode() ([]byte, error) {
	encoder := ber.NewBEREncoder(64)

	if err := encoder.WriteTaggedValue(ContextTagExtendedRequestName, false, []byte(r.Name)); err != nil {
		return nil, err
	}
	if r.Value != nil {
		if err := encoder.WriteTaggedValue(ContextTagExtendedRequestValue, false, r.Value); err != nil {
			return nil, err
		}
	}

	return encoder.Bytes(), nil
}

// ExtendedResponse represents the response to an Extended operation.
// Per RFC 4511 Section 4.12:
// ExtendedResponse ::= [APPLICATION 24] SEQUENCE {
//
//	COMPONENTS OF LDAPResult,
//	responseName     [10] LDAPOID OPTIONAL,
//	response         [11] OCTET STRING OPTIONAL
//
// }
type ExtendedResponse struct {
	LDAPResult
	// Name is the optional response OID (absent for a generic failure).
	Name string
	// Value is the optional opaque response payload.
	Value []byte
}

// ParseExtendedResponse parses an ExtendedResponse from raw operation data
// (the contents of the APPLICATION 24 tag, without tag and length).
func ParseExtendedResponse(data []byte) (*ExtendedResponse, error) {
	decoder := ber.NewBERDecoder(data)

	result, err := parseLDAPResult(decoder)
	if err != nil {
		return nil, err
	}
	resp := &ExtendedResponse{LDAPResult: result}

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagExtendedResponseName) {
		_, _, name, err := decoder.ReadTaggedValue()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read responseName", err)
		}
		resp.Name = string(name)
	}

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagExtendedResponseValue) {
		_, _, value, err := decoder.ReadTaggedValue()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read response value", err)
		}
		resp.Value = value
	}

	return resp, nil
}

// Encode encodes the ExtendedResponse to BER format (without the
// APPLICATION tag).
func (r *ExtendedResponse) Encode() ([]byte, error) {
	encoder := ber.NewBEREncoder(128)

	if err := r.LDAPResult.Encode(encoder); err != nil {
		return nil, err
	}

	if r.Name != "" {
		if err := encoder.WriteTaggedValue(ContextTagExtendedResponseName, false, []byte(r.Name)); err != nil {
			return nil, err
		}
	}
	if r.Value != nil {
		if err := encoder.WriteTaggedValue(ContextTagExtendedResponseValue, false, r.Value); err != nil {
			return nil, err
		}
	}

	return encoder.Bytes(), nil
}

// IntermediateResponse represents an unsolicited or extended-operation
// intermediate response message.
// Per RFC 4511 Section 4.13:
// IntermediateResponse ::= [APPLICATION 25] SEQUENCE {
//
//	responseName     [0] LDAPOID OPTIONAL,
//	responseValue    [1] OCTET STRING OPTIONAL
//
// }
type IntermediateResponse struct {
	// Name is the optional response OID identifying the payload's meaning.
	Name string
	// Value is the optional opaque response payload.
	Value []byte
}

// ParseIntermediateResponse parses an IntermediateResponse from raw
// operation data (the contents of the APPLICATION 25 tag, without tag and
// length).
func ParseIntermediateResponse(data []byte) (*IntermediateResponse, error) {
	decoder := ber.NewBERDecoder(data)
	resp := &IntermediateResponse{}

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagIntermediateResponseName) {
		_, _, name, err := decoder.ReadTaggedValue()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read responseName", err)
		}
		resp.Name = string(name)
	}

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagIntermediateResponseValue) {
		_, _, value, err := decoder.ReadTaggedValue()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read responseValue", err)
		}
		resp.Value = value
	}

	return resp, nil
}

// Encode encodes the IntermediateResponse to BER format (without the
// APPLICATION tag).
func (r *IntermediateResponse) Encode() ([]byte, error) {
	encoder := ber.NewBEREncoder(64)

	if r.Name != "" {
		if err := encoder.WriteTaggedValue(ContextTagIntermediateResponseName, false, []byte(r.Name)); err != nil {
			return nil, err
		}
	}
	if r.Value != nil {
		if err := encoder.WriteTaggedValue(ContextTagIntermediateResponseValue, false, r.Value); err != nil {
			return nil, err
		}
	}

	return encoder.Bytes(), nil
}

// SearchResultReference represents a search continuation reference.
// Per RFC 4511 Section 4.5.3:
// SearchResultReference ::= [APPLICATION 19] SEQUENCE SIZE (1..MAX) OF uri URI
type SearchResultReference struct {
	// URIs holds the ordered, non-empty list of referral URIs.
	URIs []string
}

// ParseSearchResultReference parses a SearchResultReference from raw
// operation data (the contents of the APPLICATION 19 tag, without tag and
// length).
func ParseSearchResultReference(data []byte) (*SearchResultReference, error) {
	decoder := ber.NewBERDecoder(data)
	ref := &SearchResultReference{}

	for decoder.Remaining() > 0 {
		uri, err := decoder.ReadOctetString()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read reference URI", err)
		}
		ref.URIs = append(ref.URIs, string(uri))
	}

	if len(ref.URIs) == 0 {
		return nil, NewStructuralError(0, "SearchResultReference must contain at least one URI", nil)
	}

	return ref, nil
}

// Encode encodes the SearchResultReference to BER format (without the
// APPLICATION tag).
func (r *SearchResultReference) Encode() ([]byte, error) {
	encoder := ber.NewBEREncoder(64)
	for _, uri := range r.URIs {
		if err := encoder.WriteOctetString([]byte(uri)); err != nil {
			return nil, err
		}
	}
	return encoder.Bytes(), nil
}
