// Package ldap implements LDAP protocol message parsing and encoding
// as specified in RFC 4511.
package ldap

import (
	"github.com/obaldap/ldapcodec/internal/ber"
)

// Context-specific tags for response fields
const (
	// ContextTagReferral is the tag for referral URIs in LDAPResult [3]
	ContextTagReferral = 3
	// ContextTagServerSASLCreds is the tag for server SASL credentials in BindResponse [7]
	ContextTagServerSASLCreds = 7
)

// LDAPResult represents the common result structure used in most LDAP responses.
// Per RFC 4511 Section 4.1.9:
// LDAPResult ::= SEQUENCE {
//
//	resultCode         ENUMERATED { ... },
//	matchedDN          LDAPDN,
//	diagnosticMessage  LDAPString,
//	referral           [3] Referral OPTIONAL
//
// }
type LDAPResult struct {
	// ResultCode indicates the outcome of the operation
	ResultCode ResultCode
	// MatchedDN contains the DN of the last entry matched during processing
	MatchedDN string
	// DiagnosticMessage contains additional diagnostic information
	DiagnosticMessage string
	// Referral contains URIs to other servers (optional)
	Referral []string
}

// parseLDAPResult decodes the COMPONENTS OF LDAPResult fields shared by
// every response operation (resultCode, matchedDN, diagnosticMessage, and
// the optional referral [3]) from decoder's current position.
func parseLDAPResult(decoder *ber.BERDecoder) (LDAPResult, error) {
	var result LDAPResult

	code, err := decoder.ReadEnumerated()
	if err != nil {
		return result, NewParseError(decoder.Offset(), "failed to read resultCode", err)
	}
	result.ResultCode = ResultCode(code)

	matchedDN, err := decoder.ReadOctetString()
	if err != nil {
		return result, NewParseError(decoder.Offset(), "failed to read matchedDN", err)
	}
	result.MatchedDN = string(matchedDN)

	diagMessage, err := decoder.ReadOctetString()
	if err != nil {
		return result, NewParseError(decoder.Offset(), "failed to read diagnosticMessage", err)
	}
	result.DiagnosticMessage = string(diagMessage)

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagReferral) {
		refDecoder, err := decoder.ReadContextTagContents(ContextTagReferral)
		if err != nil {
			return result, NewParseError(decoder.Offset(), "failed to read referral", err)
		}
		for refDecoder.Remaining() > 0 {
			uri, err := refDecoder.ReadOctetString()
			if err != nil {
				return result, NewParseError(refDecoder.Offset(), "failed to read referral URI", err)
			}
			result.Referral = append(result.Referral, string(uri))
		}
	}

	return result, nil
}

// Encode encodes the LDAPResult to BER format (without outer tag).
// This is used as part of response encoding.
func (r *LDAPResult) Encode(encoder *ber.BEREncoder) error {
	// Write resultCode (ENUMERATED)
	if err := encoder.WriteEnumerated(int64(r.ResultCode)); err != nil {
		return err
	}

	// Write matchedDN (LDAPDN - OCTET STRING)
	if err := encoder.WriteOctetString([]byte(r.MatchedDN)); err != nil {
		return err
	}

	// Write diagnosticMessage (LDAPString - OCTET STRING)
	if err := encoder.WriteOctetString([]byte(r.DiagnosticMessage)); err != nil {
		return err
	}

	// Write referral [3] if present
	if len(r.Referral) > 0 {
		refPos := encoder.WriteContextTag(ContextTagReferral, true)
		for _, uri := range r.Referral {
			if err := encoder.WriteOctetString([]byte(uri)); err != nil {
				return err
			}
		}
		if err := encoder.EndContextTag(refPos); err != nil {
			return err
		}
	}

	return nil
}

// BindResponse represents an LDAP Bind response.
// Per RFC 4511 Section 4.2.2:
// BindResponse ::= [APPLICATION 1] SEQUENCE {
//
//	COMPONENTS OF LDAPResult,
//	serverSaslCreds    [7] OCTET STRING OPTIONAL
//
// }
type BindResponse struct {
	// LDAPResult contains the common result fields
	LDAPResult
	// ServerSASLCreds contains server SASL credentials (optional)
	ServerSASLCreds []byte
}

// ParseBindResponse parses a BindResponse from raw operation data (the
// contents of the APPLICATION 1 tag, without tag and length).
func ParseBindResponse(data []byte) (*BindResponse, error) {
	decoder := ber.NewBERDecoder(data)

	result, err := parseLDAPResult(decoder)
	if err != nil {
		return nil, err
	}
	resp := &BindResponse{LDAPResult: result}

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagServerSASLCreds) {
		_, _, creds, err := decoder.ReadTaggedValue()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read serverSaslCreds", err)
		}
		resp.ServerSASLCreds = creds
	}

	return resp, nil
}

// Encode encodes the BindResponse to BER format (without the APPLICATION
// tag; the LDAPMessage envelope supplies it).
func (r *BindResponse) Encode() ([]byte, error) {
	encoder := ber.NewBEREncoder(128)

	// Write LDAPResult components
	if err := r.LDAPResult.Encode(encoder); err != nil {
		return nil, err
	}

	// Write serverSaslCreds [7] if present
	if len(r.ServerSASLCreds) > 0 {
		if err := encoder.WriteTaggedValue(ContextTagServerSASLCreds, false, r.ServerSASLCreds); err != nil {
			return nil, err
		}
	}

	return encoder.Bytes(), nil
}

// PartialAttribute represents an attribute with its values.
// Per RFC 4511 Section 4.1.7:
// PartialAttribute ::= SEQUENCE {
//
//	type       AttributeDescription,
//	vals       SET OF value AttributeValue
//
// }
type PartialAttribute struct {
	// Type is the attribute description (name or OID)
	Type string
	// Values contains the attribute values
	Values [][]byte
}

// SearchResultEntry represents a search result entry.
// Per RFC 4511 Section 4.5.2:
// SearchResultEntry ::= [APPLICATION 4] SEQUENCE {
//
//	objectName      LDAPDN,
//	attributes      PartialAttributeList
//
// }
// PartialAttributeList ::= SEQUENCE OF partialAttribute PartialAttribute
type SearchResultEntry struct {
	// ObjectName is the DN of the entry
	ObjectName string
	// Attributes contains the entry's attributes
	Attributes []PartialAttribute
}

// ParseSearchResultEntry parses a SearchResultEntry from raw operation data
// (the contents of the APPLICATION 4 tag, without tag and length).
func ParseSearchResultEntry(data []byte) (*SearchResultEntry, error) {
	decoder := ber.NewBERDecoder(data)
	entry := &SearchResultEntry{}

	objectName, err := decoder.ReadOctetString()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read objectName", err)
	}
	entry.ObjectName = string(objectName)

	attrsDecoder, err := decoder.ReadSequenceContents()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read attributes", err)
	}

	for attrsDecoder.Remaining() > 0 {
		attrDecoder, err := attrsDecoder.ReadSequenceContents()
		if err != nil {
			return nil, NewParseError(attrsDecoder.Offset(), "failed to read partial attribute", err)
		}

		attrType, err := attrDecoder.ReadOctetString()
		if err != nil {
			return nil, NewParseError(attrDecoder.Offset(), "failed to read attribute type", err)
		}

		valsDecoder, err := attrDecoder.ReadSetContents()
		if err != nil {
			return nil, NewParseError(attrDecoder.Offset(), "failed to read attribute values", err)
		}

		attr := PartialAttribute{Type: string(attrType)}
		for valsDecoder.Remaining() > 0 {
			val, err := valsDecoder.ReadOctetString()
			if err != nil {
				return nil, NewParseError(valsDecoder.Offset(), "failed to read attribute value", err)
			}
			attr.Values = append(attr.Values, val)
		}

		entry.Attributes = append(entry.Attributes, attr)
	}

	return entry, nil
}

// Encode encodes the SearchResultEntry to BER format (without the
// APPLICATION tag).
func (r *SearchResultEntry) Encode() ([]byte, error) {
	encoder := ber.NewBEREncoder(256)

	// Write objectName (LDAPDN - OCTET STRING)
	if err := encoder.WriteOctetString([]byte(r.ObjectName)); err != nil {
		return nil, err
	}

	// Write attributes (SEQUENCE OF PartialAttribute)
	attrSeqPos := encoder.BeginSequence()
	for _, attr := range r.Attributes {
		// Each PartialAttribute is a SEQUENCE
		partialAttrPos := encoder.BeginSequence()

		// Write type (AttributeDescription - OCTET STRING)
		if err := encoder.WriteOctetString([]byte(attr.Type)); err != nil {
			return nil, err
		}

		// Write vals (SET OF AttributeValue)
		valsPos := encoder.BeginSet()
		for _, val := range attr.Values {
			if err := encoder.WriteOctetString(val); err != nil {
				return nil, err
			}
		}
		if err := encoder.EndSet(valsPos); err != nil {
			return nil, err
		}

		if err := encoder.EndSequence(partialAttrPos); err != nil {
			return nil, err
		}
	}
	if err := encoder.EndSequence(attrSeqPos); err != nil {
		return nil, err
	}

	return encoder.Bytes(), nil
}

// encodeBareResult encodes a response that is nothing but an LDAPResult
// (SearchResultDone, ModifyResponse, AddResponse, DelResponse,
// ModifyDNResponse, CompareResponse), without the APPLICATION tag.
func encodeBareResult(r *LDAPResult) ([]byte, error) {
	encoder := ber.NewBEREncoder(64)
	if err := r.Encode(encoder); err != nil {
		return nil, err
	}
	return encoder.Bytes(), nil
}

// SearchResultDone represents the final response to a search operation.
// Per RFC 4511 Section 4.5.2:
// SearchResultDone ::= [APPLICATION 5] LDAPResult
type SearchResultDone struct {
	LDAPResult
}

// ParseSearchResultDone parses a SearchResultDone from raw operation data
// (the contents of the APPLICATION 5 tag, without tag and length).
func ParseSearchResultDone(data []byte) (*SearchResultDone, error) {
	result, err := parseLDAPResult(ber.NewBERDecoder(data))
	if err != nil {
		return nil, err
	}
	return &SearchResultDone{LDAPResult: result}, nil
}

// Encode encodes the SearchResultDone to BER format (without the
// APPLICATION tag).
func (r *SearchResultDone) Encode() ([]byte, error) {
	return encodeBareResult(&r.LDAPResult)
}

// ModifyResponse represents the response to a modify operation.
// Per RFC 4511 Section 4.6:
// ModifyResponse ::= [APPLICATION 7] LDAPResult
type ModifyResponse struct {
	LDAPResult
}

// ParseModifyResponse parses a ModifyResponse from raw operation data (the
// contents of the APPLICATION 7 tag, without tag and length).
func ParseModifyResponse(data []byte) (*ModifyResponse, error) {
	result, err := parseLDAPResult(ber.NewBERDecoder(data))
	if err != nil {
		return nil, err
	}
	return &ModifyResponse{LDAPResult: result}, nil
}

// Encode encodes the ModifyResponse to BER format (without the APPLICATION
// tag).
func (r *ModifyResponse) Encode() ([]byte, error) {
	return encodeBareResult(&r.LDAPResult)
}

// AddResponse represents the response to an add operation.
// Per RFC 4511 Section 4.7:
// AddResponse ::= [APPLICATION 9] LDAPResult
type AddResponse struct {
	LDAPResult
}

// ParseAddResponse parses an AddResponse from raw operation data (the
// contents of the APPLICATION 9 tag, without tag and length).
func ParseAddResponse(data []byte) (*AddResponse, error) {
	result, err := parseLDAPResult(ber.NewBERDecoder(data))
	if err != nil {
		return nil, err
	}
	return &AddResponse{LDAPResult: result}, nil
}

// Encode encodes the AddResponse to BER format (without the APPLICATION
// tag).
func (r *AddResponse) Encode() ([]byte, error) {
	return encodeBareResult(&r.LDAPResult)
}

// DeleteResponse represents the response to a delete operation.
// Per RFC 4511 Section 4.8:
// DelResponse ::= [APPLICATION 11] LDAPResult
type DeleteResponse struct {
	LDAPResult
}

// ParseDeleteResponse parses a DeleteResponse from raw operation data (the
// contents of the APPLICATION 11 tag, without tag and length).
func ParseDeleteResponse(data []byte) (*DeleteResponse, error) {
	result, err := parseLDAPResult(ber.NewBERDecoder(data))
	if err != nil {
		return nil, err
	}
	return &DeleteResponse{LDAPResult: result}, nil
}

// Encode encodes the DeleteResponse to BER format (without the APPLICATION
// tag).
func (r *DeleteResponse) Encode() ([]byte, error) {
	return encodeBareResult(&r.LDAPResult)
}

// ModifyDNResponse represents the response to a modify DN operation.
// Per RFC 4511 Section 4.9:
// ModifyDNResponse ::= [APPLICATION 13] LDAPResult
type ModifyDNResponse struct {
	LDAPResult
}

// ParseModifyDNResponse parses a ModifyDNResponse from raw operation data
// (the contents of the APPLICATION 13 tag, without tag and length).
func ParseModifyDNResponse(data []byte) (*ModifyDNResponse, error) {
	result, err := parseLDAPResult(ber.NewBERDecoder(data))
	if err != nil {
		return nil, err
	}
	return &ModifyDNResponse{LDAPResult: result}, nil
}

// Encode encodes the ModifyDNResponse to BER format (without the
// APPLICATION tag).
func (r *ModifyDNResponse) Encode() ([]byte, error) {
	return encodeBareResult(&r.LDAPResult)
}

// CompareResponse represents the response to a compare operation.
// Per RFC 4511 Section 4.10:
// CompareResponse ::= [APPLICATION 15] LDAPResult
type CompareResponse struct {
	LDAPResult
}

// ParseCompareResponse parses a CompareResponse from raw operation data
// (the contents of the APPLICATION 15 tag, without tag and length).
func ParseCompareResponse(data []byte) (*CompareResponse, error) {
	result, err := parseLDAPResult(ber.NewBERDecoder(data))
	if err != nil {
		return nil, err
	}
	return &CompareResponse{LDAPResult: result}, nil
}

// Encode encodes the CompareResponse to BER format (without the
// APPLICATION tag).
func (r *CompareResponse) Encode() ([]byte, error) {
	return encodeBareResult(&r.LDAPResult)
}

// NewSuccessResult creates a new LDAPResult with success status.
func NewSuccessResult() LDAPResult {
	return LDAPResult{
		ResultCode:        ResultSuccess,
		MatchedDN:         "",
		DiagnosticMessage: "",
	}
}

// NewErrorResult creates a new LDAPResult with the specified error.
func NewErrorResult(code ResultCode, message string) LDAPResult {
	return LDAPResult{
		ResultCode:        code,
		MatchedDN:         "",
		DiagnosticMessage: message,
	}
}

// NewErrorResultWithDN creates a new LDAPResult with error and matched DN.
func NewErrorResultWithDN(code ResultCode, matchedDN, message string) LDAPResult {
	return LDAPResult{
		ResultCode:        code,
		MatchedDN:         matchedDN,
		DiagnosticMessage: message,
	}
}
