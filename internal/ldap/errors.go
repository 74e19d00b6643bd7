// Package ldap implements LDAP protocol message parsing and encoding
// as specified in RFC 4511.
package ldap

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a decode failure so a caller sitting above the
// codec (a server, a proxy) can decide whether to close the connection,
// skip the PDU, or reply without having to string-match error messages.
type ErrorKind int

const (
	// KindMalformed covers MalformedTag/MalformedLength: the bytes at the
	// current position are not a legal TLV for this grammar position.
	KindMalformed ErrorKind = iota
	// KindStructural covers StructuralDecodeError: the TLVs were legal BER
	// but violate an LDAP grammar invariant (bad scope, substring
	// ordering, empty And/Or, etc).
	KindStructural
	// KindDepthExceeded covers filter/structural nesting beyond the
	// configured cap.
	KindDepthExceeded
	// KindControlValue covers a registered control decoder rejecting its
	// value.
	KindControlValue
	// KindInvalidDN covers a DN-typed field whose textual form failed the
	// DN validator. Error responses built for this kind carry
	// ResultInvalidDNSyntax rather than the generic protocol error.
	KindInvalidDN
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformed:
		return "Malformed"
	case KindStructural:
		return "StructuralDecodeError"
	case KindDepthExceeded:
		return "DepthExceeded"
	case KindControlValue:
		return "ControlValueError"
	case KindInvalidDN:
		return "InvalidDN"
	default:
		return "Unknown"
	}
}

// ControlValueError reports that a registered control's typed decoder
// rejected its value. On a non-critical control the caller downgrades this
// to an opaque value and continues; on a critical control it propagates as
// a StructuralDecodeError.
type ControlValueError struct {
	OID         string
	Criticality bool
	Err         error
}

func (e *ControlValueError) Error() string {
	return fmt.Sprintf("ldap: control %s value rejected: %v", e.OID, e.Err)
}

func (e *ControlValueError) Unwrap() error {
	return e.Err
}

// AsStructural converts a critical control's value error into a
// StructuralDecodeError of kind KindControlValue, for callers that want a
// single error type to propagate.
func (e *ControlValueError) AsStructural(offset int) *StructuralDecodeError {
	return &StructuralDecodeError{Kind: KindControlValue, Offset: offset, Message: "critical control value rejected: " + e.OID, Err: e}
}

// ErrDepthExceeded is the sentinel wrapped by every depth-limit violation,
// regardless of which recursive grammar (filter nesting today) triggered
// it, so callers can test with errors.Is.
var ErrDepthExceeded = errors.New("ldap: nesting exceeds configured depth limit")

// StructuralDecodeError reports a grammar violation detected after the TLV
// layer parsed cleanly: the bytes were well-formed BER, but what they
// encode is not a legal LDAPMessage per RFC 4511.
type StructuralDecodeError struct {
	Kind    ErrorKind
	Offset  int
	Message string
	Err     error
}

func (e *StructuralDecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ldap: %s at offset %d: %s: %v", e.Kind, e.Offset, e.Message, e.Err)
	}
	return fmt.Sprintf("ldap: %s at offset %d: %s", e.Kind, e.Offset, e.Message)
}

func (e *StructuralDecodeError) Unwrap() error {
	return e.Err
}

// NewStructuralError builds a StructuralDecodeError of kind KindStructural.
func NewStructuralError(offset int, message string, err error) *StructuralDecodeError {
	return &StructuralDecodeError{Kind: KindStructural, Offset: offset, Message: message, Err: err}
}

// NewDepthExceededError builds a StructuralDecodeError of kind
// KindDepthExceeded, always wrapping ErrDepthExceeded so errors.Is(err,
// ErrDepthExceeded) succeeds regardless of which grammar produced it.
func NewDepthExceededError(offset int, message string) *StructuralDecodeError {
	return &StructuralDecodeError{Kind: KindDepthExceeded, Offset: offset, Message: message, Err: ErrDepthExceeded}
}

// NewInvalidDNError builds a StructuralDecodeError of kind KindInvalidDN
// for the named DN-typed field, wrapping the validator's error.
func NewInvalidDNError(offset int, field string, err error) *StructuralDecodeError {
	return &StructuralDecodeError{Kind: KindInvalidDN, Offset: offset, Message: field + " is not a valid DN", Err: err}
}

// ResponseCarryingError is a StructuralDecodeError for an operation kind
// that has a response PDU form, pre-built so the surrounding server can
// reply without parsing any further. MessageID is carried separately from
// Response because the failure can occur before the response's own fields
// (e.g. the failed operation's message ID) are otherwise available to the
// caller.
type ResponseCarryingError struct {
	*StructuralDecodeError
	MessageID int
	Response  *LDAPMessage
}

// NewResponseCarryingError wraps a structural failure with a pre-built
// error response message, ready to hand back to the client that sent the
// malformed request.
func NewResponseCarryingError(cause *StructuralDecodeError, messageID int, response *LDAPMessage) *ResponseCarryingError {
	return &ResponseCarryingError{StructuralDecodeError: cause, MessageID: messageID, Response: response}
}

// BuildErrorResponse constructs the LDAPMessage carrying an LDAPResult
// error for the given request operation kind, so a caller handling a
// ResponseCarryingError can send it back verbatim. Operation kinds with no
// response form (UnbindRequest, AbandonRequest) return (nil, false).
func BuildErrorResponse(messageID, requestOpTag int, code ResultCode, diagnosticMessage string) (*LDAPMessage, bool) {
	result := NewErrorResult(code, diagnosticMessage)

	var rawTag int
	var payload interface{ Encode() ([]byte, error) }

	switch requestOpTag {
	case ApplicationBindRequest:
		rawTag = ApplicationBindResponse
		payload = &BindResponse{LDAPResult: result}
	case ApplicationSearchRequest:
		rawTag = ApplicationSearchResultDone
		payload = &SearchResultDone{LDAPResult: result}
	case ApplicationModifyRequest:
		rawTag = ApplicationModifyResponse
		payload = &ModifyResponse{LDAPResult: result}
	case ApplicationAddRequest:
		rawTag = ApplicationAddResponse
		payload = &AddResponse{LDAPResult: result}
	case ApplicationDelRequest:
		rawTag = ApplicationDelResponse
		payload = &DeleteResponse{LDAPResult: result}
	case ApplicationModifyDNRequest:
		rawTag = ApplicationModifyDNResponse
		payload = &ModifyDNResponse{LDAPResult: result}
	case ApplicationCompareRequest:
		rawTag = ApplicationCompareResponse
		payload = &CompareResponse{LDAPResult: result}
	case ApplicationExtendedRequest:
		rawTag = ApplicationExtendedResponse
		payload = &ExtendedResponse{LDAPResult: result}
	default:
		return nil, false
	}

	encoded, err := payload.Encode()
	if err != nil {
		return nil, false
	}

	return &LDAPMessage{
		MessageID: messageID,
		Operation: &RawOperation{Tag: rawTag, Data: encoded},
	}, true
}
