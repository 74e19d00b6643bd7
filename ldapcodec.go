package ldapcodec

import (
	"github.com/obaldap/ldapcodec/internal/control"
	"github.com/obaldap/ldapcodec/internal/dn"
	"github.com/obaldap/ldapcodec/internal/ldap"
	"github.com/obaldap/ldapcodec/internal/schema"
)

// Message envelope and operation types, re-exported so a caller only needs
// to import this package, not internal/ldap.
type (
	LDAPMessage   = ldap.LDAPMessage
	RawOperation  = ldap.RawOperation
	Control       = ldap.Control
	OperationType = ldap.OperationType
	ResultCode    = ldap.ResultCode
	ParseError    = ldap.ParseError
)

// Requests and responses.
type (
	BindRequest     = ldap.BindRequest
	SASLCredentials = ldap.SASLCredentials
	AuthMethod      = ldap.AuthMethod
)

// Bind authentication method tags.
const (
	AuthMethodSimple = ldap.AuthMethodSimple
	AuthMethodSASL   = ldap.AuthMethodSASL
)

type (
	SearchRequest             = ldap.SearchRequest
	SearchScope               = ldap.SearchScope
	DerefAliases              = ldap.DerefAliases
	SearchFilter              = ldap.SearchFilter
	SubstringComponents       = ldap.SubstringComponents
	ExtensibleMatchComponents = ldap.ExtensibleMatchComponents

	ModifyRequest   = ldap.ModifyRequest
	Modification    = ldap.Modification
	ModifyOperation = ldap.ModifyOperation

	AddRequest      = ldap.AddRequest
	Attribute       = ldap.Attribute
	DeleteRequest   = ldap.DeleteRequest
	UnbindRequest   = ldap.UnbindRequest
	AbandonRequest  = ldap.AbandonRequest
	ModifyDNRequest = ldap.ModifyDNRequest
	CompareRequest  = ldap.CompareRequest

	LDAPResult            = ldap.LDAPResult
	BindResponse          = ldap.BindResponse
	PartialAttribute      = ldap.PartialAttribute
	SearchResultEntry     = ldap.SearchResultEntry
	SearchResultDone      = ldap.SearchResultDone
	SearchResultReference = ldap.SearchResultReference
	ModifyResponse        = ldap.ModifyResponse
	AddResponse           = ldap.AddResponse
	DeleteResponse        = ldap.DeleteResponse
	ModifyDNResponse      = ldap.ModifyDNResponse
	CompareResponse       = ldap.CompareResponse
	ExtendedRequest       = ldap.ExtendedRequest
	ExtendedResponse      = ldap.ExtendedResponse
	IntermediateResponse  = ldap.IntermediateResponse
)

// Decoding infrastructure.
type (
	Container          = ldap.Container
	Dialect            = ldap.Dialect
	DecodedControl     = ldap.DecodedControl
	ErrPDUTooLarge     = ldap.ErrPDUTooLarge
	SchemaCollaborator = ldap.SchemaCollaborator
	Value              = ldap.Value
	Schema             = schema.Schema
)

// Errors.
type (
	StructuralDecodeError = ldap.StructuralDecodeError
	ResponseCarryingError = ldap.ResponseCarryingError
	ControlValueError     = ldap.ControlValueError
	ErrorKind             = ldap.ErrorKind
)

// Operation tags (APPLICATION class) per RFC 4511 §4.2.
const (
	ApplicationBindRequest           = ldap.ApplicationBindRequest
	ApplicationBindResponse          = ldap.ApplicationBindResponse
	ApplicationUnbindRequest         = ldap.ApplicationUnbindRequest
	ApplicationSearchRequest         = ldap.ApplicationSearchRequest
	ApplicationSearchResultEntry     = ldap.ApplicationSearchResultEntry
	ApplicationSearchResultDone      = ldap.ApplicationSearchResultDone
	ApplicationModifyRequest         = ldap.ApplicationModifyRequest
	ApplicationModifyResponse        = ldap.ApplicationModifyResponse
	ApplicationAddRequest            = ldap.ApplicationAddRequest
	ApplicationAddResponse           = ldap.ApplicationAddResponse
	ApplicationDelRequest            = ldap.ApplicationDelRequest
	ApplicationDelResponse           = ldap.ApplicationDelResponse
	ApplicationModifyDNRequest       = ldap.ApplicationModifyDNRequest
	ApplicationModifyDNResponse      = ldap.ApplicationModifyDNResponse
	ApplicationCompareRequest        = ldap.ApplicationCompareRequest
	ApplicationCompareResponse       = ldap.ApplicationCompareResponse
	ApplicationAbandonRequest        = ldap.ApplicationAbandonRequest
	ApplicationSearchResultReference = ldap.ApplicationSearchResultReference
	ApplicationExtendedRequest       = ldap.ApplicationExtendedRequest
	ApplicationExtendedResponse      = ldap.ApplicationExtendedResponse
	ApplicationIntermediateResponse  = ldap.ApplicationIntermediateResponse
)

// Filter constructor tags per RFC 4511 §4.5.1.
const (
	FilterTagAnd             = ldap.FilterTagAnd
	FilterTagOr              = ldap.FilterTagOr
	FilterTagNot             = ldap.FilterTagNot
	FilterTagEquality        = ldap.FilterTagEquality
	FilterTagSubstrings      = ldap.FilterTagSubstrings
	FilterTagGreaterOrEqual  = ldap.FilterTagGreaterOrEqual
	FilterTagLessOrEqual     = ldap.FilterTagLessOrEqual
	FilterTagPresent         = ldap.FilterTagPresent
	FilterTagApproxMatch     = ldap.FilterTagApproxMatch
	FilterTagExtensibleMatch = ldap.FilterTagExtensibleMatch
)

// Result codes per RFC 4511 §4.1.9 (the common subset; see internal/ldap
// for the full enumeration).
const (
	ResultSuccess             = ldap.ResultSuccess
	ResultOperationsError     = ldap.ResultOperationsError
	ResultProtocolError       = ldap.ResultProtocolError
	ResultNoSuchObject        = ldap.ResultNoSuchObject
	ResultInvalidDNSyntax     = ldap.ResultInvalidDNSyntax
	ResultInvalidCredentials  = ldap.ResultInvalidCredentials
	ResultUnwillingToPerform  = ldap.ResultUnwillingToPerform
	ResultEntryAlreadyExists  = ldap.ResultEntryAlreadyExists
	ResultNoSuchAttribute     = ldap.ResultNoSuchAttribute
	ResultConstraintViolation = ldap.ResultConstraintViolation
)

// Defaults.
const (
	DefaultMaxFilterDepth = ldap.DefaultMaxFilterDepth
	DefaultMaxPDUSize     = ldap.DefaultMaxPDUSize
)

// NewContainer returns a resumable PDU decoder using the default maximum
// PDU size.
func NewContainer() *Container {
	return ldap.NewContainer()
}

// NewContainerWithMaxSize returns a resumable PDU decoder that rejects any
// PDU whose declared length exceeds maxSize.
func NewContainerWithMaxSize(maxSize int) *Container {
	return ldap.NewContainerWithMaxSize(maxSize)
}

// NewDialect returns a Dialect configured with this module's default
// limits and control registry.
func NewDialect() *Dialect {
	return ldap.NewDialect()
}

// NewDialectWithSchema returns a Dialect like NewDialect, plus a schema
// collaborator consulted by Dialect.ClassifyEntry/ClassifyAttribute for
// attribute-name canonicalization and syntax classification. Pass the
// result of LoadDefaultSchema, or any other *Schema assembled at startup,
// via its SchemaCollaborator-satisfying methods.
func NewDialectWithSchema(s SchemaCollaborator) *Dialect {
	return ldap.NewDialectWithSchema(s)
}

// LoadDefaultSchema returns the built-in schema (standard LDAP object
// classes and attribute types) a caller can pass to NewDialectWithSchema.
func LoadDefaultSchema() *Schema {
	return schema.LoadDefaultSchema()
}

// NewSuccessResult, NewErrorResult, NewErrorResultWithDN build the common
// LDAPResult shapes used when assembling a response.
func NewSuccessResult() LDAPResult { return ldap.NewSuccessResult() }
func NewErrorResult(code ResultCode, message string) LDAPResult {
	return ldap.NewErrorResult(code, message)
}
func NewErrorResultWithDN(code ResultCode, matchedDN, message string) LDAPResult {
	return ldap.NewErrorResultWithDN(code, matchedDN, message)
}

// BuildErrorResponse constructs the LDAPMessage carrying an error
// LDAPResult for the given request operation tag, for use when replying to
// a request that failed to decode. Operation kinds with no response form
// return (nil, false).
func BuildErrorResponse(messageID, requestOpTag int, code ResultCode, diagnosticMessage string) (*LDAPMessage, bool) {
	return ldap.BuildErrorResponse(messageID, requestOpTag, code, diagnosticMessage)
}

// DecodeStep feeds newly read bytes into container and returns every
// complete LDAPMessage PDU now available. It is the library's resumable
// decode entry point: idempotent with respect to PDU boundaries, safe to
// call repeatedly as more bytes arrive on a connection. A non-nil error is
// fatal; container.Reset is required before Container can be fed again.
func DecodeStep(container *Container, chunk []byte) ([]*LDAPMessage, error) {
	return container.Feed(chunk)
}

// Encode serializes msg to its BER wire form: the inverse of DecodeStep at
// the PDU level.
func Encode(msg *LDAPMessage) ([]byte, error) {
	return msg.Encode()
}

// ParseLDAPMessage decodes a single complete LDAPMessage from data,
// without the resumable buffering Container provides. Useful for framed
// transports (e.g. tests, or a protocol that already delivers whole PDUs).
func ParseLDAPMessage(data []byte) (*LDAPMessage, error) {
	return ldap.ParseLDAPMessage(data)
}

// ValidateDN reports whether s is a syntactically valid LDAP distinguished
// name per RFC 4514.
func ValidateDN(s string) error {
	return dn.Validate(s)
}

// RenderDN normalizes s (as produced by ValidateDN-accepted input) into
// its canonical string form.
func RenderDN(s string) string {
	return dn.Render(s)
}

// NewControlRegistry returns a registry pre-populated with this module's
// built-in control codecs (ManageDsaIT, Subentries, PagedResults,
// EntryChangeNotification). Dialect already carries one; this is exposed
// for callers that want to register additional controls before building a
// Dialect around the result.
func NewControlRegistry() *control.Registry {
	return control.NewDefaultRegistry()
}
