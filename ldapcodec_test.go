package ldapcodec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/obaldap/ldapcodec"
)

// TestFacade_BindRoundTripThroughContainer exercises the public entry
// points end to end: encode a request, feed its wire bytes through
// Container one byte at a time, decode the operation, and build a
// response with the root package's helpers only.
func TestFacade_BindRoundTripThroughContainer(t *testing.T) {
	req := &ldapcodec.BindRequest{
		Version:        3,
		Name:           "cn=admin,dc=example,dc=com",
		AuthMethod:     ldapcodec.AuthMethodSimple,
		SimplePassword: []byte("secret"),
	}
	data, err := req.Encode()
	require.NoError(t, err)

	msg := &ldapcodec.LDAPMessage{
		MessageID: 1,
		Operation: &ldapcodec.RawOperation{Tag: ldapcodec.ApplicationBindRequest, Data: data},
	}
	wire, err := ldapcodec.Encode(msg)
	require.NoError(t, err)

	container := ldapcodec.NewContainer()
	var decoded []*ldapcodec.LDAPMessage
	for _, b := range wire {
		got, err := ldapcodec.DecodeStep(container, []byte{b})
		require.NoError(t, err)
		decoded = append(decoded, got...)
	}
	require.Len(t, decoded, 1)

	dialect := ldapcodec.NewDialect()
	op, err := dialect.DecodeOperation(decoded[0].Operation)
	require.NoError(t, err)
	bindReq, ok := op.(*ldapcodec.BindRequest)
	require.True(t, ok)
	require.Equal(t, "cn=admin,dc=example,dc=com", bindReq.Name)

	errMsg, built := ldapcodec.BuildErrorResponse(decoded[0].MessageID, ldapcodec.ApplicationBindRequest,
		ldapcodec.ResultInvalidCredentials, "bad password")
	require.True(t, built)
	require.Equal(t, ldapcodec.ApplicationBindResponse, errMsg.Operation.Tag)
}

// TestFacade_SchemaClassifiesSearchResultEntry confirms a Dialect built
// with NewDialectWithSchema actually consults the schema collaborator
// when classifying a decoded SearchResultEntry's attributes.
func TestFacade_SchemaClassifiesSearchResultEntry(t *testing.T) {
	dialect := ldapcodec.NewDialectWithSchema(ldapcodec.LoadDefaultSchema())

	entry := &ldapcodec.SearchResultEntry{
		ObjectName: "uid=jdoe,dc=example,dc=com",
		Attributes: []ldapcodec.PartialAttribute{
			{Type: "cn", Values: [][]byte{[]byte("John Doe")}},
			{Type: "userCertificate;binary", Values: [][]byte{{0x30, 0x03, 0x02, 0x01, 0x01}}},
		},
	}

	classified := dialect.ClassifyEntry(entry)
	require.Len(t, classified, 2)
	require.True(t, classified[0][0].Text, "cn should classify as text")
}

// TestFacade_DNHelpers exercises ValidateDN/RenderDN, the root package's
// only surface over internal/dn.
func TestFacade_DNHelpers(t *testing.T) {
	require.NoError(t, ldapcodec.ValidateDN("cn=admin,dc=example,dc=com"))
	require.Equal(t, "cn=admin,dc=example,dc=com", ldapcodec.RenderDN("cn=admin,dc=example,dc=com"))
	require.Error(t, ldapcodec.ValidateDN("not a dn==="))
}

// TestFacade_ExtendedOperationRoundTrip confirms the root package exposes
// the extended/intermediate operation types added alongside the other
// response decoders.
func TestFacade_ExtendedOperationRoundTrip(t *testing.T) {
	req := &ldapcodec.ExtendedRequest{Name: "1.3.6.1.4.1.1466.20037", Value: []byte("TLS")}
	data, err := req.Encode()
	require.NoError(t, err)

	dialect := ldapcodec.NewDialect()
	op, err := dialect.DecodeOperation(&ldapcodec.RawOperation{Tag: ldapcodec.ApplicationExtendedRequest, Data: data})
	require.NoError(t, err)
	decoded, ok := op.(*ldapcodec.ExtendedRequest)
	require.True(t, ok)
	require.Equal(t, "1.3.6.1.4.1.1466.20037", decoded.Name)
	require.Equal(t, []byte("TLS"), decoded.Value)
}
