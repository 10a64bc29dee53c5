package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ivangarciagi10/email-servicev2/internal/shopify"
	apperrors "github.com/ivangarciagi10/email-servicev2/pkg/errors"
)

// fakeExecutor serves canned GraphQL data keyed by operation name.
type fakeExecutor struct {
	customerData   string
	metaobjectData string
	err            error
	calls          int
}

func (f *fakeExecutor) Execute(_ context.Context, query string, _ map[string]interface{}) (*shopify.GraphQLResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var data string
	switch {
	case strings.Contains(query, "getCustomerWithMetafields"):
		data = f.customerData
	case strings.Contains(query, "getMetaobject"):
		data = f.metaobjectData
	default:
		return nil, errors.New("unexpected query")
	}
	return &shopify.GraphQLResponse{Data: json.RawMessage(data)}, nil
}

const customerWithAdvisor = `{
  "customer": {
    "id": "gid://shopify/Customer/777",
    "firstName": "Laura",
    "lastName": "Méndez",
    "email": "laura@example.com",
    "metafields": {
      "edges": [
        {"node": {"namespace": "custom", "key": "otro", "value": "x", "type": "single_line_text_field"}},
        {"node": {"namespace": "custom", "key": "ejecutivo_de_cuenta", "value": "gid://shopify/Metaobject/123456789", "type": "metaobject_reference"}}
      ]
    }
  }
}`

const advisorMetaobject = `{
  "metaobject": {
    "id": "gid://shopify/Metaobject/123456789",
    "type": "ejecutivo",
    "fields": [
      {"key": "nombre", "value": "Juan Carlos Pérez", "type": "single_line_text_field"},
      {"key": "correo", "value": "jperez@example.com", "type": "single_line_text_field"},
      {"key": "telefono", "value": "+52 55 1234 5678", "type": "single_line_text_field"}
    ]
  }
}`

func TestResolveReturnsAdvisor(t *testing.T) {
	exec := &fakeExecutor{customerData: customerWithAdvisor, metaobjectData: advisorMetaobject}
	r := NewAdvisorResolver(exec, zap.NewNop())

	advisor, err := r.Resolve(context.Background(), 777)
	require.NoError(t, err)

	assert.Equal(t, int64(123456789), advisor.ID)
	assert.Equal(t, "jperez@example.com", advisor.Email)
	assert.Equal(t, "Juan", advisor.FirstName)
	assert.Equal(t, "Carlos Pérez", advisor.LastName)
	assert.Equal(t, "+52 55 1234 5678", advisor.Phone)
	assert.Equal(t, AdvisorRole, advisor.Role)
	assert.Equal(t, 2, exec.calls)
}

func TestResolvePlaceholderCustomerIsNotFoundWithoutLookup(t *testing.T) {
	exec := &fakeExecutor{customerData: customerWithAdvisor, metaobjectData: advisorMetaobject}
	r := NewAdvisorResolver(exec, zap.NewNop())

	_, err := r.Resolve(context.Background(), 0)

	var notFound *apperrors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 0, exec.calls, "sentinel customer id must not hit the remote store")
}

func TestResolveNoAdvisorMetafield(t *testing.T) {
	exec := &fakeExecutor{customerData: `{
	  "customer": {
	    "id": "gid://shopify/Customer/777",
	    "metafields": {"edges": []}
	  }
	}`}
	r := NewAdvisorResolver(exec, zap.NewNop())

	_, err := r.Resolve(context.Background(), 777)

	var notFound *apperrors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "advisor", notFound.Resource)
}

func TestResolveCustomerMissing(t *testing.T) {
	exec := &fakeExecutor{customerData: `{"customer": null}`}
	r := NewAdvisorResolver(exec, zap.NewNop())

	_, err := r.Resolve(context.Background(), 777)

	var notFound *apperrors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestResolveMalformedMetaobjectReference(t *testing.T) {
	exec := &fakeExecutor{customerData: `{
	  "customer": {
	    "id": "gid://shopify/Customer/777",
	    "metafields": {"edges": [
	      {"node": {"namespace": "custom", "key": "ejecutivo_de_cuenta", "value": "not-a-gid", "type": "single_line_text_field"}}
	    ]}
	  }
	}`}
	r := NewAdvisorResolver(exec, zap.NewNop())

	_, err := r.Resolve(context.Background(), 777)

	var notFound *apperrors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 1, exec.calls, "metaobject lookup must be skipped for a bad reference")
}

func TestResolveMetaobjectMissingRequiredFields(t *testing.T) {
	exec := &fakeExecutor{
		customerData: customerWithAdvisor,
		metaobjectData: `{
		  "metaobject": {
		    "id": "gid://shopify/Metaobject/123456789",
		    "type": "ejecutivo",
		    "fields": [{"key": "nombre", "value": "Juan Pérez", "type": "single_line_text_field"}]
		  }
		}`,
	}
	r := NewAdvisorResolver(exec, zap.NewNop())

	_, err := r.Resolve(context.Background(), 777)

	var notFound *apperrors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestResolveEmptyNameYieldsEmptyNamesNotError(t *testing.T) {
	exec := &fakeExecutor{
		customerData: customerWithAdvisor,
		metaobjectData: `{
		  "metaobject": {
		    "id": "gid://shopify/Metaobject/123456789",
		    "type": "ejecutivo",
		    "fields": [
		      {"key": "nombre", "value": "", "type": "single_line_text_field"},
		      {"key": "correo", "value": "jperez@example.com", "type": "single_line_text_field"}
		    ]
		  }
		}`,
	}
	r := NewAdvisorResolver(exec, zap.NewNop())

	advisor, err := r.Resolve(context.Background(), 777)
	require.NoError(t, err)
	assert.Empty(t, advisor.FirstName)
	assert.Empty(t, advisor.LastName)
	assert.Equal(t, "jperez@example.com", advisor.Email)
}

func TestResolveQueryErrorIsNotFound(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("boom")}
	r := NewAdvisorResolver(exec, zap.NewNop())

	_, err := r.Resolve(context.Background(), 777)

	var notFound *apperrors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestSplitFullName(t *testing.T) {
	tests := []struct {
		full  string
		first string
		last  string
	}{
		{"Juan Pérez", "Juan", "Pérez"},
		{"Juan Carlos Pérez López", "Juan", "Carlos Pérez López"},
		{"Juan", "Juan", ""},
		{"", "", ""},
		{"   ", "", ""},
	}
	for _, tt := range tests {
		first, last := splitFullName(tt.full)
		assert.Equal(t, tt.first, first)
		assert.Equal(t, tt.last, last)
	}
}
