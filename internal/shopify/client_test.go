package shopify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ivangarciagi10/email-servicev2/internal/config"
)

type fakeTransport struct {
	resp *http.Response
	err  error
	req  *http.Request
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(transport *fakeTransport) (*Client, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	c := NewClient(config.ShopifyConfig{
		ShopDomain:  "api-gnp",
		AccessToken: "shpat_test",
		APIVersion:  "2023-10",
	}, zap.New(core))
	c.httpClient = &http.Client{Transport: transport}
	return c, logs
}

func TestNewClientNormalizesDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"api-gnp", "api-gnp.myshopify.com"},
		{"api-gnp.myshopify.com", "api-gnp.myshopify.com"},
		{"https://api-gnp.myshopify.com/", "api-gnp.myshopify.com"},
		{"http://shop.example.com", "shop.example.com"},
	}
	for _, tt := range tests {
		c := NewClient(config.ShopifyConfig{ShopDomain: tt.in}, zap.NewNop())
		assert.Equal(t, tt.want, c.shopDomain)
	}
}

func TestExecuteReturnsDataAndSetsAuth(t *testing.T) {
	transport := &fakeTransport{resp: jsonResponse(http.StatusOK, `{"data":{"shop":{"name":"GNP"}}}`)}
	c, _ := newTestClient(transport)

	resp, err := c.Execute(context.Background(), ShopQuery, nil)
	require.NoError(t, err)
	assert.Contains(t, string(resp.Data), "GNP")

	require.NotNil(t, transport.req)
	assert.Equal(t, "shpat_test", transport.req.Header.Get("X-Shopify-Access-Token"))
	assert.Equal(t, "https://api-gnp.myshopify.com/admin/api/2023-10/graphql.json", transport.req.URL.String())
}

func TestExecuteNon200StatusIsLogged(t *testing.T) {
	transport := &fakeTransport{resp: jsonResponse(http.StatusTooManyRequests, `{"errors":"throttled"}`)}
	c, logs := newTestClient(transport)

	_, err := c.Execute(context.Background(), ShopQuery, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
	assert.Equal(t, 1, logs.FilterMessage("Shopify API returned non-OK status").Len())
}

func TestExecuteGraphQLErrorsAreJoinedAndLogged(t *testing.T) {
	transport := &fakeTransport{resp: jsonResponse(http.StatusOK,
		`{"errors":[{"message":"first problem"},{"message":"second problem"}]}`)}
	c, logs := newTestClient(transport)

	_, err := c.Execute(context.Background(), ShopQuery, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first problem; second problem")
	assert.Equal(t, 1, logs.FilterMessage("Shopify GraphQL query returned errors").Len())
}

func TestExecuteTransportErrorIsLogged(t *testing.T) {
	transport := &fakeTransport{err: errors.New("connection refused")}
	c, logs := newTestClient(transport)

	_, err := c.Execute(context.Background(), ShopQuery, nil)
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("Shopify request failed").Len())
}
