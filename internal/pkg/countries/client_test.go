package countries

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3.1/all", r.URL.Path)
		assert.Equal(t, "name,currencies", r.URL.Query().Get("fields"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name":{"common":"France","official":"French Republic"},"currencies":{"EUR":{"name":"Euro","symbol":"€"}}},
			{"name":{"common":"Japan","official":"Japan"},"currencies":{"JPY":{"name":"Japanese yen","symbol":"¥"}}}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	list, err := client.List(context.Background())
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "France", list[0].Name.Common)
	assert.Contains(t, list[0].Currencies, "EUR")
}

func TestClient_List_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.List(context.Background())
	assert.Error(t, err)
}
