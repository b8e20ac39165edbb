package apiclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueTokenPostsClientIDAndSecret(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(TokenResponse{AccessToken: "tok-123"})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.IssueToken("ribdctl", "shared-secret")
	require.NoError(t, err)
	require.Equal(t, "tok-123", resp.AccessToken)
	require.Equal(t, "/api/v1/auth/token", gotPath)
	require.Equal(t, "ribdctl", gotBody["client_id"])
	require.Equal(t, "shared-secret", gotBody["secret"])
}

func TestIssueTokenReturnsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid shared secret", http.StatusUnauthorized)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.IssueToken("ribdctl", "wrong")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.True(t, apiErr.IsUnauthorized())
}
