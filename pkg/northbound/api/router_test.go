package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routeflow/ribd/pkg/northbound"
)

type fakeOwner struct{ applied []northbound.Delta }

func (o *fakeOwner) Validate(d northbound.Delta) error { return nil }
func (o *fakeOwner) Apply(d northbound.Delta) error {
	o.applied = append(o.applied, d)
	return nil
}

type fakeTree struct{}

func (fakeTree) Snapshot() any { return map[string]string{"status": "ok"} }

type exampleConfigShape struct {
	RouterID string `json:"router_id"`
}

func TestHealthEndpointUnauthenticated(t *testing.T) {
	reg := northbound.NewRegistry()
	handler := NewRouter(Router{Registry: reg, Tree: fakeTree{}, SchemaType: exampleConfigShape{}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSchemaEndpointUnauthenticated(t *testing.T) {
	reg := northbound.NewRegistry()
	handler := NewRouter(Router{Registry: reg, Tree: fakeTree{}, SchemaType: exampleConfigShape{}})

	req := httptest.NewRequest(http.MethodGet, "/schema", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "router_id")
}

func TestAuthTokenEndpointRejectsWrongSecret(t *testing.T) {
	reg := northbound.NewRegistry()
	svc, _ := NewJWTService(JWTConfig{Secret: "0123456789abcdef0123456789abcdef"})
	handler := NewRouter(Router{Registry: reg, Tree: fakeTree{}, JWT: svc, SchemaType: exampleConfigShape{}})

	body, _ := json.Marshal(map[string]string{"client_id": "ribdctl", "secret": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthTokenEndpointIssuesTokenForMatchingSecret(t *testing.T) {
	reg := northbound.NewRegistry()
	secret := "0123456789abcdef0123456789abcdef"
	svc, _ := NewJWTService(JWTConfig{Secret: secret})
	handler := NewRouter(Router{Registry: reg, Tree: fakeTree{}, JWT: svc, SchemaType: exampleConfigShape{}})

	body, _ := json.Marshal(map[string]string{"client_id": "ribdctl", "secret": secret})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)

	claims, err := svc.Validate(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "ribdctl", claims.ClientID)
}

func TestConfigTransactionRequiresAuth(t *testing.T) {
	reg := northbound.NewRegistry()
	svc, _ := NewJWTService(JWTConfig{Secret: "0123456789abcdef0123456789abcdef"})
	handler := NewRouter(Router{Registry: reg, Tree: fakeTree{}, JWT: svc, SchemaType: exampleConfigShape{}})

	body, _ := json.Marshal(northbound.Transaction{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/config/transaction", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestConfigTransactionAppliesWithValidToken(t *testing.T) {
	reg := northbound.NewRegistry()
	owner := &fakeOwner{}
	reg.Register("/protocol/ospf", owner, owner)

	svc, _ := NewJWTService(JWTConfig{Secret: "0123456789abcdef0123456789abcdef"})
	token, _ := svc.IssueToken("ribdctl")
	handler := NewRouter(Router{Registry: reg, Tree: fakeTree{}, JWT: svc, SchemaType: exampleConfigShape{}})

	tx := northbound.Transaction{Deltas: []northbound.Delta{
		{Path: "/protocol/ospf/router-id", Op: northbound.OpModify, Value: "1.1.1.1"},
	}}
	body, _ := json.Marshal(tx)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/config/transaction", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, owner.applied, 1)
}
