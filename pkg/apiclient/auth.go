package apiclient

import "time"

// TokenResponse mirrors the JSON body returned by POST /api/v1/auth/token.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IssueToken calls POST /api/v1/auth/token, exchanging the shared secret
// configured on the daemon (northbound.jwt_secret_env) for a bearer token
// scoped to clientID. It requires no prior authentication — knowing the
// secret is the authentication.
func (c *Client) IssueToken(clientID, secret string) (*TokenResponse, error) {
	var resp TokenResponse
	body := struct {
		ClientID string `json:"client_id"`
		Secret   string `json:"secret"`
	}{ClientID: clientID, Secret: secret}
	if err := c.post("/api/v1/auth/token", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
