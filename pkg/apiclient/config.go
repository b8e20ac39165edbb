package apiclient

import "github.com/routeflow/ribd/pkg/northbound"

// GetConfig calls GET /api/v1/config, bearer-gated, returning the current
// config tree snapshot as a generic JSON value.
func (c *Client) GetConfig() (any, error) {
	var resp any
	if err := c.get("/api/v1/config", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ApplyTransaction calls POST /api/v1/config/transaction, submitting tx
// for validate-all-then-apply-all processing by the server's registry.
func (c *Client) ApplyTransaction(tx northbound.Transaction) error {
	return c.post("/api/v1/config/transaction", tx, nil)
}
