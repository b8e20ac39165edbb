package apiclient

// HealthResponse mirrors pkg/northbound/api.HealthResponse.
type HealthResponse struct {
	Status string `json:"status"`
	Data   struct {
		Service   string `json:"service"`
		StartedAt string `json:"started_at"`
		Uptime    string `json:"uptime"`
		UptimeSec int64  `json:"uptime_sec"`
	} `json:"data"`
}

// Health calls GET /health. It requires no authentication.
func (c *Client) Health() (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.get("/health", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Schema calls GET /schema and returns the raw JSON Schema document
// describing the config tree.
func (c *Client) Schema() (map[string]any, error) {
	var resp map[string]any
	if err := c.get("/schema", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
