package api

// --- Authorization Methods ---

func (c *Client) ListAuthorizations() ([]Authorization, error) {
	data, err := c.get("/api/v2/authorizations")
	if err != nil {
		return nil, err
	}
	return decodeList[Authorization](data, "authorizations")
}

func (c *Client) GetAuthorization(id string) (*Authorization, error) {
	data, err := c.get("/api/v2/authorizations/" + escape(id))
	if err != nil {
		return nil, err
	}
	return decodeOne[Authorization](data)
}

// CreateAuthorization generates a new token. The returned record carries
// the token value, which the server only reveals on creation and lookup.
func (c *Client) CreateAuthorization(input CreateAuthorizationInput) (*Authorization, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	data, err := c.post("/api/v2/authorizations", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Authorization](data)
}

// SetAuthorizationStatus activates or deactivates a token.
func (c *Client) SetAuthorizationStatus(id string, status Status) (*Authorization, error) {
	if err := status.Valid(); err != nil {
		return nil, err
	}
	data, err := c.patch("/api/v2/authorizations/"+escape(id), map[string]Status{"status": status})
	if err != nil {
		return nil, err
	}
	return decodeOne[Authorization](data)
}

func (c *Client) DeleteAuthorization(id string) error {
	return c.del("/api/v2/authorizations/" + escape(id))
}
