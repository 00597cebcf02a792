package api

import (
	"fmt"
	"strings"
)

// --- Label Methods ---

func (c *Client) ListLabels(orgID string) ([]Label, error) {
	data, err := c.get(buildQuery("/api/v2/labels", QueryParams{"orgID": orgID}))
	if err != nil {
		return nil, err
	}
	return decodeList[Label](data, "labels")
}

func (c *Client) CreateLabel(label Label) (*Label, error) {
	if strings.TrimSpace(label.Name) == "" {
		return nil, fmt.Errorf("label name is required")
	}
	if label.OrgID == "" {
		return nil, fmt.Errorf("label organization is required")
	}
	data, err := c.post("/api/v2/labels", label)
	if err != nil {
		return nil, err
	}
	return decodeOne[Label](data)
}

func (c *Client) UpdateLabel(label Label) (*Label, error) {
	body := struct {
		Name       string          `json:"name"`
		Properties LabelProperties `json:"properties"`
	}{label.Name, label.Properties}
	data, err := c.patch("/api/v2/labels/"+escape(label.ID), body)
	if err != nil {
		return nil, err
	}
	return decodeOne[Label](data)
}

func (c *Client) DeleteLabel(id string) error {
	return c.del("/api/v2/labels/" + escape(id))
}
