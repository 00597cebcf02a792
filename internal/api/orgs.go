package api

import (
	"fmt"
	"strings"
)

// --- Organization Methods ---

func (c *Client) ListOrganizations() ([]Organization, error) {
	data, err := c.get("/api/v2/orgs")
	if err != nil {
		return nil, err
	}
	return decodeList[Organization](data, "orgs")
}

func (c *Client) GetOrganization(id string) (*Organization, error) {
	data, err := c.get("/api/v2/orgs/" + escape(id))
	if err != nil {
		return nil, err
	}
	return decodeOne[Organization](data)
}

func (c *Client) CreateOrganization(name string) (*Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("organization name is required")
	}
	data, err := c.post("/api/v2/orgs", Organization{Name: name})
	if err != nil {
		return nil, err
	}
	return decodeOne[Organization](data)
}

// UpdateOrganization renames an organization.
func (c *Client) UpdateOrganization(org Organization) (*Organization, error) {
	if strings.TrimSpace(org.Name) == "" {
		return nil, fmt.Errorf("organization name is required")
	}
	data, err := c.patch("/api/v2/orgs/"+escape(org.ID), map[string]string{"name": org.Name})
	if err != nil {
		return nil, err
	}
	return decodeOne[Organization](data)
}

func (c *Client) DeleteOrganization(id string) error {
	return c.del("/api/v2/orgs/" + escape(id))
}

// --- Organization Resources ---

func (c *Client) ListMembers(orgID string) ([]User, error) {
	data, err := c.get("/api/v2/orgs/" + escape(orgID) + "/members")
	if err != nil {
		return nil, err
	}
	return decodeList[User](data, "users")
}

// ListBuckets lists the buckets of the named organization.
func (c *Client) ListBuckets(orgName string) ([]Bucket, error) {
	data, err := c.get(buildQuery("/api/v2/buckets", QueryParams{"org": orgName}))
	if err != nil {
		return nil, err
	}
	return decodeList[Bucket](data, "buckets")
}

func (c *Client) CreateBucket(org Organization, bucket Bucket) (*Bucket, error) {
	if strings.TrimSpace(bucket.Name) == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	bucket.OrganizationID = org.ID
	bucket.Organization = org.Name
	if bucket.RetentionRules == nil {
		bucket.RetentionRules = []RetentionRule{}
	}
	data, err := c.post(buildQuery("/api/v2/buckets", QueryParams{"org": org.Name}), bucket)
	if err != nil {
		return nil, err
	}
	return decodeOne[Bucket](data)
}

func (c *Client) UpdateBucket(bucket Bucket) (*Bucket, error) {
	data, err := c.patch("/api/v2/buckets/"+escape(bucket.ID), bucket)
	if err != nil {
		return nil, err
	}
	return decodeOne[Bucket](data)
}

// ListDashboards lists dashboards, scoped to orgName when it is set.
func (c *Client) ListDashboards(orgName string) ([]Dashboard, error) {
	data, err := c.get(buildQuery("/api/v2/dashboards", QueryParams{"org": orgName}))
	if err != nil {
		return nil, err
	}
	return decodeList[Dashboard](data, "dashboards")
}

func (c *Client) ListTasks(orgName string) ([]Task, error) {
	data, err := c.get(buildQuery("/api/v2/tasks", QueryParams{"org": orgName}))
	if err != nil {
		return nil, err
	}
	return decodeList[Task](data, "tasks")
}
