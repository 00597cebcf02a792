package mockapi

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/gravitrone/tsadmin/internal/api"
)

// --- Authorizations ---

func (s *Server) listAuthorizations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]api.Authorization{}, s.data.Authorizations...)
	writeJSON(w, http.StatusOK, listBody("/api/v2/authorizations", "authorizations", out))
}

func (s *Server) getAuthorization(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.data.Authorizations {
		if a.ID == id {
			writeJSON(w, http.StatusOK, a)
			return
		}
	}
	writeError(w, http.StatusNotFound, "not found", "authorization not found")
}

func (s *Server) createAuthorization(w http.ResponseWriter, r *http.Request) {
	var in api.CreateAuthorizationInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid", err.Error())
		return
	}
	status := in.Status
	if status == "" {
		status = api.StatusActive
	}
	if err := status.Valid(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	org, ok := s.orgByID(in.OrgID)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid", "organization not found")
		return
	}
	auth := api.Authorization{
		ID:          newID(),
		Token:       newToken(),
		Status:      status,
		Description: strings.TrimSpace(in.Description),
		OrgID:       org.ID,
		Org:         org.Name,
		UserID:      in.UserID,
		Permissions: append([]api.Permission{}, in.Permissions...),
	}
	for _, members := range s.data.Members {
		for _, u := range members {
			if u.ID == in.UserID {
				auth.User = u.Name
			}
		}
	}
	s.data.Authorizations = append(s.data.Authorizations, auth)
	s.publishSizes()
	s.logger.Info("authorization created", "id", auth.ID, "org", org.Name)
	writeJSON(w, http.StatusCreated, auth)
}

func (s *Server) updateAuthorization(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var in struct {
		Status      *api.Status `json:"status"`
		Description *string     `json:"description"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if in.Status != nil {
		if err := in.Status.Valid(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid", err.Error())
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.data.Authorizations {
		if a.ID != id {
			continue
		}
		if in.Status != nil {
			a.Status = *in.Status
		}
		if in.Description != nil {
			a.Description = *in.Description
		}
		s.data.Authorizations[i] = a
		writeJSON(w, http.StatusOK, a)
		return
	}
	writeError(w, http.StatusNotFound, "not found", "authorization not found")
}

func (s *Server) deleteAuthorization(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.data.Authorizations {
		if a.ID == id {
			s.data.Authorizations = append(s.data.Authorizations[:i:i], s.data.Authorizations[i+1:]...)
			s.publishSizes()
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "not found", "authorization not found")
}

// --- Organizations ---

func (s *Server) listOrgs(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]api.Organization{}, s.data.Orgs...)
	writeJSON(w, http.StatusOK, listBody("/api/v2/orgs", "orgs", out))
}

func (s *Server) getOrg(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if org, ok := s.orgByID(mux.Vars(r)["id"]); ok {
		writeJSON(w, http.StatusOK, org)
		return
	}
	writeError(w, http.StatusNotFound, "not found", "organization not found")
}

func (s *Server) createOrg(w http.ResponseWriter, r *http.Request) {
	var in api.Organization
	if !decodeBody(w, r, &in) {
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "invalid", "organization name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orgByName(name); exists {
		writeError(w, http.StatusConflict, "conflict", "organization with name "+name+" already exists")
		return
	}
	org := api.Organization{ID: newID(), Name: name}
	s.data.Orgs = append(s.data.Orgs, org)
	s.publishSizes()
	writeJSON(w, http.StatusCreated, org)
}

func (s *Server) updateOrg(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var in struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "invalid", "organization name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if other, exists := s.orgByName(name); exists && other.ID != id {
		writeError(w, http.StatusConflict, "conflict", "organization with name "+name+" already exists")
		return
	}
	for i, o := range s.data.Orgs {
		if o.ID != id {
			continue
		}
		o.Name = name
		s.data.Orgs[i] = o
		s.renameOrgRefs(o)
		writeJSON(w, http.StatusOK, o)
		return
	}
	writeError(w, http.StatusNotFound, "not found", "organization not found")
}

func (s *Server) renameOrgRefs(org api.Organization) {
	for i := range s.data.Authorizations {
		if s.data.Authorizations[i].OrgID == org.ID {
			s.data.Authorizations[i].Org = org.Name
		}
	}
	for i := range s.data.Buckets {
		if s.data.Buckets[i].OrganizationID == org.ID {
			s.data.Buckets[i].Organization = org.Name
		}
	}
	for i := range s.data.Tasks {
		if s.data.Tasks[i].OrganizationID == org.ID {
			s.data.Tasks[i].Organization = org.Name
		}
	}
}

// deleteOrg removes the organization and every resource it owns.
func (s *Server) deleteOrg(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, o := range s.data.Orgs {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		writeError(w, http.StatusNotFound, "not found", "organization not found")
		return
	}
	s.data.Orgs = append(s.data.Orgs[:idx:idx], s.data.Orgs[idx+1:]...)
	delete(s.data.Members, id)
	s.data.Authorizations = keep(s.data.Authorizations, func(a api.Authorization) bool { return a.OrgID != id })
	s.data.Buckets = keep(s.data.Buckets, func(b api.Bucket) bool { return b.OrganizationID != id })
	s.data.Dashboards = keep(s.data.Dashboards, func(d api.Dashboard) bool { return d.OrgID != id })
	s.data.Tasks = keep(s.data.Tasks, func(t api.Task) bool { return t.OrganizationID != id })
	s.data.Labels = keep(s.data.Labels, func(l api.Label) bool { return l.OrgID != id })
	s.publishSizes()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orgByID(id); !ok {
		writeError(w, http.StatusNotFound, "not found", "organization not found")
		return
	}
	out := append([]api.User{}, s.data.Members[id]...)
	writeJSON(w, http.StatusOK, listBody("/api/v2/orgs/"+id+"/members", "users", out))
}

// --- Buckets, Dashboards, Tasks ---

func (s *Server) listBuckets(w http.ResponseWriter, r *http.Request) {
	orgName := r.URL.Query().Get("org")

	s.mu.Lock()
	defer s.mu.Unlock()

	out := keep(s.data.Buckets, func(b api.Bucket) bool { return orgName == "" || b.Organization == orgName })
	writeJSON(w, http.StatusOK, listBody("/api/v2/buckets", "buckets", out))
}

func (s *Server) createBucket(w http.ResponseWriter, r *http.Request) {
	var in api.Bucket
	if !decodeBody(w, r, &in) {
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "invalid", "bucket name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	org, ok := s.orgByName(r.URL.Query().Get("org"))
	if !ok {
		org, ok = s.orgByID(in.OrganizationID)
	}
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid", "organization not found")
		return
	}
	for _, b := range s.data.Buckets {
		if b.OrganizationID == org.ID && b.Name == name {
			writeError(w, http.StatusConflict, "conflict", "bucket with name "+name+" already exists")
			return
		}
	}
	bucket := api.Bucket{
		ID:             newID(),
		OrganizationID: org.ID,
		Organization:   org.Name,
		Name:           name,
		RetentionRules: append([]api.RetentionRule{}, in.RetentionRules...),
	}
	s.data.Buckets = append(s.data.Buckets, bucket)
	s.publishSizes()
	writeJSON(w, http.StatusCreated, bucket)
}

func (s *Server) updateBucket(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var in api.Bucket
	if !decodeBody(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.data.Buckets {
		if b.ID != id {
			continue
		}
		if name := strings.TrimSpace(in.Name); name != "" {
			b.Name = name
		}
		if in.RetentionRules != nil {
			b.RetentionRules = append([]api.RetentionRule{}, in.RetentionRules...)
		}
		s.data.Buckets[i] = b
		writeJSON(w, http.StatusOK, b)
		return
	}
	writeError(w, http.StatusNotFound, "not found", "bucket not found")
}

func (s *Server) listDashboards(w http.ResponseWriter, r *http.Request) {
	orgName := r.URL.Query().Get("org")

	s.mu.Lock()
	defer s.mu.Unlock()

	orgID := ""
	if orgName != "" {
		org, ok := s.orgByName(orgName)
		if !ok {
			writeJSON(w, http.StatusOK, listBody("/api/v2/dashboards", "dashboards", []api.Dashboard{}))
			return
		}
		orgID = org.ID
	}
	out := keep(s.data.Dashboards, func(d api.Dashboard) bool { return orgID == "" || d.OrgID == orgID })
	writeJSON(w, http.StatusOK, listBody("/api/v2/dashboards", "dashboards", out))
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	orgName := r.URL.Query().Get("org")

	s.mu.Lock()
	defer s.mu.Unlock()

	out := keep(s.data.Tasks, func(t api.Task) bool { return orgName == "" || t.Organization == orgName })
	writeJSON(w, http.StatusOK, listBody("/api/v2/tasks", "tasks", out))
}

// --- Labels ---

func (s *Server) listLabels(w http.ResponseWriter, r *http.Request) {
	orgID := r.URL.Query().Get("orgID")

	s.mu.Lock()
	defer s.mu.Unlock()

	out := keep(s.data.Labels, func(l api.Label) bool { return orgID == "" || l.OrgID == orgID })
	writeJSON(w, http.StatusOK, listBody("/api/v2/labels", "labels", out))
}

func (s *Server) createLabel(w http.ResponseWriter, r *http.Request) {
	var in api.Label
	if !decodeBody(w, r, &in) {
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "invalid", "label name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orgByID(in.OrgID); !ok {
		writeError(w, http.StatusBadRequest, "invalid", "organization not found")
		return
	}
	if s.labelNameTaken(in.OrgID, name, "") {
		writeError(w, http.StatusConflict, "conflict", "label with name "+name+" already exists")
		return
	}
	label := api.Label{ID: newID(), OrgID: in.OrgID, Name: name, Properties: in.Properties}
	s.data.Labels = append(s.data.Labels, label)
	s.publishSizes()
	writeJSON(w, http.StatusCreated, label)
}

func (s *Server) updateLabel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var in struct {
		Name       string              `json:"name"`
		Properties api.LabelProperties `json:"properties"`
	}
	if !decodeBody(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.data.Labels {
		if l.ID != id {
			continue
		}
		if name := strings.TrimSpace(in.Name); name != "" {
			if s.labelNameTaken(l.OrgID, name, id) {
				writeError(w, http.StatusConflict, "conflict", "label with name "+name+" already exists")
				return
			}
			l.Name = name
		}
		l.Properties = in.Properties
		s.data.Labels[i] = l
		writeJSON(w, http.StatusOK, l)
		return
	}
	writeError(w, http.StatusNotFound, "not found", "label not found")
}

func (s *Server) deleteLabel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.data.Labels {
		if l.ID == id {
			s.data.Labels = append(s.data.Labels[:i:i], s.data.Labels[i+1:]...)
			s.publishSizes()
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "not found", "label not found")
}

func (s *Server) labelNameTaken(orgID, name, exceptID string) bool {
	for _, l := range s.data.Labels {
		if l.OrgID == orgID && l.ID != exceptID && strings.EqualFold(l.Name, name) {
			return true
		}
	}
	return false
}

func keep[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}
