package identity

import (
	"context"
	"strings"
)

type Role string

const (
	RoleJobseeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
	RoleStudent   Role = "student"
)

func (r Role) Valid() bool {
	switch r {
	case RoleJobseeker, RoleEmployer, RoleStudent:
		return true
	}
	return false
}

// Identity is the caller on whose behalf backend requests are made.
// It replaces ad hoc reads of localStorage and cookies: every component
// that needs to know who is acting receives one explicitly.
type Identity struct {
	JobseekerID string
	// EmployerID is the employer_id cookie value, last in the company
	// resolution chain.
	EmployerID string
	Role       Role
	// Token is forwarded to the backend as a bearer token.
	Token string
}

// Require returns ErrMissingIdentity when no jobseeker id is known.
func (i Identity) Require() error {
	if strings.TrimSpace(i.JobseekerID) == "" {
		return ErrMissingIdentity
	}
	return nil
}

// Employer is one hiring relationship returned by the backend.
type Employer struct {
	CompanyID   string
	EmployeeID  string
	CompanyName string
}

type Source string

const (
	SourceNone    Source = ""
	SourceCache   Source = "cache"
	SourceSession Source = "active_session"
	SourceLookup  Source = "hiring_employer"
	SourceCookie  Source = "cookie"
)

// Resolved holds the identifiers found for a job seeker and where each came from.
type Resolved struct {
	CompanyID      string
	CompanySource  Source
	EmployeeID     string
	EmployeeSource Source
}

func (r Resolved) CompanyIDPtr() *string {
	if r.CompanyID == "" {
		return nil
	}
	v := r.CompanyID
	return &v
}

func (r Resolved) EmployeeIDPtr() *string {
	if r.EmployeeID == "" {
		return nil
	}
	v := r.EmployeeID
	return &v
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored by WithIdentity.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
