package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/timetracking"
	"github.com/cmlabs-hris/seeker-tracker/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	active *timetracking.Session
	err    error
	calls  int
}

func (f *fakeSessions) GetActiveSession(ctx context.Context, id identity.Identity) (*timetracking.Session, error) {
	f.calls++
	return f.active, f.err
}

type fakeEmployers struct {
	employers []identity.Employer
	hired     bool
	err       error
	calls     int
}

func (f *fakeEmployers) ListHiringEmployers(ctx context.Context, id identity.Identity) ([]identity.Employer, error) {
	f.calls++
	return f.employers, f.err
}

func (f *fakeEmployers) IsHired(ctx context.Context, id identity.Identity) (bool, error) {
	return f.hired, f.err
}

var seeker = identity.Identity{JobseekerID: "42", EmployerID: "cookie-co", Role: identity.RoleJobseeker}

func TestResolve_Precedence(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		cached      string
		active      *timetracking.Session
		employers   []identity.Employer
		id          identity.Identity
		wantCompany string
		wantCSource identity.Source
		wantEmp     string
		wantESource identity.Source
	}{
		{
			name:        "cache wins for company, session for employee",
			cached:      "cached-co",
			active:      &timetracking.Session{CompanyID: "session-co", EmployeeID: "session-emp"},
			id:          seeker,
			wantCompany: "cached-co",
			wantCSource: identity.SourceCache,
			wantEmp:     "session-emp",
			wantESource: identity.SourceSession,
		},
		{
			name:        "active session",
			active:      &timetracking.Session{CompanyID: "session-co", EmployeeID: "session-emp"},
			employers:   []identity.Employer{{CompanyID: "lookup-co", EmployeeID: "lookup-emp"}},
			id:          seeker,
			wantCompany: "session-co",
			wantCSource: identity.SourceSession,
			wantEmp:     "session-emp",
			wantESource: identity.SourceSession,
		},
		{
			name:        "hiring lookup",
			employers:   []identity.Employer{{CompanyID: ""}, {CompanyID: "lookup-co", EmployeeID: "lookup-emp"}},
			id:          seeker,
			wantCompany: "lookup-co",
			wantCSource: identity.SourceLookup,
			wantEmp:     "lookup-emp",
			wantESource: identity.SourceLookup,
		},
		{
			name:        "cookie fallback",
			id:          seeker,
			wantCompany: "cookie-co",
			wantCSource: identity.SourceCookie,
		},
		{
			name:        "nothing found",
			id:          identity.Identity{JobseekerID: "42"},
			wantCSource: identity.SourceNone,
			wantESource: identity.SourceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := memory.NewCompanyCache()
			if tt.cached != "" {
				require.NoError(t, cache.Put(ctx, tt.id.JobseekerID, tt.cached))
			}
			r := NewResolver(cache, &fakeSessions{active: tt.active}, &fakeEmployers{employers: tt.employers})

			got, err := r.Resolve(ctx, tt.id)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCompany, got.CompanyID)
			assert.Equal(t, tt.wantCSource, got.CompanySource)
			assert.Equal(t, tt.wantEmp, got.EmployeeID)
			assert.Equal(t, tt.wantESource, got.EmployeeSource)
		})
	}
}

func TestResolve_CachesFoundCompanyButNotCookie(t *testing.T) {
	ctx := context.Background()

	cache := memory.NewCompanyCache()
	r := NewResolver(cache, &fakeSessions{}, &fakeEmployers{employers: []identity.Employer{{CompanyID: "lookup-co"}}})
	_, err := r.Resolve(ctx, seeker)
	require.NoError(t, err)

	companyID, ok, err := cache.Get(ctx, "42")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "lookup-co", companyID)

	cookieOnly := memory.NewCompanyCache()
	r = NewResolver(cookieOnly, &fakeSessions{}, &fakeEmployers{})
	got, err := r.Resolve(ctx, seeker)
	require.NoError(t, err)
	assert.Equal(t, identity.SourceCookie, got.CompanySource)

	_, ok, err = cookieOnly.Get(ctx, "42")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolve_LookupFailuresAreBestEffort(t *testing.T) {
	sessions := &fakeSessions{err: errors.New("down")}
	employers := &fakeEmployers{err: errors.New("down")}
	r := NewResolver(memory.NewCompanyCache(), sessions, employers)

	got, err := r.Resolve(context.Background(), seeker)

	require.NoError(t, err)
	assert.Equal(t, "cookie-co", got.CompanyID)
	assert.Empty(t, got.EmployeeID)
	assert.Equal(t, 1, sessions.calls)
	assert.Equal(t, 1, employers.calls)
}

func TestResolve_EmployeeMatchesResolvedCompany(t *testing.T) {
	employers := &fakeEmployers{employers: []identity.Employer{
		{CompanyID: "other", EmployeeID: "emp-other"},
		{CompanyID: "cached-co", EmployeeID: "emp-match"},
	}}
	cache := memory.NewCompanyCache()
	require.NoError(t, cache.Put(context.Background(), "42", "cached-co"))
	r := NewResolver(cache, &fakeSessions{}, employers)

	got, err := r.Resolve(context.Background(), seeker)

	require.NoError(t, err)
	assert.Equal(t, "emp-match", got.EmployeeID)
}

func TestResolve_MissingIdentity(t *testing.T) {
	r := NewResolver(nil, nil, nil)

	_, err := r.Resolve(context.Background(), identity.Identity{})
	assert.ErrorIs(t, err, identity.ErrMissingIdentity)

	_, err = r.IsHired(context.Background(), identity.Identity{})
	assert.ErrorIs(t, err, identity.ErrMissingIdentity)
}

func TestIsHired(t *testing.T) {
	r := NewResolver(nil, nil, &fakeEmployers{hired: true})
	hired, err := r.IsHired(context.Background(), seeker)
	require.NoError(t, err)
	assert.True(t, hired)

	boom := errors.New("boom")
	r = NewResolver(nil, nil, &fakeEmployers{err: boom})
	_, err = r.IsHired(context.Background(), seeker)
	assert.ErrorIs(t, err, boom)
}
