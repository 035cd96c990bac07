package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second)
}

func TestClient_Get_DecodesData(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/seeker/profile/is_hired", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("jobseeker_id"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		fmt.Fprint(w, `{"success":true,"data":{"is_hired":true}}`)
	})

	var out struct {
		IsHired bool `json:"is_hired"`
	}
	err := client.Get(context.Background(), "/api/seeker/profile/is_hired", url.Values{"jobseeker_id": {"42"}}, "tok", &out)

	require.NoError(t, err)
	assert.True(t, out.IsHired)
}

func TestClient_Get_NullDataLeavesOutUntouched(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":null}`)
	})

	out := &struct{ ID int }{ID: 9}
	require.NoError(t, client.Get(context.Background(), "/x", nil, "", out))
	assert.Equal(t, 9, out.ID)
}

func TestClient_BusinessFailureKeepsMessage(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false,"message":"Already clocked in"}`)
	})

	err := client.PostForm(context.Background(), "/clock_in", url.Values{"jobseeker_id": {"1"}}, "", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Already clocked in", apiErr.Message)
	assert.Equal(t, "Already clocked in", Message(err, "generic"))
}

func TestClient_ErrorStatusWithNestedMessage(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"success":false,"error":{"code":"X","message":"Reason too long"}}`)
	})

	err := client.Get(context.Background(), "/x", nil, "", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "Reason too long", apiErr.Message)
}

func TestClient_NonJSONIsUnavailable(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>bad gateway</html>")
	})

	err := client.Get(context.Background(), "/x", nil, "", nil)

	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, "generic", Message(err, "generic"))
}

func TestClient_NetworkFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(srv.URL, time.Second)
	srv.Close()

	err := client.Get(context.Background(), "/x", nil, "", nil)

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_PostForm_SendsMultipartFields(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "1", r.FormValue("jobseeker_id"))
		assert.Equal(t, "Jakarta", r.FormValue("location"))
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"success":true,"message":"ok"}`)
	})

	err := client.PostForm(context.Background(), "/clock_in", url.Values{
		"jobseeker_id": {"1"},
		"location":     {"Jakarta"},
	}, "", nil)

	assert.NoError(t, err)
}
