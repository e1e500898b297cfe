package target_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"ipam-migrator/core/remote"
	"ipam-migrator/core/target"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.Handler) *target.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return target.NewClient(target.Config{URL: srv.URL, Token: "nb-token", TimeoutSeconds: 5}, nil)
}

func TestFilter(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ipam/vrfs/", r.URL.Path)
		assert.Equal(t, "CORP", r.URL.Query().Get("name"))
		assert.Equal(t, "Token nb-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"count":1,"results":[{"id":7,"name":"CORP","rd":"65000:1"}]}`)
	}))

	recs, err := c.Filter(context.Background(), target.CollectionVRFs, url.Values{"name": {"CORP"}})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 7, recs[0].ID())
	assert.Equal(t, "CORP", recs[0].Name())
}

func TestFilter_NoMatchIsEmpty(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"count":0,"results":[]}`)
	}))

	recs, err := c.Filter(context.Background(), target.CollectionPrefixes, nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestCreate(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "CORP", payload["name"])

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":12,"name":"CORP"}`)
	}))

	rec, err := c.Create(context.Background(), target.CollectionVRFs, map[string]any{"name": "CORP"})
	require.NoError(t, err)
	assert.Equal(t, 12, rec.ID())
}

func TestCreate_SemanticRejection(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"prefix":["Duplicate prefix found in VRF."]}`)
	}))

	_, err := c.Create(context.Background(), target.CollectionPrefixes, map[string]any{"prefix": "10.0.0.0/24"})
	require.Error(t, err)
	assert.True(t, remote.IsSemantic(err))
	assert.True(t, remote.IsDuplicate(err))
}

func TestCreate_TransientRejection(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := c.Create(context.Background(), target.CollectionVLANs, map[string]any{"vid": 10})
	require.Error(t, err)
	assert.True(t, remote.IsTransient(err))
}

func TestUpdate(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/ipam/prefixes/42/", r.URL.Path)
		fmt.Fprint(w, `{"id":42,"description":"updated"}`)
	}))

	rec, err := c.Update(context.Background(), target.CollectionPrefixes, 42, map[string]any{"description": "updated"})
	require.NoError(t, err)
	assert.Equal(t, 42, rec.ID())
}

func TestListAll_FollowsPagination(t *testing.T) {
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/api/dcim/sites/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("offset") == "1" {
			fmt.Fprint(w, `{"count":2,"next":null,"results":[{"id":2,"name":"DC2"}]}`)
			return
		}
		next := srv.URL + "/api/dcim/sites/?offset=1"
		fmt.Fprintf(w, `{"count":2,"next":%q,"results":[{"id":1,"name":"DC1"}]}`, next)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := target.NewClient(target.Config{URL: srv.URL, Token: "t", TimeoutSeconds: 5}, nil)
	recs, err := c.ListAll(context.Background(), target.CollectionSites)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "DC1", recs[0].Name())
	assert.Equal(t, "DC2", recs[1].Name())
}
