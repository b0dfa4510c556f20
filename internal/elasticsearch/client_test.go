package elasticsearch_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/job-radar/internal/elasticsearch"
	"github.com/DeafMist/job-radar/internal/models"
)

type fakeCluster struct {
	mu       sync.Mutex
	requests []string
	bodies   []string
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodGet && r.URL.Path == "/" {
		_, _ = w.Write([]byte(`{"version":{"number":"8.19.0"}}`))
		return
	}

	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.bodies = append(f.bodies, string(body))
	f.mu.Unlock()

	switch {
	case strings.HasSuffix(r.URL.Path, "/_delete_by_query"):
		_, _ = w.Write([]byte(`{"deleted": 4}`))
	case strings.HasSuffix(r.URL.Path, "/_search"):
		_, _ = w.Write([]byte(`{"hits":{"total":{"value":1},"hits":[{"_id":"abc","_source":{"name":"Backend Engineer","industry":"IT"}}]}}`))
	default:
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	}
}

func newClient(t *testing.T, f *fakeCluster) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	c, err := elasticsearch.New(srv.URL, "jobs", nil)
	require.NoError(t, err)
	return c
}

func TestReplaceClearsThenIndexes(t *testing.T) {
	f := &fakeCluster{}
	c := newClient(t, f)

	n, err := c.Replace(context.Background(), []models.MergedRecord{
		{ID: "id-1", Name: "A"},
		{ID: "id-2", Name: "B"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.Equal(t, []string{
		"POST /jobs/_delete_by_query",
		"PUT /jobs/_doc/id-1",
		"PUT /jobs/_doc/id-2",
	}, f.requests)
	require.JSONEq(t, `{"query":{"match_all":{}}}`, f.bodies[0])
}

func TestSearchJobsFilters(t *testing.T) {
	f := &fakeCluster{}
	c := newClient(t, f)

	res, err := c.SearchJobs(context.Background(), elasticsearch.SearchParams{
		Query:    "golang",
		Industry: "IT",
		City:     "Hà Nội",
		Size:     500,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	require.Equal(t, "abc", res.Items[0].ID)
	require.Equal(t, "Backend Engineer", res.Items[0].Record.Name)

	var body struct {
		Size  int `json:"size"`
		Query struct {
			Bool struct {
				Must   []map[string]any `json:"must"`
				Filter []map[string]any `json:"filter"`
			} `json:"bool"`
		} `json:"query"`
	}
	require.NoError(t, json.Unmarshal([]byte(f.bodies[0]), &body))
	require.Equal(t, 200, body.Size)
	require.Len(t, body.Query.Bool.Must, 1)
	require.Len(t, body.Query.Bool.Filter, 2)
	require.Equal(t, map[string]any{"term": map[string]any{"industry.keyword": "IT"}}, body.Query.Bool.Filter[0])
	require.Equal(t, map[string]any{"term": map[string]any{"city_guess.keyword": "Hà Nội"}}, body.Query.Bool.Filter[1])
}
