package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hy4ri/projtrack/internal/api"
	"github.com/hy4ri/projtrack/internal/format"
)

// fakeSource returns canned projects and counts fetches.
type fakeSource struct {
	projects []api.Project
	err      error
	calls    int
}

func (f *fakeSource) FetchProjects(ctx context.Context) ([]api.Project, error) {
	f.calls++
	return f.projects, f.err
}

func project(id string, end float64, active bool) api.Project {
	return api.Project{
		ID:          api.ID(id),
		StartDate:   api.Num(0),
		EndDate:     api.Num(end),
		CurrentStep: api.Num(1),
		TotalSteps:  api.Num(2),
		Active:      active,
	}
}

func loaded(t *testing.T, projects ...api.Project) *Store {
	t.Helper()
	s := New(&fakeSource{projects: projects}, format.New(time.UTC), zap.NewNop())
	require.NoError(t, s.Load(context.Background()))
	return s
}

func ids(records []*Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestLoadSortsByEndDate(t *testing.T) {
	s := loaded(t, project("1", 200, true), project("2", 100, true))

	if diff := cmp.Diff([]string{"2", "1"}, ids(s.All())); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, s.Ready())
}

func TestLoadSortIsStable(t *testing.T) {
	s := loaded(t,
		project("c", 300, true),
		project("a", 100, true),
		project("b", 100, false),
		project("d", 50, false),
	)

	if diff := cmp.Diff([]string{"d", "a", "b", "c"}, ids(s.All())); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSortsWithinSameSecond(t *testing.T) {
	s := loaded(t,
		project("late", 100.7, true),
		project("early", 100.2, true),
		project("next", 101, true),
	)

	if diff := cmp.Diff([]string{"early", "late", "next"}, ids(s.All())); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSkipsBadRecords(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	noEnd := project("no-end", 0, true)
	noEnd.EndDate = api.Number{}

	src := &fakeSource{projects: []api.Project{
		project("1", 100, true),
		noEnd,
		project("1", 200, true),
		project("", 300, true),
		project("2", 400, false),
	}}
	s := New(src, format.New(time.UTC), zap.New(core))
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, []string{"1", "2"}, ids(s.All()))
	assert.Equal(t, 3, s.Skipped())
	assert.Equal(t, 3, logs.FilterMessage("skipping project").Len())

	var errs []error
	for _, entry := range logs.All() {
		if err, ok := entry.ContextMap()["error"]; ok {
			errs = append(errs, errors.New(err.(string)))
		}
	}
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), format.ErrInvalidTimestamp.Error())
	assert.Contains(t, errs[1].Error(), ErrDuplicateID.Error())
	assert.Contains(t, errs[2].Error(), ErrMissingID.Error())
}

func TestLoadFailureIsTerminal(t *testing.T) {
	boom := errors.New("connection refused")
	src := &fakeSource{err: boom}
	s := New(src, format.New(time.UTC), nil)

	err := s.Load(context.Background())
	require.ErrorIs(t, err, boom)
	assert.False(t, s.Ready())
	assert.Zero(t, s.Len())

	// No retry: a second attempt is refused without fetching again.
	assert.ErrorIs(t, s.Load(context.Background()), ErrAlreadyLoaded)
	assert.Equal(t, 1, src.calls)
}

func TestLoadOnlyOnce(t *testing.T) {
	src := &fakeSource{projects: []api.Project{project("1", 1, true)}}
	s := New(src, format.New(time.UTC), nil)

	require.NoError(t, s.Load(context.Background()))
	assert.ErrorIs(t, s.Load(context.Background()), ErrAlreadyLoaded)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, 1, s.Len())
}

func TestLoadEmptyDocumentIsReady(t *testing.T) {
	s := loaded(t)
	assert.True(t, s.Ready())
	assert.Zero(t, s.Len())
}

func TestFilter(t *testing.T) {
	s := loaded(t,
		project("a", 300, false),
		project("b", 100, true),
		project("c", 200, false),
	)

	tests := []struct {
		kind FilterKind
		want []string
	}{
		{FilterAll, []string{"b", "c", "a"}},
		{FilterActive, []string{"b"}},
		{FilterInactive, []string{"c", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ids(s.Filter(tt.kind))); diff != "" {
				t.Errorf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGet(t *testing.T) {
	s := loaded(t, project("a", 1, true))

	r, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "a", r.ID)

	_, err = s.Get("zzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNextWrapsOverFullList(t *testing.T) {
	s := loaded(t,
		project("first", 100, true),
		project("middle", 200, false),
		project("last", 300, true),
	)

	next, err := s.Next("first")
	require.NoError(t, err)
	assert.Equal(t, "middle", next.ID, "next must not skip inactive records")

	next, err = s.Next("last")
	require.NoError(t, err)
	assert.Equal(t, "first", next.ID)

	prev, err := s.Prev("first")
	require.NoError(t, err)
	assert.Equal(t, "last", prev.ID)

	_, err = s.Next("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNextSingleRecord(t *testing.T) {
	s := loaded(t, project("only", 1, true))

	next, err := s.Next("only")
	require.NoError(t, err)
	assert.Equal(t, "only", next.ID)
}

func TestNextEmpty(t *testing.T) {
	s := loaded(t)

	_, err := s.Next("x")
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = s.Prev("x")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestAllReturnsCopy(t *testing.T) {
	s := loaded(t, project("a", 1, true), project("b", 2, true))

	all := s.All()
	all[0], all[1] = all[1], all[0]
	assert.Equal(t, []string{"a", "b"}, ids(s.All()))
}

func TestLoadOverHTTP(t *testing.T) {
	defer goleak.VerifyNone(t)

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"projects":[
			{"id":1,"start_date":0,"end_date":200,"current_step":1,"total_steps":3,"active":true},
			{"id":2,"start_date":0,"end_date":100,"current_step":0,"total_steps":0,"active":false}
		]}`))
	}))

	transport := &http.Transport{DisableKeepAlives: true}
	client := api.NewClient(server.URL+"/challenge.json", time.Second)
	client.SetHTTPClient(&http.Client{Transport: transport})

	s := New(client, format.New(time.UTC), zap.NewNop())
	require.NoError(t, s.Load(context.Background()))

	transport.CloseIdleConnections()
	server.Close()

	assert.Equal(t, 1, requests)
	assert.Equal(t, []string{"2", "1"}, ids(s.All()))

	r, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, 33, r.ProgressRatio)
}
