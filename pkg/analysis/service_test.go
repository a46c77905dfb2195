package analysis

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"instagram-profile-compare/pkg/external"
	"instagram-profile-compare/pkg/metrics"
	"instagram-profile-compare/pkg/report"
	"instagram-profile-compare/pkg/session"
)

type fakeFetcher struct {
	mu       sync.Mutex
	profiles map[string]metrics.Profile
	calls    []string
	maxPosts []int
}

func (f *fakeFetcher) FetchProfile(_ context.Context, username string, maxPosts int) (*metrics.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, username)
	f.maxPosts = append(f.maxPosts, maxPosts)

	p, ok := f.profiles[username]
	if !ok {
		return nil, &external.FetchError{Username: username, Reason: external.ReasonNotFound}
	}
	return &p, nil
}

func newFetcher() *fakeFetcher {
	return &fakeFetcher{profiles: map[string]metrics.Profile{
		"alice": {
			DisplayName: "alice",
			Followers:   1000,
			Following:   10,
			PostCount:   2,
			Posts: []metrics.Post{
				{MediaType: metrics.MediaTypeImage, Likes: 100, Comments: 10, MediaURL: "https://cdn.example.com/a1.jpg"},
			},
		},
		"bob": {
			DisplayName: "bob",
			Followers:   500,
			Posts: []metrics.Post{
				{MediaType: metrics.MediaTypeVideo, Likes: 80, Comments: 20},
			},
		},
		"nobody": {DisplayName: "nobody", Followers: 0},
		"quiet":  {DisplayName: "quiet", Followers: 10},
	}}
}

func TestAnalyze(t *testing.T) {
	fetcher := newFetcher()
	svc := NewService(fetcher, session.NewMemoryStore(), report.NewOffer("", ""), 0)

	result, err := svc.Analyze(context.Background(), "s1", " alice ", "bob")
	require.NoError(t, err)

	require.Equal(t, "alice", result.Profiles[0].Name)
	require.Equal(t, int64(1000), result.Profiles[0].Followers)
	require.NotNil(t, result.Profiles[0].LatestPost)
	require.Equal(t, "https://cdn.example.com/a1.jpg", result.Profiles[0].LatestPost.MediaURL)
	require.Equal(t, "bob", result.Profiles[1].Name)

	require.Equal(t, 11.0, result.Comparison.A().EngagementRate)
	require.Equal(t, 20.0, result.Comparison.B().EngagementRate)
	require.Equal(t, "alice", result.Comparison.LikesLeader)
	require.Equal(t, "bob", result.Comparison.CommentsLeader)
	require.Equal(t, report.DefaultFormURL, result.Report.Offer.FormURL)
	require.Contains(t, result.Report.LikesVerdict, "alice performs better")

	require.ElementsMatch(t, []string{"alice", "bob"}, fetcher.calls)
	require.Equal(t, []int{metrics.DefaultMaxPosts, metrics.DefaultMaxPosts}, fetcher.maxPosts)
}

func TestAnalyze_OncePerSession(t *testing.T) {
	fetcher := newFetcher()
	sessions := session.NewMemoryStore()
	svc := NewService(fetcher, sessions, report.NewOffer("", ""), 5)
	ctx := context.Background()

	_, err := svc.Analyze(ctx, "s1", "alice", "bob")
	require.NoError(t, err)

	_, err = svc.Analyze(ctx, "s1", "alice", "bob")
	require.ErrorIs(t, err, ErrAnalysisAlreadyDone)
	require.Len(t, fetcher.calls, 2)

	_, err = svc.Analyze(ctx, "s2", "bob", "alice")
	require.NoError(t, err)
}

func TestAnalyze_MissingUsername(t *testing.T) {
	svc := NewService(newFetcher(), session.NewMemoryStore(), report.NewOffer("", ""), 5)

	_, err := svc.Analyze(context.Background(), "s1", "alice", "  ")
	require.ErrorIs(t, err, ErrMissingUsername)

	_, err = svc.Analyze(context.Background(), "s1", "", "bob")
	require.ErrorIs(t, err, ErrMissingUsername)
}

func TestAnalyze_FailuresKeepSessionOpen(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		checkErr func(t *testing.T, err error)
	}{
		{
			name: "fetch error",
			a:    "alice",
			b:    "ghost",
			checkErr: func(t *testing.T, err error) {
				require.True(t, external.IsNotFound(err))
			},
		},
		{
			name: "zero followers",
			a:    "nobody",
			b:    "bob",
			checkErr: func(t *testing.T, err error) {
				var undefined metrics.UndefinedEngagementError
				require.True(t, errors.As(err, &undefined))
				require.Equal(t, "nobody", undefined.Profile)
			},
		},
		{
			name: "no posts",
			a:    "alice",
			b:    "quiet",
			checkErr: func(t *testing.T, err error) {
				var insufficient metrics.InsufficientDataError
				require.True(t, errors.As(err, &insufficient))
				require.Equal(t, "quiet", insufficient.Profile)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			sessions := session.NewMemoryStore()
			svc := NewService(newFetcher(), sessions, report.NewOffer("", ""), 5)

			result, err := svc.Analyze(ctx, "s1", tt.a, tt.b)
			require.Nil(t, result)
			tt.checkErr(t, err)

			state, err := sessions.State(ctx, "s1")
			require.NoError(t, err)
			require.Equal(t, session.StateNotStarted, state)
		})
	}
}

type failingStore struct{}

func (failingStore) State(context.Context, string) (session.State, error) {
	return "", errors.New("connection refused")
}

func (failingStore) MarkDone(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func TestAnalyze_SessionStoreError(t *testing.T) {
	svc := NewService(newFetcher(), failingStore{}, report.NewOffer("", ""), 5)

	_, err := svc.Analyze(context.Background(), "s1", "alice", "bob")
	require.ErrorContains(t, err, "failed to read session state")
}

func TestProfile(t *testing.T) {
	svc := NewService(newFetcher(), session.NewMemoryStore(), report.NewOffer("", ""), 3)

	p, err := svc.Profile(context.Background(), "alice ")
	require.NoError(t, err)
	require.Equal(t, "alice", p.DisplayName)

	_, err = svc.Profile(context.Background(), "ghost")
	require.True(t, external.IsNotFound(err))
}
