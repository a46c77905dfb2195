package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"instagram-profile-compare/pkg/metrics"
	"instagram-profile-compare/pkg/report"
	"instagram-profile-compare/pkg/session"
)

var (
	ErrMissingUsername     = errors.New("both usernames are required")
	ErrAnalysisAlreadyDone = errors.New("an analysis was already performed in this session")
)

// ProfileFetcher fetches a profile with at most maxPosts recent posts
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, username string, maxPosts int) (*metrics.Profile, error)
}

// ProfileSummary is the header information shown for an analysed profile
type ProfileSummary struct {
	Name          string        `json:"name"`
	ProfilePicURL string        `json:"profile_pic_url,omitempty"`
	Followers     int64         `json:"followers"`
	Following     int64         `json:"following"`
	PostCount     int64         `json:"post_count"`
	LatestPost    *metrics.Post `json:"latest_post,omitempty"`
}

// Analysis is the full outcome of comparing two profiles
type Analysis struct {
	Profiles   [2]ProfileSummary   `json:"profiles"`
	Comparison *metrics.Comparison `json:"comparison"`
	Report     report.Report       `json:"report"`
}

// Service runs profile comparisons gated by session state
type Service struct {
	fetcher  ProfileFetcher
	sessions session.Store
	offer    report.Offer
	maxPosts int
}

// NewService creates a new analysis service
func NewService(fetcher ProfileFetcher, sessions session.Store, offer report.Offer, maxPosts int) *Service {
	if maxPosts <= 0 {
		maxPosts = metrics.DefaultMaxPosts
	}

	return &Service{
		fetcher:  fetcher,
		sessions: sessions,
		offer:    offer,
		maxPosts: maxPosts,
	}
}

// Offer returns the paid report call-to-action
func (s *Service) Offer() report.Offer {
	return s.offer
}

// Profile fetches a single profile
func (s *Service) Profile(ctx context.Context, username string) (*metrics.Profile, error) {
	return s.fetcher.FetchProfile(ctx, strings.TrimSpace(username), s.maxPosts)
}

// Analyze fetches both profiles and compares them. A session can complete
// one analysis; failed attempts leave it open.
func (s *Service) Analyze(ctx context.Context, sessionID, usernameA, usernameB string) (*Analysis, error) {
	usernameA, usernameB = strings.TrimSpace(usernameA), strings.TrimSpace(usernameB)
	if usernameA == "" || usernameB == "" {
		return nil, ErrMissingUsername
	}

	state, err := s.sessions.State(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}
	if state == session.StateDone {
		return nil, ErrAnalysisAlreadyDone
	}

	logger := log.With().
		Str("session_id", sessionID).
		Str("username_1", usernameA).
		Str("username_2", usernameB).
		Logger()

	var profiles [2]*metrics.Profile
	g, gctx := errgroup.WithContext(ctx)
	for i, username := range []string{usernameA, usernameB} {
		i, username := i, username
		g.Go(func() error {
			p, err := s.fetcher.FetchProfile(gctx, username, s.maxPosts)
			if err != nil {
				return err
			}
			profiles[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("failed to fetch profiles")
		return nil, err
	}

	comparison, err := metrics.Compare(*profiles[0], *profiles[1], s.maxPosts)
	if err != nil {
		logger.Warn().Err(err).Msg("profiles cannot be compared")
		return nil, err
	}

	changed, err := s.sessions.MarkDone(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to update session state: %w", err)
	}
	if !changed {
		return nil, ErrAnalysisAlreadyDone
	}

	logger.Info().
		Float64("engagement_rate_1", comparison.A().EngagementRate).
		Float64("engagement_rate_2", comparison.B().EngagementRate).
		Str("likes_leader", comparison.LikesLeader).
		Str("comments_leader", comparison.CommentsLeader).
		Msg("analysis completed")

	return &Analysis{
		Profiles:   [2]ProfileSummary{summarize(profiles[0]), summarize(profiles[1])},
		Comparison: comparison,
		Report:     report.Build(comparison, s.offer),
	}, nil
}

func summarize(p *metrics.Profile) ProfileSummary {
	summary := ProfileSummary{
		Name:          p.DisplayName,
		ProfilePicURL: p.ProfilePicURL,
		Followers:     p.Followers,
		Following:     p.Following,
		PostCount:     p.PostCount,
	}
	if post, ok := p.LatestPost(); ok {
		summary.LatestPost = &post
	}
	return summary
}
