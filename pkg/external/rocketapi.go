package external

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"instagram-profile-compare/pkg/metrics"
)

const (
	DefaultBaseURL = "https://v1.rocketapi.io"
	defaultTimeout = 30 * time.Second

	// RocketAPI media_type for videos; photos (1) and carousels (8) are images
	mediaTypeVideo = 2
)

// FetchReason classifies why a profile could not be fetched
type FetchReason string

const (
	ReasonNotFound        FetchReason = "not_found"
	ReasonUnauthorized    FetchReason = "unauthorized"
	ReasonRateLimited     FetchReason = "rate_limited"
	ReasonNetwork         FetchReason = "network"
	ReasonInvalidResponse FetchReason = "invalid_response"
)

// FetchError is returned when a profile cannot be fetched
type FetchError struct {
	Username string
	Reason   FetchReason
	Err      error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch profile %s: %s: %v", e.Username, e.Reason, e.Err)
	}
	return fmt.Sprintf("fetch profile %s: %s", e.Username, e.Reason)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a FetchError for an unknown user
func IsNotFound(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.Reason == ReasonNotFound
}

// RocketAPIClient fetches public Instagram profiles through RocketAPI
type RocketAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ClientOption configures the RocketAPIClient
type ClientOption func(*RocketAPIClient)

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) ClientOption {
	return func(c *RocketAPIClient) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *RocketAPIClient) {
		c.httpClient = httpClient
	}
}

// NewRocketAPIClient creates a RocketAPI client
func NewRocketAPIClient(apiKey string, opts ...ClientOption) *RocketAPIClient {
	c := &RocketAPIClient{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.apiKey == "" {
		log.Warn().Msg("ROCKETAPI_KEY not set, requests will be rejected upstream")
	}

	return c
}

// RocketAPIResponse represents the wrapper response from RocketAPI
type RocketAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Response struct {
		StatusCode int             `json:"status_code"`
		Body       json.RawMessage `json:"body"`
	} `json:"response"`
}

// RocketAPIUser represents the user data from RocketAPI
type RocketAPIUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	FullName      string `json:"full_name"`
	IsPrivate     bool   `json:"is_private"`
	ProfilePicURL string `json:"profile_pic_url"`

	EdgeFollow struct {
		Count int64 `json:"count"`
	} `json:"edge_follow"`

	EdgeFollowedBy struct {
		Count int64 `json:"count"`
	} `json:"edge_followed_by"`

	EdgeOwnerToTimelineMedia struct {
		Count int64 `json:"count"`
	} `json:"edge_owner_to_timeline_media"`
}

// RocketAPIMedia represents a single media item from RocketAPI
type RocketAPIMedia struct {
	MediaType    int   `json:"media_type"`
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
	Caption      *struct {
		Text string `json:"text"`
	} `json:"caption"`
	ImageVersions2 struct {
		Candidates []struct {
			URL string `json:"url"`
		} `json:"candidates"`
	} `json:"image_versions2"`
	VideoVersions []struct {
		URL string `json:"url"`
	} `json:"video_versions"`
}

// FetchProfile fetches a profile and its first maxPosts posts, most recent first
func (c *RocketAPIClient) FetchProfile(ctx context.Context, username string, maxPosts int) (*metrics.Profile, error) {
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}

	log.Debug().Str("username", username).Int("max_posts", maxPosts).Msg("fetching Instagram profile")

	var userResp struct {
		User RocketAPIUser `json:"user"`
	}
	if err := c.call(ctx, username, "/instagram/user/get_info", map[string]any{"username": username}, &userResp); err != nil {
		return nil, err
	}

	user := userResp.User
	if user.ID == "" {
		return nil, &FetchError{Username: username, Reason: ReasonNotFound, Err: errors.New("empty user payload")}
	}

	profile := &metrics.Profile{
		DisplayName:   user.Username,
		ProfilePicURL: user.ProfilePicURL,
		Followers:     user.EdgeFollowedBy.Count,
		Following:     user.EdgeFollow.Count,
		PostCount:     user.EdgeOwnerToTimelineMedia.Count,
		Posts:         []metrics.Post{},
	}
	if profile.DisplayName == "" {
		profile.DisplayName = username
	}

	if maxPosts > 0 && !user.IsPrivate {
		posts, err := c.fetchMedia(ctx, username, user.ID, maxPosts)
		if err != nil {
			return nil, err
		}
		profile.Posts = posts
	}

	truncated := profile.Truncate(maxPosts)

	log.Debug().
		Str("username", username).
		Int64("followers", truncated.Followers).
		Int("posts", len(truncated.Posts)).
		Bool("private", user.IsPrivate).
		Msg("successfully fetched Instagram profile")

	return &truncated, nil
}

func (c *RocketAPIClient) fetchMedia(ctx context.Context, username, userID string, count int) ([]metrics.Post, error) {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, &FetchError{Username: username, Reason: ReasonInvalidResponse, Err: fmt.Errorf("invalid user id %q", userID)}
	}

	var mediaResp struct {
		Items []RocketAPIMedia `json:"items"`
	}
	if err := c.call(ctx, username, "/instagram/user/get_media", map[string]any{"id": id, "count": count}, &mediaResp); err != nil {
		return nil, err
	}

	posts := make([]metrics.Post, 0, len(mediaResp.Items))
	for _, item := range mediaResp.Items {
		posts = append(posts, toPost(item))
	}
	return posts, nil
}

func toPost(item RocketAPIMedia) metrics.Post {
	post := metrics.Post{
		MediaType: metrics.MediaTypeImage,
		Likes:     item.LikeCount,
		Comments:  item.CommentCount,
	}
	if item.Caption != nil {
		post.Caption = item.Caption.Text
	}

	if item.MediaType == mediaTypeVideo {
		post.MediaType = metrics.MediaTypeVideo
		if len(item.VideoVersions) > 0 {
			post.MediaURL = item.VideoVersions[0].URL
		}
	} else if len(item.ImageVersions2.Candidates) > 0 {
		post.MediaURL = item.ImageVersions2.Candidates[0].URL
	}

	return post
}

// call posts payload to a RocketAPI endpoint and decodes the wrapped body into out
func (c *RocketAPIClient) call(ctx context.Context, username, path string, payload any, out any) error {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Token %s", c.apiKey))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Username: username, Reason: ReasonNetwork, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return &FetchError{Username: username, Reason: ReasonNetwork, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if reason, failed := classifyStatus(res.StatusCode); failed {
		log.Warn().
			Str("username", username).
			Str("path", path).
			Int("status", res.StatusCode).
			Msg("RocketAPI request failed")
		return &FetchError{Username: username, Reason: reason, Err: fmt.Errorf("HTTP %d", res.StatusCode)}
	}

	var resp RocketAPIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return &FetchError{Username: username, Reason: ReasonInvalidResponse, Err: err}
	}

	if resp.Status == "error" || resp.Status == "fail" {
		if strings.Contains(strings.ToLower(resp.Message), "not found") {
			return &FetchError{Username: username, Reason: ReasonNotFound, Err: errors.New(resp.Message)}
		}
		return &FetchError{Username: username, Reason: ReasonNetwork, Err: fmt.Errorf("RocketAPI error: %s", resp.Message)}
	}

	if resp.Response.StatusCode != 0 {
		if reason, failed := classifyStatus(resp.Response.StatusCode); failed {
			return &FetchError{Username: username, Reason: reason, Err: fmt.Errorf("instagram status %d", resp.Response.StatusCode)}
		}
	}

	if err := json.Unmarshal(resp.Response.Body, out); err != nil {
		return &FetchError{Username: username, Reason: ReasonInvalidResponse, Err: err}
	}

	return nil
}

func classifyStatus(code int) (FetchReason, bool) {
	switch {
	case code == http.StatusOK:
		return "", false
	case code == http.StatusNotFound:
		return ReasonNotFound, true
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ReasonUnauthorized, true
	case code == http.StatusTooManyRequests:
		return ReasonRateLimited, true
	default:
		return ReasonNetwork, true
	}
}
