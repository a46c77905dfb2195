package metrics

import "fmt"

// MediaType is the kind of media a post carries
type MediaType string

const (
	MediaTypeImage MediaType = "Image"
	MediaTypeVideo MediaType = "Video"
)

// Post represents a single sampled Instagram post
type Post struct {
	MediaURL  string    `json:"media_url"`
	MediaType MediaType `json:"media_type"`
	Likes     int64     `json:"likes"`
	Comments  int64     `json:"comments"`
	Caption   string    `json:"caption"`
}

// Engagement returns likes plus comments for the post
func (p Post) Engagement() int64 {
	return p.Likes + p.Comments
}

// Profile represents a fetched Instagram profile with its most recent posts.
// Posts are ordered most recent first.
type Profile struct {
	DisplayName   string `json:"display_name"`
	ProfilePicURL string `json:"profile_pic_url,omitempty"`
	Followers     int64  `json:"followers"`
	Following     int64  `json:"following"`
	PostCount     int64  `json:"post_count"`
	Posts         []Post `json:"posts"`
}

// Truncate returns a copy of the profile keeping only the first n posts
func (p Profile) Truncate(n int) Profile {
	if n < 0 {
		n = 0
	}
	if len(p.Posts) > n {
		p.Posts = append([]Post(nil), p.Posts[:n]...)
	}
	return p
}

// LatestPost returns the most recent sampled post, if any
func (p Profile) LatestPost() (Post, bool) {
	if len(p.Posts) == 0 {
		return Post{}, false
	}
	return p.Posts[0], true
}

// ProfileMetrics holds the derived per-profile numbers
type ProfileMetrics struct {
	Name           string  `json:"name"`
	Followers      int64   `json:"followers"`
	SampleSize     int     `json:"sample_size"`
	TotalLikes     int64   `json:"total_likes"`
	TotalComments  int64   `json:"total_comments"`
	EngagementRate float64 `json:"engagement_rate"` // percentage
	AvgLikes       float64 `json:"avg_likes"`
	AvgComments    float64 `json:"avg_comments"`
}

// PostMetricRow is one observation of a per-post metric
type PostMetricRow struct {
	Profile   string `json:"profile"`
	PostIndex int    `json:"post_index"` // 1-based, per profile
	Value     int64  `json:"value"`
}

// Label returns the axis label used for the post, e.g. "Post 1"
func (r PostMetricRow) Label() string {
	return fmt.Sprintf("Post %d", r.PostIndex)
}

// MediaTypeRow is one post's media type
type MediaTypeRow struct {
	Profile   string    `json:"profile"`
	MediaType MediaType `json:"media_type"`
}

// MediaEngagementRow is one post's engagement grouped by media type
type MediaEngagementRow struct {
	Profile    string    `json:"profile"`
	MediaType  MediaType `json:"media_type"`
	Engagement int64     `json:"engagement"`
}

// EngagementRateRow is a profile's engagement rate
type EngagementRateRow struct {
	Profile        string  `json:"profile"`
	EngagementRate float64 `json:"engagement_rate"`
}

// Comparison is the result of comparing two profiles.
// Rows of profile A always precede rows of profile B.
type Comparison struct {
	Profiles              [2]ProfileMetrics    `json:"profiles"`
	MaxPosts              int                  `json:"max_posts"`
	LikesByPost           []PostMetricRow      `json:"likes_by_post"`
	CommentsByPost        []PostMetricRow      `json:"comments_by_post"`
	MediaTypeDistribution []MediaTypeRow       `json:"media_type_distribution"`
	EngagementByMediaType []MediaEngagementRow `json:"engagement_by_media_type"`
	EngagementRates       []EngagementRateRow  `json:"engagement_rates"`
	LikesLeader           string               `json:"likes_leader"`
	CommentsLeader        string               `json:"comments_leader"`
}

// A returns the metrics of the first profile
func (c *Comparison) A() ProfileMetrics {
	return c.Profiles[0]
}

// B returns the metrics of the second profile
func (c *Comparison) B() ProfileMetrics {
	return c.Profiles[1]
}
