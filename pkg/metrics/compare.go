package metrics

// DefaultMaxPosts is the default number of recent posts sampled per profile
const DefaultMaxPosts = 5

// Compare derives comparative metrics and chart-ready tables for two profiles.
//
// maxPosts documents the expected upper bound of each profile's sample; the
// posts are not truncated here. Profile a is validated before profile b, and
// a zero follower count is reported before an empty post list.
func Compare(a, b Profile, maxPosts int) (*Comparison, error) {
	for _, p := range []Profile{a, b} {
		if err := validate(p); err != nil {
			return nil, err
		}
	}

	ma, mb := summarize(a), summarize(b)

	total := len(a.Posts) + len(b.Posts)
	c := &Comparison{
		Profiles:              [2]ProfileMetrics{ma, mb},
		MaxPosts:              maxPosts,
		LikesByPost:           make([]PostMetricRow, 0, total),
		CommentsByPost:        make([]PostMetricRow, 0, total),
		MediaTypeDistribution: make([]MediaTypeRow, 0, total),
		EngagementByMediaType: make([]MediaEngagementRow, 0, total),
		EngagementRates: []EngagementRateRow{
			{Profile: ma.Name, EngagementRate: ma.EngagementRate},
			{Profile: mb.Name, EngagementRate: mb.EngagementRate},
		},
		LikesLeader:    leader(ma.Name, ma.AvgLikes, mb.Name, mb.AvgLikes),
		CommentsLeader: leader(ma.Name, ma.AvgComments, mb.Name, mb.AvgComments),
	}

	for _, p := range []Profile{a, b} {
		for i, post := range p.Posts {
			c.LikesByPost = append(c.LikesByPost, PostMetricRow{Profile: p.DisplayName, PostIndex: i + 1, Value: post.Likes})
			c.CommentsByPost = append(c.CommentsByPost, PostMetricRow{Profile: p.DisplayName, PostIndex: i + 1, Value: post.Comments})
			c.MediaTypeDistribution = append(c.MediaTypeDistribution, MediaTypeRow{Profile: p.DisplayName, MediaType: post.MediaType})
			c.EngagementByMediaType = append(c.EngagementByMediaType, MediaEngagementRow{
				Profile:    p.DisplayName,
				MediaType:  post.MediaType,
				Engagement: post.Engagement(),
			})
		}
	}

	return c, nil
}

func validate(p Profile) error {
	if p.Followers == 0 {
		return UndefinedEngagementError{Profile: p.DisplayName}
	}
	if len(p.Posts) == 0 {
		return InsufficientDataError{Profile: p.DisplayName}
	}
	return nil
}

func summarize(p Profile) ProfileMetrics {
	var likes, comments int64
	for _, post := range p.Posts {
		likes += post.Likes
		comments += post.Comments
	}

	n := float64(len(p.Posts))
	return ProfileMetrics{
		Name:           p.DisplayName,
		Followers:      p.Followers,
		SampleSize:     len(p.Posts),
		TotalLikes:     likes,
		TotalComments:  comments,
		EngagementRate: EngagementRate(likes, comments, p.Followers),
		AvgLikes:       float64(likes) / n,
		AvgComments:    float64(comments) / n,
	}
}

// EngagementRate returns (likes + comments) / followers * 100.
// followers must be positive.
func EngagementRate(likes, comments, followers int64) float64 {
	return float64(likes+comments) * 100 / float64(followers)
}

// leader returns the name with the strictly greater value; ties go to b
func leader(a string, va float64, b string, vb float64) string {
	if va > vb {
		return a
	}
	return b
}
