package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"instagram-profile-compare/pkg/metrics"
)

const (
	DefaultFormURL = "https://kf2mepwdf2r.typeform.com/to/UMMzA7qD"
	DefaultPrice   = "R$87,90"
)

// Offer is the call-to-action for the paid full-profile report
type Offer struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Benefits    []string `json:"benefits"`
	ButtonLabel string   `json:"button_label"`
	FormURL     string   `json:"form_url"`
}

// NewOffer returns the report offer pointing at formURL
func NewOffer(formURL, price string) Offer {
	if formURL == "" {
		formURL = DefaultFormURL
	}
	if price == "" {
		price = DefaultPrice
	}

	return Offer{
		Title:       "Want a complete analysis of your profile?",
		Description: fmt.Sprintf("Get a detailed report with insights and strategies tailored to your profile for only %s.", price),
		Price:       price,
		Benefits: []string{
			"Detailed analysis of your most engaging posts.",
			"Ideal posting times for your audience.",
			"Tailored strategies to grow followers and engagement.",
			"Content suggestions based on trends in your niche.",
		},
		ButtonLabel: "Get your analysis now!",
		FormURL:     formURL,
	}
}

// Report is the narrative comparison of two profiles
type Report struct {
	Engagement      string `json:"engagement"`
	Averages        string `json:"averages"`
	LikesVerdict    string `json:"likes_verdict"`
	CommentsVerdict string `json:"comments_verdict"`
	Conclusion      string `json:"conclusion"`
	Offer           Offer  `json:"offer"`
}

// Paragraphs returns the narrative in display order
func (r Report) Paragraphs() []string {
	return []string{r.Engagement, r.Averages, r.LikesVerdict, r.CommentsVerdict, r.Conclusion}
}

// Build writes the narrative for c
func Build(c *metrics.Comparison, offer Offer) Report {
	a, b := c.A(), c.B()

	r := Report{
		Engagement: fmt.Sprintf(
			"The engagement rate of %s is %s%%, while the engagement rate of %s is %s%%.",
			a.Name, Percent(a.EngagementRate), b.Name, Percent(b.EngagementRate),
		),
		Averages: fmt.Sprintf(
			"On average, %s receives %s likes and %s comments per post, while %s receives %s likes and %s comments per post.",
			a.Name, Whole(a.AvgLikes), Whole(a.AvgComments),
			b.Name, Whole(b.AvgLikes), Whole(b.AvgComments),
		),
		Conclusion: "These figures show which profile generates more interactions in terms of likes and comments, " +
			"which can indicate greater relevance or engagement with its audience.",
		Offer: offer,
	}

	other := a.Name
	if c.LikesLeader == a.Name {
		other = b.Name
	}
	r.LikesVerdict = fmt.Sprintf("%s performs better than %s in terms of likes.", c.LikesLeader, other)

	if c.CommentsLeader == a.Name {
		r.CommentsVerdict = fmt.Sprintf("In addition, %s also stands out by receiving more comments per post on average.", a.Name)
	} else {
		r.CommentsVerdict = fmt.Sprintf("%s stands out by receiving more comments per post on average.", b.Name)
	}

	return r
}

// Percent formats a percentage with two decimals
func Percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Whole formats a value rounded to the nearest whole number
func Whole(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(0)
}
