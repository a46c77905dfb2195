package metrics

import "fmt"

// UndefinedEngagementError is returned when a profile has no followers,
// making its engagement rate undefined
type UndefinedEngagementError struct {
	Profile string
}

func (e UndefinedEngagementError) Error() string {
	return fmt.Sprintf("engagement rate undefined for profile %s: no followers", e.Profile)
}

// InsufficientDataError is returned when a profile has no sampled posts
type InsufficientDataError struct {
	Profile string
}

func (e InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for profile %s: no posts", e.Profile)
}
