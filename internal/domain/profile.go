// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// AbsentPlaceholder is rendered wherever an optional profile field has no value.
const AbsentPlaceholder = "N/A"

// Profile holds the basic account information for a GitHub user.
// Name and Bio are optional on GitHub; a nil pointer means the field is unset.
// A Profile is never mutated after it has been fetched.
type Profile struct {
	Login       string    `json:"login"`
	Name        *string   `json:"name"`
	Bio         *string   `json:"bio"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
}

// Repository holds the metadata of a single repository.
// Language is nil for repositories GitHub reports no primary language for.
type Repository struct {
	Name     string  `json:"name"`
	Language *string `json:"language"`
	Stars    int     `json:"stars"`
	Forks    int     `json:"forks"`
	URL      string  `json:"url"`
}

// LanguageCount is one entry of a language distribution. Distributions are
// slices rather than maps so that the descending-count order survives JSON
// serialization.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// StarSummary holds descriptive statistics over the star counts of all
// fetched repositories.
type StarSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// PinnedRepository is a repository the user pinned to their profile.
// This data is only available through the GraphQL API.
type PinnedRepository struct {
	Name     string  `json:"name"`
	Language *string `json:"language"`
	Stars    int     `json:"stars"`
	URL      string  `json:"url"`
}

// ProfileInfo is the rendered subset of a Profile embedded in a Report.
// Optional fields have already been substituted with AbsentPlaceholder.
type ProfileInfo struct {
	Name        string    `json:"name"`
	Bio         string    `json:"bio"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
}

// Report is the composite summary produced by one analysis run.
type Report struct {
	Username      string             `json:"username"`
	ProfileInfo   ProfileInfo        `json:"profile_info"`
	LanguageStats []LanguageCount    `json:"language_stats"`
	MostStarred   []Repository       `json:"most_starred_repos"`
	StarSummary   StarSummary        `json:"star_summary"`
	Pinned        []PinnedRepository `json:"pinned_repos,omitempty"`
	GeneratedAt   time.Time          `json:"analysis_date"`
}

// StringOrNA is the single rendering rule for optional string fields:
// nil or empty values render as AbsentPlaceholder.
func StringOrNA(s *string) string {
	if s == nil || *s == "" {
		return AbsentPlaceholder
	}
	return *s
}
