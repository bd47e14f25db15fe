// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// ContributionDay is a single day on a user's contribution calendar.
type ContributionDay struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// Calendar is a user's contribution calendar flattened into a single
// date-ascending day list, as returned by the GitHub GraphQL API.
type Calendar struct {
	Total int               `json:"total_contributions"`
	Days  []ContributionDay `json:"days"`
}

// Streaks holds the streak figures derived from a Calendar.
// Date fields are zero when the corresponding streak does not exist.
type Streaks struct {
	Total        int       `json:"total_contributions"`
	Current      int       `json:"current_streak"`
	Longest      int       `json:"longest_streak"`
	CurrentStart time.Time `json:"current_streak_start"`
	CurrentEnd   time.Time `json:"current_streak_end"`
	LongestStart time.Time `json:"longest_streak_start"`
	LongestEnd   time.Time `json:"longest_streak_end"`
}

// Repository identifies a repository owned by the user, with the
// attributes the language aggregation cares about.
type Repository struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
	Fork  bool   `json:"fork"`
	Stars int    `json:"stars"`
}

// FullName returns the owner/name form used in exclusion lists.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// LanguageStat is one language's share of the user's code.
type LanguageStat struct {
	Name       string  `json:"name"`
	Bytes      int64   `json:"bytes"`
	Percentage float64 `json:"percentage"`
}

// ContributionSummary holds summary statistics over daily contribution counts.
type ContributionSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// ProfileStats bundles everything the renderers need for one user.
type ProfileStats struct {
	Username  string              `json:"username"`
	Calendar  Calendar            `json:"-"`
	Streaks   Streaks             `json:"streaks"`
	Summary   ContributionSummary `json:"summary"`
	Languages []LanguageStat      `json:"languages"`
}
