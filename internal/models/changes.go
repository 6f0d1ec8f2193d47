package models

import (
	"fmt"
	"time"
)

// Verdict is the structured interpretation of a content change.
type Verdict struct {
	ChangeSummary         string   `json:"change_summary"`
	StrategicImplications string   `json:"strategic_implications"`
	SignificanceScore     int      `json:"significance_score"`
	SuggestedActions      []string `json:"suggested_actions"`
}

// ChangeRecord - an immutable entry of the change history.
type ChangeRecord struct {
	ID                    string    `json:"id"`
	CompetitorID          string    `json:"competitor_id"`
	PageID                string    `json:"page_id"`
	ChangeSummary         string    `json:"change_summary"`
	StrategicImplications string    `json:"strategic_implications"`
	SignificanceScore     int       `json:"significance_score"`
	SuggestedActions      []string  `json:"suggested_actions"`
	PreviousContent       string    `json:"previous_content"`
	NewContent            string    `json:"new_content"`
	CreatedAt             time.Time `json:"created_at"`
}

// ScanResult - outcome of one pass over a competitor's tracked pages.
type ScanResult struct {
	Changes      []ChangeRecord
	PagesScanned int
	PagesSkipped int
}

// Message returns the human-readable summary of the scan.
func (r *ScanResult) Message() string {
	return fmt.Sprintf("Scan completed. %d changes detected.", len(r.Changes))
}

// DashboardStats aggregates a user's monitoring activity.
type DashboardStats struct {
	TotalCompetitors        int `json:"total_competitors"`
	TotalTrackedPages       int `json:"total_tracked_pages"`
	RecentChanges           int `json:"recent_changes"`
	HighSignificanceChanges int `json:"high_significance_changes"`
}
