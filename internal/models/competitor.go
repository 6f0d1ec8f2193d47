package models

import "time"

// PageType is the declared kind of a tracked page.
type PageType string

const (
	PageTypePricing   PageType = "pricing"
	PageTypeFeatures  PageType = "features"
	PageTypeBlog      PageType = "blog"
	PageTypeChangelog PageType = "changelog"
	PageTypeOther     PageType = "other"
)

// Valid reports whether t is one of the known page types.
func (t PageType) Valid() bool {
	switch t {
	case PageTypePricing, PageTypeFeatures, PageTypeBlog, PageTypeChangelog, PageTypeOther:
		return true
	default:
		return false
	}
}

// TrackedPage is one URL monitored under a competitor.
// LastContentHash, LastScraped and Content are either all set or all nil.
type TrackedPage struct {
	ID              string     `json:"id"`
	URL             string     `json:"url"`
	PageType        PageType   `json:"page_type"`
	LastContentHash *string    `json:"last_content_hash"`
	LastScraped     *time.Time `json:"last_scraped"`
	Content         *string    `json:"content"`
}

// PageState is the last observed state of a page, always written as one unit.
type PageState struct {
	ContentHash string
	Content     string
	ScrapedAt   time.Time
}

// Competitor - a company tracked by one user.
type Competitor struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	Domain       string        `json:"domain"`
	CompanyName  string        `json:"company_name"`
	TrackedPages []TrackedPage `json:"tracked_pages"`
	CreatedAt    time.Time     `json:"created_at"`
}

// PageSuggestion is a conventional page found during discovery.
type PageSuggestion struct {
	URL          string   `json:"url"`
	PageType     PageType `json:"page_type"`
	FoundContent bool     `json:"found_content"`
}
