package models

import "time"

// NewsItem is one collected article after scoring and classification.
type NewsItem struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`

	Keywords  []string `json:"keywords,omitempty"` // top matched industry keywords
	Company   string   `json:"company"`            // attributed company, "기타" when none
	Category  string   `json:"category"`
	Impact    int      `json:"impact"`    // 0-10 importance score
	Relevance int      `json:"relevance"` // 0-10 anchor-company relevance
}

// News categories assigned by the classifier.
const (
	CategoryAnchor   = "SK관련"
	CategoryCost     = "비용절감"
	CategoryRevenue  = "수익개선"
	CategoryStrategy = "전략변화"
	CategoryExternal = "외부환경"
)
