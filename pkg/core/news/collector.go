// Package news collects industry articles from Korean RSS feeds and scores
// them for relevance to the anchor company.
package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"peer_analysis/pkg/core/config"
	"peer_analysis/pkg/models"
)

// industryKeywords is the full scan list: anchor group names, peers, market
// terms, earnings terms, and policy terms. The configured keyword list is
// appended on top of this.
var industryKeywords = []string{
	"SK", "SK에너지", "SK이노베이션", "SK온", "SK그룹",
	"GS칼텍스", "HD현대오일뱅크", "현대오일뱅크", "S-Oil", "에쓰오일",
	"정유", "유가", "원유", "석유", "화학", "에너지", "나프타",
	"휘발유", "경유", "등유", "중유", "석유화학", "정제", "정제마진",
	"WTI", "두바이유", "브렌트유",
	"영업이익", "순이익", "매출", "실적", "손실", "흑자", "적자",
	"수익성", "마진", "투자", "설비",
	"탄소중립", "ESG", "친환경", "수소", "신재생에너지",
}

// coreTerms drive the importance score, two points each.
var coreTerms = []string{"SK", "영업이익", "실적", "손실", "투자", "합병"}

const maxKeywordsPerItem = 5

// Collector fetches and enriches news from the configured feeds.
type Collector struct {
	cfg        config.NewsConfig
	httpClient *http.Client
	keywords   []string
}

// NewCollector merges the configured keywords into the built-in industry list.
func NewCollector(cfg config.NewsConfig) *Collector {
	keywords := make([]string, len(industryKeywords))
	copy(keywords, industryKeywords)
	for _, kw := range cfg.Keywords {
		if !containsString(keywords, kw) {
			keywords = append(keywords, kw)
		}
	}
	return &Collector{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		keywords:   keywords,
	}
}

// Collect pulls every feed, enriches each article, removes duplicate titles,
// and sorts by relevance then impact. A feed that fails to fetch or parse is
// skipped; only when every feed fails is an error returned.
func (c *Collector) Collect(ctx context.Context) ([]models.NewsItem, error) {
	var items []models.NewsItem
	failed := 0

	for source, feedURL := range c.cfg.Feeds {
		entries, err := c.fetchFeed(ctx, feedURL)
		if err != nil {
			fmt.Printf("[News] ⚠️ %s 피드 수집 실패: %v\n", source, err)
			failed++
			continue
		}

		limit := c.cfg.MaxItems
		if limit <= 0 || limit > len(entries) {
			limit = len(entries)
		}
		for _, entry := range entries[:limit] {
			title := strings.TrimSpace(entry.Title)
			if title == "" {
				continue
			}
			items = append(items, c.enrich(models.NewsItem{
				Title:       title,
				Summary:     strings.TrimSpace(entry.Description),
				URL:         entry.Link,
				Source:      source,
				PublishedAt: parsePubDate(entry.PubDate),
			}))
		}
	}

	if len(items) == 0 && failed == len(c.cfg.Feeds) && failed > 0 {
		return nil, fmt.Errorf("all %d feeds failed", failed)
	}

	items = dedupeByTitle(items)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Relevance != items[j].Relevance {
			return items[i].Relevance > items[j].Relevance
		}
		return items[i].Impact > items[j].Impact
	})

	fmt.Printf("[News] ✅ %d개 뉴스 수집 완료\n", len(items))
	return items, nil
}

func (c *Collector) fetchFeed(ctx context.Context, feedURL string) ([]rssItem, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "PeerAnalysis/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseFeed(body)
}

// enrich fills the scoring and classification fields from the title.
func (c *Collector) enrich(item models.NewsItem) models.NewsItem {
	item.Keywords = c.extractKeywords(item.Title)
	item.Impact = calcImportance(item.Title)
	item.Relevance = calcAnchorRelevance(item.Title)
	item.Company = extractCompany(item.Title)
	item.Category = classify(item.Title)
	return item
}

func (c *Collector) extractKeywords(title string) []string {
	lower := strings.ToLower(title)
	var found []string
	for _, kw := range c.keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			found = append(found, kw)
			if len(found) == maxKeywordsPerItem {
				break
			}
		}
	}
	return found
}

// calcImportance scores two points per core term plus a base of three,
// capped at ten.
func calcImportance(title string) int {
	lower := strings.ToLower(title)
	score := 0
	for _, term := range coreTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			score += 2
		}
	}
	if score+3 > 10 {
		return 10
	}
	return score + 3
}

// calcAnchorRelevance scores anchor-group mentions and industry context,
// capped at ten.
func calcAnchorRelevance(title string) int {
	lower := strings.ToLower(title)
	score := 0
	if strings.Contains(lower, "sk") {
		score += 5
	}
	if strings.Contains(lower, "sk에너지") {
		score += 3
	}
	for _, term := range []string{"정유", "석유", "화학"} {
		if strings.Contains(lower, term) {
			score += 2
			break
		}
	}
	if score > 10 {
		return 10
	}
	return score
}

// extractCompany attributes the article to the first mentioned company.
// More specific names come first so "SK에너지" is not swallowed by "SK".
var companyMentions = []string{"SK에너지", "SK", "GS칼텍스", "HD현대오일뱅크", "S-Oil", "에쓰오일"}

func extractCompany(title string) string {
	lower := strings.ToLower(title)
	for _, name := range companyMentions {
		if strings.Contains(lower, strings.ToLower(name)) {
			return name
		}
	}
	return "기타"
}

func classify(title string) string {
	lower := strings.ToLower(title)
	switch {
	case containsAnyTerm(lower, "sk", "sk에너지", "sk이노베이션"):
		return models.CategoryAnchor
	case containsAnyTerm(lower, "손실", "적자", "비용", "원가", "보수", "중단"):
		return models.CategoryCost
	case containsAnyTerm(lower, "영업이익", "매출", "수익", "흑자", "증가", "성장"):
		return models.CategoryRevenue
	case containsAnyTerm(lower, "투자", "설비", "공장", "esg", "수소", "확장"):
		return models.CategoryStrategy
	default:
		return models.CategoryExternal
	}
}

func containsAnyTerm(s string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

func dedupeByTitle(items []models.NewsItem) []models.NewsItem {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if seen[item.Title] {
			continue
		}
		seen[item.Title] = true
		out = append(out, item)
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
