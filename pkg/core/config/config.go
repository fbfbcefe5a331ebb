package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"peer_analysis/pkg/core/utils"
)

// Config drives a full peer analysis run: which companies to pull,
// which one anchors the merged table, and where ancillary data comes from.
type Config struct {
	AnchorSubstring string    `yaml:"anchor_substring" json:"anchor_substring"`
	Year            string    `yaml:"year" json:"year"`
	Companies       []Company `yaml:"companies" json:"companies"`

	// Amounts from the filing API are already in won; sources reporting
	// in other units set a multiplier here.
	AmountScale float64 `yaml:"amount_scale" json:"amount_scale"`

	News NewsConfig `yaml:"news" json:"news"`
	LLM  LLMConfig  `yaml:"llm" json:"llm"`
}

type Company struct {
	Name      string   `yaml:"name" json:"name"`
	StockCode string   `yaml:"stock_code" json:"stock_code"`
	Aliases   []string `yaml:"aliases" json:"aliases"`
}

type NewsConfig struct {
	Feeds    map[string]string `yaml:"feeds" json:"feeds"`
	Keywords []string          `yaml:"keywords" json:"keywords"`
	MaxItems int               `yaml:"max_items" json:"max_items"`
}

type LLMConfig struct {
	Provider string `yaml:"provider" json:"provider"`
	Model    string `yaml:"model" json:"model"`
}

// Default returns the refinery peer set the dashboard was built around.
// The business year defaults to the previous calendar year, since annual
// filings for the current one are not out yet.
func Default() Config {
	return Config{
		AnchorSubstring: "SK",
		Year:            strconv.Itoa(time.Now().Year() - 1),
		AmountScale:     1.0,
		Companies: []Company{
			{Name: "SK에너지", StockCode: "096770", Aliases: []string{"SK이노베이션", "에스케이에너지"}},
			{Name: "GS칼텍스", StockCode: "089590", Aliases: []string{"지에스칼텍스"}},
			{Name: "HD현대오일뱅크", StockCode: "267250", Aliases: []string{"현대오일뱅크", "HD현대오일뱅크주식회사"}},
			{Name: "S-Oil", StockCode: "010950", Aliases: []string{"에쓰오일", "에쓰-오일", "S-OIL"}},
		},
		News: NewsConfig{
			Feeds: map[string]string{
				"연합뉴스":  "https://www.yna.co.kr/rss/economy.xml",
				"매일경제":  "https://www.mk.co.kr/rss/30100041/",
				"한국경제":  "https://www.hankyung.com/feed/economy",
				"이데일리":  "https://rss.edaily.co.kr/edaily_economy.xml",
				"아시아경제": "https://www.asiae.co.kr/rss/stock.htm",
			},
			Keywords: []string{
				"정유", "석유화학", "원유", "유가", "정제마진",
				"에너지", "탄소중립", "수소", "배터리", "친환경",
			},
			MaxItems: 30,
		},
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
		},
	}
}

// Load reads a YAML config file and fills any omitted fields from Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return fill(cfg), nil
}

// LoadOverrides applies a loosely formatted override file on top of cfg.
// Operators tend to hand-edit these, so HJSON with repair is accepted.
func LoadOverrides(cfg Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read overrides %s: %w", path, err)
	}
	if err := utils.ParseHJSONToStruct(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse overrides %s: %w", path, err)
	}
	return fill(cfg), nil
}

func fill(cfg Config) Config {
	def := Default()
	if cfg.AnchorSubstring == "" {
		cfg.AnchorSubstring = def.AnchorSubstring
	}
	if cfg.Year == "" {
		cfg.Year = def.Year
	}
	if cfg.AmountScale == 0 {
		cfg.AmountScale = def.AmountScale
	}
	if len(cfg.Companies) == 0 {
		cfg.Companies = def.Companies
	}
	if len(cfg.News.Feeds) == 0 {
		cfg.News.Feeds = def.News.Feeds
	}
	if len(cfg.News.Keywords) == 0 {
		cfg.News.Keywords = def.News.Keywords
	}
	if cfg.News.MaxItems == 0 {
		cfg.News.MaxItems = def.News.MaxItems
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = def.LLM.Provider
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = def.LLM.Model
	}
	return cfg
}

// Anchor returns the configured company whose name contains the anchor
// substring, or nil when none does.
func (c Config) Anchor() *Company {
	for i := range c.Companies {
		if containsFold(c.Companies[i].Name, c.AnchorSubstring) {
			return &c.Companies[i]
		}
	}
	return nil
}

// MatchCompany resolves a raw name from a filing or feed against the
// configured companies, checking names first and aliases second.
func (c Config) MatchCompany(raw string) (Company, bool) {
	for _, comp := range c.Companies {
		if containsFold(raw, comp.Name) || containsFold(comp.Name, raw) {
			return comp, true
		}
	}
	for _, comp := range c.Companies {
		for _, alias := range comp.Aliases {
			if containsFold(raw, alias) || containsFold(alias, raw) {
				return comp, true
			}
		}
	}
	return Company{}, false
}

func containsFold(s, substr string) bool {
	if substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
