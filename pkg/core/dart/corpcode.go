package dart

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"peer_analysis/pkg/core/config"
)

// corpEntry is one company in the DART corp code archive.
type corpEntry struct {
	Name      string `xml:"corp_name"`
	CorpCode  string `xml:"corp_code"`
	StockCode string `xml:"stock_code"`
}

type corpIndexDoc struct {
	XMLName xml.Name    `xml:"result"`
	List    []corpEntry `xml:"list"`
}

// loadCorpIndex downloads and parses the corp code archive once per client.
// DART serves it as a zip containing a single CORPCODE.xml.
func (c *Client) loadCorpIndex(ctx context.Context) error {
	if c.corpIndex != nil {
		return nil
	}

	params := url.Values{"crtfc_key": {c.apiKey}}
	body, err := c.get(ctx, CorpCodePath, params)
	if err != nil {
		return fmt.Errorf("failed to download corp code archive: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return fmt.Errorf("corp code archive is not a zip: %w", err)
	}
	if len(zr.File) == 0 {
		return fmt.Errorf("corp code archive is empty")
	}

	f, err := zr.File[0].Open()
	if err != nil {
		return fmt.Errorf("failed to open corp code xml: %w", err)
	}
	defer f.Close()

	var doc corpIndexDoc
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return fmt.Errorf("failed to parse corp code xml: %w", err)
	}
	if len(doc.List) == 0 {
		return fmt.Errorf("corp code xml contains no companies")
	}

	c.corpIndex = doc.List
	return nil
}

// CorpCodeByStock converts a KRX stock code to a DART corp code.
func (c *Client) CorpCodeByStock(ctx context.Context, stockCode string) (string, error) {
	if err := c.loadCorpIndex(ctx); err != nil {
		return "", err
	}
	for _, entry := range c.corpIndex {
		if entry.StockCode == stockCode {
			return entry.CorpCode, nil
		}
	}
	return "", fmt.Errorf("no corp code for stock code %s", stockCode)
}

// ResolveCorpCode finds a company's DART corp code, trying the stock code
// first and then each known name in order of strictness: exact match,
// containment, and finally a case-insensitive containment pass. Affiliates
// with similar names make the looser passes necessary.
func (c *Client) ResolveCorpCode(ctx context.Context, company config.Company) (string, error) {
	if err := c.loadCorpIndex(ctx); err != nil {
		return "", err
	}

	if company.StockCode != "" {
		for _, entry := range c.corpIndex {
			if entry.StockCode == company.StockCode {
				return entry.CorpCode, nil
			}
		}
	}

	names := append([]string{company.Name}, company.Aliases...)
	for _, name := range names {
		for _, entry := range c.corpIndex {
			if entry.Name == name {
				return entry.CorpCode, nil
			}
		}
	}
	for _, name := range names {
		for _, entry := range c.corpIndex {
			if strings.Contains(entry.Name, name) || strings.Contains(name, entry.Name) {
				return entry.CorpCode, nil
			}
		}
	}
	for _, name := range names {
		lower := strings.ToLower(name)
		for _, entry := range c.corpIndex {
			entryLower := strings.ToLower(entry.Name)
			if strings.Contains(entryLower, lower) || strings.Contains(lower, entryLower) {
				return entry.CorpCode, nil
			}
		}
	}

	return "", fmt.Errorf("company %s not found in corp code index", company.Name)
}
