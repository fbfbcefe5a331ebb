// Package insight turns the merged comparison table and collected news into
// Korean strategy commentary via Gemini.
package insight

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"peer_analysis/pkg/core/llm"
	"peer_analysis/pkg/models"
)

const systemPrompt = "당신은 한국 정유업계를 담당하는 전략 컨설턴트입니다. 주어진 데이터에 근거해 한국어로 답변하세요."

// Generator calls Gemini directly through the official SDK.
type Generator struct {
	modelName string
	client    *genai.Client
}

// NewGenerator creates a generator bound to one model. The API key comes
// from GEMINI_API_KEY.
func NewGenerator(ctx context.Context, modelName string) (*Generator, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	return &Generator{modelName: modelName, client: client}, nil
}

// Close releases the underlying client connection.
func (g *Generator) Close() error {
	return g.client.Close()
}

// FinancialInsight produces competitor-analysis commentary for the merged
// comparison table.
func (g *Generator) FinancialInsight(ctx context.Context, merged *models.MergedStatement) (string, error) {
	return g.generate(ctx, BuildFinancialPrompt(merged))
}

// NewsInsight produces market commentary from scored articles.
func (g *Generator) NewsInsight(ctx context.Context, items []models.NewsItem) (string, error) {
	return g.generate(ctx, BuildNewsPrompt(items))
}

func (g *Generator) generate(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(0.3)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("insight generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("insight generation returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("insight generation returned empty text")
	}
	return text, nil
}

// ProviderGenerator routes insight prompts through the configurable
// provider abstraction instead of a fixed client. The API layer uses this
// so the provider can be switched per request.
type ProviderGenerator struct {
	provider llm.Provider
}

func NewProviderGenerator(provider llm.Provider) *ProviderGenerator {
	return &ProviderGenerator{provider: provider}
}

func (g *ProviderGenerator) FinancialInsight(ctx context.Context, merged *models.MergedStatement) (string, error) {
	return g.provider.GenerateResponse(ctx, BuildFinancialPrompt(merged), systemPrompt, nil)
}

func (g *ProviderGenerator) NewsInsight(ctx context.Context, items []models.NewsItem) (string, error) {
	return g.provider.GenerateResponse(ctx, BuildNewsPrompt(items), systemPrompt, nil)
}
