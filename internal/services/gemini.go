package services

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// TextGenerator is the narrow text-generation capability the pipeline
// stages depend on, so any concrete provider can be substituted in tests.
type TextGenerator interface {
	GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error)
}

// DocumentExtractor turns an inlined document payload into raw text.
type DocumentExtractor interface {
	ExtractDocumentText(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Embedder produces an embedding vector for similarity search.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type GeminiService interface {
	TextGenerator
	DocumentExtractor
	Embedder
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiService(apiKey string) (GeminiService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &ConfigurationError{Setting: "GEMINI_API_KEY"}
	}

	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  "gemini-2.5-flash",
		embedModel: "text-embedding-004",
	}, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 8192,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		// Try to extract any content from candidates if available
		if len(resp.Candidates) > 0 {
			var textParts []string
			for _, candidate := range resp.Candidates {
				if candidate.Content != nil {
					textParts = append(textParts, fmt.Sprintf("%v", candidate.Content))
				}
			}

			if len(textParts) > 0 {
				return strings.Join(textParts, "\n"), nil
			}
		}

		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// GenerateTextWithRetry implements GeminiService.
func (g *geminiService) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := g.GenerateText(ctx, prompt, temperature)
		if err == nil {
			return result, nil
		}

		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < maxRetries {
			fmt.Printf("⚠️ Attempt %d failed: %v. Retrying...\n", attempt, err)
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

// ExtractDocumentText implements GeminiService. The document bytes are sent
// inline alongside the extraction instruction.
func (g *geminiService) ExtractDocumentText(ctx context.Context, data []byte, mimeType string) (string, error) {
	temperature := float32(0.1)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 8192,
	}

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
			{Text: "Extract the full plain text content of this document. Preserve section headings and ordering. Return only the extracted text."},
		},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to extract document text: %w", err)
	}

	if resp == nil || resp.Text() == "" {
		return "", fmt.Errorf("no text content in document extraction response")
	}

	return resp.Text(), nil
}
