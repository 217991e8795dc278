package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(apiKey string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// GenerateBio drafts three bio candidates from the fields the user has
// already filled in. Used as an optional assist on the profile screen.
func (c *GeminiClient) GenerateBio(ctx context.Context, name string, interests []string, location string) ([]string, error) {
	prompt := fmt.Sprintf(`
		Write 3 short dating-profile bios (2-3 sentences each) for this person.
		Name: %s
		Interests: %v
		Location: %s

		Task: each bio should be warm, specific and first-person.
		Output: JSON array of strings. Example: ["Bio one...", "Bio two..."]
	`, name, interests, location)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	responseText := strings.TrimSpace(sb.String())
	// Clean up markdown code blocks if present
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")

	var bios []string
	if err := json.Unmarshal([]byte(responseText), &bios); err != nil {
		// Fallback: split raw text, skipping JSON punctuation lines
		lines := strings.Split(responseText, "\n")
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "[") && !strings.HasSuffix(line, "]") {
				bios = append(bios, line)
			}
		}
		if len(bios) == 0 {
			return nil, fmt.Errorf("failed to parse bios: %w", err)
		}
	}

	return bios, nil
}
