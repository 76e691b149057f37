// Package vision enriches a structural design analysis with a vision-capable
// model's read of the rendered image. The whole step is best-effort: every
// failure path returns nil, which downstream treats as "no vision data".
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/domain"
)

// Interpreter is the vision-step strategy. Implementations must never return
// an error; a nil result is the degraded outcome.
type Interpreter interface {
	Configured() bool
	Interpret(ctx context.Context, imageURL string, analysis *domain.DesignAnalysis) domain.VisionResult
}

// OpenAIInterpreter calls an OpenAI-compatible chat completions endpoint with
// the rendered image and the pre-computed structural analysis as context.
type OpenAIInterpreter struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewOpenAIInterpreter(apiKey, baseURL, model string) *OpenAIInterpreter {
	return &OpenAIInterpreter{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (v *OpenAIInterpreter) Configured() bool { return v.apiKey != "" }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageRef `json:"image_url,omitempty"`
}

type imageRef struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Interpret sends one request combining the image and the structural
// analysis. The model is asked to refine and cross-validate, not re-derive,
// what was already computed structurally. Unparseable output is kept under a
// "raw" key; transport failures are logged and yield nil.
func (v *OpenAIInterpreter) Interpret(ctx context.Context, imageURL string, analysis *domain.DesignAnalysis) domain.VisionResult {
	if v.apiKey == "" || imageURL == "" {
		return nil
	}

	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		log.Printf("[warn] operation=vision_interpret error=%v", err)
		return nil
	}

	reqBody := chatRequest{
		Model: v.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are an expert UI/UX analyzer. Analyze Figma designs and extract detailed component structure, colors, typography, spacing, and layout patterns. Return detailed JSON.",
			},
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: visionPrompt(string(analysisJSON))},
					{Type: "image_url", ImageURL: &imageRef{URL: imageURL, Detail: "high"}},
				},
			},
		},
		MaxTokens:   4096,
		Temperature: 0.2,
	}

	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		log.Printf("[warn] operation=vision_interpret error=%v", err)
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+v.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		log.Printf("[warn] operation=vision_interpret error=%v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("[warn] operation=vision_interpret status=%d body=%s", resp.StatusCode, string(body))
		return nil
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("[warn] operation=vision_interpret error=%v", err)
		return nil
	}
	if len(out.Choices) == 0 {
		return nil
	}

	content := out.Choices[0].Message.Content
	var structured domain.VisionResult
	if err := json.Unmarshal([]byte(content), &structured); err != nil {
		// Vision data present but unstructured is a valid state.
		return domain.VisionResult{"raw": content}
	}
	return structured
}

func visionPrompt(analysisJSON string) string {
	var sb strings.Builder
	sb.WriteString("Analyze this Figma design in extreme detail:\n\n")
	sb.WriteString("Figma Structure Data:\n")
	sb.WriteString(analysisJSON)
	sb.WriteString("\n\nExtract:\n")
	for i, item := range []string{
		"Component hierarchy and types (buttons, inputs, cards, sections)",
		"Color palette (primary, secondary, accents, backgrounds)",
		"Typography system (font families, sizes, weights, line heights)",
		"Spacing system (margins, paddings, gaps)",
		"Layout patterns (flex, grid, absolute positioning)",
		"Interactive elements (hover states, animations)",
		"Responsive behavior",
		"Design tokens",
	} {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, item)
	}
	sb.WriteString("\nReturn as structured JSON.")
	return sb.String()
}

// NullInterpreter is the strategy used when no vision credential is
// configured. Skipping vision is not an error condition for the pipeline.
type NullInterpreter struct{}

func (NullInterpreter) Configured() bool { return false }

func (NullInterpreter) Interpret(ctx context.Context, imageURL string, analysis *domain.DesignAnalysis) domain.VisionResult {
	return nil
}
