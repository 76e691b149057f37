// Package codegen turns a combined design analysis into framework-specific
// source. Full mode delegates to an external code-generation model; fallback
// mode renders deterministic templates so the pipeline always returns
// something renderable.
package codegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/domain"
)

// Generation latency scales with design complexity, so the codegen call gets
// a generous timeout distinct from the 30s default used elsewhere.
const generationTimeout = 2 * time.Minute

// Synthesizer is the code-generation strategy. Unlike the metadata and vision
// steps, a configured synthesizer that fails returns a real error: silently
// handing back low-fidelity fallback code would hide a paid-tier malfunction.
type Synthesizer interface {
	Configured() bool
	Generate(ctx context.Context, combined *domain.CombinedAnalysis, framework string) (string, error)
	Model() string
}

// ClaudeSynthesizer calls an Anthropic-compatible messages endpoint.
type ClaudeSynthesizer struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewClaudeSynthesizer(apiKey, baseURL, model string) *ClaudeSynthesizer {
	return &ClaudeSynthesizer{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: generationTimeout,
		},
	}
}

func (s *ClaudeSynthesizer) Configured() bool { return s.apiKey != "" }
func (s *ClaudeSynthesizer) Model() string    { return s.model }

type messagesRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
	System      string          `json:"system"`
	Messages    []promptMessage `json:"messages"`
}

type promptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

const systemPersona = "You are an elite frontend developer specialized in converting Figma designs to production-ready code. Generate pixel-perfect, accessible, and performant code following modern best practices."

// Generate issues one request embedding the full combined analysis. The model
// output is returned verbatim; validating the generated code's syntax is
// outside this system's responsibility.
func (s *ClaudeSynthesizer) Generate(ctx context.Context, combined *domain.CombinedAnalysis, framework string) (string, error) {
	analysisJSON, err := json.MarshalIndent(combined, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal analysis: %w", err)
	}

	reqBody := messagesRequest{
		Model:       s.model,
		MaxTokens:   16000,
		Temperature: 0.1,
		System:      systemPersona,
		Messages: []promptMessage{
			{Role: "user", Content: buildPrompt(string(analysisJSON), framework)},
		},
	}

	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/messages", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("codegen request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("codegen API status %d: %s", resp.StatusCode, string(body))
	}

	var out messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode codegen response: %w", err)
	}
	if len(out.Content) == 0 || out.Content[0].Text == "" {
		return "", fmt.Errorf("codegen returned empty content")
	}

	return out.Content[0].Text, nil
}

func buildPrompt(analysisJSON, framework string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Convert this Figma design to production-ready %s code:\n\n", strings.ToUpper(framework))
	sb.WriteString(analysisJSON)
	sb.WriteString("\n\nCRITICAL REQUIREMENTS:\n\n")

	fmt.Fprintf(&sb, "1. Framework: %s\n%s\n", strings.ToUpper(framework), frameworkConventions(framework))

	sb.WriteString(`
2. Design Fidelity:
   - EXACT spacing, padding, margins from Figma
   - EXACT colors (use Figma values)
   - EXACT typography (fonts, sizes, weights, line-heights)
   - EXACT component dimensions, border radius, shadows, effects

3. Component Structure:
   - Mirror the Figma component hierarchy
   - Create reusable components with proper prop typing
   - Logical component breakdown

4. Responsive Design:
   - Mobile-first approach
   - Breakpoints: sm(640px), md(768px), lg(1024px), xl(1280px), 2xl(1536px)
   - Fluid typography and flexible layouts (Grid/Flexbox)

5. Accessibility:
   - Semantic HTML5, ARIA labels and roles
   - Keyboard navigation and focus management
   - Color contrast WCAG AA

6. Code Quality:
   - Clean, readable code with meaningful names
   - All necessary imports, components, styles and logic included
   - COMPLETE and WORKING code

`)

	if framework == domain.FrameworkHTML {
		sb.WriteString("Return complete HTML file with embedded CSS and JS.\n")
	} else {
		sb.WriteString("Return all component files with proper structure.\n")
	}
	sb.WriteString("\nNO EXPLANATIONS. ONLY CODE.")

	return sb.String()
}

func frameworkConventions(framework string) string {
	switch framework {
	case domain.FrameworkReact:
		return `   - React 18+ with TypeScript
   - Tailwind CSS for styling
   - Proper component composition
   - Hooks (useState, useEffect, useCallback)`
	case domain.FrameworkVue:
		return `   - Vue 3 Composition API
   - TypeScript
   - Tailwind CSS
   - <script setup> syntax`
	case domain.FrameworkSvelte:
		return `   - Svelte 4+
   - TypeScript
   - Tailwind CSS
   - Reactive declarations`
	default:
		return `   - Pure HTML5 with Tailwind CSS via CDN
   - Vanilla JavaScript for interactions`
	}
}

// NullSynthesizer is the strategy used when no codegen credential is
// configured; the pipeline switches to the template fallback instead.
type NullSynthesizer struct{}

func (NullSynthesizer) Configured() bool { return false }
func (NullSynthesizer) Model() string    { return "" }

func (NullSynthesizer) Generate(ctx context.Context, combined *domain.CombinedAnalysis, framework string) (string, error) {
	return "", fmt.Errorf("code generation is not configured")
}
