package service

import (
	"context"
	"fmt"
	"time"

	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/analyzer"
	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/codegen"
	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/domain"
	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/figma"
	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/vision"
)

// Placeholder shown by the import preview when no real export is available.
const placeholderImageURL = "https://via.placeholder.com/1200x800/1a1a1a/8b5cf6?text=Figma+Design+Preview"

// ConversionService sequences the design-to-code pipeline. The three
// credential-dependent steps are injected as strategies, so branch selection
// lives with each step instead of scattered env checks.
type ConversionService struct {
	metadata figma.MetadataSource
	vision   vision.Interpreter
	codegen  codegen.Synthesizer
}

func NewConversionService(metadata figma.MetadataSource, v vision.Interpreter, c codegen.Synthesizer) *ConversionService {
	return &ConversionService{
		metadata: metadata,
		vision:   v,
		codegen:  c,
	}
}

// Convert runs the full pipeline for one request. Internal step failures are
// mapped to degraded results; the only errors returned are the terminal ones
// the handler must surface (bad reference, bad framework, codegen failure in
// full mode).
func (s *ConversionService) Convert(ctx context.Context, req domain.ConvertRequest) (*domain.ConversionResult, error) {
	logger := NewLogger(ctx)

	framework := req.Framework
	if framework == "" {
		framework = domain.FrameworkHTML
	}
	if !domain.IsValidFramework(framework) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidFramework, framework)
	}

	ref, err := figma.ParseReference(req.FigmaURL)
	if err != nil {
		return nil, err
	}

	// Mock branch: the Figma integration is simply not configured here.
	if !s.metadata.Configured() {
		logger.LogWarnf("convert", "figma token missing, returning mock result file_key=%s", ref.FileKey)
		return &domain.ConversionResult{
			Success:   true,
			Code:      codegen.MockCode(framework),
			Framework: framework,
			Mock:      true,
			Message:   "Mock mode active. Set FIGMA_ACCESS_TOKEN for real Figma conversion",
		}, nil
	}

	fetch := s.metadata.Fetch(ctx, ref)
	recordFigmaCall(fetch.Document == nil)

	// Degraded branch runs the analyzer on an empty tree and skips vision.
	analysis := analyzer.Analyze(fetch.Document)
	logger.LogInfof("convert", "analyzed design file_key=%s components=%d colors=%d",
		ref.FileKey, len(analysis.Components), len(analysis.Colors))

	var visionResult domain.VisionResult
	if fetch.Document != nil {
		visionResult = s.vision.Interpret(ctx, fetch.ImageURL, analysis)
		recordVisionCall(visionResult == nil)
	}

	combined := &domain.CombinedAnalysis{
		Figma:  analysis,
		Vision: visionResult,
		Meta: domain.AnalysisMeta{
			FileName:     fetch.FileName,
			FileKey:      ref.FileKey,
			NodeID:       ref.NodeID,
			Version:      fetch.Version,
			LastModified: fetch.LastModified,
		},
	}

	if !s.codegen.Configured() {
		return &domain.ConversionResult{
			Success:      true,
			Code:         codegen.GenerateFallback(combined, framework),
			Analysis:     combined,
			Framework:    framework,
			Mock:         fetch.Mock,
			UsedFallback: true,
		}, nil
	}

	start := time.Now()
	code, err := s.codegen.Generate(ctx, combined, framework)
	recordCodegenCall(time.Since(start), err)
	if err != nil {
		// A configured synthesizer that fails is a real failure; silently
		// returning fallback code here would hide a paid-tier malfunction.
		logger.LogError("codegen", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}

	return &domain.ConversionResult{
		Success:   true,
		Code:      code,
		Analysis:  combined,
		Framework: framework,
		Mock:      fetch.Mock,
		Meta: &domain.ResultMeta{
			Model:           s.codegen.Model(),
			FigmaFile:       fetch.FileName,
			ComponentsCount: len(analysis.Components),
			ColorsCount:     len(analysis.Colors),
		},
	}, nil
}

// Import fetches file metadata and a rendered preview for the import panel.
// Upstream failures keep the original caller-friendly behavior: a success
// response labeled mock rather than an error.
func (s *ConversionService) Import(ctx context.Context, figmaURL string) (*domain.ImportResult, error) {
	ref, err := figma.ParseReference(figmaURL)
	if err != nil {
		return nil, err
	}

	if !s.metadata.Configured() {
		return &domain.ImportResult{
			Success:  true,
			ImageURL: placeholderImageURL,
			FileName: "Mock Figma Design",
			Nodes: []domain.NodeSummary{
				{ID: "mock-node-1", Name: "Hero Section", Type: "FRAME", Description: "Main hero section with title and CTA"},
			},
			Mock: true,
		}, nil
	}

	fetch := s.metadata.Fetch(ctx, ref)
	recordFigmaCall(fetch.Document == nil)
	if fetch.Document == nil {
		return &domain.ImportResult{
			Success:  true,
			ImageURL: placeholderImageURL,
			FileName: "Figma Design",
			Nodes:    []domain.NodeSummary{},
			Mock:     true,
		}, nil
	}

	nodes := make([]domain.NodeSummary, 0, len(fetch.Document.Children))
	for _, child := range fetch.Document.Children {
		nodes = append(nodes, domain.NodeSummary{ID: child.ID, Name: child.Name, Type: child.Type})
	}

	imageURL := fetch.ImageURL
	if imageURL == "" {
		imageURL = placeholderImageURL
	}

	return &domain.ImportResult{
		Success:  true,
		ImageURL: imageURL,
		FileName: fetch.FileName,
		FileKey:  ref.FileKey,
		Nodes:    nodes,
	}, nil
}

// InterpretImage runs the vision step on a bare image URL, with a canned
// payload when the vision credential is absent.
func (s *ConversionService) InterpretImage(ctx context.Context, imageURL string) domain.VisionResult {
	if !s.vision.Configured() {
		return mockVisionPayload()
	}

	result := s.vision.Interpret(ctx, imageURL, analyzer.Analyze(nil))
	recordVisionCall(result == nil)
	if result == nil {
		return mockVisionPayload()
	}
	return result
}

func mockVisionPayload() domain.VisionResult {
	return domain.VisionResult{
		"mock":  true,
		"model": "vision-mock",
		"components": []map[string]interface{}{
			{"type": "navbar", "position": "top", "items": []string{"logo", "navigation", "cta-button"}},
			{"type": "hero", "layout": "center"},
			{"type": "features-grid", "columns": 3},
		},
		"colors": map[string]string{
			"primary":    "#8b5cf6",
			"secondary":  "#ec4899",
			"background": "#000000",
			"text":       "#ffffff",
		},
		"typography": map[string]string{
			"heading_font": "Inter, system-ui, sans-serif",
			"body_font":    "Inter, system-ui, sans-serif",
		},
		"layout": map[string]interface{}{
			"system":     "flexbox",
			"max_width":  "1280px",
			"responsive": true,
		},
	}
}
