package domain

// Framework values supported by the code synthesizer.
const (
	FrameworkHTML   = "html"
	FrameworkReact  = "react"
	FrameworkVue    = "vue"
	FrameworkSvelte = "svelte"
)

// Frameworks lists the supported targets in display order.
var Frameworks = []FrameworkInfo{
	{Value: FrameworkHTML, Label: "HTML + Tailwind"},
	{Value: FrameworkReact, Label: "React + Tailwind"},
	{Value: FrameworkVue, Label: "Vue 3 + Tailwind"},
	{Value: FrameworkSvelte, Label: "Svelte + Tailwind"},
}

type FrameworkInfo struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func IsValidFramework(f string) bool {
	switch f {
	case FrameworkHTML, FrameworkReact, FrameworkVue, FrameworkSvelte:
		return true
	}
	return false
}

// DesignReference identifies a design document or sub-tree in Figma.
// NodeID is the colon form used by the API ("1:23"); RawNodeID preserves the
// encoding that appeared in the URL ("1-23" or "1%3A23" decoded).
type DesignReference struct {
	FileKey   string `json:"fileKey"`
	NodeID    string `json:"nodeId,omitempty"`
	RawNodeID string `json:"rawNodeId,omitempty"`
}

// ConvertRequest is the inbound contract of the pipeline.
type ConvertRequest struct {
	FigmaURL      string `json:"figmaUrl" binding:"required"`
	Framework     string `json:"framework"`
	IncludeStyles bool   `json:"includeStyles"`
	Responsive    bool   `json:"responsive"`
}

// ComponentAnalysis is the classified role of one design node.
type ComponentAnalysis struct {
	Type       string              `json:"type"`
	Name       string              `json:"name"`
	Properties ComponentProperties `json:"properties"`
	Position   Position            `json:"position"`
}

type ComponentProperties struct {
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	Opacity      float64 `json:"opacity,omitempty"`
	CornerRadius float64 `json:"cornerRadius,omitempty"`
	LayoutMode   string  `json:"layoutMode,omitempty"`
	Padding      Padding `json:"padding"`
	Gap          float64 `json:"gap,omitempty"`
}

type Padding struct {
	Top    float64 `json:"top,omitempty"`
	Right  float64 `json:"right,omitempty"`
	Bottom float64 `json:"bottom,omitempty"`
	Left   float64 `json:"left,omitempty"`
}

type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Typography is one entry of the deduplicated type inventory.
// Entries collapse on (FontSize, FontWeight): the inventory is a
// stylesheet-like summary, not a transcript of every text node.
type Typography struct {
	FontFamily string  `json:"fontFamily,omitempty"`
	FontSize   float64 `json:"fontSize"`
	FontWeight float64 `json:"fontWeight"`
	LineHeight float64 `json:"lineHeight,omitempty"`
}

type LayoutAnalysis struct {
	Type      string  `json:"type"`
	Direction string  `json:"direction,omitempty"`
	Gap       float64 `json:"gap,omitempty"`
}

type Breakpoint struct {
	Name    string   `json:"name"`
	Width   int      `json:"width"`
	Changes []string `json:"changes"`
}

type ResponsiveAnalysis struct {
	Breakpoints []Breakpoint `json:"breakpoints"`
}

// DesignAnalysis is the deterministic structural extraction of one design
// tree. Built once per conversion request, immutable after construction,
// never persisted.
type DesignAnalysis struct {
	Structure  interface{}         `json:"structure"`
	Colors     []string            `json:"colors"`
	Typography []Typography        `json:"typography"`
	Components []ComponentAnalysis `json:"components"`
	Layout     LayoutAnalysis      `json:"layout"`
	Spacing    []float64           `json:"spacing"`
	Responsive ResponsiveAnalysis  `json:"responsive"`
}

// VisionResult is the structured-or-raw payload of the vision model. When
// the model output is not valid JSON it is carried under a "raw" key.
type VisionResult map[string]interface{}

// CombinedAnalysis pairs the structural analysis with the optional vision
// enrichment. Vision == nil is a valid, expected state.
type CombinedAnalysis struct {
	Figma  *DesignAnalysis `json:"figma"`
	Vision VisionResult    `json:"vision"`
	Meta   AnalysisMeta    `json:"meta"`
}

type AnalysisMeta struct {
	FileName     string `json:"fileName"`
	FileKey      string `json:"fileKey"`
	NodeID       string `json:"nodeId,omitempty"`
	Version      string `json:"version,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
}

// ConversionResult is the terminal artifact returned to the caller.
type ConversionResult struct {
	Success      bool              `json:"success"`
	Code         string            `json:"code"`
	Analysis     *CombinedAnalysis `json:"analysis,omitempty"`
	Framework    string            `json:"framework"`
	Meta         *ResultMeta       `json:"meta,omitempty"`
	Mock         bool              `json:"mock,omitempty"`
	UsedFallback bool              `json:"usedFallback,omitempty"`
	Message      string            `json:"message,omitempty"`
}

type ResultMeta struct {
	Model           string `json:"model"`
	FigmaFile       string `json:"figmaFile"`
	ComponentsCount int    `json:"componentsCount"`
	ColorsCount     int    `json:"colorsCount"`
}

// ImportResult is the response of the import preview endpoint.
type ImportResult struct {
	Success  bool          `json:"success"`
	ImageURL string        `json:"imageUrl"`
	FileName string        `json:"fileName"`
	FileKey  string        `json:"fileKey,omitempty"`
	Nodes    []NodeSummary `json:"nodes"`
	Mock     bool          `json:"mock,omitempty"`
}

type NodeSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}
