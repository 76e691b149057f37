// Package analyzer walks a Figma document tree and produces the normalized
// design analysis the AI steps build on: color palette, typography inventory,
// component classification, spacing tokens and a coarse layout read. It is
// fully deterministic; no randomness, no external calls.
package analyzer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/domain"
	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/figma"
)

// NameRule maps name substrings to a component role. Rules are evaluated in
// order, first match wins. Classification on human-authored layer names is a
// best-effort tagging pass, so the table is exported data rather than
// hard-coded branching.
type NameRule struct {
	Role     string
	Keywords []string
}

// ContainerRules classify FRAME and COMPONENT nodes by layer name.
var ContainerRules = []NameRule{
	{Role: "button", Keywords: []string{"button"}},
	{Role: "input", Keywords: []string{"input", "field"}},
	{Role: "card", Keywords: []string{"card"}},
	{Role: "navbar", Keywords: []string{"nav", "header"}},
	{Role: "hero", Keywords: []string{"hero"}},
	{Role: "footer", Keywords: []string{"footer"}},
	{Role: "modal", Keywords: []string{"modal"}},
}

// DefaultBreakpoints are the responsive hints attached to every analysis.
var DefaultBreakpoints = []domain.Breakpoint{
	{Name: "mobile", Width: 375, Changes: []string{}},
	{Name: "tablet", Width: 768, Changes: []string{}},
	{Name: "desktop", Width: 1440, Changes: []string{}},
}

// Analyze traverses the tree depth-first, pre-order, so the root is always
// Components[0]. A nil root yields an empty analysis with defaults; the
// pipeline uses this for the degraded branch.
func Analyze(root *figma.Node) *domain.DesignAnalysis {
	a := &domain.DesignAnalysis{
		Colors:     []string{},
		Typography: []domain.Typography{},
		Components: []domain.ComponentAnalysis{},
		Spacing:    []float64{},
		Layout:     domain.LayoutAnalysis{Type: "absolute"},
		Responsive: domain.ResponsiveAnalysis{Breakpoints: DefaultBreakpoints},
	}
	if root == nil {
		return a
	}

	colorSet := map[string]bool{}
	typoSeen := map[string]bool{}
	spacingSet := map[float64]bool{}

	var walk func(node *figma.Node)
	walk = func(node *figma.Node) {
		for _, fill := range node.Fills {
			if fill.Type == "SOLID" && fill.Color != nil {
				hex := rgbToHex(*fill.Color)
				if !colorSet[hex] {
					colorSet[hex] = true
					a.Colors = append(a.Colors, hex)
				}
			}
		}

		if node.Type == "TEXT" && node.Style != nil {
			// Entries collapse on (size, weight): the inventory describes the
			// type system, not every text node.
			key := fmt.Sprintf("%v/%v", node.Style.FontSize, node.Style.FontWeight)
			if !typoSeen[key] {
				typoSeen[key] = true
				a.Typography = append(a.Typography, domain.Typography{
					FontFamily: node.Style.FontFamily,
					FontSize:   node.Style.FontSize,
					FontWeight: node.Style.FontWeight,
					LineHeight: node.Style.LineHeightPx,
				})
			}
		}

		for _, v := range []float64{node.PaddingLeft, node.PaddingTop, node.ItemSpacing} {
			if v != 0 {
				spacingSet[v] = true
			}
		}

		a.Components = append(a.Components, domain.ComponentAnalysis{
			Type:       ClassifyNode(node),
			Name:       node.Name,
			Properties: extractProperties(node),
			Position:   position(node),
		})

		for i := range node.Children {
			walk(&node.Children[i])
		}
	}
	walk(root)

	a.Structure = root
	a.Layout = DetectLayout(root)
	for v := range spacingSet {
		a.Spacing = append(a.Spacing, v)
	}
	sort.Float64s(a.Spacing)

	return a
}

// ClassifyNode assigns a role to a single node. Precedence: TEXT, then
// button-named rectangles, then the ContainerRules table for frames and
// components, then the lowercased raw type.
func ClassifyNode(node *figma.Node) string {
	name := strings.ToLower(node.Name)

	if node.Type == "TEXT" {
		return "text"
	}
	if node.Type == "RECTANGLE" && strings.Contains(name, "button") {
		return "button"
	}
	if node.Type == "FRAME" || node.Type == "COMPONENT" {
		for _, rule := range ContainerRules {
			for _, kw := range rule.Keywords {
				if strings.Contains(name, kw) {
					return rule.Role
				}
			}
		}
		return "container"
	}

	return strings.ToLower(node.Type)
}

// DetectLayout reads the auto-layout mode of the root node.
func DetectLayout(node *figma.Node) domain.LayoutAnalysis {
	switch node.LayoutMode {
	case "HORIZONTAL":
		return domain.LayoutAnalysis{Type: "flex", Direction: "row", Gap: node.ItemSpacing}
	case "VERTICAL":
		return domain.LayoutAnalysis{Type: "flex", Direction: "column", Gap: node.ItemSpacing}
	}
	return domain.LayoutAnalysis{Type: "absolute"}
}

func extractProperties(node *figma.Node) domain.ComponentProperties {
	p := domain.ComponentProperties{
		Opacity:      node.Opacity,
		CornerRadius: node.CornerRadius,
		LayoutMode:   node.LayoutMode,
		Padding: domain.Padding{
			Top:    node.PaddingTop,
			Right:  node.PaddingRight,
			Bottom: node.PaddingBottom,
			Left:   node.PaddingLeft,
		},
		Gap: node.ItemSpacing,
	}
	if node.AbsoluteBoundingBox != nil {
		p.Width = node.AbsoluteBoundingBox.Width
		p.Height = node.AbsoluteBoundingBox.Height
	}
	return p
}

func position(node *figma.Node) domain.Position {
	if node.AbsoluteBoundingBox == nil {
		return domain.Position{}
	}
	return domain.Position{
		X:      node.AbsoluteBoundingBox.X,
		Y:      node.AbsoluteBoundingBox.Y,
		Width:  node.AbsoluteBoundingBox.Width,
		Height: node.AbsoluteBoundingBox.Height,
	}
}

// rgbToHex converts a normalized RGBA color to a hex string. Alpha below 1
// appends a two-digit alpha suffix.
func rgbToHex(c figma.Color) string {
	toHex := func(n float64) string {
		v := int(math.Round(n * 255))
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		return fmt.Sprintf("%02x", v)
	}

	hex := "#" + toHex(c.R) + toHex(c.G) + toHex(c.B)
	if c.A < 1 {
		hex += toHex(c.A)
	}
	return hex
}
