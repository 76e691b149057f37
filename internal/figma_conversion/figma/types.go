package figma

import "encoding/json"

// FileResponse is the payload of GET /files/{key}.
type FileResponse struct {
	Name          string `json:"name"`
	LastModified  string `json:"lastModified"`
	ThumbnailURL  string `json:"thumbnailUrl"`
	Version       string `json:"version"`
	Document      Node   `json:"document"`
	SchemaVersion int    `json:"schemaVersion"`
}

// NodesResponse is the payload of GET /files/{key}/nodes?ids=... when the
// conversion is scoped to a sub-tree.
type NodesResponse struct {
	Name         string              `json:"name"`
	LastModified string              `json:"lastModified"`
	Version      string              `json:"version"`
	Nodes        map[string]NodeData `json:"nodes"`
}

type NodeData struct {
	Document Node `json:"document"`
}

// ImageResponse is the payload of GET /images/{key}. Err is set by the API
// when rendering fails for the requested scope.
type ImageResponse struct {
	Err    string            `json:"err,omitempty"`
	Images map[string]string `json:"images"`
}

// Node is one element of the Figma document tree. The tree is owned by the
// fetcher response and read-only to downstream stages.
type Node struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Type                string     `json:"type"`
	Children            []Node     `json:"children,omitempty"`
	Fills               []Paint    `json:"fills,omitempty"`
	Strokes             []Paint    `json:"strokes,omitempty"`
	Effects             []Effect   `json:"effects,omitempty"`
	Characters          string     `json:"characters,omitempty"`
	Style               *TypeStyle `json:"style,omitempty"`
	AbsoluteBoundingBox *Rectangle `json:"absoluteBoundingBox,omitempty"`
	LayoutMode          string     `json:"layoutMode,omitempty"`
	PaddingLeft         float64    `json:"paddingLeft,omitempty"`
	PaddingRight        float64    `json:"paddingRight,omitempty"`
	PaddingTop          float64    `json:"paddingTop,omitempty"`
	PaddingBottom       float64    `json:"paddingBottom,omitempty"`
	ItemSpacing         float64    `json:"itemSpacing,omitempty"`
	Opacity             float64    `json:"opacity,omitempty"`
	CornerRadius        float64    `json:"cornerRadius,omitempty"`
}

// Color is a normalized RGBA value, each channel a 0–1 float. Alpha defaults
// to 1 when the API omits it.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

func (c *Color) UnmarshalJSON(data []byte) error {
	type raw struct {
		R float64  `json:"r"`
		G float64  `json:"g"`
		B float64  `json:"b"`
		A *float64 `json:"a"`
	}
	var v raw
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	c.R, c.G, c.B = v.R, v.G, v.B
	c.A = 1
	if v.A != nil {
		c.A = *v.A
	}
	return nil
}

// Paint is a fill or stroke. Only SOLID paints carry a Color.
type Paint struct {
	Type    string  `json:"type"`
	Visible *bool   `json:"visible,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
	Color   *Color  `json:"color,omitempty"`
}

type Effect struct {
	Type    string  `json:"type"`
	Visible bool    `json:"visible"`
	Radius  float64 `json:"radius,omitempty"`
	Color   *Color  `json:"color,omitempty"`
}

// TypeStyle carries the text properties of TEXT nodes.
type TypeStyle struct {
	FontFamily   string  `json:"fontFamily"`
	FontWeight   float64 `json:"fontWeight"`
	FontSize     float64 `json:"fontSize"`
	LineHeightPx float64 `json:"lineHeightPx"`
}

type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
