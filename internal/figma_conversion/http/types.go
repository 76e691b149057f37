package http

// convertRequest mirrors the wire contract of the original product.
type convertRequest struct {
	FigmaURL      string `json:"figmaUrl" binding:"required"`
	Framework     string `json:"framework"`
	IncludeStyles bool   `json:"includeStyles"`
	Responsive    bool   `json:"responsive"`
}

type importRequest struct {
	FigmaURL string `json:"figmaUrl" binding:"required"`
}

type visionRequest struct {
	ImageURL string `json:"imageUrl" binding:"required"`
}

type errorResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}
