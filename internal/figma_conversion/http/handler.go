package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/domain"
	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/figma"
	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/service"
)

const convertRequestKey = "convert_request"

type Handler struct {
	svc *service.ConversionService
}

func New(svc *service.ConversionService) *Handler { return &Handler{svc: svc} }

// validateConvert rejects malformed conversion requests before the quota
// middleware charges the caller a trial conversion.
func (h *Handler) validateConvert(c *gin.Context) {
	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "Figma URL is required"})
		return
	}
	if !figma.ValidReferenceURL(req.FigmaURL) {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "Invalid Figma URL format"})
		return
	}
	if req.Framework != "" && !domain.IsValidFramework(req.Framework) {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Error:   "Unsupported framework",
			Details: fmt.Sprintf("%v: %s", domain.ErrInvalidFramework, req.Framework),
		})
		return
	}

	c.Set(convertRequestKey, req)
	c.Next()
}

func (h *Handler) convert(c *gin.Context) {
	req := c.MustGet(convertRequestKey).(convertRequest)

	result, err := h.svc.Convert(c.Request.Context(), domain.ConvertRequest{
		FigmaURL:      req.FigmaURL,
		Framework:     req.Framework,
		IncludeStyles: req.IncludeStyles,
		Responsive:    req.Responsive,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) importPreview(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Figma URL is required"})
		return
	}

	result, err := h.svc.Import(c.Request.Context(), req.FigmaURL)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) visionAnalyze(c *gin.Context) {
	var req visionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "imageUrl is required"})
		return
	}

	c.JSON(http.StatusOK, h.svc.InterpretImage(c.Request.Context(), req.ImageURL))
}

func (h *Handler) frameworks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"frameworks": domain.Frameworks})
}

func (h *Handler) stats(c *gin.Context) {
	c.JSON(http.StatusOK, service.GetMetrics())
}

// writeError maps pipeline errors to the HTTP-style taxonomy: 400 for bad
// input, 500 for upstream failures. The caller always gets well-formed JSON.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid Figma URL format"})
	case errors.Is(err, domain.ErrInvalidFramework):
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "Unsupported framework",
			Details: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{
			Error:      "Figma to code conversion failed",
			Details:    err.Error(),
			Suggestion: "Check Figma URL, API tokens, and try again",
		})
	}
}
