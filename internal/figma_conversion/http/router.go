package http

import "github.com/gin-gonic/gin"

// Register wires the conversion routes. Only the conversion itself consumes
// trial quota; previews and listings are free. Validation runs before the
// quota guard so a rejected request never burns a trial conversion.
func (h *Handler) Register(rg *gin.RouterGroup, quota gin.HandlerFunc) {
	rg.GET("/frameworks", h.frameworks)
	rg.GET("/stats", h.stats)
	rg.POST("/convert", h.validateConvert, quota, h.convert)
	rg.POST("/import", h.importPreview)
	rg.POST("/vision", h.visionAnalyze)
}
