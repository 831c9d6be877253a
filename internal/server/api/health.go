package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cowrite/cowrite/internal/build"
)

type HealthHandlers struct{}

func NewHealthHandlers() *HealthHandlers {
	return &HealthHandlers{}
}

type HealthResponse struct {
	Status string     `json:"status"`
	Build  build.Info `json:"build"`
}

func (h *HealthHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Build:  build.GetBuildInfo(),
	})
}
