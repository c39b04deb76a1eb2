package handlers

import (
	"net/http"

	"github.com/HSchlagi/bess-simulation-sub000/internal/api/models"
	"github.com/HSchlagi/bess-simulation-sub000/internal/catalog"

	"github.com/gin-gonic/gin"
)

// ListScenarios handles GET /api/v1/scenarios
func ListScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, models.ScenariosResponse{Scenarios: catalog.Scenarios()})
}
