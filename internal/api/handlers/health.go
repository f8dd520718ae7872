package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/osa911/folio/internal/api/dto/common"
	"github.com/osa911/folio/internal/version"
)

// RelayChecker reports whether the email relay can be used
type RelayChecker interface {
	Configured() bool
}

type HealthHandler struct {
	relay RelayChecker
}

func NewHealthHandler(relay RelayChecker) *HealthHandler {
	return &HealthHandler{relay: relay}
}

type healthResponse struct {
	Status          string            `json:"status"`
	RelayConfigured bool              `json:"relay_configured"`
	Build           version.BuildInfo `json:"build"`
}

// Check always answers 200 while the process is up. A missing relay
// configuration is reported, not treated as unhealthy: the form still works
// and shows the configuration error to the user.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(healthResponse{
		Status:          "ok",
		RelayConfigured: h.relay.Configured(),
		Build:           version.GetBuildInfo(),
	}))
}
