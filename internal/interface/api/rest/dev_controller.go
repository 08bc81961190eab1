package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-admin-dashboard/internal/application/ports"
	"user-admin-dashboard/internal/interface/api/rest/dto/deletion"
)

// DevController exposes stored self-issued codes. Register it only outside
// production.
type DevController struct {
	deletion ports.DeletionService
	logger   *zap.Logger
}

func NewDevController(r *gin.Engine, deletionService ports.DeletionService, logger *zap.Logger) *DevController {
	dc := &DevController{
		deletion: deletionService,
		logger:   logger,
	}

	r.GET(RouteDevOTP, dc.LatestCodeHandler)

	return dc
}

func (dc *DevController) LatestCodeHandler(c *gin.Context) {
	rec, err := dc.deletion.LatestCode(c.Request.Context(), c.Query("admin_phone"))
	if err != nil {
		writeError(c, dc.logger, "failed to fetch otp", err)
		return
	}

	c.JSON(http.StatusOK, deletion.ToDevCode(*rec))
}
