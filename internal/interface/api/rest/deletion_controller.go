package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"user-admin-dashboard/internal/application/ports"
	"user-admin-dashboard/internal/interface/api/rest/dto/deletion"
	"user-admin-dashboard/internal/interface/api/rest/validator"
)

type DeletionController struct {
	deletion ports.DeletionService
	logger   *zap.Logger
}

func NewDeletionController(
	r *gin.Engine,
	deletionService ports.DeletionService,
	logger *zap.Logger,
) *DeletionController {
	dc := &DeletionController{
		deletion: deletionService,
		logger:   logger,
	}

	r.POST(RouteUserDeletionAttempts, dc.BeginHandler)
	r.POST(RouteDeletionResend, dc.ResendHandler)
	r.POST(RouteDeletionVerify, dc.VerifyHandler)
	r.DELETE(RouteDeletionAttempt, dc.CancelHandler)

	return dc
}

func (dc *DeletionController) bindBegin(c *gin.Context) (deletion.BeginRequest, bool) {
	var req deletion.BeginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return req, false
	}

	phone, err := validator.ValidatePhone(req.AdminPhone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "admin_phone " + err.Error(),
			"field": "admin_phone",
		})
		return req, false
	}
	req.AdminPhone = phone

	return req, true
}

func (dc *DeletionController) attemptID(c *gin.Context) (uuid.UUID, bool) {
	ok, id := validator.IsUUID(c.Param("attempt_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "attempt_id must be a valid UUID"},
		)
	}
	return id, ok
}

func (dc *DeletionController) BeginHandler(c *gin.Context) {
	userID, ok := validator.ValidateUserID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id is required"},
		)
		return
	}
	req, ok := dc.bindBegin(c)
	if !ok {
		return
	}

	id, snap, err := dc.deletion.Begin(c.Request.Context(), userID, req.AdminPhone, req.RecaptchaToken)
	if err != nil {
		writeError(c, dc.logger, "failed to start deletion", err)
		return
	}

	c.JSON(http.StatusCreated, deletion.ToAttempt(id, userID, snap))
}

func (dc *DeletionController) ResendHandler(c *gin.Context) {
	id, ok := dc.attemptID(c)
	if !ok {
		return
	}
	req, ok := dc.bindBegin(c)
	if !ok {
		return
	}

	snap, err := dc.deletion.Resend(c.Request.Context(), id, req.AdminPhone, req.RecaptchaToken)
	if err != nil {
		writeError(c, dc.logger, "failed to resend code", err)
		return
	}

	c.JSON(http.StatusOK, deletion.ToAttempt(id, snap.TargetUserID, snap))
}

func (dc *DeletionController) VerifyHandler(c *gin.Context) {
	id, ok := dc.attemptID(c)
	if !ok {
		return
	}

	var req deletion.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if err := validator.ValidateCode(req.Code); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"field": "code",
		})
		return
	}

	grant, err := dc.deletion.Verify(c.Request.Context(), id, req.Code)
	if err != nil {
		writeError(c, dc.logger, "failed to verify code", err)
		return
	}

	c.JSON(http.StatusOK, deletion.ToGrant(grant))
}

func (dc *DeletionController) CancelHandler(c *gin.Context) {
	id, ok := dc.attemptID(c)
	if !ok {
		return
	}

	if err := dc.deletion.Cancel(id); err != nil {
		writeError(c, dc.logger, "failed to cancel deletion", err)
		return
	}

	c.Status(http.StatusNoContent)
}
