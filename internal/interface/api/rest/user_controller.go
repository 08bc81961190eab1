package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-admin-dashboard/internal/application/ports"
	"user-admin-dashboard/internal/interface/api/rest/dto/user"
	"user-admin-dashboard/internal/interface/api/rest/middleware"
	"user-admin-dashboard/internal/interface/api/rest/validator"
)

type UserController struct {
	directory ports.DirectoryService
	deletion  ports.DeletionService
	logger    *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	directory ports.DirectoryService,
	deletion ports.DeletionService,
	grants ports.Grants,
	logger *zap.Logger,
) *UserController {
	uc := &UserController{
		directory: directory,
		deletion:  deletion,
		logger:    logger,
	}

	r.GET(RouteUsers, uc.GetUsersHandler)
	r.DELETE(RouteUser, middleware.GrantMiddleware(grants), uc.DeleteUserHandler)

	return uc
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	users := uc.directory.List(c.Request.Context())

	c.JSON(http.StatusOK, user.ResponseData{
		Data: user.ToResponseUsers(users),
	})
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	id, ok := validator.ValidateUserID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id is required"},
		)
		return
	}

	err := uc.deletion.ConfirmDelete(c.Request.Context(), c.GetString(middleware.CtxGrantToken), id)
	if err != nil {
		writeError(c, uc.logger, "failed to delete user", err)
		return
	}

	c.Status(http.StatusNoContent)
}
