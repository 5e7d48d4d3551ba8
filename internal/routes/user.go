package routes

import (
	"github.com/labstack/echo/v4"

	"sport-inventory/internal/controllers"
)

func runUserRouter(admin *echo.Group, ctrl *controllers.UserController) {
	admin.GET("/users", ctrl.List)
	admin.PUT("/users/:id/role", ctrl.UpdateRole)
}
