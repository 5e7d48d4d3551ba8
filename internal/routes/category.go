package routes

import (
	"github.com/labstack/echo/v4"

	"sport-inventory/internal/controllers"
)

func runCategoryRouter(secure, admin *echo.Group, ctrl *controllers.CategoryController) {
	secure.GET("/categories", ctrl.List)

	admin.POST("/categories", ctrl.Create)
	admin.PUT("/categories/:id", ctrl.Update)
	admin.DELETE("/categories/:id", ctrl.Delete)
	admin.GET("/categories/:id/equipment", ctrl.ListEquipment)
}
