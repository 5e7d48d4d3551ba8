package routes

import (
	"github.com/labstack/echo/v4"

	"sport-inventory/internal/controllers"
)

func runEquipmentRouter(secure, admin *echo.Group, ctrl *controllers.EquipmentController, dashboard *controllers.DashboardController) {
	secure.GET("/dashboard", dashboard.Get)
	secure.GET("/equipment", ctrl.Grouped)

	admin.GET("/equipment", ctrl.List)
	admin.POST("/equipment", ctrl.Create)
	admin.PUT("/equipment/:id", ctrl.Update)
	admin.DELETE("/equipment/:id", ctrl.Delete)
}
