package routes

import (
	"github.com/labstack/echo/v4"

	"sport-inventory/internal/controllers"
)

func runRequestRouter(secure, admin *echo.Group, ctrl *controllers.RequestController) {
	secure.POST("/requests", ctrl.Create)
	secure.GET("/requests", ctrl.ListMine)
	secure.GET("/requests/marketplaces", ctrl.Marketplaces)

	admin.GET("/requests", ctrl.ListAll)
	admin.PUT("/requests/:id/status", ctrl.UpdateStatus)
}
