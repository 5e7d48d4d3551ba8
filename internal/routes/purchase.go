package routes

import (
	"github.com/labstack/echo/v4"

	"sport-inventory/internal/controllers"
)

func runPurchaseRouter(secure, admin *echo.Group, ctrl *controllers.PurchaseController) {
	secure.GET("/price-history/:request_id", ctrl.PriceHistory)

	admin.GET("/purchases", ctrl.Summary)
	admin.PUT("/purchases/:id/bought", ctrl.SetBought)
}
