package routes

import (
	"github.com/labstack/echo/v4"

	"sport-inventory/internal/controllers"
	"sport-inventory/pkg/middleware"
)

func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh", authCtrl.Refresh)
		authGroup.POST("/logout", authCtrl.Logout, authMW.Auth)
		authGroup.GET("/me", authCtrl.Me, authMW.Auth)
	}
}
