package router

import (
	"github.com/labstack/echo/v4"

	"github.com/shakeel7521951/bursa-backend/internal/rest"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/verify", handler.VerifyAccount)
	users.POST("/login", handler.Login)
	users.POST("/forgot-password", handler.ForgotPassword)
	users.POST("/verify-otp", handler.VerifyOTP)
	users.POST("/reset-password", handler.ResetPassword)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/me", handler.MyProfile, authRequired)
	users.PUT("/me", handler.UpdateProfile, authRequired)
	users.PUT("/me/password", handler.UpdatePassword, authRequired)

	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.PUT("/:id/role", handler.UpdateUserRole, authRequired, adminOnly)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupServiceRoutes(api *echo.Group, handler *rest.ServiceHandler, authRequired echo.MiddlewareFunc, transporterOnly echo.MiddlewareFunc) {
	services := api.Group("/services")

	services.GET("", handler.GetAllServices)
	services.GET("/:id", handler.GetService)

	services.POST("", handler.CreateService, authRequired, transporterOnly)
	services.GET("/mine", handler.GetMyServices, authRequired, transporterOnly)
	services.PUT("/:id", handler.UpdateService, authRequired)
	services.DELETE("/:id", handler.DeleteService, authRequired)
}

func SetupOrdersRoutes(api *echo.Group, handler *rest.OrdersHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)

	orders.POST("/service/:serviceId", handler.CreateOrder)
	orders.GET("/mine", handler.MyOrders)

	orders.GET("", handler.GetAllOrders, adminOnly)
	orders.PUT("/:id/status", handler.UpdateOrderStatus, adminOnly)
	orders.PUT("/:id", handler.UpdateOrder, adminOnly)
	orders.DELETE("/:id", handler.DeleteOrder)
}

func SetupRequestRoutes(api *echo.Group, handler *rest.RequestsHandler, authRequired echo.MiddlewareFunc, transporterOnly echo.MiddlewareFunc) {
	requests := api.Group("/requests", authRequired)

	requests.POST("", handler.CreateRequest)
	requests.GET("", handler.GetAllRequests)
	requests.GET("/mine", handler.MyRequests)
	requests.PUT("/:id", handler.UpdateRequest)
	requests.DELETE("/:id", handler.DeleteRequest)

	requests.POST("/:id/accept", handler.AcceptRequest, transporterOnly)
	requests.GET("/accepted", handler.AcceptedRequests, transporterOnly)
	requests.PUT("/:id/fulfill", handler.MarkFulfilled, transporterOnly)
}

func SetupBlogRoutes(api *echo.Group, handler *rest.BlogHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	blogs := api.Group("/blogs")

	blogs.GET("", handler.GetAllBlogs)
	blogs.GET("/:id", handler.GetBlog)

	blogs.POST("", handler.CreateBlog, authRequired, adminOnly)
	blogs.PUT("/:id", handler.UpdateBlog, authRequired, adminOnly)
	blogs.DELETE("/:id", handler.DeleteBlog, authRequired, adminOnly)

	blogs.POST("/:id/like", handler.ToggleLike, authRequired)
	blogs.POST("/:id/comments", handler.AddComment, authRequired)
	blogs.POST("/:id/comments/:commentId/like", handler.ToggleCommentLike, authRequired)
}
