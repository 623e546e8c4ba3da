package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/regen-eco/regen-server/internal/handler"
	"github.com/regen-eco/regen-server/internal/middleware"
)

// Handlers groups every handler the router wires up.
type Handlers struct {
	Auth      *handler.AuthHandler
	Waste     *handler.WasteHandler
	Centers   *handler.CenterHandler
	Rewards   *handler.RewardHandler
	Community *handler.CommunityHandler
	Dashboard *handler.DashboardHandler
	AI        *handler.AIHandler
	Upload    *handler.UploadHandler
}

// Register wires all routes onto the Echo instance. Aggregate GET routes
// take the cache middleware; everything touching a caller's identity sits
// behind JWTAuth.
func Register(e *echo.Echo, h Handlers, jwtSecret, uploadDir string, cache, rateLimit echo.MiddlewareFunc) {
	e.GET("/api/health", handler.Health)
	e.Static("/uploads", uploadDir)

	api := e.Group("/api")
	if rateLimit != nil {
		api.Use(rateLimit)
	}

	// Session lifecycle. Register/login/reset/refresh/logout run without an
	// access token; profile and me require one.
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/reset-password", h.Auth.ResetPassword)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)
	auth.PUT("/profile", h.Auth.UpdateProfile, middleware.JWTAuth(jwtSecret))
	auth.GET("/me", h.Auth.Me, middleware.JWTAuth(jwtSecret))

	// Waste logs. Listing everything stays open (admin/reporting use), the
	// rest is owned by the caller.
	waste := api.Group("/waste-logs")
	waste.GET("/all", h.Waste.ListAll)
	waste.PUT("/:id/status", h.Waste.UpdateStatus)
	waste.DELETE("/:id", h.Waste.Delete)
	waste.GET("", h.Waste.ListMine, middleware.JWTAuth(jwtSecret))
	waste.POST("", h.Waste.Create, middleware.JWTAuth(jwtSecret))
	waste.PUT("/:id", h.Waste.Update, middleware.JWTAuth(jwtSecret))

	// Recycling-center directory.
	centers := api.Group("/recycling-centers")
	centers.GET("", h.Centers.List)
	centers.GET("/:id", h.Centers.Get)
	centers.POST("", h.Centers.Create, middleware.JWTAuth(jwtSecret))
	centers.PUT("/:id", h.Centers.Update, middleware.JWTAuth(jwtSecret))
	centers.DELETE("/:id", h.Centers.Delete, middleware.JWTAuth(jwtSecret))

	// Rewards.
	rewards := api.Group("/rewards", middleware.JWTAuth(jwtSecret))
	rewards.GET("", h.Rewards.ListMine)
	rewards.POST("", h.Rewards.Grant)
	rewards.DELETE("/:id", h.Rewards.Delete)

	// Community: leaderboard plus groups.
	community := api.Group("/community")
	if cache != nil {
		community.GET("/leaderboard", h.Community.Leaderboard, cache)
	} else {
		community.GET("/leaderboard", h.Community.Leaderboard)
	}
	community.GET("/groups", h.Community.ListGroups)
	community.POST("/groups", h.Community.CreateGroup, middleware.JWTAuth(jwtSecret))
	community.POST("/groups/:id/join", h.Community.JoinGroup, middleware.JWTAuth(jwtSecret))
	community.DELETE("/groups/:id", h.Community.DeleteGroup, middleware.JWTAuth(jwtSecret))

	// Dashboard statistics.
	dash := api.Group("/dashboard")
	dash.GET("", h.Dashboard.Me, middleware.JWTAuth(jwtSecret))
	if cache != nil {
		dash.GET("/global", h.Dashboard.Global, cache)
		dash.GET("/top-recyclers", h.Dashboard.TopRecyclers, cache)
	} else {
		dash.GET("/global", h.Dashboard.Global)
		dash.GET("/top-recyclers", h.Dashboard.TopRecyclers)
	}
	dash.GET("/recent", h.Dashboard.Recent)

	// AI waste guide and image upload.
	api.POST("/ai-guide", h.AI.Guide, middleware.JWTAuth(jwtSecret))
	api.POST("/upload", h.Upload.Upload, middleware.JWTAuth(jwtSecret))
}
