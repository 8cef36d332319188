package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookrealm-backend/internal/shared/middleware"
	"bookrealm-backend/internal/shared/response"
	"bookrealm-backend/pkg/container"
	"bookrealm-backend/pkg/jwt"
)

func registerRoutes(engine *gin.Engine, c *container.Container) {
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger())
	engine.Use(middleware.Recovery())

	engine.GET("/health", func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", err.Error())
			return
		}
		response.Success(ctx, http.StatusOK, gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		})
	})

	api := engine.Group("/api/v1")

	tokens := jwt.NewManager(c.Config.JWT.Secret)
	public := api.Group("", middleware.OptionalAuthMiddleware(tokens))
	authed := api.Group("", middleware.AuthMiddleware(tokens))

	// Catalogue reads. Optional auth feeds the per-viewer favorite
	// annotation and draft visibility for authors.
	public.GET("/books", c.BookHandler.List)
	public.GET("/books/recommended", c.BookHandler.GetRecommended)
	public.GET("/books/popular", c.BookHandler.GetPopular)
	public.GET("/books/:slug", c.BookHandler.GetBySlug)
	public.GET("/books/:slug/related", c.BookHandler.GetRelated)
	public.GET("/books/:slug/chapters", c.ChapterHandler.ListByBook)
	public.GET("/chapters/:id", c.ChapterHandler.Get)
	public.GET("/categories", c.CategoryHandler.List)
	public.GET("/categories/:id", c.CategoryHandler.GetByID)

	// Author write path.
	authed.POST("/books", c.BookHandler.Create)
	authed.PUT("/books/:slug", c.BookHandler.Update)
	authed.DELETE("/books/:slug", c.BookHandler.Delete)
	authed.GET("/books/me", c.BookHandler.ListMine)
	authed.GET("/books/trash", c.BookHandler.ListTrash)
	authed.POST("/books/trash/restore", c.BookHandler.Restore)
	authed.POST("/books/trash/remove", c.BookHandler.Remove)
	authed.POST("/books/:slug/chapters", c.ChapterHandler.Create)
	authed.PUT("/chapters/:id", c.ChapterHandler.Update)
	authed.DELETE("/chapters/:id", c.ChapterHandler.Delete)

	// Reader state.
	authed.POST("/books/:slug/favorite", c.FavoriteHandler.Add)
	authed.DELETE("/books/:slug/favorite", c.FavoriteHandler.Remove)
	authed.GET("/favorites", c.FavoriteHandler.ListMine)
	authed.POST("/books/:slug/progress", c.ProgressHandler.Start)
	authed.PUT("/books/:slug/progress", c.ProgressHandler.Advance)
	authed.GET("/books/:slug/progress", c.ProgressHandler.Get)
	authed.POST("/books/:slug/history", c.HistoryHandler.Track)
	authed.GET("/history", c.HistoryHandler.List)
	authed.DELETE("/history/:slug", c.HistoryHandler.Delete)
	authed.POST("/interests", c.InterestHandler.Add)
	authed.GET("/interests", c.InterestHandler.List)
	authed.DELETE("/interests/:id", c.InterestHandler.Delete)

	// Category administration.
	authed.POST("/categories", c.CategoryHandler.Create)
	authed.PUT("/categories/:id", c.CategoryHandler.Update)
	authed.DELETE("/categories/:id", c.CategoryHandler.Delete)
}
