package main

import (
	"github.com/gin-gonic/gin"

	"veab-goa.backend/internal/interfaces/http/handlers"
	"veab-goa.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler       *handlers.AuthHandler
	teamMemberHandler *handlers.TeamMemberHandler
	articleHandler    *handlers.ArticleHandler
	projectHandler    *handlers.ProjectHandler
	contactHandler    *handlers.ContactHandler
	authMiddleware    gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/logout", d.authMiddleware, d.authHandler.Logout)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
		}

		// Public site content
		v1.GET("/team-members", d.teamMemberHandler.ListTeamMembers)
		v1.GET("/articles", d.articleHandler.ListArticles)
		v1.GET("/articles/:slug", d.articleHandler.GetArticle)
		v1.GET("/projects", d.projectHandler.ListProjects)
		v1.POST("/contact", d.contactHandler.SubmitContact)

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			team := admin.Group("/team-members")
			{
				team.GET("", d.teamMemberHandler.ListTeamMembers)
				team.POST("", d.teamMemberHandler.CreateTeamMember)
				team.GET("/:id", d.teamMemberHandler.GetTeamMember)
				team.PUT("/:id", d.teamMemberHandler.UpdateTeamMember)
				team.DELETE("/:id", d.teamMemberHandler.DeleteTeamMember)
			}

			articles := admin.Group("/articles")
			{
				articles.GET("", d.articleHandler.ListArticles)
				articles.POST("", d.articleHandler.CreateArticle)
				articles.DELETE("/:id", d.articleHandler.DeleteArticle)
			}

			projects := admin.Group("/projects")
			{
				projects.GET("", d.projectHandler.ListProjects)
				projects.POST("", d.projectHandler.CreateProject)
				projects.DELETE("/:id", d.projectHandler.DeleteProject)
			}

			contact := admin.Group("/contact-messages")
			{
				contact.GET("", d.contactHandler.ListContactMessages)
				contact.PATCH("/:id/read", d.contactHandler.MarkContactMessageRead)
			}
		}
	}
}
