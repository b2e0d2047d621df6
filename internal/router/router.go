package router

import (
	"net/http"
	"time"

	"github.com/moojpayam/api/internal/config"
	"github.com/moojpayam/api/internal/http/handlers/admin"
	"github.com/moojpayam/api/internal/http/handlers/public"
	"github.com/moojpayam/api/internal/logger"
	"github.com/moojpayam/api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with every route and middleware.
func SetupRouter(cfg *config.Config, container *provider.Container) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		LoggerMiddleware(logger.Z()),
		CORSMiddleware(cfg.CORS),
	)

	publicHandler := public.New(container)
	adminHandler := admin.New(container)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Root-level surfaces: uploaded assets, short-link redirects and the
	// crawler-facing article pages.
	engine.Static("/uploads", container.UploadService.Dir())
	engine.GET("/s/:code", publicHandler.ResolveShortLink)
	engine.GET("/blog/:slug", publicHandler.BlogPage)

	limits := cfg.RateLimit
	cached := CacheMiddleware(time.Duration(cfg.Cache.TTLSeconds) * time.Second)

	api := engine.Group("/api")
	{
		api.GET("/captcha/image", publicHandler.CaptchaImage)

		// OTP requests and contact submissions draw from one per-IP bucket:
		// an IP gets 2 outbound messages per day total, no matter how many
		// phone numbers it names.
		contactRule := rule("contact", limits.Contact, "error.rate_limited_contact")
		api.POST("/send-otp",
			RateLimitMiddleware(contactRule, KeyByIP),
			publicHandler.SendOtp)
		api.POST("/verify-otp",
			RateLimitMiddleware(rule("otp_verify", limits.OtpVerify, "error.rate_limited_otp_verify"), KeyByIPAndJSONField("phone")),
			publicHandler.VerifyOtp)
		api.POST("/send-email",
			RateLimitMiddleware(contactRule, KeyByIP),
			publicHandler.SendEmail)

		api.POST("/mooj-admin",
			RateLimitMiddleware(rule("login", limits.Login, "error.rate_limited_login"), KeyByIP),
			adminHandler.Login)
		api.GET("/admin/verify", adminHandler.VerifySession)
		api.POST("/admin/logout", adminHandler.Logout)

		content := api.Group("/content")
		{
			content.GET("/blogs", cached, publicHandler.ListBlogs)
			content.GET("/blogs/:id", cached, publicHandler.GetBlogByID)
			content.GET("/blogs/slug/:slug", cached, publicHandler.GetBlogBySlug)
			content.GET("/pricing", cached, publicHandler.ListPricingPlans)
			content.GET("/announcement", cached, publicHandler.GetAnnouncement)
		}

		api.POST("/blogs/:id/view",
			RateLimitMiddleware(rule("view", limits.View, "error.rate_limited_view"), KeyByIPAndParam("id")),
			publicHandler.RecordBlogView)
		api.POST("/shorten", publicHandler.ShortenURL)

		adminGroup := api.Group("/admin", RequireAdminMiddleware(container.AuthService))
		{
			adminGroup.POST("/upload",
				RateLimitMiddleware(rule("upload", limits.Upload, "error.rate_limited_upload"), KeyByIP),
				adminHandler.UploadImage)
			adminGroup.GET("/images", adminHandler.ListImages)
			adminGroup.DELETE("/upload/*name", adminHandler.DeleteImage)

			adminGroup.GET("/blogs", adminHandler.ListBlogs)
			adminGroup.GET("/blogs/:id", adminHandler.GetBlog)
			adminGroup.POST("/blogs", adminHandler.CreateBlog)
			adminGroup.PUT("/blogs/:id", adminHandler.UpdateBlog)
			adminGroup.PATCH("/blogs/:id", adminHandler.UpdateBlog)
			adminGroup.DELETE("/blogs/:id", adminHandler.DeleteBlog)

			adminGroup.GET("/announcements", adminHandler.ListAnnouncements)
			adminGroup.POST("/announcements", adminHandler.CreateAnnouncement)
			adminGroup.PUT("/announcements/:id", adminHandler.UpdateAnnouncement)
			adminGroup.DELETE("/announcements/:id", adminHandler.DeleteAnnouncement)

			adminGroup.GET("/pricing", adminHandler.ListPricingPlans)
			adminGroup.POST("/pricing", adminHandler.CreatePricingPlan)
			adminGroup.PUT("/pricing/:id", adminHandler.UpdatePricingPlan)
			adminGroup.DELETE("/pricing/:id", adminHandler.DeletePricingPlan)

			adminGroup.GET("/short-links", adminHandler.ListShortLinks)
			adminGroup.DELETE("/short-links/:id", adminHandler.DeleteShortLink)

			adminGroup.GET("/logs", adminHandler.ListAuditLogs)
			adminGroup.GET("/logs/export", adminHandler.ExportAuditLogs)
			adminGroup.GET("/stats", adminHandler.Stats)
		}
	}

	return engine
}

func rule(prefix string, cfg config.RateLimitRuleConfig, messageKey string) RateLimitRule {
	return RateLimitRule{
		Prefix:        prefix,
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxRequests,
		MessageKey:    messageKey,
	}
}
