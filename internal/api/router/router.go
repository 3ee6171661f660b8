package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/watchied/67011380-Todo/config"
	"github.com/watchied/67011380-Todo/internal/api/handler"
	"github.com/watchied/67011380-Todo/internal/api/middleware"
	"github.com/watchied/67011380-Todo/pkg/jwt"
	"github.com/watchied/67011380-Todo/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 用户与受理人目录
			authorized.POST("/users", middleware.RoleAuth("admin"), h.User.CreateUser)
			authorized.GET("/assignees", middleware.RoleAuth("admin", "assignee"), h.User.ListAssignees)

			// 工单分类
			authorized.GET("/categories", h.Category.ListCategories)

			// 支持请求模块
			requests := authorized.Group("/requests")
			{
				requests.POST("", middleware.RateLimit(rdb, 10, time.Minute), h.Request.SubmitRequest)
				requests.GET("", h.Request.ListMyRequests)
				requests.GET("/:id", h.Request.GetRequest)
				requests.POST("/:id/retry", middleware.RoleAuth("admin"), h.Request.RetryTriage)
			}

			// 草稿工单模块（受理人或管理员审批）
			drafts := authorized.Group("/drafts")
			drafts.Use(middleware.RoleAuth("admin", "assignee"))
			{
				drafts.GET("/:id", h.Request.GetDraft)
				drafts.POST("/:id/approve", h.Request.ApproveDraft)
				drafts.POST("/:id/reject", h.Request.RejectDraft)
			}

			// 任务模块
			tasks := authorized.Group("/tasks")
			{
				tasks.POST("", h.Task.CreateTask)
				tasks.GET("", h.Task.ListTasks)
				tasks.PUT("/:id/status", h.Task.ChangeStatus)
				tasks.PUT("/:id/assignee", middleware.RoleAuth("admin"), h.Task.ChangeAssignee)
				tasks.POST("/:id/attachments", h.Task.AddAttachment)
				tasks.DELETE("/:id", h.Task.DeleteTask)
			}

			// 团队模块
			teams := authorized.Group("/teams")
			{
				teams.GET("", h.Team.ListTeams)
				teams.POST("", middleware.RoleAuth("admin"), h.Team.CreateTeam)
			}
		}
	}

	return r
}
