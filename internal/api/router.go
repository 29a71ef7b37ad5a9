package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/groupsense/affinity-backend-go/internal/analysis"
	"github.com/groupsense/affinity-backend-go/internal/config"
	"github.com/groupsense/affinity-backend-go/internal/geofence"
	"github.com/groupsense/affinity-backend-go/internal/handler"
	"github.com/groupsense/affinity-backend-go/internal/middleware"
	"github.com/groupsense/affinity-backend-go/internal/repository"
	"github.com/groupsense/affinity-backend-go/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, db *sql.DB, resolver *geofence.Resolver) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Repositories
	users := repository.NewUserRepository(db)
	events := repository.NewEventRepository(db)
	visits := repository.NewDensityRepository(db)
	snapshots := repository.NewSnapshotRepository(db)
	groups := repository.NewGroupRepository(db)
	runs := repository.NewRunRepository(db)

	// Services
	authService := service.NewAuthService(users, cfg.JWTSecret)
	densityService := service.NewDensityService(visits, resolver)
	ingestService := service.NewIngestService(users, events, densityService, resolver)
	matrixService := service.NewMatrixService(users, events, snapshots)
	discoveryService := service.NewDiscoveryService(users, groups, cfg.CliqueNodeLimit, cfg.CliqueTimeout)
	queryService := service.NewQueryService(users, matrixService, snapshots, groups)
	runner := analysis.NewRunner(runs, snapshots, groups, matrixService, discoveryService)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	ingestHandler := handler.NewIngestHandler(ingestService)
	densityHandler := handler.NewDensityHandler(densityService)
	groupHandler := handler.NewGroupHandler(queryService)
	regionHandler := handler.NewRegionHandler(resolver)
	analysisHandler := handler.NewAnalysisHandler(runner, runs)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Affinity Backend API is running",
		})
	})

	// API 路由组
	api := r.Group("/api/v1")
	{
		// 用户注册与登录
		usersGroup := api.Group("/users")
		{
			usersGroup.POST("", authHandler.Register)
			usersGroup.POST("/login", authHandler.Login)
			usersGroup.GET("/:id/strength", groupHandler.PersonalStrength)
		}

		// 定位事件上报（需要认证）
		localizations := api.Group("/localizations")
		localizations.Use(middleware.Auth(authService))
		localizations.Use(middleware.RateLimit(120, time.Minute))
		{
			localizations.POST("", ingestHandler.RecordEvents)
		}

		// 区域密度与地理围栏
		api.GET("/density", densityHandler.QueryDensity)
		api.GET("/regions", regionHandler.ListRegions)

		// 群组查询
		groupsGroup := api.Group("/groups")
		{
			groupsGroup.GET("/user/:id", groupHandler.GroupsForUser)
			groupsGroup.GET("/genders", groupHandler.GenderBreakdown)
		}

		// 批量分析任务
		analysisGroup := api.Group("/analysis")
		{
			analysisGroup.POST("/runs", analysisHandler.TriggerRun)
			analysisGroup.GET("/runs", analysisHandler.ListRuns)
			analysisGroup.GET("/runs/:id", analysisHandler.GetRun)
		}
	}

	return r
}
