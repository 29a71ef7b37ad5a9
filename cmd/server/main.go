package main

import (
	"log"

	"github.com/groupsense/affinity-backend-go/internal/api"
	"github.com/groupsense/affinity-backend-go/internal/config"
	"github.com/groupsense/affinity-backend-go/internal/database"
	"github.com/groupsense/affinity-backend-go/internal/geofence"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	dbConfig := database.Config{
		Path: cfg.DBPath,
	}
	if err := database.Init(dbConfig); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.NewMigrationManager(db).RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// 加载地理围栏区域
	regions := geofence.DefaultRegions()
	if cfg.RegionsPath != "" {
		loaded, err := geofence.LoadRegions(cfg.RegionsPath)
		if err != nil {
			log.Fatal("Failed to load regions:", err)
		}
		regions = loaded
	}
	resolver := geofence.NewResolver(regions)

	// 初始化路由
	router := api.SetupRouter(cfg, db, resolver)

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
