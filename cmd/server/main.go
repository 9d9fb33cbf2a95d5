package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"steamcatalog/backend/internal/catalog"
	"steamcatalog/backend/internal/config"
	"steamcatalog/backend/internal/database"
	"steamcatalog/backend/internal/handler"
	"steamcatalog/backend/internal/steam"
	"steamcatalog/backend/internal/syncer"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gopkg.in/natefinch/lumberjack.v2"

	// Swagger imports
	_ "steamcatalog/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Steam Catalog API
// @version         1.0
// @description     Read-only catalog of Steam games, tags and top-100 rankings.
// @host            localhost:8080
// @BasePath        /steam_api
func main() {
	cfg := config.AppConfig

	if cfg.LogFile != "" {
		log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}))
	}

	// Connect to the database
	store, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connection established.")

	client := steam.NewClient(cfg.SteamTop100URL, cfg.SteamDetailURL)
	engine := syncer.New(store, client, log.Default())

	scheduler := cron.New()
	_, err = scheduler.AddFunc("@every "+cfg.SyncInterval, func() {
		if err := engine.Run(context.Background()); err != nil {
			log.Printf("sync cycle failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Invalid sync interval %q: %v", cfg.SyncInterval, err)
	}
	scheduler.Start()

	catalogHandler := handler.NewCatalog(catalog.New(store), log.Default())

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Welcome endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Steam game catalog API",
		})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	steamAPI := router.Group("/steam_api")
	{
		steamAPI.GET("/game_detail/:key", catalogHandler.GetGameDetail)
		steamAPI.GET("/game_list_by_tag/:tag", catalogHandler.GetGameListByTag)
		steamAPI.GET("/game_list", catalogHandler.GetGameList)
	}

	fmt.Println("Server is running on :" + cfg.Port)
	fmt.Println("Swagger UI is available at http://localhost:" + cfg.Port + "/swagger/index.html")
	log.Fatal(router.Run(":" + cfg.Port))
}
