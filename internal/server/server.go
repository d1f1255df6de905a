package server

import (
	"context"
	"log"
	"strings"
	"time"

	"octofit.app/tracker/internal/config"
	"octofit.app/tracker/internal/middleware"
	"octofit.app/tracker/pkg/storage"

	activityHttp "octofit.app/tracker/internal/modules/activity/delivery/http"
	activityRepo "octofit.app/tracker/internal/modules/activity/repository"
	activityService "octofit.app/tracker/internal/modules/activity/service"

	leaderboardHttp "octofit.app/tracker/internal/modules/leaderboard/delivery/http"
	leaderboardRepo "octofit.app/tracker/internal/modules/leaderboard/repository"
	leaderboardService "octofit.app/tracker/internal/modules/leaderboard/service"

	searchService "octofit.app/tracker/internal/modules/search/service"

	teamHttp "octofit.app/tracker/internal/modules/team/delivery/http"
	teamRepo "octofit.app/tracker/internal/modules/team/repository"
	teamService "octofit.app/tracker/internal/modules/team/service"

	userHttp "octofit.app/tracker/internal/modules/user/delivery/http"
	userRepo "octofit.app/tracker/internal/modules/user/repository"
	userService "octofit.app/tracker/internal/modules/user/service"

	workoutHttp "octofit.app/tracker/internal/modules/workout/delivery/http"
	workoutRepo "octofit.app/tracker/internal/modules/workout/repository"
	workoutService "octofit.app/tracker/internal/modules/workout/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Server {
	userRepository := userRepo.NewUserRepository(db)
	activityRepository := activityRepo.NewActivityRepository(db)
	teamRepository := teamRepo.NewTeamRepository(db)
	leaderboardRepository := leaderboardRepo.NewLeaderboardRepository(db)
	workoutRepository := workoutRepo.NewWorkoutRepository(db)

	var imageStorage storage.ImageStorage
	if cfg.CloudinaryCloudName != "" || cfg.CloudinaryAPIKey != "" {
		var err error
		imageStorage, err = storage.NewCloudinaryStorage()
		if err != nil {
			log.Fatalf("failed to initialize cloudinary storage: %v", err)
		}
	} else {
		log.Println("WARNING: Cloudinary is not configured, avatar upload disabled")
	}

	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := searchService.NewSearchService(meiliClient)

	authSvc := userService.NewAuthService(userRepository, cfg.JWTSecret, cfg.TokenTTL)
	authHandler := userHttp.NewAuthHandler(authSvc)

	userSvc := userService.NewUserService(userRepository, activityRepository, imageStorage)
	userHandler := userHttp.NewUserHandler(userSvc)

	teamSvc := teamService.NewTeamService(teamRepository, userRepository, activityRepository)
	teamHandler := teamHttp.NewTeamHandler(teamSvc)

	activitySvc := activityService.NewActivityService(activityRepository, userRepository)
	activityHandler := activityHttp.NewActivityHandler(activitySvc)

	leaderboardSvc := leaderboardService.NewLeaderboardService(leaderboardRepository, redisClient)
	leaderboardHandler := leaderboardHttp.NewLeaderboardHandler(leaderboardSvc, redisClient)

	workoutSvc := workoutService.NewWorkoutService(workoutRepository, userRepository, searchSvc)
	workoutHandler := workoutHttp.NewWorkoutHandler(workoutSvc)

	// Periodic ranking refresh (Background)
	go func() {
		ticker := time.NewTicker(cfg.LeaderboardRefreshInterval)
		defer ticker.Stop()

		for range ticker.C {
			log.Println("Refreshing leaderboard rankings...")
			if err := leaderboardSvc.RefreshAllPeriods(context.Background()); err != nil {
				log.Printf("Error refreshing leaderboard rankings: %v", err)
			}
		}
	}()

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepository)

	api := router.Group("/api")

	api.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// User routes
		protected.GET("/users/me", userHandler.GetMe)
		protected.GET("/users", userHandler.GetAllUsers)
		protected.GET("/users/:id", userHandler.GetUser)
		protected.PUT("/users/:id", userHandler.UpdateUser)
		protected.GET("/users/:id/activities", userHandler.GetUserActivities)
		protected.GET("/users/:id/teams", userHandler.GetUserTeams)
		protected.GET("/users/:id/stats", userHandler.GetUserStats)
		protected.POST("/users/me/avatar", userHandler.UploadAvatar)

		// Team routes
		protected.POST("/teams", teamHandler.CreateTeam)
		protected.GET("/teams", teamHandler.GetAllTeams)
		protected.GET("/teams/:id", teamHandler.GetTeam)
		protected.PUT("/teams/:id", teamHandler.UpdateTeam)
		protected.DELETE("/teams/:id", teamHandler.DeleteTeam)
		protected.POST("/teams/:id/members", teamHandler.AddMember)
		protected.DELETE("/teams/:id/members/:user_id", teamHandler.RemoveMember)
		protected.GET("/teams/:id/stats", teamHandler.GetTeamStats)

		// Activity routes
		protected.POST("/activities", activityHandler.CreateActivity)
		protected.GET("/activities", activityHandler.GetAllActivities)
		protected.GET("/activities/:id", activityHandler.GetActivity)
		protected.PUT("/activities/:id", activityHandler.UpdateActivity)
		protected.DELETE("/activities/:id", activityHandler.DeleteActivity)

		// Leaderboard routes
		protected.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		protected.GET("/leaderboard/ws", leaderboardHandler.HandleWebSocket)

		// Workout routes
		protected.GET("/workouts", workoutHandler.GetAllWorkouts)
		protected.GET("/workouts/suggestions", workoutHandler.GetSuggestions)
		protected.GET("/workouts/search", workoutHandler.SearchWorkouts)
		protected.GET("/workouts/:id", workoutHandler.GetWorkout)

		// Admin routes
		adminGroup := protected.Group("")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.DELETE("/users/:id", userHandler.DeleteUser)
			adminGroup.POST("/leaderboard/refresh", leaderboardHandler.RefreshRankings)
			adminGroup.POST("/workouts", workoutHandler.CreateWorkout)
			adminGroup.PUT("/workouts/:id", workoutHandler.UpdateWorkout)
			adminGroup.DELETE("/workouts/:id", workoutHandler.DeleteWorkout)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
