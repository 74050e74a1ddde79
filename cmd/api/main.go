package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"craftmosul/internal/config"
	"craftmosul/internal/database"
	"craftmosul/internal/middleware"
	"craftmosul/internal/modules/auth"
	"craftmosul/internal/modules/favorite"
	"craftmosul/internal/modules/neighborhood"
	"craftmosul/internal/modules/portfolio"
	"craftmosul/internal/modules/profession"
	"craftmosul/internal/modules/request"
	"craftmosul/internal/modules/review"
	"craftmosul/internal/modules/worker"
	jwtsvc "craftmosul/internal/pkg/jwt"
	"craftmosul/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	gin.SetMode(cfg.Server.GinMode)

	db, err := database.Connect(cfg.Server.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	professionRepo := repository.NewProfessionRepository(db)
	neighborhoodRepo := repository.NewNeighborhoodRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)

	j := jwtsvc.New(cfg.JWT.Secret, cfg.JWT.TTL)

	authHandler := auth.NewHandler(auth.NewService(userRepo, professionRepo, j))
	professionHandler := profession.NewHandler(professionRepo)
	neighborhoodHandler := neighborhood.NewHandler(neighborhoodRepo)
	workerHandler := worker.NewHandler(worker.NewService(workerRepo))
	requestHandler := request.NewHandler(request.NewService(requestRepo, workerRepo))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, requestRepo))
	favoriteHandler := favorite.NewHandler(favorite.NewService(favoriteRepo, workerRepo))
	portfolioHandler := portfolio.NewHandler(
		portfolio.NewService(portfolioRepo, workerRepo),
		cfg.Upload.Dir,
		cfg.Upload.MaxSizeMB,
	)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Static("/uploads", cfg.Upload.Dir)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j, userRepo))
		authHandler.RegisterProtectedRoutes(protected)
		favoriteHandler.RegisterRoutes(protected)

		professionHandler.RegisterRoutes(v1, protected)
		neighborhoodHandler.RegisterRoutes(v1, protected)
		workerHandler.RegisterRoutes(v1, protected)
		requestHandler.RegisterRoutes(v1, protected)
		reviewHandler.RegisterRoutes(v1, protected)
		portfolioHandler.RegisterRoutes(v1, protected)
	}

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
