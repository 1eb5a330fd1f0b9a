package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"secureshare/internal/config"
	"secureshare/internal/database"
	"secureshare/internal/domain/auth"
	"secureshare/internal/domain/device"
	"secureshare/internal/domain/file"
	"secureshare/internal/domain/security"
	"secureshare/internal/domain/share"
	"secureshare/internal/middleware"
	jwtsvc "secureshare/internal/pkg/jwt"
	"secureshare/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	store, err := storage.NewDiskStore(cfg.DataDir)
	if err != nil {
		log.Fatal(err)
	}
	signer := storage.NewURLSigner(cfg.StorageSecret, cfg.PublicOrigin)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	userRepo := auth.NewRepository(db)
	fileRepo := file.NewRepository(db)
	shareRepo := share.NewRepository(db)
	deviceRepo := device.NewRepository(db)
	securityRepo := security.NewRepository(db)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	fileService := file.NewService(fileRepo, store, cfg.MaxUploadSize)
	fileHandler := file.NewHandler(fileService)

	deviceService := device.NewService(deviceRepo)

	issuer := share.NewIssuer(shareRepo, fileRepo, share.IssuerConfig{
		PublicOrigin:             cfg.PublicOrigin,
		DownloadRequiresNoExpiry: cfg.DownloadRequiresNoExpiry,
	})
	shareHandler := share.NewHandler(issuer)

	deviceHandler := device.NewHandler(deviceService, issuer)

	securityService := security.NewService(securityRepo, fileRepo)
	securityHandler := security.NewHandler(securityService)

	gate := share.NewGate(shareRepo, fileRepo, deviceService, signer, cfg.SignedURLTTL)
	publicShareHandler := share.NewPublicHandler(gate, securityService)

	storageHandler := storage.NewHandler(store, signer)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	publicShareHandler.RegisterRoutes(r)
	storage.RegisterRoutes(r, storageHandler)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		deviceHandler.RegisterPublicRoutes(v1)
		securityHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			fileHandler.RegisterRoutes(protected)
			shareHandler.RegisterRoutes(protected)
			deviceHandler.RegisterProtectedRoutes(protected)
			securityHandler.RegisterProtectedRoutes(protected)
		}
	}

	log.Printf("level=info component=api event=listening addr=%s env=%s", cfg.ListenAddr, cfg.AppEnv)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
