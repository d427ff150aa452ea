package main

import (
	"log"
	"os"

	"school-cms-backend/app/repository"
	"school-cms-backend/app/service"
	"school-cms-backend/app/storage"
	"school-cms-backend/database"
	"school-cms-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// =================================================================
	// LOAD ENV
	// =================================================================
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env tidak ditemukan, menggunakan environment default")
	}

	// =================================================================
	// INIT DB (POSTGRES + MONGODB)
	// =================================================================
	dbConn, err := database.InitDB()
	if err != nil {
		log.Fatalf("❌ Gagal koneksi database: %v", err)
	}

	// =================================================================
	// SEED DATA (ADMIN AWAL)
	// =================================================================
	database.RunSeeders(dbConn.Postgres)

	// =================================================================
	// OBJECT STORAGE (OSS)
	// =================================================================
	fileStorage, err := storage.NewOSSStorageFromEnv()
	if err != nil {
		log.Fatalf("❌ Gagal inisialisasi object storage: %v", err)
	}

	// =================================================================
	// REPOSITORIES
	// =================================================================
	adminRepo := repository.NewAdminRepository(dbConn.Postgres)
	contentRepo := repository.NewContentRepository(dbConn.Mongo)

	// =================================================================
	// SERVICES
	// =================================================================
	authService := service.NewAuthService(adminRepo)
	dashboardService := service.NewDashboardService(contentRepo, adminRepo)

	contentServices := routes.ContentServices{
		Administrations:      service.NewAdministrationService(contentRepo, adminRepo, fileStorage),
		Announcements:        service.NewAnnouncementService(contentRepo, adminRepo),
		Students:             service.NewStudentService(contentRepo, adminRepo),
		Classes:              service.NewClassService(contentRepo, adminRepo),
		Levels:               service.NewLevelService(contentRepo, adminRepo),
		Blogs:                service.NewBlogService(contentRepo, adminRepo, fileStorage),
		Downloads:            service.NewDownloadService(contentRepo, adminRepo, fileStorage),
		AdmissionForms:       service.NewAdmissionFormService(contentRepo, adminRepo, fileStorage),
		AdmissionInformation: service.NewAdmissionInformationService(contentRepo, adminRepo),
		HomePageCarousels:    service.NewHomePageCarouselService(contentRepo, adminRepo, fileStorage),
		HomePageGalleries:    service.NewHomePageGalleryService(contentRepo, adminRepo, fileStorage),
		HomePagePosts:        service.NewHomePagePostService(contentRepo, adminRepo),
		OthersInformation:    service.NewOthersInformationService(contentRepo, adminRepo),
	}

	// =================================================================
	// ROUTER
	// =================================================================
	r := gin.Default()

	routes.AuthRoutes(r, authService)
	routes.DashboardRoutes(r, dashboardService)
	routes.ContentRoutes(r, contentServices)

	// Root endpoint (optional)
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "School CMS API RUNNING",
			"version": "1.0.0",
		})
	})

	// =================================================================
	// START SERVER
	// =================================================================
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Server running at http://localhost:" + port)

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Gagal menjalankan server: %v", err)
	}
}
