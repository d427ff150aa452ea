package routes

import (
	"school-cms-backend/app/service"
	"school-cms-backend/middleware"

	"github.com/gin-gonic/gin"
)

// crudService adalah bentuk umum semua service konten: lima operasi CRUD
// dengan GET publik dan mutasi di belakang AuthMiddleware.
type crudService interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

// mountCRUD mendaftarkan rute standar untuk satu entitas konten.
// GET dibuka untuk publik (konsumsi situs sekolah), mutasi wajib JWT.
func mountCRUD(r *gin.Engine, path string, s crudService) {
	group := r.Group("/api/v1/" + path)
	{
		group.GET("/", s.GetAll)
		group.GET("/:id", s.GetByID)

		protected := group.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/", s.Create)
			protected.PUT("/:id", s.Update)
			protected.DELETE("/:id", s.Delete)
		}
	}
}

// ContentServices mengumpulkan seluruh service konten agar pendaftaran rute
// di main.go tetap satu pemanggilan.
type ContentServices struct {
	Administrations      service.AdministrationService
	Announcements        service.AnnouncementService
	Students             service.StudentService
	Classes              service.ClassService
	Levels               service.LevelService
	Blogs                service.BlogService
	Downloads            service.DownloadService
	AdmissionForms       service.AdmissionFormService
	AdmissionInformation service.AdmissionInformationService
	HomePageCarousels    service.HomePageCarouselService
	HomePageGalleries    service.HomePageGalleryService
	HomePagePosts        service.HomePagePostService
	OthersInformation    service.OthersInformationService
}

func ContentRoutes(r *gin.Engine, s ContentServices) {
	mountCRUD(r, "administrations", s.Administrations)
	mountCRUD(r, "announcements", s.Announcements)
	mountCRUD(r, "students", s.Students)
	mountCRUD(r, "classes", s.Classes)
	mountCRUD(r, "levels", s.Levels)
	mountCRUD(r, "blogs", s.Blogs)
	mountCRUD(r, "downloads", s.Downloads)
	mountCRUD(r, "admission-forms", s.AdmissionForms)
	mountCRUD(r, "admission-information", s.AdmissionInformation)
	mountCRUD(r, "home-page-carousels", s.HomePageCarousels)
	mountCRUD(r, "home-page-galleries", s.HomePageGalleries)
	mountCRUD(r, "home-page-posts", s.HomePagePosts)
	mountCRUD(r, "others-information", s.OthersInformation)
}
