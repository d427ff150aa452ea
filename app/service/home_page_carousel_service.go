package service

import (
	"log"
	"net/http"
	"time"

	"school-cms-backend/app/model"
	"school-cms-backend/app/repository"
	"school-cms-backend/app/storage"
	"school-cms-backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// HomePageCarouselService mengelola slide carousel halaman depan (form key: "image").
type HomePageCarouselService interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type homePageCarouselService struct {
	content repository.ContentRepository
	admins  repository.AdminRepository
	files   storage.FileStorage
}

func NewHomePageCarouselService(content repository.ContentRepository, admins repository.AdminRepository, files storage.FileStorage) HomePageCarouselService {
	return &homePageCarouselService{content: content, admins: admins, files: files}
}

func (s *homePageCarouselService) Create(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	title := ctx.PostForm("title")
	if title == "" {
		utils.Respond(ctx, http.StatusBadRequest, "Field title wajib diisi", nil)
		return
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		utils.Respond(ctx, http.StatusBadRequest, "File image wajib dilampirkan", nil)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Gagal membaca file upload", nil)
		return
	}
	defer src.Close()

	stored, err := s.files.Upload(ctx.Request.Context(), fileHeader.Filename, src)
	if err != nil {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Upload file gagal", nil)
		return
	}

	carousel := model.HomePageCarousel{
		EntityMeta: model.EntityMeta{
			ID:        utils.GenerateEntityID("home-page-carousel"),
			CreatedBy: adminID,
			CreatedAt: time.Now(),
		},
		FileMeta: model.FileMeta{
			FileID:        stored.FileID,
			ShareableLink: stored.ShareableLink,
		},
		Title: title,
	}

	err = s.content.Insert(ctx.Request.Context(), repository.CollHomePageCarousels, &carousel,
		func() { carousel.ID = utils.GenerateEntityID("home-page-carousel") })
	if err != nil {
		if delErr := s.files.Delete(ctx.Request.Context(), stored.FileID); delErr != nil {
			log.Printf("[CAROUSEL] gagal menghapus file kompensasi %s: %v", stored.FileID, delErr)
		}
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menyimpan slide carousel", nil)
		return
	}

	var saved model.HomePageCarousel
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollHomePageCarousels, carousel.ID, &saved); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca slide tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Slide carousel berhasil dibuat", saved)
}

func (s *homePageCarouselService) GetAll(ctx *gin.Context) {
	var carousels []model.HomePageCarousel
	if err := s.content.FindAll(ctx.Request.Context(), repository.CollHomePageCarousels, hiddenListFields, &carousels); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil slide carousel", nil)
		return
	}
	if len(carousels) == 0 {
		utils.Respond(ctx, http.StatusNotFound, "Belum ada slide carousel", []model.HomePageCarousel{})
		return
	}
	utils.Respond(ctx, http.StatusOK, listMessage(len(carousels)), carousels)
}

func (s *homePageCarouselService) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	var carousel model.HomePageCarousel
	err := s.content.FindByID(ctx.Request.Context(), repository.CollHomePageCarousels, id, &carousel)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Slide carousel tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil slide carousel", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Berhasil mengambil slide carousel", carousel)
}

func (s *homePageCarouselService) Update(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.HomePageCarousel
	err := s.content.FindByID(ctx.Request.Context(), repository.CollHomePageCarousels, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Slide carousel tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil slide carousel", nil)
		return
	}

	fields := bson.M{}
	setIfNotEmpty(fields, "title", ctx.PostForm("title"))
	withModifier(fields, adminID)

	var newFile *storage.StoredFile
	if fileHeader, err := ctx.FormFile("image"); err == nil {
		src, err := fileHeader.Open()
		if err != nil {
			utils.Respond(ctx, http.StatusUnprocessableEntity, "Gagal membaca file upload", nil)
			return
		}
		defer src.Close()

		newFile, err = s.files.Upload(ctx.Request.Context(), fileHeader.Filename, src)
		if err != nil {
			utils.Respond(ctx, http.StatusUnprocessableEntity, "Upload file gagal", nil)
			return
		}
		fields["fileId"] = newFile.FileID
		fields["shareableLink"] = newFile.ShareableLink
	}

	matched, err := s.content.UpdateByID(ctx.Request.Context(), repository.CollHomePageCarousels, id, fields)
	if err != nil || matched == 0 {
		if newFile != nil {
			if delErr := s.files.Delete(ctx.Request.Context(), newFile.FileID); delErr != nil {
				log.Printf("[CAROUSEL] gagal menghapus file kompensasi %s: %v", newFile.FileID, delErr)
			}
		}
		if err != nil {
			utils.Respond(ctx, http.StatusInternalServerError, "Gagal memperbarui slide carousel", nil)
			return
		}
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Slide carousel gagal diperbarui", nil)
		return
	}

	if newFile != nil && existing.FileID != "" {
		if delErr := s.files.Delete(ctx.Request.Context(), existing.FileID); delErr != nil {
			log.Printf("[CAROUSEL] gagal menghapus file lama %s: %v", existing.FileID, delErr)
		}
	}

	var updated model.HomePageCarousel
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollHomePageCarousels, id, &updated); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca slide tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Slide carousel berhasil diperbarui", updated)
}

func (s *homePageCarouselService) Delete(ctx *gin.Context) {
	if _, ok := ensureRequesterValid(ctx, s.admins); !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.HomePageCarousel
	err := s.content.FindByID(ctx.Request.Context(), repository.CollHomePageCarousels, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Slide carousel tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil slide carousel", nil)
		return
	}

	deleted, err := s.content.DeleteByID(ctx.Request.Context(), repository.CollHomePageCarousels, id)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menghapus slide carousel", nil)
		return
	}
	if deleted == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Slide carousel gagal dihapus", nil)
		return
	}

	if existing.FileID != "" {
		if delErr := s.files.Delete(ctx.Request.Context(), existing.FileID); delErr != nil {
			log.Printf("[CAROUSEL] gagal menghapus file %s: %v", existing.FileID, delErr)
		}
	}

	utils.Respond(ctx, http.StatusOK, "Slide carousel berhasil dihapus", nil)
}
