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

// HomePageGalleryService mengelola foto galeri halaman depan (form key: "image").
type HomePageGalleryService interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type homePageGalleryService struct {
	content repository.ContentRepository
	admins  repository.AdminRepository
	files   storage.FileStorage
}

func NewHomePageGalleryService(content repository.ContentRepository, admins repository.AdminRepository, files storage.FileStorage) HomePageGalleryService {
	return &homePageGalleryService{content: content, admins: admins, files: files}
}

func (s *homePageGalleryService) Create(ctx *gin.Context) {
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

	gallery := model.HomePageGallery{
		EntityMeta: model.EntityMeta{
			ID:        utils.GenerateEntityID("home-page-gallery"),
			CreatedBy: adminID,
			CreatedAt: time.Now(),
		},
		FileMeta: model.FileMeta{
			FileID:        stored.FileID,
			ShareableLink: stored.ShareableLink,
		},
		Title: title,
	}

	err = s.content.Insert(ctx.Request.Context(), repository.CollHomePageGalleries, &gallery,
		func() { gallery.ID = utils.GenerateEntityID("home-page-gallery") })
	if err != nil {
		if delErr := s.files.Delete(ctx.Request.Context(), stored.FileID); delErr != nil {
			log.Printf("[GALLERY] gagal menghapus file kompensasi %s: %v", stored.FileID, delErr)
		}
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menyimpan foto galeri", nil)
		return
	}

	var saved model.HomePageGallery
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollHomePageGalleries, gallery.ID, &saved); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca foto tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Foto galeri berhasil dibuat", saved)
}

func (s *homePageGalleryService) GetAll(ctx *gin.Context) {
	var galleries []model.HomePageGallery
	if err := s.content.FindAll(ctx.Request.Context(), repository.CollHomePageGalleries, hiddenListFields, &galleries); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil foto galeri", nil)
		return
	}
	if len(galleries) == 0 {
		utils.Respond(ctx, http.StatusNotFound, "Belum ada foto galeri", []model.HomePageGallery{})
		return
	}
	utils.Respond(ctx, http.StatusOK, listMessage(len(galleries)), galleries)
}

func (s *homePageGalleryService) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	var gallery model.HomePageGallery
	err := s.content.FindByID(ctx.Request.Context(), repository.CollHomePageGalleries, id, &gallery)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Foto galeri tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil foto galeri", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Berhasil mengambil foto galeri", gallery)
}

func (s *homePageGalleryService) Update(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.HomePageGallery
	err := s.content.FindByID(ctx.Request.Context(), repository.CollHomePageGalleries, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Foto galeri tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil foto galeri", nil)
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

	matched, err := s.content.UpdateByID(ctx.Request.Context(), repository.CollHomePageGalleries, id, fields)
	if err != nil || matched == 0 {
		if newFile != nil {
			if delErr := s.files.Delete(ctx.Request.Context(), newFile.FileID); delErr != nil {
				log.Printf("[GALLERY] gagal menghapus file kompensasi %s: %v", newFile.FileID, delErr)
			}
		}
		if err != nil {
			utils.Respond(ctx, http.StatusInternalServerError, "Gagal memperbarui foto galeri", nil)
			return
		}
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Foto galeri gagal diperbarui", nil)
		return
	}

	if newFile != nil && existing.FileID != "" {
		if delErr := s.files.Delete(ctx.Request.Context(), existing.FileID); delErr != nil {
			log.Printf("[GALLERY] gagal menghapus file lama %s: %v", existing.FileID, delErr)
		}
	}

	var updated model.HomePageGallery
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollHomePageGalleries, id, &updated); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca foto tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Foto galeri berhasil diperbarui", updated)
}

func (s *homePageGalleryService) Delete(ctx *gin.Context) {
	if _, ok := ensureRequesterValid(ctx, s.admins); !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.HomePageGallery
	err := s.content.FindByID(ctx.Request.Context(), repository.CollHomePageGalleries, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Foto galeri tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil foto galeri", nil)
		return
	}

	deleted, err := s.content.DeleteByID(ctx.Request.Context(), repository.CollHomePageGalleries, id)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menghapus foto galeri", nil)
		return
	}
	if deleted == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Foto galeri gagal dihapus", nil)
		return
	}

	if existing.FileID != "" {
		if delErr := s.files.Delete(ctx.Request.Context(), existing.FileID); delErr != nil {
			log.Printf("[GALLERY] gagal menghapus file %s: %v", existing.FileID, delErr)
		}
	}

	utils.Respond(ctx, http.StatusOK, "Foto galeri berhasil dihapus", nil)
}
