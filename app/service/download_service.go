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

// DownloadService mengelola berkas unduhan publik (form key: "file").
type DownloadService interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type downloadService struct {
	content repository.ContentRepository
	admins  repository.AdminRepository
	files   storage.FileStorage
}

func NewDownloadService(content repository.ContentRepository, admins repository.AdminRepository, files storage.FileStorage) DownloadService {
	return &downloadService{content: content, admins: admins, files: files}
}

func (s *downloadService) Create(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	title := ctx.PostForm("title")
	if title == "" {
		utils.Respond(ctx, http.StatusBadRequest, "Field title wajib diisi", nil)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		utils.Respond(ctx, http.StatusBadRequest, "File wajib dilampirkan", nil)
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

	download := model.Download{
		EntityMeta: model.EntityMeta{
			ID:        utils.GenerateEntityID("download"),
			CreatedBy: adminID,
			CreatedAt: time.Now(),
		},
		FileMeta: model.FileMeta{
			FileID:        stored.FileID,
			ShareableLink: stored.ShareableLink,
		},
		Title:       title,
		Description: ctx.PostForm("description"),
	}

	err = s.content.Insert(ctx.Request.Context(), repository.CollDownloads, &download,
		func() { download.ID = utils.GenerateEntityID("download") })
	if err != nil {
		if delErr := s.files.Delete(ctx.Request.Context(), stored.FileID); delErr != nil {
			log.Printf("[DOWNLOAD] gagal menghapus file kompensasi %s: %v", stored.FileID, delErr)
		}
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menyimpan berkas unduhan", nil)
		return
	}

	var saved model.Download
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollDownloads, download.ID, &saved); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca berkas tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Berkas unduhan berhasil dibuat", saved)
}

func (s *downloadService) GetAll(ctx *gin.Context) {
	var downloads []model.Download
	if err := s.content.FindAll(ctx.Request.Context(), repository.CollDownloads, hiddenListFields, &downloads); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil berkas unduhan", nil)
		return
	}
	if len(downloads) == 0 {
		utils.Respond(ctx, http.StatusNotFound, "Belum ada berkas unduhan", []model.Download{})
		return
	}
	utils.Respond(ctx, http.StatusOK, listMessage(len(downloads)), downloads)
}

func (s *downloadService) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	var download model.Download
	err := s.content.FindByID(ctx.Request.Context(), repository.CollDownloads, id, &download)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Berkas unduhan tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil berkas unduhan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Berhasil mengambil berkas unduhan", download)
}

func (s *downloadService) Update(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.Download
	err := s.content.FindByID(ctx.Request.Context(), repository.CollDownloads, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Berkas unduhan tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil berkas unduhan", nil)
		return
	}

	fields := bson.M{}
	setIfNotEmpty(fields, "title", ctx.PostForm("title"))
	setIfNotEmpty(fields, "description", ctx.PostForm("description"))
	withModifier(fields, adminID)

	var newFile *storage.StoredFile
	if fileHeader, err := ctx.FormFile("file"); err == nil {
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

	matched, err := s.content.UpdateByID(ctx.Request.Context(), repository.CollDownloads, id, fields)
	if err != nil || matched == 0 {
		if newFile != nil {
			if delErr := s.files.Delete(ctx.Request.Context(), newFile.FileID); delErr != nil {
				log.Printf("[DOWNLOAD] gagal menghapus file kompensasi %s: %v", newFile.FileID, delErr)
			}
		}
		if err != nil {
			utils.Respond(ctx, http.StatusInternalServerError, "Gagal memperbarui berkas unduhan", nil)
			return
		}
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Berkas unduhan gagal diperbarui", nil)
		return
	}

	if newFile != nil && existing.FileID != "" {
		if delErr := s.files.Delete(ctx.Request.Context(), existing.FileID); delErr != nil {
			log.Printf("[DOWNLOAD] gagal menghapus file lama %s: %v", existing.FileID, delErr)
		}
	}

	var updated model.Download
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollDownloads, id, &updated); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca berkas tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Berkas unduhan berhasil diperbarui", updated)
}

func (s *downloadService) Delete(ctx *gin.Context) {
	if _, ok := ensureRequesterValid(ctx, s.admins); !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.Download
	err := s.content.FindByID(ctx.Request.Context(), repository.CollDownloads, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Berkas unduhan tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil berkas unduhan", nil)
		return
	}

	deleted, err := s.content.DeleteByID(ctx.Request.Context(), repository.CollDownloads, id)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menghapus berkas unduhan", nil)
		return
	}
	if deleted == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Berkas unduhan gagal dihapus", nil)
		return
	}

	if existing.FileID != "" {
		if delErr := s.files.Delete(ctx.Request.Context(), existing.FileID); delErr != nil {
			log.Printf("[DOWNLOAD] gagal menghapus file %s: %v", existing.FileID, delErr)
		}
	}

	utils.Respond(ctx, http.StatusOK, "Berkas unduhan berhasil dihapus", nil)
}
