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

// AdministrationService mengelola profil staf/pengurus (ber-foto).
// Alur file sama dengan BlogService: upload dulu, database belakangan.
type AdministrationService interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type administrationService struct {
	content repository.ContentRepository
	admins  repository.AdminRepository
	files   storage.FileStorage
}

func NewAdministrationService(content repository.ContentRepository, admins repository.AdminRepository, files storage.FileStorage) AdministrationService {
	return &administrationService{content: content, admins: admins, files: files}
}

func (s *administrationService) Create(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	name := ctx.PostForm("name")
	if name == "" {
		utils.Respond(ctx, http.StatusBadRequest, "Field name wajib diisi", nil)
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

	administration := model.Administration{
		EntityMeta: model.EntityMeta{
			ID:        utils.GenerateEntityID("administration"),
			CreatedBy: adminID,
			CreatedAt: time.Now(),
		},
		FileMeta: model.FileMeta{
			FileID:        stored.FileID,
			ShareableLink: stored.ShareableLink,
		},
		Name:        name,
		Position:    ctx.PostForm("position"),
		Category:    ctx.PostForm("category"),
		Description: ctx.PostForm("description"),
	}

	err = s.content.Insert(ctx.Request.Context(), repository.CollAdministrations, &administration,
		func() { administration.ID = utils.GenerateEntityID("administration") })
	if err != nil {
		if delErr := s.files.Delete(ctx.Request.Context(), stored.FileID); delErr != nil {
			log.Printf("[ADMINISTRATION] gagal menghapus file kompensasi %s: %v", stored.FileID, delErr)
		}
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menyimpan data staf", nil)
		return
	}

	var saved model.Administration
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollAdministrations, administration.ID, &saved); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca data staf tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Data staf berhasil dibuat", saved)
}

func (s *administrationService) GetAll(ctx *gin.Context) {
	var administrations []model.Administration
	if err := s.content.FindAll(ctx.Request.Context(), repository.CollAdministrations, hiddenListFields, &administrations); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil data staf", nil)
		return
	}
	if len(administrations) == 0 {
		utils.Respond(ctx, http.StatusNotFound, "Belum ada data staf", []model.Administration{})
		return
	}
	utils.Respond(ctx, http.StatusOK, listMessage(len(administrations)), administrations)
}

func (s *administrationService) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	var administration model.Administration
	err := s.content.FindByID(ctx.Request.Context(), repository.CollAdministrations, id, &administration)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Data staf tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil data staf", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Berhasil mengambil data staf", administration)
}

func (s *administrationService) Update(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.Administration
	err := s.content.FindByID(ctx.Request.Context(), repository.CollAdministrations, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Data staf tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil data staf", nil)
		return
	}

	fields := bson.M{}
	setIfNotEmpty(fields, "name", ctx.PostForm("name"))
	setIfNotEmpty(fields, "position", ctx.PostForm("position"))
	setIfNotEmpty(fields, "category", ctx.PostForm("category"))
	setIfNotEmpty(fields, "description", ctx.PostForm("description"))
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

	matched, err := s.content.UpdateByID(ctx.Request.Context(), repository.CollAdministrations, id, fields)
	if err != nil || matched == 0 {
		if newFile != nil {
			if delErr := s.files.Delete(ctx.Request.Context(), newFile.FileID); delErr != nil {
				log.Printf("[ADMINISTRATION] gagal menghapus file kompensasi %s: %v", newFile.FileID, delErr)
			}
		}
		if err != nil {
			utils.Respond(ctx, http.StatusInternalServerError, "Gagal memperbarui data staf", nil)
			return
		}
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Data staf gagal diperbarui", nil)
		return
	}

	if newFile != nil && existing.FileID != "" {
		if delErr := s.files.Delete(ctx.Request.Context(), existing.FileID); delErr != nil {
			log.Printf("[ADMINISTRATION] gagal menghapus file lama %s: %v", existing.FileID, delErr)
		}
	}

	var updated model.Administration
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollAdministrations, id, &updated); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca data staf tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Data staf berhasil diperbarui", updated)
}

func (s *administrationService) Delete(ctx *gin.Context) {
	if _, ok := ensureRequesterValid(ctx, s.admins); !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.Administration
	err := s.content.FindByID(ctx.Request.Context(), repository.CollAdministrations, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Data staf tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil data staf", nil)
		return
	}

	deleted, err := s.content.DeleteByID(ctx.Request.Context(), repository.CollAdministrations, id)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menghapus data staf", nil)
		return
	}
	if deleted == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Data staf gagal dihapus", nil)
		return
	}

	if existing.FileID != "" {
		if delErr := s.files.Delete(ctx.Request.Context(), existing.FileID); delErr != nil {
			log.Printf("[ADMINISTRATION] gagal menghapus file %s: %v", existing.FileID, delErr)
		}
	}

	utils.Respond(ctx, http.StatusOK, "Data staf berhasil dihapus", nil)
}
