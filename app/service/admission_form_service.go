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

// AdmissionFormService mengelola formulir pendaftaran (file pdf, form key: "file").
// Field biaya memakai nama "formFee" di create DAN update.
type AdmissionFormService interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type admissionFormService struct {
	content repository.ContentRepository
	admins  repository.AdminRepository
	files   storage.FileStorage
}

func NewAdmissionFormService(content repository.ContentRepository, admins repository.AdminRepository, files storage.FileStorage) AdmissionFormService {
	return &admissionFormService{content: content, admins: admins, files: files}
}

func (s *admissionFormService) Create(ctx *gin.Context) {
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
		utils.Respond(ctx, http.StatusBadRequest, "File formulir wajib dilampirkan", nil)
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

	form := model.AdmissionForm{
		EntityMeta: model.EntityMeta{
			ID:        utils.GenerateEntityID("admission-form"),
			CreatedBy: adminID,
			CreatedAt: time.Now(),
		},
		FileMeta: model.FileMeta{
			FileID:        stored.FileID,
			ShareableLink: stored.ShareableLink,
		},
		Title:   title,
		FormFee: ctx.PostForm("formFee"),
	}

	err = s.content.Insert(ctx.Request.Context(), repository.CollAdmissionForms, &form,
		func() { form.ID = utils.GenerateEntityID("admission-form") })
	if err != nil {
		if delErr := s.files.Delete(ctx.Request.Context(), stored.FileID); delErr != nil {
			log.Printf("[ADMISSION-FORM] gagal menghapus file kompensasi %s: %v", stored.FileID, delErr)
		}
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menyimpan formulir", nil)
		return
	}

	var saved model.AdmissionForm
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollAdmissionForms, form.ID, &saved); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca formulir tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Formulir berhasil dibuat", saved)
}

func (s *admissionFormService) GetAll(ctx *gin.Context) {
	var forms []model.AdmissionForm
	if err := s.content.FindAll(ctx.Request.Context(), repository.CollAdmissionForms, hiddenListFields, &forms); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil formulir", nil)
		return
	}
	if len(forms) == 0 {
		utils.Respond(ctx, http.StatusNotFound, "Belum ada formulir", []model.AdmissionForm{})
		return
	}
	utils.Respond(ctx, http.StatusOK, listMessage(len(forms)), forms)
}

func (s *admissionFormService) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	var form model.AdmissionForm
	err := s.content.FindByID(ctx.Request.Context(), repository.CollAdmissionForms, id, &form)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Formulir tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil formulir", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Berhasil mengambil formulir", form)
}

func (s *admissionFormService) Update(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.AdmissionForm
	err := s.content.FindByID(ctx.Request.Context(), repository.CollAdmissionForms, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Formulir tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil formulir", nil)
		return
	}

	fields := bson.M{}
	setIfNotEmpty(fields, "title", ctx.PostForm("title"))
	setIfNotEmpty(fields, "formFee", ctx.PostForm("formFee"))
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

	matched, err := s.content.UpdateByID(ctx.Request.Context(), repository.CollAdmissionForms, id, fields)
	if err != nil || matched == 0 {
		if newFile != nil {
			if delErr := s.files.Delete(ctx.Request.Context(), newFile.FileID); delErr != nil {
				log.Printf("[ADMISSION-FORM] gagal menghapus file kompensasi %s: %v", newFile.FileID, delErr)
			}
		}
		if err != nil {
			utils.Respond(ctx, http.StatusInternalServerError, "Gagal memperbarui formulir", nil)
			return
		}
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Formulir gagal diperbarui", nil)
		return
	}

	if newFile != nil && existing.FileID != "" {
		if delErr := s.files.Delete(ctx.Request.Context(), existing.FileID); delErr != nil {
			log.Printf("[ADMISSION-FORM] gagal menghapus file lama %s: %v", existing.FileID, delErr)
		}
	}

	var updated model.AdmissionForm
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollAdmissionForms, id, &updated); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca formulir tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Formulir berhasil diperbarui", updated)
}

func (s *admissionFormService) Delete(ctx *gin.Context) {
	if _, ok := ensureRequesterValid(ctx, s.admins); !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.AdmissionForm
	err := s.content.FindByID(ctx.Request.Context(), repository.CollAdmissionForms, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Formulir tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil formulir", nil)
		return
	}

	deleted, err := s.content.DeleteByID(ctx.Request.Context(), repository.CollAdmissionForms, id)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menghapus formulir", nil)
		return
	}
	if deleted == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Formulir gagal dihapus", nil)
		return
	}

	if existing.FileID != "" {
		if delErr := s.files.Delete(ctx.Request.Context(), existing.FileID); delErr != nil {
			log.Printf("[ADMISSION-FORM] gagal menghapus file %s: %v", existing.FileID, delErr)
		}
	}

	utils.Respond(ctx, http.StatusOK, "Formulir berhasil dihapus", nil)
}
