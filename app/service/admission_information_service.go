package service

import (
	"net/http"
	"time"

	"school-cms-backend/app/model"
	"school-cms-backend/app/repository"
	"school-cms-backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// AdmissionInformationService mengelola informasi pendaftaran siswa baru.
type AdmissionInformationService interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type admissionInformationService struct {
	content repository.ContentRepository
	admins  repository.AdminRepository
}

func NewAdmissionInformationService(content repository.ContentRepository, admins repository.AdminRepository) AdmissionInformationService {
	return &admissionInformationService{content: content, admins: admins}
}

func (s *admissionInformationService) Create(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	var input struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.Respond(ctx, http.StatusBadRequest, "Input tidak valid: "+err.Error(), nil)
		return
	}

	info := model.AdmissionInformation{
		EntityMeta: model.EntityMeta{
			ID:        utils.GenerateEntityID("admission-information"),
			CreatedBy: adminID,
			CreatedAt: time.Now(),
		},
		Title:       input.Title,
		Description: input.Description,
	}

	err := s.content.Insert(ctx.Request.Context(), repository.CollAdmissionInformation, &info,
		func() { info.ID = utils.GenerateEntityID("admission-information") })
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menyimpan informasi pendaftaran", nil)
		return
	}

	var saved model.AdmissionInformation
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollAdmissionInformation, info.ID, &saved); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca informasi tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Informasi pendaftaran berhasil dibuat", saved)
}

func (s *admissionInformationService) GetAll(ctx *gin.Context) {
	var infos []model.AdmissionInformation
	if err := s.content.FindAll(ctx.Request.Context(), repository.CollAdmissionInformation, hiddenListFields, &infos); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil informasi pendaftaran", nil)
		return
	}
	if len(infos) == 0 {
		utils.Respond(ctx, http.StatusNotFound, "Belum ada informasi pendaftaran", []model.AdmissionInformation{})
		return
	}
	utils.Respond(ctx, http.StatusOK, listMessage(len(infos)), infos)
}

func (s *admissionInformationService) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	var info model.AdmissionInformation
	err := s.content.FindByID(ctx.Request.Context(), repository.CollAdmissionInformation, id, &info)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Informasi pendaftaran tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil informasi pendaftaran", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Berhasil mengambil informasi pendaftaran", info)
}

func (s *admissionInformationService) Update(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	id := ctx.Param("id")

	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.Respond(ctx, http.StatusBadRequest, "Input tidak valid: "+err.Error(), nil)
		return
	}

	var existing model.AdmissionInformation
	err := s.content.FindByID(ctx.Request.Context(), repository.CollAdmissionInformation, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Informasi pendaftaran tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil informasi pendaftaran", nil)
		return
	}

	fields := bson.M{}
	setIfNotEmpty(fields, "title", input.Title)
	setIfNotEmpty(fields, "description", input.Description)
	withModifier(fields, adminID)

	matched, err := s.content.UpdateByID(ctx.Request.Context(), repository.CollAdmissionInformation, id, fields)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal memperbarui informasi pendaftaran", nil)
		return
	}
	if matched == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Informasi pendaftaran gagal diperbarui", nil)
		return
	}

	var updated model.AdmissionInformation
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollAdmissionInformation, id, &updated); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca informasi tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Informasi pendaftaran berhasil diperbarui", updated)
}

func (s *admissionInformationService) Delete(ctx *gin.Context) {
	if _, ok := ensureRequesterValid(ctx, s.admins); !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.AdmissionInformation
	err := s.content.FindByID(ctx.Request.Context(), repository.CollAdmissionInformation, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Informasi pendaftaran tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil informasi pendaftaran", nil)
		return
	}

	deleted, err := s.content.DeleteByID(ctx.Request.Context(), repository.CollAdmissionInformation, id)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menghapus informasi pendaftaran", nil)
		return
	}
	if deleted == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Informasi pendaftaran gagal dihapus", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Informasi pendaftaran berhasil dihapus", nil)
}
