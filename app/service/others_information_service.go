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

// OthersInformationService mengelola informasi lain-lain.
type OthersInformationService interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type othersInformationService struct {
	content repository.ContentRepository
	admins  repository.AdminRepository
}

func NewOthersInformationService(content repository.ContentRepository, admins repository.AdminRepository) OthersInformationService {
	return &othersInformationService{content: content, admins: admins}
}

func (s *othersInformationService) Create(ctx *gin.Context) {
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

	info := model.OthersInformation{
		EntityMeta: model.EntityMeta{
			ID:        utils.GenerateEntityID("others-information"),
			CreatedBy: adminID,
			CreatedAt: time.Now(),
		},
		Title:       input.Title,
		Description: input.Description,
	}

	err := s.content.Insert(ctx.Request.Context(), repository.CollOthersInformation, &info,
		func() { info.ID = utils.GenerateEntityID("others-information") })
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menyimpan informasi", nil)
		return
	}

	var saved model.OthersInformation
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollOthersInformation, info.ID, &saved); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca informasi tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Informasi berhasil dibuat", saved)
}

func (s *othersInformationService) GetAll(ctx *gin.Context) {
	var infos []model.OthersInformation
	if err := s.content.FindAll(ctx.Request.Context(), repository.CollOthersInformation, hiddenListFields, &infos); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil informasi", nil)
		return
	}
	if len(infos) == 0 {
		utils.Respond(ctx, http.StatusNotFound, "Belum ada informasi", []model.OthersInformation{})
		return
	}
	utils.Respond(ctx, http.StatusOK, listMessage(len(infos)), infos)
}

func (s *othersInformationService) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	var info model.OthersInformation
	err := s.content.FindByID(ctx.Request.Context(), repository.CollOthersInformation, id, &info)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Informasi tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil informasi", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Berhasil mengambil informasi", info)
}

func (s *othersInformationService) Update(ctx *gin.Context) {
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

	var existing model.OthersInformation
	err := s.content.FindByID(ctx.Request.Context(), repository.CollOthersInformation, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Informasi tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil informasi", nil)
		return
	}

	fields := bson.M{}
	setIfNotEmpty(fields, "title", input.Title)
	setIfNotEmpty(fields, "description", input.Description)
	withModifier(fields, adminID)

	matched, err := s.content.UpdateByID(ctx.Request.Context(), repository.CollOthersInformation, id, fields)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal memperbarui informasi", nil)
		return
	}
	if matched == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Informasi gagal diperbarui", nil)
		return
	}

	var updated model.OthersInformation
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollOthersInformation, id, &updated); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca informasi tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Informasi berhasil diperbarui", updated)
}

func (s *othersInformationService) Delete(ctx *gin.Context) {
	if _, ok := ensureRequesterValid(ctx, s.admins); !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.OthersInformation
	err := s.content.FindByID(ctx.Request.Context(), repository.CollOthersInformation, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Informasi tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil informasi", nil)
		return
	}

	deleted, err := s.content.DeleteByID(ctx.Request.Context(), repository.CollOthersInformation, id)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menghapus informasi", nil)
		return
	}
	if deleted == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Informasi gagal dihapus", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Informasi berhasil dihapus", nil)
}
