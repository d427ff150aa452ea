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

// LevelService mengelola jenjang/tingkatan.
type LevelService interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type levelService struct {
	content repository.ContentRepository
	admins  repository.AdminRepository
}

func NewLevelService(content repository.ContentRepository, admins repository.AdminRepository) LevelService {
	return &levelService{content: content, admins: admins}
}

func (s *levelService) Create(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.Respond(ctx, http.StatusBadRequest, "Input tidak valid: "+err.Error(), nil)
		return
	}

	level := model.Level{
		EntityMeta: model.EntityMeta{
			ID:        utils.GenerateEntityID("level"),
			CreatedBy: adminID,
			CreatedAt: time.Now(),
		},
		Name: input.Name,
	}

	err := s.content.Insert(ctx.Request.Context(), repository.CollLevels, &level,
		func() { level.ID = utils.GenerateEntityID("level") })
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menyimpan jenjang", nil)
		return
	}

	var saved model.Level
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollLevels, level.ID, &saved); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca jenjang tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Jenjang berhasil dibuat", saved)
}

func (s *levelService) GetAll(ctx *gin.Context) {
	var levels []model.Level
	if err := s.content.FindAll(ctx.Request.Context(), repository.CollLevels, hiddenListFields, &levels); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil jenjang", nil)
		return
	}
	if len(levels) == 0 {
		utils.Respond(ctx, http.StatusNotFound, "Belum ada jenjang", []model.Level{})
		return
	}
	utils.Respond(ctx, http.StatusOK, listMessage(len(levels)), levels)
}

func (s *levelService) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	var level model.Level
	err := s.content.FindByID(ctx.Request.Context(), repository.CollLevels, id, &level)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Jenjang tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil jenjang", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Berhasil mengambil jenjang", level)
}

func (s *levelService) Update(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	id := ctx.Param("id")

	var input struct {
		Name string `json:"name"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.Respond(ctx, http.StatusBadRequest, "Input tidak valid: "+err.Error(), nil)
		return
	}

	var existing model.Level
	err := s.content.FindByID(ctx.Request.Context(), repository.CollLevels, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Jenjang tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil jenjang", nil)
		return
	}

	fields := bson.M{}
	setIfNotEmpty(fields, "name", input.Name)
	withModifier(fields, adminID)

	matched, err := s.content.UpdateByID(ctx.Request.Context(), repository.CollLevels, id, fields)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal memperbarui jenjang", nil)
		return
	}
	if matched == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Jenjang gagal diperbarui", nil)
		return
	}

	var updated model.Level
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollLevels, id, &updated); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca jenjang tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Jenjang berhasil diperbarui", updated)
}

func (s *levelService) Delete(ctx *gin.Context) {
	if _, ok := ensureRequesterValid(ctx, s.admins); !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.Level
	err := s.content.FindByID(ctx.Request.Context(), repository.CollLevels, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Jenjang tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil jenjang", nil)
		return
	}

	deleted, err := s.content.DeleteByID(ctx.Request.Context(), repository.CollLevels, id)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menghapus jenjang", nil)
		return
	}
	if deleted == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Jenjang gagal dihapus", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Jenjang berhasil dihapus", nil)
}
