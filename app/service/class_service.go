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

// ClassService mengelola kelas/rombongan belajar.
type ClassService interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type classService struct {
	content repository.ContentRepository
	admins  repository.AdminRepository
}

func NewClassService(content repository.ContentRepository, admins repository.AdminRepository) ClassService {
	return &classService{content: content, admins: admins}
}

func (s *classService) Create(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.Respond(ctx, http.StatusBadRequest, "Input tidak valid: "+err.Error(), nil)
		return
	}

	class := model.Class{
		EntityMeta: model.EntityMeta{
			ID:        utils.GenerateEntityID("class"),
			CreatedBy: adminID,
			CreatedAt: time.Now(),
		},
		Name:        input.Name,
		Description: input.Description,
	}

	err := s.content.Insert(ctx.Request.Context(), repository.CollClasses, &class,
		func() { class.ID = utils.GenerateEntityID("class") })
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menyimpan kelas", nil)
		return
	}

	var saved model.Class
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollClasses, class.ID, &saved); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca kelas tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Kelas berhasil dibuat", saved)
}

func (s *classService) GetAll(ctx *gin.Context) {
	var classes []model.Class
	if err := s.content.FindAll(ctx.Request.Context(), repository.CollClasses, hiddenListFields, &classes); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil kelas", nil)
		return
	}
	if len(classes) == 0 {
		utils.Respond(ctx, http.StatusNotFound, "Belum ada kelas", []model.Class{})
		return
	}
	utils.Respond(ctx, http.StatusOK, listMessage(len(classes)), classes)
}

func (s *classService) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	var class model.Class
	err := s.content.FindByID(ctx.Request.Context(), repository.CollClasses, id, &class)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Kelas tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil kelas", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Berhasil mengambil kelas", class)
}

func (s *classService) Update(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	id := ctx.Param("id")

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.Respond(ctx, http.StatusBadRequest, "Input tidak valid: "+err.Error(), nil)
		return
	}

	var existing model.Class
	err := s.content.FindByID(ctx.Request.Context(), repository.CollClasses, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Kelas tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil kelas", nil)
		return
	}

	fields := bson.M{}
	setIfNotEmpty(fields, "name", input.Name)
	setIfNotEmpty(fields, "description", input.Description)
	withModifier(fields, adminID)

	matched, err := s.content.UpdateByID(ctx.Request.Context(), repository.CollClasses, id, fields)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal memperbarui kelas", nil)
		return
	}
	if matched == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Kelas gagal diperbarui", nil)
		return
	}

	var updated model.Class
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollClasses, id, &updated); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca kelas tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Kelas berhasil diperbarui", updated)
}

func (s *classService) Delete(ctx *gin.Context) {
	if _, ok := ensureRequesterValid(ctx, s.admins); !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.Class
	err := s.content.FindByID(ctx.Request.Context(), repository.CollClasses, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Kelas tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil kelas", nil)
		return
	}

	deleted, err := s.content.DeleteByID(ctx.Request.Context(), repository.CollClasses, id)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menghapus kelas", nil)
		return
	}
	if deleted == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Kelas gagal dihapus", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Kelas berhasil dihapus", nil)
}
