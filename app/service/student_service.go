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

// StudentService mengelola data siswa (pola sama dengan AnnouncementService).
type StudentService interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type studentService struct {
	content repository.ContentRepository
	admins  repository.AdminRepository
}

func NewStudentService(content repository.ContentRepository, admins repository.AdminRepository) StudentService {
	return &studentService{content: content, admins: admins}
}

func (s *studentService) Create(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	var input struct {
		Name      string `json:"name" binding:"required"`
		ClassName string `json:"className"`
		Session   string `json:"session"`
		Guardian  string `json:"guardian"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.Respond(ctx, http.StatusBadRequest, "Input tidak valid: "+err.Error(), nil)
		return
	}

	student := model.Student{
		EntityMeta: model.EntityMeta{
			ID:        utils.GenerateEntityID("student"),
			CreatedBy: adminID,
			CreatedAt: time.Now(),
		},
		Name:      input.Name,
		ClassName: input.ClassName,
		Session:   input.Session,
		Guardian:  input.Guardian,
	}

	err := s.content.Insert(ctx.Request.Context(), repository.CollStudents, &student,
		func() { student.ID = utils.GenerateEntityID("student") })
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menyimpan data siswa", nil)
		return
	}

	var saved model.Student
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollStudents, student.ID, &saved); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca data siswa tersimpan", nil)
		return
	}

	utils.Respond(ctx, http.StatusOK, "Data siswa berhasil dibuat", saved)
}

func (s *studentService) GetAll(ctx *gin.Context) {
	var students []model.Student
	if err := s.content.FindAll(ctx.Request.Context(), repository.CollStudents, hiddenListFields, &students); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil data siswa", nil)
		return
	}
	if len(students) == 0 {
		utils.Respond(ctx, http.StatusNotFound, "Belum ada data siswa", []model.Student{})
		return
	}
	utils.Respond(ctx, http.StatusOK, listMessage(len(students)), students)
}

func (s *studentService) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	var student model.Student
	err := s.content.FindByID(ctx.Request.Context(), repository.CollStudents, id, &student)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Data siswa tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil data siswa", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Berhasil mengambil data siswa", student)
}

func (s *studentService) Update(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	id := ctx.Param("id")

	var input struct {
		Name      string `json:"name"`
		ClassName string `json:"className"`
		Session   string `json:"session"`
		Guardian  string `json:"guardian"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.Respond(ctx, http.StatusBadRequest, "Input tidak valid: "+err.Error(), nil)
		return
	}

	var existing model.Student
	err := s.content.FindByID(ctx.Request.Context(), repository.CollStudents, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Data siswa tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil data siswa", nil)
		return
	}

	fields := bson.M{}
	setIfNotEmpty(fields, "name", input.Name)
	setIfNotEmpty(fields, "className", input.ClassName)
	setIfNotEmpty(fields, "session", input.Session)
	setIfNotEmpty(fields, "guardian", input.Guardian)
	withModifier(fields, adminID)

	matched, err := s.content.UpdateByID(ctx.Request.Context(), repository.CollStudents, id, fields)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal memperbarui data siswa", nil)
		return
	}
	if matched == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Data siswa gagal diperbarui", nil)
		return
	}

	var updated model.Student
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollStudents, id, &updated); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca data siswa tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Data siswa berhasil diperbarui", updated)
}

func (s *studentService) Delete(ctx *gin.Context) {
	if _, ok := ensureRequesterValid(ctx, s.admins); !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.Student
	err := s.content.FindByID(ctx.Request.Context(), repository.CollStudents, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Data siswa tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil data siswa", nil)
		return
	}

	deleted, err := s.content.DeleteByID(ctx.Request.Context(), repository.CollStudents, id)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menghapus data siswa", nil)
		return
	}
	if deleted == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Data siswa gagal dihapus", nil)
		return
	}

	utils.Respond(ctx, http.StatusOK, "Data siswa berhasil dihapus", nil)
}
