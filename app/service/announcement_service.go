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

// AnnouncementService mengelola pengumuman sekolah.
// Ini pola CRUD kanonik yang dipakai semua modul konten tanpa file:
// create → authorize, generate id, insert, re-fetch;
// update → authorize, cek ada, merge field terisi + metadata modifier;
// delete → authorize, cek ada, hapus.
type AnnouncementService interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type announcementService struct {
	content repository.ContentRepository
	admins  repository.AdminRepository
}

// NewAnnouncementService membuat service pengumuman.
func NewAnnouncementService(content repository.ContentRepository, admins repository.AdminRepository) AnnouncementService {
	return &announcementService{content: content, admins: admins}
}

// Create menangani POST /api/v1/announcement.
func (s *announcementService) Create(ctx *gin.Context) {
	// 1. Otorisasi: admin di token harus masih terdaftar.
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	// 2. Validasi input.
	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.Respond(ctx, http.StatusBadRequest, "Input tidak valid: "+err.Error(), nil)
		return
	}

	// 3. Bangun dokumen: id publik + metadata pembuat.
	announcement := model.Announcement{
		EntityMeta: model.EntityMeta{
			ID:        utils.GenerateEntityID("announcement"),
			CreatedBy: adminID,
			CreatedAt: time.Now(),
		},
		Name:        input.Name,
		Description: input.Description,
	}

	// 4. Insert (regen id kalau kebentur unique index).
	err := s.content.Insert(ctx.Request.Context(), repository.CollAnnouncements, &announcement,
		func() { announcement.ID = utils.GenerateEntityID("announcement") })
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menyimpan pengumuman", nil)
		return
	}

	// 5. Re-fetch by id supaya bentuk respon = bentuk tersimpan.
	var saved model.Announcement
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollAnnouncements, announcement.ID, &saved); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca pengumuman tersimpan", nil)
		return
	}

	utils.Respond(ctx, http.StatusOK, "Pengumuman berhasil dibuat", saved)
}

// GetAll menangani GET /api/v1/announcement.
func (s *announcementService) GetAll(ctx *gin.Context) {
	var announcements []model.Announcement
	if err := s.content.FindAll(ctx.Request.Context(), repository.CollAnnouncements, hiddenListFields, &announcements); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil pengumuman", nil)
		return
	}

	// List kosong dijawab 404 dengan data list kosong (bukan null).
	if len(announcements) == 0 {
		utils.Respond(ctx, http.StatusNotFound, "Belum ada pengumuman", []model.Announcement{})
		return
	}

	utils.Respond(ctx, http.StatusOK, listMessage(len(announcements)), announcements)
}

// GetByID menangani GET /api/v1/announcement/:id.
func (s *announcementService) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	var announcement model.Announcement
	err := s.content.FindByID(ctx.Request.Context(), repository.CollAnnouncements, id, &announcement)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Pengumuman tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil pengumuman", nil)
		return
	}

	utils.Respond(ctx, http.StatusOK, "Berhasil mengambil pengumuman", announcement)
}

// Update menangani PUT /api/v1/announcement/:id (partial update).
func (s *announcementService) Update(ctx *gin.Context) {
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

	// Cek dulu dokumennya ada; update terhadap id tak dikenal = 404, bukan 422.
	var existing model.Announcement
	err := s.content.FindByID(ctx.Request.Context(), repository.CollAnnouncements, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Pengumuman tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil pengumuman", nil)
		return
	}

	// Merge field terisi saja; modifiedBy/modifiedAt selalu ikut.
	fields := bson.M{}
	setIfNotEmpty(fields, "name", input.Name)
	setIfNotEmpty(fields, "description", input.Description)
	withModifier(fields, adminID)

	matched, err := s.content.UpdateByID(ctx.Request.Context(), repository.CollAnnouncements, id, fields)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal memperbarui pengumuman", nil)
		return
	}
	if matched == 0 {
		// Dokumen hilang di antara find dan update (race) → partial failure.
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Pengumuman gagal diperbarui", nil)
		return
	}

	var updated model.Announcement
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollAnnouncements, id, &updated); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca pengumuman tersimpan", nil)
		return
	}

	utils.Respond(ctx, http.StatusOK, "Pengumuman berhasil diperbarui", updated)
}

// Delete menangani DELETE /api/v1/announcement/:id.
func (s *announcementService) Delete(ctx *gin.Context) {
	if _, ok := ensureRequesterValid(ctx, s.admins); !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.Announcement
	err := s.content.FindByID(ctx.Request.Context(), repository.CollAnnouncements, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Pengumuman tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil pengumuman", nil)
		return
	}

	deleted, err := s.content.DeleteByID(ctx.Request.Context(), repository.CollAnnouncements, id)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menghapus pengumuman", nil)
		return
	}
	if deleted == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Pengumuman gagal dihapus", nil)
		return
	}

	utils.Respond(ctx, http.StatusOK, "Pengumuman berhasil dihapus", nil)
}
