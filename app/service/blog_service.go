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

// BlogService mengelola artikel blog sekolah.
// Ini pola kanonik entity ber-file: upload dulu ke object storage, baru tulis
// database; kalau tulis database gagal, file yang terlanjur terupload dihapus
// lagi (compensating delete). Ganti file saat update = file lama dihapus.
type BlogService interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type blogService struct {
	content repository.ContentRepository
	admins  repository.AdminRepository
	files   storage.FileStorage
}

// NewBlogService membuat service blog.
func NewBlogService(content repository.ContentRepository, admins repository.AdminRepository, files storage.FileStorage) BlogService {
	return &blogService{content: content, admins: admins, files: files}
}

// Create menangani POST /api/v1/blog (multipart form: title, category,
// description + file "image").
func (s *blogService) Create(ctx *gin.Context) {
	// 1. Otorisasi
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	// 2. Validasi field form
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

	// 3. Upload ke object storage DULU.
	// Upload gagal = 422, database belum tersentuh sama sekali.
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

	// 4. Bangun dokumen + insert
	blog := model.Blog{
		EntityMeta: model.EntityMeta{
			ID:        utils.GenerateEntityID("blog"),
			CreatedBy: adminID,
			CreatedAt: time.Now(),
		},
		FileMeta: model.FileMeta{
			FileID:        stored.FileID,
			ShareableLink: stored.ShareableLink,
		},
		Title:       title,
		Category:    ctx.PostForm("category"),
		Description: ctx.PostForm("description"),
	}

	err = s.content.Insert(ctx.Request.Context(), repository.CollBlogs, &blog,
		func() { blog.ID = utils.GenerateEntityID("blog") })
	if err != nil {
		// Compensating delete: insert gagal, jangan tinggalkan file yatim.
		if delErr := s.files.Delete(ctx.Request.Context(), stored.FileID); delErr != nil {
			log.Printf("[BLOG] gagal menghapus file kompensasi %s: %v", stored.FileID, delErr)
		}
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menyimpan blog", nil)
		return
	}

	// 5. Re-fetch untuk respon
	var saved model.Blog
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollBlogs, blog.ID, &saved); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca blog tersimpan", nil)
		return
	}

	utils.Respond(ctx, http.StatusOK, "Blog berhasil dibuat", saved)
}

// GetAll menangani GET /api/v1/blog.
func (s *blogService) GetAll(ctx *gin.Context) {
	var blogs []model.Blog
	if err := s.content.FindAll(ctx.Request.Context(), repository.CollBlogs, hiddenListFields, &blogs); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil blog", nil)
		return
	}

	if len(blogs) == 0 {
		utils.Respond(ctx, http.StatusNotFound, "Belum ada blog", []model.Blog{})
		return
	}

	utils.Respond(ctx, http.StatusOK, listMessage(len(blogs)), blogs)
}

// GetByID menangani GET /api/v1/blog/:id.
func (s *blogService) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	var blog model.Blog
	err := s.content.FindByID(ctx.Request.Context(), repository.CollBlogs, id, &blog)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Blog tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil blog", nil)
		return
	}

	utils.Respond(ctx, http.StatusOK, "Berhasil mengambil blog", blog)
}

// Update menangani PUT /api/v1/blog/:id (multipart form, semua field opsional;
// lampirkan file "image" baru untuk mengganti gambar).
func (s *blogService) Update(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	id := ctx.Param("id")

	// Cek dokumen ada + simpan fileId lama untuk dihapus nanti.
	var existing model.Blog
	err := s.content.FindByID(ctx.Request.Context(), repository.CollBlogs, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Blog tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil blog", nil)
		return
	}

	fields := bson.M{}
	setIfNotEmpty(fields, "title", ctx.PostForm("title"))
	setIfNotEmpty(fields, "category", ctx.PostForm("category"))
	setIfNotEmpty(fields, "description", ctx.PostForm("description"))
	withModifier(fields, adminID)

	// Ada file baru? Upload dulu, gagal = 422 tanpa menyentuh database.
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

	matched, err := s.content.UpdateByID(ctx.Request.Context(), repository.CollBlogs, id, fields)
	if err != nil || matched == 0 {
		// Update gagal: file baru yang terlanjur naik ikut dibersihkan.
		if newFile != nil {
			if delErr := s.files.Delete(ctx.Request.Context(), newFile.FileID); delErr != nil {
				log.Printf("[BLOG] gagal menghapus file kompensasi %s: %v", newFile.FileID, delErr)
			}
		}
		if err != nil {
			utils.Respond(ctx, http.StatusInternalServerError, "Gagal memperbarui blog", nil)
			return
		}
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Blog gagal diperbarui", nil)
		return
	}

	// Database sudah menunjuk file baru; file lama dihapus best-effort.
	// Kalau gagal, perubahan database TETAP berlaku (cukup dicatat di log).
	if newFile != nil && existing.FileID != "" {
		if delErr := s.files.Delete(ctx.Request.Context(), existing.FileID); delErr != nil {
			log.Printf("[BLOG] gagal menghapus file lama %s: %v", existing.FileID, delErr)
		}
	}

	var updated model.Blog
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollBlogs, id, &updated); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca blog tersimpan", nil)
		return
	}

	utils.Respond(ctx, http.StatusOK, "Blog berhasil diperbarui", updated)
}

// Delete menangani DELETE /api/v1/blog/:id.
func (s *blogService) Delete(ctx *gin.Context) {
	if _, ok := ensureRequesterValid(ctx, s.admins); !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.Blog
	err := s.content.FindByID(ctx.Request.Context(), repository.CollBlogs, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Blog tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil blog", nil)
		return
	}

	deleted, err := s.content.DeleteByID(ctx.Request.Context(), repository.CollBlogs, id)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menghapus blog", nil)
		return
	}
	if deleted == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Blog gagal dihapus", nil)
		return
	}

	// Record sudah hilang, file eksternal menyusul (best-effort).
	if existing.FileID != "" {
		if delErr := s.files.Delete(ctx.Request.Context(), existing.FileID); delErr != nil {
			log.Printf("[BLOG] gagal menghapus file %s: %v", existing.FileID, delErr)
		}
	}

	utils.Respond(ctx, http.StatusOK, "Blog berhasil dihapus", nil)
}
