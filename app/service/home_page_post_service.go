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

// HomePagePostService mengelola post/berita singkat halaman depan.
type HomePagePostService interface {
	Create(ctx *gin.Context)
	GetAll(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type homePagePostService struct {
	content repository.ContentRepository
	admins  repository.AdminRepository
}

func NewHomePagePostService(content repository.ContentRepository, admins repository.AdminRepository) HomePagePostService {
	return &homePagePostService{content: content, admins: admins}
}

func (s *homePagePostService) Create(ctx *gin.Context) {
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

	post := model.HomePagePost{
		EntityMeta: model.EntityMeta{
			ID:        utils.GenerateEntityID("home-page-post"),
			CreatedBy: adminID,
			CreatedAt: time.Now(),
		},
		Title:       input.Title,
		Description: input.Description,
	}

	err := s.content.Insert(ctx.Request.Context(), repository.CollHomePagePosts, &post,
		func() { post.ID = utils.GenerateEntityID("home-page-post") })
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menyimpan post", nil)
		return
	}

	var saved model.HomePagePost
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollHomePagePosts, post.ID, &saved); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca post tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Post berhasil dibuat", saved)
}

func (s *homePagePostService) GetAll(ctx *gin.Context) {
	var posts []model.HomePagePost
	if err := s.content.FindAll(ctx.Request.Context(), repository.CollHomePagePosts, hiddenListFields, &posts); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil post", nil)
		return
	}
	if len(posts) == 0 {
		utils.Respond(ctx, http.StatusNotFound, "Belum ada post", []model.HomePagePost{})
		return
	}
	utils.Respond(ctx, http.StatusOK, listMessage(len(posts)), posts)
}

func (s *homePagePostService) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	var post model.HomePagePost
	err := s.content.FindByID(ctx.Request.Context(), repository.CollHomePagePosts, id, &post)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Post tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil post", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Berhasil mengambil post", post)
}

func (s *homePagePostService) Update(ctx *gin.Context) {
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

	var existing model.HomePagePost
	err := s.content.FindByID(ctx.Request.Context(), repository.CollHomePagePosts, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Post tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil post", nil)
		return
	}

	fields := bson.M{}
	setIfNotEmpty(fields, "title", input.Title)
	setIfNotEmpty(fields, "description", input.Description)
	withModifier(fields, adminID)

	matched, err := s.content.UpdateByID(ctx.Request.Context(), repository.CollHomePagePosts, id, fields)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal memperbarui post", nil)
		return
	}
	if matched == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Post gagal diperbarui", nil)
		return
	}

	var updated model.HomePagePost
	if err := s.content.FindByID(ctx.Request.Context(), repository.CollHomePagePosts, id, &updated); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membaca post tersimpan", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Post berhasil diperbarui", updated)
}

func (s *homePagePostService) Delete(ctx *gin.Context) {
	if _, ok := ensureRequesterValid(ctx, s.admins); !ok {
		return
	}

	id := ctx.Param("id")

	var existing model.HomePagePost
	err := s.content.FindByID(ctx.Request.Context(), repository.CollHomePagePosts, id, &existing)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusNotFound, "Post tidak ditemukan", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil post", nil)
		return
	}

	deleted, err := s.content.DeleteByID(ctx.Request.Context(), repository.CollHomePagePosts, id)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menghapus post", nil)
		return
	}
	if deleted == 0 {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Post gagal dihapus", nil)
		return
	}
	utils.Respond(ctx, http.StatusOK, "Post berhasil dihapus", nil)
}
