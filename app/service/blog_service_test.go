package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"school-cms-backend/app/model"
	"school-cms-backend/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBlog(t *testing.T, repo *fakeContentRepo, id, fileID string) {
	t.Helper()
	doc := model.Blog{
		EntityMeta: model.EntityMeta{
			ID:        id,
			CreatedBy: "admin-seeder",
			CreatedAt: time.Now(),
		},
		FileMeta: model.FileMeta{
			FileID:        fileID,
			ShareableLink: "https://cdn.example.test/" + fileID,
		},
		Title:    "Judul Awal",
		Category: "berita",
	}
	require.NoError(t, repo.Insert(context.Background(), repository.CollBlogs, &doc, nil))
}

func TestBlogCreateUploadsThenInserts(t *testing.T) {
	content := newFakeContentRepo()
	files := &fakeFileStorage{}
	svc := NewBlogService(content, newFakeAdminRepo("admin-abc123"), files)

	ctx, w := formRequest(t, http.MethodPost,
		map[string]string{"title": "Lomba 17 Agustus", "category": "kegiatan"},
		"image", "sampul.jpg", []byte("fake-jpeg-bytes"), "admin-abc123")
	svc.Create(ctx)

	resp := decodeEnvelope(t, w)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, files.uploads)

	data := resp.Data.(map[string]interface{})
	assert.Regexp(t, `^blog-[a-z0-9]{6}$`, data["id"])
	assert.NotEmpty(t, data["shareableLink"])
	// Key object storage internal, tidak diekspos.
	assert.NotContains(t, data, "fileId")
}

func TestBlogCreateWithoutFileIs400(t *testing.T) {
	files := &fakeFileStorage{}
	svc := NewBlogService(newFakeContentRepo(), newFakeAdminRepo("admin-abc123"), files)

	ctx, w := formRequest(t, http.MethodPost,
		map[string]string{"title": "Tanpa Gambar"}, "", "", nil, "admin-abc123")
	svc.Create(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, files.uploads)
}

func TestBlogCreateUploadFailureIs422AndNothingStored(t *testing.T) {
	content := newFakeContentRepo()
	files := &fakeFileStorage{uploadErr: errors.New("oss timeout")}
	svc := NewBlogService(content, newFakeAdminRepo("admin-abc123"), files)

	ctx, w := formRequest(t, http.MethodPost,
		map[string]string{"title": "Gagal Upload"},
		"image", "sampul.jpg", []byte("x"), "admin-abc123")
	svc.Create(ctx)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	n, _ := content.Count(context.Background(), repository.CollBlogs)
	assert.Zero(t, n, "upload gagal tidak boleh menulis dokumen")
}

func TestBlogCreateInsertFailureDeletesUploadedFile(t *testing.T) {
	content := newFakeContentRepo()
	content.insertErr = errors.New("mongo down")
	files := &fakeFileStorage{}
	svc := NewBlogService(content, newFakeAdminRepo("admin-abc123"), files)

	ctx, w := formRequest(t, http.MethodPost,
		map[string]string{"title": "Insert Gagal"},
		"image", "sampul.jpg", []byte("x"), "admin-abc123")
	svc.Create(ctx)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// File yang terlanjur naik harus dihapus (kompensasi).
	require.Len(t, files.deleted, 1)
}

func TestBlogUpdateWithNewFileDeletesOldFile(t *testing.T) {
	content := newFakeContentRepo()
	files := &fakeFileStorage{}
	svc := NewBlogService(content, newFakeAdminRepo("admin-editor"), files)
	seedBlog(t, content, "blog-aaa111", "obj-lama")

	ctx, w := formRequest(t, http.MethodPut,
		map[string]string{"title": "Judul Baru"},
		"image", "sampul-baru.jpg", []byte("new-bytes"), "admin-editor",
		gin.Param{Key: "id", Value: "blog-aaa111"})
	svc.Update(ctx)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated model.Blog
	require.NoError(t, content.FindByID(context.Background(), repository.CollBlogs, "blog-aaa111", &updated))
	assert.Equal(t, "Judul Baru", updated.Title)
	assert.Equal(t, "berita", updated.Category, "field yang tidak dikirim dipertahankan")
	assert.NotEqual(t, "obj-lama", updated.FileID)
	assert.Contains(t, files.deleted, "obj-lama")
}

func TestBlogUpdateWithoutFileKeepsExistingFile(t *testing.T) {
	content := newFakeContentRepo()
	files := &fakeFileStorage{}
	svc := NewBlogService(content, newFakeAdminRepo("admin-editor"), files)
	seedBlog(t, content, "blog-bbb222", "obj-tetap")

	ctx, w := formRequest(t, http.MethodPut,
		map[string]string{"description": "deskripsi saja"},
		"", "", nil, "admin-editor",
		gin.Param{Key: "id", Value: "blog-bbb222"})
	svc.Update(ctx)
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.Blog
	require.NoError(t, content.FindByID(context.Background(), repository.CollBlogs, "blog-bbb222", &updated))
	assert.Equal(t, "obj-tetap", updated.FileID)
	assert.Empty(t, files.deleted)
	assert.Zero(t, files.uploads)
}

func TestBlogDeleteRemovesExternalFile(t *testing.T) {
	content := newFakeContentRepo()
	files := &fakeFileStorage{}
	svc := NewBlogService(content, newFakeAdminRepo("admin-abc123"), files)
	seedBlog(t, content, "blog-ccc333", "obj-hapus")

	ctx, w := formRequest(t, http.MethodDelete, nil, "", "", nil, "admin-abc123",
		gin.Param{Key: "id", Value: "blog-ccc333"})
	svc.Delete(ctx)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, files.deleted, "obj-hapus")
	var gone model.Blog
	err := content.FindByID(context.Background(), repository.CollBlogs, "blog-ccc333", &gone)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBlogDeleteFileFailureStillDeletesRecord(t *testing.T) {
	content := newFakeContentRepo()
	files := &fakeFileStorage{deleteErr: errors.New("oss unreachable")}
	svc := NewBlogService(content, newFakeAdminRepo("admin-abc123"), files)
	seedBlog(t, content, "blog-ddd444", "obj-x")

	ctx, w := formRequest(t, http.MethodDelete, nil, "", "", nil, "admin-abc123",
		gin.Param{Key: "id", Value: "blog-ddd444"})
	svc.Delete(ctx)

	// Hapus file best-effort: record tetap terhapus dan respon tetap 200.
	require.Equal(t, http.StatusOK, w.Code)
	var gone model.Blog
	err := content.FindByID(context.Background(), repository.CollBlogs, "blog-ddd444", &gone)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
