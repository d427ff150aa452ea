package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"school-cms-backend/app/model"
	"school-cms-backend/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAnnouncement(t *testing.T, repo *fakeContentRepo, id, name string) {
	t.Helper()
	doc := model.Announcement{
		EntityMeta: model.EntityMeta{
			ID:        id,
			CreatedBy: "admin-seeder",
			CreatedAt: time.Now(),
		},
		Name:        name,
		Description: "deskripsi awal",
	}
	require.NoError(t, repo.Insert(context.Background(), repository.CollAnnouncements, &doc, nil))
}

func TestAnnouncementCreateThenGet(t *testing.T) {
	content := newFakeContentRepo()
	admins := newFakeAdminRepo("admin-abc123")
	svc := NewAnnouncementService(content, admins)

	ctx, w := jsonRequest(t, http.MethodPost, gin.H{
		"name":        "Libur Semester",
		"description": "Libur mulai 20 Juni",
	}, "admin-abc123")
	svc.Create(ctx)

	resp := decodeEnvelope(t, w)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	id := data["id"].(string)
	assert.Regexp(t, `^announcement-[a-z0-9]{6}$`, id)
	assert.Equal(t, "Libur Semester", data["name"])
	// Field administratif tidak boleh bocor ke respon.
	assert.NotContains(t, data, "createdBy")

	getCtx, getW := jsonRequest(t, http.MethodGet, nil, "",
		gin.Param{Key: "id", Value: id})
	svc.GetByID(getCtx)
	require.Equal(t, http.StatusOK, getW.Code)
}

func TestAnnouncementCreateRejectsUnknownAdmin(t *testing.T) {
	content := newFakeContentRepo()
	admins := newFakeAdminRepo() // kosong: token valid tapi admin sudah dihapus
	svc := NewAnnouncementService(content, admins)

	ctx, w := jsonRequest(t, http.MethodPost, gin.H{"name": "X"}, "admin-hilang")
	svc.Create(ctx)

	resp := decodeEnvelope(t, w)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, resp.Success)
	// Tidak boleh ada dokumen tertulis.
	n, _ := content.Count(context.Background(), repository.CollAnnouncements)
	assert.Zero(t, n)
}

func TestAnnouncementCreateValidatesInput(t *testing.T) {
	svc := NewAnnouncementService(newFakeContentRepo(), newFakeAdminRepo("admin-abc123"))

	// name wajib
	ctx, w := jsonRequest(t, http.MethodPost, gin.H{"description": "tanpa nama"}, "admin-abc123")
	svc.Create(ctx)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnnouncementGetAllEmptyIs404WithEmptyList(t *testing.T) {
	svc := NewAnnouncementService(newFakeContentRepo(), newFakeAdminRepo())

	ctx, w := jsonRequest(t, http.MethodGet, nil, "")
	svc.GetAll(ctx)

	resp := decodeEnvelope(t, w)
	assert.Equal(t, http.StatusNotFound, w.Code)
	// Data tetap list kosong, bukan null.
	list, ok := resp.Data.([]interface{})
	require.True(t, ok, "data harus berupa list, dapat: %T", resp.Data)
	assert.Empty(t, list)
}

func TestAnnouncementPartialUpdateKeepsUntouchedFields(t *testing.T) {
	content := newFakeContentRepo()
	admins := newFakeAdminRepo("admin-editor")
	svc := NewAnnouncementService(content, admins)
	seedAnnouncement(t, content, "announcement-aaa111", "Nama Awal")

	ctx, w := jsonRequest(t, http.MethodPut, gin.H{"description": "deskripsi baru"},
		"admin-editor", gin.Param{Key: "id", Value: "announcement-aaa111"})
	svc.Update(ctx)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated model.Announcement
	require.NoError(t, content.FindByID(context.Background(), repository.CollAnnouncements, "announcement-aaa111", &updated))
	assert.Equal(t, "Nama Awal", updated.Name, "field yang tidak dikirim harus dipertahankan")
	assert.Equal(t, "deskripsi baru", updated.Description)
	assert.Equal(t, "admin-editor", updated.ModifiedBy)
	assert.False(t, updated.ModifiedAt.IsZero())
	// createdBy tidak boleh berubah.
	assert.Equal(t, "admin-seeder", updated.CreatedBy)
}

func TestAnnouncementUpdateUnknownIDIs404(t *testing.T) {
	svc := NewAnnouncementService(newFakeContentRepo(), newFakeAdminRepo("admin-editor"))

	ctx, w := jsonRequest(t, http.MethodPut, gin.H{"name": "apa pun"},
		"admin-editor", gin.Param{Key: "id", Value: "announcement-zzz999"})
	svc.Update(ctx)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnnouncementDelete(t *testing.T) {
	content := newFakeContentRepo()
	svc := NewAnnouncementService(content, newFakeAdminRepo("admin-abc123"))
	seedAnnouncement(t, content, "announcement-bbb222", "Akan Dihapus")

	ctx, w := jsonRequest(t, http.MethodDelete, nil, "admin-abc123",
		gin.Param{Key: "id", Value: "announcement-bbb222"})
	svc.Delete(ctx)
	require.Equal(t, http.StatusOK, w.Code)

	var gone model.Announcement
	err := content.FindByID(context.Background(), repository.CollAnnouncements, "announcement-bbb222", &gone)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
