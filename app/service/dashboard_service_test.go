package service

import (
	"net/http"
	"testing"

	"school-cms-backend/app/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardTotalsCoverAllCollections(t *testing.T) {
	content := newFakeContentRepo()
	admins := newFakeAdminRepo("admin-aaa111", "admin-bbb222")
	svc := NewDashboardService(content, admins)

	seedAnnouncement(t, content, "announcement-aaa111", "Satu")
	seedAnnouncement(t, content, "announcement-bbb222", "Dua")
	seedBlog(t, content, "blog-aaa111", "obj-1")

	ctx, w := jsonRequest(t, http.MethodGet, nil, "admin-aaa111")
	svc.GetTotals(ctx)

	resp := decodeEnvelope(t, w)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	totals := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 2, totals[repository.CollAnnouncements])
	assert.EqualValues(t, 1, totals[repository.CollBlogs])
	assert.EqualValues(t, 2, totals["admins"])

	// Bentuk respon tetap: SEMUA koleksi konten ada key-nya, walau nol.
	for _, coll := range repository.ContentCollections() {
		assert.Contains(t, totals, coll)
	}
}

func TestDashboardRequiresRegisteredAdmin(t *testing.T) {
	svc := NewDashboardService(newFakeContentRepo(), newFakeAdminRepo())

	ctx, w := jsonRequest(t, http.MethodGet, nil, "admin-hilang")
	svc.GetTotals(ctx)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
