package service

import (
	"net/http"

	"school-cms-backend/app/repository"
	"school-cms-backend/utils"

	"github.com/gin-gonic/gin"
)

// DashboardService merangkum jumlah data tiap koleksi untuk halaman admin.
type DashboardService interface {
	GetTotals(ctx *gin.Context)
}

type dashboardService struct {
	content repository.ContentRepository
	admins  repository.AdminRepository
}

func NewDashboardService(content repository.ContentRepository, admins repository.AdminRepository) DashboardService {
	return &dashboardService{content: content, admins: admins}
}

func (s *dashboardService) GetTotals(ctx *gin.Context) {
	if _, ok := ensureRequesterValid(ctx, s.admins); !ok {
		return
	}

	totals := gin.H{}
	for _, coll := range repository.ContentCollections() {
		n, err := s.content.Count(ctx.Request.Context(), coll)
		if err != nil {
			utils.Respond(ctx, http.StatusInternalServerError, "Gagal menghitung data "+coll, nil)
			return
		}
		totals[coll] = n
	}

	adminCount, err := s.admins.Count()
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menghitung data admin", nil)
		return
	}
	totals["admins"] = adminCount

	utils.Respond(ctx, http.StatusOK, "Berhasil mengambil ringkasan dashboard", totals)
}
