package service

import (
	"fmt"
	"net/http"
	"time"

	"school-cms-backend/app/repository"
	"school-cms-backend/middleware"
	"school-cms-backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// hiddenListFields: field administratif yang di-project out saat list
// (createdBy/modifiedBy = id admin, fileId = key object storage).
var hiddenListFields = []string{"createdBy", "modifiedBy", "fileId"}

// ensureRequesterValid adalah gerbang otorisasi untuk semua operasi tulis.
// Mengambil adminID dari context (diisi AuthMiddleware), lalu mengecek ulang
// ke tabel admin: token boleh valid, tapi kalau adminnya sudah dihapus maka
// request ditolak 403.
//
// Return (adminID, true) kalau lolos. Kalau false, respon SUDAH ditulis
// (401/403/500) dan caller tinggal return.
func ensureRequesterValid(ctx *gin.Context, admins repository.AdminRepository) (string, bool) {
	adminID := middleware.AdminIDFromContext(ctx)
	if adminID == "" {
		utils.Respond(ctx, http.StatusUnauthorized, "Identitas admin tidak ditemukan di token", nil)
		return "", false
	}

	ok, err := admins.ExistsByAdminID(adminID)
	if err != nil {
		// Error query BUKAN berarti forbidden; jangan disamarkan jadi 403.
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal memeriksa data admin", nil)
		return "", false
	}
	if !ok {
		utils.Respond(ctx, http.StatusForbidden, "Forbidden: admin tidak terdaftar", nil)
		return "", false
	}

	return adminID, true
}

// setIfNotEmpty menambahkan field ke dokumen $set hanya jika nilainya terisi.
// Inilah inti semantik partial update: field kosong = pertahankan nilai lama.
func setIfNotEmpty(fields bson.M, key, value string) {
	if value != "" {
		fields[key] = value
	}
}

// withModifier melengkapi dokumen $set dengan metadata modifikasi.
// modifiedBy/modifiedAt SELALU ditimpa di setiap update.
func withModifier(fields bson.M, adminID string) bson.M {
	fields["modifiedBy"] = adminID
	fields["modifiedAt"] = time.Now()
	return fields
}

// listMessage membentuk pesan list yang menyebut jumlah data.
func listMessage(n int) string {
	return fmt.Sprintf("Berhasil mengambil %d data", n)
}
