package service

import (
	"net/http"
	"strings"

	"school-cms-backend/app/model"
	"school-cms-backend/app/repository"
	"school-cms-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthService menangani pendaftaran admin, login, dan pengelolaan akun.
//
// Tidak ada refresh token maupun sesi server-side: token berlaku 24 jam
// dan setiap mutasi memverifikasi ulang admin ke database.
type AuthService interface {
	Signup(ctx *gin.Context)
	Login(ctx *gin.Context)
	ResetPassword(ctx *gin.Context)
	GetAdmins(ctx *gin.Context)
	DeleteAdmin(ctx *gin.Context)
}

type authService struct {
	admins repository.AdminRepository
}

func NewAuthService(admins repository.AdminRepository) AuthService {
	return &authService{admins: admins}
}

type signupInput struct {
	Name            string `json:"name" binding:"required"`
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

func (s *authService) Signup(ctx *gin.Context) {
	var input signupInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.Respond(ctx, http.StatusBadRequest, "Data pendaftaran tidak lengkap", nil)
		return
	}

	if input.Password != input.ConfirmPassword {
		utils.Respond(ctx, http.StatusBadRequest, "Konfirmasi password tidak cocok", nil)
		return
	}

	// Username harus unik. Cek dulu agar pesan errornya jelas; constraint
	// unik di database tetap menjadi penjaga terakhir.
	_, err := s.admins.FindByUsername(input.Username)
	if err == nil {
		utils.Respond(ctx, http.StatusUnprocessableEntity, "Username sudah terdaftar", nil)
		return
	}
	if !repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal memeriksa username", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal memproses password", nil)
		return
	}

	admin := model.Admin{
		AdminID:      utils.GenerateEntityID("admin"),
		Name:         input.Name,
		Username:     input.Username,
		PasswordHash: string(hash),
	}
	if err := s.admins.Create(&admin); err != nil {
		if strings.Contains(err.Error(), "duplicate") {
			utils.Respond(ctx, http.StatusUnprocessableEntity, "Username sudah terdaftar", nil)
			return
		}
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membuat admin", nil)
		return
	}

	utils.Respond(ctx, http.StatusOK, "Admin berhasil didaftarkan", gin.H{
		"adminId":  admin.AdminID,
		"name":     admin.Name,
		"username": admin.Username,
	})
}

type loginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *authService) Login(ctx *gin.Context) {
	var input loginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.Respond(ctx, http.StatusBadRequest, "Username dan password wajib diisi", nil)
		return
	}

	admin, err := s.admins.FindByUsername(input.Username)
	if repository.IsNotFound(err) {
		utils.Respond(ctx, http.StatusUnauthorized, "Username atau password salah", nil)
		return
	}
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal memeriksa kredensial", nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		utils.Respond(ctx, http.StatusUnauthorized, "Username atau password salah", nil)
		return
	}

	token, err := utils.GenerateToken(admin.AdminID, admin.Name, admin.Username)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal membuat token", nil)
		return
	}

	utils.Respond(ctx, http.StatusOK, "Login berhasil", gin.H{
		"token":    token,
		"adminId":  admin.AdminID,
		"name":     admin.Name,
		"username": admin.Username,
	})
}

type resetPasswordInput struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func (s *authService) ResetPassword(ctx *gin.Context) {
	adminID, ok := ensureRequesterValid(ctx, s.admins)
	if !ok {
		return
	}

	var input resetPasswordInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.Respond(ctx, http.StatusBadRequest, "Password lama dan baru wajib diisi", nil)
		return
	}

	admin, err := s.admins.FindByAdminID(adminID)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil data admin", nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.OldPassword)); err != nil {
		utils.Respond(ctx, http.StatusUnauthorized, "Password lama salah", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal memproses password", nil)
		return
	}

	if err := s.admins.UpdatePassword(adminID, string(hash)); err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menyimpan password baru", nil)
		return
	}

	utils.Respond(ctx, http.StatusOK, "Password berhasil diperbarui", nil)
}

func (s *authService) GetAdmins(ctx *gin.Context) {
	if _, ok := ensureRequesterValid(ctx, s.admins); !ok {
		return
	}

	admins, err := s.admins.FindAll()
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal mengambil data admin", nil)
		return
	}
	if len(admins) == 0 {
		utils.Respond(ctx, http.StatusNotFound, "Belum ada admin", []model.Admin{})
		return
	}

	utils.Respond(ctx, http.StatusOK, listMessage(len(admins)), admins)
}

func (s *authService) DeleteAdmin(ctx *gin.Context) {
	if _, ok := ensureRequesterValid(ctx, s.admins); !ok {
		return
	}

	targetID := ctx.Param("adminId")

	deleted, err := s.admins.DeleteByAdminID(targetID)
	if err != nil {
		utils.Respond(ctx, http.StatusInternalServerError, "Gagal menghapus admin", nil)
		return
	}
	if deleted == 0 {
		utils.Respond(ctx, http.StatusNotFound, "Admin tidak ditemukan", nil)
		return
	}

	utils.Respond(ctx, http.StatusOK, "Admin berhasil dihapus", nil)
}
