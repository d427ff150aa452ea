package database

import (
	"log"
	"os"

	"school-cms-backend/app/model"
	"school-cms-backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunSeeders menjalankan seluruh seeder yang dibutuhkan.
// Panggil ini sekali di main.go setelah InitDB berhasil.
func RunSeeders(db *gorm.DB) {
	SeedAdmin(db)
}

// SeedAdmin membuat akun admin awal dari env (SEED_ADMIN_USERNAME,
// SEED_ADMIN_PASSWORD, SEED_ADMIN_NAME). Skip jika sudah ada admin.
func SeedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&model.Admin{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Admin sudah ada, skip seeding admin.")
		return
	}

	username := os.Getenv("SEED_ADMIN_USERNAME")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	name := os.Getenv("SEED_ADMIN_NAME")
	if username == "" || password == "" {
		log.Println("[SEEDER] SEED_ADMIN_USERNAME / SEED_ADMIN_PASSWORD kosong, skip seeding admin.")
		return
	}
	if name == "" {
		name = "Administrator"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[SEEDER] Gagal hash password admin: %v", err)
		return
	}

	admin := model.Admin{
		AdminID:      utils.GenerateEntityID("admin"),
		Name:         name,
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("[SEEDER] Gagal membuat admin awal: %v", err)
		return
	}

	log.Printf("[SEEDER] Admin awal dibuat: %s (%s)", admin.Username, admin.AdminID)
}
