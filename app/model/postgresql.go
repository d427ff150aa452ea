package model

import (
	"time"

	"github.com/google/uuid"
)

// Admin merepresentasikan akun staf yang boleh mengelola konten.
// Tidak ada pembagian role: semua record di tabel ini dianggap berhak
// penuh atas seluruh operasi tulis (create/update/delete) di semua modul.
type Admin struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`

	// AdminID adalah id publik dengan format "admin-xxxxxx".
	// Id inilah yang disimpan di createdBy/modifiedBy dokumen konten,
	// bukan uuid internal tabel.
	AdminID string `gorm:"uniqueIndex;not null" json:"adminId"`

	Name     string `gorm:"not null" json:"name"`
	Username string `gorm:"unique;not null" json:"username"`

	// PasswordHash berisi hash bcrypt, TIDAK PERNAH plaintext.
	PasswordHash string `gorm:"not null" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
