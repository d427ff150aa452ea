package repository

import (
	"errors"

	"school-cms-backend/app/model"

	"gorm.io/gorm"
)

// AdminRepository mengelola akun admin di PostgreSQL.
// ExistsByAdminID adalah gerbang otorisasi untuk SEMUA operasi tulis konten:
// token boleh saja masih valid, tapi kalau recordnya sudah dihapus dari tabel
// admin maka request ditolak 403.
type AdminRepository interface {
	Create(admin *model.Admin) error
	FindByUsername(username string) (*model.Admin, error)
	FindByAdminID(adminID string) (*model.Admin, error)
	FindAll() ([]model.Admin, error)

	// ExistsByAdminID mengecek apakah admin masih terdaftar.
	// Error query dikembalikan apa adanya (JANGAN ditelan jadi false diam-diam:
	// caller yang memutuskan 500 vs 403).
	ExistsByAdminID(adminID string) (bool, error)

	UpdatePassword(adminID string, passwordHash string) error

	// DeleteByAdminID mengembalikan jumlah baris terhapus (0 = tidak ketemu).
	DeleteByAdminID(adminID string) (int64, error)

	Count() (int64, error)
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository membuat instance repository admin.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(admin *model.Admin) error {
	return r.db.Create(admin).Error
}

func (r *adminRepository) FindByUsername(username string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.Where("username = ?", username).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindByAdminID(adminID string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.Where("admin_id = ?", adminID).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindAll() ([]model.Admin, error) {
	var admins []model.Admin
	err := r.db.Order("created_at asc").Find(&admins).Error
	return admins, err
}

func (r *adminRepository) ExistsByAdminID(adminID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Admin{}).
		Where("admin_id = ?", adminID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *adminRepository) UpdatePassword(adminID string, passwordHash string) error {
	res := r.db.Model(&model.Admin{}).
		Where("admin_id = ?", adminID).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *adminRepository) DeleteByAdminID(adminID string) (int64, error) {
	res := r.db.Where("admin_id = ?", adminID).Delete(&model.Admin{})
	return res.RowsAffected, res.Error
}

func (r *adminRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Admin{}).Count(&count).Error
	return count, err
}

// IsNotFound membantu service membedakan "tidak ketemu" dari error lain
// tanpa perlu import gorm di layer service.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrNotFound)
}
