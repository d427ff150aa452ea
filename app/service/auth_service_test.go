package service

import (
	"net/http"
	"testing"

	"school-cms-backend/app/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedAdminWithPassword(t *testing.T, repo *fakeAdminRepo, adminID, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo.admins[adminID] = model.Admin{
		AdminID:      adminID,
		Name:         "Admin " + username,
		Username:     username,
		PasswordHash: string(hash),
	}
}

func TestSignupCreatesAdmin(t *testing.T) {
	admins := newFakeAdminRepo()
	svc := NewAuthService(admins)

	ctx, w := jsonRequest(t, http.MethodPost, gin.H{
		"name":            "Budi Santoso",
		"username":        "budi",
		"password":        "rahasia-123",
		"confirmPassword": "rahasia-123",
	}, "")
	svc.Signup(ctx)

	resp := decodeEnvelope(t, w)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := resp.Data.(map[string]interface{})
	assert.Regexp(t, `^admin-[a-z0-9]{6}$`, data["adminId"])
	assert.NotContains(t, data, "password")

	created, err := admins.FindByUsername("budi")
	require.NoError(t, err)
	// Password disimpan sebagai hash bcrypt, bukan plaintext.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("rahasia-123")))
}

func TestSignupRejectsMismatchedConfirmation(t *testing.T) {
	svc := NewAuthService(newFakeAdminRepo())

	ctx, w := jsonRequest(t, http.MethodPost, gin.H{
		"name":            "Budi",
		"username":        "budi",
		"password":        "rahasia-123",
		"confirmPassword": "beda-sendiri",
	}, "")
	svc.Signup(ctx)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupRejectsDuplicateUsername(t *testing.T) {
	admins := newFakeAdminRepo()
	seedAdminWithPassword(t, admins, "admin-aaa111", "budi", "apapun-123")
	svc := NewAuthService(admins)

	ctx, w := jsonRequest(t, http.MethodPost, gin.H{
		"name":            "Budi Kedua",
		"username":        "budi",
		"password":        "rahasia-123",
		"confirmPassword": "rahasia-123",
	}, "")
	svc.Signup(ctx)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLoginIssuesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	admins := newFakeAdminRepo()
	seedAdminWithPassword(t, admins, "admin-aaa111", "budi", "rahasia-123")
	svc := NewAuthService(admins)

	ctx, w := jsonRequest(t, http.MethodPost, gin.H{
		"username": "budi",
		"password": "rahasia-123",
	}, "")
	svc.Login(ctx)

	resp := decodeEnvelope(t, w)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "admin-aaa111", data["adminId"])
}

func TestLoginWrongPasswordIs401(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	admins := newFakeAdminRepo()
	seedAdminWithPassword(t, admins, "admin-aaa111", "budi", "rahasia-123")
	svc := NewAuthService(admins)

	ctx, w := jsonRequest(t, http.MethodPost, gin.H{
		"username": "budi",
		"password": "salah-total",
	}, "")
	svc.Login(ctx)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownUsernameIs401(t *testing.T) {
	svc := NewAuthService(newFakeAdminRepo())

	ctx, w := jsonRequest(t, http.MethodPost, gin.H{
		"username": "nggak-ada",
		"password": "apa-saja",
	}, "")
	svc.Login(ctx)
	// Username salah dan password salah tidak boleh bisa dibedakan dari respon.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResetPasswordVerifiesOldPassword(t *testing.T) {
	admins := newFakeAdminRepo()
	seedAdminWithPassword(t, admins, "admin-aaa111", "budi", "lama-123456")
	svc := NewAuthService(admins)

	// Password lama salah → 401, hash tidak berubah.
	ctx, w := jsonRequest(t, http.MethodPut, gin.H{
		"oldPassword": "bukan-itu",
		"newPassword": "baru-123456",
	}, "admin-aaa111")
	svc.ResetPassword(ctx)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Password lama benar → 200, hash baru tersimpan.
	ctx, w = jsonRequest(t, http.MethodPut, gin.H{
		"oldPassword": "lama-123456",
		"newPassword": "baru-123456",
	}, "admin-aaa111")
	svc.ResetPassword(ctx)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := admins.FindByAdminID("admin-aaa111")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("baru-123456")))
}

func TestGetAdminsHidesPasswordHash(t *testing.T) {
	admins := newFakeAdminRepo()
	seedAdminWithPassword(t, admins, "admin-aaa111", "budi", "rahasia-123")
	svc := NewAuthService(admins)

	ctx, w := jsonRequest(t, http.MethodGet, nil, "admin-aaa111")
	svc.GetAdmins(ctx)

	resp := decodeEnvelope(t, w)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	list := resp.Data.([]interface{})
	require.Len(t, list, 1)
	entry := list[0].(map[string]interface{})
	assert.Equal(t, "budi", entry["username"])
	assert.NotContains(t, entry, "passwordHash")
}

func TestDeleteAdmin(t *testing.T) {
	admins := newFakeAdminRepo("admin-aaa111", "admin-bbb222")
	svc := NewAuthService(admins)

	ctx, w := jsonRequest(t, http.MethodDelete, nil, "admin-aaa111",
		gin.Param{Key: "adminId", Value: "admin-bbb222"})
	svc.DeleteAdmin(ctx)
	require.Equal(t, http.StatusOK, w.Code)

	ok, _ := admins.ExistsByAdminID("admin-bbb222")
	assert.False(t, ok)
}

func TestDeleteAdminUnknownTargetIs404(t *testing.T) {
	svc := NewAuthService(newFakeAdminRepo("admin-aaa111"))

	ctx, w := jsonRequest(t, http.MethodDelete, nil, "admin-aaa111",
		gin.Param{Key: "adminId", Value: "admin-zzz999"})
	svc.DeleteAdmin(ctx)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
