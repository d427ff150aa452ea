package middleware

import (
	"net/http"
	"strings"

	"school-cms-backend/utils"

	"github.com/gin-gonic/gin"
)

// Key context yang di-set middleware ini dan dibaca service.
const (
	CtxAdminID  = "adminID"
	CtxName     = "name"
	CtxUsername = "username"
)

// AuthMiddleware memvalidasi JWT dari header Authorization (Bearer token)
// dan menyimpan identitas admin (adminID, name, username) ke dalam context.
// Kebijakan satu pintu: header hilang, token kosong, token invalid, maupun
// token expired SEMUA dijawab 401 (tidak ada varian 400).
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Ambil header Authorization
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			utils.Respond(c, http.StatusUnauthorized, "Authorization token dibutuhkan", nil)
			c.Abort()
			return
		}

		// Ambil token string dan trim spasi sisa
		tokenString := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenString == "" {
			utils.Respond(c, http.StatusUnauthorized, "Authorization token dibutuhkan", nil)
			c.Abort()
			return
		}

		// Validasi token (signature + expiry) lewat utils
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.Respond(c, http.StatusUnauthorized, "Token tidak valid atau sudah kadaluarsa", nil)
			c.Abort()
			return
		}

		// Inject identitas admin ke context untuk dipakai di service
		c.Set(CtxAdminID, claims.AdminID)
		c.Set(CtxName, claims.Name)
		c.Set(CtxUsername, claims.Username)

		c.Next()
	}
}

// AdminIDFromContext membaca adminID yang di-set AuthMiddleware.
// Kosong berarti request tidak lewat middleware (salah wiring route).
func AdminIDFromContext(c *gin.Context) string {
	v, _ := c.Get(CtxAdminID)
	id, _ := v.(string)
	return id
}
