package utils

import (
	"github.com/gin-gonic/gin"
)

// APIResponse adalah format standar JSON yang akan diterima Frontend.
// Semua endpoint (sukses maupun gagal) memakai bentuk yang sama:
// { "data": ..., "success": true/false, "status": 200, "message": "..." }
// Kode HTTP di status line selalu sama dengan field "status" di body.
type APIResponse struct {
	Data    interface{} `json:"data"`
	Success bool        `json:"success"`
	Status  int         `json:"status"`
	Message string      `json:"message"`
}

// BuildResponse membangun envelope standar.
// Success otomatis true kalau status < 400, jadi tidak mungkin
// ada respon "sukses" yang membawa kode error (atau sebaliknya).
func BuildResponse(status int, message string, data interface{}) APIResponse {
	return APIResponse{
		Data:    data,
		Success: status < 400,
		Status:  status,
		Message: message,
	}
}

// Respond menulis envelope sekaligus men-set kode HTTP-nya.
// Semua service wajib lewat sini supaya status line dan body tidak pernah beda.
func Respond(ctx *gin.Context, status int, message string, data interface{}) {
	ctx.JSON(status, BuildResponse(status, message, data))
}
