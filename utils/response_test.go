package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildResponseSuccessFollowsStatus(t *testing.T) {
	assert.True(t, BuildResponse(http.StatusOK, "ok", nil).Success)
	assert.True(t, BuildResponse(http.StatusCreated, "ok", nil).Success)
	assert.False(t, BuildResponse(http.StatusBadRequest, "bad", nil).Success)
	assert.False(t, BuildResponse(http.StatusNotFound, "missing", nil).Success)
	assert.False(t, BuildResponse(http.StatusInternalServerError, "boom", nil).Success)
}

func TestRespondWritesEnvelopeAndStatusLine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	Respond(ctx, http.StatusNotFound, "Data tidak ditemukan", []string{})

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.False(t, resp.Success)
	assert.Equal(t, "Data tidak ditemukan", resp.Message)
	// Data list kosong tetap list, bukan null.
	assert.NotNil(t, resp.Data)
}
