package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeHandlerListsAllClasses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewGradeHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/grades", nil)
	c.Request = req

	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var grades []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grades))
	assert.Len(t, grades, 13)
	assert.Contains(t, grades, "Form 1A")
	assert.Contains(t, grades, "Grade 7B")
}
