package rbac

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockService struct{}

func (m *mockService) Enforce(req EnforceRequest) (bool, error) {
	return req.Role == RoleHR && req.Resource == "payroll" && req.Action == "read", nil
}

func (m *mockService) Authorize(role, resource, action string) (bool, error) {
	return m.Enforce(EnforceRequest{Role: role, Resource: resource, Action: action})
}

func (m *mockService) PermissionsForRole(role string) ([]PermissionResponse, error) {
	return []PermissionResponse{{Resource: "payroll", Action: "read"}}, nil
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(&mockService{})

	router := gin.New()
	router.POST("/rbac/enforce", func(c *gin.Context) {
		c.Set("role", RoleHR)
		c.Next()
	}, handler.Enforce)

	jsonBody, _ := json.Marshal(EnforceRequest{Resource: "payroll", Action: "read"})
	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Ok   bool            `json:"ok"`
		Data EnforceResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Ok)
	assert.True(t, env.Data.Allowed)
}

func TestHandler_Enforce_ValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(&mockService{})
	router := gin.New()
	router.POST("/rbac/enforce", handler.Enforce)

	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"resource":"payroll"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
