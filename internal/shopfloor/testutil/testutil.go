package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitfantasy/nimo-shopfloor/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const JWTSecret = "nimo-shopfloor-jwt-secret-key-2025"

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group with JWT auth middleware for testing
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken creates a valid JWT token for testing
func GenerateTestToken(userID, name, email string, roles []string) string {
	if roles == nil {
		roles = []string{}
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"uid":   userID,
		"name":  name,
		"email": email,
		"roles": roles,
		"iss":   "nimo-shopfloor",
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
		"jti":   fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DefaultTestToken returns a token for a default operator test user
func DefaultTestToken() string {
	return GenerateTestToken(
		"test-user-001",
		"Test Operator",
		"operator@test.com",
		[]string{"shopfloor_operator"},
	)
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// WriteFile writes one data file into the test directory
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// SeedDataDir creates a temp data directory with the four required CSV sources.
// Fixture: assembly ASM-1 consumes 2x P-1 and 1x P-2 per unit.
func SeedDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	WriteFile(t, dir, "assemblies.csv",
		"assembly_sku,name,uom\n"+
			"ASM-1,Panel Type A,ea\n")
	WriteFile(t, dir, "parts.csv",
		"part_sku,name,uom\n"+
			"P-1,Bracket,ea\n"+
			"P-2,Rail,ft\n")
	WriteFile(t, dir, "bom_items.csv",
		"parent_assembly_sku,component_sku,qty_per,scrap_rate,yield_pct,is_phantom\n"+
			"ASM-1,P-1,2,0,1,false\n"+
			"ASM-1,P-2,1,0,1,false\n")
	WriteFile(t, dir, "stock.csv",
		"sku,on_hand_qty,reserved_qty\n"+
			"P-1,10,0\n"+
			"P-2,3,0\n")

	return dir
}

// SeedMainInventory writes the main_inventory.csv source into dir
func SeedMainInventory(t *testing.T, dir string) {
	t.Helper()
	WriteFile(t, dir, "main_inventory.csv",
		"sku,name,uom,on_hand_qty,reserved_qty,available_qty,reorder_point,supplier\n"+
			"P-1,Bracket,ea,10,2,999,5,Acme Metals\n"+
			"P-2,Rail,ft,3,0,,,\n")
}
