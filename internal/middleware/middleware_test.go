package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-supabase-jwt-secret"

func setSecret(t *testing.T) {
	t.Helper()
	original := os.Getenv("SUPABASE_JWT_SECRET")
	os.Setenv("SUPABASE_JWT_SECRET", testSecret)
	t.Cleanup(func() {
		if original != "" {
			os.Setenv("SUPABASE_JWT_SECRET", original)
		} else {
			os.Unsetenv("SUPABASE_JWT_SECRET")
		}
	})
}

func signedToken(t *testing.T, sub, email, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// TestAuthRequired_MissingAuthHeader tests the middleware with missing Authorization header
func TestAuthRequired_MissingAuthHeader(t *testing.T) {
	setSecret(t)

	router := gin.New()
	router.Use(AuthRequired())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

// TestAuthRequired_InvalidAuthFormat tests the middleware with invalid Bearer format
func TestAuthRequired_InvalidAuthFormat(t *testing.T) {
	setSecret(t)

	router := gin.New()
	router.Use(AuthRequired())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "InvalidFormat")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

// TestAuthRequired_InvalidToken tests the middleware with an invalid token
func TestAuthRequired_InvalidToken(t *testing.T) {
	setSecret(t)

	router := gin.New()
	router.Use(AuthRequired())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer invalid_token_xyz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

// TestAuthRequired_ValidToken verifies claims are attached to the context
func TestAuthRequired_ValidToken(t *testing.T) {
	setSecret(t)

	var gotUserID, gotEmail any

	router := gin.New()
	router.Use(AuthRequired())
	router.GET("/test", func(c *gin.Context) {
		gotUserID, _ = c.Get("userID")
		gotEmail, _ = c.Get("userEmail")
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-1", "user@example.com", "authenticated"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if gotUserID != "user-1" {
		t.Errorf("userID = %v, want user-1", gotUserID)
	}
	if gotEmail != "user@example.com" {
		t.Errorf("userEmail = %v, want user@example.com", gotEmail)
	}
}

// TestAuthOptional_Anonymous lets requests without a token straight through
func TestAuthOptional_Anonymous(t *testing.T) {
	setSecret(t)

	router := gin.New()
	router.Use(AuthOptional())
	router.GET("/test", func(c *gin.Context) {
		if _, exists := c.Get("userID"); exists {
			t.Errorf("userID should not be set for anonymous request")
		}
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

// TestRequireRole_Forbidden rejects tokens without an allowed role
func TestRequireRole_Forbidden(t *testing.T) {
	setSecret(t)

	router := gin.New()
	router.Use(AuthRequired(), RequireRole("admin"))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-1", "user@example.com", "authenticated"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

// TestRequireRole_Allowed admits an allowed role
func TestRequireRole_Allowed(t *testing.T) {
	setSecret(t)

	router := gin.New()
	router.Use(AuthRequired(), RequireRole("admin", "service_role"))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-1", "admin@example.com", "admin"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}
