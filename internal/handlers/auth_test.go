package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inventariolab/inventario/internal/demo"
	"github.com/inventariolab/inventario/internal/models"
)

func newAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	users, err := demo.NewUsers()
	if err != nil {
		t.Fatalf("demo.NewUsers: %v", err)
	}
	return &AuthHandler{Users: users, Secret: []byte("test-secret"), ExpireHours: 1}
}

func TestAuthHandler_Login(t *testing.T) {
	h := newAuthHandler(t)

	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "admin123"})
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", rr.Code, rr.Body)
	}

	var out struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.User.Username != "admin" || out.User.Role != models.RoleAdmin {
		t.Errorf("unexpected user: %+v", out.User)
	}

	tok, err := jwt.Parse(out.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["username"] != "admin" || claims["role"] != models.RoleAdmin {
		t.Errorf("unexpected claims: %v", claims)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := newAuthHandler(t)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"unknown user", "ghost", "admin123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(map[string]string{"username": tc.username, "password": tc.password})
			req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			h.Login(rr, req)
			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want 401", rr.Code)
			}
			var out map[string]string
			if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if out["error"] != "invalid credentials" {
				t.Errorf("error message: got %q", out["error"])
			}
		})
	}
}

func TestAuthHandler_Register(t *testing.T) {
	h := newAuthHandler(t)

	body, _ := json.Marshal(map[string]string{"username": "nuevo", "password": "secreto1"})
	req := httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Register(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (%s)", rr.Code, rr.Body)
	}
	var user models.User
	if err := json.NewDecoder(rr.Body).Decode(&user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.Role != models.RoleInventory || user.Username != "nuevo" {
		t.Errorf("unexpected user: %+v", user)
	}

	// Duplicate registration conflicts.
	req = httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body))
	rr = httptest.NewRecorder()
	h.Register(rr, req)
	if rr.Code != http.StatusConflict {
		t.Errorf("duplicate status: got %d, want 409", rr.Code)
	}
}
