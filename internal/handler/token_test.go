package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maintenance-system/maintenance-service/internal/auth"
	"github.com/maintenance-system/maintenance-service/internal/errs"
	"github.com/maintenance-system/maintenance-service/internal/handler"
	"github.com/maintenance-system/maintenance-service/internal/model"
)

type stubUsers struct {
	users map[string]string // username -> password
	roles map[string]model.Role
}

func (s *stubUsers) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	if pw, ok := s.users[username]; !ok || pw != password {
		return nil, errs.ErrInvalidCredentials
	}
	return &model.User{ID: 1, Username: username, Role: s.roles[username]}, nil
}

func tokenRouter(t *testing.T) (http.Handler, *auth.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := auth.NewManager("test-secret", time.Hour, time.Hour)
	users := &stubUsers{
		users: map[string]string{"manutencao": "segredo"},
		roles: map[string]model.Role{"manutencao": model.RoleMaintenance},
	}
	th := handler.NewTokenHandler(users, tokens)
	r := gin.New()
	r.POST("/api/token/", th.Obtain)
	r.POST("/api/token/refresh/", th.Refresh)
	return r, tokens
}

func postJSON(t *testing.T, r http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestObtainToken(t *testing.T) {
	r, tokens := tokenRouter(t)

	w := postJSON(t, r, "/api/token/", map[string]string{"username": "manutencao", "password": "segredo"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &pair); err != nil {
		t.Fatalf("decode pair: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatal("both tokens must be present")
	}
	claims, err := tokens.VerifyAccess(pair.Access)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if claims.Role != model.RoleMaintenance {
		t.Errorf("role claim = %q", claims.Role)
	}
}

func TestObtainTokenRejected(t *testing.T) {
	r, _ := tokenRouter(t)

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{name: "senha errada", body: map[string]string{"username": "manutencao", "password": "errada"}, wantStatus: http.StatusUnauthorized},
		{name: "usuário desconhecido", body: map[string]string{"username": "ninguem", "password": "x"}, wantStatus: http.StatusUnauthorized},
		{name: "corpo incompleto", body: map[string]string{"username": "manutencao"}, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, r, "/api/token/", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var payload struct {
				Detail string `json:"detail"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil || payload.Detail == "" {
				t.Errorf("error body must carry detail, got %s", w.Body.String())
			}
		})
	}
}

func TestRefreshToken(t *testing.T) {
	r, tokens := tokenRouter(t)

	w := postJSON(t, r, "/api/token/", map[string]string{"username": "manutencao", "password": "segredo"})
	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &pair); err != nil {
		t.Fatalf("decode pair: %v", err)
	}

	w = postJSON(t, r, "/api/token/refresh/", map[string]string{"refresh": pair.Refresh})
	if w.Code != http.StatusOK {
		t.Fatalf("refresh: status = %d, body %s", w.Code, w.Body.String())
	}
	var refreshed struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &refreshed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := tokens.VerifyAccess(refreshed.Access); err != nil {
		t.Errorf("refreshed access token invalid: %v", err)
	}

	// access token is not accepted as refresh
	w = postJSON(t, r, "/api/token/refresh/", map[string]string{"refresh": pair.Access})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("refresh with access token: status = %d", w.Code)
	}
}
