package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// fakeToken builds an unsigned JWT-shaped token whose payload carries
// the identity claims the session decodes.
func fakeToken(t *testing.T, role Role) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]interface{}{
		"user_id":  1,
		"username": "tester",
		"role":     role,
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".signature"
}

func tempCredsPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "credentials.json")
}

func newTestClient(t *testing.T, srv *httptest.Server) (*Client, string) {
	t.Helper()
	path := tempCredsPath(t)
	return New(srv.URL, NewSession(path)), path
}

func TestLoginPersistsCredentialAndDecodesRole(t *testing.T) {
	access := ""
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/token/" {
			http.NotFound(w, r)
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "manutencao" || body["password"] != "segredo" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "No active account found with the given credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access": access, "refresh": "refresh-token"})
	}))
	defer srv.Close()
	access = fakeToken(t, RoleMaintenance)

	c, path := newTestClient(t, srv)
	identity, err := c.Login(context.Background(), "manutencao", "segredo")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if identity.Role != RoleMaintenance || identity.Username != "tester" {
		t.Errorf("identity = %+v", identity)
	}

	// the pair is persisted under the single storage key
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("credentials file: %v", err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil || creds.Access != access || creds.Refresh != "refresh-token" {
		t.Errorf("persisted credentials = %+v (err %v)", creds, err)
	}

	// identity survives a reload
	reloaded := NewSession(path)
	if got := reloaded.Identity(); got == nil || got.Role != RoleMaintenance {
		t.Errorf("reloaded identity = %+v", got)
	}
}

func TestLoginFailureLeavesNoCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "No active account found with the given credentials"})
	}))
	defer srv.Close()

	c, path := newTestClient(t, srv)
	_, err := c.Login(context.Background(), "manutencao", "errada")
	if err == nil {
		t.Fatal("Login must fail")
	}
	if err.Error() != "No active account found with the given credentials" {
		t.Errorf("error = %q, want the server detail verbatim", err.Error())
	}
	if c.Session().Identity() != nil {
		t.Error("failed login must not set an identity")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("failed login must not persist credentials")
	}
}

func TestLogoutAlwaysClears(t *testing.T) {
	access := fakeToken(t, RoleOperator)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"access": access, "refresh": "r"})
	}))
	defer srv.Close()

	c, path := newTestClient(t, srv)
	if _, err := c.Login(context.Background(), "solicitante", "x"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	c.Logout()
	if c.Session().Identity() != nil {
		t.Error("identity must be cleared")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("credentials file must be removed")
	}

	// logging out with no session is a no-op
	c.Logout()
}

func TestRequestsAttachBearerAndContentType(t *testing.T) {
	access := fakeToken(t, RoleMaintenance)
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewEncoder(w).Encode([]MaintenanceRequest{})
	}))
	defer srv.Close()

	path := tempCredsPath(t)
	sess := NewSession(path)
	if err := sess.store(Credentials{Access: access, Refresh: "r"}); err != nil {
		t.Fatalf("store: %v", err)
	}
	c := New(srv.URL, sess)
	if _, err := c.ListRequests(context.Background()); err != nil {
		t.Fatalf("ListRequests: %v", err)
	}
	if gotAuth != "Bearer "+access {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "detail do servidor", status: http.StatusNotFound, body: `{"detail":"Not found."}`, wantMsg: "Not found."},
		{name: "corpo não-JSON", status: http.StatusInternalServerError, body: "boom", wantMsg: "HTTP error, status=500"},
		{name: "JSON sem detail", status: http.StatusBadGateway, body: `{"oops":1}`, wantMsg: "HTTP error, status=502"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()
			c, _ := newTestClient(t, srv)
			_, err := c.ListRequests(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestCreateRequestLocalValidation(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(MaintenanceRequest{})
	}))
	defer srv.Close()
	c, _ := newTestClient(t, srv)

	tests := []struct {
		name string
		in   CreateRequestInput
	}{
		{name: "tudo vazio", in: CreateRequestInput{}},
		{name: "sem solicitante", in: CreateRequestInput{Department: "Linha1", MaintenanceType: "eletrica", EquipmentStatus: "inoperante", ProblemDescription: "x"}},
		{name: "sem descrição", in: CreateRequestInput{RequesterName: "Ana", Department: "Linha1", MaintenanceType: "eletrica", EquipmentStatus: "inoperante"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.CreateRequest(context.Background(), tt.in); err != ErrMissingFields {
				t.Errorf("error = %v, want ErrMissingFields", err)
			}
		})
	}
	if calls != 0 {
		t.Errorf("local validation failures must not reach the network, got %d calls", calls)
	}
}

func TestStartAndFinishGuards(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()
	c, _ := newTestClient(t, srv)
	ctx := context.Background()

	open := &MaintenanceRequest{ID: 1, Status: StatusOpen}
	inProgress := &MaintenanceRequest{ID: 2, Status: StatusInProgress}
	done := &MaintenanceRequest{ID: 3, Status: StatusDone}

	if err := c.StartRequest(ctx, open, ""); err != ErrStartNotAllowed {
		t.Errorf("start without technician: %v", err)
	}
	if err := c.StartRequest(ctx, inProgress, "Carlos"); err != ErrStartNotAllowed {
		t.Errorf("start on in-progress: %v", err)
	}
	if err := c.FinishRequest(ctx, open, "notas"); err != ErrFinishNotAllowed {
		t.Errorf("finish on open: %v", err)
	}
	if err := c.FinishRequest(ctx, inProgress, ""); err != ErrFinishNotAllowed {
		t.Errorf("finish without notes: %v", err)
	}
	if err := c.FinishRequest(ctx, done, "notas"); err != ErrFinishNotAllowed {
		t.Errorf("finish on done: %v", err)
	}
	if calls != 0 {
		t.Errorf("guard failures must not reach the network, got %d calls", calls)
	}
}

func TestStartReplacesLocalCopy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/maintenance-requests/1/start/" {
			http.NotFound(w, r)
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(MaintenanceRequest{
			ID:             1,
			Status:         StatusInProgress,
			TechnicianName: body["technician_name"],
		})
	}))
	defer srv.Close()
	c, _ := newTestClient(t, srv)

	m := &MaintenanceRequest{ID: 1, Status: StatusOpen}
	if err := c.StartRequest(context.Background(), m, "Carlos"); err != nil {
		t.Fatalf("StartRequest: %v", err)
	}
	if m.Status != StatusInProgress || m.TechnicianName != "Carlos" {
		t.Errorf("local copy not replaced by server response: %+v", m)
	}
	if m.CanStart() {
		t.Error("start must no longer be offered after the transition")
	}
	if !m.CanFinish() {
		t.Error("finish must be offered after start")
	}
}

func TestListEmptyIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()
	c, _ := newTestClient(t, srv)

	items, err := c.ListRequests(context.Background())
	if err != nil {
		t.Fatalf("ListRequests: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %v", items)
	}
}

func TestSessionIgnoresCorruptFile(t *testing.T) {
	path := tempCredsPath(t)
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := NewSession(path).Identity(); got != nil {
		t.Errorf("identity from corrupt file = %+v", got)
	}
}
