package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/namanchauhanrajput/blogify/internal/app/store/passwordreset"
	userstore "github.com/namanchauhanrajput/blogify/internal/app/store/users"
	sysauth "github.com/namanchauhanrajput/blogify/internal/app/system/auth"
	"github.com/namanchauhanrajput/blogify/internal/app/system/indexes"
	"github.com/namanchauhanrajput/blogify/internal/testutil"
	"go.uber.org/zap"
)

// testEnv is one wired auth feature over a scratch database.
type testEnv struct {
	router   chi.Router
	lastCode string // captured by the fake code sender
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	if err := indexes.EnsureAll(context.Background(), db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	tokens, err := sysauth.NewManager("handler-test-secret-0123456789", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	env := &testEnv{}
	send := func(_ context.Context, _, code string) error {
		env.lastCode = code
		return nil
	}

	h := NewHandler(db, tokens, passwordreset.New(db, 0), send, zap.NewNop())
	mw := &sysauth.Middleware{Tokens: tokens, Fetcher: userstore.New(db), Log: zap.NewNop()}

	r := chi.NewRouter()
	r.Use(mw.LoadIdentity)
	r.Mount("/api/auth", Routes(h, mw))
	env.router = r
	return env
}

func (e *testEnv) postJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func registerBody(username, email string) map[string]string {
	return map[string]string{
		"name":     "Test " + username,
		"username": username,
		"email":    email,
		"password": "long-enough-password",
	}
}

func TestRegisterLoginAndResolveToken(t *testing.T) {
	env := setupEnv(t)

	rec := env.postJSON(t, "/api/auth/register", registerBody("walker", "walker@example.com"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", rec.Code, rec.Body)
	}
	var reg tokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&reg); err != nil {
		t.Fatal(err)
	}
	if reg.Token == "" || reg.User == nil || reg.User.Username != "walker" {
		t.Fatalf("register response = %+v", reg)
	}

	rec = env.postJSON(t, "/api/auth/login", map[string]string{
		"login":    "WALKER", // username lookup is case-insensitive
		"password": "long-enough-password",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body)
	}
	var login tokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&login); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/api/auth/user", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec2 := httptest.NewRecorder()
	env.router.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusOK {
		t.Fatalf("GET /user status = %d: %s", rec2.Code, rec2.Body)
	}
	var me userResponse
	if err := json.NewDecoder(rec2.Body).Decode(&me); err != nil {
		t.Fatal(err)
	}
	if me.User.ID != reg.User.ID {
		t.Error("token resolved to a different user")
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	env := setupEnv(t)
	cases := []map[string]string{
		{"name": "A", "username": "ok_name", "email": "a@example.com", "password": "short"},
		{"name": "A", "username": "x", "email": "a@example.com", "password": "long-enough-password"},
		{"name": "A", "username": "ok_name", "email": "not-an-email", "password": "long-enough-password"},
		{"name": "", "username": "ok_name", "email": "a@example.com", "password": "long-enough-password"},
	}
	for i, body := range cases {
		if rec := env.postJSON(t, "/api/auth/register", body); rec.Code != http.StatusBadRequest {
			t.Errorf("case %d: status = %d, want 400", i, rec.Code)
		}
	}
}

func TestRegisterConflicts(t *testing.T) {
	env := setupEnv(t)

	if rec := env.postJSON(t, "/api/auth/register", registerBody("dupe", "dupe@example.com")); rec.Code != http.StatusCreated {
		t.Fatalf("first register: %d", rec.Code)
	}
	if rec := env.postJSON(t, "/api/auth/register", registerBody("DUPE", "other@example.com")); rec.Code != http.StatusConflict {
		t.Errorf("duplicate username status = %d, want 409", rec.Code)
	}
	if rec := env.postJSON(t, "/api/auth/register", registerBody("someone", "dupe@example.com")); rec.Code != http.StatusConflict {
		t.Errorf("duplicate email status = %d, want 409", rec.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupEnv(t)
	env.postJSON(t, "/api/auth/register", registerBody("victim", "victim@example.com"))

	rec := env.postJSON(t, "/api/auth/login", map[string]string{
		"login": "victim", "password": "wrong-password-entirely",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	// Unknown accounts answer identically to bad passwords.
	rec = env.postJSON(t, "/api/auth/login", map[string]string{
		"login": "ghost", "password": "wrong-password-entirely",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown account status = %d, want 401", rec.Code)
	}
}

func TestUserRequiresToken(t *testing.T) {
	env := setupEnv(t)
	req := httptest.NewRequest("GET", "/api/auth/user", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	env := setupEnv(t)
	env.postJSON(t, "/api/auth/register", registerBody("amnesiac", "amnesiac@example.com"))

	rec := env.postJSON(t, "/api/auth/forget-password", map[string]string{"email": "amnesiac@example.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("forget-password status = %d", rec.Code)
	}
	if len(env.lastCode) != passwordreset.CodeLength {
		t.Fatalf("sender got code %q", env.lastCode)
	}

	// Unknown email gets the same shape, and no code goes out.
	env.lastCode = ""
	rec = env.postJSON(t, "/api/auth/forget-password", map[string]string{"email": "ghost@example.com"})
	if rec.Code != http.StatusOK {
		t.Errorf("forget-password for unknown email = %d, want identical 200", rec.Code)
	}
	if env.lastCode != "" {
		t.Error("a code was issued for an unregistered email")
	}

	// Issue a fresh code and complete the reset.
	env.postJSON(t, "/api/auth/forget-password", map[string]string{"email": "amnesiac@example.com"})
	code := env.lastCode

	rec = env.postJSON(t, "/api/auth/reset-password", map[string]string{
		"email": "amnesiac@example.com", "code": code, "new_password": "brand-new-password",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("reset-password status = %d: %s", rec.Code, rec.Body)
	}

	// Old password dead, new one works.
	rec = env.postJSON(t, "/api/auth/login", map[string]string{
		"login": "amnesiac", "password": "long-enough-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("old password still accepted: %d", rec.Code)
	}
	rec = env.postJSON(t, "/api/auth/login", map[string]string{
		"login": "amnesiac", "password": "brand-new-password",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("new password rejected: %d", rec.Code)
	}

	// The consumed code cannot be replayed.
	rec = env.postJSON(t, "/api/auth/reset-password", map[string]string{
		"email": "amnesiac@example.com", "code": code, "new_password": "yet-another-password",
	})
	if rec.Code == http.StatusOK {
		t.Error("consumed reset code was accepted again")
	}
}

func TestResetPasswordBadCode(t *testing.T) {
	env := setupEnv(t)
	env.postJSON(t, "/api/auth/register", registerBody("careful", "careful@example.com"))
	env.postJSON(t, "/api/auth/forget-password", map[string]string{"email": "careful@example.com"})

	wrong := "000000"
	if wrong == env.lastCode {
		wrong = "000001"
	}
	rec := env.postJSON(t, "/api/auth/reset-password", map[string]string{
		"email": "careful@example.com", "code": wrong, "new_password": "brand-new-password",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a wrong code", rec.Code)
	}
}
