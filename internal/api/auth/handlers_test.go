package auth

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tourdesk/internal/db"
	"tourdesk/internal/testutil"
)

func setupAuthTest(t *testing.T) *db.DB {
	t.Helper()

	database := testutil.NewTestDB(t)
	InitHandlers(database.Queries, "development")

	t.Cleanup(func() {
		queries = nil
		limiter = nil
	})

	return database
}

func seedUser(t *testing.T, database *db.DB, email, password string, isAdmin bool) db.User {
	t.Helper()

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := database.Queries.CreateUser(context.Background(), db.CreateUserParams{
		Email:        email,
		Name:         "Test User",
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestHandleLogin_Success(t *testing.T) {
	database := setupAuthTest(t)
	seedUser(t, database, "ops@example.com", "correct horse", false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"ops@example.com","password":"correct horse"}`))
	recorder := httptest.NewRecorder()

	HandleLogin(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status: %d", recorder.Code)
	}

	var resp loginResponse
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Email != "ops@example.com" {
		t.Fatalf("email: %q", resp.Email)
	}

	var sessionCookie *http.Cookie
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatalf("missing session cookie")
	}

	// The issued cookie resolves back to the user.
	verifyReq := httptest.NewRequest(http.MethodGet, "/", nil)
	verifyReq.AddCookie(sessionCookie)
	principal, err := VerifySession(httptest.NewRecorder(), verifyReq)
	if err != nil {
		t.Fatalf("verify session: %v", err)
	}
	if principal == nil || principal.Email != "ops@example.com" {
		t.Fatalf("principal: %+v", principal)
	}
}

func TestHandleLogin_BadPassword(t *testing.T) {
	database := setupAuthTest(t)
	seedUser(t, database, "ops@example.com", "correct horse", false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"ops@example.com","password":"wrong"}`))
	recorder := httptest.NewRecorder()

	HandleLogin(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status: %d", recorder.Code)
	}
}

func TestHandleLogin_UnknownUser(t *testing.T) {
	setupAuthTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"nobody@example.com","password":"whatever"}`))
	recorder := httptest.NewRecorder()

	HandleLogin(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status: %d", recorder.Code)
	}
}

func TestHandleLogin_MissingFields(t *testing.T) {
	setupAuthTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"","password":""}`))
	recorder := httptest.NewRecorder()

	HandleLogin(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", recorder.Code)
	}
}

func TestHandleLogout_InvalidatesSession(t *testing.T) {
	database := setupAuthTest(t)
	user := seedUser(t, database, "ops@example.com", "correct horse", false)

	loginRecorder := httptest.NewRecorder()
	if err := CreateSession(loginRecorder, user.ID); err != nil {
		t.Fatalf("create session: %v", err)
	}
	cookies := loginRecorder.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("no session cookie issued")
	}

	logoutReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	logoutReq.AddCookie(cookies[0])
	logoutRecorder := httptest.NewRecorder()

	HandleLogout(logoutRecorder, logoutReq)

	if logoutRecorder.Code != http.StatusNoContent {
		t.Fatalf("status: %d", logoutRecorder.Code)
	}

	verifyReq := httptest.NewRequest(http.MethodGet, "/", nil)
	verifyReq.AddCookie(cookies[0])
	principal, err := VerifySession(httptest.NewRecorder(), verifyReq)
	if err != nil {
		t.Fatalf("verify session: %v", err)
	}
	if principal != nil {
		t.Fatalf("session survived logout: %+v", principal)
	}
}

func TestVerifySession_NoCookie(t *testing.T) {
	setupAuthTest(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	principal, err := VerifySession(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("verify session: %v", err)
	}
	if principal != nil {
		t.Fatalf("expected nil principal, got %+v", principal)
	}
}
