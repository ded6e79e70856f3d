package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "github.com/capoo/capoo/api/http"
	"github.com/capoo/capoo/api/http/handlers"
	"github.com/capoo/capoo/pkg/auth"
	"github.com/capoo/capoo/pkg/health"
	"github.com/capoo/capoo/pkg/repository/memory"
	"github.com/capoo/capoo/pkg/security/jwt"
)

const (
	testSecret = "test-secret"
	testIssuer = "capoo-test"
)

func newTestApp(t *testing.T) (*fiber.App, *jwt.Verifier) {
	t.Helper()
	gen := jwt.NewGenerator(testSecret, testIssuer, time.Hour)
	verifier := jwt.NewVerifier(testSecret, testIssuer)
	svc := auth.NewService(memory.NewUserRepository(), memory.NewRefreshTokenRepository(), gen, 24*time.Hour)

	app := fiber.New()
	httpapi.Register(app,
		handlers.NewAuthHandler(svc),
		handlers.NewProfileHandler(svc),
		handlers.NewHealthHandler(health.NewService()),
		jwt.NewAuthMiddleware(verifier),
	)
	return app, verifier
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) (*http.Response, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func register(t *testing.T, app *fiber.App, email, password, name string) map[string]any {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/users/register", "", fiber.Map{
		"email": email, "password": password, "name": name,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var user map[string]any
	require.NoError(t, json.Unmarshal(body, &user))
	return user
}

func login(t *testing.T, app *fiber.App, email, password string) map[string]any {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/users/login", "", fiber.Map{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var tokens map[string]any
	require.NoError(t, json.Unmarshal(body, &tokens))
	return tokens
}

func TestRegister_PublicProjection(t *testing.T) {
	app, _ := newTestApp(t)

	user := register(t, app, "a@x.com", "secret1", "Ann")

	assert.NotEmpty(t, user["id"])
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, false, user["isVerified"])
	assert.NotContains(t, user, "passwordHash")
	assert.NotContains(t, user, "password")
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "a@x.com", "secret12", "Ann")

	resp, body := doJSON(t, app, "POST", "/users/register", "", fiber.Map{
		"email": "a@x.com", "password": "other-secret",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Email already registered"}`, string(body))
}

func TestRegister_BadInput(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name    string
		payload fiber.Map
	}{
		{"missing email", fiber.Map{"password": "secret12"}},
		{"missing password", fiber.Map{"email": "a@x.com"}},
		{"malformed email", fiber.Map{"email": "nope", "password": "secret12"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, app, "POST", "/users/register", "", tt.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestLogin_TokenSubject(t *testing.T) {
	app, verifier := newTestApp(t)
	user := register(t, app, "a@x.com", "secret12", "Ann")

	tokens := login(t, app, "a@x.com", "secret12")
	access, _ := tokens["accessToken"].(string)
	require.NotEmpty(t, access)
	assert.NotEmpty(t, tokens["refreshToken"])
	assert.Equal(t, float64(3600), tokens["expiresIn"])

	claims, err := verifier.Verify(access)
	require.NoError(t, err)
	assert.Equal(t, user["id"], claims.Subject)
}

func TestLogin_UniformUnauthorized(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "a@x.com", "secret12", "Ann")

	wrongResp, wrongBody := doJSON(t, app, "POST", "/users/login", "", fiber.Map{
		"email": "a@x.com", "password": "wrong-password",
	})
	ghostResp, ghostBody := doJSON(t, app, "POST", "/users/login", "", fiber.Map{
		"email": "ghost@x.com", "password": "secret12",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongResp.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, ghostResp.StatusCode)
	// Identical outcome for both causes, down to the bytes.
	assert.Equal(t, string(wrongBody), string(ghostBody))
	assert.JSONEq(t, `{"message":"Invalid credentials"}`, string(wrongBody))
}

func TestMe_RequiresToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, "GET", "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMe_ReturnsProfile(t *testing.T) {
	app, _ := newTestApp(t)
	user := register(t, app, "a@x.com", "secret12", "Ann")
	tokens := login(t, app, "a@x.com", "secret12")
	access := tokens["accessToken"].(string)

	resp, body := doJSON(t, app, "GET", "/users/me", access, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile map[string]any
	require.NoError(t, json.Unmarshal(body, &profile))
	assert.Equal(t, user["id"], profile["id"])
	assert.Equal(t, "a@x.com", profile["email"])
	assert.NotContains(t, profile, "passwordHash")
}

func TestUpdateMe_PatchSemantics(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "a@x.com", "secret12", "Ann")
	tokens := login(t, app, "a@x.com", "secret12")
	access := tokens["accessToken"].(string)

	resp, body := doJSON(t, app, "PATCH", "/users/me", access, fiber.Map{"name": "New Name"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var updated map[string]any
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "New Name", updated["name"])
	assert.Equal(t, "a@x.com", updated["email"], "email survives a name patch")

	// Applying the same patch again yields the same profile fields.
	resp, body = doJSON(t, app, "PATCH", "/users/me", access, fiber.Map{"name": "New Name"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var again map[string]any
	require.NoError(t, json.Unmarshal(body, &again))
	assert.Equal(t, updated["name"], again["name"])
	assert.Equal(t, updated["email"], again["email"])
}

func TestRefresh_Endpoint(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "a@x.com", "secret12", "Ann")
	tokens := login(t, app, "a@x.com", "secret12")
	refresh := tokens["refreshToken"].(string)

	resp, body := doJSON(t, app, "POST", "/users/refresh", "", fiber.Map{"refreshToken": refresh})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var rotated map[string]any
	require.NoError(t, json.Unmarshal(body, &rotated))
	assert.NotEmpty(t, rotated["accessToken"])
	assert.NotEqual(t, refresh, rotated["refreshToken"])

	// The old token was retired by the rotation.
	resp, _ = doJSON(t, app, "POST", "/users/refresh", "", fiber.Map{"refreshToken": refresh})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/ready", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
