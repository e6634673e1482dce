package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/baechuer/inventory-service/internal/application/auth"
	"github.com/baechuer/inventory-service/internal/application/product"
	"github.com/baechuer/inventory-service/internal/infrastructure/googleauth"
	"github.com/baechuer/inventory-service/internal/infrastructure/memory"
	"github.com/baechuer/inventory-service/internal/infrastructure/security"
	http_handlers "github.com/baechuer/inventory-service/internal/transport/http/handlers"
	"github.com/baechuer/inventory-service/internal/transport/http/middleware"
	"github.com/baechuer/inventory-service/internal/transport/http/response"
)

// newTestServer wires the full HTTP surface against in-memory stores, the
// real JWT signer and the real auth middleware. googleEndpoint may be empty.
func newTestServer(t *testing.T, googleEndpoint string) http.Handler {
	t.Helper()

	users := memory.NewUserRepo()
	products := memory.NewProductRepo()
	signer := security.NewJWTSigner("router-test-secret", "inventory-test")

	var verifier auth.GoogleVerifier
	if googleEndpoint != "" {
		verifier = googleauth.NewVerifier("test-client-id").WithEndpoint(googleEndpoint)
	}

	authSvc := auth.NewService(
		users,
		security.NewBcryptHasher(4),
		signer,
		verifier,
		memory.NewNoopPublisher(),
		auth.Config{SessionTTL: time.Hour},
	)
	productSvc := product.NewService(products)

	h, err := New(Deps{
		Health:  http_handlers.NewHealthHandler(nil),
		Auth:    http_handlers.NewAuthHandler(authSvc),
		Product: http_handlers.NewProductHandler(productSvc),
		AuthMW:  middleware.Auth(signer, users, response.WriteError),
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return h
}

func doJSON(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func dataField(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var env struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, rr.Body.String())
	}
	return env.Data
}

func TestRouter_RegisterLoginMe_RoundTrip(t *testing.T) {
	h := newTestServer(t, "")

	rr := doJSON(t, h, http.MethodPost, "/api/auth/register", "",
		`{"email":"flow@example.com","password":"pw123456","name":"Flow"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, h, http.MethodPost, "/api/auth/login", "",
		`{"email":"flow@example.com","password":"pw123456"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	token, _ := dataField(t, rr)["token"].(string)
	if token == "" {
		t.Fatalf("expected token in login response")
	}

	rr = doJSON(t, h, http.MethodGet, "/api/auth/me", token, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if email := dataField(t, rr)["email"]; email != "flow@example.com" {
		t.Fatalf("me: unexpected email %v", email)
	}
}

func TestRouter_Me_NoToken_Returns401(t *testing.T) {
	h := newTestServer(t, "")

	rr := doJSON(t, h, http.MethodGet, "/api/auth/me", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestRouter_Me_GarbageToken_Returns401(t *testing.T) {
	h := newTestServer(t, "")

	rr := doJSON(t, h, http.MethodGet, "/api/auth/me", "not-a-jwt", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestRouter_Products_RequireAuth(t *testing.T) {
	h := newTestServer(t, "")

	rr := doJSON(t, h, http.MethodGet, "/api/products", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestRouter_ProductLifecycle(t *testing.T) {
	h := newTestServer(t, "")

	rr := doJSON(t, h, http.MethodPost, "/api/auth/register", "",
		`{"email":"seller@example.com","password":"pw123456","name":"Seller"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: got %d", rr.Code)
	}
	token, _ := dataField(t, rr)["token"].(string)

	rr = doJSON(t, h, http.MethodPost, "/api/products", token,
		`{"name":"Lamp","price":25.5,"quantity":3,"category":"lighting"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	id, _ := dataField(t, rr)["id"].(string)
	if id == "" {
		t.Fatalf("expected product id")
	}

	rr = doJSON(t, h, http.MethodGet, "/api/products/"+id, token, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rr.Code)
	}

	rr = doJSON(t, h, http.MethodPut, "/api/products/"+id, token, `{"quantity":10}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if q := dataField(t, rr)["quantity"]; q != float64(10) {
		t.Fatalf("expected quantity 10, got %v", q)
	}

	rr = doJSON(t, h, http.MethodDelete, "/api/products/"+id, token, "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rr.Code)
	}

	rr = doJSON(t, h, http.MethodGet, "/api/products/"+id, token, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", rr.Code)
	}
}

func TestRouter_ProductOwnership_AcrossUsers(t *testing.T) {
	h := newTestServer(t, "")

	rr := doJSON(t, h, http.MethodPost, "/api/auth/register", "",
		`{"email":"owner@example.com","password":"pw123456","name":"Owner"}`)
	ownerTok, _ := dataField(t, rr)["token"].(string)

	rr = doJSON(t, h, http.MethodPost, "/api/auth/register", "",
		`{"email":"intruder@example.com","password":"pw123456","name":"Intruder"}`)
	otherTok, _ := dataField(t, rr)["token"].(string)

	rr = doJSON(t, h, http.MethodPost, "/api/products", ownerTok,
		`{"name":"Safe","price":1,"quantity":1}`)
	id, _ := dataField(t, rr)["id"].(string)

	rr = doJSON(t, h, http.MethodPut, "/api/products/"+id, otherTok, `{"name":"Stolen"}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, h, http.MethodDelete, "/api/products/"+id, otherTok, "")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}

	// Everyone sees the listing, only the owner can read by id.
	rr = doJSON(t, h, http.MethodGet, "/api/products/"+id, otherTok, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestRouter_GoogleLogin_UnknownEmail_ReturnsRegistrationHint(t *testing.T) {
	tokeninfo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"aud": "test-client-id",
			"sub": "google-sub-1",
			"email": "newcomer@example.com",
			"email_verified": "true",
			"name": "New Comer",
			"exp": "`+fmt.Sprint(time.Now().Add(time.Hour).Unix())+`"
		}`)
	}))
	defer tokeninfo.Close()

	h := newTestServer(t, tokeninfo.URL)

	rr := doJSON(t, h, http.MethodPost, "/api/auth/google", "", `{"credential":"fake-id-token"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}

	var body struct {
		Error struct {
			Code string            `json:"code"`
			Meta map[string]string `json:"meta"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "registration_required" {
		t.Fatalf("expected registration_required, got %q", body.Error.Code)
	}
	if body.Error.Meta["email"] != "newcomer@example.com" || body.Error.Meta["name"] != "New Comer" {
		t.Fatalf("expected prefill hint, got %+v", body.Error.Meta)
	}
}

func TestRouter_GoogleLogin_ExistingAccount_IssuesSession(t *testing.T) {
	tokeninfo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"aud": "test-client-id",
			"sub": "google-sub-2",
			"email": "linked@example.com",
			"email_verified": "true",
			"name": "Linked",
			"exp": "`+fmt.Sprint(time.Now().Add(time.Hour).Unix())+`"
		}`)
	}))
	defer tokeninfo.Close()

	h := newTestServer(t, tokeninfo.URL)

	rr := doJSON(t, h, http.MethodPost, "/api/auth/register", "",
		`{"email":"linked@example.com","password":"pw123456","name":"Linked"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: got %d", rr.Code)
	}

	rr = doJSON(t, h, http.MethodPost, "/api/auth/google", "", `{"credential":"fake-id-token"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("google: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	token, _ := dataField(t, rr)["token"].(string)
	if token == "" {
		t.Fatalf("expected session token")
	}

	rr = doJSON(t, h, http.MethodGet, "/api/auth/me", token, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("me after google: expected 200, got %d", rr.Code)
	}
}

func TestRouter_Healthz(t *testing.T) {
	h := newTestServer(t, "")

	rr := doJSON(t, h, http.MethodGet, "/healthz", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestRouter_Metrics_Exposed(t *testing.T) {
	h := newTestServer(t, "")

	// Generate at least one sample before scraping.
	doJSON(t, h, http.MethodGet, "/healthz", "", "")

	rr := doJSON(t, h, http.MethodGet, "/metrics", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "inventory_service_http_requests_total") {
		t.Fatalf("expected service metrics in output")
	}
}
