package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/RhodP10/Lost-And-Found/internal/auth"
	"github.com/RhodP10/Lost-And-Found/internal/db"
	"github.com/RhodP10/Lost-And-Found/internal/model"
	"github.com/RhodP10/Lost-And-Found/internal/store"
	"github.com/RhodP10/Lost-And-Found/internal/uploads"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	database := db.NewTestDB(t)
	uploadStore, err := uploads.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("creating upload store: %v", err)
	}
	router := NewRouter(database, testJWTSecret, uploadStore)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	// Create admin user with a grant.
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	user, err := store.CreateUser(ctx, database, "admin@localhost", "admin", string(hash), "Admin")
	if err != nil {
		t.Fatalf("creating admin user: %v", err)
	}
	if err := store.AddAdmin(ctx, database, user.ID, "admin", `{"all":true}`); err != nil {
		t.Fatalf("granting admin: %v", err)
	}

	// Get token.
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "password"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp loginResponse
	json.NewDecoder(resp.Body).Decode(&loginResp)
	if loginResp.Token == "" {
		t.Fatal("empty token from login")
	}

	return server, loginResp.Token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func createItemViaAPI(t *testing.T, server *httptest.Server, token, status string) model.Item {
	t.Helper()
	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]string{
		"title":          "Black Umbrella",
		"description":    "Left near the library entrance",
		"category":       "Other",
		"status":         status,
		"location":       "Library",
		"reporter_name":  "Front Desk",
		"reporter_email": "desk@campus.edu",
	})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 creating item, got %d", resp.StatusCode)
	}
	var item model.Item
	json.NewDecoder(resp.Body).Decode(&item)
	return item
}

func submitClaimViaAPI(t *testing.T, server *httptest.Server, itemID int64, name, email string) model.Claim {
	t.Helper()
	body, _ := json.Marshal(map[string]any{
		"item_id":        itemID,
		"claimant_name":  name,
		"claimant_email": email,
	})
	resp, err := http.Post(server.URL+"/api/claims", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("submit claim: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 submitting claim, got %d", resp.StatusCode)
	}
	var claim model.Claim
	json.NewDecoder(resp.Body).Decode(&claim)
	return claim
}

func TestLoginEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	// Test invalid credentials.
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "wrong"})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Login by email works too.
	body, _ = json.Marshal(map[string]string{"username": "admin@localhost", "password": "password"})
	resp, _ = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for email login, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestSignupEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{
		"email":    "jane@campus.edu",
		"username": "jane",
		"password": "hunter22",
	})
	resp, _ := http.Post(server.URL+"/api/auth/signup", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 for signup, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Duplicate email conflicts.
	body, _ = json.Marshal(map[string]string{
		"email":    "jane@campus.edu",
		"username": "jane2",
		"password": "hunter22",
	})
	resp, _ = http.Post(server.URL+"/api/auth/signup", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Short password rejected.
	body, _ = json.Marshal(map[string]string{
		"email":    "joe@campus.edu",
		"username": "joe",
		"password": "abc",
	})
	resp, _ = http.Post(server.URL+"/api/auth/signup", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for short password, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestItemsAPIFlow(t *testing.T) {
	server, token := setupTestServer(t)

	item := createItemViaAPI(t, server, token, model.ItemStatusFound)
	if item.ID == 0 {
		t.Fatal("expected item id")
	}

	// Listing is public.
	resp, _ := http.Get(server.URL + "/api/items?status=found")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 listing items, got %d", resp.StatusCode)
	}
	var items []model.Item
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if len(items) != 1 {
		t.Errorf("expected 1 found item, got %d", len(items))
	}

	// Creating a claimed item is rejected.
	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]string{
		"title":          "Wallet",
		"category":       "Other",
		"status":         model.ItemStatusClaimed,
		"reporter_name":  "Desk",
		"reporter_email": "desk@campus.edu",
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for claimed status on create, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestClaimsAdjudicationFlow(t *testing.T) {
	server, token := setupTestServer(t)

	item := createItemViaAPI(t, server, token, model.ItemStatusFound)
	first := submitClaimViaAPI(t, server, item.ID, "Alice", "alice@campus.edu")
	second := submitClaimViaAPI(t, server, item.ID, "Bob", "bob@campus.edu")

	// Approve the first claim.
	req, _ := authRequest("PUT", server.URL+"/api/claims/"+itoa(first.ID), token, map[string]any{
		"status": model.ClaimStatusApproved,
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 approving claim, got %d", resp.StatusCode)
	}
	var approved model.Claim
	json.NewDecoder(resp.Body).Decode(&approved)
	resp.Body.Close()
	if approved.Status != model.ClaimStatusApproved {
		t.Errorf("expected approved, got %s", approved.Status)
	}

	// The item is now claimed.
	resp, _ = http.Get(server.URL + "/api/items/" + itoa(item.ID))
	var updated model.Item
	json.NewDecoder(resp.Body).Decode(&updated)
	resp.Body.Close()
	if updated.Status != model.ItemStatusClaimed {
		t.Errorf("expected item claimed, got %s", updated.Status)
	}

	// The sibling claim was rejected with the superseded annotation.
	req, _ = authRequest("GET", server.URL+"/api/claims/"+itoa(second.ID), token, nil)
	resp, _ = http.DefaultClient.Do(req)
	var sibling model.Claim
	json.NewDecoder(resp.Body).Decode(&sibling)
	resp.Body.Close()
	if sibling.Status != model.ClaimStatusRejected {
		t.Errorf("expected sibling rejected, got %s", sibling.Status)
	}
	if !strings.Contains(sibling.Notes, "Automatically rejected") {
		t.Errorf("expected superseded annotation, got %q", sibling.Notes)
	}

	// Approving the rejected sibling now conflicts.
	req, _ = authRequest("PUT", server.URL+"/api/claims/"+itoa(second.ID), token, map[string]any{
		"status": model.ClaimStatusApproved,
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for second approval, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// New claims on the claimed item are refused.
	body, _ := json.Marshal(map[string]any{
		"item_id":        item.ID,
		"claimant_name":  "Carol",
		"claimant_email": "carol@campus.edu",
	})
	resp, _ = http.Post(server.URL+"/api/claims", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 claiming a claimed item, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestClaimSubmissionValidation(t *testing.T) {
	server, token := setupTestServer(t)

	item := createItemViaAPI(t, server, token, model.ItemStatusFound)

	// Missing claimant name.
	body, _ := json.Marshal(map[string]any{
		"item_id":        item.ID,
		"claimant_email": "alice@campus.edu",
	})
	resp, _ := http.Post(server.URL+"/api/claims", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing name, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Unknown item.
	body, _ = json.Marshal(map[string]any{
		"item_id":        int64(9999),
		"claimant_name":  "Alice",
		"claimant_email": "alice@campus.edu",
	})
	resp, _ = http.Post(server.URL+"/api/claims", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown item, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Duplicate pending claim by the same email.
	submitClaimViaAPI(t, server, item.ID, "Alice", "alice@campus.edu")
	body, _ = json.Marshal(map[string]any{
		"item_id":        item.ID,
		"claimant_name":  "Alice Again",
		"claimant_email": "alice@campus.edu",
	})
	resp, _ = http.Post(server.URL+"/api/claims", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate pending claim, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUnauthenticatedAccess(t *testing.T) {
	server, _ := setupTestServer(t)

	// Creating items requires authentication.
	body, _ := json.Marshal(map[string]string{"title": "Test"})
	resp, _ := http.Post(server.URL+"/api/items", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for unauthenticated item create, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Claim listing is admin-only.
	resp, _ = http.Get(server.URL + "/api/claims")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for unauthenticated claims list, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRoleBasedAccess(t *testing.T) {
	server, adminToken := setupTestServer(t)

	// Sign up a regular user and log in.
	body, _ := json.Marshal(map[string]string{
		"email":    "user@campus.edu",
		"username": "user1",
		"password": "password",
	})
	resp, _ := http.Post(server.URL+"/api/auth/signup", "application/json", bytes.NewReader(body))
	resp.Body.Close()

	body, _ = json.Marshal(map[string]string{"username": "user1", "password": "password"})
	resp, _ = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	var login loginResponse
	json.NewDecoder(resp.Body).Decode(&login)
	resp.Body.Close()

	item := createItemViaAPI(t, server, adminToken, model.ItemStatusFound)
	claim := submitClaimViaAPI(t, server, item.ID, "Alice", "alice@campus.edu")

	// Regular user cannot adjudicate claims.
	req, _ := authRequest("PUT", server.URL+"/api/claims/"+itoa(claim.ID), login.Token, map[string]any{
		"status": model.ClaimStatusApproved,
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for user adjudicating claim, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Regular user cannot list users.
	req, _ = authRequest("GET", server.URL+"/api/admin/users", login.Token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for user listing users, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Regular user cannot delete items.
	req, _ = authRequest("DELETE", server.URL+"/api/items/"+itoa(item.ID), login.Token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for user deleting item, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLogoutRevokesToken(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/auth/logout", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for logout, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// The token no longer works.
	req, _ = authRequest("GET", server.URL+"/api/claims", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for revoked token, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestInvalidTokenRejected(t *testing.T) {
	server, _ := setupTestServer(t)

	// Token signed with the wrong secret.
	badToken, _ := auth.GenerateToken("wrong-secret", 1, "admin", "admin@localhost", true)
	req, _ := authRequest("GET", server.URL+"/api/claims", badToken, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for token with wrong secret, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCategoriesEndpoints(t *testing.T) {
	server, token := setupTestServer(t)

	// Seeded categories are publicly listed.
	resp, _ := http.Get(server.URL + "/api/categories")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 listing categories, got %d", resp.StatusCode)
	}
	var categories []model.Category
	json.NewDecoder(resp.Body).Decode(&categories)
	resp.Body.Close()
	if len(categories) == 0 {
		t.Error("expected seeded categories")
	}

	// Admin can add a category.
	req, _ := authRequest("POST", server.URL+"/api/admin/categories", token, map[string]string{
		"name": "Sports Equipment",
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201 creating category, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAdminStats(t *testing.T) {
	server, token := setupTestServer(t)

	item := createItemViaAPI(t, server, token, model.ItemStatusFound)
	submitClaimViaAPI(t, server, item.ID, "Alice", "alice@campus.edu")

	req, _ := authRequest("GET", server.URL+"/api/admin/stats", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for stats, got %d", resp.StatusCode)
	}
	var stats store.Stats
	json.NewDecoder(resp.Body).Decode(&stats)
	resp.Body.Close()

	if stats.TotalItems != 1 {
		t.Errorf("expected 1 item in stats, got %d", stats.TotalItems)
	}
	if stats.TotalClaims != 1 {
		t.Errorf("expected 1 claim in stats, got %d", stats.TotalClaims)
	}
	if stats.TotalUsers != 1 {
		t.Errorf("expected 1 user in stats, got %d", stats.TotalUsers)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
