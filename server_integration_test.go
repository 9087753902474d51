package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"hobbyhub/config"
	"hobbyhub/database"
)

// Integration tests are opt-in: set HOBBYHUB_IT=1 and point MYSQL_DSN at a
// disposable database to run them.
func setupTestServer(t *testing.T) *gin.Engine {
	if os.Getenv("HOBBYHUB_IT") != "1" {
		t.Skip("integration tests are disabled; set HOBBYHUB_IT=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	config.Load()
	if err := database.Connect(); err != nil {
		t.Fatalf("database connect failed: %v", err)
	}
	if err := database.CreateTables(); err != nil {
		t.Fatalf("create tables failed: %v", err)
	}
	return setupRouter()
}

func performRequest(r http.Handler, method, path string, body io.Reader, token, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, r http.Handler, username string) (token, userID string) {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{
		"username":   username,
		"email":      username + "@example.com",
		"first_name": "Test",
		"last_name":  "User",
		"password":   "password123",
	})
	rec := performRequest(r, http.MethodPost, "/api/auth/register", bytes.NewReader(payload), "", "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("register %s failed status=%d body=%s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad register response: %v", err)
	}
	if resp.Token == "" || resp.User.ID == "" {
		t.Fatalf("incomplete register response: %s", rec.Body.String())
	}
	return resp.Token, resp.User.ID
}

func createHobby(t *testing.T, r http.Handler, token, name string) string {
	t.Helper()
	form := url.Values{"name": {name}}
	rec := performRequest(r, http.MethodPost, "/api/hobbies", strings.NewReader(form.Encode()), token, "application/x-www-form-urlencoded")
	if rec.Code != http.StatusOK {
		t.Fatalf("create hobby %s failed status=%d body=%s", name, rec.Code, rec.Body.String())
	}
	var resp struct {
		Hobby struct {
			ID string `json:"id"`
		} `json:"hobby"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Hobby.ID == "" {
		t.Fatalf("bad hobby response: %s", rec.Body.String())
	}
	return resp.Hobby.ID
}

func setHobbies(t *testing.T, r http.Handler, token string, hobbyIDs []string) {
	t.Helper()
	payload, _ := json.Marshal(map[string]any{"hobbies": hobbyIDs})
	rec := performRequest(r, http.MethodPut, "/api/profile", bytes.NewReader(payload), token, "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("set hobbies failed status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func getFriends(t *testing.T, r http.Handler, token string) (count, edges int) {
	t.Helper()
	rec := performRequest(r, http.MethodGet, "/api/friends", nil, token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list friends failed status=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Friends     []json.RawMessage `json:"friends"`
		FriendCount int               `json:"friend_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad friends response: %v", err)
	}
	return resp.FriendCount, len(resp.Friends)
}

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	aliceToken, _ := registerUser(t, r, "alice"+suffix)
	bobToken, bobID := registerUser(t, r, "bob"+suffix)

	// Duplicate registration reports field errors.
	payload, _ := json.Marshal(map[string]string{
		"username":   "alice" + suffix,
		"email":      "other" + suffix + "@example.com",
		"first_name": "Test",
		"last_name":  "User",
		"password":   "password123",
	})
	rec := performRequest(r, http.MethodPost, "/api/auth/register", bytes.NewReader(payload), "", "application/json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d", rec.Code)
	}

	chess := createHobby(t, r, aliceToken, "chess-"+suffix)
	hiking := createHobby(t, r, aliceToken, "hiking-"+suffix)

	// Duplicate hobby names are rejected.
	form := url.Values{"name": {"chess-" + suffix}}
	rec = performRequest(r, http.MethodPost, "/api/hobbies", strings.NewReader(form.Encode()), aliceToken, "application/x-www-form-urlencoded")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate hobby: expected 400, got %d", rec.Code)
	}

	setHobbies(t, r, aliceToken, []string{chess, hiking})
	setHobbies(t, r, bobToken, []string{chess})

	// Bob shows up in Alice's similarity ranking with one shared hobby.
	rec = performRequest(r, http.MethodGet, "/api/similar-users?page=1", nil, aliceToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("similar users failed status=%d body=%s", rec.Code, rec.Body.String())
	}
	var similar struct {
		Page         int `json:"page"`
		TotalPages   int `json:"total_pages"`
		SimilarUsers []struct {
			Username      string `json:"username"`
			CommonHobbies int    `json:"common_hobbies"`
		} `json:"similar_users"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &similar); err != nil {
		t.Fatalf("bad similar users response: %v", err)
	}
	foundBob := false
	for _, u := range similar.SimilarUsers {
		if u.Username == "bob"+suffix {
			foundBob = true
			if u.CommonHobbies != 1 {
				t.Fatalf("expected 1 common hobby with bob, got %d", u.CommonHobbies)
			}
		}
	}
	if !foundBob && similar.TotalPages == 1 {
		t.Fatalf("bob missing from similarity ranking: %s", rec.Body.String())
	}

	// Friend request: alice -> bob, bob accepts, both sides count 1.
	payload, _ = json.Marshal(map[string]string{"user_id": bobID})
	rec = performRequest(r, http.MethodPost, "/api/friends/request", bytes.NewReader(payload), aliceToken, "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("send request failed status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = performRequest(r, http.MethodGet, "/api/friends/requests", nil, bobToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list requests failed status=%d", rec.Code)
	}
	var incoming struct {
		Requests []struct {
			ID             string `json:"id"`
			FriendUsername string `json:"friend_username"`
			Status         string `json:"status"`
		} `json:"requests"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &incoming); err != nil || len(incoming.Requests) == 0 {
		t.Fatalf("expected pending request, got %s", rec.Body.String())
	}
	request := incoming.Requests[0]
	if request.FriendUsername != "alice"+suffix {
		t.Fatalf("expected friend_username alice, got %s", request.FriendUsername)
	}
	if request.Status != "sent" {
		t.Fatalf("expected status sent, got %s", request.Status)
	}

	rec = performRequest(r, http.MethodPost, "/api/friends/requests/"+request.ID+"/accept", nil, bobToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("accept failed status=%d body=%s", rec.Code, rec.Body.String())
	}

	// A second decision on the same record is rejected.
	rec = performRequest(r, http.MethodPost, "/api/friends/requests/"+request.ID+"/reject", nil, bobToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for decided request, got %d", rec.Code)
	}

	for _, token := range []string{aliceToken, bobToken} {
		rec = performRequest(r, http.MethodGet, "/api/friends", nil, token, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("list friends failed status=%d", rec.Code)
		}
		var friends struct {
			FriendCount int `json:"friend_count"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &friends); err != nil {
			t.Fatalf("bad friends response: %v", err)
		}
		if friends.FriendCount != 1 {
			t.Fatalf("expected friend_count 1, got %d", friends.FriendCount)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := setupTestServer(t)

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	registerUser(t, r, "erin"+suffix)

	payload, _ := json.Marshal(map[string]string{"username": "erin" + suffix, "password": "wrong-password"})
	rec := performRequest(r, http.MethodPost, "/api/auth/login", bytes.NewReader(payload), "", "application/json")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", rec.Code)
	}

	payload, _ = json.Marshal(map[string]string{"username": "nobody" + suffix, "password": "password123"})
	rec = performRequest(r, http.MethodPost, "/api/auth/login", bytes.NewReader(payload), "", "application/json")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown username: expected 401, got %d", rec.Code)
	}

	payload, _ = json.Marshal(map[string]string{"username": "erin" + suffix, "password": "password123"})
	rec = performRequest(r, http.MethodPost, "/api/auth/login", bytes.NewReader(payload), "", "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("valid login failed status=%d body=%s", rec.Code, rec.Body.String())
	}
}

// Two users requesting each other must end up with a single accepted edge,
// not a mirrored pair; unfriending removes it for both sides.
func TestMirroredRequestAndUnfriend(t *testing.T) {
	r := setupTestServer(t)

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	carolToken, carolID := registerUser(t, r, "carol"+suffix)
	daveToken, daveID := registerUser(t, r, "dave"+suffix)

	payload, _ := json.Marshal(map[string]string{"user_id": daveID})
	rec := performRequest(r, http.MethodPost, "/api/friends/request", bytes.NewReader(payload), carolToken, "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("carol's request failed status=%d body=%s", rec.Code, rec.Body.String())
	}

	// Dave requesting carol while her request is pending accepts that
	// record instead of inserting an opposite-direction one.
	payload, _ = json.Marshal(map[string]string{"user_id": carolID})
	rec = performRequest(r, http.MethodPost, "/api/friends/request", bytes.NewReader(payload), daveToken, "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("dave's mirrored request failed status=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.Message != "friend request accepted" {
		t.Fatalf("expected auto-accept, got %q", resp.Message)
	}

	// Nothing left pending on dave's side.
	rec = performRequest(r, http.MethodGet, "/api/friends/requests", nil, daveToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list requests failed status=%d", rec.Code)
	}
	var incoming struct {
		Requests []json.RawMessage `json:"requests"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &incoming); err != nil {
		t.Fatalf("bad requests response: %v", err)
	}
	if len(incoming.Requests) != 0 {
		t.Fatalf("expected no pending requests, got %d", len(incoming.Requests))
	}

	// Exactly one edge, counted once from each perspective.
	for _, token := range []string{carolToken, daveToken} {
		count, edges := getFriends(t, r, token)
		if count != 1 || edges != 1 {
			t.Fatalf("expected one accepted edge, got count=%d edges=%d", count, edges)
		}
	}

	rec = performRequest(r, http.MethodDelete, "/api/friends/"+daveID, nil, carolToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unfriend failed status=%d body=%s", rec.Code, rec.Body.String())
	}

	for _, token := range []string{carolToken, daveToken} {
		count, edges := getFriends(t, r, token)
		if count != 0 || edges != 0 {
			t.Fatalf("expected no friends after unfriend, got count=%d edges=%d", count, edges)
		}
	}
}
