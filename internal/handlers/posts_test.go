package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogserver/internal/models"
	"blogserver/internal/service"
)

// postForm builds a multipart body with the usual post fields and an
// optional thumbnail file.
func postForm(t *testing.T, withThumbnail bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("title", "First Post")
	_ = mw.WriteField("category", "go")
	_ = mw.WriteField("description", "hello world")
	if withThumbnail {
		fw, err := mw.CreateFormFile("thumbnail", "thumb.png")
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		_, _ = fw.Write([]byte("png-bytes"))
	}
	_ = mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestPostHandlers_CreateSuccess(t *testing.T) {
	auth := &mockAuth{parseIdent: service.Identity{UserID: "u1", Name: "Alice"}}
	posts := &mockPosts{post: &models.Post{ID: "p1", Title: "First Post", Creator: "u1"}}
	r := newTestRouter(&service.Service{Authorization: auth, Posts: posts})

	body, contentType := postForm(t, true)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if posts.lastCreator != "u1" {
		t.Fatalf("creator scoped to %q, want u1", posts.lastCreator)
	}
	if posts.lastParams.Title != "First Post" || posts.lastParams.Category != "go" {
		t.Fatalf("form fields not forwarded: %+v", posts.lastParams)
	}
	if posts.lastThumbnail == nil || posts.lastThumbnail.Filename != "thumb.png" {
		t.Fatalf("thumbnail not forwarded: %+v", posts.lastThumbnail)
	}
}

func TestPostHandlers_CreateValidationMapsTo422(t *testing.T) {
	auth := &mockAuth{parseIdent: service.Identity{UserID: "u1"}}
	cases := []struct {
		name string
		err  error
	}{
		{"missing fields", service.ErrMissingFields},
		{"thumbnail too big", service.ErrThumbnailTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			posts := &mockPosts{postErr: tc.err}
			r := newTestRouter(&service.Service{Authorization: auth, Posts: posts})

			body, contentType := postForm(t, false)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
			req.Header.Set("Content-Type", contentType)
			req.Header.Set("Authorization", "Bearer tok")
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d (body=%s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestPostHandlers_GetPostNotFound(t *testing.T) {
	posts := &mockPosts{postErr: service.ErrPostNotFound}
	r := newTestRouter(&service.Service{Posts: posts})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts/p404", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (body=%s)", w.Code, w.Body.String())
	}
}

func TestPostHandlers_ListingsUnprotected(t *testing.T) {
	posts := &mockPosts{posts: []models.Post{{ID: "p1"}, {ID: "p2"}}}
	r := newTestRouter(&service.Service{Posts: posts})

	for _, path := range []string{"/api/posts", "/api/posts/categories/go", "/api/posts/users/u1"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("%s: status=%d, body=%s", path, w.Code, w.Body.String())
		}
		var out []models.Post
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s: unmarshal: %v", path, err)
		}
		if len(out) != 2 {
			t.Fatalf("%s: got %d posts, want 2", path, len(out))
		}
	}
}

func TestPostHandlers_EditFailureMapsTo400(t *testing.T) {
	auth := &mockAuth{parseIdent: service.Identity{UserID: "u1"}}
	posts := &mockPosts{postErr: service.ErrUpdateFailed}
	r := newTestRouter(&service.Service{Authorization: auth, Posts: posts})

	body, contentType := postForm(t, false)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/posts/p1", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (body=%s)", w.Code, w.Body.String())
	}
	if posts.lastEditID != "p1" {
		t.Fatalf("edit targeted %q, want p1", posts.lastEditID)
	}
}

func TestPostHandlers_DeleteReturnsConfirmation(t *testing.T) {
	auth := &mockAuth{parseIdent: service.Identity{UserID: "u1"}}
	posts := &mockPosts{deleteMsg: "Post and thumbnail deleted successfully."}
	r := newTestRouter(&service.Service{Authorization: auth, Posts: posts})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/posts/p1", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Message != "Post and thumbnail deleted successfully." {
		t.Fatalf("unexpected message: %q", out.Message)
	}
	if posts.lastDeleteID != "p1" || posts.lastDeleteUser != "u1" {
		t.Fatalf("delete scoped wrong: id=%q actor=%q", posts.lastDeleteID, posts.lastDeleteUser)
	}
}

func TestPostHandlers_DeleteNotFound(t *testing.T) {
	auth := &mockAuth{parseIdent: service.Identity{UserID: "u1"}}
	posts := &mockPosts{deleteErr: service.ErrPostNotFound}
	r := newTestRouter(&service.Service{Authorization: auth, Posts: posts})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/posts/p404", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (body=%s)", w.Code, w.Body.String())
	}
}

func TestPostHandlers_UnknownRouteReturns404(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var out struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Error != "route not found" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
