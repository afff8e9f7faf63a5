package handlers

import (
	"net/http"

	"blogserver/internal/models"
	"blogserver/internal/service"

	"github.com/gin-gonic/gin"
)

// postParamsFromForm collects the multipart form fields shared by create
// and edit. Presence is validated in the service layer.
func postParamsFromForm(c *gin.Context) service.PostParams {
	return service.PostParams{
		Title:       c.PostForm("title"),
		Category:    c.PostForm("category"),
		Description: c.PostForm("description"),
	}
}

// @Summary      Create a post
// @Tags         posts
// @Accept       mpfd
// @Produce      json
// @Param        title        formData  string  true  "Title"
// @Param        category     formData  string  true  "Category"
// @Param        description  formData  string  true  "Description"
// @Param        thumbnail    formData  file    true  "Thumbnail image (max 2000000 bytes)"
// @Success      201  {object}  models.Post
// @Failure      401  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/posts [post]
// @Security     BearerAuth
func (h *Handler) createPost(c *gin.Context) {
	ident, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	// Missing file is folded into the service's presence check.
	thumbnail, _ := c.FormFile("thumbnail")

	post, err := h.services.Posts.Create(c.Request.Context(), ident.UserID, postParamsFromForm(c), thumbnail)
	if err != nil {
		h.respondError(c, err, "post_create_failed", "user", ident.UserID)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Success      200  {array}  models.Post
// @Router       /api/posts [get]
func (h *Handler) getPosts(c *gin.Context) {
	posts, err := h.services.Posts.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "posts_list_failed")
		return
	}
	c.JSON(http.StatusOK, emptyIfNil(posts))
}

// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  models.Post
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/{id} [get]
func (h *Handler) getPost(c *gin.Context) {
	post, err := h.services.Posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "post_get_failed", "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, post)
}

// @Summary      List posts in a category
// @Tags         posts
// @Produce      json
// @Param        category  path  string  true  "Category"
// @Success      200  {array}  models.Post
// @Router       /api/posts/categories/{category} [get]
func (h *Handler) getCategoryPosts(c *gin.Context) {
	posts, err := h.services.Posts.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.respondError(c, err, "posts_by_category_failed", "category", c.Param("category"))
		return
	}
	c.JSON(http.StatusOK, emptyIfNil(posts))
}

// @Summary      List posts by author
// @Tags         posts
// @Produce      json
// @Param        id   path  string  true  "Author user id"
// @Success      200  {array}  models.Post
// @Router       /api/posts/users/{id} [get]
func (h *Handler) getUserPosts(c *gin.Context) {
	posts, err := h.services.Posts.ListByAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "posts_by_author_failed", "user", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, emptyIfNil(posts))
}

// @Summary      Edit a post
// @Tags         posts
// @Accept       mpfd
// @Produce      json
// @Param        id           path      string  true   "Post id"
// @Param        title        formData  string  true   "Title"
// @Param        category     formData  string  true   "Category"
// @Param        description  formData  string  true   "Description"
// @Param        thumbnail    formData  file    false  "Replacement thumbnail"
// @Success      200  {object}  models.Post
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/posts/{id} [patch]
// @Security     BearerAuth
func (h *Handler) editPost(c *gin.Context) {
	if _, ok := identityFromContext(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	// Thumbnail is optional on edit; absent means keep the current one.
	thumbnail, _ := c.FormFile("thumbnail")

	post, err := h.services.Posts.Edit(c.Request.Context(), c.Param("id"), postParamsFromForm(c), thumbnail)
	if err != nil {
		h.respondError(c, err, "post_edit_failed", "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, post)
}

// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  map[string]string  "confirmation message"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deletePost(c *gin.Context) {
	ident, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	msg, err := h.services.Posts.Delete(c.Request.Context(), c.Param("id"), ident.UserID)
	if err != nil {
		h.respondError(c, err, "post_delete_failed", "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func emptyIfNil(posts []models.Post) []models.Post {
	if posts == nil {
		return []models.Post{}
	}
	return posts
}
