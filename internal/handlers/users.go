package handlers

import (
	"fmt"
	"net/http"

	"blogserver/internal/models"
	"blogserver/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type editUserRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	CurrentPass    string `json:"currentPass"`
	NewPass        string `json:"newPass"`
	ConfirmNewPass string `json:"confirmNewPass"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a
// 400 JSON on failure. Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  registerRequest  true  "Registration form"
// @Success      201   {string}  string  "confirmation"
// @Failure      422   {object}  map[string]string
// @Router       /api/users/register [post]
func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	u, err := h.services.Register(c.Request.Context(), service.RegisterParams{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Password2: req.Password2,
	})
	if err != nil {
		h.respondError(c, err, "user_register_failed", "email", req.Email)
		return
	}

	c.JSON(http.StatusCreated, fmt.Sprintf("New user %s registered.", u.Email))
}

// @Summary      Log in
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "Credentials"
// @Success      200   {object}  service.LoginResult
// @Failure      422   {object}  map[string]string
// @Router       /api/users/login [post]
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	res, err := h.services.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err, "user_login_failed", "email", req.Email)
		return
	}

	c.JSON(http.StatusOK, res)
}

// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  models.User
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [get]
func (h *Handler) getUser(c *gin.Context) {
	u, err := h.services.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "user_get_failed", "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      List authors
// @Tags         users
// @Produce      json
// @Success      200  {array}  models.User
// @Router       /api/users [get]
func (h *Handler) getAuthors(c *gin.Context) {
	authors, err := h.services.ListAuthors(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "authors_list_failed")
		return
	}
	if authors == nil {
		authors = []models.User{}
	}
	c.JSON(http.StatusOK, authors)
}

// @Summary      Change avatar
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Param        avatar  formData  file  true  "Avatar image (max 500000 bytes)"
// @Success      200     {object}  models.User
// @Failure      401     {object}  map[string]string
// @Failure      422     {object}  map[string]string
// @Router       /api/users/change-avatar [post]
// @Security     BearerAuth
func (h *Handler) changeAvatar(c *gin.Context) {
	ident, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	avatar, err := c.FormFile("avatar")
	if err != nil {
		h.respondError(c, service.ErrFileMissing, "avatar_missing")
		return
	}

	u, err := h.services.ChangeAvatar(c.Request.Context(), ident.UserID, avatar)
	if err != nil {
		h.respondError(c, err, "avatar_change_failed", "user", ident.UserID)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Edit profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  editUserRequest  true  "Profile edit form"
// @Success      200   {object}  models.User
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/users/edit-user [patch]
// @Security     BearerAuth
func (h *Handler) editUser(c *gin.Context) {
	ident, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req editUserRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	u, err := h.services.EditProfile(c.Request.Context(), ident.UserID, service.EditProfileParams{
		Name:           req.Name,
		Email:          req.Email,
		CurrentPass:    req.CurrentPass,
		NewPass:        req.NewPass,
		ConfirmNewPass: req.ConfirmNewPass,
	})
	if err != nil {
		h.respondError(c, err, "user_edit_failed", "user", ident.UserID)
		return
	}
	c.JSON(http.StatusOK, u)
}
