package handlers

import (
	"net/http"

	"blogserver/internal/logger"
	"blogserver/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services   *service.Service
	log        *logger.Logger
	uploadsDir string
}

// NewHandler constructs a new HTTP handler with dependencies. uploadsDir is
// served statically under /uploads.
func NewHandler(services *service.Service, log *logger.Logger, uploadsDir string) *Handler {
	return &Handler{services: services, log: log, uploadsDir: uploadsDir}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Probe endpoints
	router.GET("/", h.root)
	router.GET("/health", h.health)

	// Uploaded avatars and thumbnails
	if h.uploadsDir != "" {
		router.Static("/uploads", h.uploadsDir)
	}

	api := router.Group("/api")
	h.registerUserRoutes(api)
	h.registerPostRoutes(api)

	// Live post feed, served via HTTP upgrade on the same port
	router.GET("/ws/posts", h.wsPosts)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return router
}

func (h *Handler) registerUserRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.POST("/register", h.register)
		users.POST("/login", h.login)
		users.GET("/:id", h.getUser)
		users.GET("", h.getAuthors)
		users.POST("/change-avatar", h.identityMiddleware, h.changeAvatar)
		users.PATCH("/edit-user", h.identityMiddleware, h.editUser)
	}
}

func (h *Handler) registerPostRoutes(api *gin.RouterGroup) {
	posts := api.Group("/posts")
	{
		posts.POST("", h.identityMiddleware, h.createPost)
		posts.GET("", h.getPosts)
		posts.GET("/:id", h.getPost)
		posts.PATCH("/:id", h.identityMiddleware, h.editPost)
		posts.DELETE("/:id", h.identityMiddleware, h.deletePost)
		posts.GET("/categories/:category", h.getCategoryPosts)
		posts.GET("/users/:id", h.getUserPosts)
	}
}

// @Summary      Root probe
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.String(http.StatusOK, "server is working")
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
