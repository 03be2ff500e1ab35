package rest

import (
	"net/http"

	"github.com/devchandra/devsite/blog/domain"
	"github.com/devchandra/devsite/internal/middleware"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine serving the content repository.
func NewRouter(posts domain.PostRepository) *gin.Engine {
	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.CustomRecovery(middleware.HandlePanics()))

	NewApi(router, posts)
	return router
}

func NewApi(router *gin.Engine, posts domain.PostRepository) {
	h := &postsHandler{posts: posts}

	postsV1 := router.Group("posts/v1")
	{
		postsV1.GET("/", h.GetPosts)
		postsV1.GET("/:slug", h.GetPost)
	}

	categoriesV1 := router.Group("categories/v1")
	{
		categoriesV1.GET("/", h.GetCategories)
	}

	router.GET("/sitemap.xml", h.GetSitemap)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
