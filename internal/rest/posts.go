package rest

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/devchandra/devsite/api"
	"github.com/devchandra/devsite/blog/domain"
	"github.com/devchandra/devsite/blog/seo"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type postsHandler struct {
	posts domain.PostRepository
}

func (h *postsHandler) GetPosts(c *gin.Context) {
	var (
		posts []domain.Post
		err   error
	)

	if category := c.Query("category"); category != "" {
		posts, err = h.posts.ListPostsByCategory(c.Request.Context(), category)
	} else {
		posts, err = h.posts.ListPosts(c.Request.Context())
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to list posts")
		abortInternal(c)
		return
	}

	c.JSON(http.StatusOK, api.NewPostList(posts))
}

func (h *postsHandler) GetPost(c *gin.Context) {
	slug := c.Param("slug")

	post, err := h.posts.GetPost(c.Request.Context(), slug)
	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, domain.ErrInvalidKey):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		log.Error().Err(err).Str("slug", slug).Msg("Failed to get post")
		abortInternal(c)
		return
	}

	c.JSON(http.StatusOK, api.NewPostDetail(post))
}

func (h *postsHandler) GetCategories(c *gin.Context) {
	categories, err := h.posts.ListCategories(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list categories")
		abortInternal(c)
		return
	}

	c.JSON(http.StatusOK, api.NewCategoryList(categories))
}

func (h *postsHandler) GetSitemap(c *gin.Context) {
	posts, err := h.posts.ListPosts(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list posts for sitemap")
		abortInternal(c)
		return
	}

	var buf bytes.Buffer
	if err := seo.WriteSitemapXML(&buf, seo.Sitemap(posts, time.Now().UTC())); err != nil {
		log.Error().Err(err).Msg("Failed to write sitemap")
		abortInternal(c)
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}

func abortInternal(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
}
