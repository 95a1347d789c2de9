package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-api/cmd/api/dto"
	"portfolio-api/models"
	"portfolio-api/storage"
)

// ListAllBlogPostsHandler godoc
// @Summary      List all blog posts
// @Description  Drafts included, newest first. Admin only.
// @Tags         admin
// @Produce      json
// @Success      200  {array}  models.BlogPost
// @Router       /admin/blogs [get]
func ListAllBlogPostsHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := store.GetAllBlogPosts(c.Request.Context(), false)
		if err != nil {
			writeStorageError(c, err)
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// GetBlogPostHandler godoc
// @Summary      Blog post by id
// @Description  Admin lookup uses the id, not the slug, and sees drafts.
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  models.BlogPost
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /admin/blogs/{id} [get]
func GetBlogPostHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := store.GetBlogPost(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeStorageError(c, err)
			return
		}
		if post == nil {
			writeNotFound(c)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// CreateBlogPostHandler godoc
// @Summary      Create blog post
// @Description  Slug must be unique across all posts.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      models.BlogPost  true  "Blog post"
// @Success      201   {object}  models.BlogPost
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Router       /admin/blogs [post]
func CreateBlogPostHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.BlogPost
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body"})
			return
		}
		created, err := store.CreateBlogPost(c.Request.Context(), in)
		if err != nil {
			writeStorageError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateBlogPostHandler godoc
// @Summary      Update blog post
// @Description  Partial update; publishing for the first time stamps
// @Description  publishedAt, unpublishing clears it.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Post id"
// @Param        body  body      models.BlogPostUpdate  true  "Fields to change"
// @Success      200   {object}  models.BlogPost
// @Failure      404   {object}  dto.ErrorResponseDTO
// @Router       /admin/blogs/{id} [put]
func UpdateBlogPostHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var upd models.BlogPostUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body"})
			return
		}
		updated, err := store.UpdateBlogPost(c.Request.Context(), c.Param("id"), upd)
		if err != nil {
			writeStorageError(c, err)
			return
		}
		if updated == nil {
			writeNotFound(c)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteBlogPostHandler godoc
// @Summary      Delete blog post
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /admin/blogs/{id} [delete]
func DeleteBlogPostHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		removed, err := store.DeleteBlogPost(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeStorageError(c, err)
			return
		}
		if !removed {
			writeNotFound(c)
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "deleted"})
	}
}
