package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-api/storage"
)

// GetAboutHandler godoc
// @Summary      About data
// @Description  Returns the single about-me document.
// @Tags         public
// @Produce      json
// @Success      200  {object}  models.AboutData
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /about [get]
func GetAboutHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		about, err := store.GetAbout(c.Request.Context())
		if err != nil {
			writeStorageError(c, err)
			return
		}
		if about == nil {
			writeNotFound(c)
			return
		}
		c.JSON(http.StatusOK, about)
	}
}

// ListCertificationsHandler godoc
// @Summary      List certifications
// @Description  All certifications sorted by display order.
// @Tags         public
// @Produce      json
// @Success      200  {array}  models.Certification
// @Router       /certifications [get]
func ListCertificationsHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		certs, err := store.GetAllCertifications(c.Request.Context())
		if err != nil {
			writeStorageError(c, err)
			return
		}
		c.JSON(http.StatusOK, certs)
	}
}

// ListHackathonsHandler godoc
// @Summary      List hackathons
// @Description  All hackathon timeline entries sorted by display order.
// @Tags         public
// @Produce      json
// @Success      200  {array}  models.Hackathon
// @Router       /hackathons [get]
func ListHackathonsHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		hacks, err := store.GetAllHackathons(c.Request.Context())
		if err != nil {
			writeStorageError(c, err)
			return
		}
		c.JSON(http.StatusOK, hacks)
	}
}

// ListProjectsHandler godoc
// @Summary      List projects
// @Description  All project cards sorted by display order.
// @Tags         public
// @Produce      json
// @Success      200  {array}  models.Project
// @Router       /projects [get]
func ListProjectsHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := store.GetAllProjects(c.Request.Context())
		if err != nil {
			writeStorageError(c, err)
			return
		}
		c.JSON(http.StatusOK, projects)
	}
}

// ListPublishedBlogPostsHandler godoc
// @Summary      List published blog posts
// @Description  Published posts only, newest first.
// @Tags         public
// @Produce      json
// @Success      200  {array}  models.BlogPost
// @Router       /blogs [get]
func ListPublishedBlogPostsHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := store.GetAllBlogPosts(c.Request.Context(), true)
		if err != nil {
			writeStorageError(c, err)
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// GetBlogPostBySlugHandler godoc
// @Summary      Blog post by slug
// @Description  Public lookup key is the slug; unpublished posts 404 here.
// @Tags         public
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  models.BlogPost
// @Failure      404   {object}  dto.ErrorResponseDTO
// @Router       /blogs/{slug} [get]
func GetBlogPostBySlugHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := store.GetBlogPostBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeStorageError(c, err)
			return
		}
		if post == nil || !post.IsPublished {
			writeNotFound(c)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}
