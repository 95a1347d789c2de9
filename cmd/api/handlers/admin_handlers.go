package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-api/cmd/api/dto"
	"portfolio-api/models"
	"portfolio-api/storage"
)

// UpsertAboutHandler godoc
// @Summary      Upsert about data
// @Description  Creates the about document on first save, merges into it on
// @Description  every save after that. At most one document ever exists.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      models.AboutInput  true  "About payload"
// @Success      200   {object}  models.AboutData
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Router       /admin/about [put]
func UpsertAboutHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.AboutInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body"})
			return
		}
		about, err := store.UpsertAbout(c.Request.Context(), in)
		if err != nil {
			writeStorageError(c, err)
			return
		}
		c.JSON(http.StatusOK, about)
	}
}

// --- Certifications ---

// CreateCertificationHandler godoc
// @Summary      Create certification
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      models.Certification  true  "Certification"
// @Success      201   {object}  models.Certification
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Router       /admin/certifications [post]
func CreateCertificationHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.Certification
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body"})
			return
		}
		created, err := store.CreateCertification(c.Request.Context(), in)
		if err != nil {
			writeStorageError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateCertificationHandler godoc
// @Summary      Update certification
// @Description  Partial update; omitted fields keep their stored values.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                      true  "Certification id"
// @Param        body  body      models.CertificationUpdate  true  "Fields to change"
// @Success      200   {object}  models.Certification
// @Failure      404   {object}  dto.ErrorResponseDTO
// @Router       /admin/certifications/{id} [put]
func UpdateCertificationHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var upd models.CertificationUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body"})
			return
		}
		updated, err := store.UpdateCertification(c.Request.Context(), c.Param("id"), upd)
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

// DeleteCertificationHandler godoc
// @Summary      Delete certification
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Certification id"
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /admin/certifications/{id} [delete]
func DeleteCertificationHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		removed, err := store.DeleteCertification(c.Request.Context(), c.Param("id"))
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

// --- Hackathons ---

// CreateHackathonHandler godoc
// @Summary      Create hackathon
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      models.Hackathon  true  "Hackathon"
// @Success      201   {object}  models.Hackathon
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Router       /admin/hackathons [post]
func CreateHackathonHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.Hackathon
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body"})
			return
		}
		created, err := store.CreateHackathon(c.Request.Context(), in)
		if err != nil {
			writeStorageError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateHackathonHandler godoc
// @Summary      Update hackathon
// @Description  Partial update; omitted fields keep their stored values.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Hackathon id"
// @Param        body  body      models.HackathonUpdate  true  "Fields to change"
// @Success      200   {object}  models.Hackathon
// @Failure      404   {object}  dto.ErrorResponseDTO
// @Router       /admin/hackathons/{id} [put]
func UpdateHackathonHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var upd models.HackathonUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body"})
			return
		}
		updated, err := store.UpdateHackathon(c.Request.Context(), c.Param("id"), upd)
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

// DeleteHackathonHandler godoc
// @Summary      Delete hackathon
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Hackathon id"
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /admin/hackathons/{id} [delete]
func DeleteHackathonHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		removed, err := store.DeleteHackathon(c.Request.Context(), c.Param("id"))
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

// --- Projects ---

// CreateProjectHandler godoc
// @Summary      Create project
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      models.Project  true  "Project"
// @Success      201   {object}  models.Project
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Router       /admin/projects [post]
func CreateProjectHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.Project
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body"})
			return
		}
		created, err := store.CreateProject(c.Request.Context(), in)
		if err != nil {
			writeStorageError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateProjectHandler godoc
// @Summary      Update project
// @Description  Partial update; omitted fields keep their stored values.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Project id"
// @Param        body  body      models.ProjectUpdate  true  "Fields to change"
// @Success      200   {object}  models.Project
// @Failure      404   {object}  dto.ErrorResponseDTO
// @Router       /admin/projects/{id} [put]
func UpdateProjectHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var upd models.ProjectUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body"})
			return
		}
		updated, err := store.UpdateProject(c.Request.Context(), c.Param("id"), upd)
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

// DeleteProjectHandler godoc
// @Summary      Delete project
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /admin/projects/{id} [delete]
func DeleteProjectHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		removed, err := store.DeleteProject(c.Request.Context(), c.Param("id"))
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
