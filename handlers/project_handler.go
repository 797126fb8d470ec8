package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kwesi-koranteng/cityhub-backend/apperrors"
	"github.com/kwesi-koranteng/cityhub-backend/helper"
	"github.com/kwesi-koranteng/cityhub-backend/middleware"
	"github.com/kwesi-koranteng/cityhub-backend/models"
	"github.com/kwesi-koranteng/cityhub-backend/services"
)

// Multipart field carrying project attachments, matching the frontend form.
const projectFilesField = "projectFiles"

type ProjectHandler struct {
	projectService services.ProjectService
	uploadService  services.UploadService
	httpHelper     *helper.HTTPHelper
}

func NewProjectHandler(projectService services.ProjectService, uploadService services.UploadService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		uploadService:  uploadService,
		httpHelper:     &helper.HTTPHelper{},
	}
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var params models.ProjectListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		helper.SendError(c, apperrors.InvalidArgument("%s", err.Error()))
		return
	}

	viewer := middleware.IdentityFrom(c)
	projects, total, err := h.projectService.ListProjects(c.Request.Context(), viewer, params)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":   projects,
		"pagination": h.httpHelper.GeneratePaging(c, params.Limit, params.Page, total),
	})
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	viewer := middleware.IdentityFrom(c)
	project, err := h.projectService.GetProject(c.Request.Context(), viewer, id)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	author := middleware.IdentityFrom(c)
	if author == nil {
		helper.SendError(c, apperrors.Unauthenticated("authentication required"))
		return
	}

	input := models.CreateProjectInput{
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		Category:     c.PostForm("category"),
		AcademicYear: c.PostForm("academicYear"),
		Thumbnail:    c.PostForm("thumbnail"),
		VideoURL:     c.PostForm("videoUrl"),
		Tags:         c.PostFormArray("tags"),
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		files, err := h.uploadService.Process(form.File[projectFilesField])
		if err != nil {
			helper.SendError(c, err)
			return
		}
		input.Files = files
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), author, input)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"project": project,
	})
}

func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, apperrors.InvalidArgument("%s", err.Error()))
		return
	}

	actor := middleware.IdentityFrom(c)
	project, err := h.projectService.TransitionStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project status updated successfully",
		"project": project,
	})
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, apperrors.InvalidArgument("%s", err.Error()))
		return
	}

	actor := middleware.IdentityFrom(c)
	project, err := h.projectService.UpdateProject(c.Request.Context(), actor, id, req)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	actor := middleware.IdentityFrom(c)
	if err := h.projectService.DeleteProject(c.Request.Context(), actor, id); err != nil {
		helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func (h *ProjectHandler) AddComment(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, apperrors.InvalidArgument("%s", err.Error()))
		return
	}

	actor := middleware.IdentityFrom(c)
	comment, err := h.projectService.AddComment(c.Request.Context(), actor, id, req.Content)
	if err != nil {
		helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

func (h *ProjectHandler) GetStats(c *gin.Context) {
	stats, err := h.projectService.Stats(c.Request.Context())
	if err != nil {
		helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func projectID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		helper.SendError(c, apperrors.InvalidArgument("invalid project id"))
		return 0, false
	}
	return uint(id), true
}
