package services

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"gopkg.in/go-playground/validator.v9"
	"gorm.io/datatypes"

	"github.com/kwesi-koranteng/cityhub-backend/apperrors"
	"github.com/kwesi-koranteng/cityhub-backend/models"
	"github.com/kwesi-koranteng/cityhub-backend/repositories"
)

// Fallback thumbnails shown at read time when a project has none stored.
// Selection is deterministic per project id so repeated reads agree.
var defaultThumbnails = []string{
	"https://th.bing.com/th/id/OIP.OACmP6GQapaMmDQxj9guvgHaHJ?rs=1&pid=ImgDetMain",
	"https://th.bing.com/th/id/OIP.7T8gJCW11R29gj3PRhfrhwAAAA?rs=1&pid=ImgDetMain",
	"https://th.bing.com/th/id/OIP.cRZKM0zd0u0eUtR8XiUZuwHaD3?w=325&h=180&c=7&r=0&o=5&dpr=1.1&pid=1.7",
}

func pickDefaultThumbnail(projectID uint) string {
	h := fnv.New32a()
	h.Write([]byte(strconv.FormatUint(uint64(projectID), 10)))
	return defaultThumbnails[h.Sum32()%uint32(len(defaultThumbnails))]
}

var inputFieldNames = map[string]string{
	"Title":        "title",
	"Description":  "description",
	"Category":     "category",
	"AcademicYear": "academicYear",
}

type ProjectService interface {
	ListProjects(ctx context.Context, viewer *models.Identity, params models.ProjectListParams) ([]models.ProjectResponse, int64, error)
	GetProject(ctx context.Context, viewer *models.Identity, id uint) (*models.ProjectResponse, error)
	CreateProject(ctx context.Context, author *models.Identity, input models.CreateProjectInput) (*models.Project, error)
	TransitionStatus(ctx context.Context, actor *models.Identity, id uint, status models.ProjectStatus) (*models.Project, error)
	UpdateProject(ctx context.Context, actor *models.Identity, id uint, patch models.UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, actor *models.Identity, id uint) error
	AddComment(ctx context.Context, actor *models.Identity, projectID uint, content string) (*models.CommentResponse, error)
	Stats(ctx context.Context) (*models.ProjectStats, error)
}

type projectService struct {
	projectRepo repositories.ProjectRepository
	commentRepo repositories.CommentRepository
	statsCache  *StatsCache
	validate    *validator.Validate
	timeout     time.Duration
}

func NewProjectService(projectRepo repositories.ProjectRepository, commentRepo repositories.CommentRepository, statsCache *StatsCache, timeout time.Duration) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		commentRepo: commentRepo,
		statsCache:  statsCache,
		validate:    validator.New(),
		timeout:     timeout,
	}
}

func (s *projectService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *projectService) ListProjects(ctx context.Context, viewer *models.Identity, params models.ProjectListParams) ([]models.ProjectResponse, int64, error) {
	if params.Page < 1 {
		return nil, 0, apperrors.InvalidArgument("page must be a positive integer")
	}
	if params.Limit < 1 {
		return nil, 0, apperrors.InvalidArgument("limit must be a positive integer")
	}
	if params.Status != "" && !models.ValidStatus(models.ProjectStatus(params.Status)) {
		return nil, 0, apperrors.InvalidArgument("status must be one of pending, approved, rejected")
	}

	params = applyListVisibility(viewer, params)

	ctx, cancel := s.bound(ctx)
	defer cancel()

	projects, total, err := s.projectRepo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]models.ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, toProjectResponse(&projects[i], false))
	}
	return responses, total, nil
}

func (s *projectService) GetProject(ctx context.Context, viewer *models.Identity, id uint) (*models.ProjectResponse, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Hidden and absent collapse to the same answer so existence does not
	// leak to anonymous viewers.
	if !CanView(viewer, project.Status) {
		return nil, apperrors.NotFound("project not found")
	}

	response := toProjectResponse(project, true)
	return &response, nil
}

func (s *projectService) CreateProject(ctx context.Context, author *models.Identity, input models.CreateProjectInput) (*models.Project, error) {
	if author == nil {
		return nil, apperrors.Unauthenticated("authentication required")
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Category = strings.TrimSpace(input.Category)
	input.AcademicYear = strings.TrimSpace(input.AcademicYear)

	if err := s.validate.Struct(input); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			missing := make([]string, 0, len(verrs))
			for _, verr := range verrs {
				name := inputFieldNames[verr.Field()]
				if name == "" {
					name = strings.ToLower(verr.Field())
				}
				missing = append(missing, name)
			}
			return nil, apperrors.InvalidArgument("%s required", strings.Join(missing, ", "))
		}
		return nil, apperrors.Internal(err)
	}

	thumbnail, err := normalizeThumbnail(input.Thumbnail)
	if err != nil {
		return nil, err
	}

	tags, err := NormalizeTags(input.Tags)
	if err != nil {
		return nil, err
	}

	var videoURL *string
	if v := strings.TrimSpace(input.VideoURL); v != "" {
		videoURL = &v
	}

	project := &models.Project{
		Title:        input.Title,
		Description:  input.Description,
		Thumbnail:    thumbnail,
		AuthorID:     author.ID,
		Category:     input.Category,
		AcademicYear: input.AcademicYear,
		Status:       models.StatusPending,
		Files:        datatypes.NewJSONSlice(input.Files),
		Tags:         datatypes.NewJSONSlice(tags),
		VideoURL:     videoURL,
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.statsCache.Invalidate(ctx)
	return project, nil
}

func (s *projectService) TransitionStatus(ctx context.Context, actor *models.Identity, id uint, status models.ProjectStatus) (*models.Project, error) {
	if !CanModerate(actor) {
		return nil, apperrors.Forbidden("admin access required")
	}
	if !models.ValidStatus(status) {
		return nil, apperrors.InvalidArgument("status must be one of pending, approved, rejected")
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	project, err := s.projectRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.statsCache.Invalidate(ctx)
	return project, nil
}

func (s *projectService) UpdateProject(ctx context.Context, actor *models.Identity, id uint, patch models.UpdateProjectRequest) (*models.Project, error) {
	if !CanModerate(actor) {
		return nil, apperrors.Forbidden("admin access required")
	}

	fields := map[string]interface{}{}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, apperrors.InvalidArgument("title must not be empty")
		}
		fields["title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return nil, apperrors.InvalidArgument("description must not be empty")
		}
		fields["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		if strings.TrimSpace(*patch.Category) == "" {
			return nil, apperrors.InvalidArgument("category must not be empty")
		}
		fields["category"] = strings.TrimSpace(*patch.Category)
	}
	if len(fields) == 0 {
		return nil, apperrors.InvalidArgument("no updatable fields provided")
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	return s.projectRepo.UpdateFields(ctx, id, fields)
}

func (s *projectService) DeleteProject(ctx context.Context, actor *models.Identity, id uint) error {
	if !CanModerate(actor) {
		return apperrors.Forbidden("admin access required")
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.statsCache.Invalidate(ctx)
	return nil
}

func (s *projectService) AddComment(ctx context.Context, actor *models.Identity, projectID uint, content string) (*models.CommentResponse, error) {
	if actor == nil {
		return nil, apperrors.Unauthenticated("authentication required")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.InvalidArgument("content must not be empty")
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	exists, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("project not found")
	}

	comment, err := s.commentRepo.Create(ctx, &models.Comment{
		ProjectID: projectID,
		UserID:    actor.ID,
		Content:   content,
	})
	if err != nil {
		return nil, err
	}

	response := toCommentResponse(comment)
	return &response, nil
}

func (s *projectService) Stats(ctx context.Context) (*models.ProjectStats, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if stats, ok := s.statsCache.Get(ctx); ok {
		return stats, nil
	}

	stats, err := s.projectRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	s.statsCache.Set(ctx, stats)
	return stats, nil
}

// normalizeThumbnail trims and checks the scheme prefix. Empty input stores
// NULL; the read path substitutes a default.
func normalizeThumbnail(raw string) (*string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	if !strings.HasPrefix(trimmed, "http") {
		return nil, apperrors.InvalidArgument("thumbnail must be a valid http(s) URL")
	}
	return &trimmed, nil
}

// NormalizeTags coerces tag input to a deduplicated set. A single element
// holding a JSON array is decoded; anything undecodable is rejected.
func NormalizeTags(raw []string) ([]string, error) {
	values := raw
	if len(raw) == 1 && strings.HasPrefix(strings.TrimSpace(raw[0]), "[") {
		if err := json.Unmarshal([]byte(raw[0]), &values); err != nil {
			return nil, apperrors.InvalidArgument("invalid tags format")
		}
	}

	seen := make(map[string]struct{}, len(values))
	tags := make([]string, 0, len(values))
	for _, tag := range values {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags, nil
}

func toProjectResponse(p *models.Project, includeComments bool) models.ProjectResponse {
	thumbnail := pickDefaultThumbnail(p.ID)
	if p.Thumbnail != nil && *p.Thumbnail != "" {
		thumbnail = *p.Thumbnail
	}

	response := models.ProjectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Thumbnail:    thumbnail,
		Category:     p.Category,
		AcademicYear: p.AcademicYear,
		Status:       p.Status,
		Files:        []models.FileDescriptor(p.Files),
		Tags:         []string(p.Tags),
		VideoURL:     p.VideoURL,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Author: models.AuthorSummary{
			Name:  p.Author.Name,
			Email: p.Author.Email,
		},
	}
	if response.Tags == nil {
		response.Tags = []string{}
	}

	if includeComments {
		response.Author.ID = p.AuthorID
		response.Comments = make([]models.CommentResponse, 0, len(p.Comments))
		for i := range p.Comments {
			response.Comments = append(response.Comments, toCommentResponse(&p.Comments[i]))
		}
	}
	return response
}

func toCommentResponse(c *models.Comment) models.CommentResponse {
	return models.CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		User: models.CommentUser{
			ID:     c.UserID,
			Name:   c.User.Name,
			Avatar: c.User.Avatar,
		},
	}
}
