package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/kwesi-koranteng/cityhub-backend/apperrors"
	"github.com/kwesi-koranteng/cityhub-backend/models"
)

// fakeStore backs the service tests with an in-memory implementation of the
// project and comment repositories.
type fakeStore struct {
	nextProjectID uint
	nextCommentID uint
	projects      map[uint]*models.Project
	comments      map[uint][]models.Comment
	users         map[uint]models.User
	statsCalls    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		projects: make(map[uint]*models.Project),
		comments: make(map[uint][]models.Comment),
		users: map[uint]models.User{
			1: {ID: 1, Name: "Ama Mensah", Email: "ama@example.com", Role: models.RoleUser},
			2: {ID: 2, Name: "Kofi Admin", Email: "kofi@example.com", Role: models.RoleAdmin},
		},
	}
}

func (f *fakeStore) seedProject(title string, status models.ProjectStatus, createdAt time.Time) *models.Project {
	f.nextProjectID++
	p := &models.Project{
		ID:           f.nextProjectID,
		Title:        title,
		Description:  "description of " + title,
		AuthorID:     1,
		Category:     "web",
		AcademicYear: "2023/2024",
		Status:       status,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	f.projects[p.ID] = p
	return p
}

func (f *fakeStore) Create(ctx context.Context, project *models.Project) error {
	f.nextProjectID++
	project.ID = f.nextProjectID
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	stored := *project
	f.projects[project.ID] = &stored
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, apperrors.NotFound("project not found")
	}
	out := *p
	out.Author = f.users[p.AuthorID]
	comments := append([]models.Comment(nil), f.comments[id]...)
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	for i := range comments {
		comments[i].User = f.users[comments[i].UserID]
	}
	out.Comments = comments
	return &out, nil
}

func (f *fakeStore) List(ctx context.Context, params models.ProjectListParams) ([]models.Project, int64, error) {
	var matched []models.Project
	for _, p := range f.projects {
		if params.Status != "" && string(p.Status) != params.Status {
			continue
		}
		if params.Category != "" && p.Category != params.Category {
			continue
		}
		if params.AcademicYear != "" && p.AcademicYear != params.AcademicYear {
			continue
		}
		if params.Search != "" {
			needle := strings.ToLower(params.Search)
			if !strings.Contains(strings.ToLower(p.Title), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		if len(params.Tags) > 0 && !anyTagMatch(p.Tags, params.Tags) {
			continue
		}
		out := *p
		out.Author = f.users[p.AuthorID]
		matched = append(matched, out)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	offset := (params.Page - 1) * params.Limit
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + params.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func anyTagMatch(have []string, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id uint, status models.ProjectStatus) (*models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, apperrors.NotFound("project not found")
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	out := *p
	return &out, nil
}

func (f *fakeStore) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, apperrors.NotFound("project not found")
	}
	if v, ok := fields["title"].(string); ok {
		p.Title = v
	}
	if v, ok := fields["description"].(string); ok {
		p.Description = v
	}
	if v, ok := fields["category"].(string); ok {
		p.Category = v
	}
	p.UpdatedAt = time.Now()
	out := *p
	return &out, nil
}

func (f *fakeStore) Delete(ctx context.Context, id uint) error {
	if _, ok := f.projects[id]; !ok {
		return apperrors.NotFound("project not found")
	}
	delete(f.projects, id)
	delete(f.comments, id)
	return nil
}

func (f *fakeStore) Exists(ctx context.Context, id uint) (bool, error) {
	_, ok := f.projects[id]
	return ok, nil
}

func (f *fakeStore) Stats(ctx context.Context) (*models.ProjectStats, error) {
	f.statsCalls++
	stats := &models.ProjectStats{}
	for _, p := range f.projects {
		stats.Total++
		switch p.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusApproved:
			stats.Approved++
		}
	}
	return stats, nil
}

func (f *fakeStore) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	f.nextCommentID++
	comment.ID = f.nextCommentID
	comment.CreatedAt = time.Now()
	f.comments[comment.ProjectID] = append(f.comments[comment.ProjectID], *comment)
	out := *comment
	out.User = f.users[comment.UserID]
	return &out, nil
}

func (f *fakeStore) CountByProjectID(ctx context.Context, projectID uint) (int64, error) {
	return int64(len(f.comments[projectID])), nil
}

// commentRepoAdapter exposes the comment half of fakeStore under the
// repository interface name.
type commentRepoAdapter struct {
	store *fakeStore
}

func (a commentRepoAdapter) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	return a.store.CreateComment(ctx, comment)
}

func (a commentRepoAdapter) CountByProjectID(ctx context.Context, projectID uint) (int64, error) {
	return a.store.CountByProjectID(ctx, projectID)
}

func newTestProjectService(store *fakeStore) ProjectService {
	return NewProjectService(store, commentRepoAdapter{store: store}, nil, 0)
}
