package repositories

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kwesi-koranteng/cityhub-backend/apperrors"
	"github.com/kwesi-koranteng/cityhub-backend/models"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	List(ctx context.Context, params models.ProjectListParams) ([]models.Project, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.ProjectStatus) (*models.Project, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*models.Project, error)
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	Stats(ctx context.Context) (*models.ProjectStats, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return classify(r.db.WithContext(ctx).Create(project).Error, "project not found")
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at DESC")
		}).
		Preload("Comments.User").
		First(&project, id).Error
	if err != nil {
		return nil, classify(err, "project not found")
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, params models.ProjectListParams) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Project{}).Preload("Author")

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.AcademicYear != "" {
		query = query.Where("academic_year = ?", params.AcademicYear)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if len(params.Tags) > 0 {
		// Any-match over the jsonb tag array.
		conds := make([]string, 0, len(params.Tags))
		args := make([]interface{}, 0, len(params.Tags))
		for _, tag := range params.Tags {
			encoded, err := json.Marshal([]string{tag})
			if err != nil {
				return nil, 0, apperrors.InvalidArgument("invalid tag filter")
			}
			conds = append(conds, "tags @> ?")
			args = append(args, string(encoded))
		}
		query = query.Where(strings.Join(conds, " OR "), args...)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, classify(err, "project not found")
	}

	// id breaks created_at ties so pages stay stable under concurrent inserts.
	offset := (params.Page - 1) * params.Limit
	err := query.Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(params.Limit).
		Find(&projects).Error
	if err != nil {
		return nil, 0, classify(err, "project not found")
	}

	return projects, total, nil
}

// UpdateStatus checks existence and mutates in one statement so the row cannot
// disappear between check and write.
func (r *projectRepository) UpdateStatus(ctx context.Context, id uint, status models.ProjectStatus) (*models.Project, error) {
	var project models.Project
	tx := r.db.WithContext(ctx).Model(&project).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("status", status)
	if tx.Error != nil {
		return nil, classify(tx.Error, "project not found")
	}
	if tx.RowsAffected == 0 {
		return nil, apperrors.NotFound("project not found")
	}
	return &project, nil
}

func (r *projectRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*models.Project, error) {
	var project models.Project
	tx := r.db.WithContext(ctx).Model(&project).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(fields)
	if tx.Error != nil {
		return nil, classify(tx.Error, "project not found")
	}
	if tx.RowsAffected == 0 {
		return nil, apperrors.NotFound("project not found")
	}
	return &project, nil
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Project{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return classify(err, "project not found")
}

func (r *projectRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, classify(err, "project not found")
	}
	return count > 0, nil
}

func (r *projectRepository) Stats(ctx context.Context) (*models.ProjectStats, error) {
	var stats models.ProjectStats

	if err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&stats.Total).Error; err != nil {
		return nil, classify(err, "project not found")
	}
	if err := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("status = ?", models.StatusPending).Count(&stats.Pending).Error; err != nil {
		return nil, classify(err, "project not found")
	}
	if err := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("status = ?", models.StatusApproved).Count(&stats.Approved).Error; err != nil {
		return nil, classify(err, "project not found")
	}

	err := r.db.WithContext(ctx).Model(&models.Project{}).
		Select("projects.id, projects.title, users.name AS author, projects.status, projects.created_at").
		Joins("JOIN users ON users.id = projects.author_id").
		Order("projects.created_at DESC, projects.id DESC").
		Limit(5).
		Scan(&stats.Recent).Error
	if err != nil {
		return nil, classify(err, "project not found")
	}

	return &stats, nil
}
