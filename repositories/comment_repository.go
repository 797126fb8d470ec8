package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/kwesi-koranteng/cityhub-backend/models"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	CountByProjectID(ctx context.Context, projectID uint) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, classify(err, "comment not found")
	}
	var created models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&created, comment.ID).Error; err != nil {
		return nil, classify(err, "comment not found")
	}
	return &created, nil
}

func (r *commentRepository) CountByProjectID(ctx context.Context, projectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("project_id = ?", projectID).Count(&count).Error
	if err != nil {
		return 0, classify(err, "comment not found")
	}
	return count, nil
}
