package content

import (
	"context"

	"github.com/chronovahq/chronova-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles storefront content: the curated Instagram gallery and
// site-wide customer feedback.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListActivePosts returns the gallery in display order.
func (r *Repository) ListActivePosts(ctx context.Context, limit int) ([]models.InstagramPost, error) {
	var posts []models.InstagramPost
	if err := r.db.WithContext(ctx).
		Where("active = true").
		Order("position ASC, created_at DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListAllPosts returns every gallery entry for the back office.
func (r *Repository) ListAllPosts(ctx context.Context) ([]models.InstagramPost, error) {
	var posts []models.InstagramPost
	if err := r.db.WithContext(ctx).
		Order("position ASC, created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindPostByID loads a single gallery entry.
func (r *Repository) FindPostByID(ctx context.Context, id uuid.UUID) (*models.InstagramPost, error) {
	var post models.InstagramPost
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost persists a new gallery entry.
func (r *Repository) CreatePost(ctx context.Context, post *models.InstagramPost) (*models.InstagramPost, error) {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost saves the mutable gallery fields.
func (r *Repository) UpdatePost(ctx context.Context, post *models.InstagramPost) (*models.InstagramPost, error) {
	if err := r.db.WithContext(ctx).Model(post).
		Select("image_url", "caption", "permalink", "position", "active").
		Updates(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a gallery entry.
func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.InstagramPost{}, "id = ?", id).Error
}

// ListApprovedFeedback returns approved feedback newest first.
func (r *Repository) ListApprovedFeedback(ctx context.Context, limit int) ([]models.FeedbackEntry, error) {
	var entries []models.FeedbackEntry
	if err := r.db.WithContext(ctx).
		Where("approved = true").
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListAllFeedback returns every feedback entry for moderation.
func (r *Repository) ListAllFeedback(ctx context.Context) ([]models.FeedbackEntry, error) {
	var entries []models.FeedbackEntry
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateFeedback persists a new feedback entry, unapproved by default.
func (r *Repository) CreateFeedback(ctx context.Context, entry *models.FeedbackEntry) (*models.FeedbackEntry, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// SetFeedbackApproval flips moderation state. Returns rows affected.
func (r *Repository) SetFeedbackApproval(ctx context.Context, id uuid.UUID, approved bool) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.FeedbackEntry{}).
		Where("id = ?", id).
		Update("approved", approved)
	return result.RowsAffected, result.Error
}

// DeleteFeedback removes a feedback entry.
func (r *Repository) DeleteFeedback(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.FeedbackEntry{}, "id = ?", id).Error
}
