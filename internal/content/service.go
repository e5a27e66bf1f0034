package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chronovahq/chronova-backend/pkg/db/models"
	pkgerrors "github.com/chronovahq/chronova-backend/pkg/errors"
	"github.com/chronovahq/chronova-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type contentRepo interface {
	ListActivePosts(ctx context.Context, limit int) ([]models.InstagramPost, error)
	ListAllPosts(ctx context.Context) ([]models.InstagramPost, error)
	FindPostByID(ctx context.Context, id uuid.UUID) (*models.InstagramPost, error)
	CreatePost(ctx context.Context, post *models.InstagramPost) (*models.InstagramPost, error)
	UpdatePost(ctx context.Context, post *models.InstagramPost) (*models.InstagramPost, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	ListApprovedFeedback(ctx context.Context, limit int) ([]models.FeedbackEntry, error)
	ListAllFeedback(ctx context.Context) ([]models.FeedbackEntry, error)
	CreateFeedback(ctx context.Context, entry *models.FeedbackEntry) (*models.FeedbackEntry, error)
	SetFeedbackApproval(ctx context.Context, id uuid.UUID, approved bool) (int64, error)
	DeleteFeedback(ctx context.Context, id uuid.UUID) error
}

// UpsertPostInput carries the admin payload for gallery entries.
type UpsertPostInput struct {
	ImageURL  string
	Caption   *string
	Permalink *string
	Position  int
	Active    bool
}

// SubmitFeedbackInput is the storefront feedback payload.
type SubmitFeedbackInput struct {
	Author string
	Body   string
	Rating int
}

// Service exposes storefront content reads plus back-office management.
type Service interface {
	ListGallery(ctx context.Context, limit int) ([]models.InstagramPost, error)
	ListFeedback(ctx context.Context, limit int) ([]models.FeedbackEntry, error)
	SubmitFeedback(ctx context.Context, input SubmitFeedbackInput) (*models.FeedbackEntry, error)

	ListAllPosts(ctx context.Context) ([]models.InstagramPost, error)
	CreatePost(ctx context.Context, input UpsertPostInput) (*models.InstagramPost, error)
	UpdatePost(ctx context.Context, id uuid.UUID, input UpsertPostInput) (*models.InstagramPost, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	ListAllFeedback(ctx context.Context) ([]models.FeedbackEntry, error)
	SetFeedbackApproval(ctx context.Context, id uuid.UUID, approved bool) error
	DeleteFeedback(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo contentRepo
}

// NewService builds a content service.
func NewService(repo contentRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("content repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListGallery(ctx context.Context, limit int) ([]models.InstagramPost, error) {
	posts, err := s.repo.ListActivePosts(ctx, pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list gallery")
	}
	return posts, nil
}

func (s *service) ListFeedback(ctx context.Context, limit int) ([]models.FeedbackEntry, error) {
	entries, err := s.repo.ListApprovedFeedback(ctx, pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list feedback")
	}
	return entries, nil
}

func (s *service) SubmitFeedback(ctx context.Context, input SubmitFeedbackInput) (*models.FeedbackEntry, error) {
	author := strings.TrimSpace(input.Author)
	body := strings.TrimSpace(input.Body)
	if author == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "author is required")
	}
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "feedback body is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	entry := &models.FeedbackEntry{
		Author:   author,
		Body:     body,
		Rating:   input.Rating,
		Approved: false,
	}
	created, err := s.repo.CreateFeedback(ctx, entry)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create feedback")
	}
	return created, nil
}

func (s *service) ListAllPosts(ctx context.Context) ([]models.InstagramPost, error) {
	posts, err := s.repo.ListAllPosts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list posts")
	}
	return posts, nil
}

func (s *service) CreatePost(ctx context.Context, input UpsertPostInput) (*models.InstagramPost, error) {
	if strings.TrimSpace(input.ImageURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image url is required")
	}

	post := &models.InstagramPost{}
	applyPostInput(post, input)

	created, err := s.repo.CreatePost(ctx, post)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create post")
	}
	return created, nil
}

func (s *service) UpdatePost(ctx context.Context, id uuid.UUID, input UpsertPostInput) (*models.InstagramPost, error) {
	if strings.TrimSpace(input.ImageURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image url is required")
	}

	post, err := s.repo.FindPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load post")
	}

	applyPostInput(post, input)
	updated, err := s.repo.UpdatePost(ctx, post)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update post")
	}
	return updated, nil
}

func (s *service) DeletePost(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeletePost(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete post")
	}
	return nil
}

func (s *service) ListAllFeedback(ctx context.Context) ([]models.FeedbackEntry, error) {
	entries, err := s.repo.ListAllFeedback(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list feedback")
	}
	return entries, nil
}

func (s *service) SetFeedbackApproval(ctx context.Context, id uuid.UUID, approved bool) error {
	affected, err := s.repo.SetFeedbackApproval(ctx, id, approved)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update feedback")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "feedback not found")
	}
	return nil
}

func (s *service) DeleteFeedback(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteFeedback(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete feedback")
	}
	return nil
}

func applyPostInput(post *models.InstagramPost, input UpsertPostInput) {
	post.ImageURL = strings.TrimSpace(input.ImageURL)
	post.Caption = input.Caption
	post.Permalink = input.Permalink
	post.Position = input.Position
	post.Active = input.Active
}
