package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pensacomp/lms-service/internal/models"
	"github.com/pensacomp/lms-service/internal/repositories"
	"github.com/pensacomp/lms-service/internal/validator"
)

type postService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewPostService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) PostService {
	return &postService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Create derives the slug from the title and rejects duplicates: slugs are
// the posts' public identity and must stay unique.
func (s *postService) Create(ctx context.Context, req *validator.PostCreateRequest) (*models.Post, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	slug := Slugify(req.Title)
	if slug == "" {
		return nil, NewValidationError(errors.New("title produces an empty slug"))
	}

	taken, err := s.repo.Post().ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, NewInternalError(err)
	}
	if taken {
		return nil, ErrSlugTaken
	}

	author := req.Author
	if author == "" {
		author = models.DefaultPostAuthor
	}

	post := &models.Post{
		Title:       req.Title,
		Slug:        slug,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		CoverImage:  req.CoverImage,
		Author:      author,
		Tags:        toJSON(req.Tags),
		PublishedAt: time.Now(),
	}

	if err := s.repo.Post().Create(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, NewInternalError(err)
	}

	s.logger.Info("post created", "slug", post.Slug)
	return post, nil
}

func (s *postService) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	post, err := s.repo.Post().GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, NewInternalError(err)
	}
	return post, nil
}

func (s *postService) List(ctx context.Context, filters repositories.PostFilters) ([]*models.Post, int64, error) {
	posts, total, err := s.repo.Post().List(ctx, filters)
	if err != nil {
		return nil, 0, NewInternalError(err)
	}
	return posts, total, nil
}

// Update patches the provided fields. A new title re-derives the slug, with
// the same uniqueness check as creation.
func (s *postService) Update(ctx context.Context, slug string, req *validator.PostUpdateRequest) (*models.Post, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	post, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != post.Title {
		newSlug := Slugify(*req.Title)
		if newSlug == "" {
			return nil, NewValidationError(errors.New("title produces an empty slug"))
		}
		if newSlug != post.Slug {
			taken, err := s.repo.Post().ExistsBySlug(ctx, newSlug)
			if err != nil {
				return nil, NewInternalError(err)
			}
			if taken {
				return nil, ErrSlugTaken
			}
			post.Slug = newSlug
		}
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.CoverImage != nil {
		post.CoverImage = *req.CoverImage
	}
	if req.Author != nil {
		post.Author = *req.Author
	}
	if req.Tags != nil {
		post.Tags = toJSON(req.Tags)
	}

	if err := s.repo.Post().Update(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, NewInternalError(err)
	}

	return post, nil
}

func (s *postService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.Post().DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPostNotFound
		}
		return NewInternalError(err)
	}
	s.logger.Info("post deleted", "slug", slug)
	return nil
}
