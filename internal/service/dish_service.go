package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"confusion/internal/cache"
	apperrors "confusion/internal/errors"
	"confusion/internal/model"
	"confusion/internal/repository"
)

// CommentInput is the client-writable part of a comment.
type CommentInput struct {
	Rating int
	Text   string
}

// CommentPatch holds the comment fields a client asked to change.
type CommentPatch struct {
	Rating *int
	Text   *string
}

// DishService manages dishes and the comments nested in them.
type DishService interface {
	CatalogService[model.Dish]

	Comments(ctx context.Context, dishID uuid.UUID) ([]model.Comment, error)
	Comment(ctx context.Context, dishID, commentID uuid.UUID) (*model.Comment, error)
	AddComment(ctx context.Context, dishID uuid.UUID, in CommentInput, author uuid.UUID) (*model.Dish, error)
	UpdateComment(ctx context.Context, dishID, commentID uuid.UUID, patch CommentPatch, author uuid.UUID) (*model.Dish, error)
	DeleteComment(ctx context.Context, dishID, commentID uuid.UUID, author uuid.UUID) (*model.Dish, error)
	DeleteAllComments(ctx context.Context, dishID uuid.UUID) (*model.Dish, error)
}

type dishService struct {
	*catalogService[model.Dish, *model.Dish]
	dishes repository.DishRepository
	now    func() time.Time
}

// NewDishService builds a DishService.
func NewDishService(dishes repository.DishRepository, cache *cache.Client) DishService {
	return &dishService{
		catalogService: newCatalogService[model.Dish, *model.Dish](dishes, cache, "dishes", apperrors.ErrDishNotFound),
		dishes:         dishes,
		now:            time.Now,
	}
}

func (s *dishService) Comments(ctx context.Context, dishID uuid.UUID) ([]model.Comment, error) {
	dish, err := s.Get(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if dish.Comments == nil {
		return []model.Comment{}, nil
	}
	return dish.Comments, nil
}

func (s *dishService) Comment(ctx context.Context, dishID, commentID uuid.UUID) (*model.Comment, error) {
	dish, err := s.Get(ctx, dishID)
	if err != nil {
		return nil, err
	}
	i := dish.CommentIndex(commentID)
	if i < 0 {
		return nil, apperrors.ErrCommentNotFound
	}
	return &dish.Comments[i], nil
}

// AddComment appends a comment written by author; any author in the payload is ignored.
func (s *dishService) AddComment(ctx context.Context, dishID uuid.UUID, in CommentInput, author uuid.UUID) (*model.Dish, error) {
	if err := checkRating(in.Rating); err != nil {
		return nil, err
	}
	dish, err := s.find(ctx, dishID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dish.Comments = append(dish.Comments, model.Comment{
		ID:        uuid.New(),
		DishID:    dish.ID,
		Rating:    in.Rating,
		Text:      in.Text,
		AuthorID:  author,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return s.saveComments(ctx, dish)
}

// UpdateComment changes rating and/or text of a comment owned by author.
func (s *dishService) UpdateComment(ctx context.Context, dishID, commentID uuid.UUID, patch CommentPatch, author uuid.UUID) (*model.Dish, error) {
	if patch.Rating != nil {
		if err := checkRating(*patch.Rating); err != nil {
			return nil, err
		}
	}
	dish, i, err := s.ownedComment(ctx, dishID, commentID, author)
	if err != nil {
		return nil, err
	}

	c := &dish.Comments[i]
	if patch.Rating != nil {
		c.Rating = *patch.Rating
	}
	if patch.Text != nil {
		c.Text = *patch.Text
	}
	c.UpdatedAt = s.now()
	return s.saveComments(ctx, dish)
}

// DeleteComment removes a comment owned by author.
func (s *dishService) DeleteComment(ctx context.Context, dishID, commentID uuid.UUID, author uuid.UUID) (*model.Dish, error) {
	dish, i, err := s.ownedComment(ctx, dishID, commentID, author)
	if err != nil {
		return nil, err
	}
	dish.Comments = append(dish.Comments[:i], dish.Comments[i+1:]...)
	return s.saveComments(ctx, dish)
}

// DeleteAllComments clears every comment of a dish regardless of author.
func (s *dishService) DeleteAllComments(ctx context.Context, dishID uuid.UUID) (*model.Dish, error) {
	dish, err := s.find(ctx, dishID)
	if err != nil {
		return nil, err
	}
	dish.Comments = nil
	return s.saveComments(ctx, dish)
}

// ownedComment resolves dish, then comment, then ownership, in that order.
func (s *dishService) ownedComment(ctx context.Context, dishID, commentID, author uuid.UUID) (*model.Dish, int, error) {
	dish, err := s.find(ctx, dishID)
	if err != nil {
		return nil, -1, err
	}
	i := dish.CommentIndex(commentID)
	if i < 0 {
		return nil, -1, apperrors.ErrCommentNotFound
	}
	if dish.Comments[i].AuthorID != author {
		return nil, -1, apperrors.ErrNotCommentAuthor
	}
	return dish, i, nil
}

func (s *dishService) saveComments(ctx context.Context, dish *model.Dish) (*model.Dish, error) {
	if err := s.dishes.Update(ctx, dish); err != nil {
		return nil, fmt.Errorf("save comments: %w", err)
	}
	s.invalidate(ctx, dish.ID)
	return dish, nil
}

func checkRating(rating int) error {
	if rating < 1 || rating > 5 {
		return apperrors.ErrInvalidRating
	}
	return nil
}
