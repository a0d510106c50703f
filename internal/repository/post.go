package repository

import (
	"context"
	"errors"

	"devconnector/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoPost is the not-found error for post lookups; malformed ids are folded
// into the same error by the handlers.
var ErrNoPost = models.NewNotFoundError("no post found for this post id")

// ErrNoComment is the not-found error for comment lookups within a post.
var ErrNoComment = models.NewNotFoundError("no comment for this comment id")

// ErrAlreadyLiked rejects a duplicate like from the same user.
var ErrAlreadyLiked = models.NewValidationError("user already liked post")

// ErrNotLiked rejects an unlike from a user with no like on the post.
var ErrNotLiked = models.NewValidationError("user hasn't liked post yet")

// PostRepository owns the post aggregate; likes and comments are mutated only
// through these operations. Like/unlike and comment mutations return the
// refreshed sub-collection, matching the wire contract.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, postID, userID uint) ([]models.Like, error)
	Unlike(ctx context.Context, postID, userID uint) ([]models.Like, error)
	AddComment(ctx context.Context, postID uint, comment *models.Comment) ([]models.Comment, error)
	GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error)
	RemoveComment(ctx context.Context, postID, commentID uint) ([]models.Comment, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withAggregate preloads likes and comments most-recent-first.
func (r *postRepository) withAggregate(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("likes.id DESC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.id DESC")
		})
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return r.GetByID(ctx, post.ID)
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.withAggregate(r.db.WithContext(ctx)).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPost
		}
		return nil, models.NewInternalError(err)
	}
	post.Normalize()
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	err := r.withAggregate(r.db.WithContext(ctx)).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range posts {
		posts[i].Normalize()
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&models.Post{}, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

// Like inserts the caller into the like set. The duplicate pre-check keeps the
// contract's error shape; the unique (post_id, user_id) index plus DO NOTHING
// close the check-then-insert race without a duplicate-key failure.
func (r *postRepository) Like(ctx context.Context, postID, userID uint) ([]models.Like, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if count > 0 {
		return nil, ErrAlreadyLiked
	}

	like := models.Like{PostID: postID, UserID: userID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return r.likes(ctx, postID)
}

func (r *postRepository) Unlike(ctx context.Context, postID, userID uint) ([]models.Like, error) {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotLiked
	}

	return r.likes(ctx, postID)
}

func (r *postRepository) AddComment(ctx context.Context, postID uint, comment *models.Comment) ([]models.Comment, error) {
	comment.PostID = postID
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return r.comments(ctx, postID)
}

func (r *postRepository) GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoComment
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// RemoveComment deletes the comment by id. A missing id is reported as
// not-found rather than silently ignored.
func (r *postRepository) RemoveComment(ctx context.Context, postID, commentID uint) ([]models.Comment, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		Delete(&models.Comment{})
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNoComment
	}
	return r.comments(ctx, postID)
}

func (r *postRepository) likes(ctx context.Context, postID uint) ([]models.Like, error) {
	likes := []models.Like{}
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id DESC").
		Find(&likes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

func (r *postRepository) comments(ctx context.Context, postID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id DESC").
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
