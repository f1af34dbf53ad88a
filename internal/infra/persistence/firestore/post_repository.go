package firestore

import (
	"context"
	"time"

	"zerowaste/internal/domain/constants"
	"zerowaste/internal/domain/entity"
	"zerowaste/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// postModel is the persistence shape of a post document.
type postModel struct {
	Title     string    `firestore:"title"`
	PostedBy  string    `firestore:"postedBy"`
	Location  geoPoint  `firestore:"location"`
	Status    string    `firestore:"status"`
	CreatedAt time.Time `firestore:"createdAt"`
	Expiry    time.Time `firestore:"expiry"`
}

type postRepository struct {
	client *firestore.Client
}

// NewPostRepository is the constructor for postRepository.
func NewPostRepository(client *firestore.Client) repository.PostRepository {
	return &postRepository{client: client}
}

// FindByID retrieves a single post by its document ID.
func (repo *postRepository) FindByID(ctx context.Context, id string) (*entity.Post, error) {
	doc, err := repo.client.Collection(constants.CollectionPosts).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrPostNotFound
		}

		return nil, errors.Wrap(err, "failed to find post by id")
	}

	var model postModel
	if err := doc.DataTo(&model); err != nil {
		return nil, errors.Wrapf(err, "failed to decode post %s", doc.Ref.ID)
	}

	return &entity.Post{
		ID:       doc.Ref.ID,
		Title:    model.Title,
		PostedBy: model.PostedBy,
		Location: entity.Coordinate{
			Latitude:  model.Location.Latitude,
			Longitude: model.Location.Longitude,
		},
		Status:    entity.PostStatus(model.Status),
		CreatedAt: model.CreatedAt,
		Expiry:    model.Expiry,
	}, nil
}

// MarkExpired transitions an available post to the expired status.
func (repo *postRepository) MarkExpired(ctx context.Context, id string) error {
	_, err := repo.client.Collection(constants.CollectionPosts).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(entity.PostStatusExpired)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrPostNotFound
		}

		return errors.Wrap(err, "failed to mark post expired")
	}

	return nil
}
