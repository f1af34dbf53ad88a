package firestore

import (
	"context"

	"zerowaste/internal/domain/constants"
	"zerowaste/internal/domain/entity"
	"zerowaste/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// userModel is the persistence shape of a user document.
type userModel struct {
	Name     string    `firestore:"name"`
	FCMToken string    `firestore:"fcmToken"`
	Location *geoPoint `firestore:"location"`
}

type userRepository struct {
	client *firestore.Client
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

// FindByID retrieves a single user by their document ID.
func (repo *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := repo.client.Collection(constants.CollectionUsers).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(doc)
}

// FindAll retrieves the full user population.
func (repo *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	iter := repo.client.Collection(constants.CollectionUsers).Documents(ctx)
	defer iter.Stop()

	var users []*entity.User
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate users")
		}

		user, err := toUserDomain(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// ClearPushToken removes a stale push token from the user record.
func (repo *userRepository) ClearPushToken(ctx context.Context, id string) error {
	_, err := repo.client.Collection(constants.CollectionUsers).Doc(id).Update(ctx, []firestore.Update{
		{Path: "fcmToken", Value: firestore.Delete},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to clear push token")
	}

	return nil
}

// toUserDomain maps a user document back to a pure domain entity.
func toUserDomain(doc *firestore.DocumentSnapshot) (*entity.User, error) {
	var model userModel
	if err := doc.DataTo(&model); err != nil {
		return nil, errors.Wrapf(err, "failed to decode user %s", doc.Ref.ID)
	}

	user := &entity.User{
		ID:       doc.Ref.ID,
		Name:     model.Name,
		FCMToken: model.FCMToken,
	}
	if model.Location != nil {
		user.Location = &entity.Coordinate{
			Latitude:  model.Location.Latitude,
			Longitude: model.Location.Longitude,
		}
	}

	return user, nil
}
