package firestore

import (
	"context"

	"zerowaste/internal/domain/constants"
	"zerowaste/internal/domain/entity"
	"zerowaste/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// chatModel is the persistence shape of a chat document.
type chatModel struct {
	Participants []string `firestore:"participants"`
	PostID       string   `firestore:"postId"`
	PostTitle    string   `firestore:"postTitle"`
}

type chatRepository struct {
	client *firestore.Client
}

// NewChatRepository is the constructor for chatRepository.
func NewChatRepository(client *firestore.Client) repository.ChatRepository {
	return &chatRepository{client: client}
}

// FindByID retrieves a single chat by its document ID.
func (repo *chatRepository) FindByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := repo.client.Collection(constants.CollectionChats).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrChatNotFound
		}

		return nil, errors.Wrap(err, "failed to find chat by id")
	}

	var model chatModel
	if err := doc.DataTo(&model); err != nil {
		return nil, errors.Wrapf(err, "failed to decode chat %s", doc.Ref.ID)
	}

	return &entity.Chat{
		ID:           doc.Ref.ID,
		Participants: model.Participants,
		PostID:       model.PostID,
		PostTitle:    model.PostTitle,
	}, nil
}
