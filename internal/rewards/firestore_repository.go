package rewards

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const progressCollection = "reward_progress"

// progressDocument wraps the serialized payload so the engine keeps full
// control of the JSON schema while Firestore stores one document per user.
type progressDocument struct {
	UserID    string    `firestore:"user_id"`
	Payload   string    `firestore:"payload"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore repository
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) Load(ctx context.Context, userID string) ([]byte, error) {
	doc, err := r.client.Collection(progressCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get progress document: %w", err)
	}

	var stored progressDocument
	if err := doc.DataTo(&stored); err != nil {
		return nil, fmt.Errorf("unmarshal progress document: %w", err)
	}

	return []byte(stored.Payload), nil
}

func (r *firestoreRepository) Save(ctx context.Context, userID string, payload []byte) error {
	stored := progressDocument{
		UserID:    userID,
		Payload:   string(payload),
		UpdatedAt: time.Now().UTC(),
	}

	if _, err := r.client.Collection(progressCollection).Doc(userID).Set(ctx, stored); err != nil {
		return fmt.Errorf("set progress document: %w", err)
	}
	return nil
}
