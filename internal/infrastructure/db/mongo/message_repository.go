package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/groupchat/messaging-api/internal/core/domain"
)

const (
	messagesCollection = "messages"
	likesCollection    = "message_likes"
)

// MessageRepository implements ports.MessageRepository using MongoDB.
type MessageRepository struct {
	messages *mongo.Collection
	likes    *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{
		messages: db.Collection(messagesCollection),
		likes:    db.Collection(likesCollection),
	}
}

type mongoMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	GroupID   string             `bson:"group_id"`
	SenderID  string             `bson:"sender_id"`
	IsDeleted bool               `bson:"is_deleted"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mm mongoMessage) toDomain() *domain.Message {
	return &domain.Message{
		ID:        mm.ID.Hex(),
		Text:      mm.Text,
		GroupID:   mm.GroupID,
		SenderID:  mm.SenderID,
		IsDeleted: mm.IsDeleted,
		CreatedAt: mm.CreatedAt,
	}
}

type mongoLike struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	MessageID string             `bson:"message_id"`
	UserID    string             `bson:"user_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (ml mongoLike) toDomain() *domain.MessageLike {
	return &domain.MessageLike{
		ID:        ml.ID.Hex(),
		MessageID: ml.MessageID,
		UserID:    ml.UserID,
		CreatedAt: ml.CreatedAt,
	}
}

func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	doc := mongoMessage{
		Text:      message.Text,
		GroupID:   message.GroupID,
		SenderID:  message.SenderID,
		IsDeleted: false,
		CreatedAt: message.CreatedAt,
	}

	res, err := r.messages.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	created := *message
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MessageRepository) ListByGroup(ctx context.Context, groupID string) ([]*domain.Message, error) {
	cur, err := r.messages.Find(ctx,
		bson.M{"group_id": groupID, "is_deleted": false},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Message
	for cur.Next(ctx) {
		var mm mongoMessage
		if err := cur.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		out = append(out, mm.toDomain())
	}
	return out, cur.Err()
}

// SoftDelete flips is_deleted only when the sender matches. The filter makes
// "not found" and "not owned" the same zero count; re-deleting an already
// deleted message still matches and counts as success.
func (r *MessageRepository) SoftDelete(ctx context.Context, messageID, senderID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return 0, nil
	}

	res, err := r.messages.UpdateOne(ctx,
		bson.M{"_id": oid, "sender_id": senderID},
		bson.M{"$set": bson.M{"is_deleted": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("delete message: %w", err)
	}
	return res.MatchedCount, nil
}

func (r *MessageRepository) FindLike(ctx context.Context, messageID, userID string) (*domain.MessageLike, error) {
	var ml mongoLike
	err := r.likes.FindOne(ctx, bson.M{"message_id": messageID, "user_id": userID}).Decode(&ml)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find like: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *MessageRepository) CreateLike(ctx context.Context, like *domain.MessageLike) (*domain.MessageLike, error) {
	doc := mongoLike{
		MessageID: like.MessageID,
		UserID:    like.UserID,
		CreatedAt: like.CreatedAt,
	}

	res, err := r.likes.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.NewUniqueFieldError("userId", "messageId and userId combination must be unique.")
		}
		return nil, fmt.Errorf("insert like: %w", err)
	}

	created := *like
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MessageRepository) RemoveLike(ctx context.Context, messageID, userID string) (int64, error) {
	res, err := r.likes.DeleteOne(ctx, bson.M{"message_id": messageID, "user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("remove like: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MessageRepository) ListLikes(ctx context.Context, messageID string) ([]*domain.MessageLike, error) {
	cur, err := r.likes.Find(ctx, bson.M{"message_id": messageID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.MessageLike
	for cur.Next(ctx) {
		var ml mongoLike
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode like: %w", err)
		}
		out = append(out, ml.toDomain())
	}
	return out, cur.Err()
}

// EnsureIndexes creates the listing index and the unique like pair index.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = r.likes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "message_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("message_user_unique"),
	})
	return err
}
