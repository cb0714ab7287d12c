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
	groupsCollection      = "groups"
	membershipsCollection = "user_groups"
)

// GroupRepository implements ports.GroupRepository using MongoDB. Foreign keys
// (group_id, user_id) are stored as hex strings, the form the domain uses.
type GroupRepository struct {
	groups      *mongo.Collection
	memberships *mongo.Collection
}

func NewGroupRepository(db *mongo.Database) *GroupRepository {
	return &GroupRepository{
		groups:      db.Collection(groupsCollection),
		memberships: db.Collection(membershipsCollection),
	}
}

type mongoGroup struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	IsActive  bool               `bson:"is_active"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (mg mongoGroup) toDomain() *domain.Group {
	return &domain.Group{
		ID:        mg.ID.Hex(),
		Name:      mg.Name,
		IsActive:  mg.IsActive,
		CreatedAt: mg.CreatedAt,
		UpdatedAt: mg.UpdatedAt,
	}
}

type mongoMembership struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	GroupID   string             `bson:"group_id"`
	UserID    string             `bson:"user_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mm mongoMembership) toDomain() *domain.Membership {
	return &domain.Membership{
		ID:        mm.ID.Hex(),
		GroupID:   mm.GroupID,
		UserID:    mm.UserID,
		CreatedAt: mm.CreatedAt,
	}
}

func (r *GroupRepository) Create(ctx context.Context, group *domain.Group) (*domain.Group, error) {
	doc := mongoGroup{
		Name:      group.Name,
		IsActive:  group.IsActive,
		CreatedAt: group.CreatedAt,
		UpdatedAt: group.UpdatedAt,
	}

	res, err := r.groups.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.NewUniqueFieldError("name", "name must be unique")
		}
		return nil, fmt.Errorf("insert group: %w", err)
	}

	created := *group
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *GroupRepository) FindActiveByID(ctx context.Context, id string) (*domain.Group, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidGroup
	}

	var mg mongoGroup
	if err := r.groups.FindOne(ctx, bson.M{"_id": oid, "is_active": true}).Decode(&mg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidGroup
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	return mg.toDomain(), nil
}

func (r *GroupRepository) Deactivate(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	res, err := r.groups.UpdateOne(ctx,
		bson.M{"_id": oid, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("deactivate group: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *GroupRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = r.groups.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *GroupRepository) ListAll(ctx context.Context) ([]*domain.Group, error) {
	cur, err := r.groups.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return decodeGroups(ctx, cur)
}

func (r *GroupRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Group, error) {
	cur, err := r.memberships.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	memberships, err := decodeMemberships(ctx, cur)
	if err != nil {
		return nil, err
	}

	oids := make([]primitive.ObjectID, 0, len(memberships))
	for _, m := range memberships {
		oid, err := primitive.ObjectIDFromHex(m.GroupID)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return nil, nil
	}

	gcur, err := r.groups.Find(ctx,
		bson.M{"_id": bson.M{"$in": oids}, "is_active": true},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list user groups: %w", err)
	}
	return decodeGroups(ctx, gcur)
}

func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID string) (*domain.Membership, error) {
	doc := mongoMembership{
		GroupID:   groupID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	res, err := r.memberships.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateMembership()
		}
		return nil, fmt.Errorf("insert membership: %w", err)
	}

	m := doc.toDomain()
	m.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return m, nil
}

func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, userID string) (int64, error) {
	res, err := r.memberships.DeleteOne(ctx, bson.M{"group_id": groupID, "user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("remove membership: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *GroupRepository) FindMembership(ctx context.Context, userID, groupID string) (*domain.Membership, error) {
	var mm mongoMembership
	err := r.memberships.FindOne(ctx, bson.M{"group_id": groupID, "user_id": userID}).Decode(&mm)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find membership: %w", err)
	}
	return mm.toDomain(), nil
}

func (r *GroupRepository) ListMemberships(ctx context.Context, groupID string) ([]*domain.Membership, error) {
	cur, err := r.memberships.Find(ctx, bson.M{"group_id": groupID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return decodeMemberships(ctx, cur)
}

// EnsureIndexes creates the unique name index and the compound membership
// index that backs the duplicate pre-check under concurrency.
func (r *GroupRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.groups.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("name_unique"),
	})
	if err != nil {
		return err
	}

	_, err = r.memberships.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("group_user_unique"),
	})
	return err
}

func decodeGroups(ctx context.Context, cur *mongo.Cursor) ([]*domain.Group, error) {
	defer cur.Close(ctx)

	var out []*domain.Group
	for cur.Next(ctx) {
		var mg mongoGroup
		if err := cur.Decode(&mg); err != nil {
			return nil, fmt.Errorf("decode group: %w", err)
		}
		out = append(out, mg.toDomain())
	}
	return out, cur.Err()
}

func decodeMemberships(ctx context.Context, cur *mongo.Cursor) ([]*domain.Membership, error) {
	defer cur.Close(ctx)

	var out []*domain.Membership
	for cur.Next(ctx) {
		var mm mongoMembership
		if err := cur.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode membership: %w", err)
		}
		out = append(out, mm.toDomain())
	}
	return out, cur.Err()
}
