package clients

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lexdesk/lexdesk/internal/models"
)

// Repository is the ownership-scoped client store. Every read and write
// except FindByIDs filters by the owning attorney; an update or delete
// against another attorney's record is indistinguishable from a missing id.
type Repository interface {
	List(ctx context.Context, attorney primitive.ObjectID) ([]models.Client, error)
	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, attorney, id primitive.ObjectID, patch models.ClientPatch) (*models.Client, error)
	Delete(ctx context.Context, attorney, id primitive.ObjectID) error
	Search(ctx context.Context, attorney primitive.ObjectID, pattern string, limit int) ([]models.Client, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Client, error)
}

// MongoRepository implements Repository on the clients collection.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) List(ctx context.Context, attorney primitive.ObjectID) ([]models.Client, error) {
	cur, err := r.col.Find(ctx, bson.M{"attorney": attorney})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Client{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) Create(ctx context.Context, c *models.Client) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, c)
	return err
}

func clientPatchSet(patch models.ClientPatch) bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}
	return set
}

func (r *MongoRepository) Update(ctx context.Context, attorney, id primitive.ObjectID, patch models.ClientPatch) (*models.Client, error) {
	filter := bson.M{"_id": id, "attorney": attorney}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Client
	err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": clientPatchSet(patch)}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFoundOrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, attorney, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "attorney": attorney})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFoundOrUnauthorized
	}
	return nil
}

func (r *MongoRepository) Search(ctx context.Context, attorney primitive.ObjectID, pattern string, limit int) ([]models.Client, error) {
	re := bson.M{"$regex": pattern, "$options": "i"}
	filter := bson.M{
		"attorney": attorney,
		"$or": []bson.M{
			{"name": re},
			{"email": re},
			{"phone": re},
		},
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Client{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Client, error) {
	out := make(map[primitive.ObjectID]models.Client, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var c models.Client
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out[c.ID] = c
	}
	return out, cur.Err()
}
