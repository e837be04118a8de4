package cases

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lexdesk/lexdesk/internal/models"
)

// Repository is the ownership-scoped case store. Update and Delete merge the
// ownership filter into the id filter, so a foreign id and a missing id are
// indistinguishable (ErrNotFoundOrUnauthorized).
type Repository interface {
	List(ctx context.Context, attorney primitive.ObjectID) ([]models.Case, error)
	Create(ctx context.Context, c *models.Case) error
	Update(ctx context.Context, attorney, id primitive.ObjectID, patch models.CasePatch) (*models.Case, error)
	Delete(ctx context.Context, attorney, id primitive.ObjectID) error
	GetOwned(ctx context.Context, attorney, id primitive.ObjectID) (*models.Case, error)
	SetDocuments(ctx context.Context, id primitive.ObjectID, docs []models.Document) error
	Search(ctx context.Context, attorney primitive.ObjectID, pattern string, limit int) ([]models.Case, error)
}

// MongoRepository implements Repository on the cases collection. A unique
// index on caseNumber (see database.EnsureIndexes) backs the duplicate-key
// failure mode.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) List(ctx context.Context, attorney primitive.ObjectID) ([]models.Case, error) {
	cur, err := r.col.Find(ctx, bson.M{"attorney": attorney})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Case{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) Create(ctx context.Context, c *models.Case) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.Documents == nil {
		c.Documents = []models.Document{}
	}
	if c.Checklists == nil {
		c.Checklists = []models.ChecklistItem{}
	}
	_, err := r.col.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrDuplicateCaseNumber
	}
	return err
}

func casePatchSet(patch models.CasePatch) bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.CaseNumber != nil {
		set["caseNumber"] = *patch.CaseNumber
	}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Type != nil {
		set["type"] = *patch.Type
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Priority != nil {
		set["priority"] = *patch.Priority
	}
	if patch.Client != nil {
		set["client"] = *patch.Client
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Court != nil {
		set["court"] = *patch.Court
	}
	if patch.Judge != nil {
		set["judge"] = *patch.Judge
	}
	if patch.OpposingCounsel != nil {
		set["opposingCounsel"] = *patch.OpposingCounsel
	}
	if patch.InternalNotes != nil {
		set["internalNotes"] = *patch.InternalNotes
	}
	if patch.FilingDate != nil {
		set["filingDate"] = *patch.FilingDate
	}
	if patch.HearingDate != nil {
		set["hearingDate"] = *patch.HearingDate
	}
	if patch.ClosingDate != nil {
		set["closingDate"] = *patch.ClosingDate
	}
	if patch.Resolution != nil {
		set["resolution"] = *patch.Resolution
	}
	// embedded arrays replace wholesale; concurrent editors last-write-win
	if patch.Documents != nil {
		set["documents"] = *patch.Documents
	}
	if patch.Checklists != nil {
		set["checklists"] = *patch.Checklists
	}
	return set
}

func (r *MongoRepository) Update(ctx context.Context, attorney, id primitive.ObjectID, patch models.CasePatch) (*models.Case, error) {
	filter := bson.M{"_id": id, "attorney": attorney}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Case
	err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": casePatchSet(patch)}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFoundOrUnauthorized
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, models.ErrDuplicateCaseNumber
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

func (r *MongoRepository) GetOwned(ctx context.Context, attorney, id primitive.ObjectID) (*models.Case, error) {
	var c models.Case
	err := r.col.FindOne(ctx, bson.M{"_id": id, "attorney": attorney}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrCaseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MongoRepository) SetDocuments(ctx context.Context, id primitive.ObjectID, docs []models.Document) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"documents": docs,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrCaseNotFound
	}
	return nil
}

func (r *MongoRepository) Search(ctx context.Context, attorney primitive.ObjectID, pattern string, limit int) ([]models.Case, error) {
	re := bson.M{"$regex": pattern, "$options": "i"}
	filter := bson.M{
		"attorney": attorney,
		"$or": []bson.M{
			{"title": re},
			{"caseNumber": re},
			{"court": re},
		},
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Case{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
