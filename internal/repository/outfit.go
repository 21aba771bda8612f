package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/closetly/wardrobe-api/internal/model"
)

// OutfitRepository defines the interface for outfit database operations.
type OutfitRepository interface {
	CreateOutfit(ctx context.Context, outfit *model.Outfit) (*model.Outfit, error)
	GetOutfit(ctx context.Context, id string) (*model.Outfit, error)
	ListOutfits(ctx context.Context, userID string, params FilterOutfitsParams) ([]*model.Outfit, error)
	DeleteOutfit(ctx context.Context, id string) (*model.Outfit, error)
}

// FilterOutfitsParams defines the parameters for narrowing outfit queries
// to a date window. Nil bounds are open-ended.
type FilterOutfitsParams struct {
	From *time.Time
	To   *time.Time
}

const outfitCollection = "outfits"

type outfitMongoRepository struct {
	db *mongo.Database
}

func NewOutfitMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) OutfitRepository {
	collection := db.Collection(outfitCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create outfit indexes")
	}

	return &outfitMongoRepository{db: db}
}

func (r *outfitMongoRepository) CreateOutfit(ctx context.Context, outfit *model.Outfit) (*model.Outfit, error) {
	now := time.Now()
	outfit.CreatedAt = now
	outfit.UpdatedAt = now

	result, err := r.db.Collection(outfitCollection).InsertOne(ctx, outfit)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		outfit.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return outfit, nil
}

func (r *outfitMongoRepository) GetOutfit(ctx context.Context, id string) (*model.Outfit, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(outfitCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var outfit model.Outfit
	if err := result.Decode(&outfit); err != nil {
		return nil, err
	}

	return &outfit, nil
}

// ListOutfits returns the user's outfits inside the date window, most recent first.
func (r *outfitMongoRepository) ListOutfits(
	ctx context.Context,
	userID string,
	params FilterOutfitsParams,
) ([]*model.Outfit, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"user_id": objectID}

	dateFilter := bson.M{}
	if params.From != nil {
		dateFilter["$gte"] = *params.From
	}
	if params.To != nil {
		dateFilter["$lte"] = *params.To
	}
	if len(dateFilter) > 0 {
		filter["date"] = dateFilter
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.db.Collection(outfitCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var outfits []*model.Outfit
	for cursor.Next(ctx) {
		var outfit model.Outfit
		if err := cursor.Decode(&outfit); err != nil {
			return nil, err
		}
		outfits = append(outfits, &outfit)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return outfits, nil
}

func (r *outfitMongoRepository) DeleteOutfit(ctx context.Context, id string) (*model.Outfit, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(outfitCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var outfit model.Outfit
	if err := result.Decode(&outfit); err != nil {
		return nil, err
	}

	return &outfit, nil
}
