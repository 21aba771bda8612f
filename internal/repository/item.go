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

// ItemRepository defines the interface for wardrobe item database operations.
type ItemRepository interface {
	CreateItem(ctx context.Context, item *model.Item) (*model.Item, error)
	GetItem(ctx context.Context, id string) (*model.Item, error)
	ListItems(ctx context.Context, userID string, params FilterItemsParams) ([]*model.Item, error)
	UpdateItem(ctx context.Context, id string, params UpdateItemParams) (*model.Item, error)
	DeleteItem(ctx context.Context, id string) (*model.Item, error)
	CountItems(ctx context.Context, userID string, params FilterItemsParams) (int64, error)
}

// UpdateItemParams defines the optional parameters for updating an item.
// Only the fields that are not nil will be updated.
type UpdateItemParams struct {
	Name        *string
	ImageURL    *string
	Category    *string
	SubCategory *string
	Seasons     *[]string
	Color       *string
	Warmth      *int
	Clean       *bool
	LastWornAt  *time.Time
}

// FilterItemsParams defines the parameters for narrowing item queries.
type FilterItemsParams struct {
	Category *string
	Season   *string
	Clean    *bool
}

const itemCollection = "items"

type itemMongoRepository struct {
	db *mongo.Database
}

func NewItemMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) ItemRepository {
	collection := db.Collection(itemCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "clean", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create item indexes")
	}

	return &itemMongoRepository{db: db}
}

func (r *itemMongoRepository) CreateItem(ctx context.Context, item *model.Item) (*model.Item, error) {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	result, err := r.db.Collection(itemCollection).InsertOne(ctx, item)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		item.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return item, nil
}

func (r *itemMongoRepository) GetItem(ctx context.Context, id string) (*model.Item, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(itemCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var item model.Item
	if err := result.Decode(&item); err != nil {
		return nil, err
	}

	return &item, nil
}

// ListItems returns the user's items, newest first.
func (r *itemMongoRepository) ListItems(
	ctx context.Context,
	userID string,
	params FilterItemsParams,
) ([]*model.Item, error) {
	filter, err := itemFilter(userID, params)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(itemCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*model.Item
	for cursor.Next(ctx) {
		var item model.Item
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *itemMongoRepository) UpdateItem(
	ctx context.Context,
	id string,
	params UpdateItemParams,
) (*model.Item, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	// Build update query
	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.ImageURL != nil {
		updateMap["image_url"] = *params.ImageURL
	}
	if params.Category != nil {
		updateMap["category"] = *params.Category
	}
	if params.SubCategory != nil {
		updateMap["sub_category"] = *params.SubCategory
	}
	if params.Seasons != nil {
		updateMap["seasons"] = *params.Seasons
	}
	if params.Color != nil {
		updateMap["color"] = *params.Color
	}
	if params.Warmth != nil {
		updateMap["warmth"] = *params.Warmth
	}
	if params.Clean != nil {
		updateMap["clean"] = *params.Clean
	}
	if params.LastWornAt != nil {
		updateMap["last_worn_at"] = *params.LastWornAt
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no item fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(itemCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var item model.Item
	if err := result.Decode(&item); err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *itemMongoRepository) DeleteItem(ctx context.Context, id string) (*model.Item, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(itemCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var item model.Item
	if err := result.Decode(&item); err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *itemMongoRepository) CountItems(
	ctx context.Context,
	userID string,
	params FilterItemsParams,
) (int64, error) {
	filter, err := itemFilter(userID, params)
	if err != nil {
		return 0, err
	}

	return r.db.Collection(itemCollection).CountDocuments(ctx, filter)
}

func itemFilter(userID string, params FilterItemsParams) (bson.M, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"user_id": objectID}
	if params.Category != nil {
		filter["category"] = *params.Category
	}
	if params.Season != nil {
		filter["seasons"] = *params.Season
	}
	if params.Clean != nil {
		filter["clean"] = *params.Clean
	}

	return filter, nil
}
