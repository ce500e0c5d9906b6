package documents

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/medvault-org/medvault/store"
)

const documentsCollectionName = "documents"

type Repository interface {
	Get(ctx context.Context, userId string, id string) (*Document, error)
	List(ctx context.Context, userId string, pagination store.Pagination) ([]Document, error)
	Create(ctx context.Context, document Document) (*Document, error)
	Update(ctx context.Context, userId string, id string, update bson.M) (*Document, error)
	Delete(ctx context.Context, userId string, id string) error
}

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(documentsCollectionName),
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

type repository struct {
	collection *mongo.Collection
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "createdTime", Value: -1},
			},
			Options: options.Index().
				SetName("DocumentsByUser"),
		},
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "patientId", Value: 1},
			},
			Options: options.Index().
				SetName("DocumentsByPatient"),
		},
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().
				SetName("DocumentsByStatus"),
		},
	})
	return err
}

func (r *repository) Get(ctx context.Context, userId string, id string) (*Document, error) {
	selector, err := documentSelector(userId, id)
	if err != nil {
		return nil, err
	}

	document := &Document{}
	err = r.collection.FindOne(ctx, selector).Decode(document)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return document, nil
}

func (r *repository) List(ctx context.Context, userId string, pagination store.Pagination) ([]Document, error) {
	selector := bson.M{
		"userId": userId,
	}

	opts := options.Find().
		SetSkip(int64(pagination.Offset)).
		SetLimit(int64(pagination.Limit)).
		SetSort(bson.D{{Key: "createdTime", Value: -1}})

	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, err
	}

	documents := make([]Document, 0)
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *repository) Create(ctx context.Context, document Document) (*Document, error) {
	document.CreatedTime = time.Now()
	document.UpdatedTime = document.CreatedTime

	res, err := r.collection.InsertOne(ctx, document)
	if err != nil {
		return nil, err
	}

	id := res.InsertedID.(primitive.ObjectID)
	return r.Get(ctx, document.UserId, id.Hex())
}

func (r *repository) Update(ctx context.Context, userId string, id string, update bson.M) (*Document, error) {
	selector, err := documentSelector(userId, id)
	if err != nil {
		return nil, err
	}

	set, _ := update["$set"].(bson.M)
	if set == nil {
		set = bson.M{}
		update["$set"] = set
	}
	set["updatedTime"] = time.Now()

	res, err := r.collection.UpdateOne(ctx, selector, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	return r.Get(ctx, userId, id)
}

func (r *repository) Delete(ctx context.Context, userId string, id string) error {
	selector, err := documentSelector(userId, id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, selector)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func documentSelector(userId string, id string) (bson.M, error) {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return bson.M{
		"_id":    objId,
		"userId": userId,
	}, nil
}
