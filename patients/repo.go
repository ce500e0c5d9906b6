package patients

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

const patientsCollectionName = "patients"

type Repository interface {
	Get(ctx context.Context, userId string, id string) (*Patient, error)
	List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Patient, error)
	Create(ctx context.Context, patient Patient) (*Patient, error)
	Update(ctx context.Context, userId string, id string, update bson.M) (*Patient, error)
	Delete(ctx context.Context, userId string, id string) error
}

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(patientsCollectionName),
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
				{Key: "name", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("UniquePatientName"),
		},
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "aliases", Value: "text"},
			},
			Options: options.Index().
				SetName("PatientSearch"),
		},
	})
	return err
}

func (r *repository) Get(ctx context.Context, userId string, id string) (*Patient, error) {
	selector, err := patientSelector(userId, id)
	if err != nil {
		return nil, err
	}

	patient := &Patient{}
	err = r.collection.FindOne(ctx, selector).Decode(patient)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return patient, nil
}

func (r *repository) List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Patient, error) {
	selector := bson.M{
		"userId": filter.UserId,
	}
	if filter.Search != nil {
		selector["$text"] = bson.M{"$search": *filter.Search}
	}

	opts := options.Find().
		SetSkip(int64(pagination.Offset)).
		SetLimit(int64(pagination.Limit)).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, err
	}

	patients := make([]*Patient, 0)
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *repository) Create(ctx context.Context, patient Patient) (*Patient, error) {
	patient.CreatedTime = time.Now()
	patient.UpdatedTime = patient.CreatedTime

	res, err := r.collection.InsertOne(ctx, patient)
	if store.IsDuplicateKeyError(err) {
		return nil, ErrDuplicate
	} else if err != nil {
		return nil, err
	}

	id := res.InsertedID.(primitive.ObjectID)
	return r.Get(ctx, patient.UserId, id.Hex())
}

func (r *repository) Update(ctx context.Context, userId string, id string, update bson.M) (*Patient, error) {
	selector, err := patientSelector(userId, id)
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
	selector, err := patientSelector(userId, id)
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

func patientSelector(userId string, id string) (bson.M, error) {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return bson.M{
		"_id":    objId,
		"userId": userId,
	}, nil
}
