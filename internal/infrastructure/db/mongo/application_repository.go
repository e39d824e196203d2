package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tasksea/marketplace-api/internal/core/domain"
)

type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(collectionApplications)}
}

type applicationDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	TaskID      string             `bson:"task_id"`
	ApplicantID string             `bson:"applicant_id"`
	Message     string             `bson:"message,omitempty"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *applicationDoc) toDomain() *domain.Application {
	return &domain.Application{
		ID:          d.ID.Hex(),
		TaskID:      d.TaskID,
		ApplicantID: d.ApplicantID,
		Message:     d.Message,
		Status:      domain.ApplicationStatus(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// Create inserts an application. The unique (task_id, applicant_id) index
// turns a concurrent duplicate into ErrAlreadyApplied.
func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := applicationDoc{
		TaskID:      a.TaskID,
		ApplicantID: a.ApplicantID,
		Message:     a.Message,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyApplied
		}
		return nil, err
	}

	created := *a
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ApplicationRepository) FindByTaskAndApplicant(ctx context.Context, taskID, applicantID string) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc applicationDoc
	err := r.col.FindOne(ctx, bson.M{"task_id": taskID, "applicant_id": applicantID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ApplicationRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.Application, error) {
	return r.list(ctx, bson.M{"task_id": taskID})
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]*domain.Application, error) {
	return r.list(ctx, bson.M{"applicant_id": applicantID})
}

func (r *ApplicationRepository) list(ctx context.Context, filter bson.M) ([]*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var apps []*domain.Application
	for cur.Next(ctx) {
		var doc applicationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		apps = append(apps, doc.toDomain())
	}
	return apps, cur.Err()
}

// UpdateStatus atomically sets the status of the application identified by
// (applicationID, taskID) in a single find-and-update.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, taskID, applicationID string, status domain.ApplicationStatus) (*domain.Application, error) {
	oid, ok := parseID(applicationID)
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc applicationDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid, "task_id": taskID}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ApplicationRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the indexes backing application queries. The compound
// (task_id, applicant_id) index is unique: it is the at-most-one-application
// invariant, enforced at the store level.
func (r *ApplicationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "task_id", Value: 1}, {Key: "applicant_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "applicant_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
