package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tasksea/marketplace-api/internal/core/domain"
	"github.com/tasksea/marketplace-api/internal/core/ports"
)

const (
	collectionTasks        = "tasks"
	collectionApplications = "task_applications"
)

// TaskRepository persists tasks. It also holds the applications collection so
// task deletion can cascade to applications explicitly, in one place.
type TaskRepository struct {
	col  *mongo.Collection
	apps *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{
		col:  db.Collection(collectionTasks),
		apps: db.Collection(collectionApplications),
	}
}

type taskDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Location    string             `bson:"location"`
	Status      string             `bson:"status"`
	UserID      string             `bson:"user_id"`
	CategoryID  string             `bson:"category_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *taskDoc) toDomain() *domain.Task {
	return &domain.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Location:    d.Location,
		Status:      domain.TaskStatus(d.Status),
		PosterID:    d.UserID,
		CategoryID:  d.CategoryID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := taskDoc{
		Title:       t.Title,
		Description: t.Description,
		Price:       t.Price,
		Location:    t.Location,
		Status:      string(t.Status),
		UserID:      t.PosterID,
		CategoryID:  t.CategoryID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	created := *t
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc taskDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Task, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := parseID(id); ok {
			oids = append(oids, oid)
		}
	}
	result := make(map[string]*domain.Task, len(oids))
	if len(oids) == 0 {
		return result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc taskDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		t := doc.toDomain()
		result[t.ID] = t
	}
	return result, cur.Err()
}

// searchRegex builds a case-insensitive substring matcher from raw user input.
func searchRegex(search string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
}

func listTasksQuery(filter ports.ListTasksFilter) bson.M {
	query := bson.M{}
	if filter.CategoryID != "" {
		query["category_id"] = filter.CategoryID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Search != "" {
		re := searchRegex(filter.Search)
		query["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
		}
	}
	return query
}

func (r *TaskRepository) List(ctx context.Context, filter ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := listTasksQuery(filter)

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	sortDir := -1 // newest first
	if filter.SortOldestFirst {
		sortDir = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: sortDir}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	tasks, err := decodeTasks(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *TaskRepository) ListByPoster(ctx context.Context, posterID string) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": posterID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	return decodeTasks(ctx, cur)
}

// UpdateOwned applies upd to the task only while it is owned by posterID: the
// ownership condition is part of the update filter, so the check and the
// write share one snapshot.
func (r *TaskRepository) UpdateOwned(ctx context.Context, id, posterID string, upd ports.TaskUpdate) (*domain.Task, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Status != nil {
		set["status"] = string(*upd.Status)
	}
	if upd.CategoryID != nil {
		set["category_id"] = *upd.CategoryID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc taskDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid, "user_id": posterID}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// Delete removes the task and all its applications. A non-empty posterID
// scopes the delete to that owner; an empty one deletes unconditionally.
func (r *TaskRepository) Delete(ctx context.Context, id, posterID string) error {
	oid, ok := parseID(id)
	if !ok {
		return domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	if posterID != "" {
		filter["user_id"] = posterID
	}

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}

	_, err = r.apps.DeleteMany(ctx, bson.M{"task_id": id})
	return err
}

func (r *TaskRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *TaskRepository) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"status": string(status)})
}

func (r *TaskRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"category_id": categoryID})
}

func (r *TaskRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	return decodeTasks(ctx, cur)
}

func decodeTasks(ctx context.Context, cur *mongo.Cursor) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for cur.Next(ctx) {
		var doc taskDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		tasks = append(tasks, doc.toDomain())
	}
	return tasks, cur.Err()
}

// EnsureIndexes creates the indexes backing task queries.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
