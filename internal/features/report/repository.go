package report

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-compliance/internal/common/apperr"
	"go-compliance/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReportRepository interface {
	Create(ctx context.Context, def *ReportDefinition) error
	Get(ctx context.Context, id string) (*ReportDefinition, error)
	List(ctx context.Context) ([]ReportDefinition, error)
	Update(ctx context.Context, id string, def *ReportDefinition) error
	Delete(ctx context.Context, id string) error
}

type ReportRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewReportRepository(db *database.MongodbDB) ReportRepository {
	return &ReportRepositoryImpl{
		Collection: db.DB.Collection("report_definitions"),
	}
}

func (r *ReportRepositoryImpl) Create(ctx context.Context, def *ReportDefinition) error {
	if def.ID.IsZero() {
		def.ID = primitive.NewObjectID()
	}
	def.CreatedAt = time.Now()
	def.UpdatedAt = def.CreatedAt
	_, err := r.Collection.InsertOne(ctx, def)
	return err
}

func (r *ReportRepositoryImpl) Get(ctx context.Context, id string) (*ReportDefinition, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	var def ReportDefinition
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&def)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &def, nil
}

func (r *ReportRepositoryImpl) List(ctx context.Context) ([]ReportDefinition, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var defs []ReportDefinition
	if err := cursor.All(ctx, &defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func (r *ReportRepositoryImpl) Update(ctx context.Context, id string, def *ReportDefinition) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.ErrNotFound
	}
	def.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"name":        def.Name,
			"description": def.Description,
			"data_source": def.DataSource,
			"fields":      def.Fields,
			"filters":     def.Filters,
			"updated_at":  def.UpdatedAt,
		},
	}
	res, err := r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *ReportRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.ErrNotFound
	}
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// MemoryRepository is the in-memory backend used by tests and the seed
// tooling. Last write wins, same as the Mongo backend.
type MemoryRepository struct {
	mu   sync.RWMutex
	defs map[string]ReportDefinition
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{defs: make(map[string]ReportDefinition)}
}

func (r *MemoryRepository) Create(ctx context.Context, def *ReportDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if def.ID.IsZero() {
		def.ID = primitive.NewObjectID()
	}
	def.CreatedAt = time.Now()
	def.UpdatedAt = def.CreatedAt
	r.defs[def.ID.Hex()] = *def
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*ReportDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &def, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]ReportDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]ReportDefinition, 0, len(r.defs))
	for _, d := range r.defs {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].CreatedAt.Before(defs[j].CreatedAt) })
	return defs, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, def *ReportDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.defs[id]
	if !ok {
		return apperr.ErrNotFound
	}
	def.ID = existing.ID
	def.CreatedAt = existing.CreatedAt
	def.UpdatedAt = time.Now()
	r.defs[id] = *def
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.defs[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.defs, id)
	return nil
}
