package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/backoffice/catalog-api/internal/core/domain"
)

const productsCollection = "products"

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

// mongoProduct is the persisted shape. Price is stored as Decimal128 so the
// store keeps exact monetary precision and range queries stay numeric.
type mongoProduct struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Description string               `bson:"description,omitempty"`
	Price       primitive.Decimal128 `bson:"price"`
	Stock       int                  `bson:"stock"`
	ImageURL    string               `bson:"image_url,omitempty"`
	Category    string               `bson:"category,omitempty"`
	IsActive    bool                 `bson:"is_active"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   *time.Time           `bson:"updated_at,omitempty"`
}

func toDoc(p *domain.Product) (*mongoProduct, error) {
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return nil, fmt.Errorf("encode price: %w", err)
	}

	doc := &mongoProduct{
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.ID != "" {
		oid, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return nil, fmt.Errorf("encode id: %w", err)
		}
		doc.ID = oid
	}
	return doc, nil
}

func (mp *mongoProduct) toDomain() (*domain.Product, error) {
	price, err := decimal.NewFromString(mp.Price.String())
	if err != nil {
		return nil, fmt.Errorf("decode price: %w", err)
	}

	return &domain.Product{
		ID:          mp.ID.Hex(),
		Name:        mp.Name,
		Description: mp.Description,
		Price:       price,
		Stock:       mp.Stock,
		ImageURL:    mp.ImageURL,
		Category:    mp.Category,
		IsActive:    mp.IsActive,
		CreatedAt:   mp.CreatedAt,
		UpdatedAt:   mp.UpdatedAt,
	}, nil
}

func (r *ProductRepository) Insert(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toDoc(p)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrProductExists
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created := *p
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id can never match a document.
		return nil, domain.ErrProductNotFound
	}

	var mp mongoProduct
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return mp.toDomain()
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toDoc(p)
	if err != nil {
		return nil, err
	}
	if doc.ID.IsZero() {
		return nil, domain.ErrProductNotFound
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrProductNotFound
	}

	out := *p
	return &out, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	sortAll := bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}
	return r.find(ctx, bson.M{}, sortAll)
}

func (r *ProductRepository) FindActive(ctx context.Context) ([]*domain.Product, error) {
	return r.find(ctx, bson.M{"is_active": true}, byName)
}

func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return r.find(ctx, bson.M{"category": category, "is_active": true}, byName)
}

// Search matches the term as a case-sensitive substring of name,
// description, or category among active products.
func (r *ProductRepository) Search(ctx context.Context, term string) ([]*domain.Product, error) {
	pattern := regexp.QuoteMeta(term)
	contains := primitive.Regex{Pattern: pattern}
	filter := bson.M{
		"is_active": true,
		"$or": bson.A{
			bson.M{"name": contains},
			bson.M{"description": contains},
			bson.M{"category": contains},
		},
	}
	return r.find(ctx, filter, byName)
}

func (r *ProductRepository) FindByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*domain.Product, error) {
	lo, err := primitive.ParseDecimal128(min.String())
	if err != nil {
		return nil, fmt.Errorf("encode min price: %w", err)
	}
	hi, err := primitive.ParseDecimal128(max.String())
	if err != nil {
		return nil, fmt.Errorf("encode max price: %w", err)
	}

	filter := bson.M{
		"is_active": true,
		"price":     bson.M{"$gte": lo, "$lte": hi},
	}
	return r.find(ctx, filter, bson.D{{Key: "price", Value: 1}})
}

// Categories returns the distinct non-empty categories of active products,
// sorted ascending.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	raw, err := r.coll.Distinct(ctx, "category", bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}

	categories := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// ExistsByName reports whether any product other than excludeID already uses
// the name. The comparison is case-insensitive, unlike Search.
func (r *ProductRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"name": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"},
	}
	if excludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
			filter["_id"] = bson.M{"$ne": oid}
		}
	}

	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count products by name: %w", err)
	}
	return n > 0, nil
}

// EnsureIndexes creates the indexes backing listing and lookup queries.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "price", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

var byName = bson.D{{Key: "name", Value: 1}}

func (r *ProductRepository) find(ctx context.Context, filter bson.M, sortOrder bson.D) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(sortOrder))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Product
	for cur.Next(ctx) {
		var mp mongoProduct
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		p, err := mp.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return out, nil
}
