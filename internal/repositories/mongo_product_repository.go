package repositories

import (
	"context"
	"errors"
	"time"

	"productapi/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// productDocument is the stored shape of a product in MongoDB.
type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Price       float64            `bson:"price"`
	Rating      float64            `bson:"rating"`
	Description string             `bson:"description"`
	Phone       string             `bson:"phone"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d productDocument) toModel() models.Product {
	return models.Product{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Price:       d.Price,
		Rating:      d.Rating,
		Description: d.Description,
		Phone:       d.Phone,
		CreatedAt:   d.CreatedAt,
	}
}

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a new instance of MongoProductRepository.
func NewMongoProductRepository(collection *mongo.Collection) *MongoProductRepository {
	return &MongoProductRepository{
		collection: collection,
	}
}

// GetAll retrieves products, applying the price and rating thresholds when both are set.
func (r *MongoProductRepository) GetAll(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := bson.M{}
	if filter.Active() {
		query = bson.M{"$and": bson.A{
			bson.M{"price": bson.M{"$gt": *filter.MinPrice}},
			bson.M{"rating": bson.M{"$gt": *filter.MinRating}},
		}}
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, storageError("get all products", err)
	}

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storageError("get all products", err)
	}

	products := make([]models.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, doc.toModel())
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, invalidIDError("get product", id)
	}

	var doc productDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, storageError("get product", err)
	}

	product := doc.toModel()
	return &product, nil
}

// Create inserts a new product and fills in its ID and creation time.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	doc := productDocument{
		ID:          primitive.NewObjectID(),
		Title:       product.Title,
		Price:       product.Price,
		Rating:      product.Rating,
		Description: product.Description,
		Phone:       product.Phone,
		// BSON dates have millisecond precision.
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return storageError("create product", err)
	}

	*product = doc.toModel()
	return nil
}

// Update replaces the mutable fields of an existing product.
func (r *MongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	oid, err := primitive.ObjectIDFromHex(product.ID)
	if err != nil {
		return invalidIDError("update product", product.ID)
	}

	update := bson.M{"$set": bson.M{
		"title":       product.Title,
		"price":       product.Price,
		"rating":      product.Rating,
		"description": product.Description,
		"phone":       product.Phone,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc productDocument
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrProductNotFound
		}
		return storageError("update product", err)
	}

	*product = doc.toModel()
	return nil
}

// Delete removes a product by its ID and returns the removed record.
func (r *MongoProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, invalidIDError("delete product", id)
	}

	var doc productDocument
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, storageError("delete product", err)
	}

	product := doc.toModel()
	return &product, nil
}
