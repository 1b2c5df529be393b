package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/yakshop/internal/domain/models"
)

const (
	ordersCollection  = "orders"
	reportsCollection = "daily_revenue_reports"
)

// Repository defines the interface for order and report storage.
type Repository interface {
	PlaceOrder(ctx context.Context, order models.Order) (*models.Order, error)
	FetchOrderHistory(ctx context.Context) ([]models.Order, error)
	SaveDailyReport(ctx context.Context, report models.DailyRevenueReport) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{client: client, dbName: dbName}, nil
}

// EnsureIndexes creates the unique order id and report date indexes.
func (r *MongoDBRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection(ordersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "order_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create orders index: %w", err)
	}

	_, err = r.collection(reportsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create reports index: %w", err)
	}
	return nil
}

// PlaceOrder appends an order to the history.
func (r *MongoDBRepository) PlaceOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	if _, err := r.collection(ordersCollection).InsertOne(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: failed to insert order %d: %w", models.ErrSubmitFailed, order.ID, err)
	}
	return &order, nil
}

// FetchOrderHistory returns every order in insertion order.
func (r *MongoDBRepository) FetchOrderHistory(ctx context.Context) ([]models.Order, error) {
	// ObjectIDs start with a timestamp, so sorting on _id is insertion order.
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection(ordersCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query orders: %w", models.ErrFetchFailed, err)
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("%w: failed to decode orders: %w", models.ErrFetchFailed, err)
	}
	return orders, nil
}

// SaveDailyReport saves a daily report, replacing an earlier one for the same date.
func (r *MongoDBRepository) SaveDailyReport(ctx context.Context, report models.DailyRevenueReport) error {
	_, err := r.collection(reportsCollection).ReplaceOne(ctx,
		bson.D{{Key: "date", Value: report.Date}},
		report,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert daily report: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}
