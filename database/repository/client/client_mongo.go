package clientRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"preen/database"
	"preen/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no client matches the given id.
var ErrNotFound = errors.New("client not found")

// MongoClientRepo implements ClientRepository using MongoDB.
type MongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo constructs a new instance of MongoClientRepo.
func NewMongoClientRepo() ClientRepository {
	db := database.MongoClient.Database("preen")
	return &MongoClientRepo{coll: db.Collection("clients")}
}

func (repo *MongoClientRepo) GetByID(ctx context.Context, clientID string) (*models.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var client models.Client
	if err := repo.coll.FindOne(ctx, bson.M{"id": clientID}).Decode(&client); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching client with id %s: %w", clientID, err)
	}
	return &client, nil
}
