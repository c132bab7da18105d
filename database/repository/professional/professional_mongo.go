package professionalRepo

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

// ErrNotFound is returned when no professional matches the given id.
var ErrNotFound = errors.New("professional not found")

// MongoProfessionalRepo implements ProfessionalRepository using MongoDB.
type MongoProfessionalRepo struct {
	coll *mongo.Collection
}

// NewMongoProfessionalRepo constructs a new instance of MongoProfessionalRepo.
func NewMongoProfessionalRepo() ProfessionalRepository {
	db := database.MongoClient.Database("preen")
	return &MongoProfessionalRepo{coll: db.Collection("professionals")}
}

func (repo *MongoProfessionalRepo) GetByID(ctx context.Context, professionalID string) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var prof models.Professional
	filter := bson.M{"id": professionalID}
	if err := repo.coll.FindOne(ctx, filter).Decode(&prof); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching professional with id %s: %w", professionalID, err)
	}
	return &prof, nil
}

func (repo *MongoProfessionalRepo) FindByService(ctx context.Context, serviceID, excludeID string, limit int) ([]models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"offerings.service_id": serviceID,
		"id":                   bson.M{"$ne": excludeID},
	}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding professionals for service %s: %w", serviceID, err)
	}
	defer cursor.Close(ctx)

	var result []models.Professional
	for cursor.Next(ctx) {
		var prof models.Professional
		if err := cursor.Decode(&prof); err != nil {
			return nil, fmt.Errorf("error decoding professional: %w", err)
		}
		result = append(result, prof)
		if len(result) >= limit {
			break
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return result, nil
}
