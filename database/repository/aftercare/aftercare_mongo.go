package aftercareRepo

import (
	"context"
	"fmt"
	"time"

	"preen/database"
	"preen/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAftercareRepo implements AftercareRepository using MongoDB.
type MongoAftercareRepo struct {
	recordColl   *mongo.Collection
	reminderColl *mongo.Collection
}

// NewMongoAftercareRepo constructs a new instance of MongoAftercareRepo.
func NewMongoAftercareRepo() AftercareRepository {
	db := database.MongoClient.Database("preen")
	return &MongoAftercareRepo{
		recordColl:   db.Collection("aftercare"),
		reminderColl: db.Collection("reminders"),
	}
}

func (repo *MongoAftercareRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.AftercareRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var record models.AftercareRecord
	if err := repo.recordColl.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("error fetching aftercare record for booking %s: %w", bookingID, err)
	}
	return &record, nil
}

func (repo *MongoAftercareRepo) UpsertRecord(ctx context.Context, record *models.AftercareRecord) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	record.UpdatedAt = now

	filter := bson.M{"booking_id": record.BookingID}
	update := bson.M{
		"$set": bson.M{
			"booking_id":           record.BookingID,
			"notes":                record.Notes,
			"rebook_mode":          record.RebookMode,
			"rebooked_for":         record.RebookedFor,
			"rebook_window_start":  record.RebookWindowStart,
			"rebook_window_end":    record.RebookWindowEnd,
			"follow_up_booking_id": record.FollowUpBookingID,
			"products":             record.Products,
			"sent_to_client":       record.SentToClient,
			"updated_at":           now,
		},
		"$setOnInsert": bson.M{
			"id":         record.ID,
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.recordColl.UpdateOne(ctx, filter, update, opts); err != nil {
		return "", fmt.Errorf("error upserting aftercare record for booking %s: %w", record.BookingID, err)
	}

	// Re-read so callers always get the persisted id, whether this call
	// inserted or updated.
	var stored models.AftercareRecord
	if err := repo.recordColl.FindOne(ctx, filter).Decode(&stored); err != nil {
		return "", fmt.Errorf("error re-reading aftercare record for booking %s: %w", record.BookingID, err)
	}
	record.ID = stored.ID
	record.CreatedAt = stored.CreatedAt
	return stored.ID, nil
}

func (repo *MongoAftercareRepo) UpsertReminder(ctx context.Context, reminder models.Reminder) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}

	// Single conditional upsert keyed by the dedupe key. completed_at is
	// deliberately absent from $set so re-derivation cannot reopen a
	// reminder the client already completed.
	filter := bson.M{"dedupe_key": reminder.DedupeKey}
	update := bson.M{
		"$set": bson.M{
			"booking_id": reminder.BookingID,
			"client_id":  reminder.ClientID,
			"type":       reminder.Type,
			"due_at":     reminder.DueAt,
		},
		"$setOnInsert": bson.M{
			"id":         reminder.ID,
			"dedupe_key": reminder.DedupeKey,
			"created_at": time.Now().UTC(),
		},
	}
	opts := options.Update().SetUpsert(true)
	res, err := repo.reminderColl.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return false, fmt.Errorf("error upserting reminder %s: %w", reminder.DedupeKey, err)
	}
	return res.UpsertedCount > 0, nil
}

func (repo *MongoAftercareRepo) DeleteOpenReminder(ctx context.Context, dedupeKey string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"dedupe_key": dedupeKey, "completed_at": nil}
	res, err := repo.reminderColl.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("error deleting open reminder %s: %w", dedupeKey, err)
	}
	return res.DeletedCount > 0, nil
}

func (repo *MongoAftercareRepo) GetReminder(ctx context.Context, dedupeKey string) (*models.Reminder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var reminder models.Reminder
	if err := repo.reminderColl.FindOne(ctx, bson.M{"dedupe_key": dedupeKey}).Decode(&reminder); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching reminder %s: %w", dedupeKey, err)
	}
	return &reminder, nil
}
