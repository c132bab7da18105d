package schedulerRepo

import (
	"context"
	"fmt"
	"time"

	"preen/database"
	"preen/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Longest plausible blocking span of a single booking. Used to widen range
// queries so bookings starting before the window but spilling into it are
// still fetched.
const maxBookingSpan = 24 * time.Hour

// MongoSchedulerRepo implements SchedulerRepository using MongoDB.
type MongoSchedulerRepo struct {
	bookingColl *mongo.Collection
}

// NewMongoSchedulerRepo constructs a new instance of MongoSchedulerRepo.
func NewMongoSchedulerRepo() SchedulerRepository {
	db := database.MongoClient.Database("preen")
	return &MongoSchedulerRepo{bookingColl: db.Collection("bookings")}
}

func (repo *MongoSchedulerRepo) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	filter := bson.M{"id": bookingID}
	if err := repo.bookingColl.FindOne(ctx, filter).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("error fetching booking with id %s: %w", bookingID, err)
	}
	return &booking, nil
}

func (repo *MongoSchedulerRepo) ListActiveBookings(ctx context.Context, professionalID string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"professional_id": professionalID,
		"status":          bson.M{"$ne": models.BookingStatusCancelled},
		"scheduled_for":   bson.M{"$gte": from.Add(-maxBookingSpan), "$lt": to},
	}
	cursor, err := repo.bookingColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding active bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}

// findConflict scans active sibling bookings around the proposed window and
// returns the first one whose blocking interval overlaps it. The search
// window is widened by twice the proposed blocking span on each side so
// adjacent conflicts cannot be missed while the query stays bounded.
func findConflict(sc mongo.SessionContext, coll *mongo.Collection,
	professionalID, excludeBookingID string, start time.Time, durationMinutes, bufferMinutes int) (*models.Booking, error) {

	span := time.Duration(durationMinutes+bufferMinutes) * time.Minute
	end := start.Add(span)
	searchFrom := start.Add(-2 * span)
	searchTo := end.Add(2 * span)

	filter := bson.M{
		"professional_id": professionalID,
		"id":              bson.M{"$ne": excludeBookingID},
		"status":          bson.M{"$ne": models.BookingStatusCancelled},
		"scheduled_for":   bson.M{"$gte": searchFrom.Add(-maxBookingSpan), "$lt": searchTo},
	}
	cursor, err := coll.Find(sc, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding sibling bookings: %w", err)
	}
	defer cursor.Close(sc)

	for cursor.Next(sc) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding sibling booking: %w", err)
		}
		if models.Overlaps(start, end, b.ScheduledFor, b.BlockingEnd(durationMinutes)) {
			return &b, nil
		}
	}
	return nil, cursor.Err()
}

func (repo *MongoSchedulerRepo) CreateBookingChecked(ctx context.Context, booking *models.Booking) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		conflict, err := findConflict(sc, repo.bookingColl, booking.ProfessionalID, booking.ID,
			booking.ScheduledFor, booking.DurationMinutes, booking.BufferMinutes)
		if err != nil {
			return err
		}
		if conflict != nil {
			return ErrSchedulingConflict
		}
		if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSchedulingConflict {
			return err
		}
		return fmt.Errorf("booking create transaction failed: %w", err)
	}
	return nil
}

func (repo *MongoSchedulerRepo) CommitReschedule(ctx context.Context, bookingID string, start time.Time,
	durationMinutes, bufferMinutes int, items []models.BookingItem, totalPrice float64) (*models.Booking, error) {

	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var committed models.Booking

	txnFn := func(sc mongo.SessionContext) error {
		var booking models.Booking
		if err := repo.bookingColl.FindOne(sc, bson.M{"id": bookingID}).Decode(&booking); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrBookingNotFound
			}
			return fmt.Errorf("error fetching booking %s: %w", bookingID, err)
		}

		// The caller validated status before the transaction, but the booking
		// may have been cancelled or completed since that read.
		switch booking.Status {
		case models.BookingStatusCancelled, models.BookingStatusCompleted:
			return ErrBookingNotEditable
		}

		conflict, err := findConflict(sc, repo.bookingColl, booking.ProfessionalID, bookingID,
			start, durationMinutes, bufferMinutes)
		if err != nil {
			return err
		}
		if conflict != nil {
			return ErrSchedulingConflict
		}

		// Schedule fields and dependent item/price recomputation commit
		// together; a partial update is never acceptable.
		update := bson.M{"$set": bson.M{
			"scheduled_for":    start,
			"duration_minutes": durationMinutes,
			"buffer_minutes":   bufferMinutes,
			"items":            items,
			"total_price":      totalPrice,
			"updated_at":       time.Now().UTC(),
		}}
		if err := repo.bookingColl.FindOneAndUpdate(sc, bson.M{"id": bookingID}, update).Err(); err != nil {
			return fmt.Errorf("error updating booking %s: %w", bookingID, err)
		}
		if err := repo.bookingColl.FindOne(sc, bson.M{"id": bookingID}).Decode(&committed); err != nil {
			return fmt.Errorf("error re-reading booking %s: %w", bookingID, err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSchedulingConflict || err == ErrBookingNotFound || err == ErrBookingNotEditable {
			return nil, err
		}
		return nil, fmt.Errorf("reschedule transaction failed: %w", err)
	}
	return &committed, nil
}
