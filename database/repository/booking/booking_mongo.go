package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"bookhive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo(db *mongo.Database) *MongoBookingRepo {
	return &MongoBookingRepo{coll: db.Collection("bookings")}
}

var activeStatuses = bson.A{string(models.StatusPending), string(models.StatusConfirmed)}

func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	filter := bson.M{"id": id}
	if err := repo.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking with id %s: %w", id, err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) FindActiveByService(ctx context.Context, serviceID string) ([]models.Booking, error) {
	filter := bson.M{
		"serviceId": serviceID,
		"status":    bson.M{"$in": activeStatuses},
	}
	return repo.find(ctx, filter)
}

func (repo *MongoBookingRepo) FindByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return repo.find(ctx, bson.M{"userId": userID})
}

func (repo *MongoBookingRepo) FindByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return repo.find(ctx, bson.M{"providerId": providerID})
}

func (repo *MongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// ApplyCancellation filters on active status so the terminal-state guard holds
// even under concurrent transitions.
func (repo *MongoBookingRepo) ApplyCancellation(ctx context.Context, id string, outcome CancellationOutcome) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": activeStatuses},
	}
	set := bson.M{
		"status":           string(models.StatusCancelled),
		"cancelledAt":      outcome.At,
		"cancelledBy":      string(outcome.By),
		"refundAmount":     outcome.RefundAmount,
		"refundPercentage": outcome.RefundPercentage,
	}
	if outcome.Reason != "" {
		set["cancellationReason"] = outcome.Reason
	}

	res, err := repo.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error cancelling booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return repo.classifyMiss(ctx, id)
	}
	return nil
}

func (repo *MongoBookingRepo) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": activeStatuses},
	}
	update := bson.M{
		"$set": bson.M{
			"status":      string(models.StatusCompleted),
			"completedAt": at,
		},
	}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error completing booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return repo.classifyMiss(ctx, id)
	}
	return nil
}

func (repo *MongoBookingRepo) SetCancellationRequest(ctx context.Context, id string, req *models.CancellationRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"cancellationRequest": req}}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating cancellation request for booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *MongoBookingRepo) FindActiveEndedBefore(ctx context.Context, date string) ([]models.Booking, error) {
	filter := bson.M{
		"status": bson.M{"$in": activeStatuses},
		"$or": bson.A{
			bson.M{
				"serviceType":  string(models.ServiceTypeDateBased),
				"checkOutDate": bson.M{"$lt": date},
			},
			bson.M{
				"serviceType":   string(models.ServiceTypeTimeBased),
				"timeSlot.date": bson.M{"$lt": date},
			},
		},
	}
	return repo.find(ctx, filter)
}

// classifyMiss distinguishes a missing booking from a terminal one after an
// update matched nothing.
func (repo *MongoBookingRepo) classifyMiss(ctx context.Context, id string) error {
	var booking models.Booking
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return fmt.Errorf("error fetching booking with id %s: %w", id, err)
	}
	return ErrNotActive
}
