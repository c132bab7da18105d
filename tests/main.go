// Seed script: wipes and repopulates the professionals, clients and bookings
// collections with simulated salon data for local development.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"preen/config"
	"preen/database"
	"preen/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var firstNames = []string{"Asha", "Binta", "Chloe", "Dani", "Eve", "Farah", "Grace", "Hana"}

var zones = []string{"America/New_York", "Europe/London", "Africa/Nairobi", "Asia/Kolkata"}

var serviceMenu = []models.ServiceOffering{
	{ServiceID: "svc-cut", Name: "Cut & Style", DurationMinutes: 60, BufferMinutes: 15, SalonPrice: 45, MobilePrice: 65, MobileAvailable: true},
	{ServiceID: "svc-color", Name: "Full Color", DurationMinutes: 120, BufferMinutes: 15, SalonPrice: 120},
	{ServiceID: "svc-braids", Name: "Box Braids", DurationMinutes: 180, BufferMinutes: 30, SalonPrice: 150, MobilePrice: 190, MobileAvailable: true},
	{ServiceID: "svc-nails", Name: "Gel Manicure", DurationMinutes: 45, BufferMinutes: 10, SalonPrice: 35},
}

func weekdayHours() models.WeeklyHours {
	return models.WeeklyHours{
		"mon": {Enabled: true, Start: "09:00", End: "17:00"},
		"tue": {Enabled: true, Start: "09:00", End: "17:00"},
		"wed": {Enabled: true, Start: "09:00", End: "17:00"},
		"thu": {Enabled: true, Start: "10:00", End: "19:00"},
		"fri": {Enabled: true, Start: "09:00", End: "17:00"},
		"sat": {Enabled: true, Start: "10:00", End: "14:00"},
	}
}

func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.MongoClient.Database("preen")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	for _, name := range []string{"professionals", "clients", "bookings", "aftercare", "reminders"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", name, err)
		}
	}

	rng := rand.New(rand.NewSource(42))

	var professionals []interface{}
	var professionalIDs []string
	for i, name := range firstNames {
		// Each professional offers a random 2-3 item slice of the menu.
		offerings := append([]models.ServiceOffering(nil), serviceMenu...)
		rng.Shuffle(len(offerings), func(a, b int) { offerings[a], offerings[b] = offerings[b], offerings[a] })
		offerings = offerings[:2+rng.Intn(2)]

		id := uuid.New().String()
		professionalIDs = append(professionalIDs, id)
		professionals = append(professionals, models.Professional{
			ID:           id,
			DisplayName:  name,
			Timezone:     zones[i%len(zones)],
			WorkingHours: weekdayHours(),
			Offerings:    offerings,
		})
	}
	if _, err := db.Collection("professionals").InsertMany(ctx, professionals); err != nil {
		log.Fatalf("Failed to seed professionals: %v", err)
	}

	var clients []interface{}
	var clientIDs []string
	for i := 0; i < 20; i++ {
		id := uuid.New().String()
		clientIDs = append(clientIDs, id)
		clients = append(clients, models.Client{
			ID:          id,
			DisplayName: fmt.Sprintf("Client %02d", i+1),
		})
	}
	if _, err := db.Collection("clients").InsertMany(ctx, clients); err != nil {
		log.Fatalf("Failed to seed clients: %v", err)
	}

	// A handful of upcoming bookings so availability has something to dodge.
	now := time.Now().UTC().Truncate(time.Hour)
	var bookings []interface{}
	for i := 0; i < 12; i++ {
		start := now.Add(time.Duration(24+rng.Intn(96)) * time.Hour)
		bookings = append(bookings, models.Booking{
			ID:              uuid.New().String(),
			ProfessionalID:  professionalIDs[rng.Intn(len(professionalIDs))],
			ClientID:        clientIDs[rng.Intn(len(clientIDs))],
			ScheduledFor:    start,
			DurationMinutes: 60,
			BufferMinutes:   15,
			Status:          models.BookingStatusAccepted,
			SessionStep:     models.StepIntake,
			Mode:            models.ModeSalon,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	if _, err := db.Collection("bookings").InsertMany(ctx, bookings); err != nil {
		log.Fatalf("Failed to seed bookings: %v", err)
	}

	fmt.Printf("Seeded %d professionals, %d clients, %d bookings.\n",
		len(professionals), len(clients), len(bookings))
}
