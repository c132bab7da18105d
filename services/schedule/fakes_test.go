package schedule

import (
	"context"
	"time"

	aftercareRepo "preen/database/repository/aftercare"
	professionalRepo "preen/database/repository/professional"
	schedulerRepo "preen/database/repository/scheduler"
	"preen/models"

	"github.com/hibiken/asynq"
)

// fixedNow is Monday 2026-08-24 12:00 UTC; every test clock returns it.
var fixedNow = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

type fakeScheduler struct {
	bookings  map[string]*models.Booking
	created   []*models.Booking
	createErr error
	commitErr error
	commits   int
	// beforeCommit runs at the top of CommitReschedule, before the stored
	// booking is re-read, to simulate a concurrent writer.
	beforeCommit func()
}

func newFakeScheduler(bookings ...*models.Booking) *fakeScheduler {
	f := &fakeScheduler{bookings: make(map[string]*models.Booking)}
	for _, b := range bookings {
		f.bookings[b.ID] = b
	}
	return f
}

func (f *fakeScheduler) GetBooking(_ context.Context, bookingID string) (*models.Booking, error) {
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, schedulerRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeScheduler) ListActiveBookings(_ context.Context, professionalID string, from, to time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProfessionalID != professionalID || !b.IsActive() {
			continue
		}
		if b.ScheduledFor.Before(from) || !b.ScheduledFor.Before(to) {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeScheduler) CreateBookingChecked(_ context.Context, booking *models.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *booking
	f.bookings[booking.ID] = &cp
	f.created = append(f.created, &cp)
	return nil
}

func (f *fakeScheduler) CommitReschedule(_ context.Context, bookingID string, start time.Time,
	durationMinutes, bufferMinutes int, items []models.BookingItem, totalPrice float64) (*models.Booking, error) {

	if f.beforeCommit != nil {
		f.beforeCommit()
	}
	if f.commitErr != nil {
		return nil, f.commitErr
	}
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, schedulerRepo.ErrBookingNotFound
	}
	switch b.Status {
	case models.BookingStatusCancelled, models.BookingStatusCompleted:
		return nil, schedulerRepo.ErrBookingNotEditable
	}
	f.commits++
	b.ScheduledFor = start
	b.DurationMinutes = durationMinutes
	b.BufferMinutes = bufferMinutes
	b.Items = items
	b.TotalPrice = totalPrice
	b.UpdatedAt = fixedNow
	cp := *b
	return &cp, nil
}

var _ schedulerRepo.SchedulerRepository = (*fakeScheduler)(nil)

type fakeAftercare struct {
	records   map[string]*models.AftercareRecord
	reminders map[string]*models.Reminder
}

func newFakeAftercare() *fakeAftercare {
	return &fakeAftercare{
		records:   make(map[string]*models.AftercareRecord),
		reminders: make(map[string]*models.Reminder),
	}
}

func (f *fakeAftercare) GetByBookingID(_ context.Context, bookingID string) (*models.AftercareRecord, error) {
	r, ok := f.records[bookingID]
	if !ok {
		return nil, aftercareRepo.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeAftercare) UpsertRecord(_ context.Context, record *models.AftercareRecord) (string, error) {
	if existing, ok := f.records[record.BookingID]; ok {
		record.ID = existing.ID
	} else if record.ID == "" {
		record.ID = "rec-" + record.BookingID
	}
	cp := *record
	f.records[record.BookingID] = &cp
	return record.ID, nil
}

func (f *fakeAftercare) UpsertReminder(_ context.Context, reminder models.Reminder) (bool, error) {
	if existing, ok := f.reminders[reminder.DedupeKey]; ok {
		existing.DueAt = reminder.DueAt
		existing.ClientID = reminder.ClientID
		return false, nil
	}
	reminder.ID = "rem-" + reminder.DedupeKey
	f.reminders[reminder.DedupeKey] = &reminder
	return true, nil
}

func (f *fakeAftercare) DeleteOpenReminder(_ context.Context, dedupeKey string) (bool, error) {
	r, ok := f.reminders[dedupeKey]
	if !ok || r.CompletedAt != nil {
		return false, nil
	}
	delete(f.reminders, dedupeKey)
	return true, nil
}

func (f *fakeAftercare) GetReminder(_ context.Context, dedupeKey string) (*models.Reminder, error) {
	r, ok := f.reminders[dedupeKey]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

var _ aftercareRepo.AftercareRepository = (*fakeAftercare)(nil)

type fakeProfessionals struct {
	profs map[string]*models.Professional
}

func (f *fakeProfessionals) GetByID(_ context.Context, professionalID string) (*models.Professional, error) {
	p, ok := f.profs[professionalID]
	if !ok {
		return nil, professionalRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfessionals) FindByService(_ context.Context, _, _ string, _ int) ([]models.Professional, error) {
	return nil, nil
}

var _ professionalRepo.ProfessionalRepository = (*fakeProfessionals)(nil)

type fakeNotifier struct {
	clientPushes       int
	professionalPushes int
	err                error
}

func (f *fakeNotifier) SendClientPush(_ context.Context, _, _, _ string, _ map[string]string) error {
	if f.err != nil {
		return f.err
	}
	f.clientPushes++
	return nil
}

func (f *fakeNotifier) SendProfessionalPush(_ context.Context, _, _, _ string, _ map[string]string) error {
	if f.err != nil {
		return f.err
	}
	f.professionalPushes++
	return nil
}

type fakeQueue struct {
	enqueued []*asynq.Task
}

func (f *fakeQueue) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.enqueued = append(f.enqueued, task)
	return &asynq.TaskInfo{}, nil
}

// testBooking is an accepted booking next Monday 14:00 UTC for pro-1/cli-1.
func testBooking() *models.Booking {
	return &models.Booking{
		ID:              "bk-1",
		ProfessionalID:  "pro-1",
		ClientID:        "cli-1",
		ScheduledFor:    time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		BufferMinutes:   15,
		Status:          models.BookingStatusAccepted,
		SessionStep:     models.StepIntake,
		Items: []models.BookingItem{
			{ServiceID: "svc-cut", Name: "Cut", DurationMinutes: 60, Mode: models.ModeSalon, Price: 45},
		},
		TotalPrice: 45,
		Mode:       models.ModeSalon,
	}
}

// testProfessional works Mondays 09:00-17:00 UTC.
func testProfessional() *models.Professional {
	return &models.Professional{
		ID:          "pro-1",
		DisplayName: "Asha",
		Timezone:    "UTC",
		WorkingHours: models.WeeklyHours{
			"mon": {Enabled: true, Start: "09:00", End: "17:00"},
		},
	}
}

func newTestService(sched *fakeScheduler, care *fakeAftercare) *DefaultScheduleService {
	return &DefaultScheduleService{
		Scheduler: sched,
		Aftercare: care,
		Professionals: &fakeProfessionals{profs: map[string]*models.Professional{
			"pro-1": testProfessional(),
		}},
		Clock: func() time.Time { return fixedNow },
	}
}
