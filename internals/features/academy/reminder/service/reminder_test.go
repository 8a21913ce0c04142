// file: internals/features/academy/reminder/service/reminder_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	sesmodel "akademiku_backend/internals/features/academy/sessions/model"
)

type captureNotifier struct {
	fired []uuid.UUID
}

func (c *captureNotifier) Notify(ses sesmodel.ClassSessionModel) {
	c.fired = append(c.fired, ses.ClassSessionID)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&sesmodel.ClassSessionModel{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedUpcoming(t *testing.T, db *gorm.DB, startsAt time.Time, status sesmodel.SessionStatus) sesmodel.ClassSessionModel {
	t.Helper()
	schedID := uuid.New()
	ses := sesmodel.ClassSessionModel{
		ClassSessionID:         sesmodel.SessionID(schedID, startsAt),
		ClassSessionScheduleID: &schedID,
		ClassSessionStartsAt:   startsAt,
		ClassSessionEndsAt:     startsAt.Add(time.Hour),
		ClassSessionStatus:     status,
		ClassSessionTopic:      sesmodel.DefaultTopic,
	}
	if err := db.Create(&ses).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return ses
}

func newTestReminder(db *gorm.DB, n Notifier) *ReminderService {
	// jendela eksplisit [8m, 12m): bebas dari env proses test
	return &ReminderService{
		DB:          db,
		Notifier:    n,
		WindowStart: 8 * time.Minute,
		WindowEnd:   12 * time.Minute,
		fired:       make(map[uuid.UUID]struct{}),
	}
}

func TestPollFiresOncePerSession(t *testing.T) {
	db := newTestDB(t)
	sink := &captureNotifier{}
	r := newTestReminder(db, sink)

	now := time.Now()
	ses := seedUpcoming(t, db, now.Add(10*time.Minute), sesmodel.SessionUpcoming)

	fired, err := r.Poll(now)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(fired) != 1 || fired[0] != ses.ClassSessionID {
		t.Fatalf("fired = %v, want [%s]", fired, ses.ClassSessionID)
	}

	// poll berikutnya dalam jendela yang sama: tidak bunyi lagi
	fired, err = r.Poll(now.Add(time.Minute))
	if err != nil {
		t.Fatalf("second poll: %v", err)
	}
	if len(fired) != 0 {
		t.Fatalf("re-fired: %v", fired)
	}
	if len(sink.fired) != 1 {
		t.Fatalf("notifier called %d times, want 1", len(sink.fired))
	}
}

func TestPollIgnoresOutsideWindow(t *testing.T) {
	db := newTestDB(t)
	sink := &captureNotifier{}
	r := newTestReminder(db, sink)

	now := time.Now()
	seedUpcoming(t, db, now.Add(30*time.Minute), sesmodel.SessionUpcoming) // terlalu jauh
	seedUpcoming(t, db, now.Add(2*time.Minute), sesmodel.SessionUpcoming)  // terlalu dekat, jendela lewat

	fired, err := r.Poll(now)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(fired) != 0 {
		t.Fatalf("fired = %v, want none", fired)
	}
}

func TestPollSkipsNonUpcoming(t *testing.T) {
	db := newTestDB(t)
	sink := &captureNotifier{}
	r := newTestReminder(db, sink)

	now := time.Now()
	seedUpcoming(t, db, now.Add(10*time.Minute), sesmodel.SessionCancelled)
	seedUpcoming(t, db, now.Add(10*time.Minute+time.Second), sesmodel.SessionCompleted)

	fired, err := r.Poll(now)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(fired) != 0 {
		t.Fatalf("fired for terminal sessions: %v", fired)
	}
}

func TestPollCatchesSessionDriftingThroughWindow(t *testing.T) {
	// sesi dicek di dua putaran: putaran pertama di luar, kedua di dalam
	db := newTestDB(t)
	sink := &captureNotifier{}
	r := newTestReminder(db, sink)

	now := time.Now()
	ses := seedUpcoming(t, db, now.Add(15*time.Minute), sesmodel.SessionUpcoming)

	if fired, _ := r.Poll(now); len(fired) != 0 {
		t.Fatalf("fired too early: %v", fired)
	}
	fired, err := r.Poll(now.Add(5 * time.Minute))
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(fired) != 1 || fired[0] != ses.ClassSessionID {
		t.Fatalf("fired = %v, want [%s]", fired, ses.ClassSessionID)
	}
}
