// file: internals/features/academy/reminder/service/reminder.go
package service

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sesmodel "akademiku_backend/internals/features/academy/sessions/model"
	"akademiku_backend/internals/configs"
)

// Notifier: sink notifikasi — service ini hanya memutuskan KAPAN memanggil.
type Notifier interface {
	Notify(ses sesmodel.ClassSessionModel)
}

// LogNotifier: sink default, cukup untuk single-instance
type LogNotifier struct{}

func (LogNotifier) Notify(ses sesmodel.ClassSessionModel) {
	log.Printf("🔔 [REMINDER] Kelas mulai %s (sesi %s)",
		ses.ClassSessionStartsAt.Format("15:04"), ses.ClassSessionID)
}

// ReminderService: poller sesi upcoming. Jendela lebar (bukan menit persis)
// supaya toleran granularitas polling & clock drift; satu alarm per sesi per
// umur proses, state fired tidak persisten lintas restart.
type ReminderService struct {
	DB       *gorm.DB
	Notifier Notifier

	// half-open: now+WindowStart <= starts_at < now+WindowEnd
	WindowStart time.Duration
	WindowEnd   time.Duration

	mu    sync.Mutex
	fired map[uuid.UUID]struct{}
}

func NewReminder(db *gorm.DB, n Notifier) *ReminderService {
	if n == nil {
		n = LogNotifier{}
	}
	lead := configs.GetEnvInt("REMINDER_LEAD_MINUTES", 10)
	return &ReminderService{
		DB:          db,
		Notifier:    n,
		WindowStart: time.Duration(lead-2) * time.Minute,
		WindowEnd:   time.Duration(lead+2) * time.Minute,
		fired:       make(map[uuid.UUID]struct{}),
	}
}

// Poll: satu putaran evaluasi. Mengembalikan id sesi yang baru dibunyikan.
func (s *ReminderService) Poll(now time.Time) ([]uuid.UUID, error) {
	lo := now.Add(s.WindowStart)
	hi := now.Add(s.WindowEnd)

	var sessions []sesmodel.ClassSessionModel
	if err := s.DB.
		Where("class_session_status = ? AND class_session_starts_at >= ? AND class_session_starts_at < ?",
			sesmodel.SessionUpcoming, lo, hi).
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	var out []uuid.UUID
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ses := range sessions {
		if _, done := s.fired[ses.ClassSessionID]; done {
			continue
		}
		s.fired[ses.ClassSessionID] = struct{}{}
		s.Notifier.Notify(ses)
		out = append(out, ses.ClassSessionID)
	}
	return out, nil
}

// Start: jalankan poller di goroutine dengan interval tetap
func (s *ReminderService) Start(interval time.Duration) {
	if interval <= 0 {
		interval = 45 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := s.Poll(time.Now()); err != nil {
				log.Printf("[REMINDER ERROR] %v", err)
			}
		}
	}()
}
