// file: internals/features/academy/sessions/service/finalizer.go
package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	sesmodel "akademiku_backend/internals/features/academy/sessions/model"
	stumodel "akademiku_backend/internals/features/academy/students/model"
	"akademiku_backend/internals/helpers/cachebox"
)

// HomeworkDueDays: PR jatuh tempo 7 hari setelah sesi
const HomeworkDueDays = 7

type FinalizerService struct {
	DB    *gorm.DB
	Cache *cachebox.Box
}

func NewFinalizer(db *gorm.DB) *FinalizerService {
	return &FinalizerService{DB: db, Cache: cachebox.Default}
}

// HomeworkInput: payload PR opsional per siswa
type HomeworkInput struct {
	Message string
	Link    string
}

func (h *HomeworkInput) empty() bool {
	return h == nil || (strings.TrimSpace(h.Message) == "" && strings.TrimSpace(h.Link) == "")
}

// StudentResult: hasil kehadiran satu siswa. Daftar boleh parsial —
// siswa yang tidak disebut dilewati, bukan dianggap absen.
type StudentResult struct {
	StudentID uuid.UUID
	Present   bool
	Homework  *HomeworkInput
}

type FinalizeSummary struct {
	Credited        int `json:"credited"`
	SkippedExisting int `json:"skipped_existing"`
	Absent          int `json:"absent"`
	Failed          int `json:"failed"`
}

/* ===================== FINALIZE ===================== */

// Finalize: tutup sesi. Per siswa independen: tulis AttendanceRecord
// (id deterministik), kredit billing + majukan kurikulum kalau hadir,
// upsert PR kalau ada. Sesi baru ditandai completed di langkah paling akhir;
// kalau ada unit gagal, sesi tetap upcoming dan caller mengulang finalize —
// cek record yang sudah ada menjamin kredit at-most-once per (sesi, siswa).
func (s *FinalizerService) Finalize(sessionID uuid.UUID, results []StudentResult) (*FinalizeSummary, error) {
	var ses sesmodel.ClassSessionModel
	if err := s.DB.Where("class_session_id = ?", sessionID).Take(&ses).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return nil, err
	}

	// upcoming satu-satunya state yang bisa difinalize; completed/cancelled
	// ditolak supaya billing tidak terkredit dua kali
	if ses.ClassSessionStatus != sesmodel.SessionUpcoming {
		return nil, fiber.NewError(fiber.StatusConflict, "Sesi sudah "+string(ses.ClassSessionStatus)+", tidak bisa difinalize")
	}

	sum := &FinalizeSummary{}
	for _, r := range results {
		if err := s.applyResult(&ses, r, sum); err != nil {
			log.Printf("[FINALIZE ERROR] sesi=%s siswa=%s: %v", sessionID, r.StudentID, err)
			sum.Failed++
		}
	}

	if sum.Failed > 0 {
		// sesi dibiarkan upcoming → retry finalize aman
		return sum, fiber.NewError(fiber.StatusInternalServerError, "Sebagian hasil gagal disimpan, ulangi finalize")
	}

	// langkah terakhir: sesi jadi completed (terminal, kebal proyeksi ulang).
	// Guard status di WHERE menahan dua finalize yang balapan.
	res := s.DB.Model(&sesmodel.ClassSessionModel{}).
		Where("class_session_id = ? AND class_session_status = ?", sessionID, sesmodel.SessionUpcoming).
		Update("class_session_status", sesmodel.SessionCompleted)
	if res.Error != nil {
		return sum, res.Error
	}
	if res.RowsAffected == 0 {
		return sum, fiber.NewError(fiber.StatusConflict, "Sesi keburu difinalize proses lain")
	}

	s.Cache.Invalidate(cachebox.KeyStudents)
	s.Cache.InvalidatePrefix(cachebox.KeySessionsPrefix)
	return sum, nil
}

func (s *FinalizerService) applyResult(ses *sesmodel.ClassSessionModel, r StudentResult, sum *FinalizeSummary) error {
	attID := sesmodel.AttendanceRecordID(ses.ClassSessionID, r.StudentID)

	// Satu unit siswa = satu transaksi: record, kredit billing, dan PR
	// commit bareng. Tanpa ini, gagal di tengah meninggalkan record tanpa
	// kredit dan retry berikutnya melewatinya.
	return s.DB.Transaction(func(tx *gorm.DB) error {
		// Sudah ada record → siswa ini sudah diproses di percobaan
		// sebelumnya. Jangan kredit ulang.
		var existing sesmodel.AttendanceRecordModel
		err := tx.Where("attendance_record_id = ?", attID).Take(&existing).Error
		if err == nil {
			sum.SkippedExisting++
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		rec := sesmodel.AttendanceRecordModel{
			AttendanceRecordID:        attID,
			AttendanceRecordSessionID: ses.ClassSessionID,
			AttendanceRecordStudentID: r.StudentID,
			AttendanceRecordPresent:   r.Present,
			AttendanceRecordTopic:     ses.ClassSessionTopic,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec).Error; err != nil {
			return err
		}

		if !r.Present {
			// absen: cukup record, tanpa mutasi billing/kurikulum
			sum.Absent++
			return nil
		}

		// Baca siswa segar dari DB (bypass cache) sebelum kredit billing —
		// data basi di sini berarti salah hitung tagihan.
		var st stumodel.StudentModel
		if err := tx.Where("student_id = ?", r.StudentID).Take(&st).Error; err != nil {
			return err
		}

		st.StudentClassesAttended++
		if topics := st.Topics(); st.StudentCurrentTopicIndex < len(topics) {
			st.StudentCurrentTopicIndex++ // saturating, tidak pernah lewat akhir
		}
		// finalize hanya menurunkan ke due; kembali ke paid cuma lewat
		// konfirmasi pembayaran eksplisit
		if st.RemainingClasses() <= 0 {
			st.StudentFeeStatus = stumodel.FeeDue
		}
		if err := tx.Save(&st).Error; err != nil {
			return err
		}

		if !r.Homework.empty() {
			hw := sesmodel.HomeworkModel{
				HomeworkID:        sesmodel.HomeworkID(ses.ClassSessionID, r.StudentID),
				HomeworkSessionID: ses.ClassSessionID,
				HomeworkStudentID: r.StudentID,
				HomeworkMessage:   strings.TrimSpace(r.Homework.Message),
				HomeworkDueAt:     ses.ClassSessionStartsAt.AddDate(0, 0, HomeworkDueDays),
				HomeworkStatus:    sesmodel.HomeworkPending,
			}
			if link := strings.TrimSpace(r.Homework.Link); link != "" {
				hw.HomeworkLink = &link
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&hw).Error; err != nil {
				return err
			}
		}

		sum.Credited++
		return nil
	})
}

/* ===================== RESCHEDULE / CANCEL ===================== */

// Reschedule: geser manual satu sesi (drag di kalender). Hanya upcoming.
func (s *FinalizerService) Reschedule(sessionID uuid.UUID, startsAt, endsAt time.Time) (*sesmodel.ClassSessionModel, error) {
	if !endsAt.After(startsAt) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ends_at harus setelah starts_at")
	}
	var ses sesmodel.ClassSessionModel
	if err := s.DB.Where("class_session_id = ?", sessionID).Take(&ses).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return nil, err
	}
	if ses.ClassSessionStatus != sesmodel.SessionUpcoming {
		return nil, fiber.NewError(fiber.StatusConflict, "Hanya sesi upcoming yang bisa digeser")
	}

	ses.ClassSessionStartsAt = startsAt
	ses.ClassSessionEndsAt = endsAt
	if err := s.DB.Save(&ses).Error; err != nil {
		return nil, err
	}
	s.Cache.InvalidatePrefix(cachebox.KeySessionsPrefix)
	return &ses, nil
}

// Cancel: batalkan sesi upcoming (terminal)
func (s *FinalizerService) Cancel(sessionID uuid.UUID) error {
	res := s.DB.Model(&sesmodel.ClassSessionModel{}).
		Where("class_session_id = ? AND class_session_status = ?", sessionID, sesmodel.SessionUpcoming).
		Update("class_session_status", sesmodel.SessionCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusConflict, "Sesi tidak ditemukan atau sudah terminal")
	}
	s.Cache.InvalidatePrefix(cachebox.KeySessionsPrefix)
	return nil
}
