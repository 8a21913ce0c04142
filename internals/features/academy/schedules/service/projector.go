// file: internals/features/academy/schedules/service/projector.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	smodel "akademiku_backend/internals/features/academy/schedules/model"
	sesmodel "akademiku_backend/internals/features/academy/sessions/model"
	stumodel "akademiku_backend/internals/features/academy/students/model"
	"akademiku_backend/internals/helpers/cachebox"
	"akademiku_backend/internals/helpers/dbtime"
)

// DefaultHorizonWeeks: jendela proyeksi bergulir ke depan
const DefaultHorizonWeeks = 3

type ProjectorService struct {
	DB    *gorm.DB
	Cache *cachebox.Box
}

func NewProjector(db *gorm.DB) *ProjectorService {
	return &ProjectorService{DB: db, Cache: cachebox.Default}
}

/* ===================== PROJECT ===================== */

// Project: materialisasi rule menjadi sesi konkret dalam horizon.
// Idempotent: retract-lalu-regenerate, aman dipanggil berulang (tiap save
// rule + resync periodik). Strategi sengaja tanpa diff — volume regenerasi
// kecil (minggu × hari-per-minggu).
func (s *ProjectorService) Project(sched smodel.ClassScheduleModel, horizonWeeks int) error {
	if horizonWeeks <= 0 {
		horizonWeeks = DefaultHorizonWeeks
	}
	// satu jam dinding dengan agenda: batas hari pakai zona akademi,
	// bukan zona host
	today := startOfDay(dbtime.NowInAcademy())

	// 1) Retraksi: buang semua sesi upcoming milik rule mulai hari ini.
	// Slot basi dari rule yang baru diedit tidak boleh selamat.
	if err := s.Retract(sched.ClassScheduleID, today); err != nil {
		return err
	}

	// 2) Rule non-aktif / terhapus: cukup retraksi, tanpa generate.
	if !sched.ClassScheduleIsActive || sched.ClassScheduleDeletedAt.Valid {
		return nil
	}

	// 3) Eligibility: rule individu butuh siswa aktif. Siswa cuti/hilang →
	// batal proyeksi (bukan error). Rule grup tidak dicek di sini —
	// keanggotaan dinamis ditangani agenda saat baca.
	if sched.ClassScheduleStudentID != nil {
		var st stumodel.StudentModel
		err := s.DB.Where("student_id = ?", *sched.ClassScheduleStudentID).Take(&st).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if st.StudentStatus == stumodel.StudentBreak {
			return nil
		}
	}

	// 4) Walk harian dari max(today, start_date) sampai today+horizon (eksklusif)
	begin := today
	if sd := startOfDay(sched.ClassScheduleStartDate); sd.After(begin) {
		begin = sd
	}
	end := today.AddDate(0, 0, horizonWeeks*7)
	days := sched.DaySet()

	for day := begin; day.Before(end); day = day.AddDate(0, 0, 1) {
		if !days[day.Weekday()] {
			continue
		}
		startsAt := sched.ClassScheduleStartTime.AtDate(day)
		endsAt := sched.ClassScheduleEndTime.AtDate(day)

		row := sesmodel.ClassSessionModel{
			ClassSessionID:         sesmodel.SessionID(sched.ClassScheduleID, startsAt),
			ClassSessionScheduleID: &sched.ClassScheduleID,
			ClassSessionStudentID:  sched.ClassScheduleStudentID,
			ClassSessionGroupID:    sched.ClassScheduleGroupID,
			ClassSessionStartsAt:   startsAt,
			ClassSessionEndsAt:     endsAt,
			ClassSessionStatus:     sesmodel.SessionUpcoming,
			ClassSessionTopic:      sesmodel.DefaultTopic,
		}

		// 5) Konflik = baris completed/cancelled yang lolos retraksi →
		// histori tidak boleh disentuh, jadi DoNothing.
		if err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			// gagal parsial aman: retract-regenerate idempotent, retry konvergen
			return err
		}
	}

	s.Cache.InvalidatePrefix(cachebox.KeySessionsPrefix)
	return nil
}

/* ===================== RETRACT ===================== */

// Retract: hapus sesi upcoming milik rule yang mulai >= from.
// Rule yang sudah keburu dihapus orang lain tetap dianggap sukses
// (state akhir sama).
func (s *ProjectorService) Retract(scheduleID uuid.UUID, from time.Time) error {
	err := s.DB.
		Where("class_session_schedule_id = ? AND class_session_status = ? AND class_session_starts_at >= ?",
			scheduleID, sesmodel.SessionUpcoming, from).
		Delete(&sesmodel.ClassSessionModel{}).Error
	if err != nil {
		return err
	}
	s.Cache.InvalidatePrefix(cachebox.KeySessionsPrefix)
	return nil
}

// RetractNonCompleted: cascade hard-delete rule — sesi completed adalah
// histori dan tidak ikut terhapus.
func (s *ProjectorService) RetractNonCompleted(scheduleID uuid.UUID) error {
	err := s.DB.
		Where("class_session_schedule_id = ? AND class_session_status <> ?",
			scheduleID, sesmodel.SessionCompleted).
		Delete(&sesmodel.ClassSessionModel{}).Error
	if err != nil {
		return err
	}
	s.Cache.InvalidatePrefix(cachebox.KeySessionsPrefix)
	return nil
}

/* ===================== RESYNC ===================== */

// ResyncAll: proyeksikan ulang semua rule aktif. Satu rule gagal tidak
// menghentikan rule lain (partial-failure per unit); error terakhir
// dikembalikan supaya caller tahu perlu retry.
func (s *ProjectorService) ResyncAll() error {
	var scheds []smodel.ClassScheduleModel
	if err := s.DB.Where("class_schedule_is_active = ?", true).Find(&scheds).Error; err != nil {
		return err
	}
	var lastErr error
	for _, sc := range scheds {
		if err := s.Project(sc, DefaultHorizonWeeks); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// ProjectForStudent: proyeksikan ulang semua rule individu milik siswa
// (dipanggil saat status siswa berubah active <-> break).
func (s *ProjectorService) ProjectForStudent(studentID uuid.UUID) error {
	var scheds []smodel.ClassScheduleModel
	if err := s.DB.Where("class_schedule_student_id = ?", studentID).Find(&scheds).Error; err != nil {
		return err
	}
	var lastErr error
	for _, sc := range scheds {
		if err := s.Project(sc, DefaultHorizonWeeks); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
