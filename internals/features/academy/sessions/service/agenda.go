// file: internals/features/academy/sessions/service/agenda.go
package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	gmodel "akademiku_backend/internals/features/academy/groups/model"
	sesmodel "akademiku_backend/internals/features/academy/sessions/model"
	stumodel "akademiku_backend/internals/features/academy/students/model"
	"akademiku_backend/internals/helpers/cachebox"
)

type AgendaService struct {
	DB    *gorm.DB
	Cache *cachebox.Box
}

func NewAgenda(db *gorm.DB) *AgendaService {
	return &AgendaService{DB: db, Cache: cachebox.Default}
}

/* ===================== BUILD (pure) ===================== */

// BuildAgenda: view harian bebas dobel. Kebijakan tie-break: grup menang,
// sesi individu pada slot yang sama di-suppress — hanya di view, kedua sesi
// tetap ada di storage. Siswa cuti dibuang saat baca (keanggotaan dinamis,
// terlepas dari eksklusi saat proyeksi).
func BuildAgenda(
	sessions []sesmodel.ClassSessionModel,
	groupMembers map[uuid.UUID][]uuid.UUID,
	activeStudents map[uuid.UUID]bool,
	targetDate time.Time,
) []sesmodel.ClassSessionModel {
	dayStart := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var groups, individuals []sesmodel.ClassSessionModel
	for _, s := range sessions {
		if s.ClassSessionStartsAt.Before(dayStart) || !s.ClassSessionStartsAt.Before(dayEnd) {
			continue
		}
		if s.IsGroup() {
			groups = append(groups, s)
			continue
		}
		// sesi individu milik siswa non-aktif tidak tampil
		if s.ClassSessionStudentID == nil || !activeStudents[*s.ClassSessionStudentID] {
			continue
		}
		individuals = append(individuals, s)
	}

	// (slot, siswa) yang sudah diklaim — grup diproses duluan
	claimed := make(map[string]bool)
	slotKey := func(start time.Time, studentID uuid.UUID) string {
		return fmt.Sprintf("%d|%s", start.Unix(), studentID)
	}

	out := make([]sesmodel.ClassSessionModel, 0, len(groups)+len(individuals))
	for _, g := range groups {
		out = append(out, g)
		for _, member := range groupMembers[*g.ClassSessionGroupID] {
			if activeStudents[member] {
				claimed[slotKey(g.ClassSessionStartsAt, member)] = true
			}
		}
	}
	for _, ind := range individuals {
		key := slotKey(ind.ClassSessionStartsAt, *ind.ClassSessionStudentID)
		if claimed[key] {
			continue
		}
		claimed[key] = true
		out = append(out, ind)
	}

	// stabil: seri waktu mulai mempertahankan urutan masuk
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ClassSessionStartsAt.Before(out[j].ClassSessionStartsAt)
	})
	return out
}

/* ===================== FOR DATE (loader + cache) ===================== */

// AgendaForDate: muat sesi satu tanggal + data pendukung lalu dedup.
// Hasil dicache per tanggal (write-invalidate oleh projector, finalizer,
// dan mutasi keanggotaan grup).
func (s *AgendaService) AgendaForDate(date time.Time) ([]sesmodel.ClassSessionModel, error) {
	key := cachebox.DayKey(date)
	if v, ok := s.Cache.Get(key); ok {
		if cached, ok := v.([]sesmodel.ClassSessionModel); ok {
			return cached, nil
		}
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var sessions []sesmodel.ClassSessionModel
	if err := s.DB.
		Where("class_session_starts_at >= ? AND class_session_starts_at < ? AND class_session_status <> ?",
			dayStart, dayEnd, sesmodel.SessionCancelled).
		Order("class_session_starts_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	activeStudents, err := s.activeStudentSet()
	if err != nil {
		return nil, err
	}
	members, err := s.groupMemberMap()
	if err != nil {
		return nil, err
	}

	out := BuildAgenda(sessions, members, activeStudents, dayStart)
	s.Cache.Set(key, out)
	return out, nil
}

func (s *AgendaService) activeStudentSet() (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	if err := s.DB.Model(&stumodel.StudentModel{}).
		Where("student_status = ?", stumodel.StudentActive).
		Pluck("student_id", &ids).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (s *AgendaService) groupMemberMap() (map[uuid.UUID][]uuid.UUID, error) {
	var rows []gmodel.GroupStudentModel
	if err := s.DB.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID][]uuid.UUID)
	for _, r := range rows {
		out[r.GroupStudentGroupID] = append(out[r.GroupStudentGroupID], r.GroupStudentStudentID)
	}
	return out, nil
}
