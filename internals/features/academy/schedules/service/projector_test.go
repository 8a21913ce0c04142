// file: internals/features/academy/schedules/service/projector_test.go
package service

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	smodel "akademiku_backend/internals/features/academy/schedules/model"
	sesmodel "akademiku_backend/internals/features/academy/sessions/model"
	stumodel "akademiku_backend/internals/features/academy/students/model"
	"akademiku_backend/internals/helpers/dbtime"
)

// jam akademi disamakan dengan jam host supaya assert tanggal di bawah
// tidak bergeser sehari di mesin dengan zona berbeda
func TestMain(m *testing.M) {
	os.Setenv("ACADEMY_TIMEZONE", "Local")
	os.Exit(m.Run())
}

// class_schedules dibuat manual: kolom int[] (postgres) tidak dikenal
// migrator sqlite; Int64Array tersimpan sebagai TEXT "{0,1,...}"
const createSchedulesTable = `
CREATE TABLE class_schedules (
	class_schedule_id         TEXT PRIMARY KEY,
	class_schedule_student_id TEXT,
	class_schedule_group_id   TEXT,
	class_schedule_days       TEXT NOT NULL,
	class_schedule_start_time TEXT NOT NULL,
	class_schedule_end_time   TEXT NOT NULL,
	class_schedule_start_date DATE NOT NULL,
	class_schedule_is_active  BOOLEAN NOT NULL DEFAULT true,
	class_schedule_created_at DATETIME,
	class_schedule_updated_at DATETIME,
	class_schedule_deleted_at DATETIME
)`

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
	sqlDB.SetMaxOpenConns(1) // :memory: = satu koneksi satu database

	if err := db.AutoMigrate(&stumodel.StudentModel{}, &sesmodel.ClassSessionModel{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if err := db.Exec(createSchedulesTable).Error; err != nil {
		t.Fatalf("create class_schedules: %v", err)
	}
	return db
}

func mustTod(t *testing.T, s string) dbtime.Tod {
	t.Helper()
	tod, err := dbtime.Parse(s)
	if err != nil {
		t.Fatalf("parse tod %q: %v", s, err)
	}
	return tod
}

func seedActiveStudent(t *testing.T, db *gorm.DB) stumodel.StudentModel {
	t.Helper()
	st := stumodel.StudentModel{
		StudentName:                "Aisyah",
		StudentStatus:              stumodel.StudentActive,
		StudentFeeStatus:           stumodel.FeePaid,
		StudentTotalClassesAllowed: 8,
	}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return st
}

func dailySchedule(studentID *uuid.UUID, groupID *uuid.UUID, startDate time.Time, t *testing.T) smodel.ClassScheduleModel {
	return smodel.ClassScheduleModel{
		ClassScheduleStudentID: studentID,
		ClassScheduleGroupID:   groupID,
		ClassScheduleDays:      []int64{0, 1, 2, 3, 4, 5, 6},
		ClassScheduleStartTime: mustTod(t, "14:00"),
		ClassScheduleEndTime:   mustTod(t, "15:00"),
		ClassScheduleStartDate: startDate,
		ClassScheduleIsActive:  true,
	}
}

func countSessions(t *testing.T, db *gorm.DB, scheduleID uuid.UUID) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&sesmodel.ClassSessionModel{}).
		Where("class_session_schedule_id = ?", scheduleID).
		Count(&n).Error; err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	return n
}

/* ===================== Tests ===================== */

func TestProjectGeneratesFullHorizon(t *testing.T) {
	db := newTestDB(t)
	st := seedActiveStudent(t, db)

	sched := dailySchedule(&st.StudentID, nil, time.Now().AddDate(0, 0, -30), t)
	if err := db.Create(&sched).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	p := NewProjector(db)
	if err := p.Project(sched, 3); err != nil {
		t.Fatalf("project: %v", err)
	}

	// harian, horizon 3 minggu, mulai hari ini (start_date lampau di-clamp)
	if got := countSessions(t, db, sched.ClassScheduleID); got != 21 {
		t.Fatalf("want 21 sessions, got %d", got)
	}

	var rows []sesmodel.ClassSessionModel
	if err := db.Where("class_session_schedule_id = ?", sched.ClassScheduleID).
		Order("class_session_starts_at ASC").Find(&rows).Error; err != nil {
		t.Fatalf("load sessions: %v", err)
	}
	for _, r := range rows {
		if r.ClassSessionStatus != sesmodel.SessionUpcoming {
			t.Fatalf("session %s status %s, want upcoming", r.ClassSessionID, r.ClassSessionStatus)
		}
		if want := sesmodel.SessionID(sched.ClassScheduleID, r.ClassSessionStartsAt); r.ClassSessionID != want {
			t.Fatalf("session id not deterministic: got %s want %s", r.ClassSessionID, want)
		}
		if r.ClassSessionTopic != sesmodel.DefaultTopic {
			t.Fatalf("topic %q, want default", r.ClassSessionTopic)
		}
	}
}

func TestProjectIdempotent(t *testing.T) {
	db := newTestDB(t)
	st := seedActiveStudent(t, db)

	sched := dailySchedule(&st.StudentID, nil, time.Now().AddDate(0, 0, -1), t)
	if err := db.Create(&sched).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	p := NewProjector(db)
	for i := 0; i < 3; i++ {
		if err := p.Project(sched, 2); err != nil {
			t.Fatalf("project #%d: %v", i, err)
		}
	}
	if got := countSessions(t, db, sched.ClassScheduleID); got != 14 {
		t.Fatalf("want 14 sessions after repeated project, got %d", got)
	}
}

func TestProjectFutureStartDate(t *testing.T) {
	db := newTestDB(t)
	st := seedActiveStudent(t, db)

	// mulai seminggu ke depan → minggu pertama horizon kosong
	sched := dailySchedule(&st.StudentID, nil, time.Now().AddDate(0, 0, 7), t)
	if err := db.Create(&sched).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	p := NewProjector(db)
	if err := p.Project(sched, 2); err != nil {
		t.Fatalf("project: %v", err)
	}
	if got := countSessions(t, db, sched.ClassScheduleID); got != 7 {
		t.Fatalf("want 7 sessions (14 - 7 hari sebelum start), got %d", got)
	}
}

func TestProjectSkipsBreakStudent(t *testing.T) {
	db := newTestDB(t)
	st := seedActiveStudent(t, db)
	if err := db.Model(&st).Update("student_status", stumodel.StudentBreak).Error; err != nil {
		t.Fatalf("set break: %v", err)
	}

	sched := dailySchedule(&st.StudentID, nil, time.Now(), t)
	if err := db.Create(&sched).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	p := NewProjector(db)
	if err := p.Project(sched, 2); err != nil {
		t.Fatalf("project: %v", err)
	}
	if got := countSessions(t, db, sched.ClassScheduleID); got != 0 {
		t.Fatalf("break student: want 0 sessions, got %d", got)
	}
}

func TestProjectGroupSkipsEligibilityCheck(t *testing.T) {
	db := newTestDB(t)

	gid := uuid.New()
	sched := dailySchedule(nil, &gid, time.Now(), t)
	if err := db.Create(&sched).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	p := NewProjector(db)
	if err := p.Project(sched, 1); err != nil {
		t.Fatalf("project: %v", err)
	}
	// rule grup diproyeksikan tanpa cek siswa
	if got := countSessions(t, db, sched.ClassScheduleID); got != 7 {
		t.Fatalf("want 7 group sessions, got %d", got)
	}
}

func TestProjectEditRetractsStaleSlots(t *testing.T) {
	db := newTestDB(t)
	st := seedActiveStudent(t, db)

	sched := dailySchedule(&st.StudentID, nil, time.Now(), t)
	if err := db.Create(&sched).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	p := NewProjector(db)
	if err := p.Project(sched, 2); err != nil {
		t.Fatalf("project: %v", err)
	}

	// edit jam mulai → slot lama harus lenyap, bukan dobel
	sched.ClassScheduleStartTime = mustTod(t, "16:30")
	sched.ClassScheduleEndTime = mustTod(t, "17:30")
	if err := db.Save(&sched).Error; err != nil {
		t.Fatalf("save schedule: %v", err)
	}
	if err := p.Project(sched, 2); err != nil {
		t.Fatalf("re-project: %v", err)
	}

	if got := countSessions(t, db, sched.ClassScheduleID); got != 14 {
		t.Fatalf("want 14 sessions after edit, got %d", got)
	}
	var rows []sesmodel.ClassSessionModel
	if err := db.Where("class_session_schedule_id = ?", sched.ClassScheduleID).Find(&rows).Error; err != nil {
		t.Fatalf("load sessions: %v", err)
	}
	for _, r := range rows {
		if h, m, _ := r.ClassSessionStartsAt.Clock(); h != 16 || m != 30 {
			t.Fatalf("stale slot survived re-project: starts at %02d:%02d", h, m)
		}
	}
}

func TestProjectPreservesCompletedHistory(t *testing.T) {
	db := newTestDB(t)
	st := seedActiveStudent(t, db)

	sched := dailySchedule(&st.StudentID, nil, time.Now(), t)
	if err := db.Create(&sched).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	p := NewProjector(db)
	if err := p.Project(sched, 2); err != nil {
		t.Fatalf("project: %v", err)
	}

	var first sesmodel.ClassSessionModel
	if err := db.Where("class_session_schedule_id = ?", sched.ClassScheduleID).
		Order("class_session_starts_at ASC").Take(&first).Error; err != nil {
		t.Fatalf("load first session: %v", err)
	}
	if err := db.Model(&first).Update("class_session_status", sesmodel.SessionCompleted).Error; err != nil {
		t.Fatalf("complete session: %v", err)
	}

	if err := p.Project(sched, 2); err != nil {
		t.Fatalf("re-project: %v", err)
	}

	var kept sesmodel.ClassSessionModel
	if err := db.Where("class_session_id = ?", first.ClassSessionID).Take(&kept).Error; err != nil {
		t.Fatalf("completed session lost: %v", err)
	}
	if kept.ClassSessionStatus != sesmodel.SessionCompleted {
		t.Fatalf("completed session reverted to %s", kept.ClassSessionStatus)
	}
	if got := countSessions(t, db, sched.ClassScheduleID); got != 14 {
		t.Fatalf("want 14 sessions total, got %d", got)
	}
}

func TestProjectInactiveRuleRetractsAll(t *testing.T) {
	db := newTestDB(t)
	st := seedActiveStudent(t, db)

	sched := dailySchedule(&st.StudentID, nil, time.Now(), t)
	if err := db.Create(&sched).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	p := NewProjector(db)
	if err := p.Project(sched, 2); err != nil {
		t.Fatalf("project: %v", err)
	}

	sched.ClassScheduleIsActive = false
	if err := db.Save(&sched).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if err := p.Project(sched, 2); err != nil {
		t.Fatalf("re-project inactive: %v", err)
	}
	if got := countSessions(t, db, sched.ClassScheduleID); got != 0 {
		t.Fatalf("inactive rule: want 0 sessions, got %d", got)
	}
}

func TestRetractNonCompleted(t *testing.T) {
	db := newTestDB(t)
	st := seedActiveStudent(t, db)

	sched := dailySchedule(&st.StudentID, nil, time.Now(), t)
	if err := db.Create(&sched).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	p := NewProjector(db)
	if err := p.Project(sched, 1); err != nil {
		t.Fatalf("project: %v", err)
	}

	var first sesmodel.ClassSessionModel
	if err := db.Where("class_session_schedule_id = ?", sched.ClassScheduleID).
		Order("class_session_starts_at ASC").Take(&first).Error; err != nil {
		t.Fatalf("load first session: %v", err)
	}
	db.Model(&first).Update("class_session_status", sesmodel.SessionCompleted)

	if err := p.RetractNonCompleted(sched.ClassScheduleID); err != nil {
		t.Fatalf("retract non-completed: %v", err)
	}

	if got := countSessions(t, db, sched.ClassScheduleID); got != 1 {
		t.Fatalf("want only completed session left, got %d rows", got)
	}
}

func TestProjectForStudent(t *testing.T) {
	db := newTestDB(t)
	st := seedActiveStudent(t, db)

	sched := dailySchedule(&st.StudentID, nil, time.Now(), t)
	if err := db.Create(&sched).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	p := NewProjector(db)
	if err := p.ProjectForStudent(st.StudentID); err != nil {
		t.Fatalf("project for student: %v", err)
	}
	if got := countSessions(t, db, sched.ClassScheduleID); got != 21 {
		t.Fatalf("want 21 sessions, got %d", got)
	}

	// siswa cuti → proyeksi ulang menarik semua sesi mendatang
	if err := db.Model(&stumodel.StudentModel{}).
		Where("student_id = ?", st.StudentID).
		Update("student_status", stumodel.StudentBreak).Error; err != nil {
		t.Fatalf("set break: %v", err)
	}
	if err := p.ProjectForStudent(st.StudentID); err != nil {
		t.Fatalf("re-project for student: %v", err)
	}
	if got := countSessions(t, db, sched.ClassScheduleID); got != 0 {
		t.Fatalf("break student: want 0 sessions, got %d", got)
	}
}
