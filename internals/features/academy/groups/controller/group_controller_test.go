// file: internals/features/academy/groups/controller/group_controller_test.go
package controller

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"akademiku_backend/internals/features/academy/groups/model"
	sesmodel "akademiku_backend/internals/features/academy/sessions/model"
	sessvc "akademiku_backend/internals/features/academy/sessions/service"
	stumodel "akademiku_backend/internals/features/academy/students/model"
	"akademiku_backend/internals/helpers/cachebox"
)

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

	if err := db.AutoMigrate(
		&stumodel.StudentModel{},
		&model.GroupModel{},
		&model.GroupStudentModel{},
		&sesmodel.ClassSessionModel{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	ctrl := NewGroupController(db)
	g := app.Group("/groups")
	g.Delete("/:id", ctrl.Delete)
	g.Post("/:id/members", ctrl.AddMember)
	g.Delete("/:id/members/:student_id", ctrl.RemoveMember)
	return app
}

func seedStudent(t *testing.T, db *gorm.DB) stumodel.StudentModel {
	t.Helper()
	st := stumodel.StudentModel{
		StudentName:                "Budi",
		StudentStatus:              stumodel.StudentActive,
		StudentFeeStatus:           stumodel.FeePaid,
		StudentFeeAmount:           400000,
		StudentTotalClassesAllowed: 8,
	}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return st
}

func seedSession(t *testing.T, db *gorm.DB, studentID *uuid.UUID, groupID *uuid.UUID, startsAt time.Time) sesmodel.ClassSessionModel {
	t.Helper()
	schedID := uuid.New()
	ses := sesmodel.ClassSessionModel{
		ClassSessionID:         sesmodel.SessionID(schedID, startsAt),
		ClassSessionScheduleID: &schedID,
		ClassSessionStudentID:  studentID,
		ClassSessionGroupID:    groupID,
		ClassSessionStartsAt:   startsAt,
		ClassSessionEndsAt:     startsAt.Add(time.Hour),
		ClassSessionStatus:     sesmodel.SessionUpcoming,
		ClassSessionTopic:      sesmodel.DefaultTopic,
	}
	if err := db.Create(&ses).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return ses
}

func agendaLen(t *testing.T, db *gorm.DB, day time.Time) int {
	t.Helper()
	out, err := sessvc.NewAgenda(db).AgendaForDate(day)
	if err != nil {
		t.Fatalf("agenda: %v", err)
	}
	return len(out)
}

// Agenda harian diturunkan dari keanggotaan grup: mutasi anggota harus
// ikut meng-invalidate cache sessions:*, bukan hanya koleksi grup.
func TestAddRemoveMemberRefreshesAgendaCache(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(db)
	cachebox.Default.InvalidatePrefix(cachebox.KeySessionsPrefix)

	st := seedStudent(t, db)
	grp := model.GroupModel{GroupName: "Kelas Tahsin B"}
	if err := db.Create(&grp).Error; err != nil {
		t.Fatalf("seed group: %v", err)
	}

	day := time.Now().AddDate(0, 0, 3)
	slot := time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, day.Location())
	seedSession(t, db, nil, &grp.GroupID, slot)
	seedSession(t, db, &st.StudentID, nil, slot)

	// belum anggota: sesi individu dan sesi grup sama-sama tampil
	if n := agendaLen(t, db, day); n != 2 {
		t.Fatalf("agenda sebelum join = %d, want 2", n)
	}

	body := fmt.Sprintf(`{"student_id":%q}`, st.StudentID)
	req := httptest.NewRequest(fiber.MethodPost,
		fmt.Sprintf("/groups/%s/members", grp.GroupID), strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("add member status = %d, want 201", resp.StatusCode)
	}

	// agenda cached dari pembacaan di atas; join harus meng-invalidate,
	// grup kini menelan duplikat individu di slot yang sama
	if n := agendaLen(t, db, day); n != 1 {
		t.Fatalf("agenda setelah join = %d, want 1 (cache basi)", n)
	}

	req = httptest.NewRequest(fiber.MethodDelete,
		fmt.Sprintf("/groups/%s/members/%s", grp.GroupID, st.StudentID), nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("remove member: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("remove member status = %d, want 200", resp.StatusCode)
	}

	if n := agendaLen(t, db, day); n != 2 {
		t.Fatalf("agenda setelah keluar = %d, want 2 (cache basi)", n)
	}
}

func TestDeleteGroupRefreshesAgendaCache(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(db)
	cachebox.Default.InvalidatePrefix(cachebox.KeySessionsPrefix)

	st := seedStudent(t, db)
	grp := model.GroupModel{GroupName: "Kelas Tahsin C"}
	if err := db.Create(&grp).Error; err != nil {
		t.Fatalf("seed group: %v", err)
	}
	if err := db.Create(&model.GroupStudentModel{
		GroupStudentGroupID:   grp.GroupID,
		GroupStudentStudentID: st.StudentID,
	}).Error; err != nil {
		t.Fatalf("seed membership: %v", err)
	}

	day := time.Now().AddDate(0, 0, 4)
	slot := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, day.Location())
	seedSession(t, db, nil, &grp.GroupID, slot)
	seedSession(t, db, &st.StudentID, nil, slot)

	if n := agendaLen(t, db, day); n != 1 {
		t.Fatalf("agenda sebelum hapus grup = %d, want 1", n)
	}

	req := httptest.NewRequest(fiber.MethodDelete,
		fmt.Sprintf("/groups/%s", grp.GroupID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("delete group: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("delete group status = %d, want 200", resp.StatusCode)
	}

	// keanggotaan ikut terhapus → sesi individu tidak lagi tertelan
	if n := agendaLen(t, db, day); n != 2 {
		t.Fatalf("agenda setelah hapus grup = %d, want 2 (cache basi)", n)
	}
}
