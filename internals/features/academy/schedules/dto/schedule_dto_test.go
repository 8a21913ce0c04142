// file: internals/features/academy/schedules/dto/schedule_dto_test.go
package dto

import (
	"testing"

	"github.com/google/uuid"

	"akademiku_backend/internals/helpers/dbtime"
)

func tod(t *testing.T, s string) dbtime.Tod {
	t.Helper()
	v, err := dbtime.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}

func validCreate(t *testing.T) CreateClassScheduleRequest {
	sid := uuid.New()
	return CreateClassScheduleRequest{
		ClassScheduleStudentID: &sid,
		ClassScheduleDays:      []int64{1, 3},
		ClassScheduleStartTime: tod(t, "14:00"),
		ClassScheduleEndTime:   tod(t, "15:00"),
		ClassScheduleStartDate: "2026-09-07",
	}
}

func TestCreateValidateTargetXOR(t *testing.T) {
	req := validCreate(t)
	if err := req.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	// dua target
	gid := uuid.New()
	req.ClassScheduleGroupID = &gid
	if err := req.Validate(); err == nil {
		t.Fatal("both targets should be rejected")
	}

	// tanpa target
	req.ClassScheduleStudentID = nil
	req.ClassScheduleGroupID = nil
	if err := req.Validate(); err == nil {
		t.Fatal("no target should be rejected")
	}
}

func TestCreateValidateTimeOrder(t *testing.T) {
	req := validCreate(t)
	req.ClassScheduleEndTime = tod(t, "14:00") // sama dengan start
	if err := req.Validate(); err == nil {
		t.Fatal("end == start should be rejected")
	}
	req.ClassScheduleEndTime = tod(t, "13:00")
	if err := req.Validate(); err == nil {
		t.Fatal("end < start should be rejected")
	}
}

func TestCreateToModelDefaultsActive(t *testing.T) {
	req := validCreate(t)
	mdl, err := req.ToModel()
	if err != nil {
		t.Fatalf("to model: %v", err)
	}
	if !mdl.ClassScheduleIsActive {
		t.Fatal("is_active should default true")
	}
	if mdl.ClassScheduleStartDate.Format("2006-01-02") != "2026-09-07" {
		t.Fatalf("start date = %v", mdl.ClassScheduleStartDate)
	}

	off := false
	req.ClassScheduleIsActive = &off
	mdl, err = req.ToModel()
	if err != nil {
		t.Fatalf("to model: %v", err)
	}
	if mdl.ClassScheduleIsActive {
		t.Fatal("explicit is_active=false ignored")
	}
}

func TestUpdateApplyChecksFinalState(t *testing.T) {
	req := validCreate(t)
	mdl, err := req.ToModel()
	if err != nil {
		t.Fatalf("to model: %v", err)
	}

	// geser end_time saja → invariant dicek terhadap start lama
	bad := tod(t, "13:30")
	upd := UpdateClassScheduleRequest{ClassScheduleEndTime: &bad}
	if err := upd.Apply(&mdl); err == nil {
		t.Fatal("end before existing start should be rejected")
	}

	good := tod(t, "16:00")
	upd = UpdateClassScheduleRequest{ClassScheduleEndTime: &good}
	if err := upd.Apply(&mdl); err != nil {
		t.Fatalf("valid partial update rejected: %v", err)
	}
	if mdl.ClassScheduleEndTime.MinuteOfDay() != 16*60 {
		t.Fatal("end_time not applied")
	}
	// field lain tidak tersentuh
	if len(mdl.ClassScheduleDays) != 2 {
		t.Fatalf("days mutated: %v", mdl.ClassScheduleDays)
	}
}
