// file: internals/seeds/runner.go
package seeds

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	gmodel "akademiku_backend/internals/features/academy/groups/model"
	smodel "akademiku_backend/internals/features/academy/schedules/model"
	schedService "akademiku_backend/internals/features/academy/schedules/service"
	stumodel "akademiku_backend/internals/features/academy/students/model"
	"akademiku_backend/internals/helpers/dbtime"
)

// RunDemoSeeds: isi data contoh untuk lingkungan development
// (SEED_DEMO=true). Idempotent — nama dipakai sebagai kunci natural.
func RunDemoSeeds(db *gorm.DB) {
	st := seedStudent(db, "Demo Aisyah", 400000, []string{"Iqra 1", "Iqra 2", "Iqra 3"})
	grp := seedGroup(db, "Demo Kelas Tahsin")
	if st == nil || grp == nil {
		return
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&gmodel.GroupStudentModel{
		GroupStudentGroupID:   grp.GroupID,
		GroupStudentStudentID: st.StudentID,
	}).Error; err != nil {
		log.Println("[SEED] gagal menambah anggota demo:", err)
		return
	}

	seedSchedule(db, &st.StudentID, nil, []int64{1, 3}, "14:00", "15:00")
	seedSchedule(db, nil, &grp.GroupID, []int64{6}, "09:00", "10:30")
	log.Println("[SEED] data demo siap")
}

func seedStudent(db *gorm.DB, name string, fee int, topics []string) *stumodel.StudentModel {
	var existing stumodel.StudentModel
	if err := db.Where("student_name = ?", name).Take(&existing).Error; err == nil {
		return &existing
	}
	st := stumodel.StudentModel{
		StudentName:                name,
		StudentStatus:              stumodel.StudentActive,
		StudentFeeStatus:           stumodel.FeePaid,
		StudentFeeAmount:           fee,
		StudentTotalClassesAllowed: 8,
	}
	st.SetTopics(topics)
	if err := db.Create(&st).Error; err != nil {
		log.Println("[SEED] gagal membuat siswa demo:", err)
		return nil
	}
	return &st
}

func seedGroup(db *gorm.DB, name string) *gmodel.GroupModel {
	var existing gmodel.GroupModel
	if err := db.Where("group_name = ?", name).Take(&existing).Error; err == nil {
		return &existing
	}
	grp := gmodel.GroupModel{GroupName: name}
	if err := db.Create(&grp).Error; err != nil {
		log.Println("[SEED] gagal membuat grup demo:", err)
		return nil
	}
	return &grp
}

func seedSchedule(db *gorm.DB, studentID, groupID *uuid.UUID, days []int64, start, end string) {
	var n int64
	q := db.Model(&smodel.ClassScheduleModel{})
	if studentID != nil {
		q = q.Where("class_schedule_student_id = ?", *studentID)
	} else {
		q = q.Where("class_schedule_group_id = ?", *groupID)
	}
	if q.Count(&n); n > 0 {
		return
	}

	startTod, err := dbtime.Parse(start)
	if err != nil {
		log.Println("[SEED] jam mulai invalid:", err)
		return
	}
	endTod, err := dbtime.Parse(end)
	if err != nil {
		log.Println("[SEED] jam selesai invalid:", err)
		return
	}

	sched := smodel.ClassScheduleModel{
		ClassScheduleStudentID: studentID,
		ClassScheduleGroupID:   groupID,
		ClassScheduleDays:      days,
		ClassScheduleStartTime: startTod,
		ClassScheduleEndTime:   endTod,
		ClassScheduleStartDate: time.Now(),
		ClassScheduleIsActive:  true,
	}
	if err := db.Create(&sched).Error; err != nil {
		log.Println("[SEED] gagal membuat jadwal demo:", err)
		return
	}
	if err := schedService.NewProjector(db).Project(sched, schedService.DefaultHorizonWeeks); err != nil {
		log.Println("[SEED] proyeksi jadwal demo gagal:", err)
	}
}
