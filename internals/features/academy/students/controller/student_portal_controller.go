// file: internals/features/academy/students/controller/student_portal_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	gmodel "akademiku_backend/internals/features/academy/groups/model"
	sesmodel "akademiku_backend/internals/features/academy/sessions/model"
	"akademiku_backend/internals/features/academy/students/dto"
	"akademiku_backend/internals/features/academy/students/model"
	helper "akademiku_backend/internals/helpers"
	authmw "akademiku_backend/internals/middlewares/auth"
)

// Portal siswa: baca-saja, scope ke student_id dari klaim JWT.
type StudentPortalController struct {
	DB *gorm.DB
}

func NewStudentPortalController(db *gorm.DB) *StudentPortalController {
	return &StudentPortalController{DB: db}
}

func (ctrl *StudentPortalController) studentFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals(authmw.LocStudentID).(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Token tidak memuat student_id")
	}
	return id, nil
}

// GET /api/u/me — profil + progres + sesi mendatang + PR pending
func (ctrl *StudentPortalController) Overview(c *fiber.Ctx) error {
	studentID, err := ctrl.studentFromToken(c)
	if err != nil {
		return err
	}

	var st model.StudentModel
	if err := ctrl.DB.Where("student_id = ?", studentID).Take(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// sesi mendatang: individu milik siswa + sesi grup yang dia ikuti
	var groupIDs []uuid.UUID
	if err := ctrl.DB.Model(&gmodel.GroupStudentModel{}).
		Where("group_student_student_id = ?", studentID).
		Pluck("group_student_group_id", &groupIDs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	q := ctrl.DB.Model(&sesmodel.ClassSessionModel{}).
		Where("class_session_status = ? AND class_session_starts_at >= ?", sesmodel.SessionUpcoming, now)
	if len(groupIDs) > 0 {
		q = q.Where("class_session_student_id = ? OR class_session_group_id IN ?", studentID, groupIDs)
	} else {
		q = q.Where("class_session_student_id = ?", studentID)
	}

	var upcoming []sesmodel.ClassSessionModel
	if err := q.Order("class_session_starts_at ASC").Limit(10).Find(&upcoming).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var pendingHomeworks []sesmodel.HomeworkModel
	if err := ctrl.DB.
		Where("homework_student_id = ? AND homework_status = ?", studentID, sesmodel.HomeworkPending).
		Order("homework_due_at ASC").
		Find(&pendingHomeworks).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"student":           dto.FromStudentModel(st),
		"upcoming_sessions": upcoming,
		"pending_homeworks": pendingHomeworks,
	})
}

// GET /api/u/attendance — riwayat kehadiran siswa
func (ctrl *StudentPortalController) AttendanceHistory(c *fiber.Ctx) error {
	studentID, err := ctrl.studentFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&sesmodel.AttendanceRecordModel{}).
		Where("attendance_record_student_id = ?", studentID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []sesmodel.AttendanceRecordModel
	if err := q.Order("attendance_record_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
