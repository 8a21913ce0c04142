// file: internals/features/academy/sessions/controller/session_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/academy/sessions/dto"
	"akademiku_backend/internals/features/academy/sessions/model"
	"akademiku_backend/internals/features/academy/sessions/service"
	helper "akademiku_backend/internals/helpers"
	"akademiku_backend/internals/helpers/dbtime"
)

type ClassSessionController struct {
	DB        *gorm.DB
	Agenda    *service.AgendaService
	Finalizer *service.FinalizerService
}

func NewClassSessionController(db *gorm.DB) *ClassSessionController {
	return &ClassSessionController{
		DB:        db,
		Agenda:    service.NewAgenda(db),
		Finalizer: service.NewFinalizer(db),
	}
}

var validate = validator.New()

/* ===================== AGENDA ===================== */
// GET /api/a/class-sessions/agenda?date=2026-09-01 (default: hari ini)
// Satu entri per slot — sesi grup menelan duplikat individunya.
func (ctrl *ClassSessionController) AgendaByDate(c *fiber.Ctx) error {
	date := dbtime.NowInAcademy()
	if raw := c.Query("date"); raw != "" {
		parsed, err := dbtime.ParseDateInAcademy(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format date harus YYYY-MM-DD")
		}
		date = parsed
	}

	rows, err := ctrl.Agenda.AgendaForDate(date)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.FromClassSessionModels(rows))
}

/* ===================== LIST / DETAIL ===================== */
// GET /api/a/class-sessions?from=&to=&status=&student_id=&group_id=
func (ctrl *ClassSessionController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)

	q := ctrl.DB.Model(&model.ClassSessionModel{})
	if raw := c.Query("from"); raw != "" {
		from, err := dbtime.ParseDateInAcademy(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format from harus YYYY-MM-DD")
		}
		q = q.Where("class_session_starts_at >= ?", from)
	}
	if raw := c.Query("to"); raw != "" {
		to, err := dbtime.ParseDateInAcademy(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format to harus YYYY-MM-DD")
		}
		// batas eksklusif hari berikutnya
		q = q.Where("class_session_starts_at < ?", to.AddDate(0, 0, 1))
	}
	if s := c.Query("status"); s != "" {
		q = q.Where("class_session_status = ?", s)
	}
	if s := c.Query("student_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "student_id tidak valid")
		}
		q = q.Where("class_session_student_id = ?", id)
	}
	if g := c.Query("group_id"); g != "" {
		id, err := uuid.Parse(g)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "group_id tidak valid")
		}
		q = q.Where("class_session_group_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.ClassSessionModel
	if err := q.Order("class_session_starts_at ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.FromClassSessionModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/class-sessions/:id
func (ctrl *ClassSessionController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	var mdl model.ClassSessionModel
	if err := ctrl.DB.Where("class_session_id = ?", id).Take(&mdl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.FromClassSessionModel(mdl))
}

/* ===================== RESCHEDULE / CANCEL ===================== */
// PATCH /api/a/class-sessions/:id/reschedule
func (ctrl *ClassSessionController) Reschedule(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.RescheduleSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	mdl, err := ctrl.Finalizer.Reschedule(id, req.ClassSessionStartsAt, req.ClassSessionEndsAt)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Sesi dijadwalkan ulang", dto.FromClassSessionModel(*mdl))
}

// PATCH /api/a/class-sessions/:id/cancel
func (ctrl *ClassSessionController) Cancel(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := ctrl.Finalizer.Cancel(id); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Sesi dibatalkan", fiber.Map{"class_session_id": id})
}

/* ===================== FINALIZE ===================== */
// POST /api/a/class-sessions/:id/finalize — kehadiran + billing + PR,
// lalu sesi ditutup menjadi completed
func (ctrl *ClassSessionController) Finalize(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.FinalizeSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	summary, err := ctrl.Finalizer.Finalize(id, req.ToServiceResults())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Sesi difinalisasi", summary)
}

/* ===================== KEHADIRAN & PR ===================== */
// GET /api/a/class-sessions/:id/attendance
func (ctrl *ClassSessionController) ListAttendance(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var rows []model.AttendanceRecordModel
	if err := ctrl.DB.
		Where("attendance_record_session_id = ?", id).
		Order("attendance_record_created_at ASC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.AttendanceRecordResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromAttendanceRecordModel(r))
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /api/a/homeworks?student_id=&status=
func (ctrl *ClassSessionController) ListHomeworks(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.HomeworkModel{})
	if s := c.Query("student_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "student_id tidak valid")
		}
		q = q.Where("homework_student_id = ?", id)
	}
	if s := c.Query("status"); s != "" {
		q = q.Where("homework_status = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.HomeworkModel
	if err := q.Order("homework_due_at ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.HomeworkResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromHomeworkModel(r))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// PATCH /api/a/homeworks/:id/done
func (ctrl *ClassSessionController) MarkHomeworkDone(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	res := ctrl.DB.Model(&model.HomeworkModel{}).
		Where("homework_id = ?", id).
		Update("homework_status", model.HomeworkDone)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "PR tidak ditemukan")
	}
	return helper.JsonUpdated(c, "PR ditandai selesai", fiber.Map{"homework_id": id})
}
