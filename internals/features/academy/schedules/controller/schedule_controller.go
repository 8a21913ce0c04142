// file: internals/features/academy/schedules/controller/schedule_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/academy/schedules/dto"
	"akademiku_backend/internals/features/academy/schedules/model"
	"akademiku_backend/internals/features/academy/schedules/service"
	helper "akademiku_backend/internals/helpers"
	"akademiku_backend/internals/helpers/cachebox"
	"akademiku_backend/internals/helpers/dbtime"
)

type ClassScheduleController struct {
	DB        *gorm.DB
	Projector *service.ProjectorService
}

func NewClassScheduleController(db *gorm.DB) *ClassScheduleController {
	return &ClassScheduleController{
		DB:        db,
		Projector: service.NewProjector(db),
	}
}

var validate = validator.New()

/* ===================== CREATE ===================== */
// POST /api/a/class-schedules
func (ctrl *ClassScheduleController) Create(c *fiber.Ctx) error {
	var req dto.CreateClassScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := req.Validate(); err != nil {
		return err
	}

	mdl, err := req.ToModel()
	if err != nil {
		return err
	}
	if err := ctrl.DB.Create(&mdl).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat jadwal")
	}
	cachebox.Default.Invalidate(cachebox.KeySchedules)

	// proyeksi langsung setiap save; gagal di sini bukan error blocking —
	// resync periodik akan mengulang (idempotent)
	if err := ctrl.Projector.Project(mdl, service.DefaultHorizonWeeks); err != nil {
		return helper.JsonCreated(c, "Jadwal dibuat, sinkronisasi sesi gagal (akan diulang)", dto.FromClassScheduleModel(mdl))
	}

	return helper.JsonCreated(c, "Jadwal berhasil dibuat", dto.FromClassScheduleModel(mdl))
}

/* ===================== LIST / DETAIL ===================== */
// GET /api/a/class-schedules?student_id=&group_id=
func (ctrl *ClassScheduleController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.ClassScheduleModel{})
	if s := c.Query("student_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "student_id tidak valid")
		}
		q = q.Where("class_schedule_student_id = ?", id)
	}
	if g := c.Query("group_id"); g != "" {
		id, err := uuid.Parse(g)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "group_id tidak valid")
		}
		q = q.Where("class_schedule_group_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.ClassScheduleModel
	if err := q.Order("class_schedule_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.ClassScheduleResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromClassScheduleModel(r))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/class-schedules/:id
func (ctrl *ClassScheduleController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	var mdl model.ClassScheduleModel
	if err := ctrl.DB.Where("class_schedule_id = ?", id).Take(&mdl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Jadwal tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.FromClassScheduleModel(mdl))
}

/* ===================== UPDATE (partial) ===================== */
// PATCH /api/a/class-schedules/:id
func (ctrl *ClassScheduleController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateClassScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var mdl model.ClassScheduleModel
	if err := ctrl.DB.Where("class_schedule_id = ?", id).Take(&mdl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Jadwal tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if err := req.Apply(&mdl); err != nil {
		return err
	}
	if err := ctrl.DB.Save(&mdl).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengubah jadwal")
	}
	cachebox.Default.Invalidate(cachebox.KeySchedules)

	if err := ctrl.Projector.Project(mdl, service.DefaultHorizonWeeks); err != nil {
		return helper.JsonUpdated(c, "Jadwal diubah, sinkronisasi sesi gagal (akan diulang)", dto.FromClassScheduleModel(mdl))
	}

	return helper.JsonUpdated(c, "Jadwal berhasil diubah", dto.FromClassScheduleModel(mdl))
}

/* ===================== DEACTIVATE / DELETE ===================== */
// POST /api/a/class-schedules/:id/deactivate — cara yang disarankan untuk
// menghentikan rule (hapus fisik hanya kalau memang mau buang histori rule)
func (ctrl *ClassScheduleController) Deactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	res := ctrl.DB.Model(&model.ClassScheduleModel{}).
		Where("class_schedule_id = ?", id).
		Update("class_schedule_is_active", false)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Jadwal tidak ditemukan")
	}
	cachebox.Default.Invalidate(cachebox.KeySchedules)

	// rule non-aktif → sesi mendatang ditarik; batas hari ikut zona akademi
	now := dbtime.NowInAcademy()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := ctrl.Projector.Retract(id, today); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Jadwal dinonaktifkan", fiber.Map{"class_schedule_id": id})
}

// DELETE /api/a/class-schedules/:id — hard delete; cascade hanya ke sesi
// non-completed (sesi completed = histori, tetap tinggal dengan weak ref)
func (ctrl *ClassScheduleController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := ctrl.Projector.RetractNonCompleted(id); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	res := ctrl.DB.Unscoped().
		Where("class_schedule_id = ?", id).
		Delete(&model.ClassScheduleModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		// rule sudah hilang = state akhir tercapai, bukan error
		return helper.JsonDeleted(c, "Jadwal sudah terhapus", fiber.Map{"class_schedule_id": id})
	}
	cachebox.Default.Invalidate(cachebox.KeySchedules)
	return helper.JsonDeleted(c, "Jadwal dihapus", fiber.Map{"class_schedule_id": id})
}

/* ===================== RESYNC ===================== */
// POST /api/a/class-schedules/resync — proyeksi ulang semua rule aktif
func (ctrl *ClassScheduleController) Resync(c *fiber.Ctx) error {
	if err := ctrl.Projector.ResyncAll(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Resync sebagian gagal, coba lagi: "+err.Error())
	}
	return helper.JsonOK(c, "Resync selesai", nil)
}
