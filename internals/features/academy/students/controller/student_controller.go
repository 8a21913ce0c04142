// file: internals/features/academy/students/controller/student_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	schedsvc "akademiku_backend/internals/features/academy/schedules/service"
	"akademiku_backend/internals/features/academy/students/dto"
	"akademiku_backend/internals/features/academy/students/model"
	helper "akademiku_backend/internals/helpers"
	"akademiku_backend/internals/helpers/cachebox"
)

type StudentController struct {
	DB        *gorm.DB
	Projector *schedsvc.ProjectorService
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Projector: schedsvc.NewProjector(db)}
}

var validate = validator.New()

/* ===================== CREATE ===================== */
// POST /api/a/students
func (ctrl *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	mdl := req.ToModel()
	if err := ctrl.DB.Create(&mdl).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat siswa")
	}
	cachebox.Default.Invalidate(cachebox.KeyStudents)
	return helper.JsonCreated(c, "Siswa berhasil dibuat", dto.FromStudentModel(mdl))
}

/* ===================== LIST / DETAIL ===================== */
// GET /api/a/students?status=&fee_status=
func (ctrl *StudentController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.StudentModel{})
	if s := c.Query("status"); s != "" {
		q = q.Where("student_status = ?", s)
	}
	if f := c.Query("fee_status"); f != "" {
		q = q.Where("student_fee_status = ?", f)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.StudentModel
	if err := q.Order("student_name ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.FromStudentModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/students/:id
func (ctrl *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	var mdl model.StudentModel
	if err := ctrl.DB.Where("student_id = ?", id).Take(&mdl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.FromStudentModel(mdl))
}

/* ===================== UPDATE (partial) ===================== */
// PATCH /api/a/students/:id
func (ctrl *StudentController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var mdl model.StudentModel
	if err := ctrl.DB.Where("student_id = ?", id).Take(&mdl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	prevStatus := mdl.StudentStatus
	req.Apply(&mdl)
	if err := ctrl.DB.Save(&mdl).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengubah siswa")
	}
	cachebox.Default.Invalidate(cachebox.KeyStudents)

	// active <-> break mengubah eligibility rule individu siswa ini:
	// break menarik sesi mendatang, active memproyeksikan ulang
	if req.StudentStatus != nil && prevStatus != mdl.StudentStatus {
		if err := ctrl.Projector.ProjectForStudent(mdl.StudentID); err != nil {
			return helper.JsonUpdated(c, "Siswa diubah, sinkronisasi sesi gagal (akan diulang)", dto.FromStudentModel(mdl))
		}
	}

	return helper.JsonUpdated(c, "Siswa berhasil diubah", dto.FromStudentModel(mdl))
}

/* ===================== DELETE (soft) ===================== */
// DELETE /api/a/students/:id
func (ctrl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	res := ctrl.DB.Where("student_id = ?", id).Delete(&model.StudentModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
	}
	cachebox.Default.Invalidate(cachebox.KeyStudents)

	// siswa hilang → proyeksi individunya ditarik (eligibility gagal saat project)
	if err := ctrl.Projector.ProjectForStudent(id); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Siswa dihapus", fiber.Map{"student_id": id})
}
