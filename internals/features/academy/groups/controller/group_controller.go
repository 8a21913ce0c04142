// file: internals/features/academy/groups/controller/group_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"akademiku_backend/internals/features/academy/groups/dto"
	"akademiku_backend/internals/features/academy/groups/model"
	stumodel "akademiku_backend/internals/features/academy/students/model"
	helper "akademiku_backend/internals/helpers"
	"akademiku_backend/internals/helpers/cachebox"
)

type GroupController struct {
	DB *gorm.DB
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{DB: db}
}

var validate = validator.New()

/* ===================== CRUD GRUP ===================== */
// POST /api/a/groups
func (ctrl *GroupController) Create(c *fiber.Ctx) error {
	var req dto.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	mdl := req.ToModel()
	if err := ctrl.DB.Create(&mdl).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat grup")
	}
	cachebox.Default.Invalidate(cachebox.KeyGroups)
	return helper.JsonCreated(c, "Grup berhasil dibuat", dto.FromGroupModel(mdl))
}

// GET /api/a/groups?search=
func (ctrl *GroupController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.GroupModel{})
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		q = q.Where("group_name ILIKE ?", "%"+s+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.GroupModel
	if err := q.Order("group_name ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.FromGroupModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/a/groups/:id
func (ctrl *GroupController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	var mdl model.GroupModel
	if err := ctrl.DB.Where("group_id = ?", id).Take(&mdl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Grup tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.FromGroupModel(mdl))
}

// PATCH /api/a/groups/:id
func (ctrl *GroupController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var mdl model.GroupModel
	if err := ctrl.DB.Where("group_id = ?", id).Take(&mdl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Grup tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	req.Apply(&mdl)
	if err := ctrl.DB.Save(&mdl).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengubah grup")
	}
	cachebox.Default.Invalidate(cachebox.KeyGroups)
	return helper.JsonUpdated(c, "Grup berhasil diubah", dto.FromGroupModel(mdl))
}

// DELETE /api/a/groups/:id — soft delete; keanggotaan ikut dibersihkan.
// Sesi grup di masa depan TIDAK ditarik di sini: agenda sudah membaca
// keanggotaan live, grup tanpa anggota menghasilkan agenda kosong.
func (ctrl *GroupController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("group_id = ?", id).Delete(&model.GroupModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("group_student_group_id = ?", id).
			Delete(&model.GroupStudentModel{}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Grup tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	cachebox.Default.Invalidate(cachebox.KeyGroups)
	cachebox.Default.InvalidatePrefix(cachebox.KeySessionsPrefix)
	return helper.JsonDeleted(c, "Grup dihapus", fiber.Map{"group_id": id})
}

/* ===================== KEANGGOTAAN ===================== */
// GET /api/a/groups/:id/members
func (ctrl *GroupController) ListMembers(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var members []model.GroupStudentModel
	if err := ctrl.DB.
		Where("group_student_group_id = ?", id).
		Order("group_student_joined_at ASC").
		Find(&members).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", members)
}

// POST /api/a/groups/:id/members — idempotent (duplikat = no-op)
func (ctrl *GroupController) AddMember(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.AddGroupMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var grp model.GroupModel
	if err := ctrl.DB.Where("group_id = ?", id).Take(&grp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Grup tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	var st stumodel.StudentModel
	if err := ctrl.DB.Where("student_id = ?", req.StudentID).Take(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	member := model.GroupStudentModel{
		GroupStudentGroupID:   id,
		GroupStudentStudentID: req.StudentID,
	}
	if err := ctrl.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menambah anggota")
	}
	// agenda harian diturunkan dari keanggotaan, jadi ikut di-invalidate
	cachebox.Default.Invalidate(cachebox.KeyGroups)
	cachebox.Default.InvalidatePrefix(cachebox.KeySessionsPrefix)
	return helper.JsonCreated(c, "Anggota ditambahkan", member)
}

// DELETE /api/a/groups/:id/members/:student_id
func (ctrl *GroupController) RemoveMember(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "student_id tidak valid")
	}

	res := ctrl.DB.
		Where("group_student_group_id = ? AND group_student_student_id = ?", id, studentID).
		Delete(&model.GroupStudentModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Anggota tidak ditemukan")
	}
	cachebox.Default.Invalidate(cachebox.KeyGroups)
	cachebox.Default.InvalidatePrefix(cachebox.KeySessionsPrefix)
	return helper.JsonDeleted(c, "Anggota dikeluarkan", fiber.Map{
		"group_id":   id,
		"student_id": studentID,
	})
}
