package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activityService "powerschool_backend/internals/features/activity/service"
	"powerschool_backend/internals/features/school/classes/dto"
	"powerschool_backend/internals/features/school/classes/model"
	helper "powerschool_backend/internals/helpers"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

// =======================
// 📋 GET /api/classes
// =======================
func (ctrl *ClassController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)

	var (
		classes []model.ClassModel
		total   int64
	)

	q := ctrl.DB.Model(&model.ClassModel{})
	if search := c.Query("search"); search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data kelas")
	}
	if err := q.Order("grade ASC, name ASC").
		Limit(p.PerPage).Offset(p.Offset).
		Find(&classes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data kelas")
	}

	return helper.JsonList(c, "", classes, helper.BuildPagination(p, total, len(classes)))
}

// =======================
// ➕ POST /api/classes
// =======================
func (ctrl *ClassController) Create(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	class := model.ClassModel{
		Name:        req.Name,
		Grade:       req.Grade,
		TeacherName: req.TeacherName,
	}
	if err := ctrl.DB.Create(&class).Error; err != nil {
		log.Printf("[ERROR] create class: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat kelas")
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "class_created", "class", class.ID.String(), map[string]any{
		"name":  class.Name,
		"grade": class.Grade,
	})

	return helper.JsonCreated(c, "Kelas berhasil dibuat", class)
}

// =======================
// ✏️ PATCH /api/classes/:id
// =======================
func (ctrl *ClassController) Update(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	var req dto.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var class model.ClassModel
	if err := ctrl.DB.First(&class, "id = ?", classID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Grade != nil {
		updates["grade"] = *req.Grade
	}
	if req.TeacherName != nil {
		updates["teacher_name"] = *req.TeacherName
	}
	if len(updates) > 0 {
		if err := ctrl.DB.Model(&class).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui kelas")
		}
	}

	return helper.JsonUpdated(c, "Kelas berhasil diperbarui", class)
}

// =======================
// 🗑️ DELETE /api/classes/:id
// =======================
func (ctrl *ClassController) Delete(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", classID).
			Delete(&model.TeacherClassModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ClassModel{}, "id = ?", classID).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus kelas")
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "class_deleted", "class", classID.String(), nil)

	return helper.JsonDeleted(c, "Kelas berhasil dihapus", fiber.Map{"id": classID})
}

// ==============================================
// 👩‍🏫 GET /api/classes/assignments?class_id=...
// Tanpa class_id: semua mapping guru-kelas
// ==============================================
func (ctrl *ClassController) ListAssignments(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.TeacherClassModel{})
	if classID := c.Query("class_id"); classID != "" {
		id, err := uuid.Parse(classID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
		}
		q = q.Where("class_id = ?", id)
	}

	var rows []model.TeacherClassModel
	if err := q.Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data penugasan")
	}
	return helper.JsonOK(c, "OK", rows)
}

// ==============================================
// 🔁 PUT /api/classes/assignments
// Ganti total daftar guru untuk satu kelas
// ==============================================
func (ctrl *ClassController) ReplaceAssignments(c *fiber.Ctx) error {
	var req dto.ReplaceAssignmentsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	var class model.ClassModel
	if err := ctrl.DB.First(&class, "id = ?", classID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
	}

	rows := make([]model.TeacherClassModel, 0, len(req.UserIDs))
	for _, raw := range req.UserIDs {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID user tidak valid: "+raw)
		}
		rows = append(rows, model.TeacherClassModel{UserID: userID, ClassID: classID})
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", classID).
			Delete(&model.TeacherClassModel{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	}); err != nil {
		log.Printf("[ERROR] replace class assignments: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan penugasan guru")
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "class_assignments_updated", "class", classID.String(), map[string]any{
		"teacher_count": len(rows),
	})

	return helper.JsonUpdated(c, "Penugasan guru berhasil disimpan", fiber.Map{
		"class_id": classID,
		"user_ids": req.UserIDs,
	})
}

// ==============================================
// 🔁 PUT /api/classes/assignments/by-teacher
// Ganti total daftar kelas untuk satu guru
// ==============================================
func (ctrl *ClassController) BatchAssignTeacher(c *fiber.Ctx) error {
	var req dto.BatchAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID user tidak valid")
	}

	rows := make([]model.TeacherClassModel, 0, len(req.ClassIDs))
	for _, raw := range req.ClassIDs {
		classID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid: "+raw)
		}
		rows = append(rows, model.TeacherClassModel{UserID: userID, ClassID: classID})
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&model.TeacherClassModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	}); err != nil {
		log.Printf("[ERROR] batch assign teacher: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan penugasan guru")
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "teacher_classes_updated", "user", userID.String(), map[string]any{
		"class_count": len(rows),
	})

	return helper.JsonUpdated(c, "Penugasan guru berhasil disimpan", fiber.Map{
		"user_id":   userID,
		"class_ids": req.ClassIDs,
	})
}
