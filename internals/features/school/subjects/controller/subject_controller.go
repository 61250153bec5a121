package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activityService "powerschool_backend/internals/features/activity/service"
	"powerschool_backend/internals/features/school/subjects/model"
	helper "powerschool_backend/internals/helpers"
)

type SubjectController struct {
	DB *gorm.DB
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{DB: db}
}

type subjectRequest struct {
	ClassID string `json:"class_id" validate:"required,uuid"`
	Name    string `json:"name"     validate:"required,min=2,max=120"`
}

// =======================
// 📋 GET /api/subjects
// =======================
func (ctrl *SubjectController) List(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.SubjectModel{})
	if classID := c.Query("class_id"); classID != "" {
		id, err := uuid.Parse(classID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
		}
		q = q.Where("class_id = ?", id)
	}

	var subjects []model.SubjectModel
	if err := q.Order("name ASC").Find(&subjects).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data mapel")
	}
	return helper.JsonOK(c, "OK", subjects)
}

// =======================
// ➕ POST /api/subjects
// =======================
func (ctrl *SubjectController) Create(c *fiber.Ctx) error {
	var req subjectRequest
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

	subject := model.SubjectModel{ClassID: classID, Name: req.Name}
	if err := ctrl.DB.Create(&subject).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat mapel")
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "subject_created", "subject", subject.ID.String(), map[string]any{
		"name":     subject.Name,
		"class_id": subject.ClassID.String(),
	})

	return helper.JsonCreated(c, "Mapel berhasil dibuat", subject)
}

// =======================
// 🗑️ DELETE /api/subjects/:id
// =======================
func (ctrl *SubjectController) Delete(c *fiber.Ctx) error {
	subjectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID mapel tidak valid")
	}

	if err := ctrl.DB.Delete(&model.SubjectModel{}, "id = ?", subjectID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus mapel")
	}
	return helper.JsonDeleted(c, "Mapel berhasil dihapus", fiber.Map{"id": subjectID})
}
