package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activityService "powerschool_backend/internals/features/activity/service"
	"powerschool_backend/internals/features/school/timetable/model"
	"powerschool_backend/internals/features/school/timetable/service"
	helper "powerschool_backend/internals/helpers"
)

type TimetableController struct {
	DB *gorm.DB
}

func NewTimetableController(db *gorm.DB) *TimetableController {
	return &TimetableController{DB: db}
}

type timetableRequest struct {
	ClassID   string  `json:"class_id"   validate:"required,uuid"`
	SubjectID *string `json:"subject_id" validate:"omitempty,uuid"`
	TeacherID *string `json:"teacher_id" validate:"omitempty,uuid"`
	DayOfWeek int     `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string  `json:"end_time"   validate:"required,datetime=15:04"`
	Room      *string `json:"room"       validate:"omitempty,max=60"`
}

// =======================
// 📋 GET /api/timetable
// =======================
func (ctrl *TimetableController) List(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.TimetableEntryModel{})
	if classID := c.Query("class_id"); classID != "" {
		id, err := uuid.Parse(classID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
		}
		q = q.Where("class_id = ?", id)
	}
	if teacherID := c.Query("teacher_id"); teacherID != "" {
		id, err := uuid.Parse(teacherID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID guru tidak valid")
		}
		q = q.Where("teacher_id = ?", id)
	}

	var entries []model.TimetableEntryModel
	if err := q.Order("day_of_week ASC, start_time ASC").Find(&entries).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil jadwal")
	}
	return helper.JsonOK(c, "OK", entries)
}

// =======================
// ➕ POST /api/timetable
// 409 jika bentrok, entri tidak disimpan
// =======================
func (ctrl *TimetableController) Create(c *fiber.Ctx) error {
	var req timetableRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	if req.EndTime <= req.StartTime {
		return helper.JsonError(c, fiber.StatusBadRequest, "Jam selesai harus setelah jam mulai")
	}

	entry, err := ctrl.buildEntry(req)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// Cek bentrok terhadap entri tersimpan di hari yang sama.
	// Dua create paralel bisa lolos dua-duanya; bentrok yang tersisa
	// terlihat saat listing dan bisa dihapus manual.
	var existing []model.TimetableEntryModel
	if err := ctrl.DB.
		Where("day_of_week = ?", entry.DayOfWeek).
		Find(&existing).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa jadwal")
	}
	if clash := service.FindClash(entry, existing); clash != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Jadwal bentrok dengan slot "+clash.StartTime+"-"+clash.EndTime)
	}

	if err := ctrl.DB.Create(&entry).Error; err != nil {
		log.Printf("[ERROR] create timetable entry: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan jadwal")
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "timetable_created", "timetable", entry.ID.String(), map[string]any{
		"class_id":    entry.ClassID.String(),
		"day_of_week": entry.DayOfWeek,
		"start_time":  entry.StartTime,
	})

	return helper.JsonCreated(c, "Jadwal berhasil dibuat", entry)
}

// =======================
// 🗑️ DELETE /api/timetable/:id
// =======================
func (ctrl *TimetableController) Delete(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID jadwal tidak valid")
	}
	if err := ctrl.DB.Delete(&model.TimetableEntryModel{}, "id = ?", entryID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus jadwal")
	}
	return helper.JsonDeleted(c, "Jadwal berhasil dihapus", fiber.Map{"id": entryID})
}

func (ctrl *TimetableController) buildEntry(req timetableRequest) (model.TimetableEntryModel, error) {
	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return model.TimetableEntryModel{}, fiber.NewError(fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	entry := model.TimetableEntryModel{
		ClassID:   classID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Room:      req.Room,
	}
	if req.SubjectID != nil {
		id, err := uuid.Parse(*req.SubjectID)
		if err != nil {
			return entry, fiber.NewError(fiber.StatusBadRequest, "ID mapel tidak valid")
		}
		entry.SubjectID = &id
	}
	if req.TeacherID != nil {
		id, err := uuid.Parse(*req.TeacherID)
		if err != nil {
			return entry, fiber.NewError(fiber.StatusBadRequest, "ID guru tidak valid")
		}
		entry.TeacherID = &id
	}
	return entry, nil
}
