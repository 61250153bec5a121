package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	activityService "powerschool_backend/internals/features/activity/service"
	"powerschool_backend/internals/features/school/homework/model"
	helper "powerschool_backend/internals/helpers"
	"powerschool_backend/internals/helpers/storage"
)

type HomeworkController struct {
	DB *gorm.DB
}

func NewHomeworkController(db *gorm.DB) *HomeworkController {
	return &HomeworkController{DB: db}
}

type createHomeworkRequest struct {
	ClassID     string  `json:"class_id"    validate:"required,uuid"`
	SubjectID   *string `json:"subject_id"  validate:"omitempty,uuid"`
	Title       string  `json:"title"       validate:"required,min=2,max=200"`
	Description *string `json:"description"`
	DueDate     string  `json:"due_date"    validate:"required,datetime=2006-01-02"`
}

type submissionRequest struct {
	HomeworkID string   `json:"homework_id" validate:"required,uuid"`
	StudentID  string   `json:"student_id"  validate:"required,uuid"`
	Status     string   `json:"status"      validate:"required,oneof=pending submitted graded"`
	Score      *float64 `json:"score"       validate:"omitempty,min=0"`
	Note       *string  `json:"note"`
}

// =======================
// 📋 GET /api/homework
// =======================
func (ctrl *HomeworkController) List(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.HomeworkModel{})
	if classID := c.Query("class_id"); classID != "" {
		id, err := uuid.Parse(classID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
		}
		q = q.Where("class_id = ?", id)
	}

	var homework []model.HomeworkModel
	if err := q.Order("due_date DESC").Find(&homework).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data tugas")
	}
	return helper.JsonOK(c, "OK", homework)
}

// ==================================================
// ➕ POST /api/homework (multipart atau JSON)
// Lampiran opsional di-upload dulu, lalu baris disimpan.
// Upload sukses + insert gagal meninggalkan file yatim
// di bucket; tidak ada kompensasi.
// ==================================================
func (ctrl *HomeworkController) Create(c *fiber.Ctx) error {
	var req createHomeworkRequest
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

	actorID, _ := helper.GetUserUUID(c)
	hw := model.HomeworkModel{
		ClassID:     classID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CreatedBy:   &actorID,
	}
	if req.SubjectID != nil {
		id, err := uuid.Parse(*req.SubjectID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID mapel tidak valid")
		}
		hw.SubjectID = &id
	}

	if file, err := c.FormFile("attachment"); err == nil && file != nil {
		contentType := file.Header.Get("Content-Type")
		var url string
		var upErr error
		if strings.HasPrefix(contentType, "image/") {
			url, upErr = storage.UploadImageAsWebP("homework", file)
		} else {
			url, upErr = storage.UploadFile("homework", file)
		}
		if upErr != nil {
			log.Printf("[ERROR] upload homework attachment: %v", upErr)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengunggah lampiran")
		}
		hw.AttachmentURL = &url
	}

	if err := ctrl.DB.Create(&hw).Error; err != nil {
		log.Printf("[ERROR] create homework: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat tugas")
	}

	activityService.LogAction(ctrl.DB, hw.CreatedBy, "homework_created", "homework", hw.ID.String(), map[string]any{
		"title":    hw.Title,
		"class_id": hw.ClassID.String(),
	})

	return helper.JsonCreated(c, "Tugas berhasil dibuat", hw)
}

// =======================
// 🗑️ DELETE /api/homework/:id
// =======================
func (ctrl *HomeworkController) Delete(c *fiber.Ctx) error {
	homeworkID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tugas tidak valid")
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("homework_id = ?", homeworkID).
			Delete(&model.HomeworkSubmissionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.HomeworkModel{}, "id = ?", homeworkID).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus tugas")
	}
	return helper.JsonDeleted(c, "Tugas berhasil dihapus", fiber.Map{"id": homeworkID})
}

// ==================================================
// 📋 GET /api/homework/:id/submissions
// ==================================================
func (ctrl *HomeworkController) ListSubmissions(c *fiber.Ctx) error {
	homeworkID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tugas tidak valid")
	}

	var submissions []model.HomeworkSubmissionModel
	if err := ctrl.DB.Where("homework_id = ?", homeworkID).
		Find(&submissions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data pengumpulan")
	}
	return helper.JsonOK(c, "OK", submissions)
}

// ==================================================
// 💾 POST /api/homework/submissions
// Upsert per (homework, student)
// ==================================================
func (ctrl *HomeworkController) SaveSubmission(c *fiber.Ctx) error {
	var req submissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	homeworkID, err := uuid.Parse(req.HomeworkID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tugas tidak valid")
	}
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	submission := model.HomeworkSubmissionModel{
		HomeworkID: homeworkID,
		StudentID:  studentID,
		Status:     req.Status,
		Score:      req.Score,
		Note:       req.Note,
	}
	if err := ctrl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "homework_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "score", "note", "updated_at"}),
	}).Create(&submission).Error; err != nil {
		log.Printf("[ERROR] save homework submission: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan pengumpulan")
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "homework_submission_saved", "homework", homeworkID.String(), map[string]any{
		"student_id": studentID.String(),
		"status":     req.Status,
	})

	return helper.JsonOK(c, "Pengumpulan berhasil disimpan", submission)
}
