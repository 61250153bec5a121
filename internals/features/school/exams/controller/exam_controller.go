package controller

import (
	"encoding/csv"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	activityService "powerschool_backend/internals/features/activity/service"
	"powerschool_backend/internals/features/school/exams/model"
	studentModel "powerschool_backend/internals/features/school/students/model"
	helper "powerschool_backend/internals/helpers"
)

type ExamController struct {
	DB *gorm.DB
}

func NewExamController(db *gorm.DB) *ExamController {
	return &ExamController{DB: db}
}

type createExamRequest struct {
	ClassID   string  `json:"class_id"   validate:"required,uuid"`
	SubjectID *string `json:"subject_id" validate:"omitempty,uuid"`
	Name      string  `json:"name"       validate:"required,min=2,max=150"`
	ExamType  string  `json:"exam_type"  validate:"omitempty,max=30"`
	Term      string  `json:"term"       validate:"omitempty,max=30"`
	ExamDate  string  `json:"exam_date"  validate:"required,datetime=2006-01-02"`
	MaxScore  float64 `json:"max_score"  validate:"min=0"`
}

type examScoreEntry struct {
	StudentID string  `json:"student_id" validate:"required,uuid"`
	Score     float64 `json:"score"      validate:"min=0"`
}

type saveExamScoresRequest struct {
	ExamID  string           `json:"exam_id" validate:"required,uuid"`
	Entries []examScoreEntry `json:"entries" validate:"required,min=1,dive"`
}

// =======================
// 📋 GET /api/exams
// =======================
func (ctrl *ExamController) List(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.ExamModel{})
	if classID := c.Query("class_id"); classID != "" {
		id, err := uuid.Parse(classID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
		}
		q = q.Where("class_id = ?", id)
	}

	var exams []model.ExamModel
	if err := q.Order("exam_date DESC").Find(&exams).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data ujian")
	}
	return helper.JsonOK(c, "OK", exams)
}

// =======================
// ➕ POST /api/exams
// =======================
func (ctrl *ExamController) Create(c *fiber.Ctx) error {
	var req createExamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if req.MaxScore == 0 {
		req.MaxScore = 100
	}
	// Default sama dengan form lama
	if req.ExamType == "" {
		req.ExamType = "unit"
	}
	if req.Term == "" {
		req.Term = "Term 1"
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	exam := model.ExamModel{
		ClassID:  classID,
		Name:     req.Name,
		ExamType: req.ExamType,
		Term:     req.Term,
		ExamDate: req.ExamDate,
		MaxScore: req.MaxScore,
	}
	if req.SubjectID != nil {
		id, err := uuid.Parse(*req.SubjectID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID mapel tidak valid")
		}
		exam.SubjectID = &id
	}

	if err := ctrl.DB.Create(&exam).Error; err != nil {
		log.Printf("[ERROR] create exam: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat ujian")
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "exam_created", "exam", exam.ID.String(), map[string]any{
		"name":     exam.Name,
		"class_id": exam.ClassID.String(),
	})

	return helper.JsonCreated(c, "Ujian berhasil dibuat", exam)
}

// =======================
// 🗑️ DELETE /api/exams/:id
// =======================
func (ctrl *ExamController) Delete(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID ujian tidak valid")
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", examID).
			Delete(&model.ExamScoreModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ExamModel{}, "id = ?", examID).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus ujian")
	}
	return helper.JsonDeleted(c, "Ujian berhasil dihapus", fiber.Map{"id": examID})
}

// =======================
// 💾 POST /api/exams/scores
// Bulk upsert per (exam, student); huruf dihitung server
// =======================
func (ctrl *ExamController) SaveScores(c *fiber.Ctx) error {
	var req saveExamScoresRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	examID, err := uuid.Parse(req.ExamID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID ujian tidak valid")
	}

	var exam model.ExamModel
	if err := ctrl.DB.First(&exam, "id = ?", examID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Ujian tidak ditemukan")
	}

	rows := make([]model.ExamScoreModel, 0, len(req.Entries))
	for _, e := range req.Entries {
		studentID, err := uuid.Parse(e.StudentID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid: "+e.StudentID)
		}
		if e.Score > exam.MaxScore {
			return helper.JsonError(c, fiber.StatusBadRequest, "Nilai melebihi nilai maksimum ujian")
		}
		rows = append(rows, model.ExamScoreModel{
			ExamID:    examID,
			StudentID: studentID,
			Score:     e.Score,
			Letter:    helper.LetterFromScore(e.Score, exam.MaxScore),
		})
	}

	if err := ctrl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "exam_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "letter", "updated_at"}),
	}).Create(&rows).Error; err != nil {
		log.Printf("[ERROR] save exam scores: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan nilai ujian")
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "exam_scores_saved", "exam", examID.String(), map[string]any{
		"entry_count": len(rows),
	})

	return helper.JsonOK(c, "Nilai ujian berhasil disimpan", fiber.Map{
		"exam_id": examID,
		"saved":   len(rows),
	})
}

// ==========================================
// 🏆 GET /api/exams/:id/rank
// Ranking turun berdasarkan skor; skor sama = rank sama
// ==========================================
func (ctrl *ExamController) Rank(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID ujian tidak valid")
	}

	var scores []model.ExamScoreModel
	if err := ctrl.DB.Where("exam_id = ?", examID).Find(&scores).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil nilai ujian")
	}

	sort.Slice(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })

	nameByID, err := ctrl.studentNames(scores)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data siswa")
	}

	type rankRow struct {
		Rank      int     `json:"rank"`
		StudentID string  `json:"student_id"`
		FullName  string  `json:"full_name"`
		Score     float64 `json:"score"`
		Letter    string  `json:"letter"`
	}
	out := make([]rankRow, 0, len(scores))
	for i, s := range scores {
		rank := i + 1
		if i > 0 && s.Score == scores[i-1].Score {
			rank = out[i-1].Rank
		}
		out = append(out, rankRow{
			Rank:      rank,
			StudentID: s.StudentID.String(),
			FullName:  nameByID[s.StudentID],
			Score:     s.Score,
			Letter:    s.Letter,
		})
	}
	return helper.JsonOK(c, "OK", out)
}

// ==========================================
// 📤 GET /api/exams/:id/export — CSV
// ==========================================
func (ctrl *ExamController) ExportCSV(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID ujian tidak valid")
	}

	var exam model.ExamModel
	if err := ctrl.DB.First(&exam, "id = ?", examID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Ujian tidak ditemukan")
	}

	var scores []model.ExamScoreModel
	if err := ctrl.DB.Where("exam_id = ?", examID).Find(&scores).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil nilai ujian")
	}

	nameByID, err := ctrl.studentNames(scores)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data siswa")
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{"student", "exam", "date", "score", "max_score", "letter"})
	for _, s := range scores {
		_ = w.Write([]string{
			nameByID[s.StudentID],
			exam.Name,
			exam.ExamDate,
			fmt.Sprintf("%g", s.Score),
			fmt.Sprintf("%g", exam.MaxScore),
			s.Letter,
		})
	}
	w.Flush()

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="exam_scores.csv"`)
	return c.SendString(sb.String())
}

func (ctrl *ExamController) studentNames(scores []model.ExamScoreModel) (map[uuid.UUID]string, error) {
	nameByID := map[uuid.UUID]string{}
	if len(scores) == 0 {
		return nameByID, nil
	}
	ids := make([]uuid.UUID, 0, len(scores))
	for _, s := range scores {
		ids = append(ids, s.StudentID)
	}
	var students []studentModel.StudentModel
	if err := ctrl.DB.Where("id IN ?", ids).Find(&students).Error; err != nil {
		return nil, err
	}
	for _, s := range students {
		nameByID[s.ID] = s.FullName
	}
	return nameByID, nil
}
