package controller

import (
	"encoding/csv"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	activityService "powerschool_backend/internals/features/activity/service"
	"powerschool_backend/internals/features/school/grades/model"
	studentModel "powerschool_backend/internals/features/school/students/model"
	subjectModel "powerschool_backend/internals/features/school/subjects/model"
	helper "powerschool_backend/internals/helpers"
)

type GradeController struct {
	DB *gorm.DB
}

func NewGradeController(db *gorm.DB) *GradeController {
	return &GradeController{DB: db}
}

type gradeEntry struct {
	StudentID string  `json:"student_id" validate:"required,uuid"`
	Score     float64 `json:"score"      validate:"min=0"`
	Comment   *string `json:"comment"`
}

type saveGradesRequest struct {
	SubjectID string       `json:"subject_id" validate:"required,uuid"`
	Term      string       `json:"term"       validate:"required,max=30"`
	MaxScore  float64      `json:"max_score"  validate:"min=1"`
	Entries   []gradeEntry `json:"entries"    validate:"required,min=1,dive"`
}

// =======================
// 📋 GET /api/grades
// =======================
func (ctrl *GradeController) List(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.GradeModel{})
	if subjectID := c.Query("subject_id"); subjectID != "" {
		id, err := uuid.Parse(subjectID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID mapel tidak valid")
		}
		q = q.Where("subject_id = ?", id)
	}
	if studentID := c.Query("student_id"); studentID != "" {
		id, err := uuid.Parse(studentID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
		}
		q = q.Where("student_id = ?", id)
	}
	if term := c.Query("term"); term != "" {
		q = q.Where("term = ?", term)
	}

	var grades []model.GradeModel
	if err := q.Find(&grades).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data nilai")
	}
	return helper.JsonOK(c, "OK", grades)
}

// =======================
// 💾 POST /api/grades
// Upsert per (student, subject, term); huruf dihitung server
// =======================
func (ctrl *GradeController) Save(c *fiber.Ctx) error {
	var req saveGradesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if req.MaxScore == 0 {
		req.MaxScore = 100
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	subjectID, err := uuid.Parse(req.SubjectID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID mapel tidak valid")
	}

	rows := make([]model.GradeModel, 0, len(req.Entries))
	for _, e := range req.Entries {
		studentID, err := uuid.Parse(e.StudentID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid: "+e.StudentID)
		}
		if e.Score > req.MaxScore {
			return helper.JsonError(c, fiber.StatusBadRequest, "Nilai melebihi nilai maksimum")
		}
		rows = append(rows, model.GradeModel{
			StudentID: studentID,
			SubjectID: subjectID,
			Term:      req.Term,
			Score:     e.Score,
			MaxScore:  req.MaxScore,
			Letter:    helper.LetterFromScore(e.Score, req.MaxScore),
			Comment:   e.Comment,
		})
	}

	if err := ctrl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "subject_id"}, {Name: "term"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "max_score", "letter", "comment", "updated_at"}),
	}).Create(&rows).Error; err != nil {
		log.Printf("[ERROR] save grades: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan nilai")
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "grades_saved", "grade", subjectID.String(), map[string]any{
		"term":        req.Term,
		"entry_count": len(rows),
	})

	return helper.JsonOK(c, "Nilai berhasil disimpan", fiber.Map{
		"subject_id": subjectID,
		"term":       req.Term,
		"saved":      len(rows),
	})
}

// ==================================
// 📤 GET /api/grades/export?subject_id=&term=
// CSV; koma dalam komentar diganti ";"
// ==================================
func (ctrl *GradeController) ExportCSV(c *fiber.Ctx) error {
	subjectID, err := uuid.Parse(c.Query("subject_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID mapel tidak valid")
	}
	term := c.Query("term")

	var subject subjectModel.SubjectModel
	if err := ctrl.DB.First(&subject, "id = ?", subjectID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Mapel tidak ditemukan")
	}

	q := ctrl.DB.Where("subject_id = ?", subjectID)
	if term != "" {
		q = q.Where("term = ?", term)
	}
	var grades []model.GradeModel
	if err := q.Find(&grades).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data nilai")
	}

	studentIDs := make([]uuid.UUID, 0, len(grades))
	for _, g := range grades {
		studentIDs = append(studentIDs, g.StudentID)
	}
	nameByID := map[uuid.UUID]string{}
	if len(studentIDs) > 0 {
		var students []studentModel.StudentModel
		if err := ctrl.DB.Where("id IN ?", studentIDs).Find(&students).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data siswa")
		}
		for _, s := range students {
			nameByID[s.ID] = s.FullName
		}
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{"student", "subject", "term", "score", "max_score", "letter", "comment"})
	for _, g := range grades {
		comment := ""
		if g.Comment != nil {
			comment = strings.ReplaceAll(*g.Comment, ",", ";")
		}
		_ = w.Write([]string{
			nameByID[g.StudentID],
			subject.Name,
			g.Term,
			fmt.Sprintf("%g", g.Score),
			fmt.Sprintf("%g", g.MaxScore),
			g.Letter,
			comment,
		})
	}
	w.Flush()

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="grades.csv"`)
	return c.SendString(sb.String())
}
