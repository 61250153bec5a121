package controller

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"powerschool_backend/internals/databases/testdb"
	"powerschool_backend/internals/features/school/grades/model"
	studentModel "powerschool_backend/internals/features/school/students/model"
	subjectModel "powerschool_backend/internals/features/school/subjects/model"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := testdb.Open()
	require.NoError(t, err)

	ctrl := NewGradeController(db)
	app := fiber.New()
	app.Get("/api/grades", ctrl.List)
	app.Post("/api/grades", ctrl.Save)
	app.Get("/api/grades/export", ctrl.ExportCSV)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func seedSubjectAndStudent(t *testing.T, db *gorm.DB) (subjectModel.SubjectModel, studentModel.StudentModel) {
	t.Helper()
	subject := subjectModel.SubjectModel{
		ID:      uuid.New(),
		ClassID: uuid.New(),
		Name:    "Matematika",
	}
	require.NoError(t, db.Create(&subject).Error)

	student := studentModel.StudentModel{
		ID:       uuid.New(),
		FullName: "Aisha Rahman",
		ClassID:  subject.ClassID,
	}
	require.NoError(t, db.Create(&student).Error)
	return subject, student
}

func TestSaveGradesComputesLetterAndUpserts(t *testing.T) {
	app, db := setupApp(t)
	subject, student := seedSubjectAndStudent(t, db)

	body := `{
		"subject_id": "` + subject.ID.String() + `",
		"term": "2026-ganjil",
		"max_score": 100,
		"entries": [{"student_id": "` + student.ID.String() + `", "score": 92}]
	}`
	resp := doJSON(t, app, "POST", "/api/grades", body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var grade model.GradeModel
	require.NoError(t, db.Where("student_id = ?", student.ID).First(&grade).Error)
	assert.Equal(t, "A", grade.Letter)

	// Nilai diganti untuk term yang sama: update, bukan duplikat
	body = strings.ReplaceAll(body, `"score": 92`, `"score": 78`)
	resp = doJSON(t, app, "POST", "/api/grades", body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var n int64
	require.NoError(t, db.Model(&model.GradeModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	require.NoError(t, db.Where("student_id = ?", student.ID).First(&grade).Error)
	assert.Equal(t, "C", grade.Letter)
	assert.Equal(t, float64(78), grade.Score)
}

func TestSaveGradesRejectsScoreAboveMax(t *testing.T) {
	app, db := setupApp(t)
	subject, student := seedSubjectAndStudent(t, db)

	body := `{
		"subject_id": "` + subject.ID.String() + `",
		"term": "2026-ganjil",
		"max_score": 50,
		"entries": [{"student_id": "` + student.ID.String() + `", "score": 60}]
	}`
	resp := doJSON(t, app, "POST", "/api/grades", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExportCSVReplacesCommasInComments(t *testing.T) {
	app, db := setupApp(t)
	subject, student := seedSubjectAndStudent(t, db)

	comment := "rajin, tapi sering telat"
	require.NoError(t, db.Create(&model.GradeModel{
		ID:        uuid.New(),
		StudentID: student.ID,
		SubjectID: subject.ID,
		Term:      "2026-ganjil",
		Score:     88,
		MaxScore:  100,
		Letter:    "B",
		Comment:   &comment,
	}).Error)

	resp := doJSON(t, app, "GET", "/api/grades/export?subject_id="+subject.ID.String(), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := string(raw)
	assert.Contains(t, out, "rajin; tapi sering telat")
	assert.Contains(t, out, "Aisha Rahman")
	assert.Contains(t, out, "Matematika")
	assert.NotContains(t, out, "rajin, tapi")
}
