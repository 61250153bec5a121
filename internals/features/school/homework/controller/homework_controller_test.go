package controller

import (
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
	"powerschool_backend/internals/features/school/homework/model"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := testdb.Open()
	require.NoError(t, err)

	ctrl := NewHomeworkController(db)
	app := fiber.New()
	app.Post("/api/homework/submissions", ctrl.SaveSubmission)
	return app, db
}

func postSubmission(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/api/homework/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSaveSubmissionStatusDomain(t *testing.T) {
	app, db := setupApp(t)

	homework := model.HomeworkModel{
		ID:      uuid.New(),
		ClassID: uuid.New(),
		Title:   "PR Matematika Bab 3",
		DueDate: "2026-09-10",
	}
	require.NoError(t, db.Create(&homework).Error)
	studentID := uuid.New()

	for _, status := range []string{"pending", "submitted", "graded"} {
		resp := postSubmission(t, app,
			`{"homework_id": "`+homework.ID.String()+`", "student_id": "`+studentID.String()+`", "status": "`+status+`"}`)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, status)
	}

	// Status di luar domain ditolak validasi
	resp := postSubmission(t, app,
		`{"homework_id": "`+homework.ID.String()+`", "student_id": "`+studentID.String()+`", "status": "late"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	// Upsert per (homework, student): tiga kali simpan = satu baris
	var n int64
	require.NoError(t, db.Model(&model.HomeworkSubmissionModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	var saved model.HomeworkSubmissionModel
	require.NoError(t, db.First(&saved, "homework_id = ?", homework.ID).Error)
	assert.Equal(t, "graded", saved.Status)
}
