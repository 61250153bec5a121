package controller

import (
	"encoding/json"
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
	feeModel "powerschool_backend/internals/features/finance/fees/model"
	classModel "powerschool_backend/internals/features/school/classes/model"
	studentModel "powerschool_backend/internals/features/school/students/model"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := testdb.Open()
	require.NoError(t, err)

	ctrl := NewImportController(db)
	app := fiber.New()
	app.Post("/api/admin/import/classes", ctrl.ImportClasses)
	app.Post("/api/admin/import/students", ctrl.ImportStudents)
	app.Get("/api/admin/export/students", ctrl.ExportStudents)
	app.Get("/api/admin/export/attendance", ctrl.ExportAttendance)
	app.Get("/api/admin/export/invoices", ctrl.ExportInvoices)
	return app, db
}

func postCSV(t *testing.T, app *fiber.App, path, csvText string) importResult {
	t.Helper()
	body, err := json.Marshal(fiber.Map{"csv": csvText})
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data importResult `json:"data"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return envelope.Data
}

type importResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

func TestImportClassesDefaultsAndUpsert(t *testing.T) {
	app, db := setupApp(t)

	res := postCSV(t, app, "/api/admin/import/classes",
		"name,grade,teacher_name\nKelas 1A,1,Bu Sari\nKelas 2B,,\n")
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 0, res.Skipped)

	var kelas2 classModel.ClassModel
	require.NoError(t, db.First(&kelas2, "name = ?", "Kelas 2B").Error)
	assert.Equal(t, "1", kelas2.Grade)
	assert.Equal(t, "TBD", kelas2.TeacherName)

	// Nama sama → baris diperbarui, bukan digandakan
	res = postCSV(t, app, "/api/admin/import/classes",
		"name,grade,teacher_name\nKelas 2B,2,Pak Budi\n")
	assert.Equal(t, 1, res.Imported)

	var count int64
	require.NoError(t, db.Model(&classModel.ClassModel{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
	require.NoError(t, db.First(&kelas2, "name = ?", "Kelas 2B").Error)
	assert.Equal(t, "2", kelas2.Grade)
	assert.Equal(t, "Pak Budi", kelas2.TeacherName)
}

func TestImportStudentsUpsertByEmail(t *testing.T) {
	app, db := setupApp(t)

	class := classModel.ClassModel{ID: uuid.New(), Name: "Kelas 1A", Grade: "1", TeacherName: "Bu Sari"}
	require.NoError(t, db.Create(&class).Error)

	csvText := "full_name,email,guardian_name,guardian_email,class_id\n" +
		"Aisha Rahman,aisha@example.com,Ibu Rahman,ibu@example.com," + class.ID.String() + "\n" +
		"Budi Santoso,,,," + class.ID.String() + "\n" +
		"Tanpa Kelas,x@example.com,,,\n" +
		"Kelas Salah,y@example.com,,," + uuid.NewString() + "\n"
	res := postCSV(t, app, "/api/admin/import/students", csvText)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 2, res.Skipped)

	var budi studentModel.StudentModel
	require.NoError(t, db.First(&budi, "full_name = ?", "Budi Santoso").Error)
	assert.Nil(t, budi.Email)
	assert.Nil(t, budi.GuardianName)

	// Email sama → update, bukan siswa baru
	res = postCSV(t, app, "/api/admin/import/students",
		"full_name,email,guardian_name,guardian_email,class_id\n"+
			"Aisha R.,aisha@example.com,Bapak Rahman,," + class.ID.String() + "\n")
	assert.Equal(t, 1, res.Imported)

	var count int64
	require.NoError(t, db.Model(&studentModel.StudentModel{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var aisha studentModel.StudentModel
	require.NoError(t, db.First(&aisha, "email = ?", "aisha@example.com").Error)
	assert.Equal(t, "Aisha R.", aisha.FullName)
	require.NotNil(t, aisha.GuardianName)
	assert.Equal(t, "Bapak Rahman", *aisha.GuardianName)
	assert.Nil(t, aisha.GuardianEmail)
}

func TestExportInvoicesCSV(t *testing.T) {
	app, db := setupApp(t)

	class := classModel.ClassModel{ID: uuid.New(), Name: "Kelas 1A", Grade: "1", TeacherName: "Bu Sari"}
	require.NoError(t, db.Create(&class).Error)
	student := studentModel.StudentModel{ID: uuid.New(), FullName: "Aisha Rahman", ClassID: class.ID}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&feeModel.FeeInvoiceModel{
		ID:          uuid.New(),
		StudentID:   student.ID,
		Title:       "SPP September",
		AmountCents: 180000,
		DueDate:     "2026-09-10",
		Status:      "pending",
	}).Error)

	req := httptest.NewRequest(fiber.MethodGet, "/api/admin/export/invoices", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get(fiber.HeaderContentType))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)
	assert.Contains(t, body, "student_name,title,amount_cents,due_date,status")
	assert.Contains(t, body, "Aisha Rahman,SPP September,180000,2026-09-10,pending")
}
