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
	"powerschool_backend/internals/features/school/attendance/model"
	classModel "powerschool_backend/internals/features/school/classes/model"
	studentModel "powerschool_backend/internals/features/school/students/model"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := testdb.Open()
	require.NoError(t, err)

	ctrl := NewAttendanceController(db)
	app := fiber.New()
	app.Get("/api/attendance/roster", ctrl.Roster)
	app.Post("/api/attendance", ctrl.Save)
	app.Post("/api/attendance/lock", ctrl.ToggleLock)
	app.Get("/api/admin/locks", ctrl.ListLocks)
	app.Delete("/api/admin/locks", ctrl.ForceUnlock)
	return app, db
}

func seedClass(t *testing.T, db *gorm.DB, studentCount int) (uuid.UUID, []uuid.UUID) {
	t.Helper()
	class := classModel.ClassModel{
		ID:          uuid.New(),
		Name:        "Kelas 1A",
		Grade:       "1",
		TeacherName: "Bu Sari",
	}
	require.NoError(t, db.Create(&class).Error)

	var studentIDs []uuid.UUID
	for i := 0; i < studentCount; i++ {
		student := studentModel.StudentModel{
			ID:       uuid.New(),
			FullName: "Siswa " + string(rune('A'+i)),
			ClassID:  class.ID,
		}
		require.NoError(t, db.Create(&student).Error)
		studentIDs = append(studentIDs, student.ID)
	}
	return class.ID, studentIDs
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

func TestSaveAttendanceAndUpsert(t *testing.T) {
	app, db := setupApp(t)
	classID, studentIDs := seedClass(t, db, 2)

	body := `{
		"class_id": "` + classID.String() + `",
		"attendance_date": "2026-09-01",
		"entries": [
			{"student_id": "` + studentIDs[0].String() + `", "status": "absent", "note": "Guardian notified"},
			{"student_id": "` + studentIDs[1].String() + `", "status": "present"}
		]
	}`
	resp := doJSON(t, app, "POST", "/api/attendance", body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var records []model.AttendanceRecordModel
	require.NoError(t, db.Where("class_id = ?", classID).Find(&records).Error)
	require.Len(t, records, 2)

	// Simpan ulang dengan status berubah: update, bukan baris baru
	body = `{
		"class_id": "` + classID.String() + `",
		"attendance_date": "2026-09-01",
		"entries": [
			{"student_id": "` + studentIDs[0].String() + `", "status": "tardy"}
		]
	}`
	resp = doJSON(t, app, "POST", "/api/attendance", body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	records = nil
	require.NoError(t, db.Where("class_id = ?", classID).Find(&records).Error)
	require.Len(t, records, 2)
	var updated model.AttendanceRecordModel
	require.NoError(t, db.Where("student_id = ? AND attendance_date = ?",
		studentIDs[0], "2026-09-01").First(&updated).Error)
	assert.Equal(t, "tardy", updated.Status)
}

func TestSaveAttendanceRejectedWhenLocked(t *testing.T) {
	app, db := setupApp(t)
	classID, studentIDs := seedClass(t, db, 1)

	lockBody := `{"class_id": "` + classID.String() + `", "attendance_date": "2026-09-01", "locked": true}`
	resp := doJSON(t, app, "POST", "/api/attendance/lock", lockBody)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	saveBody := `{
		"class_id": "` + classID.String() + `",
		"attendance_date": "2026-09-01",
		"entries": [{"student_id": "` + studentIDs[0].String() + `", "status": "present"}]
	}`
	resp = doJSON(t, app, "POST", "/api/attendance", saveBody)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Tanggal lain tidak ikut terkunci
	otherDay := strings.ReplaceAll(saveBody, "2026-09-01", "2026-09-02")
	resp = doJSON(t, app, "POST", "/api/attendance", otherDay)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUnlockReopensSaving(t *testing.T) {
	app, db := setupApp(t)
	classID, studentIDs := seedClass(t, db, 1)

	lock := `{"class_id": "` + classID.String() + `", "attendance_date": "2026-09-01", "locked": true}`
	doJSON(t, app, "POST", "/api/attendance/lock", lock)

	unlock := strings.ReplaceAll(lock, "true", "false")
	resp := doJSON(t, app, "POST", "/api/attendance/lock", unlock)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Toggle adalah upsert: tetap satu baris kunci
	var n int64
	require.NoError(t, db.Model(&model.AttendanceLockModel{}).
		Where("class_id = ?", classID).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	saveBody := `{
		"class_id": "` + classID.String() + `",
		"attendance_date": "2026-09-01",
		"entries": [{"student_id": "` + studentIDs[0].String() + `", "status": "present"}]
	}`
	resp = doJSON(t, app, "POST", "/api/attendance", saveBody)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestForceUnlockDeletesLockRow(t *testing.T) {
	app, db := setupApp(t)
	classID, _ := seedClass(t, db, 1)

	doJSON(t, app, "POST", "/api/attendance/lock",
		`{"class_id": "`+classID.String()+`", "attendance_date": "2026-09-01", "locked": true}`)

	var lock model.AttendanceLockModel
	require.NoError(t, db.Where("class_id = ?", classID).First(&lock).Error)

	resp := doJSON(t, app, "DELETE",
		"/api/admin/locks?class_id="+classID.String()+"&date=2026-09-01", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var n int64
	require.NoError(t, db.Model(&model.AttendanceLockModel{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestRosterDefaultsToPresent(t *testing.T) {
	app, db := setupApp(t)
	classID, studentIDs := seedClass(t, db, 2)

	note := "Guardian notified"
	require.NoError(t, db.Create(&model.AttendanceRecordModel{
		ID:             uuid.New(),
		StudentID:      studentIDs[0],
		ClassID:        classID,
		AttendanceDate: "2026-09-01",
		Status:         "absent",
		Note:           &note,
	}).Error)

	resp := doJSON(t, app, "GET",
		"/api/attendance/roster?class_id="+classID.String()+"&date=2026-09-01", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope struct {
		Data struct {
			Locked bool `json:"locked"`
			Rows   []struct {
				StudentID string `json:"student_id"`
				Status    string `json:"status"`
			} `json:"rows"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.Len(t, envelope.Data.Rows, 2)
	assert.False(t, envelope.Data.Locked)

	byID := map[string]string{}
	for _, r := range envelope.Data.Rows {
		byID[r.StudentID] = r.Status
	}
	assert.Equal(t, "absent", byID[studentIDs[0].String()])
	assert.Equal(t, "present", byID[studentIDs[1].String()])
}
