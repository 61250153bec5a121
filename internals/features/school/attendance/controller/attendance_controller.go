package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	activityService "powerschool_backend/internals/features/activity/service"
	"powerschool_backend/internals/features/school/attendance/dto"
	"powerschool_backend/internals/features/school/attendance/model"
	studentModel "powerschool_backend/internals/features/school/students/model"
	helper "powerschool_backend/internals/helpers"
)

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

// ==================================================
// 📋 GET /api/attendance/roster?class_id=...&date=...
// Semua siswa kelas + status hari itu (default present)
// ==================================================
func (ctrl *AttendanceController) Roster(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Query("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal tidak valid (YYYY-MM-DD)")
	}

	var students []studentModel.StudentModel
	if err := ctrl.DB.
		Where("class_id = ?", classID).
		Order("full_name ASC").
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar siswa")
	}

	var records []model.AttendanceRecordModel
	if err := ctrl.DB.
		Where("class_id = ? AND attendance_date = ?", classID, date).
		Find(&records).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data absensi")
	}

	byStudent := make(map[uuid.UUID]model.AttendanceRecordModel, len(records))
	for _, r := range records {
		byStudent[r.StudentID] = r
	}

	rows := make([]dto.RosterRow, 0, len(students))
	for _, s := range students {
		row := dto.RosterRow{
			StudentID: s.ID.String(),
			FullName:  s.FullName,
			Status:    "present",
		}
		if rec, ok := byStudent[s.ID]; ok {
			row.Status = rec.Status
			row.Note = rec.Note
		}
		rows = append(rows, row)
	}

	return helper.JsonOK(c, "OK", dto.RosterResponse{
		ClassID:        classID.String(),
		AttendanceDate: date,
		Locked:         ctrl.isLocked(classID, date),
		Rows:           rows,
	})
}

func (ctrl *AttendanceController) isLocked(classID uuid.UUID, date string) bool {
	var lock model.AttendanceLockModel
	err := ctrl.DB.
		Where("class_id = ? AND attendance_date = ?", classID, date).
		First(&lock).Error
	if err != nil {
		return false
	}
	return lock.Locked
}

// =======================
// 💾 POST /api/attendance
// 409 jika hari sudah dikunci
// =======================
func (ctrl *AttendanceController) Save(c *fiber.Ctx) error {
	var req dto.SaveAttendanceRequest
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

	// Re-read status kunci di server, jangan percaya klien.
	// Check lalu write tanpa serialisasi: penyimpanan yang race dengan
	// penguncian bisa tetap masuk. Diterima sebagai advisory lock.
	if ctrl.isLocked(classID, req.AttendanceDate) {
		return helper.JsonError(c, fiber.StatusConflict, "Absensi tanggal ini sudah dikunci")
	}

	rows := make([]model.AttendanceRecordModel, 0, len(req.Entries))
	for _, e := range req.Entries {
		studentID, err := uuid.Parse(e.StudentID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid: "+e.StudentID)
		}
		rows = append(rows, model.AttendanceRecordModel{
			StudentID:      studentID,
			ClassID:        classID,
			AttendanceDate: req.AttendanceDate,
			Status:         e.Status,
			Note:           e.Note,
		})
	}

	if err := ctrl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "attendance_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "note", "updated_at"}),
	}).Create(&rows).Error; err != nil {
		log.Printf("[ERROR] save attendance: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan absensi")
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "attendance_saved", "attendance", classID.String(), map[string]any{
		"attendance_date": req.AttendanceDate,
		"entry_count":     len(rows),
	})

	return helper.JsonOK(c, "Absensi berhasil disimpan", fiber.Map{
		"class_id":        classID,
		"attendance_date": req.AttendanceDate,
		"saved":           len(rows),
	})
}

// ==========================
// 🔒 POST /api/attendance/lock
// ==========================
func (ctrl *AttendanceController) ToggleLock(c *fiber.Ctx) error {
	var req dto.ToggleLockRequest
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
	lock := model.AttendanceLockModel{
		ClassID:        classID,
		AttendanceDate: req.AttendanceDate,
		Locked:         req.Locked,
		LockedBy:       &actorID,
	}
	if err := ctrl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "class_id"}, {Name: "attendance_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"locked", "locked_by", "updated_at"}),
	}).Create(&lock).Error; err != nil {
		log.Printf("[ERROR] toggle attendance lock: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah kunci absensi")
	}

	action := "attendance_unlocked"
	if req.Locked {
		action = "attendance_locked"
	}
	activityService.LogAction(ctrl.DB, &actorID, action, "attendance_lock", classID.String(), map[string]any{
		"attendance_date": req.AttendanceDate,
	})

	return helper.JsonOK(c, "Status kunci diperbarui", lock)
}

// =========================
// 📋 GET /api/admin/locks
// =========================
func (ctrl *AttendanceController) ListLocks(c *fiber.Ctx) error {
	var locks []model.AttendanceLockModel
	q := ctrl.DB.Model(&model.AttendanceLockModel{})
	if classID := c.Query("class_id"); classID != "" {
		id, err := uuid.Parse(classID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
		}
		q = q.Where("class_id = ?", id)
	}
	if err := q.Order("attendance_date DESC").Find(&locks).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data kunci")
	}
	return helper.JsonOK(c, "OK", locks)
}

// ==============================
// 🔓 DELETE /api/admin/locks?class_id=&date=
// Force-unlock oleh admin: baris kunci dihapus seluruhnya
// ==============================
func (ctrl *AttendanceController) ForceUnlock(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Query("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
	}
	date := c.Query("date")
	if date == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "date wajib diisi")
	}

	var lock model.AttendanceLockModel
	if err := ctrl.DB.First(&lock, "class_id = ? AND attendance_date = ?", classID, date).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kunci tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data kunci")
	}

	if err := ctrl.DB.Delete(&lock).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuka kunci")
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "attendance_unlocked_admin", "class", lock.ClassID.String(), map[string]any{
		"date": lock.AttendanceDate,
	})

	return helper.JsonDeleted(c, "Kunci berhasil dibuka", fiber.Map{
		"class_id":        lock.ClassID,
		"attendance_date": lock.AttendanceDate,
	})
}
