package controller

import (
	"encoding/csv"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	activityService "powerschool_backend/internals/features/activity/service"
	feeModel "powerschool_backend/internals/features/finance/fees/model"
	attendanceModel "powerschool_backend/internals/features/school/attendance/model"
	classModel "powerschool_backend/internals/features/school/classes/model"
	studentModel "powerschool_backend/internals/features/school/students/model"
	helper "powerschool_backend/internals/helpers"
)

type ImportController struct {
	DB *gorm.DB
}

func NewImportController(db *gorm.DB) *ImportController {
	return &ImportController{DB: db}
}

type importRequest struct {
	CSV string `json:"csv" validate:"required"`
}

// ==========================================
// 📥 POST /api/admin/import/classes
// Header: name,grade,teacher_name
// grade kosong → "1", teacher_name kosong → "TBD"
// Upsert berdasarkan name
// ==========================================
func (ctrl *ImportController) ImportClasses(c *fiber.Ctx) error {
	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	records := helper.ParseNaiveCSV(req.CSV)
	if len(records) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "CSV kosong atau hanya header")
	}

	imported := 0
	skipped := 0
	for _, row := range records {
		name := strings.TrimSpace(row["name"])
		if name == "" {
			skipped++
			continue
		}
		grade := strings.TrimSpace(row["grade"])
		if grade == "" {
			grade = "1"
		}
		teacherName := strings.TrimSpace(row["teacher_name"])
		if teacherName == "" {
			teacherName = "TBD"
		}

		class := classModel.ClassModel{
			Name:        name,
			Grade:       grade,
			TeacherName: teacherName,
		}
		if err := ctrl.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"grade", "teacher_name", "updated_at"}),
		}).Create(&class).Error; err != nil {
			log.Printf("[ERROR] import class %q: %v", name, err)
			skipped++
			continue
		}
		imported++
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "classes_imported", "class", "", map[string]any{
		"imported": imported,
		"skipped":  skipped,
	})

	return helper.JsonOK(c, "Import kelas selesai", fiber.Map{
		"imported": imported,
		"skipped":  skipped,
	})
}

// ==========================================
// 📥 POST /api/admin/import/students
// Header: full_name,email,guardian_name,guardian_email,class_id
// Kolom kosong disimpan sebagai NULL; class_id wajib merujuk kelas yang ada.
// Upsert: baris ber-email diperbarui jika siswa dengan email sama sudah ada.
// ==========================================
func (ctrl *ImportController) ImportStudents(c *fiber.Ctx) error {
	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	records := helper.ParseNaiveCSV(req.CSV)
	if len(records) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "CSV kosong atau hanya header")
	}

	imported := 0
	skipped := 0
	for _, row := range records {
		fullName := strings.TrimSpace(row["full_name"])
		classID, err := uuid.Parse(strings.TrimSpace(row["class_id"]))
		if fullName == "" || err != nil {
			skipped++
			continue
		}
		var classCount int64
		if err := ctrl.DB.Model(&classModel.ClassModel{}).
			Where("id = ?", classID).Count(&classCount).Error; err != nil || classCount == 0 {
			skipped++
			continue
		}

		student := studentModel.StudentModel{
			FullName:      fullName,
			Email:         nullIfEmpty(row["email"]),
			GuardianName:  nullIfEmpty(row["guardian_name"]),
			GuardianEmail: nullIfEmpty(row["guardian_email"]),
			ClassID:       classID,
		}

		if student.Email != nil {
			var existing studentModel.StudentModel
			if err := ctrl.DB.First(&existing, "email = ?", *student.Email).Error; err == nil {
				updates := map[string]any{
					"full_name":      student.FullName,
					"guardian_name":  student.GuardianName,
					"guardian_email": student.GuardianEmail,
					"class_id":       student.ClassID,
				}
				if err := ctrl.DB.Model(&existing).Updates(updates).Error; err != nil {
					log.Printf("[ERROR] import student %q: %v", fullName, err)
					skipped++
					continue
				}
				imported++
				continue
			}
		}

		if err := ctrl.DB.Create(&student).Error; err != nil {
			log.Printf("[ERROR] import student %q: %v", fullName, err)
			skipped++
			continue
		}
		imported++
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "students_imported", "student", "", map[string]any{
		"imported": imported,
		"skipped":  skipped,
	})

	return helper.JsonOK(c, "Import siswa selesai", fiber.Map{
		"imported": imported,
		"skipped":  skipped,
	})
}

func nullIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ==========================================
// 📤 GET /api/admin/export/students — CSV semua siswa
// ==========================================
func (ctrl *ImportController) ExportStudents(c *fiber.Ctx) error {
	var students []studentModel.StudentModel
	if err := ctrl.DB.Order("full_name ASC").Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data siswa")
	}

	classNames := map[string]string{}
	var classes []classModel.ClassModel
	if err := ctrl.DB.Find(&classes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data kelas")
	}
	for _, cl := range classes {
		classNames[cl.ID.String()] = cl.Name
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{"full_name", "email", "guardian_name", "class_name"})
	for _, s := range students {
		_ = w.Write([]string{
			s.FullName,
			deref(s.Email),
			deref(s.GuardianName),
			classNames[s.ClassID.String()],
		})
	}
	w.Flush()

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="students.csv"`)
	return c.SendString(sb.String())
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ==========================================
// 📤 GET /api/admin/export/attendance — CSV absensi 7 hari terakhir
// ==========================================
func (ctrl *ImportController) ExportAttendance(c *fiber.Ctx) error {
	windowStart := time.Now().AddDate(0, 0, -7).Format("2006-01-02")

	var records []attendanceModel.AttendanceRecordModel
	if err := ctrl.DB.Where("attendance_date >= ?", windowStart).
		Order("attendance_date ASC, student_id ASC").
		Find(&records).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data absensi")
	}

	studentNames, err := ctrl.studentNames()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data siswa")
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{"attendance_date", "student_name", "status", "note"})
	for _, r := range records {
		_ = w.Write([]string{
			r.AttendanceDate,
			studentNames[r.StudentID],
			r.Status,
			deref(r.Note),
		})
	}
	w.Flush()

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="attendance.csv"`)
	return c.SendString(sb.String())
}

// ==========================================
// 📤 GET /api/admin/export/invoices — CSV semua tagihan
// ==========================================
func (ctrl *ImportController) ExportInvoices(c *fiber.Ctx) error {
	var invoices []feeModel.FeeInvoiceModel
	if err := ctrl.DB.Order("due_date ASC").Find(&invoices).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data tagihan")
	}

	studentNames, err := ctrl.studentNames()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data siswa")
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{"student_name", "title", "amount_cents", "due_date", "status"})
	for _, inv := range invoices {
		_ = w.Write([]string{
			studentNames[inv.StudentID],
			inv.Title,
			fmt.Sprintf("%d", inv.AmountCents),
			inv.DueDate,
			inv.Status,
		})
	}
	w.Flush()

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="invoices.csv"`)
	return c.SendString(sb.String())
}

func (ctrl *ImportController) studentNames() (map[uuid.UUID]string, error) {
	var students []studentModel.StudentModel
	if err := ctrl.DB.Find(&students).Error; err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(students))
	for _, s := range students {
		names[s.ID] = s.FullName
	}
	return names, nil
}
