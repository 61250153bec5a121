package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activityService "powerschool_backend/internals/features/activity/service"
	"powerschool_backend/internals/features/school/students/dto"
	"powerschool_backend/internals/features/school/students/model"
	helper "powerschool_backend/internals/helpers"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

// =======================
// 📋 GET /api/students
// =======================
func (ctrl *StudentController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 500)

	q := ctrl.DB.Model(&model.StudentModel{})
	if classID := c.Query("class_id"); classID != "" {
		id, err := uuid.Parse(classID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
		}
		q = q.Where("class_id = ?", id)
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("full_name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data siswa")
	}

	var students []model.StudentModel
	if err := q.Order("full_name ASC").
		Limit(p.PerPage).Offset(p.Offset).
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data siswa")
	}

	return helper.JsonList(c, "", students, helper.BuildPagination(p, total, len(students)))
}

// =======================
// 🔍 GET /api/students/:id
// =======================
func (ctrl *StudentController) Detail(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	var student model.StudentModel
	if err := ctrl.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
	}
	return helper.JsonOK(c, "OK", student)
}

// =======================
// ➕ POST /api/students
// =======================
func (ctrl *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
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

	student := model.StudentModel{
		FullName:       req.FullName,
		Email:          req.Email,
		GuardianName:   req.GuardianName,
		GuardianEmail:  req.GuardianEmail,
		FatherName:     req.FatherName,
		MotherName:     req.MotherName,
		Phone:          req.Phone,
		BirthDate:      req.BirthDate,
		PreviousSchool: req.PreviousSchool,
		MedicalInfo:    req.MedicalInfo,
		ClassID:        classID,
	}
	if err := ctrl.DB.Create(&student).Error; err != nil {
		log.Printf("[ERROR] create student: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menambahkan siswa")
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "student_created", "student", student.ID.String(), map[string]any{
		"full_name": student.FullName,
		"class_id":  student.ClassID.String(),
	})

	return helper.JsonCreated(c, "Siswa berhasil ditambahkan", student)
}

// =======================
// ✏️ PATCH /api/students/:id
// =======================
func (ctrl *StudentController) Update(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var student model.StudentModel
	if err := ctrl.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
	}

	updates := map[string]any{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.GuardianName != nil {
		updates["guardian_name"] = *req.GuardianName
	}
	if req.GuardianEmail != nil {
		updates["guardian_email"] = *req.GuardianEmail
	}
	if req.FatherName != nil {
		updates["father_name"] = *req.FatherName
	}
	if req.MotherName != nil {
		updates["mother_name"] = *req.MotherName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.BirthDate != nil {
		updates["birth_date"] = *req.BirthDate
	}
	if req.PreviousSchool != nil {
		updates["previous_school"] = *req.PreviousSchool
	}
	if req.MedicalInfo != nil {
		updates["medical_info"] = *req.MedicalInfo
	}
	if req.ClassID != nil {
		classID, err := uuid.Parse(*req.ClassID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID kelas tidak valid")
		}
		updates["class_id"] = classID
	}

	if len(updates) > 0 {
		if err := ctrl.DB.Model(&student).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui siswa")
		}
	}

	return helper.JsonUpdated(c, "Siswa berhasil diperbarui", student)
}

// =======================
// 🗑️ DELETE /api/students/:id
// =======================
func (ctrl *StudentController) Delete(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	if err := ctrl.DB.Delete(&model.StudentModel{}, "id = ?", studentID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus siswa")
	}

	actorID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctrl.DB, &actorID, "student_deleted", "student", studentID.String(), nil)

	return helper.JsonDeleted(c, "Siswa berhasil dihapus", fiber.Map{"id": studentID})
}
