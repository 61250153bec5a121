package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	activityService "powerschool_backend/internals/features/activity/service"
	"powerschool_backend/internals/features/users/user/dto"
	"powerschool_backend/internals/features/users/user/model"
	helper "powerschool_backend/internals/helpers"
	storageHelper "powerschool_backend/internals/helpers/storage"
)

type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

// GET /api/admin/users — daftar staf + status absensi hari ini
func (ctl *ProfileController) List(c *fiber.Ctx) error {
	type joined struct {
		model.ProfileModel
		Email    string `gorm:"column:email"`
		IsActive bool   `gorm:"column:is_active"`
	}

	var rows []joined
	if err := ctl.DB.WithContext(c.Context()).
		Table("profiles").
		Select("profiles.*, users.email, users.is_active").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("profiles.deleted_at IS NULL").
		Order("profiles.created_at DESC").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch users")
	}

	today := time.Now().Format("2006-01-02")
	var attendance []model.StaffAttendanceModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("attendance_date = ?", today).
		Find(&attendance).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch staff attendance")
	}
	statusByUser := make(map[uuid.UUID]string, len(attendance))
	for _, a := range attendance {
		statusByUser[a.UserID] = a.Status
	}

	out := make([]dto.StaffRow, 0, len(rows))
	for _, r := range rows {
		row := dto.StaffRow{
			UserID:      r.UserID.String(),
			Email:       r.Email,
			FullName:    r.FullName,
			Role:        r.Role,
			Designation: r.Designation,
			Department:  r.Department,
			SalaryCents: r.SalaryCents,
			StaffDocURL: r.StaffDocURL,
			ResumeURL:   r.ResumeURL,
			IsActive:    r.IsActive,
			CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		}
		if st, ok := statusByUser[r.UserID]; ok {
			row.TodayStatus = &st
		}
		out = append(out, row)
	}

	return helper.JsonList(c, "", out, nil)
}

// PATCH /api/admin/users/:id — update role / data kepegawaian
func (ctl *ProfileController) Update(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	updates := map[string]any{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Designation != nil {
		updates["designation"] = *req.Designation
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.SalaryCents != nil {
		updates["salary_cents"] = *req.SalaryCents
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "no fields to update")
	}
	updates["updated_at"] = time.Now()

	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.ProfileModel{}).
		Where("user_id = ?", userID).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update profile")
	}

	adminID, _ := helper.GetUserUUID(c)
	if req.Role != nil {
		activityService.LogAction(ctl.DB, &adminID, "role_updated", "user", userID.String(),
			map[string]any{"role": *req.Role})
	}

	var profile model.ProfileModel
	_ = ctl.DB.WithContext(c.Context()).Where("user_id = ?", userID).First(&profile).Error
	return helper.JsonUpdated(c, "", profile)
}

// POST /api/admin/users/attendance — absensi staf hari ini,
// upsert keyed (user_id, attendance_date)
func (ctl *ProfileController) MarkStaffAttendance(c *fiber.Ctx) error {
	var req dto.StaffAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	row := model.StaffAttendanceModel{
		UserID:         uuid.MustParse(req.UserID),
		AttendanceDate: time.Now().Format("2006-01-02"),
		Status:         req.Status,
	}
	if err := ctl.DB.WithContext(c.Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "attendance_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to save staff attendance")
	}

	return helper.JsonOK(c, "Absensi staf tersimpan", row)
}

// POST /api/admin/users/:id/documents?field=staff_doc_url|resume_url
// multipart "file" → upload storage dulu, lalu simpan URL (dua fase,
// tanpa kompensasi kalau fase dua gagal)
func (ctl *ProfileController) UploadDocument(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	field := c.Query("field", "staff_doc_url")
	if field != "staff_doc_url" && field != "resume_url" {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid field")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "missing file")
	}

	var url string
	switch fileHeader.Header.Get("Content-Type") {
	case "image/jpeg", "image/png":
		url, err = storageHelper.UploadImageAsWebP("staff", fileHeader)
	default:
		url, err = storageHelper.UploadFile("staff", fileHeader)
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, err.Error())
	}

	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.ProfileModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{field: url, "updated_at": time.Now()}).Error; err != nil {
		// file sudah terupload; row gagal — biarkan, kontraknya memang dua fase
		return helper.JsonError(c, fiber.StatusInternalServerError, "uploaded but failed to save URL")
	}

	return helper.JsonUpdated(c, "", fiber.Map{"url": url, "field": field})
}
