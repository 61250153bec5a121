package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	activityService "powerschool_backend/internals/features/activity/service"
	"powerschool_backend/internals/features/users/user/dto"
	"powerschool_backend/internals/features/users/user/model"
	helper "powerschool_backend/internals/helpers"
)

// AdminUserController menangani pembuatan & penonaktifan akun staf.
// Route-nya dijaga middleware role admin; cek role di sini hanya guard kedua
// supaya kontrak 401-nya tetap berlaku walau route dipasang tanpa gate.
type AdminUserController struct {
	DB *gorm.DB
}

func NewAdminUserController(db *gorm.DB) *AdminUserController {
	return &AdminUserController{DB: db}
}

func (ctl *AdminUserController) requireAdmin(c *fiber.Ctx) error {
	if helper.GetRole(c) != "admin" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return nil
}

// POST /api/admin/users — body {email, password, full_name, role}
// 401 tanpa sesi admin, 400 field kurang / gagal create, 200 user dibuat.
func (ctl *AdminUserController) Create(c *fiber.Ctx) error {
	if err := ctl.requireAdmin(c); err != nil {
		return err
	}

	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if req.Email == "" || req.Password == "" || req.Role == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing fields")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to hash password")
	}

	usr := model.UserModel{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashed),
		FullName: req.FullName,
		IsActive: true,
	}

	if err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&usr).Error; err != nil {
			return err
		}
		profile := model.ProfileModel{
			UserID:   usr.ID,
			FullName: &usr.FullName,
			Role:     req.Role,
		}
		return tx.Create(&profile).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Gagal membuat user (email sudah dipakai?)")
	}

	adminID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctl.DB, &adminID, "user_created", "user", usr.ID.String(),
		map[string]any{"role": req.Role})

	return helper.JsonOK(c, "User dibuat", fiber.Map{"user": usr})
}

// DELETE /api/admin/users?user_id=<id> — nonaktifkan akun staf
func (ctl *AdminUserController) Delete(c *fiber.Ctx) error {
	if err := ctl.requireAdmin(c); err != nil {
		return err
	}

	raw := c.Query("user_id")
	if raw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing user_id")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user_id")
	}

	if err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.UserModel{}).
			Where("id = ?", userID).
			Updates(map[string]any{"is_active": false, "updated_at": time.Now()}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&model.ProfileModel{}).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Gagal menonaktifkan user")
	}

	adminID, _ := helper.GetUserUUID(c)
	activityService.LogAction(ctl.DB, &adminID, "user_deactivated", "user", userID.String(), nil)

	return helper.JsonOK(c, "User dinonaktifkan", fiber.Map{"ok": true})
}
