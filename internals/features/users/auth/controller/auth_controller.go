package controller

import (
	"errors"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"powerschool_backend/internals/configs"
	activityService "powerschool_backend/internals/features/activity/service"
	authModel "powerschool_backend/internals/features/users/auth/model"
	"powerschool_backend/internals/features/users/auth/dto"
	authService "powerschool_backend/internals/features/users/auth/service"
	userModel "powerschool_backend/internals/features/users/user/model"
	helper "powerschool_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// POST /api/auth/register
// Sign-up mandiri untuk staf; kalau SIGNUP_INVITE_CODE diset, kode undangan
// wajib cocok.
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	if configs.SignupInviteCode != "" && strings.TrimSpace(req.Invite) != configs.SignupInviteCode {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid invite code. Contact an admin for access.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to hash password")
	}

	usr := userModel.UserModel{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashed),
		FullName: req.FullName,
		IsActive: true,
	}

	if err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&usr).Error; err != nil {
			return err
		}
		profile := userModel.ProfileModel{
			UserID:   usr.ID,
			FullName: &usr.FullName,
			Role:     req.Role,
		}
		return tx.Create(&profile).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email sudah terdaftar atau registrasi gagal")
	}

	activityService.LogAction(ctl.DB, &usr.ID, "user_registered", "user", usr.ID.String(),
		map[string]any{"role": req.Role})

	return helper.JsonCreated(c, "Registrasi berhasil", dto.AuthUser{
		ID:       usr.ID.String(),
		Email:    usr.Email,
		FullName: usr.FullName,
		Role:     req.Role,
	})
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var usr userModel.UserModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&usr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "login gagal")
	}
	if !usr.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}

	return ctl.issueToken(c, usr)
}

// POST /api/auth/login-google
func (ctl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google token tidak valid")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google token tidak bisa dibaca")
	}

	var usr userModel.UserModel
	err = ctl.DB.WithContext(c.Context()).
		Where("google_id = ? OR email = ?", claimSet.Sub, strings.ToLower(claimSet.Email)).
		First(&usr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// akun baru via Google — role default teacher, bisa diganti admin
		usr = userModel.UserModel{
			Email:    strings.ToLower(claimSet.Email),
			Password: "-",
			FullName: claimSet.Name,
			IsActive: true,
			GoogleID: &claimSet.Sub,
		}
		if err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&usr).Error; err != nil {
				return err
			}
			profile := userModel.ProfileModel{UserID: usr.ID, FullName: &usr.FullName, Role: "teacher"}
			return tx.Create(&profile).Error
		}); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "registrasi via Google gagal")
		}
	} else if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "login gagal")
	}
	if !usr.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	return ctl.issueToken(c, usr)
}

// POST /api/auth/logout — token masuk blacklist sampai kadaluarsa
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[1] == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing token")
	}
	tokenString := parts[1]

	entry := authModel.TokenBlacklist{
		Token:     tokenString,
		ExpiredAt: authService.TokenExpiry(tokenString),
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&entry).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "logout gagal")
	}

	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/auth/me — echo klaim dari middleware
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", dto.AuthUser{
		ID:       userID.String(),
		FullName: helper.GetUserName(c),
		Role:     helper.GetRole(c),
	})
}

func (ctl *AuthController) issueToken(c *fiber.Ctx, usr userModel.UserModel) error {
	role := "teacher"
	var profile userModel.ProfileModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("user_id = ?", usr.ID).
		First(&profile).Error; err == nil {
		role = profile.Role
	}

	token, err := authService.CreateAccessToken(usr, role)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "gagal membuat token")
	}

	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		AccessToken: token,
		User: dto.AuthUser{
			ID:       usr.ID.String(),
			Email:    usr.Email,
			FullName: usr.FullName,
			Role:     role,
		},
	})
}
