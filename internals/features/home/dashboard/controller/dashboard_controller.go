package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"powerschool_backend/internals/features/home/dashboard/service"
	helper "powerschool_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// =======================
// 📊 GET /api/dashboard
// =======================
func (ctrl *DashboardController) Get(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	role := helper.GetRole(c)

	data := service.LoadDashboardData(ctrl.DB, userID, role)
	return helper.JsonOK(c, "OK", data)
}
