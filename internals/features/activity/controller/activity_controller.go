package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"powerschool_backend/internals/features/activity/model"
	helper "powerschool_backend/internals/helpers"
)

type ActivityController struct {
	DB *gorm.DB
}

func NewActivityController(db *gorm.DB) *ActivityController {
	return &ActivityController{DB: db}
}

// GET /api/admin/activity — audit feed, terbaru dulu
func (ctl *ActivityController) List(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 50, 200)

	base := ctl.DB.WithContext(c.Context()).Model(&model.ActivityLogModel{})

	if action := c.Query("action"); action != "" {
		base = base.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		base = base.Where("entity = ?", entity)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count")
	}

	var rows []model.ActivityLogModel
	if err := base.
		Order("created_at DESC").
		Limit(pg.Limit).
		Offset(pg.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch activity log")
	}

	return helper.JsonList(c, "", rows, helper.BuildPagination(pg, total, len(rows)))
}
