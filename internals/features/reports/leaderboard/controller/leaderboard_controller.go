package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"guildku_backend/internals/features/reports/leaderboard/dto"
	"guildku_backend/internals/features/reports/leaderboard/service"
	helper "guildku_backend/internals/helpers"
)

type LeaderboardController struct {
	DB      *gorm.DB
	Service *service.LeaderboardService
}

func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{
		DB:      db,
		Service: service.NewLeaderboardService(db),
	}
}

// GET /reports/leaderboard?period=&type_id=&from=&to=
func (ctrl *LeaderboardController) Get(c *fiber.Ctx) error {
	var filter dto.FilterLeaderboardRequest
	if err := c.QueryParser(&filter); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validator.New().Struct(filter); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	entries, err := ctrl.Service.Compute(filter, time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung leaderboard")
	}

	paging := helper.ResolvePaging(c, 20, 200)
	total := int64(len(entries))
	start := paging.Offset
	if start > len(entries) {
		start = len(entries)
	}
	end := start + paging.Limit
	if end > len(entries) {
		end = len(entries)
	}

	return helper.JsonList(c, "ok", entries[start:end],
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
