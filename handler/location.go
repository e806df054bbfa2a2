package handler

import (
	"errors"
	"strings"

	"pod_dining/constants"
	"pod_dining/database"
	"pod_dining/helper"
	"pod_dining/model"
	"pod_dining/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

type LocationUI struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	OpeningHour string `json:"openingHour"`
}

func GetLocations(c *fiber.Ctx) error {
	db := database.DB

	pagination := new(model.Pagination)
	if err := c.QueryParser(pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu phân trang không hợp lệ", err)
	}

	query := db.Model(&model.Location{}).Where("active = ?", true)

	if key := strings.ToLower(strings.TrimSpace(c.Query("search"))); key != "" {
		search := "%" + key + "%"
		query = query.Where(
			db.Where("LOWER(name) LIKE ?", search).
				Or("LOWER(address) LIKE ?", search),
		)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var locations []model.Location
	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).
		Order("name").Find(&locations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	rows := make([]LocationUI, 0, len(locations))
	copier.Copy(&rows, &locations)

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       rows,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	})
}

func GetLocationBySlug(c *fiber.Ctx) error {
	db := database.DB
	slugParam := c.Params("slug")

	var location model.Location
	if err := db.Where("slug = ? AND active = ?", slugParam, true).First(&location).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy cơ sở", err)
	}

	var result LocationUI
	copier.Copy(&result, &location)

	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

// UpdateLocation: admin/manager chỉnh thông tin cơ sở, đổi tên thì cấp slug mới
func UpdateLocation(c *fiber.Ctx) error {
	db := database.DB
	_, isAdmin, isManager, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isManager {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Không có quyền thao tác", errors.New("not permission"))
	}

	locationId := c.Locals("inputId").(int)

	type UpdateLocationInput struct {
		Name        *string `json:"name"`
		Address     *string `json:"address"`
		Phone       *string `json:"phone"`
		OpeningHour *string `json:"openingHour"`
		Active      *bool   `json:"active"`
	}
	input := new(UpdateLocationInput)
	if err := c.BodyParser(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ", err)
	}

	var location model.Location
	if err := db.First(&location, locationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy cơ sở", err)
	}

	if input.Name != nil && *input.Name != location.Name {
		location.Name = *input.Name
		location.Slug = helper.GenerateUniqueLocationSlug(db, *input.Name)
	}
	if input.Address != nil {
		location.Address = *input.Address
	}
	if input.Phone != nil {
		location.Phone = *input.Phone
	}
	if input.OpeningHour != nil {
		location.OpeningHour = *input.OpeningHour
	}
	if input.Active != nil {
		location.Active = *input.Active
	}

	if err := db.Save(&location).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, location)
}
