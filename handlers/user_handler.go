package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nattapon-dev/learnhub_backend/database"
	"github.com/nattapon-dev/learnhub_backend/models"
	"gorm.io/gorm"
)

type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

func GetAllUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	offset := c.QueryInt("offset", 0)

	var users []models.User
	var total int64
	database.DB.Model(&models.User{}).Count(&total)
	database.DB.Order("created_at desc").Limit(limit).Offset(offset).Find(&users)

	data := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		data = append(data, fiber.Map{
			"id":         u.ID,
			"email":      u.Email,
			"role":       u.Role,
			"is_active":  u.IsActive,
			"created_at": u.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"data":   data,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func GetUser(c *fiber.Ctx) error {
	userID := c.Params("id")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var profile *models.Profile
	var p models.Profile
	if err := database.DB.First(&p, "user_id = ?", userID).Error; err == nil {
		profile = &p
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load profile"})
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
		"profile": profile,
	})
}

func UpdateUser(c *fiber.Ctx) error {
	userID := c.Params("id")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var profile *models.Profile
	var p models.Profile
	if err := database.DB.First(&p, "user_id = ?", userID).Error; err == nil {
		if req.FirstName != nil {
			p.FirstName = req.FirstName
		}
		if req.LastName != nil {
			p.LastName = req.LastName
		}
		if req.Phone != nil {
			p.Phone = req.Phone
		}
		if err := database.DB.Save(&p).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
		}
		profile = &p
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
		},
		"profile": profile,
		"message": "User updated successfully",
	})
}
