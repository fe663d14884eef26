package schedule

import (
	"strings"

	"vardiya-backend/internal/auth"
	"vardiya-backend/internal/database"
	"vardiya-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AddCommentRequest struct {
	Body string `json:"body"`
}

type CommentResponse struct {
	ID        uint   `json:"id"`
	ShiftID   uint   `json:"shift_id"`
	UserID    uint   `json:"user_id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// ----------------------------------------
// VARDİYA YORUMLARI
// Append-only; yorumlar vardiyayla birlikte silinir.
// ----------------------------------------

func AddCommentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, isSuper, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz vardiya id")
		}

		var body AddCommentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Body = strings.TrimSpace(body.Body)
		if body.Body == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Yorum boş olamaz")
		}

		var comment models.ShiftComment
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			shift, err := findShift(tx, id)
			if err != nil {
				return err
			}
			level, err := resolveLevel(tx, userID, isSuper, shift.ScheduleID)
			if err != nil {
				return err
			}
			if !level.CanComment() {
				return errForbidden()
			}

			comment = models.ShiftComment{
				ShiftID: shift.ID,
				UserID:  userID,
				Body:    body.Body,
			}
			if err := tx.Create(&comment).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Yorum eklenemedi")
			}
			return nil
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(CommentResponse{
			ID:        comment.ID,
			ShiftID:   comment.ShiftID,
			UserID:    comment.UserID,
			Body:      comment.Body,
			CreatedAt: comment.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func ListCommentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, isSuper, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz vardiya id")
		}

		shift, err := findShift(database.DB, id)
		if err != nil {
			return err
		}
		level, err := resolveLevel(database.DB, userID, isSuper, shift.ScheduleID)
		if err != nil {
			return err
		}
		if !level.CanView() {
			return errForbidden()
		}

		var comments []models.ShiftComment
		if err := database.DB.
			Where("shift_id = ?", shift.ID).
			Order("created_at ASC").
			Find(&comments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yorumlar listelenemedi")
		}

		res := make([]CommentResponse, 0, len(comments))
		for _, cm := range comments {
			res = append(res, CommentResponse{
				ID:        cm.ID,
				ShiftID:   cm.ShiftID,
				UserID:    cm.UserID,
				Body:      cm.Body,
				CreatedAt: cm.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}
