package routes

import (
	"fmt"
	"log"
	"sync"
	"time"

	"nestira/db"
	"nestira/email"
	"nestira/models"

	"github.com/gofiber/fiber/v2"
)

// Campaign dispatch runs in bounded batches so the mail provider never sees
// more than newsletterBatchSize concurrent sends.
const (
	newsletterBatchSize  = 10
	newsletterBatchDelay = time.Second
)

type SubscribeRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Content  string `json:"content"`
}

func subscribeNewsletter(c *fiber.Ctx) error {
	var req SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A valid email is required",
		})
	}

	var existing int64
	db.DB.Model(&models.Newsletters{}).Where("email = ?", req.Email).Count(&existing)
	if existing > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Email is already subscribed to newsletters",
		})
	}

	subscriber := models.Newsletters{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Content:  req.Content,
	}
	if err := db.DB.Create(&subscriber).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to subscribe to newsletters",
		})
	}

	log.Printf("New subscriber added: %s", subscriber.Email)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Successfully subscribed to newsletters",
		"data": fiber.Map{
			"id":        subscriber.ID,
			"email":     subscriber.Email,
			"full_name": subscriber.FullName,
		},
	})
}

func sendNewsletterToSubscriber(c *fiber.Ctx) error {
	subscriberID, err := c.ParamsInt("subscriberId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid subscriber id",
		})
	}
	promotionID, err := c.ParamsInt("promotionId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid promotion id",
		})
	}

	var subscriber models.Newsletters
	if err := db.DB.First(&subscriber, subscriberID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Newsletter subscriber not found",
		})
	}

	var promotion models.Promotion
	if err := db.DB.First(&promotion, promotionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Promotion not found",
		})
	}

	loc := locale(c)
	if err := email.SendNewsletter(&subscriber, &promotion, loc); err != nil {
		log.Printf("Failed to send newsletter to %s: %v", subscriber.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send newsletter",
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Newsletter sent to %s successfully", subscriber.Email),
	})
}

// sendNewsletterToAll dispatches a promotion to every subscriber in batches.
// Each batch settles before the next starts, and a failed recipient is
// counted and reported, never fatal to the campaign.
func sendNewsletterToAll(c *fiber.Ctx) error {
	promotionID, err := c.ParamsInt("promotionId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid promotion id",
		})
	}

	var promotion models.Promotion
	if err := db.DB.First(&promotion, promotionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Promotion not found",
		})
	}

	var subscribers []models.Newsletters
	if err := db.DB.Find(&subscribers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get subscribers",
		})
	}

	if len(subscribers) == 0 {
		return c.JSON(fiber.Map{
			"total_sent":   0,
			"total_failed": 0,
			"details":      []string{"No subscribers found"},
		})
	}

	loc := locale(c)

	var (
		mu          sync.Mutex
		totalSent   int
		totalFailed int
		details     []string
	)

	for start := 0; start < len(subscribers); start += newsletterBatchSize {
		end := start + newsletterBatchSize
		if end > len(subscribers) {
			end = len(subscribers)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(subscriber models.Newsletters) {
				defer wg.Done()
				if err := email.SendNewsletter(&subscriber, &promotion, loc); err != nil {
					mu.Lock()
					totalFailed++
					details = append(details, fmt.Sprintf("Failed to send to %s: %v", subscriber.Email, err))
					mu.Unlock()
					log.Printf("Failed to send newsletter to %s: %v", subscriber.Email, err)
					return
				}
				mu.Lock()
				totalSent++
				mu.Unlock()
			}(subscribers[i])
		}
		wg.Wait()

		// Pause between batches to stay under provider rate limits.
		if end < len(subscribers) {
			time.Sleep(newsletterBatchDelay)
		}
	}

	log.Printf("Newsletter campaign completed: %d sent, %d failed (promotion: %d)",
		totalSent, totalFailed, promotionID)

	if totalFailed == 0 {
		details = []string{fmt.Sprintf("Successfully sent to %d subscribers", totalSent)}
	}

	return c.JSON(fiber.Map{
		"total_sent":   totalSent,
		"total_failed": totalFailed,
		"details":      details,
	})
}

func getAllSubscribers(c *fiber.Ctx) error {
	var subscribers []models.Newsletters
	if err := db.DB.Order("created_at DESC").Find(&subscribers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve subscribers",
		})
	}

	return c.JSON(fiber.Map{
		"count": len(subscribers),
		"data":  subscribers,
	})
}

func deleteSubscriber(c *fiber.Ctx) error {
	subscriberID, err := c.ParamsInt("subscriberId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid subscriber id",
		})
	}

	var subscriber models.Newsletters
	if err := db.DB.First(&subscriber, subscriberID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Newsletter subscriber not found",
		})
	}

	if err := db.DB.Delete(&subscriber).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete subscriber",
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Subscriber %s has been successfully deleted", subscriber.Email),
	})
}
