// Package response holds the {success, ...} envelope used by the job
// notification webhook, which callers outside this service depend on.
package response

import "github.com/gofiber/fiber/v3"

const (
	ErrMissingRecord  = "Missing record in webhook payload"
	ErrInvalidPayload = "Invalid webhook payload"
	ErrUnauthorized   = "Unauthorized"
	ErrInternal       = "Internal server error"
)

type WebhookError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func Fail(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(WebhookError{Success: false, Error: message})
}

func OK(c fiber.Ctx, status int, body any) error {
	return c.Status(status).JSON(body)
}
