// Package response writes the {status,message,data} envelope used by the
// matching API and the error middleware.
package response

import "github.com/gofiber/fiber/v3"

type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const (
	MessageOK                  = "ok"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageNotFound            = "not found"
	MessageDegraded            = "degraded"
	MessageInternalServerError = "internal server error"
	MessageError               = "error"
)

func Success(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data)
}

// Error writes a failure envelope. Statuses outside 100-599 become 500.
func Error(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data)
}

func write(c fiber.Ctx, status int, message string, data any) error {
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = DefaultMessage(status)
	}
	return c.Status(status).JSON(Envelope{Status: status, Message: message, Data: data})
}

// DefaultMessage is the message sent when a handler gives none.
func DefaultMessage(status int) string {
	switch {
	case status == fiber.StatusOK:
		return MessageOK
	case status == fiber.StatusBadRequest:
		return MessageBadRequest
	case status == fiber.StatusUnauthorized:
		return MessageUnauthorized
	case status == fiber.StatusNotFound:
		return MessageNotFound
	case status == fiber.StatusServiceUnavailable:
		return MessageDegraded
	case status >= 500:
		return MessageInternalServerError
	default:
		return MessageError
	}
}
