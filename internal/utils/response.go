// response.go
//
// Production scheduling and order file service for the metalworking shop floor
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of shopfloor.
// shopfloor is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// shopfloor is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with shopfloor.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package utils

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/localnerve/shopfloor/internal/types"
)

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Error     string `json:"error"`
	Status    int    `json:"status"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
	Details   string `json:"details,omitempty"`
}

// SuccessResponseStruct defines the schema for mutation success responses
type SuccessResponseStruct struct {
	Success bool `json:"success"`
}

// MessageResponseStruct defines the schema for responses carrying only a message
type MessageResponseStruct struct {
	Message string `json:"message"`
}

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// MutationSuccessResponse sends {success: true}
func MutationSuccessResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(SuccessResponseStruct{Success: true})
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType, details string) error {
	return c.Status(status).JSON(ErrorResponseStruct{
		Error:     message,
		Status:    status,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      errorType,
		Details:   details,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, types.ErrTypeNotFound, "")
}

// NewErrorHandler renders every error returned by a handler.
// Underlying causes are logged, and only returned to the client when exposeDetails is set.
func NewErrorHandler(exposeDetails bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			code      = fiber.StatusInternalServerError
			message   = "Internal server error"
			errorType = types.ErrTypeInternal
			details   = err.Error()
		)

		var fe *fiber.Error
		if ce, ok := types.AsCustomError(err); ok {
			code, message, errorType, details = ce.Code, ce.Message, ce.Type, ce.Details
		} else if errors.As(err, &fe) {
			code, message, details = fe.Code, fe.Message, ""
			errorType = errorTypeForStatus(code)
		}

		if code >= fiber.StatusInternalServerError {
			log.Printf("[%v] %s %s failed: %v", c.Locals(requestid.ConfigDefault.ContextKey), c.Method(), c.OriginalURL(), err)
		}

		if !exposeDetails {
			details = ""
		}

		return ErrorResponse(c, message, code, errorType, details)
	}
}

func errorTypeForStatus(code int) string {
	switch code {
	case fiber.StatusUnauthorized, fiber.StatusForbidden:
		return types.ErrTypeAuth
	case fiber.StatusNotFound:
		return types.ErrTypeNotFound
	case fiber.StatusMethodNotAllowed:
		return types.ErrTypeMethod
	}
	if code < fiber.StatusInternalServerError {
		return types.ErrTypeValidation
	}
	return types.ErrTypeInternal
}
