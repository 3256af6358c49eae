// files.go
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

package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopfloor/internal/services"
	"github.com/localnerve/shopfloor/internal/storage"
	"github.com/localnerve/shopfloor/internal/types"
	"github.com/localnerve/shopfloor/internal/utils"
	"gorm.io/gorm"
)

// FilesHandler handles order file routes
type FilesHandler struct {
	DB    *gorm.DB
	Store storage.Store
}

// FilesResponse wraps a file listing
type FilesResponse struct {
	Files []services.FileResult `json:"files"`
}

// Handle dispatches /api/files on method
func (h *FilesHandler) Handle(c *fiber.Ctx) error {
	switch c.Method() {
	case fiber.MethodPost:
		return h.Upload(c)
	case fiber.MethodGet:
		return h.List(c)
	case fiber.MethodDelete:
		return h.Delete(c)
	}
	return types.MethodNotAllowed()
}

// Upload handles POST /api/files
// @Summary Upload an order file
// @Description Uploads base64 content to file storage and records it against the order
// @Tags Files
// @Accept json
// @Produce json
// @Param X-Auth-Token header string true "Session token"
// @Param body body services.FileInput true "File"
// @Success 201 {object} services.FileResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /files [post]
func (h *FilesHandler) Upload(c *fiber.Ctx) error {
	var input services.FileInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	result, err := services.CreateFile(c.UserContext(), h.DB, h.Store, input)
	if err != nil {
		return wrapError(err)
	}
	return utils.SuccessResponse(c, result, fiber.StatusCreated)
}

// List handles GET /api/files
// @Summary List order files
// @Description Files of one order, or the latest 100 files
// @Tags Files
// @Produce json
// @Param X-Auth-Token header string true "Session token"
// @Param orderId query string false "Order id"
// @Success 200 {object} handlers.FilesResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /files [get]
func (h *FilesHandler) List(c *fiber.Ctx) error {
	var orderID uint64
	if strings.TrimSpace(c.Query("orderId")) != "" {
		id, err := queryID(c, "orderId")
		if err != nil {
			return err
		}
		orderID = id
	}

	files, err := services.ListFiles(c.UserContext(), h.DB, orderID)
	if err != nil {
		return types.Internal(err)
	}
	return utils.SuccessResponse(c, FilesResponse{Files: files}, fiber.StatusOK)
}

// Delete handles DELETE /api/files?id=
// @Summary Delete an order file record
// @Tags Files
// @Produce json
// @Param X-Auth-Token header string true "Session token"
// @Param id query string true "File id"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /files [delete]
func (h *FilesHandler) Delete(c *fiber.Ctx) error {
	id, err := queryID(c, "id")
	if err != nil {
		return err
	}

	if err := services.DeleteFile(c.UserContext(), h.DB, id); err != nil {
		return wrapError(err)
	}
	return utils.SuccessResponse(c, utils.MessageResponseStruct{Message: "File deleted successfully"}, fiber.StatusOK)
}
