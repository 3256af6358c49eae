// production.go
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
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopfloor/internal/services"
	"github.com/localnerve/shopfloor/internal/types"
	"github.com/localnerve/shopfloor/internal/utils"
	"gorm.io/gorm"
)

// Production actions
const (
	ActionSettings = "settings"
	ActionTasks    = "tasks"
)

// ProductionHandler handles production scheduling routes
type ProductionHandler struct {
	DB *gorm.DB
}

// IDResponse is returned on task creation
type IDResponse struct {
	ID string `json:"id"`
}

// Handle dispatches /api/production on method and ?action=
// @Summary Production scheduling
// @Description Settings and task operations selected by method and action. PUT tasks requires id.
// @Tags Production
// @Accept json
// @Produce json
// @Param action query string true "settings or tasks"
// @Param id query string false "Task id (PUT tasks)"
// @Param archived query bool false "Archived filter (GET tasks)"
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} handlers.IDResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /production [get]
// @Router /production [post]
// @Router /production [put]
func (h *ProductionHandler) Handle(c *fiber.Ctx) error {
	action := c.Query("action")

	switch {
	case c.Method() == fiber.MethodGet && action == ActionSettings:
		return h.getSettings(c)
	case c.Method() == fiber.MethodPut && action == ActionSettings:
		return h.updateSettings(c)
	case c.Method() == fiber.MethodGet && action == ActionTasks:
		return h.listTasks(c)
	case c.Method() == fiber.MethodPost && action == ActionTasks:
		return h.createTask(c)
	case c.Method() == fiber.MethodPut && action == ActionTasks && c.Query("id") != "":
		return h.updateTask(c)
	}

	return types.NotFound("Not found")
}

func (h *ProductionHandler) getSettings(c *fiber.Ctx) error {
	result, err := services.GetSettings(c.UserContext(), h.DB)
	if err != nil {
		return types.Internal(err)
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

func (h *ProductionHandler) updateSettings(c *fiber.Ctx) error {
	var input services.SettingsInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	if err := services.UpdateSettings(c.UserContext(), h.DB, input); err != nil {
		return types.Internal(err)
	}
	return utils.MutationSuccessResponse(c)
}

func (h *ProductionHandler) listTasks(c *fiber.Ctx) error {
	tasks, err := services.ListTasks(c.UserContext(), h.DB, queryFlag(c, "archived"))
	if err != nil {
		return types.Internal(err)
	}
	return utils.SuccessResponse(c, tasks, fiber.StatusOK)
}

func (h *ProductionHandler) createTask(c *fiber.Ctx) error {
	var input services.TaskInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	id, err := services.CreateTask(c.UserContext(), h.DB, input)
	if err != nil {
		return wrapError(err)
	}
	return utils.SuccessResponse(c, IDResponse{ID: strconv.FormatUint(id, 10)}, fiber.StatusCreated)
}

func (h *ProductionHandler) updateTask(c *fiber.Ctx) error {
	id, err := queryID(c, "id")
	if err != nil {
		return err
	}

	var input services.TaskInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	if err := services.UpdateTask(c.UserContext(), h.DB, id, input); err != nil {
		return wrapError(err)
	}
	return utils.MutationSuccessResponse(c)
}

// wrapError keeps classified errors and turns everything else into an internal error
func wrapError(err error) error {
	if _, ok := types.AsCustomError(err); ok {
		return err
	}
	return types.Internal(err)
}
