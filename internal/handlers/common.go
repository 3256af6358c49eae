// common.go
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
	"github.com/localnerve/shopfloor/internal/types"
)

// parseBody decodes a JSON body into out whatever the Content-Type.
// An empty body leaves out untouched.
func parseBody(c *fiber.Ctx, out interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	if err := c.App().Config().JSONDecoder(body, out); err != nil {
		return types.BadRequest("Invalid request body")
	}
	return nil
}

// queryID reads a required numeric id from the query string
func queryID(c *fiber.Ctx, key string) (uint64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, types.BadRequest(key + " is required")
	}
	id, err := types.ParseID(raw)
	if err != nil {
		return 0, types.BadRequest("Invalid " + key)
	}
	return id, nil
}

// queryFlag reads a boolean query flag, only "true" is true
func queryFlag(c *fiber.Ctx, key string) bool {
	return strings.EqualFold(strings.TrimSpace(c.Query(key)), "true")
}
