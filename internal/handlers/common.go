// common.go
//
// Offline-first local data and sync worker for the FieldScope inspection app
// Copyright (c) 2026 FieldScope Software
//
// This file is part of inspection-worker.
// inspection-worker is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// inspection-worker is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with inspection-worker.
// If not, see <https://www.gnu.org/licenses/>.

// Package handlers holds one handler per intercepted client route. Each
// handler reads or mutates the local store and answers with the JSON
// shape the origin API would have produced, so the UI cannot tell the
// difference.
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// pageParam parses the page query parameter; absent or malformed pages
// mean the first page.
func pageParam(c *fiber.Ctx) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 0 {
		return 0
	}
	return page
}
