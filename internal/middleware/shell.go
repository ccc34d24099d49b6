// shell.go
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

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"

	"github.com/fieldscope/inspection-worker/data"
	"github.com/fieldscope/inspection-worker/internal/config"
)

// Passthrough is the terminal route. Navigation requests get the embedded
// app shell so the app keeps loading offline. Everything else is proxied
// to the origin, with a 503 when it cannot be reached.
func Passthrough(cfg *config.Config) fiber.Handler {
	origin := strings.TrimSuffix(cfg.OriginURL, "/")

	return func(c *fiber.Ctx) error {
		if isNavigation(c, cfg.APIBasePath) {
			c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
			return c.Status(fiber.StatusOK).SendString(data.AppShell)
		}

		if err := proxy.Do(c, origin+c.OriginalURL()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"message": "No Internet Connection",
			})
		}
		// The origin sets its own framing headers.
		c.Response().Header.Del(fiber.HeaderServer)
		return nil
	}
}

// isNavigation mirrors the service-worker allowlist: page loads fall back
// to the shell, API calls never do.
func isNavigation(c *fiber.Ctx, apiBasePath string) bool {
	if c.Method() != fiber.MethodGet {
		return false
	}
	if strings.HasPrefix(c.Path(), apiBasePath) {
		return false
	}
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMETextHTML)
}
