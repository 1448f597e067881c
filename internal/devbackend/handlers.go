package devbackend

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/models"
)

// New builds the fiber app serving the /api/v1 contract from store.
func New(store *Store) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(models.Health{Status: "healthy", Version: store.Version()})
	})
	Register(app, store)
	return app
}

func Register(app *fiber.App, store *Store) {
	g := app.Group("/api/v1")

	g.Get("/equipment", func(c *fiber.Ctx) error {
		return c.JSON(store.Equipment())
	})
	g.Get("/equipment/status/:status", func(c *fiber.Ctx) error {
		st := models.EquipmentStatus(c.Params("status"))
		if !st.Valid() {
			return detail(c, fiber.StatusUnprocessableEntity, "Invalid equipment status: "+string(st))
		}
		return c.JSON(store.EquipmentByStatus(st))
	})
	g.Get("/equipment/:id", func(c *fiber.Ctx) error {
		e, ok := store.EquipmentByID(c.Params("id"))
		if !ok {
			return detail(c, fiber.StatusNotFound, "Equipment not found")
		}
		return c.JSON(e)
	})
	g.Get("/equipment/:id/alerts", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, ok := store.EquipmentByID(id); !ok {
			return detail(c, fiber.StatusNotFound, "Equipment not found")
		}
		resolved, err := resolvedQuery(c)
		if err != nil {
			return detail(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		return c.JSON(store.Alerts(id, resolved))
	})
	g.Get("/equipment/:id/maintenance", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, ok := store.EquipmentByID(id); !ok {
			return detail(c, fiber.StatusNotFound, "Equipment not found")
		}
		limit := c.QueryInt("limit", 10)
		if limit < 1 || limit > 100 {
			return detail(c, fiber.StatusUnprocessableEntity, "limit must be between 1 and 100")
		}
		return c.JSON(store.Maintenance(id, limit))
	})

	g.Get("/dashboard/executive", func(c *fiber.Ctx) error {
		return c.JSON(store.Executive())
	})
	g.Get("/dashboard/operator", func(c *fiber.Ctx) error {
		return c.JSON(store.Operator())
	})
	g.Get("/dashboard/alerts", func(c *fiber.Ctx) error {
		resolved, err := resolvedQuery(c)
		if err != nil {
			return detail(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		return c.JSON(store.Alerts("", resolved))
	})
	g.Patch("/dashboard/alerts/:id/resolve", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !store.Resolve(id) {
			return detail(c, fiber.StatusNotFound, "Alert not found")
		}
		return c.JSON(models.ResolveResult{Message: "Alert resolved successfully", AlertID: id})
	})

	g.Post("/ai/query", func(c *fiber.Ctx) error {
		var req models.QueryRequest
		if err := c.BodyParser(&req); err != nil {
			return detail(c, fiber.StatusUnprocessableEntity, "invalid request body")
		}
		if strings.TrimSpace(req.Query) == "" {
			return detail(c, fiber.StatusUnprocessableEntity, "query must not be empty")
		}
		return c.JSON(store.Answer(req))
	})
	g.Get("/ai/health", func(c *fiber.Ctx) error {
		return c.JSON(store.AIHealth())
	})
}

func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

func resolvedQuery(c *fiber.Ctx) (*bool, error) {
	raw := c.Query("resolved")
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "resolved must be a boolean")
	}
	return &v, nil
}
