package httpapi

import (
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Apolar-scc/Hava-Durumu/internal/locations"
	"github.com/Apolar-scc/Hava-Durumu/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, list *locations.Manager) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		var q weatherQuery
		q.Location = c.Query("location")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// Blocks until the worker (or a fresh cache hit) delivers the
		// single reply for this request.
		report := <-service.RequestWeather(q.Location)
		if report == nil {
			return fiber.NewError(fiber.StatusNotFound, "no weather data for requested location")
		}
		return c.JSON(fiber.Map{
			"location": q.Location,
			"report":   report,
		})
	})

	v1.Get("/locations", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"locations": list.List()})
	})

	v1.Post("/locations", func(c *fiber.Ctx) error {
		var body locationBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := list.Add(body.Name); err != nil {
			if errors.Is(err, locations.ErrExists) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save location list")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"locations": list.List()})
	})

	v1.Delete("/locations/:name", func(c *fiber.Ctx) error {
		name, err := decodeName(c.Params("name"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := list.Remove(name); err != nil {
			if errors.Is(err, locations.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save location list")
		}
		return c.JSON(fiber.Map{"locations": list.List()})
	})

	v1.Get("/stats", func(c *fiber.Ctx) error {
		hits, misses := service.Stats()
		return c.JSON(fiber.Map{
			"cacheHits":   hits,
			"cacheMisses": misses,
		})
	})
}

// weatherQuery holds the query parameter for the current-weather endpoint.
type weatherQuery struct {
	Location string `validate:"required"`
}

// locationBody is the payload for adding a location to the list.
type locationBody struct {
	Name string `json:"name" validate:"required"`
}

// decodeName unescapes the :name path parameter; location names routinely
// carry non-ASCII characters.
func decodeName(raw string) (string, error) {
	name, err := url.PathUnescape(raw)
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", errors.New("name path parameter is required")
	}
	return name, nil
}
