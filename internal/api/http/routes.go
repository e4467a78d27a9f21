package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/bastanley1211/fertilitytracker/internal/cycle"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *cycle.Service) {
	v1 := app.Group("/api/v1")

	v1.Post("/readings", func(c *fiber.Ctx) error {
		var req readingRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := service.Upsert(req.toReading()); err != nil {
			var verr *cycle.ValidationError
			if errors.As(err, &verr) {
				return fiber.NewError(fiber.StatusBadRequest, verr.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to store reading")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"date": req.Date})
	})

	v1.Get("/readings", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"readings": service.Readings()})
	})

	v1.Get("/snapshot", func(c *fiber.Ctx) error {
		return c.JSON(service.Snapshot())
	})

	v1.Post("/import", func(c *fiber.Ctx) error {
		inserted, err := service.ImportCSV(string(c.Body()))
		if err != nil {
			switch {
			case errors.Is(err, cycle.ErrMissingColumns):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			case errors.Is(err, cycle.ErrEmptyImport):
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to import readings")
		}

		return c.JSON(fiber.Map{"imported": inserted})
	})

	v1.Get("/export", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		return c.SendString(service.ExportCSV())
	})

	v1.Get("/fertile", func(c *fiber.Ctx) error {
		date := c.Query("date")
		if date == "" {
			return fiber.NewError(fiber.StatusBadRequest, "date query parameter is required")
		}

		fertile, err := service.IsInFertileWindow(date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{"date": date, "fertile": fertile})
	})
}

// readingRequest holds the JSON body of a direct-entry upsert.
type readingRequest struct {
	Date          string  `json:"date" validate:"required"`
	Temperature   float64 `json:"temperature" validate:"required,gte=95,lte=105"`
	CervixHeight  *string `json:"cervixHeight"`
	OvulationTest bool    `json:"ovulationTest"`
}

func (r readingRequest) toReading() cycle.Reading {
	reading := cycle.Reading{
		Date:          r.Date,
		Temperature:   r.Temperature,
		OvulationTest: r.OvulationTest,
	}
	if r.CervixHeight != nil {
		h := cycle.CervixHeight(*r.CervixHeight)
		reading.CervixHeight = &h
	}
	return reading
}
