package httpapi

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/airport-weather/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the query and collect handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, health *weather.Health) {
	query := app.Group("/query")

	query.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(health.Snapshot(time.Now()))
	})

	query.Get("/weather/:iata/:radius?", func(c *fiber.Ctx) error {
		q, err := parseWeatherQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		readings, err := service.Query(q.IATA, q.Radius)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(readings)
	})

	collect := app.Group("/collect")

	collect.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("ready")
	})

	collect.Post("/weather/:iata", func(c *fiber.Ctx) error {
		var body readingBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid reading payload")
		}
		if err := service.Update(normalizeIATA(c.Params("iata")), body.toReading()); err != nil {
			return toHTTPError(err)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	collect.Get("/airports", func(c *fiber.Ctx) error {
		airports := service.Airports()
		codes := make([]string, 0, len(airports))
		for _, a := range airports {
			codes = append(codes, a.IATA)
		}
		return c.JSON(codes)
	})

	collect.Put("/airports", func(c *fiber.Ctx) error {
		var airports []weather.Airport
		if err := c.BodyParser(&airports); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid airport list")
		}
		if err := service.ReplaceAirports(airports); err != nil {
			return toHTTPError(err)
		}
		return c.JSON(fiber.Map{"loaded": len(airports)})
	})

	collect.Get("/airport/:iata", func(c *fiber.Ctx) error {
		a, err := service.Airport(normalizeIATA(c.Params("iata")))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(a)
	})

	collect.Post("/airport/:iata/:lat/:long", func(c *fiber.Ctx) error {
		a, err := parseAirportParams(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := service.AddAirport(a); err != nil {
			return toHTTPError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	})

	collect.Delete("/airport/:iata", func(c *fiber.Ctx) error {
		if err := service.RemoveAirport(normalizeIATA(c.Params("iata"))); err != nil {
			return toHTTPError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// weatherQuery holds the path parameters of a radius query.
type weatherQuery struct {
	IATA   string  `validate:"required"`
	Radius float64 `validate:"gte=0"`
}

func parseWeatherQuery(c *fiber.Ctx) (weatherQuery, error) {
	q := weatherQuery{IATA: normalizeIATA(c.Params("iata"))}

	// a blank radius means a point query
	if raw := strings.TrimSpace(c.Params("radius")); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, weather.ErrInvalidRadius
		}
		q.Radius = r
	}

	if err := weather.ValidateRadius(q.Radius); err != nil {
		return q, err
	}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func parseAirportParams(c *fiber.Ctx) (weather.Airport, error) {
	lat, err := strconv.ParseFloat(c.Params("lat"), 64)
	if err != nil {
		return weather.Airport{}, errors.New("latitude must be a number")
	}
	lon, err := strconv.ParseFloat(c.Params("long"), 64)
	if err != nil {
		return weather.Airport{}, errors.New("longitude must be a number")
	}
	return weather.Airport{
		IATA: normalizeIATA(c.Params("iata")),
		Lat:  lat,
		Lon:  lon,
	}, nil
}

// readingBody is the collect payload; every field is optional.
type readingBody struct {
	CloudCover    *float64 `json:"cloudCover"`
	Humidity      *float64 `json:"humidity"`
	Pressure      *float64 `json:"pressure"`
	Precipitation *float64 `json:"precipitation"`
	Temperature   *float64 `json:"temperature"`
	Wind          *float64 `json:"wind"`
}

func (b readingBody) toReading() weather.Reading {
	return weather.Reading{
		CloudCover:    b.CloudCover,
		Humidity:      b.Humidity,
		Pressure:      b.Pressure,
		Precipitation: b.Precipitation,
		Temperature:   b.Temperature,
		Wind:          b.Wind,
	}
}

// normalizeIATA copies s because fiber reuses the request buffer behind params.
func normalizeIATA(s string) string {
	return strings.Clone(strings.ToUpper(strings.TrimSpace(s)))
}

// toHTTPError maps core errors to client-visible status codes.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, weather.ErrAirportNotFound), errors.Is(err, weather.ErrUnknownAirport):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, weather.ErrDuplicateKey):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, weather.ErrInvalidRadius),
		errors.Is(err, weather.ErrInvalidAirport),
		errors.Is(err, weather.ErrInvalidReading),
		errors.Is(err, weather.ErrEmptyReading):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
}
