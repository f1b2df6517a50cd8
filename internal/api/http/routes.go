package httpapi

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-reporter/internal/report"
	"github.com/i474232898/weather-reporter/internal/store"
	"github.com/i474232898/weather-reporter/internal/weather"
)

var validate = validator.New()

// Datasets is the registry the handlers read and write.
type Datasets interface {
	Save(ds store.Dataset)
	Get(id string) (store.Dataset, error)
	List() []store.Dataset
	Delete(id string) error
}

// Settings are the defaults handlers fall back to.
type Settings struct {
	Normalize      weather.NormalizeOptions
	StationName    string
	PrimaryField   string
	SecondaryField string
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, datasets Datasets, settings Settings) {
	v1 := app.Group("/api/v1")

	v1.Post("/datasets", func(c *fiber.Ctx) error {
		// query values alias the request buffer fiber reuses
		name := utils.CopyString(strings.TrimSpace(c.Query("name")))
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name query parameter is required")
		}

		table, err := weather.Parse(bytes.NewReader(c.Body()), settings.Normalize)
		if err != nil {
			var unknown *weather.UnknownFieldError
			if errors.As(err, &unknown) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return errorResponse(err)
		}

		ds := store.Dataset{
			ID:       uuid.NewString(),
			Name:     name,
			Source:   "upload",
			LoadedAt: time.Now().UTC(),
			Table:    table,
		}
		view, err := newDatasetView(ds)
		if err != nil {
			return errorResponse(err)
		}
		datasets.Save(ds)
		log.Info().Str("Dataset", ds.ID).Str("Name", name).Int("Records", table.Len()).Msg("weather log uploaded")

		return c.Status(fiber.StatusCreated).JSON(view)
	})

	v1.Get("/datasets", func(c *fiber.Ctx) error {
		all := datasets.List()
		views := make([]datasetView, 0, len(all))
		for _, ds := range all {
			view, err := newDatasetView(ds)
			if err != nil {
				return errorResponse(err)
			}
			views = append(views, view)
		}
		return c.JSON(fiber.Map{"datasets": views})
	})

	v1.Get("/datasets/:id", func(c *fiber.Ctx) error {
		ds, err := datasets.Get(c.Params("id"))
		if err != nil {
			return errorResponse(err)
		}
		view, err := newDatasetView(ds)
		if err != nil {
			return errorResponse(err)
		}
		return c.JSON(view)
	})

	v1.Delete("/datasets/:id", func(c *fiber.Ctx) error {
		if err := datasets.Delete(c.Params("id")); err != nil {
			return errorResponse(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/datasets/:id/periods", func(c *fiber.Ctx) error {
		ds, sess, err := browse(c, datasets, settings)
		if err != nil {
			return err
		}
		periods := sess.Boundaries()
		if periods == nil {
			periods = []weather.Boundary{}
		}
		return c.JSON(fiber.Map{
			"dataset":   ds.ID,
			"frequency": sess.Frequency(),
			"duration":  sess.Duration(),
			"periods":   periods,
		})
	})

	v1.Get("/datasets/:id/chart", func(c *fiber.Ctx) error {
		ds, sess, err := browse(c, datasets, settings)
		if err != nil {
			return err
		}
		q := selectionFromCtx(c, settings)
		bundle, err := sess.Chart(q.Primary, q.Secondary)
		if err != nil {
			return errorResponse(err)
		}
		period, _ := sess.Period()
		return c.JSON(fiber.Map{
			"dataset": ds.ID,
			"title":   title(settings, sess),
			"period":  period,
			"chart":   bundle,
		})
	})

	v1.Get("/datasets/:id/report", func(c *fiber.Ctx) error {
		_, sess, err := browse(c, datasets, settings)
		if err != nil {
			return err
		}
		q := selectionFromCtx(c, settings)
		bundle, err := sess.Chart(q.Primary, q.Secondary)
		if err != nil {
			return errorResponse(err)
		}

		var buf bytes.Buffer
		if err := report.Write(&buf, title(settings, sess), bundle); err != nil {
			return errorResponse(err)
		}
		c.Type("txt", "utf-8")
		return c.Send(buf.Bytes())
	})
}

// selectionQuery holds the query parameters choosing what to chart.
type selectionQuery struct {
	Frequency string `validate:"required,oneof=hourly daily weekly monthly"`
	Duration  string `validate:"required,oneof=day week month year"`
	Period    int    `validate:"min=0"`
	Primary   string `validate:"required"`
	Secondary string `validate:"required"`
}

func selectionFromCtx(c *fiber.Ctx, settings Settings) selectionQuery {
	return selectionQuery{
		Frequency: c.Query("frequency", string(weather.Hourly)),
		Duration:  c.Query("duration", string(weather.Day)),
		Primary:   c.Query("primary", settings.PrimaryField),
		Secondary: c.Query("secondary", settings.SecondaryField),
	}
}

func (q *selectionQuery) bind(c *fiber.Ctx, settings Settings) error {
	*q = selectionFromCtx(c, settings)

	if s := c.Query("period"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return errors.New("period must be an integer")
		}
		q.Period = n
	}

	return validate.Struct(q)
}

// browse loads the dataset named in the path and runs the selection chain on
// its original table.
func browse(c *fiber.Ctx, datasets Datasets, settings Settings) (store.Dataset, *weather.Session, error) {
	var q selectionQuery
	if err := q.bind(c, settings); err != nil {
		return store.Dataset{}, nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ds, err := datasets.Get(c.Params("id"))
	if err != nil {
		return store.Dataset{}, nil, errorResponse(err)
	}

	sess, err := weather.Browse(ds.Table, weather.Frequency(q.Frequency), weather.Duration(q.Duration), q.Period)
	if err != nil {
		return store.Dataset{}, nil, errorResponse(err)
	}
	return ds, sess, nil
}

func title(settings Settings, sess *weather.Session) string {
	freq, dur, period := sess.Labels()
	return report.Title(settings.StationName, freq, dur, period)
}

// errorResponse maps engine and store errors to HTTP errors.
func errorResponse(err error) error {
	var (
		malformed  *weather.MalformedInputError
		conflict   *weather.SchemaConflictError
		outOfRange *weather.IndexOutOfRangeError
		unknown    *weather.UnknownFieldError
		empty      *weather.EmptyWindowError
	)

	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "no weather dataset for requested id")
	case errors.As(err, &malformed), errors.As(err, &conflict):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &outOfRange), errors.As(err, &unknown):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &empty):
		return fiber.NewError(fiber.StatusNotFound, "no records in selected period")
	}

	log.Error().Err(err).Msg("weather request failed")
	return fiber.NewError(fiber.StatusInternalServerError, "failed to process weather data")
}
