// Package server exposes the reconciliation over HTTP.
package server

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/recon"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// BodyLimit caps the size of an upload, the three files included.
const BodyLimit = 32 << 20

// New returns the API application. Requests are logged to logOutput unless it
// is nil.
func New(logOutput io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "rcs",
		BodyLimit:             BodyLimit,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	if logOutput != nil {
		app.Use(logger.New(logger.Config{Output: logOutput}))
	}
	app.Use(cors.New(cors.Config{AllowMethods: "GET,POST,OPTIONS"}))

	api := app.Group("/api")
	api.Get("/health", HandleHealth)
	api.Get("/demo", HandleDemo)
	api.Post("/reconcile", HandleReconcile)
	return app
}

// ReconcileResponse is the JSON body of a successful reconciliation.
type ReconcileResponse struct {
	Report   recon.Report `json:"report"`
	Warnings []string     `json:"warnings,omitempty"`
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error    string            `json:"error,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"` // per source key
	Warnings []string          `json:"warnings,omitempty"`
}

// HandleHealth reports that the server is up.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleDemo reconciles the built-in data set.
func HandleDemo(c *fiber.Ctx) error {
	f, err := filterOf(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}
	return respond(c, recon.Demo().Filtered(f), nil)
}

// HandleReconcile reconciles the three uploaded source files.
func HandleReconcile(c *fiber.Ctx) error {
	f, err := filterOf(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	w := recon.NewWorkspace()
	var warnings []string
	errs := map[string]string{}
	for _, id := range recon.Sources {
		key := id.Key()
		d, err := recon.ParseDelimiter(c.FormValue(key + "_delimiter"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: fmt.Sprintf("%s: %v", key, err)})
		}
		forced := c.FormValue(key + "_format")
		format, err := recon.ParseFormat(forced)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: fmt.Sprintf("%s: %v", key, err)})
		}
		w = w.WithDelimiter(id, d)

		fh, err := c.FormFile(key)
		if err != nil {
			continue // reported as missing by Reconcile
		}
		if forced == "" {
			format = recon.FormatOf(fh.Filename)
		}
		file, err := fh.Open()
		if err != nil {
			w, err = w.Fail(id, err)
			errs[key] = err.Error()
			continue
		}
		identity := recon.FileIdentity{Name: fh.Filename, Size: fh.Size}
		var warn *recon.DuplicateWarning
		if format == recon.JSON {
			w, warn, err = w.SelectJSON(id, identity, file, c.FormValue(key+"_jsonpath"))
		} else {
			w, warn, err = w.Select(id, identity, file)
		}
		file.Close()
		if warn != nil {
			warnings = append(warnings, warn.Error())
		}
		if err != nil {
			errs[key] = err.Error()
		}
	}
	if len(errs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Errors: errs, Warnings: warnings})
	}

	report, err := w.Reconcile()
	var perr *recon.PreconditionError
	if errors.As(err, &perr) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: perr.Error(), Warnings: warnings})
	}
	if err != nil {
		return err
	}
	return respond(c, report.Filtered(f), warnings)
}

func filterOf(c *fiber.Ctx) (recon.Filter, error) {
	t, err := recon.ParseTypeFilter(c.Query("type"))
	if err != nil {
		return recon.Filter{}, err
	}
	return recon.Filter{Type: t, TradeID: c.Query("id")}, nil
}

// respond writes the report in the format asked by the query.
func respond(c *fiber.Ctx, report recon.Report, warnings []string) error {
	switch strings.ToLower(c.Query("format", "json")) {
	case "csv":
		c.Attachment(recon.ExportFilename)
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		if len(warnings) > 0 {
			c.Set("X-Reconciliation-Warnings", strings.Join(warnings, " "))
		}
		return recon.WriteCSV(c, report.Breaks)
	case "json":
		return c.JSON(ReconcileResponse{Report: report, Warnings: warnings})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: fmt.Sprintf("unknown format %q, want csv or json", c.Query("format"))})
	}
}
