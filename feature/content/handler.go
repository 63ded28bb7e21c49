package content

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"content-store/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HeaderContentSize carries the object length on HEAD responses.
const HeaderContentSize = "X-Content-Size"

// Handler exposes the store over HTTP. Locators travel in the "url" query parameter.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes registers the content routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/content")
	// Head goes first: Get also answers HEAD requests.
	group.Head("/", h.HandleHead)
	group.Get("/", h.HandleGet)
	group.Put("/", h.HandlePut)
	group.Delete("/", h.HandleDelete)
	group.Post("/locator", h.HandleNewLocator)
}

// HandleGet streams the content behind ?url=.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	locator := c.Query("url")
	if locator == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "url is required"})
	}

	r, err := h.store.GetReader(c.Context(), locator)
	if err != nil {
		return h.fail(c, l, err)
	}

	rc, err := r.OpenStream()
	if err != nil {
		_ = r.Close()
		return h.fail(c, l, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	c.Set(fiber.HeaderLastModified, r.LastModified().UTC().Format(http.TimeFormat))
	// fasthttp closes rc once the body is written.
	return c.SendStream(rc, int(r.Size()))
}

// HandleHead reports existence, size and modification time of ?url=.
func (h *Handler) HandleHead(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	locator := c.Query("url")
	if locator == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	r, err := h.store.GetReader(c.Context(), locator)
	if err != nil {
		l.Warn("Content lookup failed", zap.String("url", locator), zap.Error(err))
		return c.SendStatus(statusFor(err))
	}
	defer r.Close()

	if !r.Exists() {
		return c.SendStatus(fiber.StatusNotFound)
	}
	c.Set(HeaderContentSize, strconv.FormatInt(r.Size(), 10))
	c.Set(fiber.HeaderLastModified, r.LastModified().UTC().Format(http.TimeFormat))
	c.Status(fiber.StatusOK)
	return nil
}

// HandlePut stores the request body at ?url=, or at a new locator when url is absent.
func (h *Handler) HandlePut(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	w, err := h.store.GetWriter(c.Context(), nil, c.Query("url"))
	if err != nil {
		return h.fail(c, l, err)
	}

	stream, err := w.OpenWritableStream()
	if err != nil {
		return h.fail(c, l, err)
	}
	if _, err := io.Copy(stream, bytes.NewReader(c.Body())); err != nil {
		return h.fail(c, l, stream.CloseWithError(err))
	}
	if err := stream.Close(); err != nil {
		return h.fail(c, l, err)
	}

	l.Info("Content stored", zap.String("url", w.Locator()), zap.Int64("size", w.Size()))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url":  w.Locator(),
		"key":  w.Key(),
		"size": w.Size(),
	})
}

// HandleDelete deletes the content behind ?url=.
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	locator := c.Query("url")
	if locator == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "url is required"})
	}

	deleted, err := h.store.Delete(c.Context(), locator)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(fiber.Map{"url": locator, "deleted": deleted})
}

// HandleNewLocator returns a fresh locator without writing anything.
func (h *Handler) HandleNewLocator(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"url": h.store.NewLocator()})
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error("Content request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedProtocol), errors.Is(err, ErrInvalidLocator):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrContentUnavailable):
		return fiber.StatusNotFound
	case errors.Is(err, ErrStreamOpened):
		return fiber.StatusConflict
	case errors.Is(err, ErrUploadFailure), errors.Is(err, ErrDeleteFailure):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
