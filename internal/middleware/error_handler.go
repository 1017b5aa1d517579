package middleware

import (
	"errors"
	"strings"

	"porvenir-web/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorPage is the view rendered for failed HTML requests.
const ErrorPage = "pages/error"

// ErrorLayout wraps ErrorPage.
const ErrorLayout = "layouts/main"

var statusMessages = map[int]string{
	fiber.StatusNotFound:            "No encontramos la página que buscas.",
	fiber.StatusBadRequest:          "La solicitud no es válida.",
	fiber.StatusServiceUnavailable:  "El servicio no está disponible en este momento.",
	fiber.StatusInternalServerError: "Algo salió mal. Intenta nuevamente más tarde.",
}

// wantsJSON is true for the JSON API and the machine-readable health routes.
func wantsJSON(c *fiber.Ctx) bool {
	p := c.Path()
	return strings.HasPrefix(p, "/api/") || p == "/health/json" || p == "/health/errors" || p == "/health/reset"
}

// ErrorHandler is the global error handler. API routes get the standard
// error envelope, pages get the HTML error view.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("trace_id", GetTraceID(c)).Str("path", c.Path()).Msg("request failed")
	}

	if wantsJSON(c) {
		return response.Error(c, message, code, nil)
	}

	friendly, ok := statusMessages[code]
	switch {
	case ok:
	case code >= fiber.StatusInternalServerError:
		friendly = statusMessages[fiber.StatusInternalServerError]
	default:
		friendly = statusMessages[fiber.StatusBadRequest]
	}
	c.Status(code)
	rerr := c.Render(ErrorPage, fiber.Map{
		"Title":   friendly,
		"Code":    code,
		"Message": friendly,
		"TraceID": GetTraceID(c),
	}, ErrorLayout)
	if rerr != nil {
		log.Error().Err(rerr).Msg("render error page")
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(friendly)
	}
	return nil
}
