package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Franquicias-api/internal/platform/metrics"
	"github.com/jhoicas/Franquicias-api/pkg/logger"
)

const (
	// HeaderRequestID se propaga si el cliente lo envía; si no, se genera.
	HeaderRequestID = "X-Request-ID"
	localsLogger    = "logger"
)

// RequestLogger asigna un request id, registra una línea por petición y alimenta las métricas HTTP.
func RequestLogger(base *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(HeaderRequestID, reqID)

		l := base.Zerolog().With().Str("request_id", reqID).Logger()
		c.Locals(localsLogger, &l)

		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		// Las etiquetas viven más que la petición; fasthttp reutiliza los buffers de Method y Path.
		method := utils.CopyString(c.Method())
		route := utils.CopyString(c.Route().Path)
		elapsed := time.Since(start)
		metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())

		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error()
		}
		ev.Str("method", method).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("petición HTTP")
		return nil
	}
}

// requestLogger devuelve el logger de la petición o el global si el middleware no corrió.
func requestLogger(c *fiber.Ctx) *zerolog.Logger {
	if l, ok := c.Locals(localsLogger).(*zerolog.Logger); ok {
		return l
	}
	return &log.Logger
}
