package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"MockECommerce/pkg/correlation"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxBody = 8 * 1024

// Health and scrape endpoints are not access-logged.
var quietPrefixes = []string{"/health/", "/metrics"}

func limit(b []byte) []byte {
	if len(b) > maxBody {
		return b[:maxBody]
	}
	return b
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// CorrelationMiddleware reuses the caller's X-Correlation-ID or generates
// one, stores it in the request context and echoes it in the response.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		corrID := c.GetHeader(correlation.HeaderName)
		if corrID == "" {
			corrID = correlation.NewID()
		}

		c.Request = c.Request.WithContext(correlation.WithID(c.Request.Context(), corrID))
		c.Header(correlation.HeaderName, corrID)

		c.Next()
	}
}

// GinBodyLogger writes one access log line per request. Bodies are only
// attached to failed requests.
func (l *Logger) GinBodyLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range quietPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		start := time.Now()

		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		responseBuffer := &bytes.Buffer{}
		c.Writer = &responseBodyWriter{body: responseBuffer, ResponseWriter: c.Writer}

		c.Next()

		status := c.Writer.Status()
		logEvent := l.logger.Info()
		if status >= 500 {
			logEvent = l.logger.Error()
		}
		logEvent = withCorrelation(c.Request.Context(), logEvent).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("route", c.FullPath()).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Dur("latency", time.Since(start))

		if status >= 400 {
			logEvent = addMaybeJSON(logEvent, "request_body", limit(requestBody))
			logEvent = addMaybeJSON(logEvent, "response_body", limit(responseBuffer.Bytes()))
		}

		logEvent.Msg("HTTP Request")
	}
}

func addMaybeJSON(e *zerolog.Event, key string, b []byte) *zerolog.Event {
	bb := bytes.TrimSpace(b)
	if len(bb) == 0 {
		return e.RawJSON(key, []byte("null"))
	}
	if json.Valid(bb) {
		return e.RawJSON(key, bb)
	}
	// Non-JSON goes in as a string so the log line stays valid JSON.
	return e.Str(key, string(bb))
}
