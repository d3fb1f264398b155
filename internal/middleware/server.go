package middleware

import (
	"log/slog"
	"time"

	"givegot_backend/internal/logger"
	"givegot_backend/pkg/apperrors"
	"givegot_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		log := logger.FromContext(c.Request.Context())
		fields := []any{
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Duration("duration", duration),
			slog.Int("size_bytes", c.Writer.Size()),
		}
		if c.Writer.Status() >= 500 {
			log.Error("HTTP Server Error", fields...)
		} else if c.Writer.Status() >= 400 {
			log.Warn("HTTP Client Error", fields...)
		} else {
			log.Info("HTTP Request", fields...)
		}
	}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-User-ID, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// CallerIDMiddleware asserts the caller identity from the X-User-ID header.
// Authenticity of the header is the job of the gateway in front of this
// service; here it only has to be present and well formed.
func CallerIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID := c.GetHeader("X-User-ID")
		if callerID == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Missing X-User-ID header"))
			c.Abort()
			return
		}
		if _, err := uuid.Parse(callerID); err != nil {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("X-User-ID must be a valid UUID"))
			c.Abort()
			return
		}

		c.Set(string(contextkeys.CallerIDContextKey), callerID)
		ctx := logger.WithUserID(c.Request.Context(), callerID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
