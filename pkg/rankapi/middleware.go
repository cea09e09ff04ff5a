package rankapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

// ZstdMiddleware decompresses zstd request bodies and compresses responses
// for clients that accept zstd. Decompressed bodies larger than bodyLimit
// are rejected with 413; bodyLimit <= 0 uses DefaultBodyLimit.
func ZstdMiddleware(whitelistedRoutes []string, bodyLimit int) fiber.Handler {
	if bodyLimit <= 0 {
		bodyLimit = DefaultBodyLimit
	}

	if whitelistedRoutes == nil {
		whitelistedRoutes = []string{HealthRoute}
		log.Debug().
			Any("default", whitelistedRoutes).
			Msg("Whitelisted routes not specified, using default whitelist")
	}

	return func(c *fiber.Ctx) error {
		path := c.Path()

		for _, route := range whitelistedRoutes {
			if path == route {
				return c.Next()
			}
		}

		if strings.ToLower(c.Get(fiber.HeaderContentEncoding)) == "zstd" {
			body := c.Body()
			if len(body) > 0 {
				decoder, err := zstd.NewReader(bytes.NewReader(body),
					zstd.WithDecoderMaxMemory(uint64(bodyLimit)),
					zstd.WithDecoderConcurrency(1),
				)
				if err != nil {
					log.Err(err).Msg("Failed to create zstd decoder")
					return c.Status(fiber.StatusBadRequest).JSON(
						createResponse(
							map[string]interface{}{},
							fmt.Errorf("failed to decompress zstd data: %w", err),
						))
				}
				defer decoder.Close()

				decompressed, err := io.ReadAll(io.LimitReader(decoder, int64(bodyLimit)+1))
				tooLarge := errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded)
				if tooLarge || (err == nil && len(decompressed) > bodyLimit) {
					log.Warn().
						Int("body_limit", bodyLimit).
						Str("path", path).
						Msg("Decompressed request exceeds body limit")
					return c.Status(fiber.StatusRequestEntityTooLarge).JSON(
						createResponse(
							map[string]interface{}{},
							fmt.Errorf("decompressed body exceeds %d bytes", bodyLimit),
						))
				}
				if err != nil {
					log.Err(err).Msg("Failed to decompress request")
					return c.Status(fiber.StatusBadRequest).JSON(
						createResponse(
							map[string]interface{}{},
							fmt.Errorf("failed to decompress zstd data: %w", err),
						))
				}

				c.Request().SetBody(decompressed)
				c.Request().Header.Del(fiber.HeaderContentEncoding)
				log.Debug().Msg("Request body decompressed")
			}
		}

		if err := c.Next(); err != nil {
			return err
		}

		if acceptsZstd(c) {
			responseBody := c.Response().Body()
			if len(responseBody) > 0 {
				encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
				if err != nil {
					log.Err(err).Msg("Failed to create zstd encoder")
					return nil // Continue without compression
				}
				defer encoder.Close()

				compressed := encoder.EncodeAll(responseBody, nil)
				c.Response().SetBody(compressed)
				c.Set(fiber.HeaderContentEncoding, "zstd")

				log.Debug().
					Int("original_size", len(responseBody)).
					Int("compressed_size", len(compressed)).
					Msg("Response body compressed")
			}
		}

		return nil
	}
}
