package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/simple-web-app/pkg/logger"
)

var _ = Describe("Logger", func() {
	ctx := context.Background()

	Describe("New", func() {
		It("should create logger with info level", func() {
			log := logger.New("info", false, "dev")
			Expect(log).NotTo(BeNil())
			Expect(log.Enabled(ctx, slog.LevelInfo)).To(BeTrue())
			Expect(log.Enabled(ctx, slog.LevelDebug)).To(BeFalse())
		})

		It("should default to info for invalid level", func() {
			log := logger.New("invalid", false, "dev")
			Expect(log.Enabled(ctx, slog.LevelInfo)).To(BeTrue())
			Expect(log.Enabled(ctx, slog.LevelDebug)).To(BeFalse())
		})

		It("should respect debug level", func() {
			log := logger.New("debug", false, "dev")
			Expect(log.Enabled(ctx, slog.LevelDebug)).To(BeTrue())
		})

		It("should respect warn level", func() {
			log := logger.New("warn", false, "dev")
			Expect(log.Enabled(ctx, slog.LevelInfo)).To(BeFalse())
			Expect(log.Enabled(ctx, slog.LevelWarn)).To(BeTrue())
		})

		It("should respect error level", func() {
			log := logger.New("ERROR", false, "dev")
			Expect(log.Enabled(ctx, slog.LevelWarn)).To(BeFalse())
			Expect(log.Enabled(ctx, slog.LevelError)).To(BeTrue())
		})
	})

	Describe("NewWithWriter", func() {
		var buf *bytes.Buffer

		BeforeEach(func() {
			buf = &bytes.Buffer{}
		})

		It("should write JSON in prod with the environment attribute", func() {
			log := logger.NewWithWriter(buf, "info", false, "prod")
			log.Info("hello", slog.String("route", "/api/hello"))

			var record map[string]any
			Expect(json.Unmarshal(buf.Bytes(), &record)).To(Succeed())
			Expect(record).To(HaveKeyWithValue("msg", "hello"))
			Expect(record).To(HaveKeyWithValue("environment", "prod"))
			Expect(record).To(HaveKeyWithValue("route", "/api/hello"))
		})

		It("should write text outside prod", func() {
			log := logger.NewWithWriter(buf, "info", false, "staging")
			log.Info("hello")

			Expect(buf.String()).To(ContainSubstring("msg=hello"))
			Expect(buf.String()).To(ContainSubstring("environment=staging"))
		})

		It("should include source when requested", func() {
			log := logger.NewWithWriter(buf, "info", true, "dev")
			log.Info("hello")

			Expect(buf.String()).To(ContainSubstring("source="))
		})
	})

	Describe("Discard", func() {
		It("should drop every level", func() {
			log := logger.Discard()
			Expect(log.Enabled(ctx, slog.LevelError)).To(BeFalse())
		})
	})

	Describe("ParseLevel", func() {
		It("should map names case-insensitively", func() {
			Expect(logger.ParseLevel("Debug")).To(Equal(slog.LevelDebug))
			Expect(logger.ParseLevel("WARN")).To(Equal(slog.LevelWarn))
			Expect(logger.ParseLevel("")).To(Equal(slog.LevelInfo))
		})
	})
})
