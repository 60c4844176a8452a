package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"imgconv/internal/converter"
	"imgconv/internal/model"
	"imgconv/internal/render"
	"imgconv/internal/storage"
	"imgconv/internal/upload"
)

// Messages shown on the error page.
const (
	MsgConversionFailed = "Image conversion failed"
	MsgInternalError    = "Internal server error"
	msgSaveFailedPrefix = "Failed to save file: "
)

// Placeholder keys of the result and error templates.
const (
	KeyOriginalFilename  = "original_filename"
	KeyConvertedFilename = "converted_filename"
	KeyMessage           = "message"
)

// ImageService runs the upload pipeline.
type ImageService interface {
	// Process validates the image field of form, stores it, converts it to
	// grayscale and returns the rendered page. It always returns a complete
	// HTML document: every failure, including a panic, becomes the error page.
	Process(ctx context.Context, form *multipart.Form) string
}

// Option customizes the image service.
type Option func(*imageService)

// WithMetrics records pipeline outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(s *imageService) { s.metrics = m }
}

// WithConvertTimeout bounds each conversion. Zero means no timeout.
func WithConvertTimeout(d time.Duration) Option {
	return func(s *imageService) { s.convertTimeout = d }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *imageService) {
		if t != nil {
			s.tracer = t
		}
	}
}

// imageService is a concrete implementation of ImageService.
type imageService struct {
	layout         storage.Layout
	store          storage.Store
	backend        converter.Backend
	policy         *bluemonday.Policy
	metrics        *Metrics
	convertTimeout time.Duration
	tracer         trace.Tracer
}

// NewImageService constructs a new ImageService.
func NewImageService(layout storage.Layout, store storage.Store, backend converter.Backend, opts ...Option) ImageService {
	s := &imageService{
		layout:  layout,
		store:   store,
		backend: backend,
		policy:  bluemonday.StrictPolicy(),
		tracer:  otel.Tracer("imgconv/internal/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *imageService) Process(ctx context.Context, form *multipart.Form) (page string) {
	ctx, span := s.tracer.Start(ctx, "image.process")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Unexpected error", "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			span.SetStatus(codes.Error, MsgInternalError)
			s.metrics.observeOutcome(OutcomeInternal)
			page = s.errorPage(MsgInternalError)
		}
	}()

	contentType, err := upload.Validate(form)
	if err != nil {
		span.SetAttributes(attribute.String("image.outcome", OutcomeValidation))
		s.metrics.observeOutcome(OutcomeValidation)
		return s.errorPage(err.Error())
	}
	span.SetAttributes(attribute.String("image.content_type", contentType))

	stored, err := s.save(ctx, upload.File(form), contentType)
	if err != nil {
		slog.Error("Failed to save file", "error", err.Error())
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage")
		s.metrics.observeOutcome(OutcomeStorage)
		return s.errorPage(msgSaveFailedPrefix + storageCause(err))
	}
	span.SetAttributes(attribute.String("image.name", stored.Name), attribute.Int64("image.size", stored.Size))
	s.metrics.observeStored(stored.Size)

	converted := model.ConvertedFile{Name: stored.Name, Path: s.layout.ConvertedPath(stored.Name)}
	if err := s.convert(ctx, stored, converted); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "conversion")
		s.metrics.observeOutcome(OutcomeConversion)
		return s.errorPage(MsgConversionFailed)
	}

	s.metrics.observeOutcome(OutcomeSuccess)
	return render.Render(s.layout.ResultTemplate, model.TemplateContext{
		{Key: KeyOriginalFilename, Value: stored.Name},
		{Key: KeyConvertedFilename, Value: converted.Name},
	})
}

func (s *imageService) save(ctx context.Context, fh *multipart.FileHeader, contentType string) (model.StoredFile, error) {
	ctx, span := s.tracer.Start(ctx, "image.store")
	defer span.End()

	if fh == nil {
		return model.StoredFile{}, fmt.Errorf("%w: upload disappeared after validation", model.ErrInternal)
	}
	f, err := fh.Open()
	if err != nil {
		return model.StoredFile{}, fmt.Errorf("%w: open upload: %w", model.ErrStorage, err)
	}
	defer f.Close()

	return s.store.Save(ctx, f, contentType)
}

// convert removes whatever the backend left at the output path on failure.
func (s *imageService) convert(ctx context.Context, in model.StoredFile, out model.ConvertedFile) error {
	ctx, span := s.tracer.Start(ctx, "image.convert",
		trace.WithAttributes(attribute.String("image.input", in.Path), attribute.String("image.output", out.Path)))
	defer span.End()

	if s.convertTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.convertTimeout)
		defer cancel()
	}

	start := time.Now()
	ok, err := converter.ConvertToGrayscale(ctx, s.backend, in.Path, out.Path)
	s.metrics.observeConversion(time.Since(start).Seconds())
	if !ok {
		_ = os.Remove(out.Path)
		return err
	}
	return nil
}

// storageCause drops the ErrStorage classification so the page shows only
// the underlying I/O error.
func storageCause(err error) string {
	return strings.TrimPrefix(err.Error(), model.ErrStorage.Error()+": ")
}

func (s *imageService) errorPage(message string) string {
	return render.Render(s.layout.ErrorTemplate, model.TemplateContext{
		{Key: KeyMessage, Value: s.policy.Sanitize(message)},
	})
}
