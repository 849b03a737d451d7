// Package listing implements the marketplace operations: browsing a
// category, viewing an item, creating a listing and contacting a seller.
package listing

import (
	"context"
	"log/slog"
	"time"

	"github.com/erazemk/trznica/internal/category"
	"github.com/erazemk/trznica/internal/imaging"
	"github.com/erazemk/trznica/internal/model"
)

// ItemStore reads and writes items.
type ItemStore interface {
	ListItemsByCategory(ctx context.Context, category string) ([]model.Item, error)
	ListRecentItems(ctx context.Context, limit int) ([]model.Item, error)
	GetItem(ctx context.Context, id int64) (*model.Item, error)
	CreateItem(ctx context.Context, in model.NewItem) (*model.Item, error)
}

// MessageStore records contact messages.
type MessageStore interface {
	CreateMessage(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error)
}

// ImageUploader stores photos and resolves their public URLs.
type ImageUploader interface {
	UploadObject(ctx context.Context, bucket, key string, data []byte, contentType string) error
	PublicURL(bucket, key string) string
}

// MessageNotifier is told about every stored contact message.
type MessageNotifier interface {
	MessageCreated(ctx context.Context, msg *model.ContactMessage) error
}

// Recorder receives counters for the operations.
type Recorder interface {
	ListingCreated(withImage bool)
	PhotoUploaded(ok bool)
	PhotoRejected(reason string)
	MessageCreated()
}

// PhotoRejection controls what happens to a photo that fails acceptance.
type PhotoRejection string

// Photo rejection policies.
const (
	// PhotoRejectSilent drops the photo and only logs.
	PhotoRejectSilent PhotoRejection = "silent"
	// PhotoRejectLoud reports ErrPhotoRejected to the caller.
	PhotoRejectLoud PhotoRejection = "loud"
)

// UploadFailure controls what happens when a photo upload fails.
type UploadFailure string

// Upload failure policies.
const (
	// UploadDegrade creates the listing without an image.
	UploadDegrade UploadFailure = "degrade"
	// UploadAbort fails the whole submission with ErrUploadFailed.
	UploadAbort UploadFailure = "abort"
)

// Config holds the service settings.
type Config struct {
	Bucket         string
	MaxPhotoBytes  int64
	PhotoRejection PhotoRejection
	UploadFailure  UploadFailure
	RecentLimit    int
}

// DefaultConfig returns the settings matching the stock marketplace.
func DefaultConfig() Config {
	return Config{
		Bucket:         "posts-images",
		MaxPhotoBytes:  imaging.MaxPhotoBytes,
		PhotoRejection: PhotoRejectSilent,
		UploadFailure:  UploadDegrade,
		RecentLimit:    12,
	}
}

// Service wires the marketplace operations to their stores.
type Service struct {
	categories *category.Registry
	items      ItemStore
	messages   MessageStore
	uploader   ImageUploader
	notifier   MessageNotifier
	metrics    Recorder
	cfg        Config
	now        func() time.Time
	log        *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier sets the contact message notifier.
func WithNotifier(n MessageNotifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.metrics = r }
}

// WithClock overrides the time source used for upload keys.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService returns a Service. Zero-valued Config fields fall back to DefaultConfig.
func NewService(categories *category.Registry, items ItemStore, messages MessageStore, uploader ImageUploader, cfg Config, opts ...Option) *Service {
	def := DefaultConfig()
	if cfg.Bucket == "" {
		cfg.Bucket = def.Bucket
	}
	if cfg.MaxPhotoBytes <= 0 {
		cfg.MaxPhotoBytes = def.MaxPhotoBytes
	}
	if cfg.PhotoRejection == "" {
		cfg.PhotoRejection = def.PhotoRejection
	}
	if cfg.UploadFailure == "" {
		cfg.UploadFailure = def.UploadFailure
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = def.RecentLimit
	}

	s := &Service{
		categories: categories,
		items:      items,
		messages:   messages,
		uploader:   uploader,
		metrics:    nopRecorder{},
		cfg:        cfg,
		now:        time.Now,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Categories returns the registry the service resolves slugs against.
func (s *Service) Categories() *category.Registry {
	return s.categories
}

// Config returns the effective settings.
func (s *Service) Config() Config {
	return s.cfg
}

type nopRecorder struct{}

func (nopRecorder) ListingCreated(bool)  {}
func (nopRecorder) PhotoUploaded(bool)   {}
func (nopRecorder) PhotoRejected(string) {}
func (nopRecorder) MessageCreated()      {}
