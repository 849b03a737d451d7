package listing

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/erazemk/trznica/internal/imaging"
)

// Photo is an accepted upload waiting to be stored.
type Photo struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AttachPhoto checks an uploaded file. Empty data means no photo was chosen.
// A file that is not an image or is too large is dropped under the silent
// policy and reported with ErrPhotoRejected under the loud one.
func (s *Service) AttachPhoto(filename string, data []byte) (*Photo, error) {
	if len(data) == 0 {
		return nil, nil
	}

	ct, err := imaging.Accept(data, s.cfg.MaxPhotoBytes)
	if err != nil {
		s.metrics.PhotoRejected(rejectReason(err))
		if s.cfg.PhotoRejection == PhotoRejectLoud {
			return nil, fmt.Errorf("%w: %w", ErrPhotoRejected, err)
		}
		s.log.Info("photo rejected", "filename", filename, "size", len(data), "error", err)
		return nil, nil
	}
	return &Photo{Filename: filename, ContentType: ct, Data: data}, nil
}

// ObjectKey names an upload as <unix millis>-<base filename>.
func (s *Service) ObjectKey(filename string) string {
	return fmt.Sprintf("%d-%s", s.now().UnixMilli(), baseName(filename))
}

func (s *Service) uploadPhoto(ctx context.Context, p *Photo) (string, error) {
	key := s.ObjectKey(p.Filename)
	if err := s.uploader.UploadObject(ctx, s.cfg.Bucket, key, p.Data, p.ContentType); err != nil {
		s.metrics.PhotoUploaded(false)
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	s.metrics.PhotoUploaded(true)
	return s.uploader.PublicURL(s.cfg.Bucket, key), nil
}

func baseName(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return "photo"
	}
	return name
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, imaging.ErrTooLarge):
		return "too_large"
	case errors.Is(err, imaging.ErrEmpty):
		return "empty"
	default:
		return "not_image"
	}
}
