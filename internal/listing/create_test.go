package listing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
		field  string
		msg    string
	}{
		{"title", func(d *Draft) { d.Title = "  " }, "title", MsgRequiredFields},
		{"category", func(d *Draft) { d.Category = "" }, "category", MsgRequiredFields},
		{"price", func(d *Draft) { d.Price = "" }, "price", MsgRequiredFields},
		{"email", func(d *Draft) { d.Email = "" }, "email", MsgRequiredFields},
		{"negative price", func(d *Draft) { d.Price = "-5" }, "price", MsgInvalidPrice},
		{"word price", func(d *Draft) { d.Price = "cheap" }, "price", MsgInvalidPrice},
		{"exponent price", func(d *Draft) { d.Price = "1e3" }, "price", MsgInvalidPrice},
		{"bad email", func(d *Draft) { d.Email = "not-an-email" }, "email", MsgInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)

			verr, ok := AsValidation(d.Validate())
			require.True(t, ok)
			assert.Equal(t, tt.msg, verr.Message)
			assert.True(t, verr.Has(tt.field))
		})
	}
}

func TestValidateOptionalFields(t *testing.T) {
	d := validDraft()
	d.Location = ""
	d.Description = ""
	assert.NoError(t, d.Validate())
}

func TestParsePrice(t *testing.T) {
	for in, want := range map[string]string{"120": "120", "120.00": "120", "19.99": "19.99", "0": "0", ".5": "0.5", " 7 ": "7"} {
		got, err := ParsePrice(in)
		require.NoError(t, err, in)
		assert.True(t, decimal.RequireFromString(want).Equal(got), "%q parsed as %s", in, got)
	}
}

func TestCreateInvalidDraftWritesNothing(t *testing.T) {
	h := newHarness(t, Config{})
	d := validDraft()
	d.Title = ""
	photo := &Photo{Filename: "bike.png", ContentType: "image/png", Data: pngBytes(t, 4, 4)}

	_, err := h.svc.Create(context.Background(), d, photo)
	_, ok := AsValidation(err)
	assert.True(t, ok)
	assert.Empty(t, h.uploader.uploads)
	assert.Empty(t, h.items.created)
}

func TestCreateUnknownCategory(t *testing.T) {
	h := newHarness(t, Config{})
	d := validDraft()
	d.Category = "spaceships"

	_, err := h.svc.Create(context.Background(), d, nil)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	verr, ok := AsValidation(err)
	require.True(t, ok)
	assert.True(t, verr.Has("category"))
	assert.Empty(t, h.items.created)
}

func TestCreateWithoutPhoto(t *testing.T) {
	h := newHarness(t, Config{})

	item, err := h.svc.Create(context.Background(), validDraft(), nil)
	require.NoError(t, err)
	assert.Nil(t, item.Image)
	assert.Empty(t, h.uploader.uploads)

	require.Len(t, h.items.created, 1)
	in := h.items.created[0]
	assert.Equal(t, "Bikes", in.Category)
	assert.True(t, decimal.NewFromInt(120).Equal(in.Price))
	assert.Equal(t, "seller@example.com", in.ContactEmail)
	assert.Equal(t, 1, h.metrics.listings)
	assert.Zero(t, h.metrics.withImage)
}

func TestCreateBlankOptionalFieldsStoredAsNull(t *testing.T) {
	h := newHarness(t, Config{})
	d := validDraft()
	d.Location = "   "
	d.Description = ""

	_, err := h.svc.Create(context.Background(), d, nil)
	require.NoError(t, err)
	assert.Nil(t, h.items.created[0].Location)
	assert.Nil(t, h.items.created[0].Description)
}

func TestCreateWithPhoto(t *testing.T) {
	h := newHarness(t, Config{})
	photo := &Photo{Filename: `C:\fakepath\bike.png`, ContentType: "image/png", Data: pngBytes(t, 4, 4)}

	item, err := h.svc.Create(context.Background(), validDraft(), photo)
	require.NoError(t, err)

	require.Len(t, h.uploader.uploads, 1)
	up := h.uploader.uploads[0]
	assert.Equal(t, "posts-images", up.bucket)
	assert.Equal(t, "1700000000000-bike.png", up.key)
	assert.Equal(t, "image/png", up.contentType)

	require.NotNil(t, item.Image)
	assert.Equal(t, "/media/posts-images/1700000000000-bike.png", *item.Image)
	assert.Equal(t, 1, h.metrics.withImage)
	assert.Equal(t, 1, h.metrics.uploads[true])
}

func TestCreateUploadFailureDegrades(t *testing.T) {
	h := newHarness(t, Config{UploadFailure: UploadDegrade})
	h.uploader.err = errBoom
	photo := &Photo{Filename: "bike.png", ContentType: "image/png", Data: pngBytes(t, 4, 4)}

	item, err := h.svc.Create(context.Background(), validDraft(), photo)
	require.NoError(t, err)
	assert.Nil(t, item.Image)
	assert.Len(t, h.items.created, 1)
	assert.Equal(t, 1, h.metrics.uploads[false])
}

func TestCreateUploadFailureAborts(t *testing.T) {
	h := newHarness(t, Config{UploadFailure: UploadAbort})
	h.uploader.err = errBoom
	photo := &Photo{Filename: "bike.png", ContentType: "image/png", Data: pngBytes(t, 4, 4)}

	_, err := h.svc.Create(context.Background(), validDraft(), photo)
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Empty(t, h.items.created)
}

func TestCreateStoreFailure(t *testing.T) {
	h := newHarness(t, Config{})
	h.items.createErr = errBoom

	_, err := h.svc.Create(context.Background(), validDraft(), nil)
	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.Zero(t, h.metrics.listings)
}

func TestAttachPhoto(t *testing.T) {
	img := pngBytes(t, 8, 8)

	t.Run("no file", func(t *testing.T) {
		h := newHarness(t, Config{})
		p, err := h.svc.AttachPhoto("", nil)
		assert.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("image", func(t *testing.T) {
		h := newHarness(t, Config{})
		p, err := h.svc.AttachPhoto("bike.png", img)
		require.NoError(t, err)
		assert.Equal(t, "image/png", p.ContentType)
	})

	t.Run("silent rejection", func(t *testing.T) {
		h := newHarness(t, Config{PhotoRejection: PhotoRejectSilent})
		p, err := h.svc.AttachPhoto("notes.txt", []byte("plain text, not a picture"))
		assert.NoError(t, err)
		assert.Nil(t, p)
		assert.Equal(t, []string{"not_image"}, h.metrics.rejected)
	})

	t.Run("loud rejection", func(t *testing.T) {
		h := newHarness(t, Config{PhotoRejection: PhotoRejectLoud})
		_, err := h.svc.AttachPhoto("notes.txt", []byte("plain text, not a picture"))
		assert.ErrorIs(t, err, ErrPhotoRejected)
	})

	t.Run("too large", func(t *testing.T) {
		h := newHarness(t, Config{MaxPhotoBytes: 16, PhotoRejection: PhotoRejectLoud})
		_, err := h.svc.AttachPhoto("bike.png", img)
		assert.ErrorIs(t, err, ErrPhotoRejected)
		assert.Equal(t, []string{"too_large"}, h.metrics.rejected)
	})
}

func TestObjectKey(t *testing.T) {
	h := newHarness(t, Config{})
	assert.Equal(t, "1700000000000-bike.png", h.svc.ObjectKey("bike.png"))
	assert.Equal(t, "1700000000000-bike.png", h.svc.ObjectKey("photos/bike.png"))
	assert.Equal(t, "1700000000000-photo", h.svc.ObjectKey(""))
}

func TestPreview(t *testing.T) {
	h := newHarness(t, Config{})

	empty := h.svc.Preview(Draft{}, nil)
	assert.Equal(t, Preview{Title: "Title", Price: "Price", Email: "seller@email.com"}, empty)

	d := validDraft()
	d.Price = "1234.5"
	p := h.svc.Preview(d, &Photo{Data: pngBytes(t, 4, 4)})
	assert.Equal(t, "Orange bike", p.Title)
	assert.Equal(t, "$1,234.50", p.Price)
	assert.Equal(t, "Bikes", p.Category)
	assert.Equal(t, "Ljubljana", p.Location)
	assert.Contains(t, p.PhotoURL, "data:image/jpeg;base64,")

	d.Price = "-3"
	assert.Equal(t, "Price", h.svc.Preview(d, nil).Price)
}
