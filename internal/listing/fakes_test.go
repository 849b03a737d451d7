package listing

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/erazemk/trznica/internal/category"
	"github.com/erazemk/trznica/internal/model"
	"github.com/erazemk/trznica/internal/store"
)

var errBoom = errors.New("boom")

type fakeItems struct {
	mu         sync.Mutex
	items      []model.Item
	listErr    error
	createErr  error
	getErr     error
	listCalls  int
	created    []model.NewItem
	lastListed string
}

func (f *fakeItems) ListItemsByCategory(_ context.Context, cat string) ([]model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.lastListed = cat
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Item
	for _, it := range f.items {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeItems) ListRecentItems(_ context.Context, limit int) ([]model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.items) < limit {
		limit = len(f.items)
	}
	return f.items[:limit], nil
}

func (f *fakeItems) GetItem(_ context.Context, id int64) (*model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, it := range f.items {
		if it.ID == id {
			return &it, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeItems) CreateItem(_ context.Context, in model.NewItem) (*model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	it := model.Item{
		ID:           int64(len(f.items) + 1),
		Title:        in.Title,
		Category:     in.Category,
		Price:        in.Price,
		Location:     in.Location,
		ContactEmail: in.ContactEmail,
		Description:  in.Description,
		Image:        in.Image,
		CreatedAt:    time.Now(),
	}
	f.items = append(f.items, it)
	return &it, nil
}

type fakeMessages struct {
	mu   sync.Mutex
	err  error
	rows []model.ContactMessage
}

func (f *fakeMessages) CreateMessage(_ context.Context, msg model.ContactMessage) (*model.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	msg.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, msg)
	return &msg, nil
}

type upload struct {
	bucket, key, contentType string
	size                     int
}

type fakeUploader struct {
	store.ObjectURLs
	err     error
	uploads []upload
}

func (f *fakeUploader) UploadObject(_ context.Context, bucket, key string, data []byte, contentType string) error {
	f.uploads = append(f.uploads, upload{bucket, key, contentType, len(data)})
	return f.err
}

type fakeNotifier struct {
	err  error
	seen []int64
}

func (f *fakeNotifier) MessageCreated(_ context.Context, msg *model.ContactMessage) error {
	f.seen = append(f.seen, msg.ID)
	return f.err
}

type fakeRecorder struct {
	listings  int
	withImage int
	uploads   map[bool]int
	rejected  []string
	messages  int
}

func (f *fakeRecorder) ListingCreated(withImage bool) {
	f.listings++
	if withImage {
		f.withImage++
	}
}

func (f *fakeRecorder) PhotoUploaded(ok bool) {
	if f.uploads == nil {
		f.uploads = map[bool]int{}
	}
	f.uploads[ok]++
}

func (f *fakeRecorder) PhotoRejected(reason string) { f.rejected = append(f.rejected, reason) }
func (f *fakeRecorder) MessageCreated()             { f.messages++ }

type harness struct {
	svc      *Service
	items    *fakeItems
	messages *fakeMessages
	uploader *fakeUploader
	notifier *fakeNotifier
	metrics  *fakeRecorder
}

var fixedNow = time.UnixMilli(1700000000000)

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{
		items:    &fakeItems{},
		messages: &fakeMessages{},
		uploader: &fakeUploader{},
		notifier: &fakeNotifier{},
		metrics:  &fakeRecorder{},
	}
	h.svc = NewService(category.MustLoad(), h.items, h.messages, h.uploader, cfg,
		WithNotifier(h.notifier),
		WithRecorder(h.metrics),
		WithClock(func() time.Time { return fixedNow }),
	)
	return h
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 20, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
