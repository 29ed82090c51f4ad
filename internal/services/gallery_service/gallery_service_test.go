package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"wedding_site/internal/domain/models"
	"wedding_site/internal/lib/logger/handlers/slogdiscard"
	"wedding_site/internal/repository"
	"wedding_site/internal/storage"
	filestorage "wedding_site/internal/storage/filestorage"
	"wedding_site/internal/storage/memkv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc   *GalleryService
	blobs *filestorage.LocalFileStorage
	site  *repository.SiteRepo
	order *repository.OrderedCollection
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	kv := memkv.New()
	blobs, err := filestorage.NewLocalFileStorage(t.TempDir(), "/media", 1<<20)
	require.NoError(t, err)

	site := repository.NewSiteRepo(kv)
	order := repository.NewGalleryOrder(kv)
	svc := NewGalleryService(
		slogdiscard.NewDiscardLogger(),
		repository.NewGalleryRepo(kv),
		order,
		site,
		blobs,
		1<<20,
	)

	return fixture{svc: svc, blobs: blobs, site: site, order: order}
}

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestGalleryService_UploadAndList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	red := pngBytes(t, 4, 4, color.RGBA{R: 255, A: 255})
	blue := pngBytes(t, 4, 4, color.RGBA{B: 255, A: 255})

	first, created, err := f.svc.Upload(ctx, "image/png", bytes.NewReader(red))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, first.Position)
	assert.Len(t, first.ID, 64)
	assert.Equal(t, "gallery/"+first.ID+".png", first.Key)
	assert.Equal(t, "/media/gallery/"+first.ID+".png", first.URL)

	second, _, err := f.svc.Upload(ctx, "", bytes.NewReader(blue))
	require.NoError(t, err)
	assert.Equal(t, 2, second.Position)
	assert.Equal(t, "image/png", second.ContentType)

	again, created, err := f.svc.Upload(ctx, "image/png", bytes.NewReader(red))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 1, again.Position)

	items, version, err := f.svc.ListVersioned(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
	assert.Positive(t, version)
}

func TestGalleryService_UploadRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _, err := f.svc.Upload(ctx, "text/plain", strings.NewReader("hello"))
	assert.ErrorIs(t, err, storage.ErrInvalidFileType)

	_, _, err = f.svc.Upload(ctx, "image/png", bytes.NewReader(make([]byte, 1<<20+1)))
	assert.ErrorIs(t, err, storage.ErrFileTooLarge)

	_, _, err = f.svc.Upload(ctx, "image/png", bytes.NewReader(nil))
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestGalleryService_MoveReorderDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var ids []string
	for _, c := range []color.Color{color.White, color.Black, color.RGBA{G: 255, A: 255}} {
		item, _, err := f.svc.Upload(ctx, "image/png", bytes.NewReader(pngBytes(t, 2, 2, c)))
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}

	list, err := f.svc.Move(ctx, ids[2], 1)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[2], ids[0], ids[1]}, list.IDs)

	_, err = f.svc.Move(ctx, ids[0], 0)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = f.svc.Reorder(ctx, []string{ids[0]}, nil)
	assert.ErrorIs(t, err, models.ErrValidation)

	list, err = f.svc.Reorder(ctx, []string{ids[1], ids[0], ids[2]}, &list.Version)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[1], ids[0], ids[2]}, list.IDs)

	_, err = f.svc.Assign(ctx, "details_venue", ids[0])
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, ids[0]))
	assert.ErrorIs(t, f.svc.Delete(ctx, ids[0]), models.ErrNotFound)

	items, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Position)
	assert.Equal(t, 2, items[1].Position)

	a, err := f.site.GetAssignments(ctx)
	require.NoError(t, err)
	assert.NotContains(t, a, "details_venue")

	exists, err := f.blobs.Exists(ctx, "gallery/"+ids[0]+".png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGalleryService_IDsWithoutMetadata(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, _, err := f.svc.Upload(ctx, "image/png", bytes.NewReader(pngBytes(t, 2, 2, color.White)))
	require.NoError(t, err)
	_, err = f.order.Append(ctx, "ghost")
	require.NoError(t, err)
	second, _, err := f.svc.Upload(ctx, "image/png", bytes.NewReader(pngBytes(t, 2, 2, color.Black)))
	require.NoError(t, err)

	items, version, err := f.svc.ListVersioned(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Position)
	assert.Equal(t, second.ID, items[1].ID)
	assert.Equal(t, 2, items[1].Position)

	list, err := f.svc.Reorder(ctx, []string{second.ID, first.ID}, &version)
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID, first.ID, "ghost"}, list.IDs)

	_, err = f.svc.Reorder(ctx, []string{second.ID}, nil)
	assert.ErrorIs(t, err, models.ErrValidation)

	list, err = f.svc.Repair(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID, first.ID}, list.IDs)

	items, err = f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, 2, items[1].Position)
}

func TestGalleryService_Variants(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	big, _, err := f.svc.Upload(ctx, "image/png", bytes.NewReader(pngBytes(t, 1000, 10, color.White)))
	require.NoError(t, err)
	small, _, err := f.svc.Upload(ctx, "image/png", bytes.NewReader(pngBytes(t, 100, 10, color.Black)))
	require.NoError(t, err)

	img, err := f.svc.GenerateVariants(ctx, big.ID)
	require.NoError(t, err)
	require.NotNil(t, img.Variants)
	assert.Equal(t, big.Key+"_medium", img.Variants.Medium)
	assert.Equal(t, big.Key+"_thumb", img.Variants.Thumbnail)

	thumb, err := f.blobs.Open(ctx, img.Variants.Thumbnail)
	require.NoError(t, err)
	defer thumb.Close()
	decoded, err := png.Decode(thumb)
	require.NoError(t, err)
	assert.Equal(t, models.ThumbnailWidth, decoded.Bounds().Dx())

	report, err := f.svc.GenerateAllVariants(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, report.Errors)

	_, err = f.svc.GenerateVariants(ctx, small.ID)
	require.NoError(t, err)
}

func TestGalleryService_Metadata(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	item, _, err := f.svc.Upload(ctx, "image/png", bytes.NewReader(pngBytes(t, 2, 2, color.White)))
	require.NoError(t, err)

	caption := "First dance"
	img, err := f.svc.UpdateMetadata(ctx, item.ID, models.ImageMetadata{Caption: &caption})
	require.NoError(t, err)
	assert.Equal(t, caption, img.Caption)
	assert.Empty(t, img.Alt)

	long := strings.Repeat("x", 501)
	_, err = f.svc.UpdateMetadata(ctx, item.ID, models.ImageMetadata{Alt: &long})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = f.svc.UpdateMetadata(ctx, "missing", models.ImageMetadata{Caption: &caption})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGalleryService_Assignments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	item, _, err := f.svc.Upload(ctx, "image/png", bytes.NewReader(pngBytes(t, 2, 2, color.White)))
	require.NoError(t, err)

	_, err = f.svc.Assign(ctx, "nowhere", item.ID)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = f.svc.Assign(ctx, "story_proposal", "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	a, err := f.svc.Assign(ctx, "story_proposal", item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, a["story_proposal"])

	assigned, err := f.svc.AssignedImage(ctx, "story_proposal")
	require.NoError(t, err)
	require.NotNil(t, assigned)
	assert.Equal(t, item.ID, assigned.ID)

	rows, err := f.svc.Assignments(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, len(models.ImageLocations))

	a, err = f.svc.Unassign(ctx, "story_proposal")
	require.NoError(t, err)
	assert.Empty(t, a)

	assigned, err = f.svc.AssignedImage(ctx, "story_proposal")
	require.NoError(t, err)
	assert.Nil(t, assigned)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Snapshot(ctx context.Context) (models.OrderedList, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.OrderedList), args.Error(1)
}

func (m *MockOrderRepository) Append(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) MoveTo(ctx context.Context, id string, position int) (models.OrderedList, error) {
	args := m.Called(ctx, id, position)
	return args.Get(0).(models.OrderedList), args.Error(1)
}

func (m *MockOrderRepository) ReplaceAll(ctx context.Context, ids []string, expectedVersion *int64) (models.OrderedList, error) {
	args := m.Called(ctx, ids, expectedVersion)
	return args.Get(0).(models.OrderedList), args.Error(1)
}

func (m *MockOrderRepository) Repair(ctx context.Context) (models.OrderedList, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.OrderedList), args.Error(1)
}

func TestGalleryService_OrderErrors(t *testing.T) {
	ctx := context.Background()
	kv := memkv.New()
	order := new(MockOrderRepository)
	blobs, err := filestorage.NewLocalFileStorage(t.TempDir(), "/media", 1<<20)
	require.NoError(t, err)

	svc := NewGalleryService(slogdiscard.NewDiscardLogger(), repository.NewGalleryRepo(kv), order, repository.NewSiteRepo(kv), blobs, 1<<20)

	tests := []struct {
		name      string
		mockSetup func()
		call      func() error
		wantErr   bool
		errIs     error
	}{
		{
			name: "reorder conflict",
			mockSetup: func() {
				order.On("Snapshot", ctx).Return(models.OrderedList{Version: 1, IDs: []string{"a"}}, nil).Once()
				order.On("ReplaceAll", ctx, []string{"a"}, (*int64)(nil)).
					Return(models.OrderedList{}, models.ErrConflict).Once()
			},
			call: func() error {
				_, err := svc.Reorder(ctx, []string{"a"}, nil)
				return err
			},
			wantErr: true,
			errIs:   models.ErrConflict,
		},
		{
			name: "list store failure",
			mockSetup: func() {
				order.On("Snapshot", ctx).Return(models.OrderedList{}, errors.New("kv down")).Once()
			},
			call: func() error {
				_, err := svc.List(ctx)
				return err
			},
			wantErr: true,
		},
		{
			name: "repair",
			mockSetup: func() {
				order.On("Repair", ctx).Return(models.OrderedList{Version: 2, IDs: []string{"a"}}, nil).Once()
				order.On("Remove", ctx, "a").Return(nil).Once()
				order.On("Snapshot", ctx).Return(models.OrderedList{Version: 3, IDs: []string{}}, nil).Once()
			},
			call: func() error {
				_, err := svc.Repair(ctx)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := tt.call()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}

	order.AssertExpectations(t)
}
