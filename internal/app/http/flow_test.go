package httpapp

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"wedding_site/internal/config"
	"wedding_site/internal/domain/models"
	"wedding_site/internal/lib/logger/handlers/slogdiscard"
	"wedding_site/internal/repository"
	galleryservice "wedding_site/internal/services/gallery_service"
	pageservice "wedding_site/internal/services/page_service"
	siteservice "wedding_site/internal/services/site_service"
	filestorage "wedding_site/internal/storage/filestorage"
	"wedding_site/internal/storage/memkv"
	httprouters "wedding_site/internal/transport/http"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type stubForms struct {
	mock.Mock
	repository.EmailRepository
}

func (f *stubForms) GetFormSettings(ctx context.Context) (models.FormSettings, bool, error) {
	args := f.Called(ctx)
	return args.Get(0).(models.FormSettings), args.Bool(1), args.Error(2)
}

// ContentFlowSuite runs the content side of the site against in-memory stores.
type ContentFlowSuite struct {
	suite.Suite
	Cfg    *config.Config
	server *Server
}

func TestContentFlowSuite(t *testing.T) {
	suite.Run(t, new(ContentFlowSuite))
}

func configPath() string {
	const key = "CONFIG_PATH"

	if v := os.Getenv(key); v != "" {
		return v
	}

	return "../../../config/local.yaml"
}

func (s *ContentFlowSuite) SetupTest() {
	s.Cfg = config.MustLoadPath(configPath())
	s.Cfg.Auth.Enforce = false
	s.Cfg.BlobStorage.BaseDir = s.T().TempDir()

	log := slogdiscard.NewDiscardLogger()
	docs := repository.NewDocuments(memkv.New())

	blobs, err := filestorage.NewLocalFileStorage(s.Cfg.BlobStorage.BaseDir, s.Cfg.BlobStorage.BaseURL, s.Cfg.BlobStorage.MaxSize)
	s.Require().NoError(err)

	forms := &stubForms{}
	forms.On("GetFormSettings", mock.Anything).Return(models.FormSettings{}, false, nil)

	routers := httprouters.NewRouter(
		log,
		nil,
		nil,
		pageservice.NewPageService(log, docs.Pages),
		galleryservice.NewGalleryService(log, docs.Gallery, docs.Order, docs.Site, blobs, s.Cfg.BlobStorage.MaxSize),
		siteservice.NewSiteService(log, docs.Site, forms, docs.Pages, s.Cfg.Cache.TTL),
		nil,
		blobs,
	)

	s.server = New(log, s.Cfg.HTTP.Host, s.Cfg.HTTP.Port, s.Cfg.Auth, s.Cfg.BlobStorage.MaxSize, routers)
	s.server.BuildRouters()
}

func (s *ContentFlowSuite) do(req *http.Request) (*httptest.ResponseRecorder, json.RawMessage) {
	rec := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(rec, req)

	var body struct {
		Data json.RawMessage `json:"data"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)

	return rec, body.Data
}

func (s *ContentFlowSuite) send(method, target, body string) (*httptest.ResponseRecorder, json.RawMessage) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func (s *ContentFlowSuite) upload(data []byte) (*httptest.ResponseRecorder, json.RawMessage) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "photo.png")
	s.Require().NoError(err)
	_, err = part.Write(data)
	s.Require().NoError(err)
	s.Require().NoError(w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/gallery/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.do(req)
}

func (s *ContentFlowSuite) TestPageLifecycle() {
	rec, data := s.send(http.MethodPost, "/api/admin/pages", `{"name":"Our Story"}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var page models.Page
	s.Require().NoError(json.Unmarshal(data, &page))
	s.Equal("our-story", page.Slug)

	rec, _ = s.send(http.MethodPost, "/api/admin/pages/"+page.ID+"/sections", `{"type":"text"}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec, _ = s.send(http.MethodPost, "/api/admin/pages/"+page.ID+"/sections", `{"type":"carousel"}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec, data = s.send(http.MethodGet, "/api/pages/our-story", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(data, &page))
	s.Require().Len(page.Sections, 1)
	s.Equal(models.SectionText, page.Sections[0].Type)

	rec, data = s.send(http.MethodGet, "/api/content", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var content models.SiteContent
	s.Require().NoError(json.Unmarshal(data, &content))
	s.Require().Len(content.Pages, 1)
	s.Equal("Our Story", content.Pages[0].Name)

	rec, _ = s.send(http.MethodDelete, "/api/admin/pages/"+page.ID, "")
	s.Equal(http.StatusNoContent, rec.Code)

	rec, _ = s.send(http.MethodGet, "/api/pages/our-story", "")
	s.Equal(http.StatusNotFound, rec.Code)

	rec, data = s.send(http.MethodGet, "/api/content", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(data, &content))
	s.Empty(content.Pages)
}

func (s *ContentFlowSuite) TestPageUpdate() {
	rec, data := s.send(http.MethodPost, "/api/admin/pages", `{"name":"Our Story!"}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var page models.Page
	s.Require().NoError(json.Unmarshal(data, &page))

	rec, data = s.send(http.MethodPut, "/api/admin/pages/"+page.ID, `{"page":{"name":"Renamed","slug":"renamed"}}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Require().NoError(json.Unmarshal(data, &page))
	s.Equal("Renamed", page.Name)
	s.Equal("renamed", page.Slug)
	s.Equal(int64(2), page.Version)

	rec, _ = s.send(http.MethodPut, "/api/admin/pages/"+page.ID, `{"name":"Flat"}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec, _ = s.send(http.MethodPut, "/api/admin/pages/"+page.ID, `{"page":{"name":"Stale"},"expectedVersion":1}`)
	s.Equal(http.StatusConflict, rec.Code)

	rec, data = s.send(http.MethodGet, "/api/pages/renamed", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(data, &page))
	s.Equal("Renamed", page.Name)

	rec, _ = s.send(http.MethodPut, "/api/admin/pages/page_missing", `{"page":{"name":"Ghost"}}`)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ContentFlowSuite) TestGalleryUploadIsIdempotent() {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	s.Require().NoError(png.Encode(&buf, img))

	rec, data := s.upload(buf.Bytes())
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var first struct {
		Image   models.GalleryItem `json:"image"`
		Created bool               `json:"created"`
	}
	s.Require().NoError(json.Unmarshal(data, &first))
	s.True(first.Created)
	s.Equal(1, first.Image.Position)

	rec, data = s.upload(buf.Bytes())
	s.Require().Equal(http.StatusOK, rec.Code)

	var second struct {
		Image   models.GalleryItem `json:"image"`
		Created bool               `json:"created"`
	}
	s.Require().NoError(json.Unmarshal(data, &second))
	s.False(second.Created)
	s.Equal(first.Image.ID, second.Image.ID)

	rec, data = s.send(http.MethodGet, "/api/images/gallery", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var gallery struct {
		Images  []models.GalleryItem `json:"images"`
		Version int64                `json:"version"`
	}
	s.Require().NoError(json.Unmarshal(data, &gallery))
	s.Len(gallery.Images, 1)

	rec, _ = s.do(httptest.NewRequest(http.MethodGet, first.Image.URL, nil))
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("image/png", rec.Header().Get("Content-Type"))
	s.Equal(buf.Bytes(), rec.Body.Bytes())
}
