package http

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net/http"

	"wedding_site/internal/domain/models"
	"wedding_site/internal/lib/logger/sl"
	mw "wedding_site/internal/middleware"
	"wedding_site/internal/transport/http/dto/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type RsvpService interface {
	Submit(ctx context.Context, in models.RsvpSubmission) (models.RsvpResponse, error)
	List(ctx context.Context) ([]models.RsvpResponse, error)
	Delete(ctx context.Context, id int64) error
}

type GuestService interface {
	List(ctx context.Context) ([]models.Guest, error)
	Create(ctx context.Context, g models.Guest) (models.Guest, error)
	Update(ctx context.Context, id int64, g models.Guest) (models.Guest, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, fragment string) ([]models.GuestMatch, error)
	Import(ctx context.Context, r io.Reader) (models.GuestImportResult, error)
}

type PageService interface {
	ListSectionTypes() []models.SectionTypeInfo
	Create(ctx context.Context, in models.PagePatch) (models.Page, error)
	Update(ctx context.Context, id string, patch models.PagePatch) (models.Page, error)
	UpdateOrder(ctx context.Context, id string, order int) (models.Page, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (models.Page, error)
	List(ctx context.Context) ([]models.PageIndexEntry, error)
	GetBySlug(ctx context.Context, slug string) (models.Page, error)
	AddSection(ctx context.Context, pageID string, t models.SectionType, position *int) (models.Page, models.ContentSection, error)
	UpdateSection(ctx context.Context, pageID, sectionID string, properties map[string]any) (models.Page, error)
	RemoveSection(ctx context.Context, pageID, sectionID string) (models.Page, error)
	MoveSection(ctx context.Context, pageID, sectionID string, position int) (models.Page, error)
	RebuildIndex(ctx context.Context) ([]models.PageIndexEntry, error)
}

type GalleryService interface {
	ListVersioned(ctx context.Context) ([]models.GalleryItem, int64, error)
	Upload(ctx context.Context, contentType string, r io.Reader) (models.GalleryItem, bool, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string, expectedVersion *int64) (models.OrderedList, error)
	Move(ctx context.Context, id string, position int) (models.OrderedList, error)
	Repair(ctx context.Context) (models.OrderedList, error)
	UpdateMetadata(ctx context.Context, id string, meta models.ImageMetadata) (models.GalleryImage, error)
	GenerateVariants(ctx context.Context, id string) (models.GalleryImage, error)
	GenerateAllVariants(ctx context.Context) (models.VariantReport, error)
	Assignments(ctx context.Context) ([]models.LocationAssignment, error)
	Assign(ctx context.Context, locationID, imageID string) (models.ImageAssignments, error)
	Unassign(ctx context.Context, locationID string) (models.ImageAssignments, error)
	AssignedImage(ctx context.Context, locationID string) (*models.GalleryItem, error)
}

type SiteService interface {
	Settings(ctx context.Context) (models.WeddingSettings, error)
	SaveSettings(ctx context.Context, in models.WeddingSettings) (models.WeddingSettings, error)
	Theme(ctx context.Context) (models.Theme, error)
	SaveTheme(ctx context.Context, in models.Theme) (models.Theme, error)
	FormSettings(ctx context.Context) (models.FormSettings, error)
	SaveFormSettings(ctx context.Context, in models.FormSettings) (models.FormSettings, error)
	Content(ctx context.Context) (models.SiteContent, error)
	InvalidateContent()
}

type EmailService interface {
	Template(ctx context.Context, t models.TemplateType) (models.EmailTemplate, error)
	SaveTemplate(ctx context.Context, tpl models.EmailTemplate) (models.EmailTemplate, error)
	Preview(ctx context.Context, tpl models.EmailTemplate) (models.EmailMessage, error)
	SendTest(ctx context.Context, to string) error
	Blast(ctx context.Context, override models.EmailTemplate) (models.BlastResult, error)
}

// BlobReader serves stored media.
type BlobReader interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

type Routers struct {
	log            *slog.Logger
	RsvpService    RsvpService
	GuestService   GuestService
	PageService    PageService
	GalleryService GalleryService
	SiteService    SiteService
	EmailService   EmailService
	Blobs          BlobReader
}

func NewRouter(
	log *slog.Logger,
	rsvpService RsvpService,
	guestService GuestService,
	pageService PageService,
	galleryService GalleryService,
	siteService SiteService,
	emailService EmailService,
	blobs BlobReader,
) *Routers {
	return &Routers{
		log:            log,
		RsvpService:    rsvpService,
		GuestService:   guestService,
		PageService:    pageService,
		GalleryService: galleryService,
		SiteService:    siteService,
		EmailService:   emailService,
		Blobs:          blobs,
	}
}

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// bind decodes and validates the request body. A non-nil result is the 400 body to return.
func bind(c echo.Context, req any) *response.ErrorResponse {
	if err := c.Bind(req); err != nil {
		return &response.ErrInvalidRequestFormat
	}
	if err := c.Validate(req); err != nil {
		resp := response.ErrorResponseWithDetails("invalid_request", err.Error())
		return &resp
	}
	return nil
}

// fail writes the error response for err. Server-side failures are logged with their cause.
func fail(c echo.Context, log *slog.Logger, err error) error {
	status, body := response.StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", slog.String("actor", mw.Actor(c)), sl.Err(err))
	} else {
		log.Warn("request rejected", slog.Int("status", status), slog.String("actor", mw.Actor(c)), sl.Err(err))
	}
	return c.JSON(status, body)
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, response.SuccessResponse(data))
}

// Health godoc
// @Summary Проверка доступности сервиса
// @Tags system
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "ok"})
}

// ServeMedia godoc
// @Summary Выдача загруженного файла
// @Description Отдаёт изображение или его вариант по ключу хранилища
// @Tags media
// @Produce octet-stream
// @Param key path string true "Ключ файла, например gallery/<id>.jpg_thumb"
// @Success 200 {file} binary
// @Failure 404 {object} response.ErrorResponse "Файл не найден"
// @Router /media/{key} [get]
func (r *Routers) ServeMedia(c echo.Context) error {
	const op = "http.routers.ServeMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	key := c.Param("*")

	rc, err := r.Blobs.Open(c.Request().Context(), key)
	if err != nil {
		return fail(c, log, err)
	}
	defer rc.Close()

	br := bufio.NewReaderSize(rc, 512)
	head, _ := br.Peek(512)

	// Keys are content hashes, so a stored blob never changes.
	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")

	return c.Stream(http.StatusOK, http.DetectContentType(head), br)
}
