package http

import (
	"log/slog"
	"net/http"

	mw "wedding_site/internal/middleware"
	"wedding_site/internal/transport/http/dto"
	"wedding_site/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListGallery godoc
// @Summary Галерея в порядке показа
// @Tags gallery
// @Produce json
// @Success 200 {object} response.Response{data=dto.GalleryResponse}
// @Router /api/images/gallery [get]
func (r *Routers) ListGallery(c echo.Context) error {
	const op = "http.routers.ListGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	items, version, err := r.GalleryService.ListVersioned(c.Request().Context())
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, dto.GalleryResponse{Images: items, Version: version})
}

// UploadImage godoc
// @Summary Загрузка изображения в галерею
// @Description Повторная загрузка тех же байтов возвращает существующее изображение
// @Tags admin-gallery
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Изображение (jpeg, png, gif, webp)"
// @Success 201 {object} response.Response{data=dto.UploadResponse} "Новое изображение"
// @Success 200 {object} response.Response{data=dto.UploadResponse} "Изображение уже было загружено"
// @Failure 400 {object} response.ErrorResponse "Неподдерживаемый тип или слишком большой файл"
// @Security AccessAssertion
// @Router /api/admin/gallery/upload [post]
func (r *Routers) UploadImage(c echo.Context) error {
	const op = "http.routers.UploadImage"

	log := r.log.With(
		slog.String("op", op),
	)

	file, err := c.FormFile("file")
	if err != nil {
		log.Warn("empty file in request", slog.String("error", err.Error()))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "File is required"))
	}

	src, err := file.Open()
	if err != nil {
		return fail(c, log, err)
	}
	defer src.Close()

	item, created, err := r.GalleryService.Upload(c.Request().Context(), file.Header.Get("Content-Type"), src)
	if err != nil {
		return fail(c, log, err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		log.Info("image uploaded",
			slog.String("image_id", item.ID),
			slog.String("filename", file.Filename),
			slog.Int64("size", item.Size),
			slog.String("actor", mw.Actor(c)),
		)
	}

	return ok(c, status, dto.UploadResponse{Image: item, Created: created})
}

// ReorderGallery godoc
// @Summary Новый порядок галереи
// @Description Тело {images:[{id}]} со всеми видимыми изображениями. expectedVersion защищает от одновременных правок.
// @Tags admin-gallery
// @Accept json
// @Produce json
// @Param request body dto.ReorderRequest true "Порядок"
// @Success 200 {object} response.Response{data=models.OrderedList}
// @Failure 400 {object} response.ErrorResponse "Список не совпадает с галереей"
// @Failure 409 {object} response.ErrorResponse "Галерея изменилась"
// @Security AccessAssertion
// @Router /api/admin/gallery/reorder [post]
func (r *Routers) ReorderGallery(c echo.Context) error {
	const op = "http.routers.ReorderGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.ReorderRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	list, err := r.GalleryService.Reorder(c.Request().Context(), req.IDs(), req.ExpectedVersion)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, list)
}

// MoveImage godoc
// @Summary Перемещение изображения
// @Tags admin-gallery
// @Accept json
// @Produce json
// @Param id path string true "ID изображения"
// @Param request body dto.MoveRequest true "Новая позиция, с единицы"
// @Success 200 {object} response.Response{data=models.OrderedList}
// @Failure 400 {object} response.ErrorResponse "Позиция вне диапазона"
// @Failure 404 {object} response.ErrorResponse "Изображение не найдено"
// @Security AccessAssertion
// @Router /api/admin/gallery/{id}/move [post]
func (r *Routers) MoveImage(c echo.Context) error {
	const op = "http.routers.MoveImage"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.MoveRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	list, err := r.GalleryService.Move(c.Request().Context(), c.Param("id"), *req.Position)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, list)
}

// RepairGallery godoc
// @Summary Восстановление порядка галереи
// @Description Переносит порядок из старых ключей и убирает дубликаты
// @Tags admin-gallery
// @Produce json
// @Success 200 {object} response.Response{data=models.OrderedList}
// @Security AccessAssertion
// @Router /api/admin/gallery/repair [post]
func (r *Routers) RepairGallery(c echo.Context) error {
	const op = "http.routers.RepairGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	list, err := r.GalleryService.Repair(c.Request().Context())
	if err != nil {
		return fail(c, log, err)
	}

	log.Info("gallery order repaired", slog.Int("images", len(list.IDs)), slog.String("actor", mw.Actor(c)))

	return ok(c, http.StatusOK, list)
}

// UpdateImageMetadata godoc
// @Summary Подпись и alt изображения
// @Tags admin-gallery
// @Accept json
// @Produce json
// @Param id path string true "ID изображения"
// @Param request body dto.MetadataRequest true "Метаданные"
// @Success 200 {object} response.Response{data=models.GalleryImage}
// @Failure 404 {object} response.ErrorResponse "Изображение не найдено"
// @Security AccessAssertion
// @Router /api/admin/gallery/{id}/metadata [put]
func (r *Routers) UpdateImageMetadata(c echo.Context) error {
	const op = "http.routers.UpdateImageMetadata"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.MetadataRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	img, err := r.GalleryService.UpdateMetadata(c.Request().Context(), c.Param("id"), req.ToDomain())
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, img)
}

// DeleteImage godoc
// @Summary Удаление изображения
// @Description Удаляет изображение, его варианты и привязки к местам на сайте
// @Tags admin-gallery
// @Param id path string true "ID изображения"
// @Success 204
// @Failure 404 {object} response.ErrorResponse "Изображение не найдено"
// @Security AccessAssertion
// @Router /api/admin/gallery/{id} [delete]
func (r *Routers) DeleteImage(c echo.Context) error {
	const op = "http.routers.DeleteImage"

	log := r.log.With(
		slog.String("op", op),
	)

	id := c.Param("id")
	if err := r.GalleryService.Delete(c.Request().Context(), id); err != nil {
		return fail(c, log, err)
	}

	log.Info("image deleted", slog.String("image_id", id), slog.String("actor", mw.Actor(c)))

	return c.NoContent(http.StatusNoContent)
}

// GenerateVariants godoc
// @Summary Варианты одного изображения
// @Description Создаёт уменьшенные копии 800 и 200 пикселей
// @Tags admin-gallery
// @Produce json
// @Param id path string true "ID изображения"
// @Success 200 {object} response.Response{data=models.GalleryImage}
// @Failure 404 {object} response.ErrorResponse "Изображение не найдено"
// @Security AccessAssertion
// @Router /api/admin/gallery/{id}/variants [post]
func (r *Routers) GenerateVariants(c echo.Context) error {
	const op = "http.routers.GenerateVariants"

	log := r.log.With(
		slog.String("op", op),
	)

	img, err := r.GalleryService.GenerateVariants(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, img)
}

// GenerateAllVariants godoc
// @Summary Варианты для всей галереи
// @Tags admin-gallery
// @Produce json
// @Success 200 {object} response.Response{data=models.VariantReport}
// @Security AccessAssertion
// @Router /api/admin/gallery/variants [post]
func (r *Routers) GenerateAllVariants(c echo.Context) error {
	const op = "http.routers.GenerateAllVariants"

	log := r.log.With(
		slog.String("op", op),
	)

	report, err := r.GalleryService.GenerateAllVariants(c.Request().Context())
	if err != nil {
		return fail(c, log, err)
	}

	log.Info("variants generated",
		slog.Int("processed", report.Processed),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", len(report.Errors)),
	)

	return ok(c, http.StatusOK, report)
}

// ListAssignments godoc
// @Summary Привязки изображений к местам на сайте
// @Tags admin-gallery
// @Produce json
// @Success 200 {object} response.Response{data=[]models.LocationAssignment}
// @Security AccessAssertion
// @Router /api/admin/gallery/assignments [get]
func (r *Routers) ListAssignments(c echo.Context) error {
	const op = "http.routers.ListAssignments"

	log := r.log.With(
		slog.String("op", op),
	)

	assignments, err := r.GalleryService.Assignments(c.Request().Context())
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, assignments)
}

// AssignImage godoc
// @Summary Привязка изображения к месту
// @Tags admin-gallery
// @Accept json
// @Produce json
// @Param request body dto.AssignRequest true "Место и изображение"
// @Success 200 {object} response.Response{data=models.ImageAssignments}
// @Failure 400 {object} response.ErrorResponse "Неизвестное место"
// @Failure 404 {object} response.ErrorResponse "Изображение не найдено"
// @Security AccessAssertion
// @Router /api/admin/gallery/assign [post]
func (r *Routers) AssignImage(c echo.Context) error {
	const op = "http.routers.AssignImage"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.AssignRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	assignments, err := r.GalleryService.Assign(c.Request().Context(), req.LocationID, req.ImageID)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, assignments)
}

// UnassignImage godoc
// @Summary Снятие привязки с места
// @Tags admin-gallery
// @Accept json
// @Produce json
// @Param request body dto.UnassignRequest true "Место"
// @Success 200 {object} response.Response{data=models.ImageAssignments}
// @Failure 400 {object} response.ErrorResponse "Неизвестное место"
// @Security AccessAssertion
// @Router /api/admin/gallery/unassign [post]
func (r *Routers) UnassignImage(c echo.Context) error {
	const op = "http.routers.UnassignImage"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.UnassignRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	assignments, err := r.GalleryService.Unassign(c.Request().Context(), req.LocationID)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, assignments)
}

// AssignedImage godoc
// @Summary Изображение, привязанное к месту
// @Description Пустые данные, если к месту ничего не привязано
// @Tags gallery
// @Produce json
// @Param locationId path string true "ID места"
// @Success 200 {object} response.Response{data=models.GalleryItem}
// @Failure 404 {object} response.ErrorResponse "Неизвестное место"
// @Router /api/images/assigned/{locationId} [get]
func (r *Routers) AssignedImage(c echo.Context) error {
	const op = "http.routers.AssignedImage"

	log := r.log.With(
		slog.String("op", op),
	)

	item, err := r.GalleryService.AssignedImage(c.Request().Context(), c.Param("locationId"))
	if err != nil {
		return fail(c, log, err)
	}
	if item == nil {
		return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "No image assigned to this location"})
	}

	return ok(c, http.StatusOK, item)
}
