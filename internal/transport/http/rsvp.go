package http

import (
	"log/slog"
	"net/http"
	"strconv"

	mw "wedding_site/internal/middleware"
	"wedding_site/internal/transport/http/dto"
	"wedding_site/internal/transport/http/dto/request"
	"wedding_site/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// SubmitRsvp godoc
// @Summary Ответ гостя на приглашение
// @Description Сохраняет ответ гостя из списка приглашённых. Повторный ответ заменяет предыдущий.
// @Tags rsvp
// @Accept json
// @Produce json
// @Param request body request.RsvpRequest true "Ответ гостя"
// @Success 201 {object} response.Response{data=models.RsvpResponse}
// @Failure 400 {object} response.ErrorResponse "Не заполнены обязательные поля"
// @Failure 403 {object} response.ErrorResponse "Гостя нет в списке или дополнительные гости не разрешены"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/rsvp [post]
func (r *Routers) SubmitRsvp(c echo.Context) error {
	const op = "http.routers.SubmitRsvp"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.RsvpRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	saved, err := r.RsvpService.Submit(c.Request().Context(), req.ToDomain())
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusCreated, saved)
}

// ListRsvps godoc
// @Summary Список ответов гостей
// @Tags admin-rsvp
// @Produce json
// @Success 200 {object} response.Response{data=[]models.RsvpResponse}
// @Failure 401 {object} response.ErrorResponse
// @Security AccessAssertion
// @Router /api/admin/rsvps [get]
func (r *Routers) ListRsvps(c echo.Context) error {
	const op = "http.routers.ListRsvps"

	log := r.log.With(
		slog.String("op", op),
	)

	list, err := r.RsvpService.List(c.Request().Context())
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, list)
}

// DeleteRsvp godoc
// @Summary Удаление ответа гостя
// @Tags admin-rsvp
// @Param id path int true "ID ответа"
// @Success 204
// @Failure 404 {object} response.ErrorResponse "Ответ не найден"
// @Security AccessAssertion
// @Router /api/admin/rsvps/{id} [delete]
func (r *Routers) DeleteRsvp(c echo.Context) error {
	const op = "http.routers.DeleteRsvp"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "id must be a number"))
	}

	if err := r.RsvpService.Delete(c.Request().Context(), id); err != nil {
		return fail(c, log, err)
	}

	log.Info("rsvp deleted", slog.Int64("rsvp_id", id), slog.String("actor", mw.Actor(c)))

	return c.NoContent(http.StatusNoContent)
}

// SearchGuests godoc
// @Summary Поиск гостя по имени
// @Description Ищет по подстроке в имени гостя или партнёра. Не более пяти результатов, сначала гости с партнёром.
// @Tags rsvp
// @Produce json
// @Param name query string true "Часть имени"
// @Success 200 {object} response.Response{data=[]models.GuestMatch}
// @Failure 400 {object} response.ErrorResponse "Пустой запрос"
// @Router /api/guest-list/search [get]
func (r *Routers) SearchGuests(c echo.Context) error {
	const op = "http.routers.SearchGuests"

	log := r.log.With(
		slog.String("op", op),
	)

	matches, err := r.GuestService.Search(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, matches)
}

// ListGuests godoc
// @Summary Список приглашённых
// @Tags admin-guests
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Guest}
// @Security AccessAssertion
// @Router /api/admin/guest-list [get]
func (r *Routers) ListGuests(c echo.Context) error {
	const op = "http.routers.ListGuests"

	log := r.log.With(
		slog.String("op", op),
	)

	guests, err := r.GuestService.List(c.Request().Context())
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, guests)
}

// CreateGuest godoc
// @Summary Добавление гостя
// @Tags admin-guests
// @Accept json
// @Produce json
// @Param request body dto.GuestRequest true "Гость"
// @Success 201 {object} response.Response{data=models.Guest}
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 409 {object} response.ErrorResponse "Гость с таким именем уже есть"
// @Security AccessAssertion
// @Router /api/admin/guest-list [post]
func (r *Routers) CreateGuest(c echo.Context) error {
	const op = "http.routers.CreateGuest"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.GuestRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	guest, err := r.GuestService.Create(c.Request().Context(), req.ToDomain())
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusCreated, guest)
}

// UpdateGuest godoc
// @Summary Изменение гостя
// @Tags admin-guests
// @Accept json
// @Produce json
// @Param id path int true "ID гостя"
// @Param request body dto.GuestRequest true "Гость"
// @Success 200 {object} response.Response{data=models.Guest}
// @Failure 404 {object} response.ErrorResponse "Гость не найден"
// @Failure 409 {object} response.ErrorResponse "Гость с таким именем уже есть"
// @Security AccessAssertion
// @Router /api/admin/guest-list/{id} [put]
func (r *Routers) UpdateGuest(c echo.Context) error {
	const op = "http.routers.UpdateGuest"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "id must be a number"))
	}

	var req dto.GuestRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	guest, err := r.GuestService.Update(c.Request().Context(), id, req.ToDomain())
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, guest)
}

// DeleteGuest godoc
// @Summary Удаление гостя
// @Tags admin-guests
// @Param id path int true "ID гостя"
// @Success 204
// @Failure 404 {object} response.ErrorResponse "Гость не найден"
// @Security AccessAssertion
// @Router /api/admin/guest-list/{id} [delete]
func (r *Routers) DeleteGuest(c echo.Context) error {
	const op = "http.routers.DeleteGuest"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "id must be a number"))
	}

	if err := r.GuestService.Delete(c.Request().Context(), id); err != nil {
		return fail(c, log, err)
	}

	log.Info("guest deleted", slog.Int64("guest_id", id), slog.String("actor", mw.Actor(c)))

	return c.NoContent(http.StatusNoContent)
}

// ImportGuests godoc
// @Summary Загрузка списка гостей из CSV
// @Description CSV с заголовком; колонка name обязательна, email, partner_name, partner_email, plus_one_allowed необязательны.
// @Tags admin-guests
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV-файл"
// @Success 200 {object} response.Response{data=models.GuestImportResult}
// @Failure 400 {object} response.ErrorResponse "Файл не передан или не разобран"
// @Security AccessAssertion
// @Router /api/admin/guest-list/upload [post]
func (r *Routers) ImportGuests(c echo.Context) error {
	const op = "http.routers.ImportGuests"

	log := r.log.With(
		slog.String("op", op),
	)

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return fail(c, log, err)
	}
	defer src.Close()

	result, err := r.GuestService.Import(c.Request().Context(), src)
	if err != nil {
		return fail(c, log, err)
	}

	log.Info("guest list uploaded",
		slog.String("filename", file.Filename),
		slog.Int("inserted", result.Inserted),
		slog.Int("updated", result.Updated),
		slog.String("actor", mw.Actor(c)),
	)

	return ok(c, http.StatusOK, result)
}
