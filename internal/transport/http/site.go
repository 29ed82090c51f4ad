package http

import (
	"log/slog"
	"net/http"

	"wedding_site/internal/domain/models"
	mw "wedding_site/internal/middleware"
	"wedding_site/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// Content godoc
// @Summary Данные сайта для публичной части
// @Description Настройки свадьбы, тема, подписи формы и список страниц
// @Tags site
// @Produce json
// @Success 200 {object} response.Response{data=models.SiteContent}
// @Router /api/content [get]
func (r *Routers) Content(c echo.Context) error {
	const op = "http.routers.Content"

	log := r.log.With(
		slog.String("op", op),
	)

	content, err := r.SiteService.Content(c.Request().Context())
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, content)
}

// GetTheme godoc
// @Summary Тема оформления
// @Tags site
// @Produce json
// @Success 200 {object} response.Response{data=models.Theme}
// @Router /api/images/theme [get]
// @Router /api/admin/theme [get]
func (r *Routers) GetTheme(c echo.Context) error {
	const op = "http.routers.GetTheme"

	log := r.log.With(
		slog.String("op", op),
	)

	theme, err := r.SiteService.Theme(c.Request().Context())
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, theme)
}

// SaveTheme godoc
// @Summary Сохранение темы
// @Description Пустые поля сохраняют текущие значения
// @Tags admin-site
// @Accept json
// @Produce json
// @Param request body models.Theme true "Тема"
// @Success 200 {object} response.Response{data=models.Theme}
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Security AccessAssertion
// @Router /api/admin/theme [post]
func (r *Routers) SaveTheme(c echo.Context) error {
	const op = "http.routers.SaveTheme"

	log := r.log.With(
		slog.String("op", op),
	)

	var req models.Theme
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	theme, err := r.SiteService.SaveTheme(c.Request().Context(), req)
	if err != nil {
		return fail(c, log, err)
	}

	log.Info("theme updated", slog.String("actor", mw.Actor(c)))

	return ok(c, http.StatusOK, theme)
}

// GetSettings godoc
// @Summary Настройки свадьбы
// @Tags admin-site
// @Produce json
// @Success 200 {object} response.Response{data=models.WeddingSettings}
// @Security AccessAssertion
// @Router /api/admin/settings [get]
func (r *Routers) GetSettings(c echo.Context) error {
	const op = "http.routers.GetSettings"

	log := r.log.With(
		slog.String("op", op),
	)

	settings, err := r.SiteService.Settings(c.Request().Context())
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, settings)
}

// SaveSettings godoc
// @Summary Сохранение настроек свадьбы
// @Description Пустые поля сохраняют текущие значения
// @Tags admin-site
// @Accept json
// @Produce json
// @Param request body models.WeddingSettings true "Настройки"
// @Success 200 {object} response.Response{data=models.WeddingSettings}
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Security AccessAssertion
// @Router /api/admin/settings [post]
func (r *Routers) SaveSettings(c echo.Context) error {
	const op = "http.routers.SaveSettings"

	log := r.log.With(
		slog.String("op", op),
	)

	var req models.WeddingSettings
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	settings, err := r.SiteService.SaveSettings(c.Request().Context(), req)
	if err != nil {
		return fail(c, log, err)
	}

	log.Info("settings updated", slog.String("actor", mw.Actor(c)))

	return ok(c, http.StatusOK, settings)
}

// GetFormSettings godoc
// @Summary Подписи полей формы ответа
// @Tags admin-site
// @Produce json
// @Success 200 {object} response.Response{data=models.FormSettings}
// @Security AccessAssertion
// @Router /api/admin/form-settings [get]
func (r *Routers) GetFormSettings(c echo.Context) error {
	const op = "http.routers.GetFormSettings"

	log := r.log.With(
		slog.String("op", op),
	)

	fs, err := r.SiteService.FormSettings(c.Request().Context())
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, fs)
}

// SaveFormSettings godoc
// @Summary Сохранение подписей формы
// @Tags admin-site
// @Accept json
// @Produce json
// @Param request body models.FormSettings true "Подписи"
// @Success 200 {object} response.Response{data=models.FormSettings}
// @Security AccessAssertion
// @Router /api/admin/form-settings [post]
func (r *Routers) SaveFormSettings(c echo.Context) error {
	const op = "http.routers.SaveFormSettings"

	log := r.log.With(
		slog.String("op", op),
	)

	var req models.FormSettings
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	fs, err := r.SiteService.SaveFormSettings(c.Request().Context(), req)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, fs)
}
