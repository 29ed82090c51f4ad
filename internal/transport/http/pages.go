package http

import (
	"log/slog"
	"net/http"

	mw "wedding_site/internal/middleware"
	"wedding_site/internal/transport/http/dto"

	"github.com/labstack/echo/v4"
)

// GetPageBySlug godoc
// @Summary Публичная страница по адресу
// @Tags pages
// @Produce json
// @Param slug path string true "Адрес страницы"
// @Success 200 {object} response.Response{data=models.Page}
// @Failure 404 {object} response.ErrorResponse "Страница не найдена"
// @Router /api/pages/{slug} [get]
func (r *Routers) GetPageBySlug(c echo.Context) error {
	const op = "http.routers.GetPageBySlug"

	log := r.log.With(
		slog.String("op", op),
	)

	page, err := r.PageService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, page)
}

// ListPages godoc
// @Summary Список страниц
// @Description Записи индекса страниц, по порядку меню, затем по имени
// @Tags admin-pages
// @Produce json
// @Success 200 {object} response.Response{data=[]models.PageIndexEntry}
// @Security AccessAssertion
// @Router /api/admin/pages [get]
func (r *Routers) ListPages(c echo.Context) error {
	const op = "http.routers.ListPages"

	log := r.log.With(
		slog.String("op", op),
	)

	pages, err := r.PageService.List(c.Request().Context())
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, pages)
}

// CreatePage godoc
// @Summary Создание страницы
// @Tags admin-pages
// @Accept json
// @Produce json
// @Param request body dto.PageRequest true "Страница"
// @Success 201 {object} response.Response{data=models.Page}
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 409 {object} response.ErrorResponse "Адрес уже занят"
// @Security AccessAssertion
// @Router /api/admin/pages [post]
func (r *Routers) CreatePage(c echo.Context) error {
	const op = "http.routers.CreatePage"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.PageRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	page, err := r.PageService.Create(c.Request().Context(), req.ToDomain())
	if err != nil {
		return fail(c, log, err)
	}
	r.SiteService.InvalidateContent()

	log.Info("page created", slog.String("page_id", page.ID), slog.String("actor", mw.Actor(c)))

	return ok(c, http.StatusCreated, page)
}

// GetPage godoc
// @Summary Страница по ID
// @Tags admin-pages
// @Produce json
// @Param id path string true "ID страницы"
// @Success 200 {object} response.Response{data=models.Page}
// @Failure 404 {object} response.ErrorResponse "Страница не найдена"
// @Security AccessAssertion
// @Router /api/admin/pages/{id} [get]
func (r *Routers) GetPage(c echo.Context) error {
	const op = "http.routers.GetPage"

	log := r.log.With(
		slog.String("op", op),
	)

	page, err := r.PageService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, page)
}

// UpdatePage godoc
// @Summary Изменение страницы
// @Description Меняет только переданные поля. Переданный список секций заменяет текущий целиком.
// @Tags admin-pages
// @Accept json
// @Produce json
// @Param id path string true "ID страницы"
// @Param request body dto.UpdatePageRequest true "Изменения"
// @Success 200 {object} response.Response{data=models.Page}
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Страница не найдена"
// @Failure 409 {object} response.ErrorResponse "Адрес уже занят или версия устарела"
// @Security AccessAssertion
// @Router /api/admin/pages/{id} [put]
func (r *Routers) UpdatePage(c echo.Context) error {
	const op = "http.routers.UpdatePage"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.UpdatePageRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	page, err := r.PageService.Update(c.Request().Context(), c.Param("id"), req.ToDomain())
	if err != nil {
		return fail(c, log, err)
	}
	r.SiteService.InvalidateContent()

	return ok(c, http.StatusOK, page)
}

// UpdatePageOrder godoc
// @Summary Позиция страницы в меню
// @Tags admin-pages
// @Accept json
// @Produce json
// @Param id path string true "ID страницы"
// @Param request body dto.PageOrderRequest true "Порядок"
// @Success 200 {object} response.Response{data=models.Page}
// @Failure 404 {object} response.ErrorResponse "Страница не найдена"
// @Security AccessAssertion
// @Router /api/admin/pages/{id}/order [put]
func (r *Routers) UpdatePageOrder(c echo.Context) error {
	const op = "http.routers.UpdatePageOrder"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.PageOrderRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	page, err := r.PageService.UpdateOrder(c.Request().Context(), c.Param("id"), *req.Order)
	if err != nil {
		return fail(c, log, err)
	}
	r.SiteService.InvalidateContent()

	return ok(c, http.StatusOK, page)
}

// DeletePage godoc
// @Summary Удаление страницы
// @Tags admin-pages
// @Param id path string true "ID страницы"
// @Success 204
// @Failure 404 {object} response.ErrorResponse "Страница не найдена"
// @Security AccessAssertion
// @Router /api/admin/pages/{id} [delete]
func (r *Routers) DeletePage(c echo.Context) error {
	const op = "http.routers.DeletePage"

	log := r.log.With(
		slog.String("op", op),
	)

	id := c.Param("id")
	if err := r.PageService.Delete(c.Request().Context(), id); err != nil {
		return fail(c, log, err)
	}
	r.SiteService.InvalidateContent()

	log.Info("page deleted", slog.String("page_id", id), slog.String("actor", mw.Actor(c)))

	return c.NoContent(http.StatusNoContent)
}

// ReindexPages godoc
// @Summary Перестроение индекса страниц
// @Description Пересобирает индекс из сохранённых страниц
// @Tags admin-pages
// @Produce json
// @Success 200 {object} response.Response{data=[]models.PageIndexEntry}
// @Security AccessAssertion
// @Router /api/admin/pages/reindex [post]
func (r *Routers) ReindexPages(c echo.Context) error {
	const op = "http.routers.ReindexPages"

	log := r.log.With(
		slog.String("op", op),
	)

	entries, err := r.PageService.RebuildIndex(c.Request().Context())
	if err != nil {
		return fail(c, log, err)
	}
	r.SiteService.InvalidateContent()

	log.Info("page index rebuilt", slog.Int("pages", len(entries)), slog.String("actor", mw.Actor(c)))

	return ok(c, http.StatusOK, entries)
}

// ListSectionTypes godoc
// @Summary Каталог типов секций
// @Tags admin-pages
// @Produce json
// @Success 200 {object} response.Response{data=[]models.SectionTypeInfo}
// @Security AccessAssertion
// @Router /api/admin/section-types [get]
func (r *Routers) ListSectionTypes(c echo.Context) error {
	return ok(c, http.StatusOK, r.PageService.ListSectionTypes())
}

// AddSection godoc
// @Summary Добавление секции на страницу
// @Description Секция создаётся со свойствами по умолчанию для своего типа
// @Tags admin-pages
// @Accept json
// @Produce json
// @Param id path string true "ID страницы"
// @Param request body dto.AddSectionRequest true "Тип и позиция"
// @Success 201 {object} response.Response{data=dto.AddSectionResponse}
// @Failure 400 {object} response.ErrorResponse "Неизвестный тип секции"
// @Failure 404 {object} response.ErrorResponse "Страница не найдена"
// @Security AccessAssertion
// @Router /api/admin/pages/{id}/sections [post]
func (r *Routers) AddSection(c echo.Context) error {
	const op = "http.routers.AddSection"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.AddSectionRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	page, section, err := r.PageService.AddSection(c.Request().Context(), c.Param("id"), req.Type, req.Position)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusCreated, dto.AddSectionResponse{Page: page, Section: section})
}

// UpdateSection godoc
// @Summary Изменение свойств секции
// @Description Свойства заменяются целиком и проверяются по схеме типа
// @Tags admin-pages
// @Accept json
// @Produce json
// @Param id path string true "ID страницы"
// @Param sectionId path string true "ID секции"
// @Param request body dto.UpdateSectionRequest true "Свойства"
// @Success 200 {object} response.Response{data=models.Page}
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Страница или секция не найдена"
// @Security AccessAssertion
// @Router /api/admin/pages/{id}/sections/{sectionId} [put]
func (r *Routers) UpdateSection(c echo.Context) error {
	const op = "http.routers.UpdateSection"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.UpdateSectionRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	page, err := r.PageService.UpdateSection(c.Request().Context(), c.Param("id"), c.Param("sectionId"), req.Properties)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, page)
}

// RemoveSection godoc
// @Summary Удаление секции
// @Tags admin-pages
// @Produce json
// @Param id path string true "ID страницы"
// @Param sectionId path string true "ID секции"
// @Success 200 {object} response.Response{data=models.Page}
// @Failure 404 {object} response.ErrorResponse "Страница или секция не найдена"
// @Security AccessAssertion
// @Router /api/admin/pages/{id}/sections/{sectionId} [delete]
func (r *Routers) RemoveSection(c echo.Context) error {
	const op = "http.routers.RemoveSection"

	log := r.log.With(
		slog.String("op", op),
	)

	page, err := r.PageService.RemoveSection(c.Request().Context(), c.Param("id"), c.Param("sectionId"))
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, page)
}

// MoveSection godoc
// @Summary Перемещение секции
// @Tags admin-pages
// @Accept json
// @Produce json
// @Param id path string true "ID страницы"
// @Param sectionId path string true "ID секции"
// @Param request body dto.MoveRequest true "Новая позиция, с единицы"
// @Success 200 {object} response.Response{data=models.Page}
// @Failure 400 {object} response.ErrorResponse "Позиция вне диапазона"
// @Failure 404 {object} response.ErrorResponse "Страница или секция не найдена"
// @Security AccessAssertion
// @Router /api/admin/pages/{id}/sections/{sectionId}/move [post]
func (r *Routers) MoveSection(c echo.Context) error {
	const op = "http.routers.MoveSection"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.MoveRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	page, err := r.PageService.MoveSection(c.Request().Context(), c.Param("id"), c.Param("sectionId"), *req.Position)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, page)
}
