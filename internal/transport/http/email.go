package http

import (
	"log/slog"
	"net/http"

	"wedding_site/internal/domain/models"
	mw "wedding_site/internal/middleware"
	"wedding_site/internal/transport/http/dto"
	"wedding_site/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// GetEmailTemplate godoc
// @Summary Текущий шаблон письма
// @Tags admin-email
// @Produce json
// @Param type query string false "Тип шаблона" Enums(confirmation, blast)
// @Success 200 {object} response.Response{data=models.EmailTemplate}
// @Failure 400 {object} response.ErrorResponse "Неизвестный тип"
// @Security AccessAssertion
// @Router /api/admin/email-template [get]
func (r *Routers) GetEmailTemplate(c echo.Context) error {
	const op = "http.routers.GetEmailTemplate"

	log := r.log.With(
		slog.String("op", op),
	)

	t := models.TemplateType(c.QueryParam("type"))
	if t == "" {
		t = models.TemplateConfirmation
	}

	tpl, err := r.EmailService.Template(c.Request().Context(), t)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, tpl)
}

// SaveEmailTemplate godoc
// @Summary Сохранение шаблона письма
// @Description Плейсхолдер [[form_data]] заменяется сводкой ответа гостя
// @Tags admin-email
// @Accept json
// @Produce json
// @Param request body dto.EmailTemplateRequest true "Шаблон"
// @Success 201 {object} response.Response{data=models.EmailTemplate}
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Security AccessAssertion
// @Router /api/admin/email-template [post]
func (r *Routers) SaveEmailTemplate(c echo.Context) error {
	const op = "http.routers.SaveEmailTemplate"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.EmailTemplateRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	tpl, err := r.EmailService.SaveTemplate(c.Request().Context(), req.ToDomain())
	if err != nil {
		return fail(c, log, err)
	}

	log.Info("email template saved", slog.String("type", string(tpl.Type)), slog.String("actor", mw.Actor(c)))

	return ok(c, http.StatusCreated, tpl)
}

// PreviewEmail godoc
// @Summary Предпросмотр письма
// @Description Подставляет последний ответ гостя или тестовые данные
// @Tags admin-email
// @Accept json
// @Produce json
// @Param request body dto.EmailPreviewRequest true "Шаблон для предпросмотра"
// @Success 200 {object} response.Response{data=models.EmailMessage}
// @Security AccessAssertion
// @Router /api/admin/email-preview [post]
func (r *Routers) PreviewEmail(c echo.Context) error {
	const op = "http.routers.PreviewEmail"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.EmailPreviewRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	msg, err := r.EmailService.Preview(c.Request().Context(), models.EmailTemplate{
		Type:    req.Type,
		Subject: req.Subject,
		Body:    req.Template,
	})
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, map[string]string{
		"subject": msg.Subject,
		"html":    msg.HTML,
	})
}

// SendTestEmail godoc
// @Summary Тестовое письмо
// @Description Без адреса письмо уходит администратору из конфигурации
// @Tags admin-email
// @Accept json
// @Produce json
// @Param request body dto.TestEmailRequest false "Адрес"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Нет адреса"
// @Security AccessAssertion
// @Router /api/admin/send-test-email [post]
func (r *Routers) SendTestEmail(c echo.Context) error {
	const op = "http.routers.SendTestEmail"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.TestEmailRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	if err := r.EmailService.SendTest(c.Request().Context(), req.Email); err != nil {
		return fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "Test email sent"})
}

// EmailBlast godoc
// @Summary Рассылка всем гостям с адресом
// @Tags admin-email
// @Accept json
// @Produce json
// @Param request body dto.EmailBlastRequest false "Тема и текст вместо сохранённого шаблона"
// @Success 200 {object} response.Response{data=models.BlastResult}
// @Security AccessAssertion
// @Router /api/admin/email-blast [post]
func (r *Routers) EmailBlast(c echo.Context) error {
	const op = "http.routers.EmailBlast"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.EmailBlastRequest
	if errResp := bind(c, &req); errResp != nil {
		return c.JSON(http.StatusBadRequest, errResp)
	}

	result, err := r.EmailService.Blast(c.Request().Context(), models.EmailTemplate{
		Type:    models.TemplateBlast,
		Subject: req.Subject,
		Body:    req.Template,
	})
	if err != nil {
		return fail(c, log, err)
	}

	log.Info("email blast sent", slog.Int("total", result.Total), slog.Int("sent", result.Sent), slog.String("actor", mw.Actor(c)))

	return ok(c, http.StatusOK, result)
}
