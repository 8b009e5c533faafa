package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebot/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotebot/internal/app"
	"github.com/jsamuelsen/quotebot/internal/domain"
)

// QuoteService is the read side used by the API.
type QuoteService interface {
	GetTodayQuote(ctx context.Context) (*domain.DailyQuote, error)
	GetQuoteForDate(ctx context.Context, date string) (*domain.DailyQuote, error)
	ListQuotes(ctx context.Context, month, from string, limit int) (*app.QuotePage, error)
}

// QuoteHandler serves the quote read API to mobile clients.
type QuoteHandler struct {
	service QuoteService
}

// NewQuoteHandler creates a quote handler.
func NewQuoteHandler(service QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// GetTodayQuote handles GET /api/v1/quotes/today.
//
// @Summary Today's quote
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/today [get]
func (h *QuoteHandler) GetTodayQuote(c *gin.Context) {
	quote, err := h.service.GetTodayQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromDailyQuote(quote))
}

// GetQuoteForDate handles GET /api/v1/quotes/:date.
//
// @Summary Quote scheduled for a date
// @Tags quotes
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{date} [get]
func (h *QuoteHandler) GetQuoteForDate(c *gin.Context) {
	var params dto.QuoteDateParams
	if err := dto.BindURI(c, &params); err != nil {
		dto.HandleError(c, err)
		return
	}

	quote, err := h.service.GetQuoteForDate(c.Request.Context(), params.Date)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromDailyQuote(quote))
}

// ListQuotes handles GET /api/v1/quotes?month=&cursor=&limit=.
// Without a month it lists from today onward.
//
// @Summary List scheduled quotes
// @Tags quotes
// @Produce json
// @Param month query string false "Month (YYYY-MM)"
// @Param cursor query string false "nextCursor of the previous page"
// @Param limit query int false "Page size (1-100, default 31)"
// @Success 200 {object} dto.PaginatedResponse[dto.QuoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var req dto.ListQuotesRequest
	if err := dto.BindQuery(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	from, err := req.StartDate()
	if err != nil {
		dto.HandleError(c, dto.Field("cursor", err.Error()))
		return
	}

	page, err := h.service.ListQuotes(c.Request.Context(), req.Month, from, req.GetLimit())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	items := make([]dto.QuoteResponse, 0, len(page.Quotes))
	for i := range page.Quotes {
		items = append(items, dto.FromDailyQuote(&page.Quotes[i]))
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(items, req.NextCursor(page.Next)))
}

// RegisterQuoteRoutes registers the read API on rg.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListQuotes)
	quotes.GET("/today", h.GetTodayQuote)
	quotes.GET("/:date", h.GetQuoteForDate)
}
