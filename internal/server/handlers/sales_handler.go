package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tanvirhs/resto/internal/domain/models"
	"github.com/tanvirhs/resto/internal/repository/flatfile"
	"github.com/tanvirhs/resto/internal/service/reporting"
)

// SalesHandler exposes the sales history and daily reports over HTTP.
type SalesHandler struct {
	ledger       *flatfile.SalesRepository
	reportingSvc *reporting.Service
	logger       *zap.Logger
}

// NewSalesHandler constructs the sales HTTP handler adapter.
func NewSalesHandler(ledger *flatfile.SalesRepository, reportingSvc *reporting.Service, logger *zap.Logger) *SalesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesHandler{ledger: ledger, reportingSvc: reportingSvc, logger: logger}
}

// History returns every ledger line in file order.
func (h *SalesHandler) History(c *gin.Context) {
	records, err := h.ledger.LoadAll()
	if err != nil {
		h.logger.Error("failed loading sales history", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sales": records})
}

// DailyReport aggregates the ledger for one calendar day (today by default).
func (h *SalesHandler) DailyReport(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD form"})
			return
		}
		day = parsed
	}

	summary, err := h.reportingSvc.DailySummary(c.Request.Context(), day)
	if err != nil {
		h.logger.Error("failed building daily report", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":   summary,
		"formatted": h.reportingSvc.FormatSummary(summary),
	})
}
