package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wedding/internal/domain"
	"wedding/internal/services"
)

func ledgerFilter(c *gin.Context) (domain.LedgerFilter, bool) {
	var f domain.LedgerFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid filter", err)
		return f, false
	}
	return f, true
}

// GET /api/payments
func (a *API) ListPayments(c *gin.Context) {
	f, ok := ledgerFilter(c)
	if !ok {
		return
	}
	list, err := a.paymentService(c).List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/payments/summary
func (a *API) PaymentSummary(c *gin.Context) {
	f, ok := ledgerFilter(c)
	if !ok {
		return
	}
	sum, err := a.paymentService(c).Summary(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// GET /api/payments/suggestions?q=
func (a *API) PaymentNameSuggestions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	names, err := a.paymentService(c).SuggestNames(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"names": names})
}

// GET /api/payments/:id
func (a *API) GetPayment(c *gin.Context) {
	p, err := a.paymentService(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /api/payments
func (a *API) CreatePayment(c *gin.Context) {
	var in services.PaymentInput
	if !BindJSONOrError(c, &in) {
		return
	}
	p, err := a.paymentService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// PUT /api/payments/:id
func (a *API) UpdatePayment(c *gin.Context) {
	var in services.PaymentInput
	if !BindJSONOrError(c, &in) {
		return
	}
	p, err := a.paymentService(c).Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/payments/:id
func (a *API) DeletePayment(c *gin.Context) {
	if err := a.paymentService(c).Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment deleted"})
}

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// GET /api/payments/export.xlsx
func (a *API) ExportPaymentsXLSX(c *gin.Context) {
	a.exportPayments(c, mimeXLSX, services.ReportService.BuildSpreadsheet)
}

// GET /api/payments/export.pdf
func (a *API) ExportPaymentsPDF(c *gin.Context) {
	a.exportPayments(c, mimePDF, services.ReportService.BuildPDF)
}

func (a *API) exportPayments(c *gin.Context, mime string, build func(services.ReportService, domain.LedgerSummary) ([]byte, string, error)) {
	f, ok := ledgerFilter(c)
	if !ok {
		return
	}
	sum, err := a.paymentService(c).Summary(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	data, filename, err := build(a.reportService(c), sum)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to build export", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, mime, data)
}
