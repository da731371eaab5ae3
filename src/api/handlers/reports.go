package handlers

import (
	"fmt"
	"net/http"
	"time"

	"assethub/src/schemas"
	"assethub/src/utils"
)

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	rows, err := h.Reports.Rows(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, rows, http.StatusOK)
}

func (h *Handler) GetReportPage(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	filter := schemas.ReportFilter{
		Page:    parseIntParam(r, "page", 1),
		Size:    parseIntParam(r, "size", 0),
		SortKey: r.URL.Query().Get("sort"),
		SortDir: r.URL.Query().Get("direction"),
	}

	page, err := h.Reports.Page(ctx, filter)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, page, http.StatusOK)
}

func (h *Handler) ExportReportXLSX(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	file, err := h.Exports.ReportXLSX(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	filename := fmt.Sprintf("asset-report-%s.xlsx", time.Now().Format(utils.ShortDashDateLayout))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := file.Write(w); err != nil {
		h.Logger.WithError(err).Error("failed to stream report workbook")
	}
}

func (h *Handler) ExportAssetsXLSX(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	file, err := h.Exports.AssetsXLSX(ctx, assetFilterFromQuery(r))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	filename := fmt.Sprintf("assets-%s.xlsx", time.Now().Format(utils.ShortDashDateLayout))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := file.Write(w); err != nil {
		h.Logger.WithError(err).Error("failed to stream asset workbook")
	}
}

func (h *Handler) ExportAssetsCSV(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	filename := fmt.Sprintf("assets-%s.csv", time.Now().Format(utils.ShortDashDateLayout))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := h.Exports.AssetsCSV(ctx, w, assetFilterFromQuery(r)); err != nil {
		h.Logger.WithError(err).Error("failed to stream asset csv")
	}
}

func (h *Handler) ExportReportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	filename := fmt.Sprintf("asset-report-%s.csv", time.Now().Format(utils.ShortDashDateLayout))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := h.Exports.ReportCSV(ctx, w); err != nil {
		h.Logger.WithError(err).Error("failed to stream report csv")
	}
}
