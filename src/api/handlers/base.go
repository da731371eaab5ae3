package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"assethub/src/services"
	"assethub/src/utils"
	redis_utils "assethub/src/utils/redis"
)

type Handler struct {
	Logger      *logrus.Logger
	Assets      *services.AssetService
	Assignments *services.AssignmentService
	Returns     *services.ReturningRequestService
	Reports     *services.ReportService
	Exports     *services.ExportService
	Lookups     *services.LookupService
}

func NewHandler(db *gorm.DB, redisHandler *redis_utils.RedisHandler, logger *logrus.Logger) *Handler {
	outbox := services.NewOutbox(db)
	reports := services.NewReportService(db, redisHandler)
	assets := services.NewAssetService(db, reports)
	return &Handler{
		Logger:      logger,
		Assets:      assets,
		Assignments: services.NewAssignmentService(db, outbox, reports),
		Returns:     services.NewReturningRequestService(db, outbox, reports),
		Reports:     reports,
		Exports:     services.NewExportService(reports, assets),
		Lookups:     services.NewLookupService(db),
	}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	h.Logger.Warning(err)
	utils.WriteError(w, err)
}

func Healthcheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status": "ok"}`))
}

// parseIntParam reads an integer query parameter; bad or absent values fall
// back to def and get clamped downstream.
func parseIntParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}

// parseListParam splits a comma-separated query parameter, dropping blanks.
func parseListParam(r *http.Request, name string) []string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

// parseDateParam reads an optional date-only query parameter; malformed
// values are dropped rather than raised.
func parseDateParam(r *http.Request, name string) *time.Time {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	date, err := utils.ParseDate(raw)
	if err != nil {
		return nil
	}
	return &date
}
