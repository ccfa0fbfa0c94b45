package report

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dentalbudget/internal/export"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/respond"
	"github.com/MrJamesThe3rd/dentalbudget/internal/report"
	"github.com/MrJamesThe3rd/dentalbudget/internal/validate"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	reports *report.Service
	exports *export.Service
}

func NewHandler(reports *report.Service, exports *export.Service) *Handler {
	return &Handler{reports: reports, exports: exports}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/variance/{practice_id}/{period_id}", h.variance)
	r.Get("/variance/{practice_id}/{period_id}/export", h.varianceWorkbook)
	r.Get("/pl/{practice_id}", h.profitAndLoss)
	r.Post("/export", h.bundle)
}

func (h *Handler) loadVariance(w http.ResponseWriter, r *http.Request) (*report.Variance, bool) {
	practiceID, ok := respond.PathID(w, r, "practice_id")
	if !ok {
		return nil, false
	}

	periodID, ok := respond.PathID(w, r, "period_id")
	if !ok {
		return nil, false
	}

	v, err := h.reports.Variance(r.Context(), practiceID, periodID)
	if err != nil {
		respond.Error(w, r, err)
		return nil, false
	}

	return v, true
}

func (h *Handler) variance(w http.ResponseWriter, r *http.Request) {
	v, ok := h.loadVariance(w, r)
	if !ok {
		return
	}

	respond.JSON(w, http.StatusOK, toVarianceResponse(v))
}

// varianceWorkbook renders into memory first so a rendering failure can still
// be answered with a JSON error.
func (h *Handler) varianceWorkbook(w http.ResponseWriter, r *http.Request) {
	v, ok := h.loadVariance(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, v); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(v)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write workbook", "error", err)
	}
}

func (h *Handler) profitAndLoss(w http.ResponseWriter, r *http.Request) {
	practiceID, ok := respond.PathID(w, r, "practice_id")
	if !ok {
		return
	}

	start, ok := respond.QueryDate(w, r, "start_date")
	if !ok {
		return
	}

	end, ok := respond.QueryDate(w, r, "end_date")
	if !ok {
		return
	}

	if start == nil || end == nil {
		respond.Detail(w, http.StatusUnprocessableEntity, "start_date and end_date are required")
		return
	}

	pl, err := h.reports.ProfitAndLoss(r.Context(), practiceID, *start, *end)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toProfitAndLossResponse(pl))
}

type bundleRequest struct {
	PracticeID int64   `json:"practice_id" validate:"required,gt=0"`
	PeriodIDs  []int64 `json:"period_ids" validate:"required,min=1,max=24,dive,gt=0"`
}

// bundle exports one workbook per period plus a summary.txt, zipped.
func (h *Handler) bundle(w http.ResponseWriter, r *http.Request) {
	var req bundleRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := validate.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	tmpDir, err := os.MkdirTemp("", "dentalbudget-export-*")
	if err != nil {
		respond.Error(w, r, fmt.Errorf("creating temp dir: %w", err))
		return
	}
	defer os.RemoveAll(tmpDir)

	items, err := h.exports.Export(r.Context(), req.PracticeID, req.PeriodIDs, tmpDir)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	summary := h.exports.GenerateSummary(items)
	if err := os.WriteFile(filepath.Join(tmpDir, "summary.txt"), []byte(summary), 0o644); err != nil {
		respond.Error(w, r, fmt.Errorf("writing summary: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"variance_%s.zip\"", time.Now().Format("20060102")))

	zipWriter := zip.NewWriter(w)
	defer zipWriter.Close()

	err = filepath.Walk(tmpDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		relPath, _ := filepath.Rel(tmpDir, path)

		zf, err := zipWriter.Create(relPath)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(zf, f)

		return err
	})
	if err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}
