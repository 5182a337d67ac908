package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/okian/iplboard/pkg/logger"
)

// ExportFilename is the attachment name of the workbook.
const ExportFilename = "ipl_analytics.xlsx"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleExport handles GET /api/export.xlsx. The workbook is built in memory
// so a failure can still be reported as JSON.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export"
	var buf bytes.Buffer
	if err := s.deps.Export(r.Context(), &buf); err != nil {
		s.logger.Error(r.Context(), "export failed",
			logger.String("request_id", RequestID(r.Context())),
			logger.Error(err),
		)
		s.writeServiceError(w, Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
