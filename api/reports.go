package api

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
)

const archiveReportFilename = "medvault-archive.xlsx"

// GetArchiveReport renders the caller's document archive as a spreadsheet.
func (h *Handler) GetArchiveReport(c echo.Context) error {
	file, err := h.reports.Archive(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return mapDocumentError(err)
	}

	buf := &bytes.Buffer{}
	if err := file.Write(buf); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+archiveReportFilename+`"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
