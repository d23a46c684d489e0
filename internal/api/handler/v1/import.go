package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pracazumbi/presenca-api/internal/api/handler/v1/request"
	"github.com/pracazumbi/presenca-api/internal/api/handler/v1/response"
	"github.com/pracazumbi/presenca-api/internal/ingest"
	"github.com/pracazumbi/presenca-api/internal/service"
)

type ImportService interface {
	Import(ctx context.Context, r io.Reader, opts service.ImportOptions) (service.ImportResult, error)
}

type ImportHandler struct {
	svc ImportService
}

func NewImportHandler(svc ImportService) *ImportHandler {
	return &ImportHandler{
		svc: svc,
	}
}

// HandleImport godoc
// @Summary      Import an attendance spreadsheet
// @Description  Stores the rows of a semicolon separated spreadsheet. Only available with the postgres source.
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file            formData  file    true   "Attendance spreadsheet"
// @Param        dedupe          formData  bool    false  "Keep the last row per participant and day"
// @Param        skip_malformed  formData  bool    false  "Report bad rows instead of failing"
// @Success      201             {object}  service.ImportResult
// @Failure      400             {object}  response.Err
// @Failure      409             {object}  response.Err
// @Failure      422             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Failure      501             {object}  response.Err
// @Router       /imports [post]
func (h *ImportHandler) HandleImport(ctx *gin.Context) {
	var req request.ImportRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("file is required: %w", err)))
		return
	}

	file, err := header.Open()
	if err != nil {
		err = fmt.Errorf("HandleImport -> header.Open -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}
	defer file.Close()

	result, err := h.svc.Import(ctx.Request.Context(), file, service.ImportOptions{
		Dedupe:        req.Dedupe,
		SkipMalformed: req.SkipMalformed,
	})
	if err != nil {
		var merr *ingest.MalformedRecordError
		switch {
		case errors.Is(err, service.ErrImportUnsupported):
			response.RenderErr(ctx, response.ErrNotImplemented(service.ErrImportUnsupported))
		case errors.As(err, &merr):
			response.RenderErr(ctx, response.ErrUnprocessable(merr, service.RejectedRow{
				Line:   merr.Line,
				Field:  merr.Field,
				Value:  merr.Value,
				Reason: merr.Reason(),
			}))
		case errors.Is(err, service.ErrDuplicateRecord):
			response.RenderErr(ctx, response.ErrConflict(service.ErrDuplicateRecord))
		default:
			err = fmt.Errorf("HandleImport -> h.svc.Import -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, result)
}
