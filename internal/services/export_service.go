package services

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eurouni/eurostudy/internal/pdf"
	"github.com/eurouni/eurostudy/internal/preview"
	"github.com/eurouni/eurostudy/internal/storage"
	"github.com/eurouni/eurostudy/internal/utils"
)

// ExportService renders a resume's preview document to a downloadable PDF.
// The rasterizer owns pagination and scaling; this service only derives the
// filename and optionally archives a copy.
type ExportService interface {
	ExportPDF(ctx context.Context, ownerID, id, fileNameHint string) (fileName string, data []byte, err error)
}

type exportService struct {
	resumes  ResumeService
	renderer pdf.Renderer
	uploader storage.Uploader // optional archive target
	log      *logrus.Logger
	now      func() time.Time
}

func NewExportService(resumes ResumeService, renderer pdf.Renderer, uploader storage.Uploader, log *logrus.Logger) ExportService {
	return &exportService{
		resumes:  resumes,
		renderer: renderer,
		uploader: uploader,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *exportService) ExportPDF(ctx context.Context, ownerID, id, fileNameHint string) (string, []byte, error) {
	const op = "ExportService.ExportPDF"

	if s.renderer == nil {
		return "", nil, utils.E(utils.CodeUnavailable, op, "pdf renderer is not configured", nil)
	}

	r, err := s.resumes.GetByID(ctx, ownerID, id)
	if err != nil {
		return "", nil, err
	}

	html, err := preview.RenderHTML(preview.Project(r))
	if err != nil {
		return "", nil, err
	}

	data, err := s.renderer.RenderPDF(ctx, html)
	if err != nil {
		return "", nil, err
	}

	fileName := ExportFileName(fileNameHint, s.now())

	// best-effort archive; the download must not fail because of it
	if s.uploader != nil {
		objectName := "exports/" + ownerID + "/" + fileName
		if _, uerr := s.uploader.Upload(ctx, objectName, "application/pdf", bytes.NewReader(data)); uerr != nil {
			s.log.WithFields(logrus.Fields{
				"resume_id": id,
				"object":    objectName,
			}).WithError(uerr).Warn("failed to archive exported pdf")
		}
	}

	return fileName, data, nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ExportFileName derives "<hint>_<unix-ms>.pdf" from the hint, replacing
// anything a filesystem or Content-Disposition header could trip over.
func ExportFileName(hint string, now time.Time) string {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		hint = "Resume"
	}
	hint = unsafeFileChars.ReplaceAllString(hint, "_")
	hint = strings.Trim(hint, "_")
	if hint == "" {
		hint = "Resume"
	}
	return fmt.Sprintf("%s_%d.pdf", hint, now.UnixMilli())
}
