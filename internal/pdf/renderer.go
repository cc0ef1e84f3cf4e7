// Package pdf turns rendered preview HTML into an A4 PDF. Pagination and
// scaling belong to the rasterizer, not to this service.
package pdf

import "context"

type Renderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}
