package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PDFImageStrategy rasterizes the table into bitmaps and places one per
// PDF page. The output is a pixel-exact snapshot of the rendered table,
// not machine-readable text; column count and row volume are bounded by
// the bitmap dimensions, so the text-table strategy is the better pick
// for large record sets.
type PDFImageStrategy struct{}

const (
	rasterColWidth    = 140
	rasterRowHeight   = 18
	rasterHeaderH     = 22
	rasterPadding     = 16
	rasterRowsPerPage = 40
)

func (s *PDFImageStrategy) ContentType() string { return "application/pdf" }

func (s *PDFImageStrategy) Extension() string { return "pdf" }

func (s *PDFImageStrategy) Render(result *Result, opts Options) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})

	pageW := gopdf.PageSizeA4.W
	pageH := gopdf.PageSizeA4.H
	usableW := pageW - 80
	usableH := pageH - 80

	for chunk := 0; chunk*rasterRowsPerPage < len(result.Records) || chunk == 0; chunk++ {
		lo := chunk * rasterRowsPerPage
		hi := lo + rasterRowsPerPage
		if hi > len(result.Records) {
			hi = len(result.Records)
		}

		img := s.renderChunk(result, opts, lo, hi, chunk == 0)

		var pngBuf bytes.Buffer
		if err := png.Encode(&pngBuf, img); err != nil {
			return nil, err
		}
		holder, err := gopdf.ImageHolderByBytes(pngBuf.Bytes())
		if err != nil {
			return nil, err
		}

		// Fit the bitmap to the usable page area, preserving aspect
		imgW := float64(img.Bounds().Dx())
		imgH := float64(img.Bounds().Dy())
		scale := usableW / imgW
		if imgH*scale > usableH {
			scale = usableH / imgH
		}

		pdf.AddPage()
		if err := pdf.ImageByHolder(holder, 40, 40, &gopdf.Rect{W: imgW * scale, H: imgH * scale}); err != nil {
			return nil, err
		}

		if hi >= len(result.Records) {
			break
		}
	}

	return pdf.GetBytesPdfReturnErr()
}

// renderChunk draws rows [lo,hi) plus the header row, and on the first
// chunk the title and summary block, into a fresh bitmap.
func (s *PDFImageStrategy) renderChunk(result *Result, opts Options, lo, hi int, first bool) *image.RGBA {
	cols := len(result.Columns)
	width := rasterPadding*2 + cols*rasterColWidth

	titleH := 0
	if first {
		titleH = 34
		if opts.IncludeSummary && result.Summary != nil {
			titleH += 16 * (2 + len(result.Summary.Filters))
			titleH += 8
		}
	}
	height := rasterPadding*2 + titleH + rasterHeaderH + (hi-lo)*rasterRowHeight

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	y := rasterPadding
	if first {
		drawText(img, rasterPadding, y+16, result.Title, color.Black)
		y += 34
		if opts.IncludeSummary && result.Summary != nil {
			gray := color.RGBA{90, 90, 90, 255}
			drawText(img, rasterPadding, y+12, fmt.Sprintf("Total records: %d", result.Summary.TotalRecords), gray)
			y += 16
			drawText(img, rasterPadding, y+12, "Generated: "+result.Summary.GeneratedAt.Format("2006-01-02 15:04:05"), gray)
			y += 16
			for _, f := range result.Summary.Filters {
				drawText(img, rasterPadding, y+12, "Filter: "+f, gray)
				y += 16
			}
			y += 8
		}
	}

	// 7px glyphs in basicfont.Face7x13, keep a cell's text inside its column
	maxChars := rasterColWidth/7 - 2

	headerBg := color.RGBA{224, 224, 224, 255}
	fillRect(img, rasterPadding, y, cols*rasterColWidth, rasterHeaderH, headerBg)
	for i, col := range result.Columns {
		drawText(img, rasterPadding+i*rasterColWidth+4, y+15, truncateCell(col, maxChars), color.Black)
	}
	y += rasterHeaderH

	line := color.RGBA{200, 200, 200, 255}
	for r := lo; r < hi; r++ {
		rec := result.Records[r]
		for i, col := range result.Columns {
			drawText(img, rasterPadding+i*rasterColWidth+4, y+13, truncateCell(cellString(rec[col]), maxChars), color.Black)
		}
		y += rasterRowHeight
		hline(img, rasterPadding, y, cols*rasterColWidth, line)
	}

	return img
}

func drawText(img *image.RGBA, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func fillRect(img *image.RGBA, x, y, w, h int, c color.Color) {
	draw.Draw(img, image.Rect(x, y, x+w, y+h), image.NewUniform(c), image.Point{}, draw.Src)
}

func hline(img *image.RGBA, x, y, w int, c color.Color) {
	for i := 0; i < w; i++ {
		img.Set(x+i, y, c)
	}
}
