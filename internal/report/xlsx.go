package report

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"unicode/utf8"

	"flight_report/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the title of the only worksheet
	SheetName = "Flight Information"

	maxColumnWidth = 255
)

// XLSXHeader is the fixed column order of the spreadsheet
var XLSXHeader = []string{"Aircraft Model", "Scheduled Departure", "Date", "Flight Number", "Image"}

const imageColumn = 5

// XLSXWriter writes departures to a spreadsheet with a logo thumbnail per row
type XLSXWriter struct {
	thumbnailSize int
	padding       int
}

func NewXLSXWriter(thumbnailSize, padding int) *XLSXWriter {
	return &XLSXWriter{thumbnailSize: thumbnailSize, padding: padding}
}

func (w *XLSXWriter) Write(flights []models.AcceptedFlight, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := w.writeHeader(f); err != nil {
		return err
	}

	widths := make([]int, len(XLSXHeader))
	for i, h := range XLSXHeader {
		widths[i] = utf8.RuneCountInString(h)
	}

	for i, fl := range flights {
		row := i + 2
		values := []interface{}{fl.AircraftModel, fl.ScheduledDeparture, fl.Date, fl.FlightNumber}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		for col, v := range values {
			if n := utf8.RuneCountInString(v.(string)); n > widths[col] {
				widths[col] = n
			}
		}

		if fl.ImagePath != "" {
			if err := w.addThumbnail(f, row, fl.ImagePath); err != nil {
				slog.Warn("Could not embed image", "row", row, "image", fl.ImagePath, "error", err)
			}
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, col, col, float64(min(width+w.padding, maxColumnWidth))); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *XLSXWriter) writeHeader(f *excelize.File) error {
	header := make([]interface{}, len(XLSXHeader))
	for i, h := range XLSXHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(XLSXHeader), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return nil
}

// addThumbnail scales the image to a square thumbnail anchored to the
// row's image cell and makes the row tall enough to show it.
func (w *XLSXWriter) addThumbnail(f *excelize.File, row int, imagePath string) error {
	width, height, err := imageSize(imagePath)
	if err != nil {
		return err
	}

	cell, err := excelize.CoordinatesToCellName(imageColumn, row)
	if err != nil {
		return err
	}
	size := float64(w.thumbnailSize)
	if err := f.AddPicture(SheetName, cell, imagePath, &excelize.GraphicOptions{
		ScaleX:      size / float64(width),
		ScaleY:      size / float64(height),
		Positioning: "oneCell",
	}); err != nil {
		return fmt.Errorf("failed to add picture: %w", err)
	}
	return f.SetRowHeight(SheetName, row, size)
}

func imageSize(path string) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return 0, 0, fmt.Errorf("image has no size")
	}
	return cfg.Width, cfg.Height, nil
}
