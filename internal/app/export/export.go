package export

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	"echonote/internal/app/model"
)

// ToExcel writes the note list, transcripts included, to an xlsx workbook.
func ToExcel(notes []model.VoiceNote, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Voice Notes")
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "Title"
	headerRow.AddCell().Value = "Created At"
	headerRow.AddCell().Value = "Duration (s)"
	headerRow.AddCell().Value = "Filename"
	headerRow.AddCell().Value = "Transcript"

	for _, n := range notes {
		row := sheet.AddRow()
		row.AddCell().Value = n.ID
		row.AddCell().Value = n.Title
		row.AddCell().Value = n.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = fmt.Sprintf("%.2f", n.Duration)
		row.AddCell().Value = n.Filename
		if n.Transcript != nil {
			row.AddCell().Value = *n.Transcript
		} else {
			row.AddCell().Value = ""
		}
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("failed to save %s: %w", outputFilePath, err)
	}
	return nil
}
