package utils

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"time"
	"vinopack/models"
	"vinopack/repository"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// GenerateDispatchPDF renders the dispatch note twice (warehouse copy and
// carrier copy), keeping each copy whole on the page.
func GenerateDispatchPDF(repo *repository.PDFRepository, dispatchID string) ([]byte, error) {
	// Fetch warehouse letterhead
	profile, err := repo.GetProfileForPDF()
	if err != nil {
		return nil, err
	}

	// Fetch dispatch note
	note, err := repo.GetDispatchForPDF(dispatchID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	// Format dispatch date safely
	formattedDate := "-"
	if !note.DispatchDate.IsZero() {
		formattedDate = note.DispatchDate.Format("02-01-2006")
	}

	// Prepare contact numbers
	contacts := ""
	if profile != nil {
		for _, c := range profile.Contacts {
			contacts += c.Number + "(" + c.Label + "), "
		}
	}
	if len(contacts) > 2 {
		contacts = contacts[:len(contacts)-2]
	}

	// Bottles across all packs on the note
	var totalBottles int64
	for _, p := range note.Packs {
		for _, c := range p.Contents {
			totalBottles += c.Quantity
		}
	}

	copyTitles := []string{"Copia Almacén", "Copia Transportista"}

	// Load HTML template once
	tmpl, err := template.ParseFiles("templates/dispatch_template.html")
	if err != nil {
		return nil, err
	}

	var fullHTML bytes.Buffer
	for _, title := range copyTitles {
		data := models.DispatchPDFData{
			Company:      profile,
			Note:         note,
			Contacts:     contacts,
			Date:         formattedDate,
			TotalBottles: totalBottles,
			PackCount:    len(note.Packs),
			CopyTitle:    title,
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, err
		}

		// Wrap each copy in a div that avoids breaking across pages
		fullHTML.WriteString("<div class='dispatch-copy'>")
		fullHTML.Write(buf.Bytes())
		fullHTML.WriteString("</div>")
	}

	finalHTML := `
		<!DOCTYPE html>
		<html>
		<head>
		<meta charset="UTF-8">
		<style>
		@page {
			size: A4;
			margin: 20px;
		}
		body {
			font-family: Arial, Helvetica, sans-serif;
			font-size: 12px;
			margin: 0;
			padding: 0;
		}
		.dispatch-copy {
			page-break-inside: avoid;
			border: none;
		}
		</style>
		</head>
		<body>` + fullHTML.String() + `</body></html>`

	// Create temp HTML file
	tmpDir := os.TempDir()
	tmpHTML := filepath.Join(tmpDir, "dispatch_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, []byte(finalHTML), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	// Generate PDF with headless Chrome
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuf []byte
	fileURL := "file://" + tmpHTML

	err = chromedp.Run(ctx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(1*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
