// Package export serializes scrape results to their on-disk formats.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lmercier/sitescraper/internal/scraper"
)

// csvHeader is the canonical column layout. The list-valued columns hold
// JSON array strings so commas inside content never collide with the CSV
// delimiter.
var csvHeader = []string{
	"url",
	"headings",
	"paragraphs",
	"images",
	"meta_description",
	"meta_keywords",
	"meta_og_title",
}

// WriteCSV writes one row per record, in the order given, to path.
func WriteCSV(records []scraper.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		row, err := csvRow(rec)
		if err != nil {
			return err
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", rec.URL, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func csvRow(rec scraper.Record) ([]string, error) {
	// Nil list fields still serialize as empty JSON arrays.
	if rec.Headings == nil {
		rec.Headings = []string{}
	}
	if rec.Paragraphs == nil {
		rec.Paragraphs = []string{}
	}
	if rec.Images == nil {
		rec.Images = []scraper.Image{}
	}
	headings, err := jsonCell(rec.Headings)
	if err != nil {
		return nil, fmt.Errorf("encode headings for %s: %w", rec.URL, err)
	}
	paragraphs, err := jsonCell(rec.Paragraphs)
	if err != nil {
		return nil, fmt.Errorf("encode paragraphs for %s: %w", rec.URL, err)
	}
	images, err := jsonCell(rec.Images)
	if err != nil {
		return nil, fmt.Errorf("encode images for %s: %w", rec.URL, err)
	}
	return []string{
		rec.URL,
		headings,
		paragraphs,
		images,
		rec.MetaDescription,
		rec.MetaKeywords,
		rec.MetaOgTitle,
	}, nil
}

// WriteJSON writes the records as a pretty-printed JSON array to path,
// preserving non-ASCII characters literally.
func WriteJSON(records []scraper.Record, path string) error {
	if records == nil {
		records = []scraper.Record{}
	}
	payload, err := marshalJSON(records, true)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("write json %s: %w", path, err)
	}
	return nil
}

// ReadJSON parses a file previously produced by WriteJSON.
func ReadJSON(path string) ([]scraper.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json %s: %w", path, err)
	}
	var records []scraper.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse json %s: %w", path, err)
	}
	return records, nil
}

// jsonCell encodes v as a compact JSON string without HTML escaping, so the
// cell content round-trips byte-for-byte through CSV consumers.
func jsonCell(v any) (string, error) {
	payload, err := marshalJSON(v, false)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(payload), "\n"), nil
}

func marshalJSON(v any, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
