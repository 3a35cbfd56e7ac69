package export

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/NirGallner/asana-go/internal/domain"
	"github.com/NirGallner/asana-go/pkg/asana"
)

// plainNotes renders html_notes as text, keeping line breaks and list items
// on their own lines.
func plainNotes(htmlNotes string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlNotes))
	if err != nil {
		return "", fmt.Errorf("parse html notes: %w", err)
	}

	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li, p").PrependHtml("\n").AppendHtml("\n")

	lines := strings.Split(doc.Text(), "\n")
	kept := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n"), nil
}

// toRecord flattens an API task for publishing. notesErr is non-nil when
// html_notes could not be rendered; plain notes are used instead.
func toRecord(projectGID string, t asana.Task) (rec domain.TaskRecord, notesErr error) {
	rec = domain.TaskRecord{
		GID:          t.GID,
		Name:         t.Name,
		Notes:        strings.TrimSpace(t.Notes),
		Completed:    t.Completed,
		ProjectGID:   projectGID,
		DueOn:        t.DueOn,
		PermalinkURL: t.PermalinkURL,
		ModifiedAt:   t.ModifiedAt,
	}
	if t.Assignee != nil {
		rec.Assignee = t.Assignee.Name
	}
	if t.HTMLNotes != "" {
		text, err := plainNotes(t.HTMLNotes)
		if err != nil {
			return rec, err
		}
		if text != "" {
			rec.Notes = text
		}
	}
	return rec, nil
}
