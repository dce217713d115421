package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/daybookhq/daybook/internal/models"
	"github.com/daybookhq/daybook/internal/validation"
)

type NotesListCmd struct {
	Category string `short:"c" help:"Limit to one category (personal|school|work|ideas|random)."`
}

func (c *NotesListCmd) Run(ctx *Context) error {
	notes, err := ctx.Store.ListNotes()
	if err != nil {
		return err
	}

	cats := models.Categories
	if c.Category != "" {
		cat := models.Category(c.Category)
		if !models.ValidCategory(cat) {
			return fmt.Errorf("unknown category: %q", c.Category)
		}
		cats = []models.Category{cat}
	}

	for _, cat := range cats {
		list := notes[cat]
		fmt.Printf("%s (%d)\n", cat, len(list))
		for _, n := range list {
			marker := ""
			if len(n.Attachments) > 0 {
				marker = fmt.Sprintf("  [%d attachments]", len(n.Attachments))
			}
			fmt.Printf("  %d  %s%s\n", n.ID, n.Title, marker)
		}
	}
	return nil
}

type NotesAddCmd struct {
	Title    string `arg:"" help:"Note title."`
	Content  string `arg:"" optional:"" help:"Note content."`
	Category string `short:"c" help:"Category." default:"personal"`
}

func (c *NotesAddCmd) Run(ctx *Context) error {
	cat := models.Category(c.Category)
	note := models.Note{
		Title:     c.Title,
		Content:   c.Content,
		UpdatedAt: time.Now().Format(time.RFC3339),
	}
	if err := validation.ValidateNote(cat, note); err != nil {
		return err
	}

	saved, err := ctx.Store.SaveNote(cat, note)
	if err != nil {
		return err
	}
	fmt.Printf("Added note: %s (id %d, %s)\n", saved.Title, saved.ID, cat)
	return nil
}

type NotesShowCmd struct {
	ID       string `arg:"" help:"Note id."`
	Category string `short:"c" help:"Category to search in."`
}

func (c *NotesShowCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	notes, err := ctx.Store.ListNotes()
	if err != nil {
		return err
	}
	cat, note, err := findNote(notes, models.Category(c.Category), id)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n\n%s\n", note.Title, cat, note.Content)
	if len(note.Attachments) > 0 {
		fmt.Println("\nAttachments:")
		for _, a := range note.Attachments {
			fmt.Printf("  %s (%s) %s\n", a.Name, a.Type, a.Path)
		}
	}
	return nil
}

type NotesDeleteCmd struct {
	ID       string `arg:"" help:"Note id."`
	Category string `short:"c" help:"Category to search in."`
}

func (c *NotesDeleteCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	notes, err := ctx.Store.ListNotes()
	if err != nil {
		return err
	}
	cat, note, err := findNote(notes, models.Category(c.Category), id)
	if err != nil {
		return err
	}

	// Attachment files go first; the record is removed even if some
	// payload deletions fail.
	if err := ctx.Store.DeleteNote(cat, id); err != nil {
		return err
	}
	fmt.Printf("Deleted note %q and %d attachment(s)\n", note.Title, len(note.Attachments))
	return nil
}

type NotesAttachCmd struct {
	ID       string   `arg:"" help:"Note id."`
	Files    []string `arg:"" type:"existingfile" help:"Files to attach."`
	Category string   `short:"c" help:"Category to search in."`
}

// Run attaches each file in order. One full read-write cycle per file: a
// failure on one file does not roll back files already saved.
func (c *NotesAttachCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	notes, err := ctx.Store.ListNotes()
	if err != nil {
		return err
	}
	cat, note, err := findNote(notes, models.Category(c.Category), id)
	if err != nil {
		return err
	}

	for _, file := range c.Files {
		payload, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		name := filepath.Base(file)
		rel, err := ctx.Store.SaveAttachment(payload, name, note.ID)
		if err != nil {
			return fmt.Errorf("failed to save %s: %w", name, err)
		}
		note.Attachments = append(note.Attachments, models.Attachment{
			Name: name,
			Path: rel,
			Type: mimeType(name),
		})
		fmt.Printf("Attached %s -> %s\n", name, rel)
	}

	note.UpdatedAt = time.Now().Format(time.RFC3339)
	if _, err := ctx.Store.SaveNote(cat, note); err != nil {
		return err
	}
	return nil
}

type NotesCopyCmd struct {
	ID       string `arg:"" help:"Note id."`
	Category string `short:"c" help:"Category to search in."`
}

func (c *NotesCopyCmd) Run(ctx *Context) error {
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	notes, err := ctx.Store.ListNotes()
	if err != nil {
		return err
	}
	_, note, err := findNote(notes, models.Category(c.Category), id)
	if err != nil {
		return err
	}

	if err := clipboard.WriteAll(note.Content); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	fmt.Printf("Copied %q to clipboard\n", note.Title)
	return nil
}

func mimeType(name string) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if t == "" {
		return "application/octet-stream"
	}
	return t
}
