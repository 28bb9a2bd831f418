package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"focusboard/internal/domain"
)

const titlePrefix = "# "

// Opener implements ports.NoteEditor
type Opener struct {
	dir string
}

// NewOpener creates an opener that keeps drafts in dir (os.TempDir when empty)
func NewOpener(dir string) *Opener {
	return &Opener{dir: dir}
}

// WriteDraft writes "# <title>", a blank line, then the content
func (o *Opener) WriteDraft(n domain.Note) (string, error) {
	f, err := os.CreateTemp(o.dir, fmt.Sprintf("note-%d-*.md", n.ID))
	if err != nil {
		return "", fmt.Errorf("failed to create draft: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatDraft(n.Title, n.Content)); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write draft: %w", err)
	}
	return f.Name(), nil
}

// ReadDraft parses an edited draft and removes it
func (o *Opener) ReadDraft(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read draft: %w", err)
	}
	os.Remove(path)

	title, content := ParseDraft(string(data))
	return title, content, nil
}

// Command returns an exec.Cmd for opening a file in the editor
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// FormatDraft renders a note as editable text
func FormatDraft(title, content string) string {
	return titlePrefix + title + "\n\n" + content
}

// ParseDraft splits editable text back into title and content. Without a
// heading line the whole text is content and the title is empty.
func ParseDraft(text string) (string, string) {
	first, rest, _ := strings.Cut(text, "\n")
	if !strings.HasPrefix(first, titlePrefix) {
		return "", text
	}
	title := strings.TrimSpace(strings.TrimPrefix(first, titlePrefix))
	return title, strings.TrimPrefix(rest, "\n")
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	editors := []string{"nvim", "vim", "vi", "nano"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
