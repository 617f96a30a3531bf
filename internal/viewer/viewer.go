// Package viewer loads bounded, highlighted previews of regular files.
package viewer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/holgertkey/dtree/internal/textutil"
)

const (
	// readByteLimit caps how much of a file is read for a preview.
	readByteLimit = 256 * 1024
	// binarySniffBytes is how much of the head is inspected for NUL bytes.
	binarySniffBytes = 8 * 1024

	hexDumpMaxBytes = 1024
	hexLineWidth    = 16
)

// Span is a run of text with an optional foreground colour. Colour is a
// "#rrggbb" string so the package stays independent of the render backend.
type Span struct {
	Text   string
	Color  string
	Bold   bool
	Italic bool
}

// Document is a ready-to-render preview.
type Document struct {
	Path      string
	Binary    bool
	Lines     [][]Span
	Truncated bool
	TotalSize int64
	Language  string
}

// Options control how much is loaded and whether syntax colours are applied.
type Options struct {
	MaxLines  int
	Highlight bool
	Theme     string
}

// Load builds a preview document for path. Directories are an error; binary
// files get a hex dump instead of text lines.
func Load(path string, opts Options) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("viewer: %s is a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, readByteLimit))
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Path:      path,
		TotalSize: info.Size(),
		Truncated: info.Size() > int64(len(content)),
	}

	if looksBinary(content) {
		doc.Binary = true
		doc.Lines = hexDump(content, info.Size())
		return doc, nil
	}

	lines := splitLines(string(content))
	if opts.MaxLines > 0 && len(lines) > opts.MaxLines {
		lines = lines[:opts.MaxLines]
		doc.Truncated = true
	}

	if opts.Highlight && len(lines) > 0 {
		if styled, language, ok := highlight(path, lines, opts.Theme); ok {
			doc.Lines = styled
			doc.Language = language
			return doc, nil
		}
	}

	doc.Lines = make([][]Span, len(lines))
	for i, line := range lines {
		doc.Lines[i] = []Span{{Text: cleanLine(line)}}
	}
	return doc, nil
}

// looksBinary reports whether the head of content contains a NUL byte.
func looksBinary(content []byte) bool {
	head := content
	if len(head) > binarySniffBytes {
		head = head[:binarySniffBytes]
	}
	return bytes.IndexByte(head, 0) >= 0
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func cleanLine(line string) string {
	return textutil.ExpandTabs(textutil.Sanitize(line), textutil.DefaultTabWidth)
}

// highlight tokenises the joined lines with a lexer picked by filename.
// It reports false when no lexer matches, so the caller falls back to
// plain text.
func highlight(path string, lines []string, theme string) ([][]Span, string, bool) {
	lexer := lexers.Match(path)
	if lexer == nil {
		return nil, "", false
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, strings.Join(lines, "\n"))
	if err != nil {
		return nil, "", false
	}

	styled := make([][]Span, 1, len(lines))
	for token := iterator(); token != chroma.EOF; token = iterator() {
		entry := style.Get(token.Type)
		for i, part := range strings.Split(token.Value, "\n") {
			if i > 0 {
				styled = append(styled, nil)
			}
			if part == "" {
				continue
			}
			cur := len(styled) - 1
			styled[cur] = append(styled[cur], Span{
				Text:   cleanLine(part),
				Color:  spanColor(entry),
				Bold:   entry.Bold == chroma.Yes,
				Italic: entry.Italic == chroma.Yes,
			})
		}
	}

	// Tokenising joined text can leave a trailing empty line behind.
	if len(styled) > len(lines) {
		styled = styled[:len(lines)]
	}
	return styled, lexer.Config().Name, true
}

func spanColor(entry chroma.StyleEntry) string {
	if !entry.Colour.IsSet() {
		return ""
	}
	return entry.Colour.String()
}

// hexDump renders the classic offset / hex / ASCII layout for the head of a
// binary file.
func hexDump(content []byte, totalSize int64) [][]Span {
	if len(content) > hexDumpMaxBytes {
		content = content[:hexDumpMaxBytes]
	}

	lines := make([][]Span, 0, len(content)/hexLineWidth+2)
	for offset := 0; offset < len(content); offset += hexLineWidth {
		end := offset + hexLineWidth
		if end > len(content) {
			end = len(content)
		}
		lines = append(lines, []Span{{Text: hexLine(offset, content[offset:end])}})
	}

	if int64(len(content)) < totalSize {
		note := fmt.Sprintf("… (%d bytes not shown)", totalSize-int64(len(content)))
		lines = append(lines, []Span{{Text: note}})
	}
	return lines
}

func hexLine(offset int, chunk []byte) string {
	var b strings.Builder
	b.Grow(80)
	fmt.Fprintf(&b, "%08X  ", offset)

	for i := 0; i < hexLineWidth; i++ {
		if i < len(chunk) {
			fmt.Fprintf(&b, "%02X ", chunk[i])
		} else {
			b.WriteString("   ")
		}
		if i == 7 {
			b.WriteByte(' ')
		}
	}

	b.WriteString(" |")
	for _, c := range chunk {
		if c >= 32 && c <= 126 {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	for i := len(chunk); i < hexLineWidth; i++ {
		b.WriteByte(' ')
	}
	b.WriteByte('|')
	return b.String()
}

// PlainText flattens a document's lines, mainly for tests and copy-out.
func (d *Document) PlainText() []string {
	out := make([]string, len(d.Lines))
	for i, line := range d.Lines {
		var b strings.Builder
		for _, span := range line {
			b.WriteString(span.Text)
		}
		out[i] = b.String()
	}
	return out
}
