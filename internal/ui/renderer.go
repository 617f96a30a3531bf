// Package ui renders the tree, search, and preview panes with tcell.
package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/holgertkey/dtree/internal/search"
	"github.com/holgertkey/dtree/internal/textutil"
	"github.com/holgertkey/dtree/internal/viewer"
)

// Renderer draws the whole screen from a View snapshot.
type Renderer struct {
	screen tcell.Screen
	theme  Theme
}

func NewRenderer(screen tcell.Screen, theme Theme) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// Render draws one frame.
func (r *Renderer) Render(v *View) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h < 3 {
		r.screen.Show()
		return
	}

	treeWidth := w * v.SplitPosition / 100
	if treeWidth < 20 {
		treeWidth = min(20, w)
	}
	previewStart := treeWidth + 1

	r.drawHeader(v, w)

	contentTop := 1
	contentBottom := h - 1

	switch v.Mode {
	case ModeBookmarks:
		r.drawBookmarks(v, 0, contentTop, treeWidth, contentBottom)
	case ModeSearchInput, ModeResults:
		r.drawSearchHeader(v, 0, contentTop, treeWidth)
		r.drawResults(v, 0, contentTop+1, treeWidth, contentBottom)
	default:
		r.drawTree(v, 0, contentTop, treeWidth, contentBottom)
	}

	if previewStart < w {
		borderStyle := tcell.StyleDefault.Foreground(r.theme.Border)
		for y := contentTop; y < contentBottom; y++ {
			r.screen.SetContent(treeWidth, y, '│', nil, borderStyle)
		}
		r.drawPreview(v, previewStart, contentTop, w, contentBottom)
	}

	r.drawStatus(v, w, h)
	r.screen.Show()
}

func (r *Renderer) drawHeader(v *View, w int) {
	style := tcell.StyleDefault.Bold(true)
	title := "dtree  " + textutil.Sanitize(v.RootPath)
	title = textutil.TruncateToWidth(title, w)
	endX := r.drawText(0, 0, w, title, style)
	r.fill(endX, 0, w, style)
}

func (r *Renderer) drawTree(v *View, startX, startY, maxX, maxY int) {
	base := tcell.StyleDefault

	visible := maxY - startY
	end := v.TreeScroll + visible
	if end > len(v.Rows) {
		end = len(v.Rows)
	}

	y := startY
	for i := v.TreeScroll; i < end; i++ {
		row := v.Rows[i]

		style := base.Foreground(r.theme.File)
		if row.IsDir {
			style = base.Foreground(r.theme.Directory)
		}
		if strings.HasPrefix(row.Name, ".") {
			style = base.Foreground(r.theme.Hidden)
		}
		if row.HasError {
			style = base.Foreground(r.theme.Error)
		}
		if i == v.Selected {
			style = base.Background(r.theme.Selected).Foreground(tcell.ColorBlack)
		}

		marker := "  "
		if row.IsDir {
			if row.IsExpanded {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}
		line := strings.Repeat("  ", row.Depth) + marker + textutil.Sanitize(row.Name)
		if row.HasError {
			line += " ⚠"
		}

		sizeText := ""
		if row.IsDir && v.SizeFor != nil {
			if s, ok := v.SizeFor(row.Path); ok {
				sizeText = s
			}
		}

		nameLimit := maxX
		if sizeText != "" {
			nameLimit = maxX - textutil.DisplayWidth(sizeText) - 1
			if nameLimit < startX {
				nameLimit = startX
			}
		}

		endX := r.drawText(startX, y, nameLimit, textutil.TruncateToWidth(line, nameLimit-startX), style)
		r.fill(endX, y, maxX, style)
		if sizeText != "" {
			sizeX := maxX - textutil.DisplayWidth(sizeText)
			r.drawText(sizeX, y, maxX, sizeText, style.Foreground(r.theme.Border))
		}
		y++
	}

	for ; y < maxY; y++ {
		r.fill(startX, y, maxX, base)
	}
}

func (r *Renderer) drawSearchHeader(v *View, startX, y, maxX int) {
	style := tcell.StyleDefault.Foreground(r.theme.Highlight)
	prompt := "> " + textutil.Sanitize(v.SearchQuery)
	endX := r.drawText(startX, y, maxX, prompt, style)
	if v.Mode == ModeSearchInput && endX < maxX {
		r.screen.SetContent(endX, y, '█', nil, style)
		endX++
	}
	r.fill(endX, y, maxX, tcell.StyleDefault)
}

func (r *Renderer) drawResults(v *View, startX, startY, maxX, maxY int) {
	base := tcell.StyleDefault

	if len(v.Results) == 0 {
		msg := "no matches"
		if v.Searching {
			msg = "searching…"
		}
		r.drawText(startX+1, startY, maxX, msg, base.Foreground(r.theme.Border))
		for y := startY; y < maxY; y++ {
			if y > startY {
				r.fill(startX, y, maxX, base)
			}
		}
		return
	}

	visible := maxY - startY
	end := v.ResultScroll + visible
	if end > len(v.Results) {
		end = len(v.Results)
	}

	y := startY
	for i := v.ResultScroll; i < end; i++ {
		res := v.Results[i]
		selected := i == v.ResultSelected

		style := base.Foreground(r.theme.File)
		if res.IsDir {
			style = base.Foreground(r.theme.Directory)
		}
		if selected {
			style = base.Background(r.theme.Selected).Foreground(tcell.ColorBlack)
		}

		marker := "  "
		if selected {
			marker = "▶ "
		}

		scoreText := ""
		if res.HasScore {
			scoreText = fmt.Sprintf("%d", res.Score)
		}
		limit := maxX
		if scoreText != "" {
			limit = maxX - len(scoreText) - 1
			if limit < startX {
				limit = startX
			}
		}

		x := r.drawText(startX, y, limit, marker, style)
		x = r.drawMatchedName(x, y, limit, res, style)
		x = r.drawText(x, y, limit, "  "+textutil.Sanitize(res.Path), style.Foreground(r.theme.Border))
		r.fill(x, y, maxX, style)
		if scoreText != "" {
			r.drawText(maxX-len(scoreText), y, maxX, scoreText, style.Foreground(r.theme.Highlight))
		}
		y++
	}

	for ; y < maxY; y++ {
		r.fill(startX, y, maxX, base)
	}
}

// drawMatchedName draws a result name with the fuzzy-matched bytes
// highlighted. Matched indexes are byte offsets into the raw name, so the
// loop ranges over the raw string and sanitizes each rune on its own.
func (r *Renderer) drawMatchedName(x, y, maxX int, res search.Result, style tcell.Style) int {
	matched := make(map[int]struct{}, len(res.MatchedIndexes))
	for _, idx := range res.MatchedIndexes {
		matched[idx] = struct{}{}
	}
	for i, ru := range res.Name {
		if x >= maxX {
			return x
		}
		s := style
		if _, ok := matched[i]; ok {
			s = style.Foreground(r.theme.Highlight).Bold(true)
		}
		for _, out := range textutil.SanitizeRune(ru) {
			if x >= maxX {
				return x
			}
			r.screen.SetContent(x, y, out, nil, s)
			x += cellWidth(out)
		}
	}
	return x
}

func (r *Renderer) drawBookmarks(v *View, startX, startY, maxX, maxY int) {
	base := tcell.StyleDefault
	r.drawText(startX, startY, maxX, "bookmarks", base.Bold(true))

	y := startY + 1
	if len(v.Bookmarks) == 0 {
		r.drawText(startX+1, y, maxX, "none yet (press a to add)", base.Foreground(r.theme.Border))
		y++
	}
	for i, mark := range v.Bookmarks {
		if y >= maxY {
			break
		}
		style := base.Foreground(r.theme.File)
		if i == v.BookmarkSelected {
			style = base.Background(r.theme.Selected).Foreground(tcell.ColorBlack)
		}
		line := " " + textutil.Sanitize(mark.Name) + "  " + textutil.Sanitize(mark.Path)
		endX := r.drawText(startX, y, maxX, textutil.TruncateToWidth(line, maxX-startX), style)
		r.fill(endX, y, maxX, style)
		y++
	}
	for ; y < maxY; y++ {
		r.fill(startX, y, maxX, base)
	}
}

func (r *Renderer) drawPreview(v *View, startX, startY, maxX, maxY int) {
	base := tcell.StyleDefault
	doc := v.Preview
	if doc == nil {
		for y := startY; y < maxY; y++ {
			r.fill(startX, y, maxX, base)
		}
		return
	}

	gutter := 0
	if v.ShowLineNumbers && !doc.Binary {
		gutter = len(fmt.Sprintf("%d", len(doc.Lines))) + 1
	}

	y := startY
	for i := v.PreviewScroll; i < len(doc.Lines) && y < maxY; i++ {
		x := startX
		if gutter > 0 {
			num := fmt.Sprintf("%*d ", gutter-1, i+1)
			x = r.drawText(x, y, maxX, num, base.Foreground(r.theme.Border))
		}
		for _, span := range doc.Lines[i] {
			if x >= maxX {
				break
			}
			x = r.drawText(x, y, maxX, span.Text, spanStyle(span))
		}
		r.fill(x, y, maxX, base)
		y++
	}

	if doc.Truncated && y < maxY {
		r.drawText(startX, y, maxX, "… (truncated)", base.Foreground(r.theme.Border))
		y++
	}
	for ; y < maxY; y++ {
		r.fill(startX, y, maxX, base)
	}
}

func spanStyle(span viewer.Span) tcell.Style {
	style := tcell.StyleDefault
	if span.Color != "" {
		style = style.Foreground(ParseColor(span.Color))
	}
	if span.Bold {
		style = style.Bold(true)
	}
	if span.Italic {
		style = style.Italic(true)
	}
	return style
}

func (r *Renderer) drawStatus(v *View, w, h int) {
	style := tcell.StyleDefault.Foreground(r.theme.Status)
	if v.StatusIsError {
		style = style.Foreground(r.theme.Error)
	}

	left := v.StatusMessage
	if left == "" && v.Selected >= 0 && v.Selected < len(v.Rows) {
		left = v.Rows[v.Selected].Path
	}
	left = textutil.Sanitize(left)

	var right string
	switch v.Mode {
	case ModeSearchInput, ModeResults:
		if v.Searching {
			right = fmt.Sprintf("%d results · %d scanned…", len(v.Results), v.Visited)
		} else {
			right = fmt.Sprintf("%d results", len(v.Results))
		}
	default:
		right = fmt.Sprintf("%d items", len(v.Rows))
	}

	y := h - 1
	limit := w - textutil.DisplayWidth(right) - 1
	if limit < 0 {
		limit = 0
	}
	endX := r.drawText(0, y, limit, textutil.TruncateToWidth(left, limit), style)
	r.fill(endX, y, w, style)
	r.drawText(w-textutil.DisplayWidth(right), y, w, right, style)
}

// drawText draws text left to right, stopping at maxX; returns the next x.
func (r *Renderer) drawText(x, y, maxX int, text string, style tcell.Style) int {
	for _, ru := range text {
		if x >= maxX {
			break
		}
		r.screen.SetContent(x, y, ru, nil, style)
		x += cellWidth(ru)
	}
	return x
}

func (r *Renderer) fill(x, y, maxX int, style tcell.Style) {
	for ; x < maxX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

func cellWidth(ru rune) int {
	w := runewidth.RuneWidth(ru)
	if w < 1 {
		return 1
	}
	return w
}
