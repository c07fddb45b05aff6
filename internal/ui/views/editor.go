package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pullerize/postcal/internal/api"
	"github.com/pullerize/postcal/internal/calendar"
	"github.com/pullerize/postcal/internal/engine"
	"github.com/pullerize/postcal/internal/model"
	"github.com/pullerize/postcal/internal/store"
	"github.com/pullerize/postcal/internal/ui/theme"
)

const backendTimeout = 10 * time.Second

// Exported messages handled by the root model

// ErrorMsg surfaces a failure in the status line
type ErrorMsg struct {
	Err error
}

// StatusMsg surfaces an informational message
type StatusMsg struct {
	Message string
}

// Local message types for the editor view
type postsLoadedMsg struct {
	posts []model.Post
	err   error
}

type postCreatedMsg struct {
	key  string
	post *model.Post
	err  error
}

type postUpdatedMsg struct {
	staged engine.StagedUpdate
	post   *model.Post
	err    error
}

type postDeletedMsg struct {
	id  int64
	err error
}

type totalPushedMsg struct {
	total int
	err   error
}

type editorMode int

const (
	editorModeNormal editorMode = iota
	editorModePicking
	editorModeEditCount
	editorModeConfirmDelete
)

// EditorView is the posting-calendar editor: the active period's rows
// plus all drafts, with field-level editing reconciled against the
// backend.
type EditorView struct {
	backend api.Backend
	eng     *engine.Engine

	width  int
	height int
	today  time.Time

	cursor int
	rows   []store.Row

	mode      editorMode
	picker    DatePicker
	pickerPos calendar.Point
	input     textinput.Model

	statusMsg string
}

// NewEditorView creates the editor for a project
func NewEditorView(backend api.Backend, project model.Project) EditorView {
	ti := textinput.New()
	ti.Placeholder = "posts/day"
	ti.CharLimit = 3

	eng := engine.New(project)
	eng.ActivateForToday(time.Now().UTC())

	return EditorView{
		backend: backend,
		eng:     eng,
		today:   model.DateOnly(time.Now().UTC()),
		input:   ti,
	}
}

// Engine exposes the underlying state machine, mainly for tests
func (v EditorView) Engine() *engine.Engine {
	return v.eng
}

// Init loads the project's posts
func (v EditorView) Init() tea.Cmd {
	return v.loadPosts()
}

// IsInputMode returns whether the view is capturing input
func (v EditorView) IsInputMode() bool {
	return v.mode != editorModeNormal
}

// SetSize sets the view dimensions and repositions an open picker
func (v EditorView) SetSize(width, height int) EditorView {
	v.width = width
	v.height = height
	v.input.Width = 10
	if v.mode == editorModePicking {
		v.pickerPos = v.placePicker()
	}
	return v
}

// SetToday refreshes the date used for time-dependent labels. Driven by
// the periodic refresh tick; never mutates stored state.
func (v EditorView) SetToday(t time.Time) EditorView {
	v.today = model.DateOnly(t)
	return v
}

// loadPosts fetches the project's posts, falling back to windowed
// month fetches when the backend cannot list the whole project.
func (v EditorView) loadPosts() tea.Cmd {
	backend := v.backend
	projectID := v.eng.Project().ID
	per, ok := v.eng.ActivePeriod()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()

		if !ok {
			return postsLoadedMsg{}
		}
		posts, err := api.FetchPeriodPosts(ctx, backend, projectID, per)
		return postsLoadedMsg{posts: posts, err: err}
	}
}

func (v EditorView) createPost(key string, in api.PostInput) tea.Cmd {
	backend := v.backend
	projectID := v.eng.Project().ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		post, err := backend.CreatePost(ctx, projectID, in)
		return postCreatedMsg{key: key, post: post, err: err}
	}
}

func (v EditorView) updatePost(staged engine.StagedUpdate) tea.Cmd {
	backend := v.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		post, err := backend.UpdatePost(ctx, staged.PostID, staged.Input)
		return postUpdatedMsg{staged: staged, post: post, err: err}
	}
}

func (v EditorView) deletePost(id int64) tea.Cmd {
	backend := v.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		err := backend.DeletePost(ctx, id)
		return postDeletedMsg{id: id, err: err}
	}
}

// syncTotal recomputes the aggregate and pushes it upstream when it
// changed since the last confirmed push.
func (v EditorView) syncTotal() tea.Cmd {
	total, changed := v.eng.TotalIfChanged()
	if !changed {
		return nil
	}
	backend := v.backend
	projectID := v.eng.Project().ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		err := backend.UpdateProjectInfo(ctx, projectID, api.ProjectPatch{PostsCount: &total})
		return totalPushedMsg{total: total, err: err}
	}
}

func reportError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

func reportStatus(message string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: message}
	}
}

// refreshRows rebuilds the display rows for the active period
func (v *EditorView) refreshRows() {
	per, ok := v.eng.ActivePeriod()
	if !ok {
		v.rows = nil
		v.cursor = 0
		return
	}
	v.rows = v.eng.Store.DisplayRows(per)
	if v.cursor >= len(v.rows) {
		v.cursor = len(v.rows) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// focusRow moves the cursor to the row holding the given post or draft
func (v *EditorView) focusRow(postID int64, draftKey string) {
	for i, r := range v.rows {
		if (draftKey != "" && r.DraftKey == draftKey) || (postID != 0 && r.Post.ID == postID) {
			v.cursor = i
			return
		}
	}
}

// Update handles messages
func (v EditorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case postsLoadedMsg:
		if msg.err != nil {
			return v, reportError(msg.err)
		}
		v.eng.Store.SetCommitted(msg.posts)
		v.refreshRows()
		v.statusMsg = fmt.Sprintf("Loaded %d posts", len(msg.posts))
		return v, v.syncTotal()

	case postCreatedMsg:
		if msg.err != nil {
			// The draft is left untouched; nothing to roll back.
			return v, reportError(msg.err)
		}
		v.eng.ResolveCreate(msg.key, *msg.post)
		v.refreshRows()
		v.focusRow(msg.post.ID, "")
		return v, v.syncTotal()

	case postUpdatedMsg:
		if msg.err != nil {
			v.eng.FailUpdate(msg.staged)
			v.refreshRows()
			return v, reportError(msg.err)
		}
		v.eng.ResolveUpdate(msg.staged, *msg.post)
		v.refreshRows()
		return v, v.syncTotal()

	case postDeletedMsg:
		if msg.err != nil {
			return v, reportError(msg.err)
		}
		v.eng.ResolveDelete(msg.id)
		v.refreshRows()
		return v, tea.Batch(v.syncTotal(), reportStatus("Post deleted"))

	case totalPushedMsg:
		if msg.err != nil {
			return v, reportError(msg.err)
		}
		v.eng.MarkPushed(msg.total)
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case editorModePicking:
			return v.handlePickerMode(msg)
		case editorModeEditCount:
			return v.handleEditCountMode(msg)
		case editorModeConfirmDelete:
			return v.handleDeleteConfirm(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	return v, nil
}

func (v EditorView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.statusMsg = ""

	switch msg.String() {
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case "j", "down":
		if v.cursor < len(v.rows)-1 {
			v.cursor++
		}
		return v, nil

	case "g":
		v.cursor = 0
		return v, nil

	case "G":
		if len(v.rows) > 0 {
			v.cursor = len(v.rows) - 1
		}
		return v, nil

	case "h", "left", "[":
		if v.eng.SetActiveIndex(v.eng.ActiveIndex() - 1) {
			v.refreshRows()
			// Refetch; a windowed backend only holds the old period.
			return v, v.loadPosts()
		}
		return v, nil

	case "l", "right", "]":
		if v.eng.SetActiveIndex(v.eng.ActiveIndex() + 1) {
			v.refreshRows()
			return v, v.loadPosts()
		}
		return v, nil

	case "a":
		d := v.eng.AddDraft()
		v.refreshRows()
		v.focusRow(0, d.Key)
		v.statusMsg = "Draft added - pick a date to save it"
		return v, v.syncTotal()

	case "t":
		return v.cycleType()

	case "s":
		return v.cycleStatus()

	case "+", "=":
		return v.changeCount(1)

	case "-":
		return v.changeCount(-1)

	case "e":
		row, ok := v.currentRow()
		if !ok {
			return v, nil
		}
		v.mode = editorModeEditCount
		v.input.SetValue(strconv.Itoa(row.Post.PostsPerDay))
		v.input.Focus()
		return v, textinput.Blink

	case "enter", "c":
		row, ok := v.currentRow()
		if !ok {
			return v, nil
		}
		project := v.eng.Project()
		v.picker = NewDatePicker(row.Post.Date, project.StartDate, project.EndDate, v.today)
		v.mode = editorModePicking
		v.pickerPos = v.placePicker()
		return v, nil

	case "d":
		if _, ok := v.currentRow(); !ok {
			return v, nil
		}
		v.mode = editorModeConfirmDelete
		return v, nil

	case "r":
		return v, v.loadPosts()
	}

	return v, nil
}

func (v EditorView) handlePickerMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		v.mode = editorModeNormal
		return v, nil

	case "h", "left":
		v.picker.Move(-1)
	case "l", "right":
		v.picker.Move(1)
	case "k", "up":
		v.picker.Move(-7)
	case "j", "down":
		v.picker.Move(7)
	case "H", "pgup":
		v.picker.MoveMonth(-1)
	case "L", "pgdown":
		v.picker.MoveMonth(1)

	case "enter":
		if !v.picker.CanSelect() {
			// Out-of-range days are inert
			return v, nil
		}
		date := v.picker.Cursor()
		row, ok := v.currentRow()
		v.mode = editorModeNormal
		if !ok {
			return v, nil
		}
		if row.IsDraft() {
			in, ok := v.eng.StageCreate(row.DraftKey, date)
			if !ok {
				return v, nil
			}
			v.refreshRows()
			v.focusRow(0, row.DraftKey)
			return v, v.createPost(row.DraftKey, in)
		}
		staged, ok := v.eng.StageUpdate(row.Post.ID, func(p *model.Post) {
			d := model.DateOnly(date)
			p.Date = &d
		})
		if !ok {
			return v, nil
		}
		v.refreshRows()
		v.focusRow(row.Post.ID, "")
		return v, v.updatePost(staged)
	}

	v.pickerPos = v.placePicker()
	return v, nil
}

func (v EditorView) handleEditCountMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = editorModeNormal
		v.input.Blur()
		return v, nil

	case "enter":
		n, err := strconv.Atoi(strings.TrimSpace(v.input.Value()))
		if err != nil || n < 1 {
			// Out-of-range input never reaches the backend
			return v, nil
		}
		v.mode = editorModeNormal
		v.input.Blur()
		return v.setCount(n)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v EditorView) handleDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		row, ok := v.currentRow()
		v.mode = editorModeNormal
		if !ok {
			return v, nil
		}
		if row.IsDraft() {
			v.eng.RemoveDraft(row.DraftKey)
			v.refreshRows()
			return v, v.syncTotal()
		}
		// Committed rows are removed only after the server confirms
		return v, v.deletePost(row.Post.ID)

	case "n", "N", "esc":
		v.mode = editorModeNormal
		return v, nil
	}
	return v, nil
}

func (v EditorView) currentRow() (store.Row, bool) {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return store.Row{}, false
	}
	return v.rows[v.cursor], true
}

// mutateRow applies a field change to the current row: drafts locally,
// committed posts optimistically with a staged backend update.
func (v EditorView) mutateRow(mutate func(*model.Post)) (tea.Model, tea.Cmd) {
	row, ok := v.currentRow()
	if !ok {
		return v, nil
	}
	if row.IsDraft() {
		v.eng.UpdateDraft(row.DraftKey, mutate)
		v.refreshRows()
		v.focusRow(0, row.DraftKey)
		return v, v.syncTotal()
	}
	staged, ok := v.eng.StageUpdate(row.Post.ID, mutate)
	if !ok {
		return v, nil
	}
	v.refreshRows()
	v.focusRow(row.Post.ID, "")
	return v, v.updatePost(staged)
}

func (v EditorView) cycleType() (tea.Model, tea.Cmd) {
	return v.mutateRow(func(p *model.Post) {
		types := model.PostTypes()
		for i, t := range types {
			if t == p.Type {
				p.Type = types[(i+1)%len(types)]
				return
			}
		}
		p.Type = types[0]
	})
}

func (v EditorView) cycleStatus() (tea.Model, tea.Cmd) {
	today := v.today
	return v.mutateRow(func(p *model.Post) {
		options := model.StatusOptions(p.Date, today)
		current := p.EffectiveStatus(today)
		for i, s := range options {
			if s == current {
				p.Status = options[(i+1)%len(options)]
				return
			}
		}
		p.Status = options[0]
	})
}

func (v EditorView) changeCount(delta int) (tea.Model, tea.Cmd) {
	row, ok := v.currentRow()
	if !ok {
		return v, nil
	}
	next := row.Post.PostsPerDay + delta
	if next < 1 {
		return v, nil
	}
	return v.setCount(next)
}

func (v EditorView) setCount(n int) (tea.Model, tea.Cmd) {
	return v.mutateRow(func(p *model.Post) {
		p.PostsPerDay = n
	})
}

// placePicker computes the popup position for the open picker relative
// to the cursor row. Re-run on open, resize and cursor movement.
func (v EditorView) placePicker() calendar.Point {
	anchorY := 4 + v.cursor // header + period bar + column header above the rows
	return calendar.Place(
		calendar.Rect{X: 2, Y: anchorY, W: 12, H: 1},
		calendar.Size{W: v.width, H: v.height},
		calendar.Size{W: PickerWidth, H: PickerHeight},
		1, 0,
	)
}

// View renders the editor
func (v EditorView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, v.renderPeriodBar())
	sections = append(sections, v.renderTable())
	if v.statusMsg != "" {
		sections = append(sections, theme.Current.Styles.Label.Render(v.statusMsg))
	}
	content := strings.Join(sections, "\n")

	if v.mode == editorModePicking {
		content = overlay(content, v.picker.View(v.today), v.pickerPos)
	}
	if v.mode == editorModeEditCount {
		content += "\n" + theme.Current.Styles.InputFocused.Render("posts/day: "+v.input.View())
	}
	if v.mode == editorModeConfirmDelete {
		content += "\n" + lipgloss.NewStyle().
			Foreground(theme.Current.Theme.Warning).
			Render("Delete this row? (y/n)")
	}
	return content
}

func (v EditorView) renderPeriodBar() string {
	s := theme.Current.Styles
	periods := v.eng.Periods()
	if len(periods) == 0 {
		return s.Label.Render("Project has no start date yet")
	}

	var cells []string
	for i := range periods {
		label := strconv.Itoa(i + 1)
		if i == v.eng.ActiveIndex() {
			cells = append(cells, s.PeriodActive.Render(label))
		} else {
			cells = append(cells, s.PeriodInactive.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, cells...)

	active, _ := v.eng.ActivePeriod()
	detail := fmt.Sprintf("%s  %s  %s", active.Label, active.Range(), v.daysLeft(active))
	return bar + "\n" + s.Subtitle.Render(detail)
}

// daysLeft is a time-dependent label redisplayed by the refresh tick
func (v EditorView) daysLeft(p model.Period) string {
	if model.DayBefore(p.EndDate, v.today) {
		return "ended"
	}
	if model.DayBefore(v.today, p.StartDate) {
		return "not started"
	}
	days := int(model.DateOnly(p.EndDate).Sub(v.today).Hours()/24) + 1
	return fmt.Sprintf("%d days left", days)
}

func (v EditorView) renderTable() string {
	s := theme.Current.Styles

	header := s.Label.Render(fmt.Sprintf("  %-12s %-10s %5s  %-12s", "DATE", "TYPE", "/DAY", "STATUS"))
	lines := []string{header}

	if len(v.rows) == 0 {
		lines = append(lines, s.Label.Render("  No posts this period - press 'a' to add one"))
	}

	for i, row := range v.rows {
		date := "—"
		if row.Post.Date != nil {
			date = row.Post.Date.Format("Mon, Jan 2")
		}

		status := row.Post.EffectiveStatus(v.today)
		statusCell := lipgloss.NewStyle().Foreground(v.statusColor(status)).Render(string(status))
		typeCell := lipgloss.NewStyle().Foreground(v.typeColor(row.Post.Type)).Render(string(row.Post.Type))

		line := fmt.Sprintf("%-12s %s %5d  %s", date, padANSI(typeCell, 10), row.Post.PostsPerDay, statusCell)
		if row.IsDraft() {
			line += s.RowDraft.Render("  draft")
		}

		cursor := "  "
		if i == v.cursor {
			cursor = s.RowSelected.Render("> ")
		}
		lines = append(lines, cursor+line)
	}

	return strings.Join(lines, "\n")
}

func (v EditorView) statusColor(s model.Status) lipgloss.Color {
	t := theme.Current.Theme
	switch s {
	case model.StatusApproved:
		return t.StatusApproved
	case model.StatusCancelled:
		return t.StatusCancelled
	case model.StatusOverdue:
		return t.StatusOverdue
	default:
		return t.StatusInProgress
	}
}

func (v EditorView) typeColor(pt model.PostType) lipgloss.Color {
	t := theme.Current.Theme
	switch pt {
	case model.PostTypeStatic:
		return t.TypeStatic
	case model.PostTypeCarousel:
		return t.TypeCarousel
	default:
		return t.TypeVideo
	}
}

// padANSI pads a styled string to the given printable width
func padANSI(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// overlay draws a popup block over the base content at the given point
func overlay(base, popup string, pos calendar.Point) string {
	baseLines := strings.Split(base, "\n")
	popupLines := strings.Split(popup, "\n")

	for len(baseLines) < pos.Y+len(popupLines) {
		baseLines = append(baseLines, "")
	}
	indent := strings.Repeat(" ", pos.X)
	for i, pl := range popupLines {
		baseLines[pos.Y+i] = indent + pl
	}
	return strings.Join(baseLines, "\n")
}
