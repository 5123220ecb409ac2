// Package ui is the fyne host around the ink engine: the note list, the text
// editor, the ink panel and its toolbar.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"inkpad/internal/ai"
	"inkpad/internal/config"
	"inkpad/internal/export"
	"inkpad/internal/ink"
	"inkpad/internal/state"
)

const appID = "io.github.inkpad"

// Options wires the window to its collaborators.
type Options struct {
	Config    *config.Config
	Notebook  *state.Notebook
	Assistant *ai.Assistant
	// NotebookPath is where the notebook is saved. Empty disables saving
	// on close.
	NotebookPath string
}

// Window is the main notes window.
type Window struct {
	win       fyne.Window
	nb        *state.Notebook
	assistant *ai.Assistant
	path      string

	folders []state.Folder
	folder  string
	notes   []state.Note
	noteID  string
	// loading suppresses entry callbacks while a note is shown.
	loading bool

	board     *InkWidget
	toolbar   *Toolbar
	folderSel *widget.Select
	list      *widget.List
	title     *widget.Entry
	text      *widget.Entry
	status    *widget.Label
}

func RunApp(opts Options) {
	a := app.NewWithID(appID)
	w := NewWindow(a, opts)
	w.win.ShowAndRun()
	if w.path != "" {
		w.saveNotebook()
	}
}

// NewWindow builds the window and shows the most recent note, creating one
// when the notebook is empty.
func NewWindow(a fyne.App, opts Options) *Window {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	w := &Window{
		win:       a.NewWindow("Inkpad"),
		nb:        opts.Notebook,
		assistant: opts.Assistant,
		path:      opts.NotebookPath,
		folder:    state.DefaultFolderID,
		status:    widget.NewLabel("Ready"),
	}
	if w.nb == nil {
		w.nb = state.NewNotebook()
	}
	if w.assistant == nil {
		w.assistant = ai.NewAssistant(nil)
	}
	w.win.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	w.board = NewInkWidget(cfg.ToolConfig())
	w.board.OnStrokes = w.strokesChanged
	w.toolbar = NewToolbar(w.board)
	w.toolbar.OnUndo = w.undo
	w.toolbar.OnRedo = w.redo

	w.win.SetMainMenu(w.menu())
	w.win.SetContent(w.layout())
	w.reloadFolders()
	w.showFolder(state.DefaultFolderID)
	return w
}

func (w *Window) layout() fyne.CanvasObject {
	w.folderSel = widget.NewSelect(nil, func(string) {
		if i := w.folderSel.SelectedIndex(); i >= 0 && i < len(w.folders) && w.folders[i].ID != w.folder {
			w.showFolder(w.folders[i].ID)
		}
	})
	w.list = widget.NewList(
		func() int { return len(w.notes) },
		func() fyne.CanvasObject { return widget.NewLabel("note title") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(displayTitle(w.notes[id]))
		},
	)
	w.list.OnSelected = func(id widget.ListItemID) {
		if id < len(w.notes) && w.notes[id].ID != w.noteID {
			w.showNote(w.notes[id].ID)
		}
	}

	folderBar := container.NewBorder(nil, nil, nil,
		container.NewHBox(
			widget.NewButtonWithIcon("", theme.FolderNewIcon(), w.newFolder),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), w.deleteFolder),
		),
		w.folderSel)
	noteBar := container.NewHBox(
		widget.NewButtonWithIcon("New note", theme.ContentAddIcon(), w.newNote),
		widget.NewButtonWithIcon("", theme.MailForwardIcon(), w.moveNote),
		widget.NewButtonWithIcon("", theme.DeleteIcon(), w.deleteNote),
	)
	sidebar := container.NewBorder(folderBar, noteBar, nil, nil, w.list)

	w.title = widget.NewEntry()
	w.title.SetPlaceHolder("Untitled")
	w.title.OnChanged = func(s string) {
		if !w.loading && w.noteID != "" {
			w.report(w.nb.RenameNote(w.noteID, s))
			w.refreshList()
		}
	}
	w.text = widget.NewMultiLineEntry()
	w.text.Wrapping = fyne.TextWrapWord
	w.text.OnChanged = func(s string) {
		if !w.loading && w.noteID != "" {
			w.report(w.nb.UpdateText(w.noteID, s))
		}
	}

	assist := container.NewHBox(
		widget.NewButton("Transcribe", w.transcribe),
		widget.NewButton("Summarize", w.summarize),
	)
	inkPanel := container.NewBorder(w.toolbar.Content(), assist, nil, nil, w.board)
	editor := container.NewVSplit(w.text, inkPanel)
	editor.Offset = 0.3

	split := container.NewHSplit(sidebar, container.NewBorder(w.title, nil, nil, nil, editor))
	split.Offset = 0.22
	return container.NewBorder(nil, w.status, nil, nil, split)
}

func (w *Window) menu() *fyne.MainMenu {
	file := fyne.NewMenu("File",
		fyne.NewMenuItem("New Note", w.newNote),
		fyne.NewMenuItem("New Folder…", w.newFolder),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Notebook…", w.openNotebook),
		fyne.NewMenuItem("Save Notebook", w.saveNotebook),
		fyne.NewMenuItem("Save Notebook As…", w.saveNotebookAs),
	)
	exp := fyne.NewMenu("Export",
		fyne.NewMenuItem("PDF…", func() { w.exportNote(".pdf", w.writePDF) }),
		fyne.NewMenuItem("Vector PDF…", func() { w.exportNote(".pdf", w.writeVectorPDF) }),
		fyne.NewMenuItem("PNG…", func() { w.exportNote(".png", w.writePNG) }),
		fyne.NewMenuItem("Text…", func() { w.exportNote(".txt", export.WriteText) }),
	)
	return fyne.NewMainMenu(file, exp)
}

// SetStatus shows a short message below the window content.
func (w *Window) SetStatus(msg string) {
	w.status.SetText(msg)
}

func (w *Window) report(err error) {
	if err == nil {
		return
	}
	logger().Error("notebook update failed", slog.String("component", "ui"), slog.Any("error", err))
	w.SetStatus(err.Error())
}

func (w *Window) reloadFolders() {
	w.folders = w.nb.Folders()
	names := make([]string, len(w.folders))
	for i, f := range w.folders {
		names[i] = f.Name
	}
	w.folderSel.SetOptions(names)
}

// showFolder lists a folder and opens its most recent note.
func (w *Window) showFolder(id string) {
	w.folder = id
	for i, f := range w.folders {
		if f.ID == id {
			w.folderSel.SetSelectedIndex(i)
		}
	}
	w.notes = w.nb.Notes(id)
	if len(w.notes) == 0 {
		n, err := w.nb.CreateNote(id, "")
		if err != nil {
			w.report(err)
			return
		}
		w.notes = []state.Note{n}
	}
	w.showNote(w.notes[0].ID)
}

// showNote loads a note into the editor and the ink panel.
func (w *Window) showNote(id string) {
	n, err := w.nb.Note(id)
	if err != nil {
		w.report(err)
		return
	}
	w.noteID = id
	w.loading = true
	w.title.SetText(n.Title)
	w.text.SetText(n.Text)
	w.loading = false
	w.board.SetStrokes(n.Strokes)
	w.refreshList()
	w.updateHistory()
}

func (w *Window) refreshList() {
	w.notes = w.nb.Notes(w.folder)
	w.list.Refresh()
	for i, n := range w.notes {
		if n.ID == w.noteID {
			w.list.Select(i)
			return
		}
	}
	w.list.UnselectAll()
}

func (w *Window) updateHistory() {
	w.toolbar.SetHistory(w.nb.CanUndo(w.noteID), w.nb.CanRedo(w.noteID))
}

// strokesChanged stores the engine's replacement list on the open note.
func (w *Window) strokesChanged(list []ink.Stroke) {
	if w.noteID == "" {
		return
	}
	w.report(w.nb.ReplaceStrokes(w.noteID, list))
	w.refreshList()
	w.updateHistory()
}

func (w *Window) undo() {
	w.step(w.nb.Undo)
}

func (w *Window) redo() {
	w.step(w.nb.Redo)
}

func (w *Window) step(move func(string) ([]ink.Stroke, error)) {
	list, err := move(w.noteID)
	if err != nil {
		if !errors.Is(err, state.ErrNothingToUndo) && !errors.Is(err, state.ErrNothingToRedo) {
			w.report(err)
		}
		return
	}
	w.board.SetStrokes(list)
	w.refreshList()
	w.updateHistory()
}

func (w *Window) newNote() {
	n, err := w.nb.CreateNote(w.folder, "")
	if err != nil {
		w.report(err)
		return
	}
	w.showNote(n.ID)
	w.win.Canvas().Focus(w.title)
}

func (w *Window) deleteNote() {
	id := w.noteID
	dialog.ShowConfirm("Delete note", fmt.Sprintf("Delete %q?", w.title.Text), func(ok bool) {
		if !ok {
			return
		}
		w.report(w.nb.DeleteNote(id))
		w.noteID = ""
		w.showFolder(w.folder)
	}, w.win)
}

func (w *Window) moveNote() {
	names := make([]string, len(w.folders))
	for i, f := range w.folders {
		names[i] = f.Name
	}
	target := widget.NewSelect(names, nil)
	items := []*widget.FormItem{widget.NewFormItem("Folder", target)}
	dialog.ShowForm("Move note", "Move", "Cancel", items, func(ok bool) {
		i := target.SelectedIndex()
		if !ok || i < 0 {
			return
		}
		w.report(w.nb.MoveNote(w.noteID, w.folders[i].ID))
		w.showFolder(w.folders[i].ID)
	}, w.win)
}

func (w *Window) newFolder() {
	name := widget.NewEntry()
	items := []*widget.FormItem{widget.NewFormItem("Name", name)}
	dialog.ShowForm("New folder", "Create", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		f, err := w.nb.CreateFolder(name.Text)
		if err != nil {
			w.report(err)
			return
		}
		w.reloadFolders()
		w.showFolder(f.ID)
	}, w.win)
}

func (w *Window) deleteFolder() {
	if w.folder == state.DefaultFolderID {
		w.SetStatus("The default folder cannot be deleted")
		return
	}
	id := w.folder
	dialog.ShowConfirm("Delete folder", "Notes in this folder move to the default folder.", func(ok bool) {
		if !ok {
			return
		}
		w.report(w.nb.DeleteFolder(id))
		w.reloadFolders()
		w.showFolder(state.DefaultFolderID)
	}, w.win)
}

// transcribe sends the ink raster to the assistant and appends the answer to
// the note it was taken from.
func (w *Window) transcribe() {
	png, err := w.board.Engine().ExportRaster()
	if err != nil {
		w.report(err)
		return
	}
	id := w.noteID
	w.SetStatus("Transcribing…")
	go func() {
		text := w.assistant.Transcribe(context.Background(), png)
		fyne.Do(func() {
			w.report(w.nb.AppendText(id, text))
			if w.noteID == id {
				w.showNote(id)
			}
			w.SetStatus("Transcription done")
		})
	}()
}

func (w *Window) summarize() {
	text := w.text.Text
	w.SetStatus("Summarizing…")
	go func() {
		summary := w.assistant.Summarize(context.Background(), text)
		fyne.Do(func() {
			w.SetStatus("Summary ready")
			dialog.ShowInformation("Summary", summary, w.win)
		})
	}()
}

func (w *Window) saveNotebook() {
	if w.path == "" {
		w.saveNotebookAs()
		return
	}
	if err := w.nb.SaveFile(w.path); err != nil {
		logger().Error("could not save notebook", slog.String("component", "ui"),
			slog.String("path", w.path), slog.Any("error", err))
		w.SetStatus("Save failed: " + err.Error())
		return
	}
	w.SetStatus("Saved " + w.path)
}

func (w *Window) saveNotebookAs() {
	w.saveFile("notebook", ".json", func(out io.Writer) error {
		return w.nb.Save(out)
	})
}

func (w *Window) openNotebook() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		if rc == nil {
			return
		}
		defer rc.Close()
		if err := w.nb.Load(rc); err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		if rc.URI().Scheme() == "file" {
			w.path = rc.URI().Path()
		}
		w.noteID = ""
		w.reloadFolders()
		w.showFolder(state.DefaultFolderID)
		w.SetStatus("Opened " + rc.URI().Name())
	}, w.win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func (w *Window) currentNote() (state.Note, error) {
	return w.nb.Note(w.noteID)
}

func (w *Window) exportNote(ext string, write func(io.Writer, state.Note) error) {
	n, err := w.currentNote()
	if err != nil {
		w.report(err)
		return
	}
	w.saveFile(fileBase(n), ext, func(out io.Writer) error {
		return write(out, n)
	})
}

func (w *Window) writePDF(out io.Writer, n state.Note) error {
	raster, err := w.board.Engine().ExportRaster()
	if err != nil && !errors.Is(err, ink.ErrSurfaceUnavailable) {
		return err
	}
	return export.WritePDF(out, n, raster)
}

func (w *Window) writeVectorPDF(out io.Writer, n state.Note) error {
	size := w.board.Size()
	return export.WriteVectorPDF(out, n, ink.Size{Width: float64(size.Width), Height: float64(size.Height)})
}

func (w *Window) writePNG(out io.Writer, _ state.Note) error {
	img, err := w.board.Engine().Snapshot()
	if err != nil {
		return err
	}
	return export.WritePNG(out, img)
}

func (w *Window) saveFile(name, ext string, write func(io.Writer) error) {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		if wc == nil {
			return
		}
		err = write(wc)
		if cerr := wc.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			logger().Error("save failed", slog.String("component", "ui"),
				slog.String("uri", wc.URI().String()), slog.Any("error", err))
			dialog.ShowError(err, w.win)
			return
		}
		w.SetStatus("Saved " + wc.URI().Name())
	}, w.win)
	d.SetFileName(name + ext)
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}

func displayTitle(n state.Note) string {
	if n.Title == "" {
		return "Untitled"
	}
	return n.Title
}

func fileBase(n state.Note) string {
	if n.Title == "" {
		return "note"
	}
	return n.Title
}
