//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"golibrarian/internal/config"
	"golibrarian/internal/crash"
	"golibrarian/internal/domain"
	"golibrarian/internal/export"
	"golibrarian/internal/importer"
	applog "golibrarian/internal/log"
	"golibrarian/internal/storage"
	"golibrarian/internal/telemetry"
)

// Run starts the Fyne-based desktop UI: a login screen that hands off to the
// catalog dashboard. It blocks until the window closes.
func Run(opts Options) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI")
	defer crash.Recover(opts.DBPath)

	store, err := storage.Open(opts.DBPath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			l.Error("close catalog failed", slog.Any("err", err))
		}
	}()

	state := newAppState(opts.Config.General.Theme)
	cfg := opts.Config

	fyneApp := app.NewWithID("golibrarian")
	fyneApp.Settings().SetTheme(newCatalogTheme(state.theme))

	w := fyneApp.NewWindow("Library Manager")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1050)
	winH := prefs.IntWithFallback("window.height", 650)
	if winW < 800 {
		winW = 800
	}
	if winH < 520 {
		winH = 520
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))
	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})

	telemetry.Event("app_start", nil)
	showLogin(w, store, state, &cfg, opts.RememberedUser, l)
	w.ShowAndRun()
	return nil
}

// showLogin renders the credential form. The transition to the dashboard is
// one-way; there is no logout path.
func showLogin(w fyne.Window, store *storage.Store, state *appState, cfg *config.AppConfig, rememberedUser string, l *slog.Logger) {
	username := widget.NewEntry()
	username.SetPlaceHolder("Username")
	username.SetText(rememberedUser)
	password := widget.NewPasswordEntry()
	password.SetPlaceHolder("Password")

	attempt := func() {
		user := username.Text
		if user == "" || password.Text == "" {
			dialog.ShowInformation("Missing fields", "Enter both username and password", w)
			return
		}
		ok, err := store.VerifyUser(context.Background(), user, password.Text)
		if err != nil {
			l.Error("login check failed", slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		if !ok {
			dialog.ShowError(fmt.Errorf("Invalid credentials"), w)
			return
		}
		l.Info("login ok", slog.String("username", user))
		if cfg.General.RememberLogin {
			if err := config.Save(*cfg, user); err != nil {
				l.Warn("remember login failed", slog.Any("err", err))
			}
		}
		showDashboard(w, store, state, cfg, l)
	}

	// Enter in the password field submits the form.
	password.OnSubmitted = func(string) { attempt() }
	loginBtn := widget.NewButton("Login", attempt)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Library Manager", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		username,
		password,
		loginBtn,
	)
	w.SetContent(container.NewCenter(container.NewGridWrap(fyne.NewSize(320, 200), form)))
	w.Canvas().Focus(username)
}

// showDashboard builds the LoggedIn state: stats, book form, search box and
// the catalog table. Every mutation re-queries the store and re-renders.
func showDashboard(w fyne.Window, store *storage.Store, state *appState, cfg *config.AppConfig, l *slog.Logger) {
	// Stats panel
	statTotal := widget.NewLabel("Total books: 0")
	statAvailable := widget.NewLabel("Available copies: 0")
	statIssued := widget.NewLabel("Issued titles: 0")

	updateStats := func() {
		sum, err := store.Summary(context.Background())
		if err != nil {
			l.Error("summary failed", slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		statTotal.SetText(fmt.Sprintf("Total books: %d", sum.Total))
		statAvailable.SetText(fmt.Sprintf("Available copies: %d", sum.Available))
		statIssued.SetText(fmt.Sprintf("Issued titles: %d", sum.Issued))
	}

	// Book form
	titleEntry := widget.NewEntry()
	authorEntry := widget.NewEntry()
	categoryEntry := widget.NewEntry()
	yearEntry := widget.NewEntry()
	copiesEntry := widget.NewEntry()
	availableEntry := widget.NewEntry()

	setFields := func(f FormFields) {
		titleEntry.SetText(f.Title)
		authorEntry.SetText(f.Author)
		categoryEntry.SetText(f.Category)
		yearEntry.SetText(f.Year)
		copiesEntry.SetText(f.Copies)
		availableEntry.SetText(f.Available)
	}
	readFields := func() FormFields {
		return FormFields{
			Title:     titleEntry.Text,
			Author:    authorEntry.Text,
			Category:  categoryEntry.Text,
			Year:      yearEntry.Text,
			Copies:    copiesEntry.Text,
			Available: availableEntry.Text,
		}
	}
	setFields(ClearedFields())

	// Search + table
	searchEntry := widget.NewEntry()
	searchEntry.SetPlaceHolder("Search title, author or category")

	var table *widget.Table
	refresh := func() {
		books, err := store.FetchBooks(context.Background(), state.search)
		if err != nil {
			l.Error("fetch failed", slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		state.setRows(books)
		table.UnselectAll()
		table.Refresh()
		updateStats()
	}

	table = widget.NewTable(
		func() (int, int) { return len(state.rows), len(ColumnHeaders) },
		func() fyne.CanvasObject { return widget.NewLabel("…") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row < 0 || id.Row >= len(state.rows) {
				label.SetText("")
				return
			}
			label.SetText(CellText(state.rows[id.Row], Column(id.Col)))
		},
	)
	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		b := widget.NewButton("", nil)
		b.Importance = widget.LowImportance
		return b
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		b := o.(*widget.Button)
		col := Column(id.Col)
		b.SetText(ColumnHeaders[id.Col])
		b.OnTapped = func() {
			state.sortBy(col)
			table.Refresh()
		}
	}
	widths := []float32{50, 200, 140, 110, 70, 70, 90, 160}
	for i, cw := range widths {
		table.SetColumnWidth(i, cw)
	}
	table.OnSelected = func(id widget.TableCellID) {
		if id.Row < 0 || id.Row >= len(state.rows) {
			return
		}
		b := state.rows[id.Row]
		state.selectedID = b.ID
		setFields(FieldsFromBook(b))
	}

	searchEntry.OnChanged = func(term string) {
		state.search = term
		refresh()
	}

	// Form actions
	clearForm := func() {
		state.clearSelection()
		table.UnselectAll()
		setFields(ClearedFields())
	}

	addBtn := widget.NewButton("Add", func() {
		p, err := ParsePayload(readFields())
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if _, err := store.AddBook(context.Background(), p); err != nil {
			l.Error("add failed", slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		telemetry.Event("book_add", nil)
		clearForm()
		refresh()
		dialog.ShowInformation("Added", "Book added successfully", w)
	})

	updateBtn := widget.NewButton("Update", func() {
		if state.selectedID == 0 {
			dialog.ShowInformation("Select a row", ErrNoSelection.Error(), w)
			return
		}
		p, err := ParsePayload(readFields())
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if err := store.UpdateBook(context.Background(), state.selectedID, p); err != nil {
			l.Error("update failed", slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		refresh()
		dialog.ShowInformation("Updated", "Book updated", w)
	})

	deleteBtn := widget.NewButton("Delete", func() {
		if state.selectedID == 0 {
			dialog.ShowInformation("Select a row", ErrNoSelection.Error(), w)
			return
		}
		id := state.selectedID
		dialog.ShowConfirm("Confirm", "Delete this book? This cannot be undone.", func(ok bool) {
			if !ok {
				return
			}
			if err := store.DeleteBook(context.Background(), id); err != nil {
				l.Error("delete failed", slog.Any("err", err))
				dialog.ShowError(err, w)
				return
			}
			clearForm()
			refresh()
		}, w)
	})

	clearBtn := widget.NewButton("Clear", clearForm)

	// Top bar actions
	themeBtn := widget.NewButton("Toggle Theme", func() {
		name := state.toggleTheme()
		fyne.CurrentApp().Settings().SetTheme(newCatalogTheme(name))
		cfg.General.Theme = name
		if err := config.Save(*cfg, ""); err != nil {
			l.Warn("persist theme failed", slog.Any("err", err))
		}
	})

	exportCSVBtn := widget.NewButton("Export CSV", func() {
		path := export.CSVPathFor(store.Path())
		if err := export.WriteCSV(path, state.rows); err != nil {
			if err == export.ErrNoRows {
				dialog.ShowInformation("No data", "No rows to export", w)
				return
			}
			l.Error("csv export failed", slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		telemetry.Event("export_csv", map[string]any{"rows": len(state.rows)})
		dialog.ShowInformation("Exported", "Data exported to "+path, w)
	})

	exportPDFBtn := widget.NewButton("Export PDF", func() {
		path := export.PDFPathFor(store.Path())
		if err := export.WriteCatalogPDF(path, state.rows); err != nil {
			if err == export.ErrNoRows {
				dialog.ShowInformation("No data", "No rows to export", w)
				return
			}
			l.Error("pdf export failed", slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		telemetry.Event("export_pdf", map[string]any{"rows": len(state.rows)})
		dialog.ShowInformation("Exported", "Data exported to "+path, w)
	})

	importBtn := widget.NewButton("Import JSON", func() {
		dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if rc == nil {
				return // cancelled
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			payloads, err := importer.Parse(data)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if err := importBooks(store, payloads); err != nil {
				l.Error("import failed", slog.Any("err", err))
				dialog.ShowError(err, w)
				return
			}
			telemetry.Event("import_json", map[string]any{"rows": len(payloads)})
			refresh()
			dialog.ShowInformation("Imported", fmt.Sprintf("%d books imported", len(payloads)), w)
		}, w)
	})

	// Layout
	topbar := container.NewBorder(nil, nil,
		widget.NewLabelWithStyle("Library Dashboard", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(importBtn, exportPDFBtn, exportCSVBtn, themeBtn),
	)

	stats := container.NewVBox(
		widget.NewLabelWithStyle("Overview", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		statTotal, statAvailable, statIssued,
	)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Manage Books", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Title", titleEntry),
			widget.NewFormItem("Author", authorEntry),
			widget.NewFormItem("Category", categoryEntry),
			widget.NewFormItem("Year", yearEntry),
			widget.NewFormItem("Copies", copiesEntry),
			widget.NewFormItem("Available", availableEntry),
		),
		container.NewGridWithColumns(4, addBtn, updateBtn, deleteBtn, clearBtn),
	)

	left := container.NewVBox(stats, widget.NewSeparator(), form)
	right := container.NewBorder(searchEntry, nil, nil, nil, table)
	body := container.NewBorder(nil, nil, left, nil, right)

	w.SetContent(container.NewBorder(topbar, nil, nil, nil, body))
	refresh()
}

// importBooks inserts validated payloads one by one; the store has no
// multi-statement transactions, matching the add action.
func importBooks(store *storage.Store, payloads []domain.Payload) error {
	for _, p := range payloads {
		if _, err := store.AddBook(context.Background(), p); err != nil {
			return err
		}
	}
	return nil
}
