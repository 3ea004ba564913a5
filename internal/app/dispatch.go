package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rebeliceyang/lazylite/internal/command"
	"github.com/rebeliceyang/lazylite/internal/export"
	"github.com/rebeliceyang/lazylite/internal/history"
	"github.com/rebeliceyang/lazylite/internal/keymap"
	"github.com/rebeliceyang/lazylite/internal/ui/components"
)

// Dispatch routes one key event according to the current mode.
// Unbound keys are ignored, except printable keys in Input mode which are typed.
func (s *Session) Dispatch(ctx context.Context, key keymap.Key) error {
	switch s.mode {
	case keymap.Main:
		if a, ok := s.keys.LookupMain(key); ok {
			return s.Perform(ctx, a)
		}
	case keymap.Zoom:
		if a, ok := s.keys.LookupZoom(key); ok {
			return s.performZoom(ctx, a)
		}
	case keymap.Input:
		if a, ok := s.keys.LookupInput(key); ok {
			return s.performInput(ctx, a)
		}
		if key.Printable() {
			for _, r := range key.Code {
				s.input.Apply(keymap.InsertRequest(r))
			}
		}
	case keymap.Visual:
		// no bindings yet
	}
	return nil
}

// Perform runs a Main mode action
func (s *Session) Perform(ctx context.Context, a keymap.MainAction) error {
	switch a {
	case keymap.MainNext, keymap.MainPrev, keymap.MainScrollRight, keymap.MainScrollLeft,
		keymap.MainFirst, keymap.MainLast:
		view, err := s.activeView(ctx)
		if err != nil {
			return err
		}
		move(view, a)

	case keymap.MainNextTab:
		s.NextTab()
		_, err := s.activeView(ctx)
		return err

	case keymap.MainPrevTab:
		s.PrevTab()
		_, err := s.activeView(ctx)
		return err

	case keymap.MainLastTab:
		return s.Activate(ctx, s.tabs.Last())

	case keymap.MainReload:
		return s.ReloadActive(ctx)

	case keymap.MainZoom:
		view, err := s.activeView(ctx)
		if err != nil {
			return err
		}
		if _, ok := view.Selected(); ok {
			s.setMode(keymap.Zoom)
		}

	case keymap.MainOpenQuery:
		seed := s.opts.QueryPrefix
		if q := oneLine(s.tabs.Active().Query); q != "" {
			seed += " " + q
		}
		s.openInput(command.Query, seed)

	case keymap.MainOpenExec:
		s.openInput(command.Exec, s.opts.ExecPrefix)

	case keymap.MainYank:
		return s.yank(ctx)

	case keymap.MainExport:
		return s.export(ctx)

	case keymap.MainQuit:
		s.quitting = true
	}
	return nil
}

func move(view *components.TableView, a keymap.MainAction) {
	switch a {
	case keymap.MainNext:
		view.SelectNext()
	case keymap.MainPrev:
		view.SelectPrevious()
	case keymap.MainScrollRight:
		view.ScrollRight()
	case keymap.MainScrollLeft:
		view.ScrollLeft()
	case keymap.MainFirst:
		view.SelectFirst()
	case keymap.MainLast:
		view.SelectLast()
	}
}

func (s *Session) performZoom(ctx context.Context, a keymap.ZoomAction) error {
	if a == keymap.ZoomLeave {
		s.setMode(keymap.Main)
		return nil
	}

	view, err := s.activeView(ctx)
	if err != nil {
		return err
	}
	zoom := view.Zoom()

	switch a {
	case keymap.ZoomIn:
		zoom.ZoomIn()
	case keymap.ZoomOut:
		zoom.ZoomOut()
	case keymap.ZoomNext:
		zoom.Advance()
	case keymap.ZoomPrev:
		zoom.Retreat()
	}
	return nil
}

func (s *Session) performInput(ctx context.Context, a keymap.InputAction) error {
	switch a {
	case keymap.InputLeave:
		s.closeInput()
		return nil
	case keymap.InputSubmit:
		return s.submit(ctx)
	}

	req, err := keymap.EditRequestFor(a)
	if err != nil {
		return err
	}
	s.input.Apply(req)
	return nil
}

func (s *Session) setMode(m keymap.Mode) {
	if s.mode != m {
		s.logger.Debug("mode changed", slog.String("from", s.mode.String()), slog.String("to", m.String()))
	}
	s.mode = m
}

func (s *Session) openInput(kind command.Kind, seed string) {
	s.input = components.NewInputLine(kind, seed)
	s.setMode(keymap.Input)
	s.cursorVisible = true
	s.lastErr = nil
}

func (s *Session) closeInput() {
	s.input = nil
	s.setMode(keymap.Main)
	s.cursorVisible = false
}

// submit leaves Input mode before the command runs, whatever its outcome
func (s *Session) submit(ctx context.Context) error {
	line := s.input.Value()
	s.closeInput()

	kind, text, err := command.Parse(line)
	if err != nil {
		return err
	}

	start := s.now()
	switch kind {
	case command.Exec:
		err = s.Exec(ctx, text)
		if err == nil {
			s.status = "statement executed"
		}
	case command.Query:
		err = s.RunQuery(ctx, text)
	}
	s.record(ctx, kind, text, s.now().Sub(start), err)
	return err
}

func (s *Session) record(ctx context.Context, kind command.Kind, text string, d time.Duration, runErr error) {
	if s.history == nil {
		return
	}

	entry := history.Entry{
		Target:   s.opts.Target,
		Kind:     kind.Keyword(),
		Query:    text,
		Duration: d,
		Success:  runErr == nil,
	}
	if runErr != nil {
		entry.ErrorMessage = runErr.Error()
	}
	if err := s.history.Add(ctx, entry); err != nil {
		s.logger.Warn("failed to record history", slog.Any("error", err))
	}
}

func (s *Session) yank(ctx context.Context) error {
	view, err := s.activeView(ctx)
	if err != nil {
		return err
	}
	row, ok := view.SelectedRow()
	if !ok {
		return nil
	}

	if err := s.clipboard(export.FormatRow(row)); err != nil {
		return fmt.Errorf("copy row: %w", err)
	}
	i, _ := view.Selected()
	s.status = fmt.Sprintf("copied row %d", i+1)
	return nil
}

func (s *Session) export(ctx context.Context) error {
	view, err := s.activeView(ctx)
	if err != nil {
		return err
	}

	write, ext := export.ExportToCSV, "csv"
	if s.opts.ExportFormat == "json" {
		write, ext = export.ExportToJSON, "json"
	}

	path := export.FileName(s.opts.ExportDir, s.tabs.Active().Title, ext, s.now())
	if err := write(view.Result(), path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	s.status = fmt.Sprintf("exported %d rows to %s", view.Result().Len(), path)
	s.logger.Info("exported result", slog.String("path", path), slog.Int("rows", view.Result().Len()))
	return nil
}
