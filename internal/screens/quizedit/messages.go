package quizedit

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dermaquiz/internal/editor"
	"github.com/abhisek/dermaquiz/internal/ui/components"
)

type loadedMsg struct {
	snap *editor.Snapshot
	err  error
}

// savedMsg ends a mutation started on row key. snap is the reload that
// followed it, nil when the mutation failed.
type savedMsg struct {
	key  editor.Key
	snap *editor.Snapshot
	err  error
	done string
}

// mutation is any Shell call that ends with a reload.
type mutation func(ctx context.Context) (*editor.Snapshot, error)

func (s *Screen) load() tea.Cmd {
	return func() tea.Msg {
		snap, err := s.shell.Load(context.Background())
		return loadedMsg{snap: snap, err: err}
	}
}

// save flags key as saving and runs fn off the UI goroutine. done is shown
// as a success toast.
func (s *Screen) save(key editor.Key, done string, fn mutation) tea.Cmd {
	if err := s.model.MarkSaving(key); err != nil {
		return components.ErrorToast(err)
	}
	return run(key, done, fn)
}

func run(key editor.Key, done string, fn mutation) tea.Cmd {
	return func() tea.Msg {
		snap, err := fn(context.Background())
		return savedMsg{key: key, snap: snap, err: err, done: done}
	}
}

func (s *Screen) finish(msg savedMsg) tea.Cmd {
	s.model.Finish(msg.key, msg.snap, msg.err)
	if msg.err != nil {
		return errorToast(msg.err)
	}
	s.clamp()
	if msg.done == "" {
		return nil
	}
	return components.Toast(components.ToastSuccess, msg.done)
}

// errorToast flattens joined errors onto one footer line.
func errorToast(err error) tea.Cmd {
	return components.Toast(components.ToastError, strings.ReplaceAll(err.Error(), "\n", "; "))
}
