package cli

import (
	"fmt"
	"strings"

	"dropboard/internal/board"
	"dropboard/internal/dnd"

	"github.com/spf13/cobra"
)

type listsResult struct {
	Slots   []board.SlotView `json:"slots"`
	Changed bool             `json:"changed"`
}

func (r listsResult) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(r.Slots))
	for _, s := range r.Slots {
		rows = append(rows, []string{fmt.Sprint(s.Index), s.List.ID, s.List.Title, fmt.Sprint(len(s.List.Items))})
	}
	return []string{"SLOT", "ID", "TITLE", "ITEMS"}, rows
}

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Rearrange and rename lists",
	}
	cmd.AddCommand(newListsLsCmd(app))
	cmd.AddCommand(newListsSwapCmd(app))
	cmd.AddCommand(newListsRenameCmd(app))
	return cmd
}

func newListsLsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List slots and the lists they hold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, listsResult{Slots: s.board.Snapshot().Slots})
		},
	}
}

func newListsSwapCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "swap <slot> <slot>",
		Short: "Exchange the lists held by two slots",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			i, err := s.slot(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			j, err := s.slot(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !s.board.SwapLists(i, j) {
				return writeOut(cmd, app, listsResult{Slots: s.board.Snapshot().Slots})
			}
			summary := fmt.Sprintf("swap lists of slots %d and %d", i, j)
			if err := s.commit(dnd.ListsSwapped, summary, map[string]any{"a": i, "b": j}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, listsResult{Slots: s.board.Snapshot().Slots, Changed: true})
		},
	}
}

func newListsRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <slot> <title...>",
		Short: "Rename the list held by a slot",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			i, err := s.slot(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			title := strings.TrimSpace(strings.Join(args[1:], " "))
			if title == "" {
				return writeErr(cmd, errUsage("empty title"))
			}
			slot, _ := s.board.Slot(i)
			l := slot.List()
			if l.Title == title {
				return writeOut(cmd, app, listsResult{Slots: s.board.Snapshot().Slots})
			}
			old := l.Title
			s.board.Apply(l.ID(), board.SetTitle{Title: title})
			summary := fmt.Sprintf("rename list in slot %d: %q -> %q", i, old, title)
			if err := s.commit("list.renamed", summary, map[string]any{"slot": i, "title": title}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, listsResult{Slots: s.board.Snapshot().Slots, Changed: true})
		},
	}
}
