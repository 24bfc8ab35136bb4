package cli

import (
	"fmt"
	"strings"

	"dropboard/internal/board"
	"dropboard/internal/dnd"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Add, move, edit and remove items",
	}
	cmd.AddCommand(newItemsShowCmd(app))
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsMvCmd(app))
	cmd.AddCommand(newItemsRmCmd(app))
	cmd.AddCommand(newItemsEditCmd(app))
	return cmd
}

type itemResult struct {
	Location string `json:"location"`
	Content  string `json:"content"`
	Changed  bool   `json:"changed"`
}

func (r itemResult) Table() ([]string, [][]string) {
	return []string{"LOCATION", "CONTENT", "CHANGED"}, [][]string{{r.Location, r.Content, fmt.Sprint(r.Changed)}}
}

func newItemsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <item-location>",
		Short: "Print one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			loc, it, err := s.item(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, itemResult{Location: loc.String(), Content: it.Content})
		},
	}
}

func newItemsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <slot> <content...>",
		Short: "Append an item to a slot's list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			slot, err := s.slot(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			content := strings.TrimSpace(strings.Join(args[1:], " "))
			if content == "" {
				return writeErr(cmd, errUsage("empty content"))
			}

			// A board that was never saved has no slot rows to append to.
			exists, err := s.store.Exists(s.ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !exists {
				if err := s.store.Save(s.ctx, s.board); err != nil {
					return writeErr(cmd, err)
				}
			}
			if err := s.store.AppendItem(s.ctx, slot, content); err != nil {
				return writeErr(cmd, err)
			}
			loc, _ := s.board.AppendItem(slot, content)
			summary := fmt.Sprintf("add item %s", loc)
			if err := s.store.AppendEvent(s.ctx, dnd.ItemAdded, summary, map[string]any{"location": loc.String(), "content": content}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, itemResult{Location: loc.String(), Content: content, Changed: true})
		},
	}
}

// moveItem applies the drop rules of a mouse drag: onto an item of the same
// list reorders, onto an item of another list inserts there, onto a list (or
// its slot) appends.
func moveItem(b *board.Board, src, dst board.Location) (string, bool) {
	switch dst.Element.Kind {
	case board.ElementSlot, board.ElementList:
		return dnd.ItemTransferred, b.TransferToList(src, board.ListAt(dst.Slot))
	case board.ElementItem:
		if src.Slot == dst.Slot {
			return dnd.ItemMoved, b.MoveItem(src.Slot, src.Element.Index, dst.Element.Index)
		}
		return dnd.ItemTransferred, b.TransferToItem(src, dst)
	}
	return "", false
}

func newItemsMvCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <item-location> <target-location>",
		Short: "Move an item as if dropped onto the target (an item or a list)",
		Example: strings.TrimSpace(`
  dropboard items mv 0/item/0 0/item/2   # reorder within slot 0
  dropboard items mv 0/item/0 1/item/0   # insert before the first item of slot 1
  dropboard items mv 0/item/0 2/list     # append to slot 2's list
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			src, it, err := s.item(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			dst, err := board.ParseLocation(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if dst.IsItem() {
				if _, ok := s.board.Item(dst); !ok {
					return writeErr(cmd, errNotFound("item", args[1]))
				}
			} else if _, ok := s.board.Slot(dst.Slot); !ok {
				return writeErr(cmd, errNotFound("slot", args[1]))
			}

			typ, changed := moveItem(s.board, src, dst)
			res := itemResult{Location: src.String(), Content: it.Content, Changed: changed}
			if !changed {
				return writeOut(cmd, app, res)
			}
			if now, ok := s.board.Find(it.ID()); ok {
				res.Location = now.String()
			}
			summary := fmt.Sprintf("move item %s onto %s", src, dst)
			if err := s.commit(typ, summary, map[string]any{"from": src.String(), "to": res.Location}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, res)
		},
	}
}

func newItemsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <item-location>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			loc, it, err := s.item(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s.board.RemoveItem(loc)
			summary := fmt.Sprintf("remove item %s", loc)
			if err := s.commit(dnd.ItemRemoved, summary, map[string]any{"location": loc.String(), "content": it.Content}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, itemResult{Location: loc.String(), Content: it.Content, Changed: true})
		},
	}
}

func newItemsEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <item-location> <content...>",
		Short: "Replace an item's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			loc, it, err := s.item(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			content := strings.TrimSpace(strings.Join(args[1:], " "))
			if content == "" {
				return writeErr(cmd, errUsage("empty content (use `dropboard items rm` to delete)"))
			}
			if content == it.Content {
				return writeOut(cmd, app, itemResult{Location: loc.String(), Content: content})
			}
			s.board.Apply(it.ID(), board.SetContent{Content: content})
			summary := fmt.Sprintf("edit item %s", loc)
			if err := s.commit(dnd.ItemEdited, summary, map[string]any{"location": loc.String(), "content": content}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, itemResult{Location: loc.String(), Content: content, Changed: true})
		},
	}
}
