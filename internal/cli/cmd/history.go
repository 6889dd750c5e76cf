package cmd

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/berrythewa/clipdeck/internal/ipc"
	"github.com/berrythewa/clipdeck/internal/types"
	"github.com/berrythewa/clipdeck/pkg/format"
	"github.com/spf13/cobra"
)

type displayFlags struct {
	compact  bool
	noColors bool
	noIcons  bool
}

func (d *displayFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&d.compact, "compact", "c", false, "use compact single-line format")
	cmd.Flags().BoolVar(&d.noColors, "no-colors", false, "disable colored output")
	cmd.Flags().BoolVar(&d.noIcons, "no-icons", false, "disable icons in output")
}

func (d *displayFlags) options() format.Options {
	return outputOptions(d.compact, d.noColors, d.noIcons)
}

// newHistoryCmd creates the history listing command
func newHistoryCmd() *cobra.Command {
	var (
		limit      int
		typeFilter string
		pinnedOnly bool
		display    displayFlags
	)

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"ls"},
		Short:   "List clipboard history",
		Long: `List clipboard history, most recent first. Pinned entries keep the
position they had when they were pinned.

Examples:
  clipdeck history                 # Show last 10 entries
  clipdeck history -n 0            # Show everything
  clipdeck history --type image    # Only images
  clipdeck history --compact       # Compact single-line format`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := fetchHistory(0)
			if err != nil {
				return err
			}
			items = filterItems(items, types.ContentType(typeFilter), pinnedOnly, limit)

			if useJSON {
				return printJSON(items)
			}
			fmt.Fprintln(out, format.FormatItemList(items, display.options()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of entries to show (0 = all)")
	cmd.Flags().StringVarP(&typeFilter, "type", "t", "", "filter by content type (text, image)")
	cmd.Flags().BoolVar(&pinnedOnly, "pinned", false, "show only pinned entries")
	display.register(cmd)
	return cmd
}

func filterItems(items []types.Item, typ types.ContentType, pinnedOnly bool, limit int) []types.Item {
	filtered := items[:0:0]
	for _, it := range items {
		if typ != "" && it.Type() != typ {
			continue
		}
		if pinnedOnly && !it.Pinned {
			continue
		}
		filtered = append(filtered, it)
		if limit > 0 && len(filtered) == limit {
			break
		}
	}
	return filtered
}

// newShowCmd creates the show command
func newShowCmd() *cobra.Command {
	var (
		raw     bool
		display displayFlags
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one history entry",
		Long: `Show a history entry by id or unique id prefix.

Examples:
  clipdeck show 3f2a9c1b          # Show the entry
  clipdeck show 3f2a --raw > x    # Write the raw text or PNG bytes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := getItem(args[0])
			if err != nil {
				return err
			}
			if raw {
				return writeRaw(out, item)
			}
			if useJSON {
				return printJSON(item)
			}

			opts := display.options()
			opts.MaxLines = 0
			opts.MaxWidth = 0
			fmt.Fprintln(out, format.FormatItem(item, opts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "output raw content without metadata")
	display.register(cmd)
	return cmd
}

func getItem(prefix string) (types.Item, error) {
	id, err := resolveID(prefix)
	if err != nil {
		return types.Item{}, err
	}
	resp, err := callDaemon(ipc.CmdGet, map[string]interface{}{"id": id})
	if err != nil {
		return types.Item{}, err
	}
	var item types.Item
	err = resp.Decode(&item)
	return item, err
}

func writeRaw(w io.Writer, item types.Item) error {
	switch c := item.Content.(type) {
	case types.TextContent:
		_, err := io.WriteString(w, c.Text)
		return err
	case types.ImageContent:
		data, err := base64.StdEncoding.DecodeString(c.Encoded)
		if err != nil {
			return fmt.Errorf("%w: %v", types.ErrDecoding, err)
		}
		_, err = w.Write(data)
		return err
	default:
		return types.ErrContentNotAvailable
	}
}

func newPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin <id>",
		Short: "Pin or unpin a history entry",
		Long:  `Toggle the pinned flag. Pinned entries are never evicted or cleared.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(args[0])
			if err != nil {
				return err
			}
			resp, err := callDaemon(ipc.CmdPin, map[string]interface{}{"id": id})
			if err != nil {
				return err
			}
			var item types.Item
			if err := resp.Decode(&item); err != nil {
				return err
			}
			if useJSON {
				return printJSON(item)
			}
			state := "Unpinned"
			if item.Pinned {
				state = "Pinned"
			}
			fmt.Fprintf(out, "%s %s\n", state, format.ShortID(item.ID))
			return nil
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a history entry, pinned or not",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(args[0])
			if err != nil {
				return err
			}
			if _, err := callDaemon(ipc.CmdRemove, map[string]interface{}{"id": id}); err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintf(out, "Removed %s\n", format.ShortID(id))
			}
			return nil
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every entry that is not pinned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := callDaemon(ipc.CmdClear, nil)
			if err != nil {
				return err
			}
			var res struct {
				Removed int `json:"removed"`
			}
			if err := resp.Decode(&res); err != nil {
				return err
			}
			if useJSON {
				return printJSON(res)
			}
			if !quiet {
				fmt.Fprintf(out, "Cleared %d entries\n", res.Removed)
			}
			return nil
		},
	}
}
