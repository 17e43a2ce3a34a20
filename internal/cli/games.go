package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List playable games and their turn timers",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []GameInfo

			if err := client.Get(cmd.Context(), "/api/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

// miniChessStart is the opening minichess position
var miniChessStart = [][]string{
	{"r", "n", "k", "n", "r"},
	{"p", "p", "p", "p", "p"},
	{"", "", "", "", ""},
	{"P", "P", "P", "P", "P"},
	{"R", "N", "K", "N", "R"},
}

func newValidMovesCmd() *cobra.Command {
	var boardFile string

	cmd := &cobra.Command{
		Use:   "valid-moves <row> <col>",
		Short: "List legal minichess moves for a piece",
		Long: `List the legal destinations of the minichess piece at <row> <col>.

The board is read from --board as a JSON array of five rows of five cells,
using "" for empty squares. Without --board the opening position is used.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid row: %s", args[0])
			}
			col, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid column: %s", args[1])
			}

			board := miniChessStart
			if boardFile != "" {
				data, err := os.ReadFile(boardFile)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(data, &board); err != nil {
					return fmt.Errorf("invalid board file: %w", err)
				}
			}

			body := map[string]any{"board": board, "row": row, "col": col}
			var result []Position
			if err := client.Post(cmd.Context(), "/api/valid-moves", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&boardFile, "board", "", "Path to a JSON board file")

	return cmd
}
