package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/phanxgames/cardstack"
)

var cardsRotate int

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Print the card deck in stack order",
	Long: `Cards prints every configured card, front of the stack first. The first
three are the ones drawn in the stack.

Use --rotate to preview the order after a number of dismissals.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts, err := cfg.Options()
		if err != nil {
			return err
		}

		q := cardstack.NewQueue(cfg.CardList())
		if q.Len() == 0 {
			return fmt.Errorf("no cards configured")
		}
		for i := 0; i < cardsRotate; i++ {
			q.Rotate(cardstack.DirectionRight)
		}

		printCards(cmd.OutOrStdout(), q, opts.Layout.Count(q.Len()), terminalWidth())
		return nil
	},
}

func init() {
	cardsCmd.Flags().IntVarP(&cardsRotate, "rotate", "r", 0, "rotate the queue this many times before printing")
}

// terminalWidth returns the stdout width, or 80 when it is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// printCards writes the queue to w, marking the visible stack positions.
func printCards(w io.Writer, q *cardstack.Queue, visible, width int) {
	textW := max(20, width-6)
	for i, card := range q.Cards() {
		marker := "  "
		if i < visible {
			marker = colorize.HiYellowString("%d ", i+1)
		}
		fmt.Fprintf(w, "%s%s\n", marker, colorize.New(colorize.Bold, colorize.FgCyan).Sprint(card.Title))
		for _, line := range wrapText(card.Body, textW) {
			fmt.Fprintf(w, "    %s\n", line)
		}
		if card.Prompt != "" {
			fmt.Fprintf(w, "    %s\n", colorize.HiMagentaString("» %s", card.Prompt))
		}
		fmt.Fprintln(w)
	}
}

// wrapText breaks s into lines of at most width runes, on word boundaries.
func wrapText(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		if cur.Len() > 0 && len([]rune(cur.String()))+1+len([]rune(word)) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
