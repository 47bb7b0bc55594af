package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xtding233/loot-economy/internal/reward"
)

var (
	drawCost   int64
	craftTier  int
	withReveal bool
)

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Perform one draw (or trade-up) against the configured store",
	Long: `Runs a single economic action against the SQLite store and prints the
outcome as JSON. With --craft N, trades up into tier N instead of drawing.

Example:
  loot draw --cost 3
  loot draw --craft 3 --reveal`,
	RunE: runDraw,
}

func init() {
	drawCmd.Flags().Int64Var(&drawCost, "cost", -1, "Draw cost (default: draw.cost from config)")
	drawCmd.Flags().IntVar(&craftTier, "craft", 0, "Trade up into this tier instead of drawing")
	drawCmd.Flags().BoolVar(&withReveal, "reveal", false, "Include the reveal strip in the output")
}

func runDraw(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer rt.Close()
	// One-shot: nobody renders the strip, so drop the reveal timer.
	defer rt.engine.CancelReveal()

	var out any
	if craftTier != 0 {
		res, err := rt.engine.Craft(cmd.Context(), reward.Tier(craftTier))
		if err != nil {
			return err
		}
		if !withReveal {
			res.Reveal.Strip = nil
		}
		out = res
	} else {
		cost := drawCost
		if cost < 0 {
			cost = rt.engine.DrawCost()
		}
		res, err := rt.engine.Draw(cmd.Context(), cost)
		if err != nil {
			return err
		}
		if !withReveal {
			res.Reveal.Strip = nil
		}
		out = res
	}
	logger.Debug("action done", zap.Int("craft", craftTier), zap.Int64("balance", rt.engine.Balance()))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
