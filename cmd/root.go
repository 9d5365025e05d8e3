package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clearlydefined/reconciler/internal/aggregate"
	"github.com/clearlydefined/reconciler/internal/ingest"
	"github.com/clearlydefined/reconciler/internal/output"
	"github.com/clearlydefined/reconciler/internal/spdx"
)

const toolVersion = "1.0.0"

var (
	flagSummaries string
	flagPolicy    string
	flagOutput    string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "reconciler",
	Short: "License definition reconciliation engine",
	Long: `reconciler combines partial component metadata produced by independent
license-scanning tools into one canonical record.

It parses SPDX license expressions into a common algebra, merges partial
records field by field (license statements AND-combine, observation lists
union, scalars follow precedence), and folds per-tool summaries in the order
given by a precedence policy.`,
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Fold per-tool summaries into one reconciled definition",
	Long: `Read a harvest document ({tool: {version: summary}} JSON), select the
summaries named by the precedence policy, and fold them into a single
reconciled definition.

Examples:
  reconciler reconcile --summaries harvest.json --output definition.json
  reconciler reconcile --summaries harvest.json --policy policy.yaml --output -`,
	RunE: runReconcile,
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <expression>",
	Short: "Print the canonical form of a license expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		normalized := spdx.Normalize(args[0])
		if normalized == "" {
			return fmt.Errorf("empty expression")
		}
		fmt.Println(normalized)
		return nil
	},
}

var satisfiesCmd = &cobra.Command{
	Use:   "satisfies <candidate> <requirement>",
	Short: "Check whether one license expression satisfies another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if spdx.Satisfies(args[0], args[1]) {
			fmt.Println("yes")
		} else {
			fmt.Println("no")
		}
		return nil
	},
}

func init() {
	reconcileCmd.Flags().StringVarP(&flagSummaries, "summaries", "s", "harvest.json", "Path to the harvest document ({tool: {version: summary}} JSON)")
	reconcileCmd.Flags().StringVarP(&flagPolicy, "policy", "p", "", "Path to a precedence policy file (YAML or JSON); built-in default when omitted")
	reconcileCmd.Flags().StringVarP(&flagOutput, "output", "o", "definition.json", "Output file path (use '-' for stdout)")
	reconcileCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(satisfiesCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runReconcile(cmd *cobra.Command, args []string) error {
	policy := aggregate.DefaultPolicy()
	if flagPolicy != "" {
		loaded, err := aggregate.LoadPolicy(flagPolicy)
		if err != nil {
			return err
		}
		policy = loaded
	}

	summaries, err := ingest.ReadHarvest(flagSummaries)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "reconciler v%s\n", toolVersion)
	if flagVerbose {
		fmt.Fprintf(os.Stderr, "Summaries: %d tool(s) in %s\n", len(summaries), flagSummaries)
		fmt.Fprintf(os.Stderr, "Precedence groups: %d\n", len(policy.Precedence))
	}

	def, err := aggregate.Aggregate(policy, summaries)
	if err != nil {
		return err
	}
	if def == nil {
		return fmt.Errorf("no summary in %q matched the precedence policy", flagSummaries)
	}

	if err := output.WriteDefinition(def, flagOutput); err != nil {
		return fmt.Errorf("failed to write definition: %w", err)
	}

	if flagOutput != "-" {
		fmt.Fprintf(os.Stderr, "Definition written to: %s\n", flagOutput)
	}

	return nil
}
