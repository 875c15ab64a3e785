package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yadhurtech/leadquote/internal/csvcodec"
)

func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List leads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			db, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), db)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tCOMPANY\tSTATUS")
			for _, l := range db.Leads {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", l.ID, l.Name, l.Email, l.Company, l.Status)
			}
			return tw.Flush()
		},
	}
}

func NewImportCommand(opts *RootOptions) *cobra.Command {
	var fromSheet bool

	cmd := &cobra.Command{
		Use:   "import [file.csv]",
		Short: "Upsert leads from a CSV file or the Google Sheet",
		Args: func(cmd *cobra.Command, args []string) error {
			if fromSheet {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			var n int
			if fromSheet {
				n, err = store.ImportFromMirror(cmd.Context())
			} else {
				raw, readErr := os.ReadFile(args[0])
				if readErr != nil {
					return readErr
				}
				n, err = store.Import(cmd.Context(), csvcodec.DecodeRecords(string(raw)))
			}
			if err != nil {
				return err
			}

			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"ok": true, "upserted": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d leads\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromSheet, "sheet", false, "import from the configured Google Sheet")
	return cmd
}

func NewExportCommand(opts *RootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export leads as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			db, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			data := csvcodec.Encode(csvcodec.LeadRows(db.Leads))

			if out == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), data)
				return err
			}
			if err := os.WriteFile(out, []byte(data), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d leads to %s\n", len(db.Leads), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	return cmd
}

func NewStagesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stages",
		Short: "Show pipeline stages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			db, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"stages": db.Stages})
			}
			for _, s := range db.Stages {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <stage>...",
		Short: "Replace the pipeline stages",
		Long: `Replace the pipeline stages in the given order.

Leads whose status is not in the new set are moved to the first stage.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := store.SetStages(cmd.Context(), args)
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"ok": true, "stages": res.Stages, "reassigned": res.Reassigned})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stages: %v (%d leads reassigned)\n", res.Stages.Strings(), res.Reassigned)
			return nil
		},
	})

	return cmd
}

func NewSyncCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Write all leads to the Google Sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := store.SyncMirror(cmd.Context())
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			if !res.OK {
				return fmt.Errorf("sync skipped: %s", res.Reason)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Google Sheet updated")
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
