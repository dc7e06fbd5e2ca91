// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-json-experiment/json"
	"github.com/spf13/cobra"

	"github.com/go-a2a/talentflow/flow"
	"github.com/go-a2a/talentflow/retry"
	"github.com/go-a2a/talentflow/talent"
)

func newFlowsCmd(*app) *cobra.Command {
	return &cobra.Command{
		Use:   "flows",
		Short: "List the flows with their schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := talent.NewRegistry()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), reg.Describe())
		},
	}
}

// openInput opens path, or stdin for "-" or "".
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(path)
}

var errFlowFailed = errors.New("flow failed")

func newRunCmd(a *app) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "run <flow>",
		Short: "Run a flow once with a JSON input",
		Example: `  echo '{"prompt": "What is TalentFlow?"}' | talentflow run assistantFlow
  talentflow run analyzeTeamSkillGapsFlow --input team.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.context(cmd.Context())

			r, err := openInput(cmd, input)
			if err != nil {
				return err
			}
			defer r.Close()
			var in map[string]any
			if err := json.UnmarshalRead(r, &in); err != nil {
				return fmt.Errorf("decode input: %w", err)
			}

			client, err := a.client(ctx)
			if err != nil {
				return err
			}
			f, err := client.Catalog().Flow(args[0])
			if err != nil {
				return err
			}

			res := retry.Invoke(ctx, a.cfg.Retry, f, in)
			if res.Err != nil {
				if err := writeJSON(cmd.OutOrStdout(), map[string]any{"error": res.Err}); err != nil {
					return err
				}
				return fmt.Errorf("%w: %s", errFlowFailed, res.Err.Kind)
			}
			return writeJSON(cmd.OutOrStdout(), res.Output)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "JSON input file, - for stdin")
	return cmd
}

// batchLine is one line of batch output.
type batchLine struct {
	Index        int            `json:"index"`
	InvocationID string         `json:"invocationId"`
	State        flow.State     `json:"state"`
	Output       map[string]any `json:"output,omitempty"`
	Error        *flow.Error    `json:"error,omitempty"`
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		input       string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch <flow>",
		Short: "Run a flow over a JSON Lines file",
		Long: `Run a flow once per line of a JSON Lines file and print one JSON line per
input, in input order. Blank lines are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.context(cmd.Context())

			r, err := openInput(cmd, input)
			if err != nil {
				return err
			}
			defer r.Close()
			inputs, err := readJSONLines(r)
			if err != nil {
				return err
			}

			client, err := a.client(ctx)
			if err != nil {
				return err
			}
			f, err := client.Catalog().Flow(args[0])
			if err != nil {
				return err
			}

			var failed int
			w := cmd.OutOrStdout()
			for i, res := range flow.RunBatch(ctx, f, inputs, concurrency) {
				if res.Err != nil {
					failed++
				}
				line := batchLine{
					Index:        i,
					InvocationID: res.InvocationID,
					State:        res.State,
					Output:       res.Output,
					Error:        res.Err,
				}
				if err := json.MarshalWrite(w, line); err != nil {
					return err
				}
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			a.logger.InfoContext(ctx, "batch finished", "flow", f.Name(), "total", len(inputs), "failed", failed)
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d invocations", errFlowFailed, failed, len(inputs))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "JSON Lines input file, - for stdin")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Maximum invocations in flight")
	return cmd
}

func readJSONLines(r io.Reader) ([]map[string]any, error) {
	var inputs []map[string]any
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var in map[string]any
		if err := json.Unmarshal(line, &in); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		inputs = append(inputs, in)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return inputs, nil
}
