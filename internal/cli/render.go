package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docdantic"
	"github.com/goliatone/go-docdantic/pkg/orchestrator"
	"github.com/goliatone/go-docdantic/pkg/page"
	"github.com/goliatone/go-docdantic/pkg/preprocess"
)

func (a *app) newRenderCmd() *cobra.Command {
	var (
		html   bool
		output string
		title  string
	)

	cmd := &cobra.Command{
		Use:   "render <file.md|->",
		Short: "Expand directives in a Markdown document",
		Long: "Replaces every directive with its tables and writes Markdown, or a\n" +
			"standalone HTML page with --html. Use - to read from stdin.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		orch, err := a.setup(cmd)
		if err != nil {
			return err
		}
		source, err := readInput(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}

		var out []byte
		if html {
			out, err = renderHTML(orch, source, pageTitle(title, args[0]))
		} else {
			var expanded string
			expanded, err = preprocess.New(orch).Expand(string(source))
			out = []byte(expanded)
		}
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), output, out)
	}

	cmd.Flags().BoolVar(&html, "html", false, "render a standalone HTML page")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&title, "title", "", "HTML page title (defaults to the file name)")
	return cmd
}

func renderHTML(orch *orchestrator.Orchestrator, source []byte, title string) ([]byte, error) {
	var body bytes.Buffer
	if err := docdantic.NewMarkdown(orch).Convert(source, &body); err != nil {
		return nil, err
	}
	renderer, err := page.New()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := renderer.Render(&out, page.Page{Title: title, Body: body.Bytes()}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func pageTitle(title, input string) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	if input == "-" {
		return "docdantic"
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("cli: read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cli: read %s: %w", path, err)
	}
	return data, nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cli: write %s: %w", path, err)
	}
	return nil
}
