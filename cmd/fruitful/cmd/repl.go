package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fruitful-search/fruitful/internal/browser"
	ferrors "github.com/fruitful-search/fruitful/internal/errors"
	"github.com/fruitful-search/fruitful/internal/output"
	"github.com/fruitful-search/fruitful/internal/search"
)

// runREPL is the interactive prompt: every line is a search unless it
// starts with ':'. The engine handle stays open across queries.
func runREPL(cmd *cobra.Command, limitFlag int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	out := output.New(cmd.OutOrStdout())
	limit := effectiveLimit(limitFlag, cfg)

	stats := engine.Stats()
	out.Statusf("🍉", "fruitful — %d products indexed", stats.Products)
	out.Status("", "type a query, :open <pid>, :help, or :q")
	out.Newline()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(cmd.OutOrStdout(), "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			if quit := replCommand(cmd, out, engine, line); quit {
				return nil
			}
			continue
		}

		results, err := engine.Search(cmd.Context(), line, limit)
		if err != nil {
			out.Error(ferrors.UserMessage(err))
			continue
		}
		out.Results(results)
		out.Newline()
	}
	return scanner.Err()
}

// replCommand handles ':' commands. Returns true when the session ends.
func replCommand(cmd *cobra.Command, out *output.Writer, engine *search.Engine, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":q", ":quit", ":exit":
		return true

	case ":help":
		out.Status("", "<query>        search the catalog")
		out.Status("", ":open <pid>    open the product page in a browser")
		out.Status("", ":q             quit")

	case ":open":
		if len(fields) != 2 {
			out.Error("usage: :open <pid>")
			break
		}
		pid, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil || pid < 0 {
			out.Errorf("invalid product id %q", fields[1])
			break
		}
		url, ok, err := engine.LookupURL(cmd.Context(), pid)
		if err != nil {
			out.Error(ferrors.UserMessage(err))
			break
		}
		if !ok {
			out.Errorf("no url known for product %d", pid)
			break
		}
		if browser.Suppressed() {
			out.Status("", url)
			break
		}
		if err := browser.Open(url); err != nil {
			out.Warningf("could not launch browser: %v", err)
			out.Status("", url)
			break
		}
		out.Successf("Opened %s", url)

	default:
		out.Errorf("unknown command %s (try :help)", fields[0])
	}
	return false
}
