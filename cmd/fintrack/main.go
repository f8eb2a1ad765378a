// Command fintrack is a terminal client for the finance tracker API.
//
//	fintrack [-server URL] list
//	fintrack [-server URL] add -type expense -category Food -amount 12.50
//	fintrack [-server URL] delete <id>
//	fintrack [-server URL] summary
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/damon-houk/finance-tracker/internal/client"
	"github.com/damon-houk/finance-tracker/internal/domain/entity"
	"github.com/damon-houk/finance-tracker/internal/infrastructure/logger"
)

var errUsage = errors.New("usage: fintrack [-server URL] list | add -type T -category C -amount A | delete ID | summary")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("fintrack", flag.ContinueOnError)
	global.SetOutput(stderr)
	serverURL := global.String("server", envOr("FINTRACK_SERVER", "http://localhost:5000/api"), "API base URL")
	timeout := global.Duration("timeout", 10*time.Second, "per-command timeout")
	verbose := global.Bool("v", false, "log client activity to stderr")
	if err := global.Parse(args); err != nil {
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		return errUsage
	}

	level := logger.ErrorLevel
	if *verbose {
		level = logger.DebugLevel
	}
	log := logger.NewJSONLogger(stderr, level)

	c, err := client.New(*serverURL, nil)
	if err != nil {
		return err
	}
	view := client.NewView(c, log)

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	switch cmd, cmdArgs := rest[0], rest[1:]; cmd {
	case "list":
		if err := view.Refresh(ctx); err != nil {
			return err
		}
		printTransactions(stdout, view.Transactions())
		return nil

	case "summary":
		if err := view.Refresh(ctx); err != nil {
			return err
		}
		printSummary(stdout, view.Summary())
		return nil

	case "add":
		fs := flag.NewFlagSet("add", flag.ContinueOnError)
		fs.SetOutput(stderr)
		txType := fs.String("type", "", "income or expense (required)")
		category := fs.String("category", "", "category label (required)")
		amount := fs.Float64("amount", 0, "non-negative amount (required)")
		if err := fs.Parse(cmdArgs); err != nil {
			return err
		}
		if err := requireFlags(fs, "type", "amount"); err != nil {
			return err
		}

		tx, err := view.Add(ctx, entity.TransactionType(*txType), *category, *amount)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Added %s %s %.2f (%s)\n", tx.Type, tx.Category, tx.Amount, tx.ID)
		return nil

	case "delete":
		if len(cmdArgs) != 1 {
			return errUsage
		}
		if err := view.Delete(ctx, cmdArgs[0]); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Transaction deleted")
		return nil

	default:
		return fmt.Errorf("unknown command %q\n%w", cmd, errUsage)
	}
}

// requireFlags reports the named flags that were not set on the command line
func requireFlags(fs *flag.FlagSet, names ...string) error {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var missing []string
	for _, name := range names {
		if !set[name] {
			missing = append(missing, "-"+name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing %s\n%w", fs.Name(), strings.Join(missing, ", "), errUsage)
	}
	return nil
}

func printTransactions(w io.Writer, txs []entity.Transaction) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tCATEGORY\tAMOUNT")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\n",
			tx.ID, tx.Date.Local().Format("2006-01-02 15:04"), tx.Type, tx.Category, tx.Amount)
	}
	tw.Flush()
}

func printSummary(w io.Writer, s entity.Summary) {
	fmt.Fprintf(w, "Income: $%.2f\n", s.Income)
	fmt.Fprintf(w, "Expenses: $%.2f\n", s.Expenses)
	fmt.Fprintf(w, "Balance: $%.2f\n", s.Balance)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
