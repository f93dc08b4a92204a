package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/eslconsole/internal/client/listview"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Use(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Clear(ctx context.Context) error
	Sort(ctx context.Context, args []string) error

	Select(ctx context.Context, args []string, included bool) error
	SelectAll(ctx context.Context, included bool) error

	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	BulkDelete(ctx context.Context) error

	Categories(ctx context.Context) error
	AddCategory(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Exports(ctx context.Context) error
	Dashboard(ctx context.Context) error
}

var errUsage = errors.New("usage")

const (
	helpAnonymous = "Available commands: login, exit"
	helpSignedIn  = `Available commands:
  use <stores|products|esls|gateways|users|sync-logs>   switch view
  (l)ist [page], refresh                                show / reload the current view
  search <text>, filter <facet>=<value>, clear          narrow the list
  sort <key>                                            change the order
  select <id...>, unselect <id...>, selectall, selectnone
  add, edit <id>, delete <id>, bulkdelete               change entities
  categories, addcategory <name>                        product categories
  export <csv|json|yaml>, exports                       export rows / export history
  dashboard, whoami, logout, exit`
)

// runREPL reads commands from scanner until EOF or "exit"/"quit".
//
// The prompt shows the current status (from statusFn). Signed out, only
// help, login and exit are accepted. Command errors are printed and the loop
// carries on; a usage error prints the command's usage line.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("esl %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}
			continue
		case "login":
			report(cmd, a.Login(ctx))
			continue
		}

		if !a.isLoggedIn() {
			if _, known := usages[cmd]; known {
				printlnFn("Please log in first.")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		var err error
		switch cmd {
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "use":
			err = a.Use(ctx, args)
		case "l", "list":
			err = a.List(ctx, args)
		case "refresh":
			err = a.Refresh(ctx)
		case "search":
			err = a.Search(ctx, args)
		case "filter":
			err = a.Filter(ctx, args)
		case "clear":
			err = a.Clear(ctx)
		case "sort":
			err = a.Sort(ctx, args)
		case "select":
			err = a.Select(ctx, args, true)
		case "unselect":
			err = a.Select(ctx, args, false)
		case "selectall":
			err = a.SelectAll(ctx, true)
		case "selectnone":
			err = a.SelectAll(ctx, false)
		case "add":
			err = a.Add(ctx)
		case "edit":
			err = a.Edit(ctx, args)
		case "delete":
			err = a.Delete(ctx, args)
		case "bulkdelete":
			err = a.BulkDelete(ctx)
		case "categories":
			err = a.Categories(ctx)
		case "addcategory":
			err = a.AddCategory(ctx, args)
		case "export":
			err = a.Export(ctx, args)
		case "exports":
			err = a.Exports(ctx)
		case "dashboard":
			err = a.Dashboard(ctx)
		default:
			printlnFn("Unknown command:", cmd)
			continue
		}
		report(cmd, err)
	}
}

var usages = map[string]string{
	"logout":      "logout",
	"whoami":      "whoami",
	"use":         "use <view>",
	"l":           "list [page]",
	"list":        "list [page]",
	"refresh":     "refresh",
	"search":      "search <text>",
	"filter":      "filter <facet>=<value>",
	"clear":       "clear",
	"sort":        "sort <key>",
	"select":      "select <id...>",
	"unselect":    "unselect <id...>",
	"selectall":   "selectall",
	"selectnone":  "selectnone",
	"add":         "add",
	"edit":        "edit <id>",
	"delete":      "delete <id>",
	"bulkdelete":  "bulkdelete",
	"categories":  "categories",
	"addcategory": "addcategory <name>",
	"export":      "export <csv|json|yaml>",
	"exports":     "exports",
	"dashboard":   "dashboard",
}

func report(cmd string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		printlnFn("Usage:", usages[cmd])
	default:
		printlnFn(errorStyle.Render("Error: " + operatorMessage(err)))
	}
}

// operatorMessage is what the operator sees for err. Controller errors show
// their fixed per-operation message only; the cause has already been logged.
func operatorMessage(err error) string {
	var (
		me   *listview.MutationError
		le   *listview.LoadError
		bulk *listview.BulkError
	)
	switch {
	case errors.As(err, &bulk):
		return fmt.Sprintf("%s (failed: %s)", bulk.Message, strings.Join(bulk.Result.FailedIDs(), ", "))
	case errors.As(err, &me):
		return me.Message
	case errors.As(err, &le):
		return le.Message
	}
	return err.Error()
}
