package app

// Implementations behind the CLI sub-commands. Each writes human output to
// out and returns an error for the caller to report.

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kicksup/kicksup/config"
	"github.com/kicksup/kicksup/database/seeders"
	"github.com/kicksup/kicksup/pkg/database"
	"github.com/kicksup/kicksup/pkg/logger"
	"github.com/kicksup/kicksup/pkg/migration"
	"github.com/kicksup/kicksup/pkg/router"
)

// BootDB loads config and connects the database only.
func BootDB() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := logger.Configure(); err != nil {
		return err
	}
	return database.Connect()
}

func Migrate(out io.Writer) error {
	if err := BootDB(); err != nil {
		return err
	}
	n, err := migration.New(database.DB, out).Run()
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(out, "Nothing to migrate.")
	}
	return nil
}

func Rollback(out io.Writer) error {
	if err := BootDB(); err != nil {
		return err
	}
	n, err := migration.New(database.DB, out).Rollback()
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(out, "Nothing to roll back.")
	}
	return nil
}

func MigrateStatus(out io.Writer) error {
	if err := BootDB(); err != nil {
		return err
	}
	rows, err := migration.New(database.DB, out).Status()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "RAN\tBATCH\tMIGRATION")
	for _, r := range rows {
		ran, batch := "No", "-"
		if r.Ran {
			ran, batch = "Yes", fmt.Sprint(r.Batch)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", ran, batch, r.Name)
	}
	return w.Flush()
}

func Seed(out io.Writer) error {
	if err := BootDB(); err != nil {
		return err
	}
	return seeders.RunAll(database.DB, out)
}

// RouteList prints the route table. No database is needed.
func RouteList(out io.Writer) error {
	a := New(nil, Options{})
	return WriteRoutes(out, a.Router.Routes())
}

func WriteRoutes(out io.Writer, infos []router.RouteInfo) error {
	if len(infos) == 0 {
		fmt.Fprintln(out, "No routes registered.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	fmt.Fprintln(w, "------\t----\t----")
	for _, ri := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}

// PromoteUser grants Administrator to username.
func PromoteUser(ctx context.Context, username string, out io.Writer) error {
	if err := BootDB(); err != nil {
		return err
	}
	a := New(database.DB, Options{})
	res, err := a.Users.PromoteByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("%s: %s", username, res.Message)
	}
	fmt.Fprintf(out, "%s is now %s.\n", res.Data.Username, res.Data.Role)
	return nil
}
