package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/alecthomas/kong"

	orderboard "github.com/goliatone/go-orderboard/components/orderboard"
	"github.com/goliatone/go-orderboard/components/orderboard/commands"
)

type cli struct {
	Seed     seedCmd     `cmd:"" help:"Seed a snapshot file with demo orders and a starter dashboard."`
	Inspect  inspectCmd  `cmd:"" help:"Summarize the contents of a snapshot file."`
	Manifest manifestCmd `cmd:"" help:"Validate a widget manifest file."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Operator utility for orderboard snapshot files and manifests."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type seedCmd struct {
	Snapshot string `required:"" type:"path" help:"Path to the snapshot JSON file to create or extend."`
	User     string `default:"demo-user" help:"User id that owns the seeded data."`
	Orders   int    `default:"25" help:"Number of demo orders to generate."`
	Seed     int64  `default:"1" help:"Deterministic seed for demo data generation."`
	Name     string `default:"Demo Dashboard" help:"Name of the seeded dashboard."`
}

func (cmd *seedCmd) Run(ctx context.Context) error {
	path, err := filepath.Abs(cmd.Snapshot)
	if err != nil {
		return fmt.Errorf("boardctl: resolve snapshot path: %w", err)
	}
	store, err := orderboard.NewFileSnapshotStore(path)
	if err != nil {
		return err
	}
	service := orderboard.NewService(orderboard.Options{Snapshots: store})
	if err := service.Restore(ctx); err != nil {
		return err
	}

	seed := commands.NewSeedDemoDataCommand(service, nil)
	if err := seed.Execute(ctx, commands.SeedDemoDataInput{
		UserID:    cmd.User,
		Orders:    cmd.Orders,
		Seed:      cmd.Seed,
		Dashboard: cmd.Name,
	}); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "✓ Seeded %d orders and dashboard %q for %s into %s\n", cmd.Orders, cmd.Name, cmd.User, path)
	return nil
}

type inspectCmd struct {
	Snapshot string `required:"" type:"path" help:"Path to the snapshot JSON file."`
}

func (cmd *inspectCmd) Run(_ context.Context) error {
	path, err := filepath.Abs(cmd.Snapshot)
	if err != nil {
		return fmt.Errorf("boardctl: resolve snapshot path: %w", err)
	}
	store, err := orderboard.NewFileSnapshotStore(path)
	if err != nil {
		return err
	}
	snapshot, found, err := store.Load()
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("boardctl: snapshot %s does not exist", path)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USER\tDASHBOARDS\tWIDGETS\tORDERS\tDATE FILTER")
	for user := range snapshot.UserDashboards {
		dashboards := snapshot.UserDashboards[user]
		widgets := 0
		for _, dash := range dashboards {
			widgets += len(dash.Widgets)
		}
		filter := orderboard.FilterAllTime
		if sess, ok := snapshot.Sessions[user]; ok {
			filter = sess.DateFilter
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", user, len(dashboards), widgets, len(snapshot.UserOrders[user]), filter)
	}
	for user, orders := range snapshot.UserOrders {
		if _, seen := snapshot.UserDashboards[user]; seen {
			continue
		}
		fmt.Fprintf(w, "%s\t0\t0\t%d\t%s\n", user, len(orders), orderboard.FilterAllTime)
	}
	return w.Flush()
}

type manifestCmd struct {
	Path string `arg:"" type:"path" help:"Path to the manifest YAML file."`
}

func (cmd *manifestCmd) Run(_ context.Context) error {
	doc, err := orderboard.ReadManifest(cmd.Path)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Manifest %s is valid (%d widgets)\n", cmd.Path, len(doc.Widgets))
	return nil
}
