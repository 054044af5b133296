package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/domain/hierarchy"
	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/infrastructure/persistence"
	"github.com/VishnuMohan31/Worky-sub000/pkg/configuration"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the level tables if they do not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPool(func(ctx context.Context, pool *pgxpool.Pool) error {
				if _, err := pool.Exec(ctx, persistence.Schema()); err != nil {
					return fmt.Errorf("apply schema: %w", err)
				}
				cmd.Println("schema applied")
				return nil
			})
		},
	}
}

type seedOptions struct {
	Clients  int
	Fanout   int
	IDPrefix string
}

func newSeedCmd() *cobra.Command {
	var opts seedOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a demo hierarchy: --clients roots with --fanout children per level",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Clients < 1 || opts.Fanout < 1 {
				return fmt.Errorf("--clients and --fanout must be at least 1")
			}
			return withPool(func(ctx context.Context, pool *pgxpool.Pool) error {
				if _, err := pool.Exec(ctx, persistence.Schema()); err != nil {
					return fmt.Errorf("apply schema: %w", err)
				}
				total, err := seed(ctx, pool, opts)
				if err != nil {
					return err
				}
				cmd.Printf("seeded %d records\n", total)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&opts.Clients, "clients", 2, "number of root clients")
	cmd.Flags().IntVar(&opts.Fanout, "fanout", 3, "children per record at every level")
	cmd.Flags().StringVar(&opts.IDPrefix, "id-prefix", "", "id prefix (defaults to a random run id)")
	return cmd
}

func withPool(fn func(context.Context, *pgxpool.Pool) error) error {
	conf := configuration.Use()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, conf.Database.DSN())
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()
	return fn(ctx, pool)
}

func seed(ctx context.Context, pool *pgxpool.Pool, opts seedOptions) (int, error) {
	prefix := strings.TrimSpace(opts.IDPrefix)
	if prefix == "" {
		prefix = uuid.NewString()[:8]
	}

	total := 0
	parents := []string{""}
	for _, level := range hierarchy.Levels() {
		table, parentColumn, ok := persistence.TableMetadata(level)
		if !ok {
			return total, fmt.Errorf("no table for level %s", level)
		}
		fanout := opts.Fanout
		if level == hierarchy.LevelClient {
			fanout = opts.Clients
		}

		children := make([]string, 0, len(parents)*fanout)
		for _, parent := range parents {
			for i := 0; i < fanout; i++ {
				id := fmt.Sprintf("%s-%s-%d", prefix, level, total)
				name := fmt.Sprintf("%s %d", strings.ToUpper(level.String()[:1])+level.String()[1:], total)
				var err error
				if parentColumn == "" {
					_, err = pool.Exec(ctx,
						fmt.Sprintf(`INSERT INTO %s (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, table),
						id, name)
				} else {
					_, err = pool.Exec(ctx,
						fmt.Sprintf(`INSERT INTO %s (id, name, %s) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`, table, parentColumn),
						id, name, parent)
				}
				if err != nil {
					return total, fmt.Errorf("insert %s: %w", level, err)
				}
				children = append(children, id)
				total++
			}
		}
		parents = children
	}
	return total, nil
}
