package main

import (
	"context"
	"fmt"
	"os"
	"time"

	intconfig "corptransit/internal/config"
	"corptransit/internal/domain/models"
	"corptransit/internal/repositories"
	"corptransit/internal/tenant"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tenantctl",
		Short: "Kelola registry tenant corptransit",
	}

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(suspendCmd())
	rootCmd.AddCommand(activateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func withRepo(fn func(ctx context.Context, repo repositories.TenantRepository, env intconfig.Env) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env := intconfig.LoadEnv()
		intconfig.ConnectDB(env.DBDSN)
		defer intconfig.CloseDB()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return fn(ctx, repositories.TenantRepository{}, env)
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Daftar semua tenant",
		RunE: withRepo(func(ctx context.Context, repo repositories.TenantRepository, _ intconfig.Env) error {
			tenants, err := repo.List(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%-4s %-25s %-15s %-25s %s\n", "ID", "COMPANY", "SUBDOMAIN", "SCHEMA", "STATUS")
			for _, t := range tenants {
				fmt.Printf("%-4d %-25s %-15s %-25s %s\n", t.ID, t.CompanyName, t.Subdomain, t.SchemaName, t.Status)
			}
			return nil
		}),
	}
}

func addCmd() *cobra.Command {
	var (
		company string
		schema  string
	)
	cmd := &cobra.Command{
		Use:   "add [subdomain]",
		Short: "Registrasi tenant baru",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepo(func(ctx context.Context, repo repositories.TenantRepository, _ intconfig.Env) error {
				sub := args[0]
				if schema == "" {
					schema = "tenant_" + sub
				}
				// reject unsafe names before they reach the registry
				if _, err := tenant.ParseSchema(schema); err != nil {
					return err
				}
				id, err := repo.Create(ctx, models.Tenant{
					CompanyName: company,
					Subdomain:   sub,
					SchemaName:  schema,
					Status:      models.TenantStatusActive,
				})
				if err != nil {
					return err
				}
				fmt.Printf("tenant terdaftar: id=%d subdomain=%s schema=%s\n", id, sub, schema)
				return nil
			})(cmd, args)
		},
	}
	cmd.Flags().StringVarP(&company, "company", "c", "", "Nama perusahaan")
	cmd.Flags().StringVarP(&schema, "schema", "s", "", "Nama schema (default tenant_<subdomain>)")
	return cmd
}

func suspendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suspend [subdomain]",
		Short: "Suspend tenant; request berikutnya tidak lagi ter-resolve",
		Args:  cobra.ExactArgs(1),
		RunE: withStatus(models.TenantStatusSuspended),
	}
}

func activateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate [subdomain]",
		Short: "Aktifkan kembali tenant yang di-suspend",
		Args:  cobra.ExactArgs(1),
		RunE: withStatus(models.TenantStatusActive),
	}
}

func withStatus(status string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withRepo(func(ctx context.Context, repo repositories.TenantRepository, env intconfig.Env) error {
			sub := args[0]
			if err := repo.SetStatus(ctx, sub, status); err != nil {
				return err
			}
			// the resolver may still hold the mapping; drop it so the
			// status flip takes effect within this request, not after TTL
			if cache := tenant.NewSchemaCache(env.RedisAddr); cache != nil {
				cache.Invalidate(ctx, sub)
			}
			fmt.Printf("tenant %s -> %s\n", sub, status)
			return nil
		})(cmd, args)
	}
}
