package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hpi-packager/internal/app"
)

type resolveOptions struct {
	Spec      string
	Index     string
	OutputDir string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve dependency roles and rewrite provided scopes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Spec, "spec", "", "Project spec path")
	cmd.Flags().StringVar(&opts.Index, "index", "", "Plugin index file")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	_ = viper.BindPFlag("spec", cmd.Flags().Lookup("spec"))
	_ = viper.BindPFlag("index", cmd.Flags().Lookup("index"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	service := newAppService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		SpecPath:  resolveString(cmd, opts.Spec, "spec", "spec"),
		IndexPath: resolveString(cmd, opts.Index, "index", "index"),
		OutputDir: resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("resolved %d artifacts (%d provided) for %s into %s\n",
		result.ResolvedCount, result.ProvidedCount, result.ProjectName, result.OutputDir)
	return nil
}
