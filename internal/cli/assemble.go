package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hpi-packager/internal/app"
)

type assembleOptions struct {
	Spec          string
	Index         string
	PluginJar     string
	LicenseReport string
	OutputDir     string
}

func newAssembleCommand() *cobra.Command {
	opts := assembleOptions{}
	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Assemble the distributable plugin archive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAssemble(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Spec, "spec", "", "Project spec path")
	cmd.Flags().StringVar(&opts.Index, "index", "", "Plugin index file")
	cmd.Flags().StringVar(&opts.PluginJar, "plugin-jar", "", "Compiled plugin jar")
	cmd.Flags().StringVar(&opts.LicenseReport, "license-report", "", "License report directory")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	_ = viper.BindPFlag("spec", cmd.Flags().Lookup("spec"))
	_ = viper.BindPFlag("index", cmd.Flags().Lookup("index"))
	_ = viper.BindPFlag("plugin_jar", cmd.Flags().Lookup("plugin-jar"))
	_ = viper.BindPFlag("license_report", cmd.Flags().Lookup("license-report"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runAssemble(ctx context.Context, cmd *cobra.Command, opts assembleOptions) error {
	service := newAppService()
	result, err := service.Assemble(ctx, app.AssembleRequest{
		SpecPath:         resolveString(cmd, opts.Spec, "spec", "spec"),
		IndexPath:        resolveString(cmd, opts.Index, "index", "index"),
		PluginJar:        resolveString(cmd, opts.PluginJar, "plugin_jar", "plugin-jar"),
		LicenseReportDir: resolveString(cmd, opts.LicenseReport, "license_report", "license-report"),
		OutputDir:        resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("assembled %s (%d bundled, %d provided)\n",
		result.ArchivePath, result.BundledCount, result.ProvidedCount)
	return nil
}
