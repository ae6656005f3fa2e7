package cmd

import (
	"context"
	"fmt"

	applibrary "yt2mp3/application/library"
	"yt2mp3/domain/media"
	"yt2mp3/infrastructure/config"
	"yt2mp3/infrastructure/filesystem"
	"yt2mp3/infrastructure/process"

	"github.com/spf13/cobra"
)

var listCount int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List downloaded MP3 files, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var setDirCmd = &cobra.Command{
	Use:   "set-dir PATH",
	Short: "Set the default output directory",
	Long: `Set the default output directory. The path is expanded (~), made absolute
and created if missing, then saved to the config file.

Example:
  yt2mp3 set-dir ~/Music/yt2mp3`,
	Args: cobra.ExactArgs(1),
	RunE: runSetDir,
}

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the output directory in the file manager",
	Args:  cobra.NoArgs,
	RunE:  runOpen,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(setDirCmd)
	rootCmd.AddCommand(openCmd)
	listCmd.Flags().IntVarP(&listCount, "count", "n", applibrary.DefaultListCount, "number of files to show")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	return RunListWithDependencies(filesystem.NewLibrary(), cfg.Paths.OutputDirectory, listCount, DefaultOutput)
}

// RunListWithDependencies runs the list command with injected dependencies (for testing)
func RunListWithDependencies(library media.Library, dir string, count int, out OutputWriter) error {
	service := applibrary.NewService(library, nil, out)
	_, err := service.List(dir, count)
	return err
}

func runSetDir(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	return RunSetDirWithDependencies(cfg, GetConfigPath(), args[0], DefaultOutput)
}

// RunSetDirWithDependencies runs the set-dir command with injected dependencies (for testing)
func RunSetDirWithDependencies(cfg *config.Config, configPath, dir string, out OutputWriter) error {
	mgr := config.NewConfigManager(cfg, configPath)
	resolved, err := mgr.SetOutputDir(dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Output directory set to: %s\n", resolved)
	return nil
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	opener := filesystem.NewOpener(process.NewExecCommandRunner(0))
	return RunOpenWithDependencies(cmd.Context(), opener, filesystem.NewLibrary(), cfg.Paths.OutputDirectory, DefaultOutput)
}

// DirEnsurer creates a directory if it is missing
type DirEnsurer interface {
	EnsureDir(dir string) error
}

// RunOpenWithDependencies runs the open command with injected dependencies (for testing)
func RunOpenWithDependencies(ctx context.Context, opener applibrary.FolderOpener, dirs DirEnsurer, dir string, out OutputWriter) error {
	if err := dirs.EnsureDir(dir); err != nil {
		return err
	}
	service := applibrary.NewService(nil, opener, out)
	return service.Open(ctx, dir)
}
