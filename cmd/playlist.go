package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"

	appcatalog "yt2mp3/application/catalog"
	appdownload "yt2mp3/application/download"
	"yt2mp3/domain/catalog"
	"yt2mp3/domain/media"
	"yt2mp3/infrastructure/config"
	"yt2mp3/infrastructure/process"
	"yt2mp3/infrastructure/ytclient"
	"yt2mp3/infrastructure/ytdlp"

	"github.com/spf13/cobra"
)

var (
	playlistOutput  string
	playlistQuality string
	playlistMax     int
	playlistInfo    bool
)

var playlistCmd = &cobra.Command{
	Use:   "playlist URL",
	Short: "Download every video in a playlist",
	Long: `Fetch a playlist and download its videos one after another.

Examples:
  yt2mp3 playlist "https://www.youtube.com/playlist?list=PL..." --info
  yt2mp3 playlist "URL" -n 10 -q 320`,
	Args: cobra.ExactArgs(1),
	RunE: runPlaylist,
}

func init() {
	rootCmd.AddCommand(playlistCmd)
	playlistCmd.Flags().StringVarP(&playlistOutput, "output", "o", "", "output directory")
	playlistCmd.Flags().StringVarP(&playlistQuality, "quality", "q", "", qualityHelp())
	playlistCmd.Flags().IntVarP(&playlistMax, "max", "n", 0, "maximum number of videos to download")
	playlistCmd.Flags().BoolVar(&playlistInfo, "info", false, "show playlist info without downloading")
}

// fallbackPlaylists tries the primary fetcher and falls back to the secondary on failure
type fallbackPlaylists struct {
	primary   catalog.PlaylistFetcher
	secondary catalog.PlaylistFetcher
}

func (f fallbackPlaylists) FetchPlaylist(ctx context.Context, url string) (*catalog.Playlist, error) {
	pl, err := f.primary.FetchPlaylist(ctx, url)
	if err == nil || errors.Is(err, context.Canceled) {
		return pl, err
	}
	slog.Debug("playlist lookup failed, retrying with yt-dlp", "url", url, "error", err)
	return f.secondary.FetchPlaylist(ctx, url)
}

func newPlaylistFetcher(cfg *config.Config, runner process.CommandRunner) (catalog.PlaylistFetcher, error) {
	timeout, err := cfg.ToolTimeout()
	if err != nil {
		return nil, err
	}
	return fallbackPlaylists{
		primary:   ytclient.NewClient(timeout),
		secondary: ytdlp.NewCatalog(ytdlpOptions(cfg, runner)...),
	}, nil
}

func runPlaylist(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	runner, err := newToolRunner(cfg)
	if err != nil {
		return err
	}
	quality, err := resolveQuality(playlistQuality, cfg)
	if err != nil {
		return err
	}
	playlists, err := newPlaylistFetcher(cfg, runner)
	if err != nil {
		return err
	}

	return RunPlaylistWithDependencies(
		cmd.Context(),
		playlists,
		ytdlp.NewDownloader(ytdlpOptions(cfg, runner)...),
		appcatalog.PlaylistInput{
			URL:       args[0],
			Max:       playlistMax,
			InfoOnly:  playlistInfo,
			OutputDir: resolveDir(playlistOutput, cfg.Paths.OutputDirectory),
			Quality:   quality,
		},
		os.Stdout,
	)
}

// RunPlaylistWithDependencies runs the playlist command with injected dependencies (for testing)
func RunPlaylistWithDependencies(
	ctx context.Context,
	playlists catalog.PlaylistFetcher,
	downloader media.Downloader,
	input appcatalog.PlaylistInput,
	output OutputWriter,
) error {
	if !input.InfoOnly {
		if err := verifyInstalled(ctx, downloader, "yt-dlp"); err != nil {
			return err
		}
	}

	service := appcatalog.NewService(nil, playlists, appdownload.NewService(downloader, output), output)
	_, err := service.Playlist(ctx, input)
	return err
}
