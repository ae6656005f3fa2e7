package cmd

import (
	"context"
	"os"
	"strings"
	"time"

	appcatalog "yt2mp3/application/catalog"
	appdownload "yt2mp3/application/download"
	"yt2mp3/domain/catalog"
	"yt2mp3/domain/media"
	"yt2mp3/infrastructure/config"
	"yt2mp3/infrastructure/process"
	"yt2mp3/infrastructure/youtubeapi"
	"yt2mp3/infrastructure/ytdlp"

	"github.com/spf13/cobra"
)

var (
	searchCount    int
	searchDownload int
	searchQuality  string
	searchOutput   string
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY...",
	Short: "Search YouTube and optionally download a result",
	Long: `Search YouTube and list the results with their durations.

Uses the YouTube Data API when youtube.api_key (or YOUTUBE_API_KEY) is set,
otherwise yt-dlp's search.

Examples:
  yt2mp3 search "lofi hip hop"
  yt2mp3 search never gonna give you up -n 5
  yt2mp3 search "song name" -d 1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchCount, "count", "n", 10, "number of results")
	searchCmd.Flags().IntVarP(&searchDownload, "download", "d", 0, "download result number N")
	searchCmd.Flags().StringVarP(&searchQuality, "quality", "q", "", qualityHelp())
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "output directory for the download")
}

// newSearcher picks the Data API when a key is configured, else yt-dlp
func newSearcher(ctx context.Context, cfg *config.Config, runner process.CommandRunner) (catalog.Searcher, error) {
	if cfg.YouTube.APIKey != "" {
		return youtubeapi.NewSearcher(ctx, cfg.YouTube.APIKey)
	}
	return ytdlp.NewCatalog(ytdlpOptions(cfg, runner)...), nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	runner, err := newToolRunner(cfg)
	if err != nil {
		return err
	}
	quality, err := resolveQuality(searchQuality, cfg)
	if err != nil {
		return err
	}
	searcher, err := newSearcher(cmd.Context(), cfg, process.NewExecCommandRunner(time.Minute))
	if err != nil {
		return err
	}

	return RunSearchWithDependencies(
		cmd.Context(),
		searcher,
		ytdlp.NewDownloader(ytdlpOptions(cfg, runner)...),
		appcatalog.SearchInput{
			Query:     strings.Join(args, " "),
			Count:     searchCount,
			Pick:      searchDownload,
			OutputDir: resolveDir(searchOutput, cfg.Paths.OutputDirectory),
			Quality:   quality,
		},
		os.Stdout,
	)
}

// RunSearchWithDependencies runs the search command with injected dependencies (for testing)
func RunSearchWithDependencies(
	ctx context.Context,
	searcher catalog.Searcher,
	downloader media.Downloader,
	input appcatalog.SearchInput,
	output OutputWriter,
) error {
	if input.Pick != 0 {
		if err := verifyInstalled(ctx, downloader, "yt-dlp"); err != nil {
			return err
		}
	}

	service := appcatalog.NewService(searcher, nil, appdownload.NewService(downloader, output), output)
	_, err := service.Search(ctx, input)
	return err
}
