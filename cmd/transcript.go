package cmd

import (
	"context"
	"os"

	appcatalog "yt2mp3/application/catalog"
	apptranscript "yt2mp3/application/transcript"
	"yt2mp3/domain/catalog"
	"yt2mp3/domain/media"
	"yt2mp3/domain/transcript"
	"yt2mp3/infrastructure/filesystem"
	"yt2mp3/infrastructure/transcripts"
	"yt2mp3/infrastructure/ytclient"
	"yt2mp3/infrastructure/ytdlp"

	"github.com/spf13/cobra"
)

var (
	transcriptOutput string
	transcriptLang   string
	transcriptFormat string
	transcriptNoAuto bool
	transcriptMax    int
	transcriptInfo   bool
)

var transcriptCmd = &cobra.Command{
	Use:     "transcript URL",
	Aliases: []string{"t"},
	Short:   "Download captions for a video or playlist",
	Long: `Download captions only (no audio).

Files are saved to <transcripts dir>/<creator>/<title>.<ext>, with a
<playlist> level in between for playlists.

Examples:
  yt2mp3 transcript "URL"                  # plain text
  yt2mp3 transcript "URL" -f srt           # SRT subtitles
  yt2mp3 transcript "URL" -f json          # with timestamps
  yt2mp3 transcript "PLAYLIST_URL" -n 10   # first 10 videos of a playlist`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscript,
}

func init() {
	rootCmd.AddCommand(transcriptCmd)
	transcriptCmd.Flags().StringVarP(&transcriptOutput, "output", "o", "", "output directory")
	transcriptCmd.Flags().StringVarP(&transcriptLang, "lang", "l", transcript.DefaultLanguage, "language code")
	transcriptCmd.Flags().StringVarP(&transcriptFormat, "format", "f", string(transcript.FormatText), "output format: txt, srt or json")
	transcriptCmd.Flags().BoolVar(&transcriptNoAuto, "no-auto", false, "skip auto-generated captions")
	transcriptCmd.Flags().IntVarP(&transcriptMax, "max", "n", 0, "maximum number of videos for a playlist")
	transcriptCmd.Flags().BoolVar(&transcriptInfo, "info", false, "show playlist info without downloading")
}

func runTranscript(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	runner, err := newToolRunner(cfg)
	if err != nil {
		return err
	}
	timeout, err := cfg.ToolTimeout()
	if err != nil {
		return err
	}
	format, err := transcript.ParseFormat(transcriptFormat)
	if err != nil {
		return err
	}
	req, err := transcript.NewRequest(args[0], transcriptLang, format, !transcriptNoAuto, resolveDir(transcriptOutput, cfg.Paths.TranscriptsDirectory))
	if err != nil {
		return err
	}
	req.Max = transcriptMax

	playlists, err := newPlaylistFetcher(cfg, runner)
	if err != nil {
		return err
	}
	fetcher := transcripts.NewFetcher(ytdlp.NewSubtitles(ytdlpOptions(cfg, runner)...))

	return RunTranscriptWithDependencies(
		cmd.Context(),
		fetcher,
		ytclient.NewClient(timeout),
		playlists,
		filesystem.NewLibrary(),
		req,
		transcriptInfo,
		os.Stdout,
	)
}

// RunTranscriptWithDependencies runs the transcript command with injected dependencies (for testing)
func RunTranscriptWithDependencies(
	ctx context.Context,
	fetcher transcript.Fetcher,
	metadata catalog.MetadataFetcher,
	playlists catalog.PlaylistFetcher,
	writer transcript.Writer,
	req *transcript.Request,
	infoOnly bool,
	output OutputWriter,
) error {
	browser := appcatalog.NewService(nil, playlists, nil, output)
	service := apptranscript.NewService(fetcher, metadata, browser, writer, output)

	if media.IsPlaylistURL(req.URL) {
		_, err := service.Playlist(ctx, req, infoOnly)
		return err
	}
	_, err := service.Download(ctx, req)
	return err
}
