package ytdlp

// Command line flags passed to yt-dlp
const (
	flagExtractAudio    = "-x"
	flagAudioFormat     = "--audio-format"
	flagAudioQuality    = "--audio-quality"
	flagOutput          = "-o"
	flagNoPlaylist      = "--no-playlist"
	flagNewline         = "--newline"
	flagProgress        = "--progress"
	flagProgressTmpl    = "--progress-template"
	flagPrint           = "--print"
	flagFFmpegLocation  = "--ffmpeg-location"
	flagExternalDLer    = "--external-downloader"
	flagExternalDLArgs  = "--external-downloader-args"
	flagDumpJSON        = "-J"
	flagFlatPlaylist    = "--flat-playlist"
	flagNoWarnings      = "--no-warnings"
	flagSkipDownload    = "--skip-download"
	flagWriteSubs       = "--write-subs"
	flagWriteAutoSubs   = "--write-auto-subs"
	flagSubLangs        = "--sub-langs"
	flagSubFormat       = "--sub-format"
	flagConvertSubs     = "--convert-subs"
	flagVersion         = "--version"
	progressPrefix      = "[yt2mp3] "
	progressTemplate    = "download:" + progressPrefix + "%(progress._percent_str)s"
	printFinalPath      = "after_move:filepath"
	externalFFmpeg      = "ffmpeg"
	externalFFmpegInput = "ffmpeg_i:"
)
