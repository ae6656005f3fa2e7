//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	appdownload "yt2mp3/application/download"
	"yt2mp3/cmd"
	"yt2mp3/domain/clip"
	"yt2mp3/domain/media"
	"yt2mp3/infrastructure/process"
	"yt2mp3/infrastructure/ytdlp"

	"github.com/cucumber/godog"
)

// downloadContext holds test state for download and batch scenarios
type downloadContext struct {
	outputDir string
	quality   media.Quality
	clip      clip.Request
	failing   map[string]bool
	runner    *process.FakeRunner
	output    *bytes.Buffer
	err       error
}

// SharedDownloadContext is reset before each scenario via Before hook
var SharedDownloadContext *downloadContext

func getDownloadContext() *downloadContext {
	return SharedDownloadContext
}

func InitializeDownloadScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		d := &downloadContext{
			outputDir: "/music",
			quality:   media.DefaultQuality,
			failing:   make(map[string]bool),
			output:    &bytes.Buffer{},
		}
		d.runner = &process.FakeRunner{Handler: d.fakeYtdlp}
		SharedDownloadContext = d
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedDownloadContext = nil
		return c, nil
	})

	ctx.Step(`^the output directory is "([^"]*)"$`, theOutputDirectoryIs)
	ctx.Step(`^the quality is (\d+) kbps$`, theQualityIsKbps)
	ctx.Step(`^the download starts at "([^"]*)"$`, theDownloadStartsAt)
	ctx.Step(`^the download lasts "([^"]*)"$`, theDownloadLasts)
	ctx.Step(`^the download ends at "([^"]*)"$`, theDownloadEndsAt)
	ctx.Step(`^the video "([^"]*)" is unavailable$`, theVideoIsUnavailable)
	ctx.Step(`^I download "([^"]*)"$`, iDownload)
	ctx.Step(`^I batch download:$`, iBatchDownload)
	ctx.Step(`^the download should succeed$`, theDownloadShouldSucceed)
	ctx.Step(`^the command should fail$`, theCommandShouldFail)
	ctx.Step(`^yt-dlp should have been called with "([^"]*)"$`, ytdlpShouldHaveBeenCalledWith)
	ctx.Step(`^yt-dlp should not have been called$`, ytdlpShouldNotHaveBeenCalled)
	ctx.Step(`^the output should contain "([^"]*)"$`, theOutputShouldContain)
}

// fakeYtdlp answers --version and prints the saved path for downloads
func (d *downloadContext) fakeYtdlp(call process.Call) ([]byte, error) {
	if slices.Contains(call.Args, "--version") {
		return []byte("2025.01.15\n"), nil
	}
	url := call.Args[len(call.Args)-1]
	if d.failing[url] {
		return nil, &process.CommandError{Name: call.Name, ExitCode: 1, Stderr: "ERROR: Video unavailable"}
	}
	name := url[strings.LastIndex(url, "/")+1:]
	return []byte(fmt.Sprintf("[yt2mp3] 100.0%%\n%s/%s.mp3\n", d.outputDir, name)), nil
}

func (d *downloadContext) downloader() media.Downloader {
	return ytdlp.NewDownloader(ytdlp.WithCommandRunner(d.runner))
}

func theOutputDirectoryIs(dir string) error {
	getDownloadContext().outputDir = dir
	return nil
}

func theQualityIsKbps(q int) error {
	getDownloadContext().quality = media.Quality(q)
	return nil
}

func theDownloadStartsAt(v string) error {
	getDownloadContext().clip.Start = v
	return nil
}

func theDownloadLasts(v string) error {
	getDownloadContext().clip.Duration = v
	return nil
}

func theDownloadEndsAt(v string) error {
	getDownloadContext().clip.End = v
	return nil
}

func theVideoIsUnavailable(url string) error {
	getDownloadContext().failing[url] = true
	return nil
}

func iDownload(url string) error {
	d := getDownloadContext()
	d.err = cmd.RunDownloadWithDependencies(
		context.Background(),
		d.downloader(),
		appdownload.Input{
			URL:       url,
			OutputDir: d.outputDir,
			Quality:   d.quality,
			Clip:      d.clip,
		},
		d.output,
	)
	return nil
}

func iBatchDownload(urls *godog.DocString) error {
	d := getDownloadContext()
	d.err = cmd.RunBatchWithDependencies(
		context.Background(),
		d.downloader(),
		nil,
		strings.NewReader(urls.Content),
		d.outputDir,
		d.quality,
		d.output,
	)
	return nil
}

func theDownloadShouldSucceed() error {
	d := getDownloadContext()
	if d.err != nil {
		return fmt.Errorf("unexpected error: %v\noutput:\n%s", d.err, d.output.String())
	}
	return nil
}

func theCommandShouldFail() error {
	if getDownloadContext().err == nil {
		return fmt.Errorf("expected an error, got none")
	}
	return nil
}

func ytdlpShouldHaveBeenCalledWith(arg string) error {
	d := getDownloadContext()
	for _, call := range d.runner.Calls {
		if slices.Contains(call.Args, arg) {
			return nil
		}
	}
	return fmt.Errorf("no yt-dlp call contained %q; calls: %v", arg, d.runner.Calls)
}

func ytdlpShouldNotHaveBeenCalled() error {
	d := getDownloadContext()
	if len(d.runner.Calls) != 0 {
		return fmt.Errorf("expected no yt-dlp calls, got %v", d.runner.Calls)
	}
	return nil
}

func theOutputShouldContain(text string) error {
	d := getDownloadContext()
	if !strings.Contains(d.output.String(), text) {
		return fmt.Errorf("output does not contain %q:\n%s", text, d.output.String())
	}
	return nil
}
