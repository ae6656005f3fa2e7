//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"yt2mp3/cmd"
	"yt2mp3/infrastructure/config"

	"github.com/cucumber/godog"
)

type configContext struct {
	home       string
	configPath string
	cfg        *config.Config
	output     *bytes.Buffer
	err        error
}

// SharedConfigContext is reset before each scenario via Before hook
var SharedConfigContext *configContext

func getConfigContext() *configContext {
	return SharedConfigContext
}

func InitializeConfigScenario(ctx *godog.ScenarioContext) {
	var restore func()

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		home, err := os.MkdirTemp("", "yt2mp3-home-*")
		if err != nil {
			return c, err
		}
		restore = setEnv(map[string]string{
			"HOME":                   home,
			config.EnvOutputDir:      "",
			config.EnvTranscriptsDir: "",
			config.EnvQuality:        "",
			config.EnvYtdlpPath:      "",
			config.EnvFFmpegPath:     "",
			config.EnvAPIKey:         "",
		})
		SharedConfigContext = &configContext{
			home:       home,
			configPath: filepath.Join(home, ".yt2mp3", "config.yaml"),
			output:     &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if SharedConfigContext != nil {
			os.RemoveAll(SharedConfigContext.home)
		}
		if restore != nil {
			restore()
		}
		SharedConfigContext = nil
		return c, nil
	})

	ctx.Step(`^no configuration file exists$`, noConfigurationFileExists)
	ctx.Step(`^a configuration file containing:$`, aConfigurationFileContaining)
	ctx.Step(`^a legacy settings file with output directory "([^"]*)"$`, aLegacySettingsFileWithOutputDirectory)
	ctx.Step(`^the environment variable "([^"]*)" is "([^"]*)"$`, theEnvironmentVariableIs)
	ctx.Step(`^I load the configuration$`, iLoadTheConfiguration)
	ctx.Step(`^I set "([^"]*)" to "([^"]*)"$`, iSetTo)
	ctx.Step(`^the output directory should be "([^"]*)"$`, theOutputDirectoryShouldBe)
	ctx.Step(`^the quality should be (\d+)$`, theQualityShouldBe)
	ctx.Step(`^the saved configuration should have quality (\d+)$`, theSavedConfigurationShouldHaveQuality)
	ctx.Step(`^I should receive an unknown key error$`, iShouldReceiveAnUnknownKeyError)
}

func setEnv(values map[string]string) func() {
	previous := make(map[string]*string, len(values))
	for k, v := range values {
		if old, ok := os.LookupEnv(k); ok {
			previous[k] = &old
		} else {
			previous[k] = nil
		}
		if v == "" {
			os.Unsetenv(k)
		} else {
			os.Setenv(k, v)
		}
	}
	return func() {
		for k, old := range previous {
			if old == nil {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, *old)
			}
		}
	}
}

// homePath replaces a leading ~ with the scenario's home directory
func homePath(p string) string {
	return config.ExpandPath(p)
}

func noConfigurationFileExists() error {
	c := getConfigContext()
	if _, err := os.Stat(c.configPath); err == nil {
		return fmt.Errorf("unexpected config file at %s", c.configPath)
	}
	return nil
}

func aConfigurationFileContaining(doc *godog.DocString) error {
	c := getConfigContext()
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(c.configPath, []byte(doc.Content), 0644)
}

func aLegacySettingsFileWithOutputDirectory(dir string) error {
	content := fmt.Sprintf(`{"output_dir": %q}`, dir)
	return os.WriteFile(config.LegacyPath(), []byte(content), 0644)
}

func theEnvironmentVariableIs(key, value string) error {
	return os.Setenv(key, value)
}

func iLoadTheConfiguration() error {
	c := getConfigContext()
	c.cfg, c.err = config.LoadOrDefault(c.configPath)
	return c.err
}

func iSetTo(key, value string) error {
	c := getConfigContext()
	if c.cfg == nil {
		cfg, err := config.LoadOrDefault(c.configPath)
		if err != nil {
			return err
		}
		c.cfg = cfg
	}
	c.err = cmd.RunConfigSetWithDependencies(c.cfg, c.configPath, key, value, c.output)
	return nil
}

func theOutputDirectoryShouldBe(want string) error {
	c := getConfigContext()
	if got := c.cfg.Paths.OutputDirectory; got != homePath(want) {
		return fmt.Errorf("expected output directory %q, got %q", homePath(want), got)
	}
	return nil
}

func theQualityShouldBe(want int) error {
	c := getConfigContext()
	if c.cfg.Audio.Quality != want {
		return fmt.Errorf("expected quality %d, got %d", want, c.cfg.Audio.Quality)
	}
	return nil
}

func theSavedConfigurationShouldHaveQuality(want int) error {
	c := getConfigContext()
	if c.err != nil {
		return fmt.Errorf("unexpected error: %v", c.err)
	}
	saved, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if saved.Audio.Quality != want {
		return fmt.Errorf("expected saved quality %d, got %d", want, saved.Audio.Quality)
	}
	return nil
}

func iShouldReceiveAnUnknownKeyError() error {
	c := getConfigContext()
	if !errors.Is(c.err, config.ErrUnknownKey) {
		return fmt.Errorf("expected unknown key error, got %v", c.err)
	}
	if !strings.Contains(c.err.Error(), "output_dir") {
		return fmt.Errorf("error does not list valid keys: %v", c.err)
	}
	return nil
}
