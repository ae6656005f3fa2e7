//go:build integration

package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"yt2mp3/domain/clip"

	"github.com/cucumber/godog"
)

// clipContext holds test state for time parsing and clip window scenarios
type clipContext struct {
	offset  clip.Offset
	request clip.Request
	window  clip.Window
	err     error
}

// SharedClipContext is reset before each scenario via Before hook
var SharedClipContext *clipContext

func getClipContext() *clipContext {
	return SharedClipContext
}

func InitializeClipScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedClipContext = &clipContext{}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedClipContext = nil
		return c, nil
	})

	ctx.Step(`^I parse the time "([^"]*)"$`, iParseTheTime)
	ctx.Step(`^the offset should be (\d+(?:\.\d+)?) seconds$`, theOffsetShouldBeSeconds)
	ctx.Step(`^formatting and parsing the offset again gives the same value$`, formattingAndParsingGivesTheSameValue)
	ctx.Step(`^I should receive an invalid time format error$`, iShouldReceiveAnInvalidTimeFormatError)

	ctx.Step(`^a clip starting at "([^"]*)"$`, aClipStartingAt)
	ctx.Step(`^a clip duration of "([^"]*)"$`, aClipDurationOf)
	ctx.Step(`^a clip ending at "([^"]*)"$`, aClipEndingAt)
	ctx.Step(`^I resolve the clip window$`, iResolveTheClipWindow)
	ctx.Step(`^the window should run from (\d+(?:\.\d+)?) to (\d+(?:\.\d+)?) seconds$`, theWindowShouldRunFromTo)
	ctx.Step(`^the window should start at (\d+(?:\.\d+)?) seconds and run to the end$`, theWindowShouldStartAtAndRunToTheEnd)
	ctx.Step(`^I should receive a conflicting clip arguments error$`, iShouldReceiveAConflictingClipArgumentsError)
	ctx.Step(`^I should receive an invalid clip range error$`, iShouldReceiveAnInvalidClipRangeError)
}

func iParseTheTime(text string) error {
	c := getClipContext()
	c.offset, c.err = clip.ParseOffset(text)
	return nil
}

func theOffsetShouldBeSeconds(want string) error {
	c := getClipContext()
	if c.err != nil {
		return fmt.Errorf("unexpected error: %v", c.err)
	}
	expected, err := strconv.ParseFloat(want, 64)
	if err != nil {
		return err
	}
	if c.offset.Seconds() != expected {
		return fmt.Errorf("expected %v seconds, got %v", expected, c.offset.Seconds())
	}
	return nil
}

func formattingAndParsingGivesTheSameValue() error {
	c := getClipContext()
	again, err := clip.ParseOffset(c.offset.String())
	if err != nil {
		return fmt.Errorf("re-parsing %q failed: %v", c.offset.String(), err)
	}
	if again != c.offset {
		return fmt.Errorf("round trip changed %v to %v", c.offset, again)
	}
	return nil
}

func iShouldReceiveAnInvalidTimeFormatError() error {
	return expectError(getClipContext().err, clip.ErrInvalidTimeFormat)
}

func aClipStartingAt(v string) error {
	getClipContext().request.Start = v
	return nil
}

func aClipDurationOf(v string) error {
	getClipContext().request.Duration = v
	return nil
}

func aClipEndingAt(v string) error {
	getClipContext().request.End = v
	return nil
}

func iResolveTheClipWindow() error {
	c := getClipContext()
	c.window, c.err = clip.Resolve(c.request)
	return nil
}

func theWindowShouldRunFromTo(start, end string) error {
	c := getClipContext()
	if c.err != nil {
		return fmt.Errorf("unexpected error: %v", c.err)
	}
	if c.window.End == nil {
		return fmt.Errorf("expected a bounded window, got %s", c.window)
	}
	if got := c.window.String(); got != start+"-"+end {
		return fmt.Errorf("expected window %s-%s, got %s", start, end, got)
	}
	return nil
}

func theWindowShouldStartAtAndRunToTheEnd(start string) error {
	c := getClipContext()
	if c.err != nil {
		return fmt.Errorf("unexpected error: %v", c.err)
	}
	if got := c.window.String(); got != start+"-end" {
		return fmt.Errorf("expected window %s-end, got %s", start, got)
	}
	return nil
}

func iShouldReceiveAConflictingClipArgumentsError() error {
	return expectError(getClipContext().err, clip.ErrConflictingClipArgs)
}

func iShouldReceiveAnInvalidClipRangeError() error {
	return expectError(getClipContext().err, clip.ErrInvalidClipRange)
}

func expectError(got, want error) error {
	if got == nil {
		return fmt.Errorf("expected error %q, got none", want)
	}
	if !errors.Is(got, want) {
		return fmt.Errorf("expected error %q, got %q", want, got)
	}
	return nil
}
