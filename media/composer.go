// Package media locates background footage, probes durations, and composes
// the final highlight video with ffmpeg.
package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"market-scout/config"
	"market-scout/observability"

	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Capability reports which external media tools are on PATH
type Capability struct {
	FFmpeg  bool
	FFprobe bool
}

// VideoReady reports whether video composition can run at all
func (c Capability) VideoReady() bool {
	return c.FFmpeg && c.FFprobe
}

// Detect probes PATH for the ffmpeg toolchain. Called once at startup; the
// result decides whether highlight-video creation is offered.
func Detect() Capability {
	var cap Capability
	if _, err := exec.LookPath("ffmpeg"); err == nil {
		cap.FFmpeg = true
	}
	if _, err := exec.LookPath("ffprobe"); err == nil {
		cap.FFprobe = true
	}
	if !cap.VideoReady() {
		observability.Warn("ffmpeg toolchain not found, highlight video creation disabled",
			"ffmpeg", cap.FFmpeg, "ffprobe", cap.FFprobe)
	}
	return cap
}

// Composer assembles the highlight video from narration audio, background
// footage, and the overlay image.
type Composer struct {
	cfg config.MediaConfig
	cap Capability
}

// NewComposer creates a composer over the configured asset names
func NewComposer(cfg config.MediaConfig, cap Capability) *Composer {
	return &Composer{cfg: cfg, cap: cap}
}

// LocateBackgroundVideo returns the first configured background filename that
// exists on disk. When none exists it returns the primary candidate and
// false, so callers can tell the user which file to provide.
func (c *Composer) LocateBackgroundVideo() (string, bool) {
	for _, name := range c.cfg.BackgroundCandidates {
		if _, err := os.Stat(name); err == nil {
			return name, true
		}
	}
	return c.cfg.BackgroundCandidates[0], false
}

// probe runs ffprobe on the file and returns its JSON description
func (c *Composer) probe(path string) (string, error) {
	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return "", fmt.Errorf("failed to probe %s: %w", path, err)
	}
	return raw, nil
}

func durationOf(probeJSON string) (float64, error) {
	dur := gjson.Get(probeJSON, "format.duration")
	if !dur.Exists() || dur.Float() <= 0 {
		return 0, fmt.Errorf("no usable duration in probe output")
	}
	return dur.Float(), nil
}

func videoWidthOf(probeJSON string) int64 {
	return gjson.Get(probeJSON, `streams.#(codec_type=="video").width`).Int()
}

// Compose builds the final video: background footage looped or trimmed to the
// narration's length, the overlay image scaled to half the video width and
// pinned to the bottom-left corner, audio muxed in, H.264 + AAC out. The
// overlay is optional; composition proceeds without it when the image file is
// missing.
func (c *Composer) Compose(ctx context.Context, audioPath, videoPath, outputPath string) error {
	if !c.cap.VideoReady() {
		return fmt.Errorf("ffmpeg and ffprobe are required for video creation")
	}

	metrics := observability.GetMetrics()
	timer := metrics.NewTimer()

	audioProbe, err := c.probe(audioPath)
	if err != nil {
		timer.ObserveMediaJob("compose", "probe_error")
		return err
	}
	videoProbe, err := c.probe(videoPath)
	if err != nil {
		timer.ObserveMediaJob("compose", "probe_error")
		return err
	}

	audioDur, err := durationOf(audioProbe)
	if err != nil {
		timer.ObserveMediaJob("compose", "probe_error")
		return fmt.Errorf("audio %s: %w", audioPath, err)
	}
	videoDur, err := durationOf(videoProbe)
	if err != nil {
		timer.ObserveMediaJob("compose", "probe_error")
		return fmt.Errorf("video %s: %w", videoPath, err)
	}

	plan, err := PlanTimeline(audioDur, videoDur)
	if err != nil {
		timer.ObserveMediaJob("compose", "plan_error")
		return err
	}

	if plan.NeedsLoop() {
		observability.Info("audio outruns video, looping background",
			"audio_seconds", fmt.Sprintf("%.2f", audioDur),
			"video_seconds", fmt.Sprintf("%.2f", videoDur),
			"loops", plan.Loops)
	} else {
		observability.Info("trimming background to audio length",
			"audio_seconds", fmt.Sprintf("%.2f", audioDur),
			"video_seconds", fmt.Sprintf("%.2f", videoDur))
	}

	videoInputArgs := ffmpeg.KwArgs{}
	if plan.NeedsLoop() {
		// -stream_loop N replays the input N extra times
		videoInputArgs["stream_loop"] = plan.Loops - 1
	}

	background := ffmpeg.Input(videoPath, videoInputArgs)
	narration := ffmpeg.Input(audioPath)

	videoStream := background.Video()
	if width := videoWidthOf(videoProbe); width > 0 {
		if _, statErr := os.Stat(c.cfg.OverlayImage); statErr == nil {
			overlay := ffmpeg.Input(c.cfg.OverlayImage).
				Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:-1", width/2)})
			videoStream = videoStream.Overlay(overlay, "", ffmpeg.KwArgs{
				"x": "20",
				"y": "main_h-overlay_h-20",
			})
		} else {
			observability.Warn("overlay image not found, composing without it",
				"path", c.cfg.OverlayImage)
		}
	}

	cmd := ffmpeg.Output(
		[]*ffmpeg.Stream{videoStream, narration.Audio()},
		outputPath,
		ffmpeg.KwArgs{
			"c:v": "libx264",
			"c:a": "aac",
			"t":   fmt.Sprintf("%.3f", plan.TargetSeconds()),
		},
	).OverWriteOutput().Compile()

	// Recompile under the caller's context so cancellation kills ffmpeg
	var stderr bytes.Buffer
	run := exec.CommandContext(ctx, cmd.Path, cmd.Args[1:]...)
	run.Stderr = &stderr

	start := time.Now()
	if err := run.Run(); err != nil {
		timer.ObserveMediaJob("compose", "ffmpeg_error")
		return fmt.Errorf("ffmpeg failed after %s: %w: %s",
			time.Since(start).Round(time.Millisecond), err, stderr.String())
	}

	timer.ObserveMediaJob("compose", "success")
	observability.Info("highlight video composed",
		"output", outputPath,
		"duration_seconds", fmt.Sprintf("%.2f", plan.TargetSeconds()))
	return nil
}
