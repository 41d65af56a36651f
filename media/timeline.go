package media

import "fmt"

// Timeline describes how the background video is fitted to the narration
// audio. The output always runs exactly as long as the audio.
type Timeline struct {
	AudioSeconds float64
	VideoSeconds float64

	// Loops is the total number of times the video plays. 1 means the video
	// is at least as long as the audio and gets trimmed instead.
	Loops int
}

// PlanTimeline computes the loop/trim plan for the given durations. When the
// audio outruns the video, the video plays int(audio/video)+1 times and the
// surplus is trimmed; otherwise it plays once and is cut at the audio's end.
func PlanTimeline(audioSeconds, videoSeconds float64) (Timeline, error) {
	if audioSeconds <= 0 {
		return Timeline{}, fmt.Errorf("audio duration must be positive, got %.2fs", audioSeconds)
	}
	if videoSeconds <= 0 {
		return Timeline{}, fmt.Errorf("video duration must be positive, got %.2fs", videoSeconds)
	}

	plan := Timeline{
		AudioSeconds: audioSeconds,
		VideoSeconds: videoSeconds,
		Loops:        1,
	}
	if audioSeconds > videoSeconds {
		plan.Loops = int(audioSeconds/videoSeconds) + 1
	}
	return plan, nil
}

// NeedsLoop reports whether the video has to repeat to cover the audio
func (t Timeline) NeedsLoop() bool {
	return t.Loops > 1
}

// TargetSeconds is the duration of the composed output
func (t Timeline) TargetSeconds() float64 {
	return t.AudioSeconds
}
