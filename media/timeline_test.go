package media

import "testing"

func TestPlanTimeline_LoopsWhenAudioOutrunsVideo(t *testing.T) {
	plan, err := PlanTimeline(30, 10)
	if err != nil {
		t.Fatalf("expected plan, got error: %v", err)
	}

	if plan.Loops != 4 {
		t.Errorf("expected 4 total plays for 30s audio over 10s video, got %d", plan.Loops)
	}
	if !plan.NeedsLoop() {
		t.Error("expected looping to be required")
	}
	if plan.TargetSeconds() != 30 {
		t.Errorf("expected output pinned to audio length 30s, got %.2f", plan.TargetSeconds())
	}
}

func TestPlanTimeline_TrimsWhenVideoOutrunsAudio(t *testing.T) {
	plan, err := PlanTimeline(10, 30)
	if err != nil {
		t.Fatalf("expected plan, got error: %v", err)
	}

	if plan.Loops != 1 {
		t.Errorf("expected a single play, got %d", plan.Loops)
	}
	if plan.NeedsLoop() {
		t.Error("trim case should not loop")
	}
	if plan.TargetSeconds() != 10 {
		t.Errorf("expected output trimmed to 10s, got %.2f", plan.TargetSeconds())
	}
}

func TestPlanTimeline_ExactMultipleStillLoops(t *testing.T) {
	// 20s audio over 10s video: int(20/10)+1 = 3 plays, surplus trimmed
	plan, err := PlanTimeline(20, 10)
	if err != nil {
		t.Fatalf("expected plan, got error: %v", err)
	}
	if plan.Loops != 3 {
		t.Errorf("expected 3 plays, got %d", plan.Loops)
	}
}

func TestPlanTimeline_EqualDurations(t *testing.T) {
	plan, err := PlanTimeline(15, 15)
	if err != nil {
		t.Fatalf("expected plan, got error: %v", err)
	}
	if plan.Loops != 1 {
		t.Errorf("equal durations should play once, got %d plays", plan.Loops)
	}
}

func TestPlanTimeline_RejectsNonPositiveDurations(t *testing.T) {
	if _, err := PlanTimeline(0, 10); err == nil {
		t.Error("expected error for zero audio duration")
	}
	if _, err := PlanTimeline(10, -1); err == nil {
		t.Error("expected error for negative video duration")
	}
}

func TestDurationOf(t *testing.T) {
	probe := `{"format": {"duration": "42.5"}}`
	dur, err := durationOf(probe)
	if err != nil {
		t.Fatalf("expected duration, got error: %v", err)
	}
	if dur != 42.5 {
		t.Errorf("expected 42.5, got %v", dur)
	}

	if _, err := durationOf(`{"format": {}}`); err == nil {
		t.Error("expected error when duration is missing")
	}
}

func TestVideoWidthOf(t *testing.T) {
	probe := `{"streams": [
		{"codec_type": "audio"},
		{"codec_type": "video", "width": 1280, "height": 720}
	]}`
	if width := videoWidthOf(probe); width != 1280 {
		t.Errorf("expected width 1280, got %d", width)
	}
	if width := videoWidthOf(`{"streams": []}`); width != 0 {
		t.Errorf("expected 0 for no video stream, got %d", width)
	}
}
