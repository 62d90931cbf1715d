package mkv

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestBuildArgsFullRequest(t *testing.T) {
	req := MuxRequest{
		VideoPath:         "/in/Show - 05.mkv",
		OutputPath:        "/out/Show - 05 [muxed].mkv",
		SubtitlePath:      "/subs/Show - 05.ass",
		SubtitleLanguage:  "jpn",
		SubtitleTrackName: "Fansub",
		VideoTrackName:    "Group",
		Attachments: []Attachment{
			{Path: "/fonts/Title.ttf", Description: "jpn"},
			{Path: "/fonts/Body.otf"},
		},
		ChaptersPath: "/in/chapters.xml",
		TagsPath:     "/in/tags.xml",
	}

	want := []string{
		"-o", "/out/Show - 05 [muxed].mkv",
		"--no-chapters",
		"--track-name", "0:Group",
		"/in/Show - 05.mkv",
		"--language", "0:jpn",
		"--track-name", "0:Fansub",
		"/subs/Show - 05.ass",
		"--attachment-mime-type", "application/x-truetype-font",
		"--attachment-name", "Title.ttf",
		"--attachment-description", "jpn",
		"--attach-file", "/fonts/Title.ttf",
		"--attachment-mime-type", "application/x-truetype-font",
		"--attachment-name", "Body.otf",
		"--attach-file", "/fonts/Body.otf",
		"--chapters", "/in/chapters.xml",
		"--tags", "0:/in/tags.xml",
	}
	if got := BuildArgs(req); !reflect.DeepEqual(got, want) {
		t.Errorf("BuildArgs() =\n%v\nwant\n%v", got, want)
	}
}

func TestBuildArgsSourceMetadataPreserved(t *testing.T) {
	req := MuxRequest{
		VideoPath:          "/in/v.mkv",
		OutputPath:         "/out/v.mkv",
		KeepSourceChapters: true,
		KeepSourceTags:     true,
	}
	want := []string{"-o", "/out/v.mkv", "/in/v.mkv"}
	if got := BuildArgs(req); !reflect.DeepEqual(got, want) {
		t.Errorf("BuildArgs() = %v, want bare passthrough %v", got, want)
	}
}

func TestBuildArgsStripsAbsentMetadata(t *testing.T) {
	req := MuxRequest{
		VideoPath:  "/in/v.mkv",
		OutputPath: "/out/v.mkv",
	}
	want := []string{"-o", "/out/v.mkv", "--no-chapters", "/in/v.mkv", "--no-global-tags"}
	if got := BuildArgs(req); !reflect.DeepEqual(got, want) {
		t.Errorf("BuildArgs() = %v, want %v", got, want)
	}
}

func TestMuxerIdentify(t *testing.T) {
	muxer := NewMuxer(nil, "")
	var gotArgs []string
	muxer.WithCommandRunner(func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = append([]string{name}, args...)
		return []byte(`{
			"chapters": [{"num_entries": 12}],
			"tracks": [
				{"id": 0, "type": "video", "codec": "HEVC"},
				{"id": 1, "type": "subtitles", "codec": "SubStationAlpha", "properties": {"language": "eng", "tag_artist": "someone"}}
			]
		}`), nil
	})

	id, err := muxer.Identify(context.Background(), "/in/v.mkv")
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	want := []string{"mkvmerge", "-i", "-F", "json", "/in/v.mkv"}
	if !reflect.DeepEqual(gotArgs, want) {
		t.Errorf("Identify ran %v, want %v", gotArgs, want)
	}
	if !id.HasChapters() {
		t.Error("HasChapters() = false for container with chapters")
	}
	if !id.HasTags() {
		t.Error("HasTags() = false for container with tag_artist")
	}
	if subs := id.SubtitleTracks(); len(subs) != 1 || subs[0].ID != 1 {
		t.Errorf("SubtitleTracks() = %+v", subs)
	}
}

func TestMuxRunsAssembledCommand(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "v.mkv")
	output := filepath.Join(dir, "out.mkv")
	if err := os.WriteFile(video, []byte("mkv"), 0o644); err != nil {
		t.Fatal(err)
	}

	muxer := NewMuxer(nil, "/opt/mkvtoolnix/mkvmerge")
	var gotName string
	muxer.WithCommandRunner(func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName = name
		return nil, os.WriteFile(output, []byte("muxed"), 0o644)
	})

	err := muxer.Mux(context.Background(), MuxRequest{VideoPath: video, OutputPath: output, KeepSourceChapters: true, KeepSourceTags: true})
	if err != nil {
		t.Fatalf("Mux: %v", err)
	}
	if gotName != "/opt/mkvtoolnix/mkvmerge" {
		t.Errorf("Mux used binary %q, want configured path", gotName)
	}
}

func TestMuxValidatesInputs(t *testing.T) {
	muxer := NewMuxer(nil, "")
	muxer.WithCommandRunner(func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		t.Fatal("runner must not execute for invalid requests")
		return nil, nil
	})

	if err := muxer.Mux(context.Background(), MuxRequest{OutputPath: "/out/v.mkv"}); err == nil {
		t.Error("Mux accepted an empty video path")
	}
	if err := muxer.Mux(context.Background(), MuxRequest{VideoPath: "/in/v.mkv"}); err == nil {
		t.Error("Mux accepted an empty output path")
	}
	if err := muxer.Mux(context.Background(), MuxRequest{VideoPath: "/does/not/exist.mkv", OutputPath: "/out/v.mkv"}); err == nil {
		t.Error("Mux accepted a missing source video")
	}
}
