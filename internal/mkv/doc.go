// Package mkv wraps the mkvmerge command line tool.
//
// Identify parses "mkvmerge -i -F json" output to learn what a source
// container already carries (tracks, chapters, global tags). Muxer assembles
// and executes the final mux command: source video, transformed subtitle
// track, font attachments, and external chapter/tag sidecars, with the
// source's own chapters and tags preserved or stripped depending on what the
// sidecar discovery found.
//
// Command execution goes through an injectable runner so tests can assert on
// argument assembly without mkvmerge installed.
package mkv
