package main

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

var subtitleExtensions = map[string]bool{
	".ass": true,
	".srt": true,
	".ssa": true,
	".sub": true,
}

// findVideos returns every .mkv file under root, sorted by path.
func findVideos(root string) ([]string, error) {
	return findByExtension(root, func(ext string) bool { return ext == ".mkv" })
}

// findSubtitles returns every subtitle file under root, sorted by path.
func findSubtitles(root string) ([]string, error) {
	return findByExtension(root, func(ext string) bool { return subtitleExtensions[ext] })
}

func findByExtension(root string, match func(ext string) bool) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if match(strings.ToLower(filepath.Ext(d.Name()))) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
