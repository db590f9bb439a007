// Command furigana parses, projects, compares and normalizes furigana
// strings like `[音楽|おん|がく]が[好|す]き`.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
