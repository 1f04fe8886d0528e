package cli

import (
	"embed"
	"io/fs"
)

//go:embed help/*.md
var helpFiles embed.FS

// helpTopics returns the embedded help topics rooted at the help directory
func helpTopics() fs.FS {
	sub, err := fs.Sub(helpFiles, "help")
	if err != nil {
		return nil
	}
	return sub
}
