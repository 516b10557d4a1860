package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the setlint CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// String renders Version, colouring major.minor.patch when colored is set.
// A suffix after '-' or '+' is kept as is.
func String(colored bool) string {
	if !colored {
		return Version
	}
	core, suffix := Version, ""
	if i := strings.IndexAny(Version, "-+"); i >= 0 {
		core, suffix = Version[:i], Version[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	paint := func(c *color.Color, s string) string {
		c.EnableColor()
		return c.Sprint(s)
	}
	return paint(majorColor, parts[0]) + "." + paint(minorColor, parts[1]) + "." + paint(patchColor, parts[2]) + suffix
}

// Details returns the version followed by commit and build date when known.
func Details(colored bool) string {
	var b strings.Builder
	b.WriteString("setlint ")
	b.WriteString(String(colored))
	if GitCommit != "" {
		b.WriteString("\ncommit: " + GitCommit)
	}
	if BuildDate != "" {
		b.WriteString("\nbuilt:  " + BuildDate)
	}
	return b.String()
}
