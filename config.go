package main

import (
	"log"
	"os"
	"strings"
)

// renderEnv carries the process-wide, read-only configuration every tool
// handler receives at registration time: the resolved font set, the output
// sandbox, and the mermaid dispatch settings.
type renderEnv struct {
	fonts      *FontConfig
	outputRoot string
	mermaid    mermaidConfig
}

var debugLog bool

func debugf(format string, args ...any) {
	if debugLog {
		log.Printf(format, args...)
	}
}

func outputRootFromEnv() string {
	return os.Getenv("PLOTMCP_OUTPUT_ROOT")
}

func mmdcPath() string {
	if v := os.Getenv("PLOTMCP_MMDC"); v != "" {
		return v
	}
	return "mmdc"
}

func mermaidInkBase() string {
	if v := os.Getenv("PLOTMCP_MERMAID_INK_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return "https://mermaid.ink"
}
