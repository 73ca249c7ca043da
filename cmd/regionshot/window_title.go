package main

import (
	"fmt"
	"strings"
)

const programTitle = "RegionShot"

type titleOptions struct {
	Mode   string
	Detail string
	Extras []string
}

func windowTitle(opts titleOptions) string {
	parts := []string{programTitle}
	for _, p := range []string{opts.Mode, opts.Detail} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if v := strings.TrimSpace(version); v != "" {
		parts = append(parts, fmt.Sprintf("v%s", v))
	}
	if c := strings.TrimSpace(commit); c != "" {
		parts = append(parts, fmt.Sprintf("commit %s", c))
	}
	parts = append(parts, opts.Extras...)
	return strings.Join(parts, " - ")
}
