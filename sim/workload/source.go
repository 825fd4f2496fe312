package workload

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"

	"github.com/inference-sim/schedsim/sim"
)

// DefaultSource is read when no workload is named.
const DefaultSource = "processes.txt"

// IsYAML reports whether the source URL names a YAML workload.
func IsYAML(URL string) bool {
	switch strings.ToLower(path.Ext(URL)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads the whole workload at URL through fs, once, before any simulation
// state exists, and parses it according to its extension. Read failures wrap
// sim.ErrInputUnavailable; parse failures wrap sim.ErrMalformedRecord.
func Load(ctx context.Context, fs afs.Service, URL string, opts Options) ([]sim.Descriptor, error) {
	if URL == "" {
		URL = DefaultSource
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", sim.ErrInputUnavailable, URL, err)
	}

	var descs []sim.Descriptor
	if IsYAML(URL) {
		descs, err = ParseYAML(data, opts)
	} else {
		descs, err = ParseText(string(data), opts)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", URL, err)
	}
	logrus.Debugf("Loaded %d processes from %s", len(descs), URL)
	return descs, nil
}
