package metaindex

import (
	"bytes"
	"context"
	"os/exec"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// Namespaces of the documentation index.
const (
	nsMetadata = "metadata"
	nsDefine   = "define"
)

// Entry is one documented metadata tag or define.
type Entry struct {
	Name string `msgpack:"name"`
	Doc  string `msgpack:"doc"`
}

// Index caches the documentation of compiler metadata tags and
// compile-time defines.
type Index struct {
	store    *docStore[Entry]
	haxePath string
	logger   zerolog.Logger
}

// New opens (or creates) the index database at dbPath.
func New(dbPath string, haxePath string, logger zerolog.Logger) (*Index, error) {
	store, err := openDocStore[Entry](dbPath)
	if err != nil {
		return nil, err
	}
	if haxePath == "" {
		haxePath = "haxe"
	}
	return &Index{
		store:    store,
		haxePath: haxePath,
		logger:   logger,
	}, nil
}

// MetadataDoc returns the documentation of a metadata tag. The lookup
// tolerates both marked and unmarked spellings of the name.
func (idx *Index) MetadataDoc(name string) (string, bool) {
	entry, ok, err := idx.store.get(nsMetadata, canonicalMetadataName(name))
	if err != nil {
		idx.logger.Warn().Err(err).Str("name", name).Msg("metadata doc lookup failed")
		return "", false
	}
	if !ok || entry.Doc == "" {
		return "", false
	}
	return entry.Doc, true
}

// DefineDoc returns the documentation of a compile-time define.
func (idx *Index) DefineDoc(name string) (string, bool) {
	entry, ok, err := idx.store.get(nsDefine, name)
	if err != nil {
		idx.logger.Warn().Err(err).Str("name", name).Msg("define doc lookup failed")
		return "", false
	}
	if !ok || entry.Doc == "" {
		return "", false
	}
	return entry.Doc, true
}

// Rebuild refreshes the index from the compiler's help dumps.
func (idx *Index) Rebuild(ctx context.Context) error {
	metas, err := idx.dumpHelp(ctx, "--help-metas")
	if err != nil {
		return err
	}
	// Store metadata under the canonical unmarked name so all spellings
	// of a tag hit the same entry.
	canonical := make(map[string]Entry, len(metas))
	for name, entry := range metas {
		canonical[canonicalMetadataName(name)] = entry
	}
	if err := idx.store.replaceNamespace(nsMetadata, canonical); err != nil {
		return err
	}

	defines, err := idx.dumpHelp(ctx, "--help-defines")
	if err != nil {
		return err
	}
	if err := idx.store.replaceNamespace(nsDefine, defines); err != nil {
		return err
	}

	idx.logger.Info().
		Int("metadata", len(metas)).
		Int("defines", len(defines)).
		Msg("documentation index rebuilt")
	return nil
}

// Counts returns the number of indexed metadata tags and defines.
func (idx *Index) Counts() (int, int) {
	metas, err := idx.store.count(nsMetadata)
	if err != nil {
		metas = 0
	}
	defines, err := idx.store.count(nsDefine)
	if err != nil {
		defines = 0
	}
	return metas, defines
}

// Close releases the index database.
func (idx *Index) Close() error {
	return idx.store.close()
}

func (idx *Index) dumpHelp(ctx context.Context, flag string) (map[string]Entry, error) {
	cmd := exec.CommandContext(ctx, idx.haxePath, flag)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return ParseHelpDump(out.String()), nil
}

var helpLineRe = regexp.MustCompile(`^\s*@?([A-Za-z0-9_.:-]+)\s*:\s*(.+)$`)

// ParseHelpDump parses the "name : documentation" lines of the
// compiler's --help-metas and --help-defines output.
func ParseHelpDump(output string) map[string]Entry {
	entries := make(map[string]Entry)
	for _, line := range strings.Split(output, "\n") {
		m := helpLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1]
		entries[name] = Entry{
			Name: name,
			Doc:  strings.TrimSpace(m[2]),
		}
	}
	return entries
}

// canonicalMetadataName strips the marker characters so ":keep",
// "@:keep" and "keep" all hit the same entry.
func canonicalMetadataName(name string) string {
	name = strings.TrimPrefix(name, "@")
	return strings.TrimPrefix(name, ":")
}
