package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reoring/statecanon"
	"github.com/reoring/statecanon/state"
)

// readInput returns the bytes of path, or of stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "read stdin", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "read input", err)
	}
	return b, nil
}

// inputFormat resolves the --input flag, falling back to the file extension.
func inputFormat(flag, path string) (state.Format, error) {
	if flag == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return state.FormatYAML, nil
		}
	}
	f, err := state.ParseFormat(flag)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "bad --input", err)
	}
	return f, nil
}

// decode normalizes raw and returns the document with its presence map.
func (o *RootOptions) decode(ctx context.Context, raw []byte, f state.Format) (statecanon.Decoded[state.Document], error) {
	s, err := o.Schema()
	if err != nil {
		return statecanon.Decoded[state.Document]{}, err
	}
	dm, err := s.Decode(ctx, bytes.NewReader(raw), f, o.Config.ParseOpt())
	if err != nil {
		return dm, WrapExitError(ExitCommandError, "normalize", err)
	}
	return dm, nil
}

// load reads and normalizes one document, logging what was corrected.
func (o *RootOptions) load(cmd *cobra.Command, path string, f state.Format) (state.Document, error) {
	raw, err := readInput(cmd, path)
	if err != nil {
		return state.Document{}, err
	}
	dm, err := o.decode(cmd.Context(), raw, f)
	if err != nil {
		return state.Document{}, err
	}
	o.logCorrections(dm.Presence, false)
	return dm.Value, nil
}

func (o *RootOptions) logCorrections(pm statecanon.PresenceMap, missingToo bool) {
	for _, c := range statecanon.Explain(pm, missingToo) {
		o.Logger.Debug("corrected", "path", c.Path, "reason", c.Reason(), "flags", c.Presence.String())
	}
}

// writeDocument prints d, indented unless compact.
func writeDocument(w io.Writer, d state.Document, compact bool) error {
	var (
		b   []byte
		err error
	)
	if compact {
		b, err = state.Marshal(d)
	} else {
		b, err = state.MarshalIndent(d, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

// writeFileAtomic replaces path with b via a temp file in the same directory,
// keeping the file mode.
func writeFileAtomic(path string, b []byte) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
