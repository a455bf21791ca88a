package watchlist

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/mmcdole/marquee/internal/domain"
)

// Export writes entries to path in the persisted JSON format, indented.
// The file is replaced atomically: readers see the old or the new list.
func Export(path string, entries []domain.Film) error {
	data, err := Encode(entries)
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("indent watchlist: %w", err)
	}
	buf.WriteByte('\n')

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("create pending export file: %w", err)
	}
	defer pendingFile.Cleanup()

	if _, err := pendingFile.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write export data: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace export file: %w", err)
	}
	return nil
}
