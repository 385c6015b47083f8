package nbastats

import (
	"context"
	"fmt"
	"os"

	"github.com/okian/shotchart/internal/domain/shot"
)

// FileSource replays a saved shotchartdetail response. The query is
// ignored: the file already describes one player and game.
type FileSource struct {
	Path string
}

// ShotChart reads and decodes the file.
func (f FileSource) ShotChart(ctx context.Context, _ Query) ([]shot.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	return Decode(body)
}
