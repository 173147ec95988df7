package system

import (
	"github.com/argus-labs/chainy/pkg/chainy/codec"
	"github.com/argus-labs/chainy/pkg/chainy/component"
	"github.com/rotisserie/eris"
)

// TileArgs is the argument record of TileMutationSystem. X and Y are grid cell indices, not world
// coordinates.
type TileArgs struct {
	X    int64
	Y    int64
	Cell component.Cell
}

func (a TileArgs) MarshalBorsh(w *codec.Writer) {
	w.I64(a.X)
	w.I64(a.Y)
	w.U8(uint8(a.Cell))
}

func (a *TileArgs) UnmarshalBorsh(r *codec.Reader) error {
	var err error
	if a.X, err = r.I64("x"); err != nil {
		return err
	}
	if a.Y, err = r.I64("y"); err != nil {
		return err
	}
	c, err := r.Enum("cell", component.CellCount)
	if err != nil {
		return err
	}
	a.Cell = component.Cell(c)
	return nil
}

// TileMutationSystem overwrites one cell of a tile's grid. Any cell may replace any other.
type TileMutationSystem struct{}

func (TileMutationSystem) Name() string {
	return "update-tile"
}

func (TileMutationSystem) Execute(tile component.Tile, args []byte) (component.Tile, error) {
	in, err := codec.Decode[TileArgs](args)
	if err != nil {
		return tile, eris.Wrap(err, "failed to decode tile args")
	}

	if !component.InBounds(in.X, in.Y) {
		return tile, eris.Wrapf(ErrIndexOutOfRange, "cell (%d, %d) outside %dx%d grid",
			in.X, in.Y, component.GridSize, component.GridSize)
	}

	tile.Grid[in.X][in.Y] = in.Cell
	return tile, nil
}
