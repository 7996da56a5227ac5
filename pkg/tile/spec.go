package tile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/USGS-EROS/lcmap-data/pkg/espa"
	"github.com/USGS-EROS/lcmap-data/pkg/utils"
	"github.com/pkg/errors"
)

type (
	// TileSpec pins the tile grid and storage layout for one UBID. Specs are
	// written by the spec command and looked up at ingest time; tiles for a
	// UBID can only be stored once its spec exists.
	TileSpec struct {
		// UBID identifies the band this spec applies to
		UBID string

		// KeyspaceName and TableName locate the table tile rows are
		// written to
		KeyspaceName string
		TableName    string

		// Projection names the map projection of the grid (e.g. "AEA")
		Projection string

		// TileX and TileY are the tile dimensions in projection units.
		// TileY is negative because y shrinks southward.
		TileX float64
		TileY float64

		// PixelX and PixelY are the pixel dimensions in projection units,
		// PixelY negative for the same reason.
		PixelX float64
		PixelY float64

		// ShiftX and ShiftY anchor the grid: the upper-left corner of every
		// tile satisfies FloorMod(x-ShiftX, TileX) == 0 and likewise for y.
		ShiftX float64
		ShiftY float64

		// DataShape is the tile size in pixels as (rows, columns)
		DataShape [2]int

		// DataType is the raster element type, e.g. "INT16"
		DataType string

		// DataFill is the band's fill value; all-fill tiles are not stored
		DataFill int64

		// DataScale converts stored values into DataUnits
		DataScale float64

		// DataRange bounds the meaningful stored values
		DataRange [2]int64

		// DataUnits names the physical quantity, e.g. "reflectance"
		DataUnits string
	}

	// AdopterOptions configures tile spec adoption.
	AdopterOptions struct {
		// SpecKeyspace and SpecTable locate the tile spec table
		SpecKeyspace string
		SpecTable    string

		// TileKeyspace and TileTable locate the tile table recorded in
		// adopted specs. They default to SpecKeyspace and DefaultTileTable.
		TileKeyspace string
		TileTable    string

		// Shape is the tile size in pixels as (rows, columns), defaulting
		// to DefaultShape
		Shape [2]int
	}

	// Adopter derives tile specs from scene metadata and saves them.
	Adopter struct {
		db   DB
		opts AdopterOptions
	}
)

// specColumns is the tile spec column list shared by inserts and lookups,
// excluding the ubid key.
const specColumns = "keyspace_name, table_name, projection, tile_x, tile_y, pixel_x, pixel_y, " +
	"shift_x, shift_y, data_shape, data_type, data_fill, data_scale, data_range, data_units"

// NewAdopter creates an adopter writing specs via the given database.
// Unset options fall back to their defaults.
func NewAdopter(db DB, opts AdopterOptions) *Adopter {
	if opts.TileKeyspace == "" {
		opts.TileKeyspace = opts.SpecKeyspace
	}
	if opts.TileTable == "" {
		opts.TileTable = DefaultTileTable
	}
	if opts.Shape == ([2]int{}) {
		opts.Shape = DefaultShape
	}
	return &Adopter{db: db, opts: opts}
}

// Adopt derives a tile spec for every image band of the scene staged in dir
// and upserts them into the spec table. Returns the adopted specs.
func (a *Adopter) Adopt(ctx context.Context, dir string) ([]TileSpec, error) {
	path, err := espa.Find(dir)
	if err != nil {
		return nil, err
	}

	meta, err := espa.ParseFile(path)
	if err != nil {
		return nil, err
	}

	bands := meta.ImageBands()
	if len(bands) == 0 {
		return nil, errors.Errorf("no image bands found in %s", path)
	}

	specs := make([]TileSpec, 0, len(bands))
	for _, b := range bands {
		spec, err := FromBand(meta, b, a.opts.TileKeyspace, a.opts.TileTable, a.opts.Shape)
		if err != nil {
			return specs, errors.Wrapf(err, "failed to derive tile spec for band %s", b.Name)
		}

		if err := SaveSpec(ctx, a.db, a.opts.SpecKeyspace, a.opts.SpecTable, spec); err != nil {
			return specs, err
		}

		slog.Info("Adopted tile spec", "ubid", spec.UBID, "tile_x", spec.TileX, "tile_y", spec.TileY)
		specs = append(specs, spec)
	}

	return specs, nil
}

// FromBand derives the tile spec for one band. The grid is anchored so that
// the scene's upper-left corner lies on it, which makes the scene itself
// ingestable and pins every future scene of the same product to the same
// grid.
func FromBand(meta *espa.Metadata, b espa.Band, keyspace, table string, shape [2]int) (TileSpec, error) {
	ul, ok := meta.Corner("UL")
	if !ok {
		return TileSpec{}, errors.New("metadata has no UL corner point")
	}

	rows, cols := shape[0], shape[1]
	if rows <= 0 || cols <= 0 {
		return TileSpec{}, errors.Errorf("invalid tile shape %dx%d", rows, cols)
	}
	if b.PixelSize.X <= 0 || b.PixelSize.Y <= 0 {
		return TileSpec{}, errors.Errorf("band %s has invalid pixel size %vx%v", b.Name, b.PixelSize.X, b.PixelSize.Y)
	}

	// ESPA reports positive pixel sizes; y runs southward so the grid works
	// with negative y steps.
	pixelX := b.PixelSize.X
	pixelY := -b.PixelSize.Y
	tileX := float64(cols) * pixelX
	tileY := float64(rows) * pixelY

	return TileSpec{
		UBID:         meta.UBID(b),
		KeyspaceName: keyspace,
		TableName:    table,
		Projection:   meta.Global.Projection.Name,
		TileX:        tileX,
		TileY:        tileY,
		PixelX:       pixelX,
		PixelY:       pixelY,
		ShiftX:       FloorMod(ul.X, tileX),
		ShiftY:       FloorMod(ul.Y, tileY),
		DataShape:    [2]int{rows, cols},
		DataType:     b.DataType,
		DataFill:     b.FillValue,
		DataScale:    b.ScaleFactor,
		DataRange:    [2]int64{b.ValidRange.Min, b.ValidRange.Max},
		DataUnits:    b.DataUnits,
	}, nil
}

// SaveSpec upserts a tile spec into the given spec table.
func SaveSpec(ctx context.Context, db DB, keyspace, table string, spec TileSpec) error {
	stmt := fmt.Sprintf(
		"INSERT INTO %s (ubid, %s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		utils.QualifiedName(keyspace, table), specColumns,
	)

	err := db.Exec(ctx, stmt,
		spec.UBID,
		spec.KeyspaceName,
		spec.TableName,
		spec.Projection,
		spec.TileX,
		spec.TileY,
		spec.PixelX,
		spec.PixelY,
		spec.ShiftX,
		spec.ShiftY,
		[]int{spec.DataShape[0], spec.DataShape[1]},
		spec.DataType,
		spec.DataFill,
		spec.DataScale,
		[]int64{spec.DataRange[0], spec.DataRange[1]},
		spec.DataUnits,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to save tile spec for %s", spec.UBID)
	}
	return nil
}

// FindSpec looks up the tile spec for a UBID. A missing spec is an error:
// ingest cannot proceed without the grid it defines.
func FindSpec(ctx context.Context, db DB, keyspace, table, ubid string) (*TileSpec, error) {
	stmt := fmt.Sprintf(
		"SELECT %s FROM %s WHERE ubid = ?",
		specColumns, utils.QualifiedName(keyspace, table),
	)

	sc := db.Scan(ctx, stmt, ubid)
	if !sc.Next() {
		if err := sc.Err(); err != nil {
			return nil, errors.Wrapf(err, "failed to query tile spec for %s", ubid)
		}
		return nil, errors.Errorf("no tile spec adopted for %s", ubid)
	}

	var (
		spec  = TileSpec{UBID: ubid}
		shape []int
		rng   []int64
	)
	if err := sc.Scan(
		&spec.KeyspaceName,
		&spec.TableName,
		&spec.Projection,
		&spec.TileX,
		&spec.TileY,
		&spec.PixelX,
		&spec.PixelY,
		&spec.ShiftX,
		&spec.ShiftY,
		&shape,
		&spec.DataType,
		&spec.DataFill,
		&spec.DataScale,
		&rng,
		&spec.DataUnits,
	); err != nil {
		return nil, errors.Wrapf(err, "failed to scan tile spec for %s", ubid)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to query tile spec for %s", ubid)
	}

	if len(shape) != 2 {
		return nil, errors.Errorf("tile spec for %s has malformed data shape %v", ubid, shape)
	}
	spec.DataShape = [2]int{shape[0], shape[1]}

	if len(rng) == 2 {
		spec.DataRange = [2]int64{rng[0], rng[1]}
	}

	return &spec, nil
}
