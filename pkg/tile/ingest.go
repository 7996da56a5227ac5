package tile

import (
	"bytes"
	"context"
	"crypto/md5"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/USGS-EROS/lcmap-data/pkg/consts"
	"github.com/USGS-EROS/lcmap-data/pkg/espa"
	"github.com/USGS-EROS/lcmap-data/pkg/utils"
	"github.com/pkg/errors"
)

type (
	// IngestorOptions configures scene ingest.
	IngestorOptions struct {
		// SpecKeyspace and SpecTable locate the tile spec table
		SpecKeyspace string
		SpecTable    string

		// BatchSize caps how many tile rows are written per batch,
		// defaulting to consts.DefaultBatchSize
		BatchSize int

		// Checksum enables md5sum-format hash lines for each ingested band
		// file, appended to Outfile
		Checksum bool
		Outfile  string
	}

	// BandResult reports what happened to one band of a scene.
	BandResult struct {
		// UBID identifies the band
		UBID string

		// Tiles is the number of tile rows written
		Tiles int

		// Skipped is the number of windows dropped for containing nothing
		// but fill
		Skipped int
	}

	// Ingestor tiles staged scenes into the database.
	Ingestor struct {
		db   DB
		opts IngestorOptions
	}
)

// NewIngestor creates an ingestor writing tiles via the given database.
func NewIngestor(db DB, opts IngestorOptions) *Ingestor {
	if opts.BatchSize <= 0 {
		opts.BatchSize = consts.DefaultBatchSize
	}
	return &Ingestor{db: db, opts: opts}
}

// Ingest tiles every image band of the scene staged in dir. Each band is cut
// into spec-shaped windows; windows holding only fill are skipped, the rest
// are written as tile rows keyed by (ubid, x, y, acquired). Bands are
// processed in metadata order and the first failure stops the scene.
func (i *Ingestor) Ingest(ctx context.Context, dir string) ([]BandResult, error) {
	path, err := espa.Find(dir)
	if err != nil {
		return nil, err
	}

	meta, err := espa.ParseFile(path)
	if err != nil {
		return nil, err
	}

	acquired, err := meta.Acquired()
	if err != nil {
		return nil, err
	}

	// The metadata file base name doubles as the scene identifier.
	source := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	results := make([]BandResult, 0, len(meta.Bands))
	for _, b := range meta.ImageBands() {
		res, err := i.ingestBand(ctx, dir, meta, b, acquired, source)
		if err != nil {
			return results, errors.Wrapf(err, "failed to ingest band %s", b.Name)
		}
		results = append(results, res)
	}

	return results, nil
}

func (i *Ingestor) ingestBand(ctx context.Context, dir string, meta *espa.Metadata, b espa.Band, acquired time.Time, source string) (BandResult, error) {
	ubid := meta.UBID(b)
	res := BandResult{UBID: ubid}

	spec, err := FindSpec(ctx, i.db, i.opts.SpecKeyspace, i.opts.SpecTable, ubid)
	if err != nil {
		return res, err
	}

	elem, err := ElemSize(spec.DataType)
	if err != nil {
		return res, err
	}

	raster, err := ReadRaster(filepath.Join(dir, b.FileName), b.NLines, b.NSamps, elem)
	if err != nil {
		return res, err
	}

	ul, ok := meta.Corner("UL")
	if !ok {
		return res, errors.New("metadata has no UL corner point")
	}
	if !spec.Aligned(ul.X, ul.Y) {
		return res, errors.Errorf("%s upper-left corner (%v, %v) is not aligned to the tile grid",
			b.FileName, ul.X, ul.Y)
	}

	rows, cols := spec.DataShape[0], spec.DataShape[1]
	if raster.Rows%rows != 0 || raster.Cols%cols != 0 {
		return res, errors.Errorf("%s is %dx%d and does not divide into %dx%d tiles",
			b.FileName, raster.Rows, raster.Cols, rows, cols)
	}

	pattern, err := FillPattern(spec.DataType, spec.DataFill, rows*cols)
	if err != nil {
		return res, err
	}

	stmt := fmt.Sprintf(
		"INSERT INTO %s (ubid, x, y, acquired, source, data) VALUES (?, ?, ?, ?, ?, ?)",
		utils.QualifiedName(spec.KeyspaceName, spec.TableName),
	)

	batch := i.db.NewBatch()
	for line := 0; line < raster.Rows; line += rows {
		for samp := 0; samp < raster.Cols; samp += cols {
			data := raster.Window(line, samp, rows, cols)
			if bytes.Equal(data, pattern) {
				res.Skipped++
				continue
			}

			x := int64(ul.X + float64(samp)*spec.PixelX)
			y := int64(ul.Y + float64(line)*spec.PixelY)
			batch.Query(stmt, ubid, x, y, acquired, source, data)
			res.Tiles++

			if len(batch.Entries) >= i.opts.BatchSize {
				if err := i.db.ExecuteBatch(ctx, batch); err != nil {
					return res, errors.Wrap(err, "failed to write tile batch")
				}
				batch = i.db.NewBatch()
			}
		}
	}
	if len(batch.Entries) > 0 {
		if err := i.db.ExecuteBatch(ctx, batch); err != nil {
			return res, errors.Wrap(err, "failed to write tile batch")
		}
	}

	if i.opts.Checksum {
		if err := appendChecksum(i.opts.Outfile, raster.Data, b.FileName); err != nil {
			return res, err
		}
	}

	slog.Info("Ingested band", "ubid", ubid, "tiles", res.Tiles, "skipped", res.Skipped)
	return res, nil
}

// appendChecksum appends an md5sum-format line for a band file, so the
// outfile can be verified against the originals with `md5sum -c`.
func appendChecksum(path string, data []byte, name string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, consts.ModeFile)
	if err != nil {
		return errors.Wrapf(err, "failed to open checksum file: %s", path)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%x  %s\n", md5.Sum(data), name); err != nil {
		return errors.Wrapf(err, "failed to write checksum for %s", name)
	}
	return nil
}
