package testutil

import (
	"archive/tar"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/USGS-EROS/lcmap-data/pkg/consts"
)

// Identity of the default fixture scene. The UBID follows from the
// metadata's satellite, instrument and band name.
const (
	SceneID   = "LT50300282002168-SC20141231134544"
	SceneUBID = "LANDSAT_5/TM/sr_band1"
)

// Upper-left corner of the fixture scene in projection coordinates. The
// scene sits on the tile grid its own spec derives, so adopting and then
// ingesting the fixture always lines up.
const (
	SceneULX = -408585
	SceneULY = 2871795
)

const scenePixelSize = 30

// SceneAcquired is the fixture scene's acquisition date.
var SceneAcquired = time.Date(2002, time.June, 17, 0, 0, 0, 0, time.UTC)

const sceneMetadataTemplate = `<espa_metadata version="2.0">
  <global_metadata>
    <satellite>LANDSAT_5</satellite>
    <instrument>TM</instrument>
    <acquisition_date>2002-06-17</acquisition_date>
    <projection_information projection="AEA" datum="WGS84" units="meters">
      <corner_point location="UL" x="%d" y="%d"/>
      <corner_point location="LR" x="%d" y="%d"/>
    </projection_information>
  </global_metadata>
  <bands>
    <band product="sr_refl" name="sr_band1" category="image" data_type="INT16" nlines="%d" nsamps="%d" fill_value="-9999" scale_factor="0.0001">
      <short_name>LT05SR</short_name>
      <long_name>band 1 surface reflectance</long_name>
      <file_name>%s</file_name>
      <pixel_size x="30" y="30" units="meters"/>
      <data_units>reflectance</data_units>
      <valid_range min="-2000" max="16000"/>
    </band>
    <band product="cfmask" name="cfmask" category="qa" data_type="UINT8" nlines="%d" nsamps="%d" fill_value="255">
      <short_name>LT05CFMASK</short_name>
      <long_name>cloud and shadow mask</long_name>
      <file_name>%s</file_name>
      <pixel_size x="30" y="30" units="meters"/>
      <data_units>quality/feature classification</data_units>
      <valid_range min="0" max="4"/>
    </band>
  </bands>
</espa_metadata>`

// SceneFixture builds ESPA scene archives for tests. The default scene
// carries one 100x100 INT16 surface-reflectance band plus a qa band that
// ingest must ignore, sized so the image band forms exactly one tile under
// the default 100x100 tile shape.
type SceneFixture struct {
	ID    string
	Lines int
	Samps int
	t     *testing.T
	data  []int16
}

// NewScene creates the default scene fixture.
func NewScene(t *testing.T) *SceneFixture {
	t.Helper()

	s := &SceneFixture{ID: SceneID, Lines: 100, Samps: 100, t: t}
	s.data = make([]int16, s.Lines*s.Samps)
	for i := range s.data {
		s.data[i] = int16(i%1000 + 1)
	}

	return s
}

// WithID overrides the scene identifier, which doubles as the metadata file
// base name and the tile source recorded on ingest.
func (s *SceneFixture) WithID(id string) *SceneFixture {
	s.ID = id
	return s
}

// WithData replaces the image band's raster values.
func (s *SceneFixture) WithData(vals []int16) *SceneFixture {
	require.Len(s.t, vals, s.Lines*s.Samps, "band data must hold lines*samps values")

	s.data = vals
	return s
}

// Data returns the image band's raster values in row-major order.
func (s *SceneFixture) Data() []int16 {
	return s.data
}

// BandFile returns the image band's raster file name as declared in the
// scene metadata.
func (s *SceneFixture) BandFile() string {
	return s.product() + "_sr_band1.img"
}

// Metadata renders the scene's ESPA metadata document.
func (s *SceneFixture) Metadata() string {
	lrx := SceneULX + s.Samps*scenePixelSize
	lry := SceneULY - s.Lines*scenePixelSize

	return fmt.Sprintf(sceneMetadataTemplate,
		SceneULX, SceneULY, lrx, lry,
		s.Lines, s.Samps, s.BandFile(),
		s.Lines, s.Samps, s.product()+"_cfmask.img",
	)
}

// Archive writes the scene as a gzipped tar archive under dir and returns
// the archive path. Only the image band's raster is included; the qa band
// is declared in the metadata but carries no file, so touching it at all
// fails loudly.
func (s *SceneFixture) Archive(dir string) string {
	s.t.Helper()

	path := filepath.Join(dir, s.ID+".tar.gz")
	PackArchive(s.t, path, map[string][]byte{
		s.ID + ".xml": []byte(s.Metadata()),
		s.BandFile():  Int16Bytes(s.data...),
	})

	return path
}

// product returns the scene's product identifier, the part of the scene ID
// that prefixes band file names.
func (s *SceneFixture) product() string {
	return strings.SplitN(s.ID, "-", 2)[0]
}

// PackArchive writes files into a gzipped tar archive at path. Keys are
// entry names, values their contents.
func PackArchive(t *testing.T, path string, files map[string][]byte) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err, "Failed to create archive: %s", path)
	defer func() { require.NoError(t, f.Close()) }()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: name,
			Mode: int64(consts.ModeFile),
			Size: int64(len(content)),
		}))

		_, err := tw.Write(content)
		require.NoError(t, err, "Failed to write archive entry: %s", name)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

// Int16Bytes encodes vals as little-endian bytes, the raster layout ingest
// reads and writes.
func Int16Bytes(vals ...int16) []byte {
	out := make([]byte, 0, len(vals)*2)
	for _, v := range vals {
		out = binary.LittleEndian.AppendUint16(out, uint16(v))
	}

	return out
}
