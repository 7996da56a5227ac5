package espa_test

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/USGS-EROS/lcmap-data/pkg/consts"
	. "github.com/USGS-EROS/lcmap-data/pkg/espa"
)

//go:embed testdata/LT50300282002168-SC20141231134544.xml
var testMetadataXML string

func TestParse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		meta, err := Parse(strings.NewReader(testMetadataXML))
		require.NoError(t, err)

		require.Equal(t, "LANDSAT_5", meta.Global.Satellite)
		require.Equal(t, "TM", meta.Global.Instrument)
		require.Equal(t, "2002-06-17", meta.Global.AcquisitionDate)
		require.Equal(t, "AEA", meta.Global.Projection.Name)
		require.Equal(t, "meters", meta.Global.Projection.Units)
		require.Len(t, meta.Bands, 3)

		band := meta.Bands[0]
		require.Equal(t, "sr_band1", band.Name)
		require.Equal(t, "image", band.Category)
		require.Equal(t, "INT16", band.DataType)
		require.Equal(t, 7700, band.NLines)
		require.Equal(t, 7500, band.NSamps)
		require.Equal(t, int64(-9999), band.FillValue)
		require.InEpsilon(t, 0.0001, band.ScaleFactor, 1e-9)
		require.Equal(t, "LT50300282002168-SC20141231134544_sr_band1.img", band.FileName)
		require.Equal(t, 30.0, band.PixelSize.X)
		require.Equal(t, 30.0, band.PixelSize.Y)
		require.Equal(t, int64(-2000), band.ValidRange.Min)
		require.Equal(t, int64(16000), band.ValidRange.Max)
		require.Equal(t, "reflectance", band.DataUnits)
	})

	t.Run("error", func(t *testing.T) {
		meta, err := Parse(strings.NewReader("<espa_metadata><unterminated"))
		require.Error(t, err)
		require.Nil(t, meta)
		require.Contains(t, err.Error(), "failed to parse ESPA metadata")
	})
}

func TestParseFile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		meta, err := ParseFile("testdata/LT50300282002168-SC20141231134544.xml")
		require.NoError(t, err)
		require.Equal(t, "LANDSAT_5", meta.Global.Satellite)
	})

	t.Run("error", func(t *testing.T) {
		meta, err := ParseFile(filepath.Join(t.TempDir(), "missing.xml"))
		require.Error(t, err)
		require.Nil(t, meta)
		require.Contains(t, err.Error(), "failed to open metadata file")
	})
}

func TestFind(t *testing.T) {
	write := func(t *testing.T, dir, name string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("<espa_metadata/>"), consts.ModeFile))
	}

	t.Run("exactly one metadata file", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "scene.xml")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "band.img"), []byte{0}, consts.ModeFile))

		path, err := Find(dir)
		require.NoError(t, err)
		require.Equal(t, filepath.Join(dir, "scene.xml"), path)
	})

	t.Run("no metadata file", func(t *testing.T) {
		path, err := Find(t.TempDir())
		require.Error(t, err)
		require.Empty(t, path)
		require.Contains(t, err.Error(), "no metadata file found")
	})

	t.Run("multiple metadata files", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "one.xml")
		write(t, dir, "two.xml")

		path, err := Find(dir)
		require.Error(t, err)
		require.Empty(t, path)
		require.Contains(t, err.Error(), "multiple metadata files found")
	})
}

func TestMetadata_UBID(t *testing.T) {
	meta, err := Parse(strings.NewReader(testMetadataXML))
	require.NoError(t, err)

	require.Equal(t, "LANDSAT_5/TM/sr_band1", meta.UBID(meta.Bands[0]))
	require.Equal(t, "LANDSAT_5/TM/cfmask", meta.UBID(meta.Bands[2]))
}

func TestMetadata_Acquired(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		meta, err := Parse(strings.NewReader(testMetadataXML))
		require.NoError(t, err)

		acquired, err := meta.Acquired()
		require.NoError(t, err)
		require.Equal(t, time.Date(2002, 6, 17, 0, 0, 0, 0, time.UTC), acquired)
	})

	t.Run("error", func(t *testing.T) {
		meta := &Metadata{Global: Global{AcquisitionDate: "not-a-date"}}
		_, err := meta.Acquired()
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse acquisition date")
	})
}

func TestMetadata_ImageBands(t *testing.T) {
	meta, err := Parse(strings.NewReader(testMetadataXML))
	require.NoError(t, err)

	bands := meta.ImageBands()
	require.Len(t, bands, 2)
	require.Equal(t, "sr_band1", bands[0].Name)
	require.Equal(t, "sr_band2", bands[1].Name)
}

func TestMetadata_Corner(t *testing.T) {
	meta, err := Parse(strings.NewReader(testMetadataXML))
	require.NoError(t, err)

	ul, ok := meta.Corner("UL")
	require.True(t, ok)
	require.Equal(t, -408585.0, ul.X)
	require.Equal(t, 2871795.0, ul.Y)

	_, ok = meta.Corner("UR")
	require.False(t, ok)
}
