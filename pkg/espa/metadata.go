// Package espa models the subset of ESPA scene metadata consumed during
// tile ingest. ESPA delivers Landsat surface products as an archive holding
// one XML metadata document plus one flat binary raster file per band; this
// package parses the document and derives the band identity used to key
// stored tiles.
package espa

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

type (
	// Metadata is the root of an ESPA metadata document.
	Metadata struct {
		XMLName xml.Name `xml:"espa_metadata"`
		Global  Global   `xml:"global_metadata"`
		Bands   []Band   `xml:"bands>band"`
	}

	// Global holds the scene-level metadata shared by all bands.
	Global struct {
		Satellite       string     `xml:"satellite"`
		Instrument      string     `xml:"instrument"`
		AcquisitionDate string     `xml:"acquisition_date"`
		Projection      Projection `xml:"projection_information"`
	}

	// Projection describes the scene's map projection and its corner
	// coordinates in projection units.
	Projection struct {
		Name    string   `xml:"projection,attr"`
		Datum   string   `xml:"datum,attr"`
		Units   string   `xml:"units,attr"`
		Corners []Corner `xml:"corner_point"`
	}

	// Corner is a named corner point. ESPA documents carry UL and LR.
	Corner struct {
		Location string  `xml:"location,attr"`
		X        float64 `xml:"x,attr"`
		Y        float64 `xml:"y,attr"`
	}

	// Band describes a single raster band of the scene.
	Band struct {
		Product     string     `xml:"product,attr"`
		Name        string     `xml:"name,attr"`
		Category    string     `xml:"category,attr"`
		DataType    string     `xml:"data_type,attr"`
		NLines      int        `xml:"nlines,attr"`
		NSamps      int        `xml:"nsamps,attr"`
		FillValue   int64      `xml:"fill_value,attr"`
		ScaleFactor float64    `xml:"scale_factor,attr"`
		ShortName   string     `xml:"short_name"`
		LongName    string     `xml:"long_name"`
		FileName    string     `xml:"file_name"`
		PixelSize   PixelSize  `xml:"pixel_size"`
		DataUnits   string     `xml:"data_units"`
		ValidRange  ValidRange `xml:"valid_range"`
	}

	// PixelSize is the ground size of one pixel in projection units.
	PixelSize struct {
		X     float64 `xml:"x,attr"`
		Y     float64 `xml:"y,attr"`
		Units string  `xml:"units,attr"`
	}

	// ValidRange bounds the meaningful values of a band.
	ValidRange struct {
		Min int64 `xml:"min,attr"`
		Max int64 `xml:"max,attr"`
	}
)

// CategoryImage marks bands carrying raster imagery. Only image bands are
// tiled; quality and index bands are left alone.
const CategoryImage = "image"

// Parse decodes an ESPA metadata document from r.
func Parse(r io.Reader) (*Metadata, error) {
	var meta Metadata
	if err := xml.NewDecoder(r).Decode(&meta); err != nil {
		return nil, errors.Wrap(err, "failed to parse ESPA metadata")
	}
	return &meta, nil
}

// ParseFile loads an ESPA metadata document from the given path.
func ParseFile(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open metadata file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Find locates the single XML metadata document in an extracted scene
// directory. Scene archives carry exactly one; zero or several is an error.
func Find(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return "", errors.Wrap(err, "failed to scan for metadata files")
	}

	switch len(matches) {
	case 0:
		return "", errors.Errorf("no metadata file found in %s", dir)
	case 1:
		return matches[0], nil
	default:
		return "", errors.Errorf("multiple metadata files found in %s", dir)
	}
}

// UBID returns the universal band identifier for a band of this scene:
// satellite, instrument and band name joined with slashes, e.g.
// "LANDSAT_5/TM/sr_band1". Tiles and tile specs are keyed by UBID.
func (m *Metadata) UBID(b Band) string {
	return m.Global.Satellite + "/" + m.Global.Instrument + "/" + b.Name
}

// Acquired parses the scene acquisition date.
func (m *Metadata) Acquired() (time.Time, error) {
	t, err := time.Parse("2006-01-02", m.Global.AcquisitionDate)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "failed to parse acquisition date %q", m.Global.AcquisitionDate)
	}
	return t, nil
}

// ImageBands returns the bands carrying raster imagery.
func (m *Metadata) ImageBands() []Band {
	bands := make([]Band, 0, len(m.Bands))
	for _, b := range m.Bands {
		if b.Category == CategoryImage {
			bands = append(bands, b)
		}
	}
	return bands
}

// Corner returns the named corner point (ESPA uses "UL" and "LR").
func (m *Metadata) Corner(location string) (Corner, bool) {
	for _, c := range m.Global.Projection.Corners {
		if c.Location == location {
			return c, true
		}
	}
	return Corner{}, false
}
