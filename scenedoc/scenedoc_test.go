package scenedoc

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mohr/stactools-sentinel2/sentinel2"
	"github.com/m-mohr/stactools-sentinel2/util"
	"github.com/stretchr/testify/assert"
)

// Mock

const mockSinergiseBundle = `{
	"granule_metadata": {
		"scene_id": "S2A_OPER_MSI_L2A_TL_SGS__20181231T203421_A018422_T10SDG_N02.11",
		"platform": "Sentinel-2A",
		"epsg": 32610,
		"proj_bbox": [499980, 4090200, 609780, 4200000],
		"resolution_to_shape": {
			"10": [10980, 10980],
			"20": [5490, 5490],
			"60": [1830, 1830]
		},
		"cloud_cover": 7.91,
		"processing_baseline": "02.11",
		"metadata": {"s2:mean_solar_zenith": 24.1}
	},
	"tile_info": {
		"geometry": {
			"type": "Polygon",
			"coordinates": [[
				[499980, 4090200],
				[609780, 4090200],
				[609780, 4200000],
				[499980, 4200000],
				[499980, 4090200]
			]]
		},
		"datetime": "2018-12-31T19:03:29.027Z",
		"metadata": {"s2:data_coverage": 100.0}
	}
}`

// Tests

func TestParse(t *testing.T) {
	// Tested code
	doc, err := Parse([]byte(mockSinergiseBundle))

	// Asserts
	assert.Nil(t, err)
	assert.Nil(t, doc.SafeManifest)
	assert.Nil(t, doc.ProductMetadata)
	assert.NotNil(t, doc.GranuleMetadata)
	assert.NotNil(t, doc.TileInfo)
	assert.Equal(t, "Sentinel-2A", doc.GranuleMetadata.Platform)
}

func TestParse_BadJSON(t *testing.T) {
	_, err := Parse([]byte("{not json"))
	assert.NotNil(t, err)
}

func TestReaders_GranuleMetadata(t *testing.T) {
	// Mock
	doc, err := Parse([]byte(mockSinergiseBundle))
	assert.Nil(t, err)

	// Tested code
	readers := doc.Readers()
	granule, err := readers.GranuleMetadata("s3://sentinel-s2-l2a/tiles/10/S/DG/2018/12/31/0/metadata.xml", nil)

	// Asserts
	assert.Nil(t, err)
	assert.NotNil(t, granule.EPSG)
	assert.Equal(t, 32610, *granule.EPSG)
	assert.Equal(t, [2]int{5490, 5490}, granule.ResolutionToShape[20])
	assert.Equal(t, "02.11", granule.ProcessingBaseline)
}

func TestReaders_TileInfo(t *testing.T) {
	// Mock
	doc, err := Parse([]byte(mockSinergiseBundle))
	assert.Nil(t, err)

	// Tested code
	tileInfo, err := doc.Readers().TileInfo("s3://sentinel-s2-l2a/tiles/10/S/DG/2018/12/31/0/tileInfo.json", nil)

	// Asserts
	assert.Nil(t, err)
	assert.NotNil(t, tileInfo.Geometry)
	assert.Equal(t, 2018, tileInfo.Datetime.Year())
	assert.Equal(t, 100.0, tileInfo.Metadata["s2:data_coverage"])
}

func TestReaders_MissingDocument(t *testing.T) {
	// Mock
	doc, err := Parse([]byte(mockSinergiseBundle))
	assert.Nil(t, err)

	// Tested code
	_, err = doc.Readers().SafeManifest("manifest.safe", nil)

	// Asserts
	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrMissingDocument))
}

func TestLoad_LocalFile(t *testing.T) {
	// Mock
	path := filepath.Join(t.TempDir(), "scene.json")
	assert.Nil(t, os.WriteFile(path, []byte(mockSinergiseBundle), 0644))

	// Tested code
	doc, err := Load(&util.BasicLogContext{}, path, nil)

	// Asserts
	assert.Nil(t, err)
	assert.NotNil(t, doc.GranuleMetadata)
}

func TestLoad_Modifier(t *testing.T) {
	// Mock
	path := filepath.Join(t.TempDir(), "scene.json")
	assert.Nil(t, os.WriteFile(path, []byte(mockSinergiseBundle), 0644))
	modified := ""
	modifier := func(href string) string {
		modified = href
		return path
	}

	// Tested code
	doc, err := Load(&util.BasicLogContext{}, "s3://bucket/scene.json", modifier)

	// Asserts
	assert.Nil(t, err)
	assert.NotNil(t, doc.TileInfo)
	assert.Equal(t, "s3://bucket/scene.json", modified)
}

func TestLoad_HTTP(t *testing.T) {
	// Mock
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte(mockSinergiseBundle))
	}))
	defer server.Close()

	// Tested code
	doc, err := Load(&util.BasicLogContext{}, server.URL+"/scene.json", nil)

	// Asserts
	assert.Nil(t, err)
	assert.NotNil(t, doc.GranuleMetadata)
}

func TestLoad_HTTPErrorStatus(t *testing.T) {
	// Mock
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		http.Error(writer, "no such scene", 404)
	}))
	defer server.Close()

	// Tested code
	_, err := Load(&util.BasicLogContext{}, server.URL+"/scene.json", nil)

	// Asserts
	assert.NotNil(t, err)
	var httpErr util.HTTPErr
	assert.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 404, httpErr.Status)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(&util.BasicLogContext{}, filepath.Join(t.TempDir(), "nope.json"), nil)
	assert.NotNil(t, err)
}

func TestCreateItemFromBundle(t *testing.T) {
	// Mock
	doc, err := Parse([]byte(mockSinergiseBundle))
	assert.Nil(t, err)

	// Tested code
	item, err := sentinel2.CreateItem(&sentinel2.Context{}, "s3://sentinel-s2-l2a/tiles/10/S/DG/2018/12/31/0", sentinel2.CreateItemOptions{
		Tolerance: 0.0001,
		Readers:   doc.Readers(),
	})

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, "S2A_OPER_MSI_L2A_TL_SGS__20181231T203421_A018422_T10SDG_N02.11", item.ID)
	assert.Equal(t, 32610, item.Properties["proj:epsg"])
	assert.Equal(t, "MGRS-10SDG", item.Properties["grid:code"])
	assert.InDelta(t, -123.0, item.Bbox[0], 1.1)
	_, ok := item.Asset("B02")
	assert.True(t, ok)
	_, ok = item.Asset("SCL")
	assert.True(t, ok)
}
