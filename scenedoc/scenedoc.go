// Package scenedoc loads pre-extracted Sentinel-2 scene metadata bundles.
// The upstream XML/JSON extractors are outside this module; their output is
// one JSON document of plain structures, which this package serves through
// the sentinel2 document reader contracts.
package scenedoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/m-mohr/stactools-sentinel2/model"
	"github.com/m-mohr/stactools-sentinel2/sentinel2"
	"github.com/m-mohr/stactools-sentinel2/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// ErrMissingDocument reports a bundle lacking a document the selected
// extraction path requires
var ErrMissingDocument = errors.New("missing required metadata document")

// Doc is a pre-extracted scene metadata bundle
type Doc struct {
	SafeManifest    *safeManifestJSON    `json:"safe_manifest,omitempty"`
	ProductMetadata *productMetadataJSON `json:"product_metadata,omitempty"`
	GranuleMetadata *granuleMetadataJSON `json:"granule_metadata,omitempty"`
	TileInfo        *tileInfoJSON        `json:"tile_info,omitempty"`
}

type safeManifestJSON struct {
	ProductMetadataHref   string `json:"product_metadata_href"`
	GranuleMetadataHref   string `json:"granule_metadata_href"`
	InspireMetadataHref   string `json:"inspire_metadata_href"`
	DatastripMetadataHref string `json:"datastrip_metadata_href"`
	ThumbnailHref         string `json:"thumbnail_href,omitempty"`
}

type productMetadataJSON struct {
	SceneID        string                 `json:"scene_id"`
	Geometry       json.RawMessage        `json:"geometry"`
	Bbox           []float64              `json:"bbox"`
	Datetime       string                 `json:"datetime"`
	Platform       string                 `json:"platform"`
	OrbitState     *string                `json:"orbit_state,omitempty"`
	RelativeOrbit  *int                   `json:"relative_orbit,omitempty"`
	ImageMediaType string                 `json:"image_media_type,omitempty"`
	ImagePaths     []string               `json:"image_paths"`
	Metadata       map[string]interface{} `json:"metadata"`
}

type granuleMetadataJSON struct {
	SceneID            string                 `json:"scene_id"`
	Platform           string                 `json:"platform"`
	EPSG               *int                   `json:"epsg"`
	ProjBbox           []float64              `json:"proj_bbox"`
	ResolutionToShape  map[string][2]int      `json:"resolution_to_shape"`
	CloudCover         *float64               `json:"cloud_cover,omitempty"`
	ProcessingBaseline string                 `json:"processing_baseline,omitempty"`
	Metadata           map[string]interface{} `json:"metadata"`
}

type tileInfoJSON struct {
	Geometry json.RawMessage        `json:"geometry"`
	Datetime string                 `json:"datetime"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Load reads and parses a bundle from a local path or http(s) href, applying
// the modifier before the read
func Load(ctx util.LogContext, href string, modify sentinel2.ReadHrefModifier) (*Doc, error) {
	readHref := href
	if modify != nil {
		readHref = modify(href)
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(readHref, "http://") || strings.HasPrefix(readHref, "https://") {
		response, httpErr := util.HTTPClient().Get(readHref)
		if httpErr != nil {
			return nil, util.LogSimpleErr(ctx, fmt.Sprintf("Failed to fetch scene document %v.", href), httpErr)
		}
		defer response.Body.Close()
		if response.StatusCode != 200 {
			body, _ := io.ReadAll(response.Body)
			fetchErr := util.Error{
				LogMsg:     fmt.Sprintf("Failed to fetch scene document %v: %v", href, response.Status),
				SimpleMsg:  fmt.Sprintf("Failed to fetch scene document %v: %v. ", href, response.Status),
				URL:        readHref,
				Response:   string(body),
				HTTPStatus: response.StatusCode,
			}
			return nil, fetchErr.Log(ctx, "scenedoc")
		}
		data, err = io.ReadAll(response.Body)
	} else {
		data, err = os.ReadFile(readHref)
	}
	if err != nil {
		return nil, util.LogSimpleErr(ctx, fmt.Sprintf("Failed to read scene document %v.", href), err)
	}

	return Parse(data)
}

// Parse parses a bundle from raw JSON
func Parse(data []byte) (*Doc, error) {
	doc := Doc{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not parse scene document: %w", err)
	}
	return &doc, nil
}

// Readers exposes the bundle through the sentinel2 document reader contracts.
// The bundle describes a single scene, so the hrefs the conversion composes
// are accepted as-is.
func (doc *Doc) Readers() sentinel2.DocumentReaders {
	return sentinel2.DocumentReaders{
		SafeManifest: func(href string, modify sentinel2.ReadHrefModifier) (*sentinel2.SafeManifestDoc, error) {
			if doc.SafeManifest == nil {
				return nil, fmt.Errorf("%w: safe_manifest (%s)", ErrMissingDocument, href)
			}
			return &sentinel2.SafeManifestDoc{
				ProductMetadataHref:   doc.SafeManifest.ProductMetadataHref,
				GranuleMetadataHref:   doc.SafeManifest.GranuleMetadataHref,
				InspireMetadataHref:   doc.SafeManifest.InspireMetadataHref,
				DatastripMetadataHref: doc.SafeManifest.DatastripMetadataHref,
				ThumbnailHref:         doc.SafeManifest.ThumbnailHref,
			}, nil
		},
		ProductMetadata: func(href string, modify sentinel2.ReadHrefModifier) (*sentinel2.ProductMetadataDoc, error) {
			if doc.ProductMetadata == nil {
				return nil, fmt.Errorf("%w: product_metadata (%s)", ErrMissingDocument, href)
			}
			return doc.ProductMetadata.toDoc()
		},
		GranuleMetadata: func(href string, modify sentinel2.ReadHrefModifier) (*sentinel2.GranuleMetadataDoc, error) {
			if doc.GranuleMetadata == nil {
				return nil, fmt.Errorf("%w: granule_metadata (%s)", ErrMissingDocument, href)
			}
			return doc.GranuleMetadata.toDoc()
		},
		TileInfo: func(href string, modify sentinel2.ReadHrefModifier) (*sentinel2.TileInfoDoc, error) {
			if doc.TileInfo == nil {
				return nil, fmt.Errorf("%w: tile_info (%s)", ErrMissingDocument, href)
			}
			return doc.TileInfo.toDoc()
		},
	}
}

func (p *productMetadataJSON) toDoc() (*sentinel2.ProductMetadataDoc, error) {
	geometry, err := parseGeometry(p.Geometry)
	if err != nil {
		return nil, err
	}
	datetime, err := model.ParseSceneTime(p.Datetime)
	if err != nil {
		return nil, err
	}
	return &sentinel2.ProductMetadataDoc{
		SceneID:        p.SceneID,
		Geometry:       geometry,
		Bbox:           p.Bbox,
		Datetime:       datetime,
		Platform:       p.Platform,
		OrbitState:     p.OrbitState,
		RelativeOrbit:  p.RelativeOrbit,
		ImageMediaType: model.MediaType(p.ImageMediaType),
		ImagePaths:     p.ImagePaths,
		Metadata:       p.Metadata,
	}, nil
}

func (g *granuleMetadataJSON) toDoc() (*sentinel2.GranuleMetadataDoc, error) {
	resolutionToShape := map[int][2]int{}
	for resolutionStr, shape := range g.ResolutionToShape {
		resolution, err := strconv.Atoi(resolutionStr)
		if err != nil {
			return nil, fmt.Errorf("bad resolution key %q in granule metadata: %w", resolutionStr, err)
		}
		resolutionToShape[resolution] = shape
	}
	return &sentinel2.GranuleMetadataDoc{
		SceneID:            g.SceneID,
		Platform:           g.Platform,
		EPSG:               g.EPSG,
		ProjBbox:           g.ProjBbox,
		ResolutionToShape:  resolutionToShape,
		CloudCover:         g.CloudCover,
		ProcessingBaseline: g.ProcessingBaseline,
		Metadata:           g.Metadata,
	}, nil
}

func (t *tileInfoJSON) toDoc() (*sentinel2.TileInfoDoc, error) {
	geometry, err := parseGeometry(t.Geometry)
	if err != nil {
		return nil, err
	}
	datetime, err := model.ParseSceneTime(t.Datetime)
	if err != nil {
		return nil, err
	}
	return &sentinel2.TileInfoDoc{
		Geometry: geometry,
		Datetime: datetime,
		Metadata: t.Metadata,
	}, nil
}

func parseGeometry(raw json.RawMessage) (interface{}, error) {
	if len(raw) == 0 {
		return nil, errors.New("missing geometry")
	}
	geometry, err := geojson.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("could not parse geometry: %w", err)
	}
	return geometry, nil
}
