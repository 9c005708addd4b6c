package sentinel2

import (
	"fmt"
	"strings"
	"time"

	"github.com/m-mohr/stactools-sentinel2/geo"
	"github.com/m-mohr/stactools-sentinel2/model"
	"github.com/m-mohr/stactools-sentinel2/util"
)

// ReadHrefModifier rewrites an href before it is read, e.g. to append an
// auth token or sign a URL. It must be a pure function of the href.
type ReadHrefModifier func(href string) string

// SafeManifestDoc is the parsed content of a SAFE archive manifest, exposing
// the hrefs of the product's metadata documents
type SafeManifestDoc struct {
	ProductMetadataHref   string
	GranuleMetadataHref   string
	InspireMetadataHref   string
	DatastripMetadataHref string
	ThumbnailHref         string
}

// ProductMetadataDoc is the parsed content of a product metadata document
type ProductMetadataDoc struct {
	SceneID        string
	Geometry       interface{}
	Bbox           []float64
	Datetime       time.Time
	Platform       string
	OrbitState     *string
	RelativeOrbit  *int
	ImageMediaType model.MediaType
	ImagePaths     []string
	Metadata       map[string]interface{}
}

// GranuleMetadataDoc is the parsed content of a granule metadata document.
// EPSG is nil when the document does not resolve a projection; the assembler
// treats that as fatal.
type GranuleMetadataDoc struct {
	SceneID            string
	Platform           string
	EPSG               *int
	ProjBbox           []float64
	ResolutionToShape  map[int][2]int
	CloudCover         *float64
	ProcessingBaseline string
	Metadata           map[string]interface{}
}

// TileInfoDoc is the parsed content of a tileInfo.json document. Geometry is
// in the granule's native projection.
type TileInfoDoc struct {
	Geometry interface{}
	Datetime time.Time
	Metadata map[string]interface{}
}

// DocumentReaders supplies the upstream metadata extractors. Each reader
// fetches and parses one document kind; a missing required document is a
// fatal extraction error.
type DocumentReaders struct {
	SafeManifest    func(href string, modify ReadHrefModifier) (*SafeManifestDoc, error)
	ProductMetadata func(href string, modify ReadHrefModifier) (*ProductMetadataDoc, error)
	GranuleMetadata func(href string, modify ReadHrefModifier) (*GranuleMetadataDoc, error)
	TileInfo        func(href string, modify ReadHrefModifier) (*TileInfoDoc, error)
}

// ExtraAsset is one non-image asset together with its fixed key
type ExtraAsset struct {
	Key   string
	Asset *model.Asset
}

// Metadata is the extractor-agnostic scene record both extraction paths
// produce; it is built once and only consumed by the item assembler.
type Metadata struct {
	SceneID           string
	CloudCover        *float64
	Geometry          interface{}
	Bbox              []float64
	Datetime          time.Time
	Platform          string
	OrbitState        *string
	RelativeOrbit     *int
	MetadataMap       map[string]interface{}
	EPSG              *int
	ProjBbox          []float64
	ResolutionToShape map[int][2]int
	ImageMediaType    model.MediaType
	ImagePaths        []string
	ExtraAssets       []ExtraAsset
}

// JoinHref resolves a relative document or image path against a granule href
func JoinHref(base string, relative string) string {
	return strings.TrimSuffix(base, "/") + "/" + relative
}

// mergeMetadataMaps merges flat metadata mappings in order; values from later
// maps override earlier ones on key collision.
func mergeMetadataMaps(maps ...map[string]interface{}) map[string]interface{} {
	merged := map[string]interface{}{}
	for _, m := range maps {
		for key, value := range m {
			merged[key] = value
		}
	}
	return merged
}

func metadataAsset(href string, mediaType model.MediaType) *model.Asset {
	return &model.Asset{Href: href, MediaType: mediaType, Roles: []string{"metadata"}}
}

// metadataFromSafeManifest extracts scene metadata via the SAFE archive
// layout: manifest, product metadata and granule metadata documents.
func metadataFromSafeManifest(ctx *Context, granuleHref string, readers DocumentReaders, modify ReadHrefModifier) (*Metadata, error) {
	manifestHref := JoinHref(granuleHref, "manifest.safe")
	manifest, err := readers.SafeManifest(manifestHref, modify)
	if err != nil {
		return nil, util.LogSimpleErr(ctx, fmt.Sprintf("Failed to read SAFE manifest at %v.", manifestHref), err)
	}
	product, err := readers.ProductMetadata(manifest.ProductMetadataHref, modify)
	if err != nil {
		return nil, util.LogSimpleErr(ctx, fmt.Sprintf("Failed to read product metadata at %v.", manifest.ProductMetadataHref), err)
	}
	granule, err := readers.GranuleMetadata(manifest.GranuleMetadataHref, modify)
	if err != nil {
		return nil, util.LogSimpleErr(ctx, fmt.Sprintf("Failed to read granule metadata at %v.", manifest.GranuleMetadataHref), err)
	}

	extraAssets := []ExtraAsset{
		{SafeManifestAssetKey, metadataAsset(manifestHref, model.XML)},
		{ProductMetadataAssetKey, metadataAsset(manifest.ProductMetadataHref, model.XML)},
		{GranuleMetadataAssetKey, metadataAsset(manifest.GranuleMetadataHref, model.XML)},
		{InspireMetadataAssetKey, metadataAsset(manifest.InspireMetadataHref, model.XML)},
		{DatastripMetadataAssetKey, metadataAsset(manifest.DatastripMetadataHref, model.XML)},
	}
	if manifest.ThumbnailHref != "" {
		extraAssets = append(extraAssets, ExtraAsset{PreviewAssetKey, &model.Asset{
			Href:      manifest.ThumbnailHref,
			MediaType: model.COG,
			Roles:     []string{"thumbnail"},
		}})
	}

	return &Metadata{
		SceneID:           product.SceneID,
		CloudCover:        granule.CloudCover,
		Geometry:          product.Geometry,
		Bbox:              product.Bbox,
		Datetime:          product.Datetime,
		Platform:          product.Platform,
		OrbitState:        product.OrbitState,
		RelativeOrbit:     product.RelativeOrbit,
		MetadataMap:       mergeMetadataMaps(product.Metadata, granule.Metadata),
		EPSG:              granule.EPSG,
		ProjBbox:          granule.ProjBbox,
		ResolutionToShape: granule.ResolutionToShape,
		ImageMediaType:    product.ImageMediaType,
		ImagePaths:        product.ImagePaths,
		ExtraAssets:       extraAssets,
	}, nil
}

// metadataFromGranuleMetadata extracts scene metadata via the Sinergise flat
// tile layout: metadata.xml and tileInfo.json relative to the granule href.
// The footprint is reprojected from the granule's native projection to
// EPSG:4326 and simplified with the given tolerance.
func metadataFromGranuleMetadata(ctx *Context, granuleHref string, readers DocumentReaders, modify ReadHrefModifier, tolerance float64) (*Metadata, error) {
	granuleMetadataHref := JoinHref(granuleHref, "metadata.xml")
	tileInfoHref := JoinHref(granuleHref, "tileInfo.json")

	granule, err := readers.GranuleMetadata(granuleMetadataHref, modify)
	if err != nil {
		return nil, util.LogSimpleErr(ctx, fmt.Sprintf("Failed to read granule metadata at %v.", granuleMetadataHref), err)
	}
	tileInfo, err := readers.TileInfo(tileInfoHref, modify)
	if err != nil {
		return nil, util.LogSimpleErr(ctx, fmt.Sprintf("Failed to read tile info at %v.", tileInfoHref), err)
	}

	geometry := tileInfo.Geometry
	bbox := []float64(nil)
	if granule.EPSG != nil {
		nativeGeometry, err := geo.FromGeoJSON(tileInfo.Geometry)
		if err != nil {
			return nil, util.LogSimpleErr(ctx, "Tile info geometry is not usable.", err)
		}
		reprojected, err := geo.Reproject(*granule.EPSG, 4326, nativeGeometry)
		if err != nil {
			return nil, util.LogSimpleErr(ctx, fmt.Sprintf("Failed to reproject tile geometry from EPSG:%d.", *granule.EPSG), err)
		}
		simplified := geo.Simplify(reprojected, tolerance)
		bbox = geo.Bounds(simplified)
		if geometry, err = geo.ToGeoJSON(simplified); err != nil {
			return nil, util.LogSimpleErr(ctx, "Failed to convert simplified tile geometry.", err)
		}
	}

	imagePaths := L1CImagePaths
	if strings.Contains(granule.SceneID, "_L2A_") {
		imagePaths = L2AImagePaths
	}

	metadataMap := mergeMetadataMaps(granule.Metadata, tileInfo.Metadata)
	metadataMap[PropertyPrefix+":processing_baseline"] = granule.ProcessingBaseline

	return &Metadata{
		SceneID:           granule.SceneID,
		CloudCover:        granule.CloudCover,
		Geometry:          geometry,
		Bbox:              bbox,
		Datetime:          tileInfo.Datetime,
		Platform:          granule.Platform,
		MetadataMap:       metadataMap,
		EPSG:              granule.EPSG,
		ProjBbox:          granule.ProjBbox,
		ResolutionToShape: granule.ResolutionToShape,
		ImageMediaType:    model.JPEG2000,
		ImagePaths:        imagePaths,
		ExtraAssets: []ExtraAsset{
			{GranuleMetadataAssetKey, metadataAsset(granuleMetadataHref, model.XML)},
			{TileInfoMetadataAssetKey, metadataAsset(tileInfoHref, model.JSON)},
		},
	}, nil
}
