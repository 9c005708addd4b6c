// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sentinel2

import "github.com/m-mohr/stactools-sentinel2/model"

// SentinelConstellation is the fixed constellation identifier for all scenes
const SentinelConstellation = "sentinel-2"

// SentinelInstruments is the fixed instrument list for all scenes
var SentinelInstruments = []string{"msi"}

// PropertyPrefix prefixes all Sentinel-2 domain property keys
const PropertyPrefix = "s2"

// Fixed keys for the non-image assets attached to every item
const (
	SafeManifestAssetKey       = "safe-manifest"
	ProductMetadataAssetKey    = "product-metadata"
	GranuleMetadataAssetKey    = "granule-metadata"
	InspireMetadataAssetKey    = "inspire-metadata"
	DatastripMetadataAssetKey  = "datastrip-metadata"
	TileInfoMetadataAssetKey   = "tileinfo-metadata"
	PreviewAssetKey            = "preview"
	defaultVisualResolution    = 10
	defaultAuxiliaryResolution = 20
)

// SentinelProvider is the default provider recorded on every item
var SentinelProvider = model.Provider{
	Name:  "ESA",
	Roles: []string{"producer", "processor", "licensor"},
	URL:   "https://earth.esa.int/web/guest/home",
}

// SentinelLicense is the fixed license link appended to every item
var SentinelLicense = model.Link{
	Rel:  "license",
	Href: "https://sentinel.esa.int/documents/247904/690755/Sentinel_Data_Legal_Notice",
}

// Extension schema URIs recorded on items using the respective property groups
const (
	eoExtensionSchema         = "https://stac-extensions.github.io/eo/v1.1.0/schema.json"
	satExtensionSchema        = "https://stac-extensions.github.io/sat/v1.0.0/schema.json"
	projectionExtensionSchema = "https://stac-extensions.github.io/projection/v1.1.0/schema.json"
	mgrsExtensionSchema       = "https://stac-extensions.github.io/mgrs/v1.0.0/schema.json"
	gridExtensionSchema       = "https://stac-extensions.github.io/grid/v1.1.0/schema.json"
	viewExtensionSchema       = "https://stac-extensions.github.io/view/v1.0.0/schema.json"
)

// SentinelBands catalogs the MSI spectral bands by band id
var SentinelBands = map[string]model.Band{
	"B01": {Name: "B01", CommonName: "coastal", Description: "Band 1 - Coastal aerosol", CenterWavelength: 0.443, FullWidthHalfMax: 0.027},
	"B02": {Name: "B02", CommonName: "blue", Description: "Band 2 - Blue", CenterWavelength: 0.49, FullWidthHalfMax: 0.098},
	"B03": {Name: "B03", CommonName: "green", Description: "Band 3 - Green", CenterWavelength: 0.56, FullWidthHalfMax: 0.045},
	"B04": {Name: "B04", CommonName: "red", Description: "Band 4 - Red", CenterWavelength: 0.665, FullWidthHalfMax: 0.038},
	"B05": {Name: "B05", CommonName: "rededge", Description: "Band 5 - Vegetation red edge 1", CenterWavelength: 0.704, FullWidthHalfMax: 0.019},
	"B06": {Name: "B06", CommonName: "rededge", Description: "Band 6 - Vegetation red edge 2", CenterWavelength: 0.74, FullWidthHalfMax: 0.018},
	"B07": {Name: "B07", CommonName: "rededge", Description: "Band 7 - Vegetation red edge 3", CenterWavelength: 0.783, FullWidthHalfMax: 0.028},
	"B08": {Name: "B08", CommonName: "nir", Description: "Band 8 - NIR", CenterWavelength: 0.842, FullWidthHalfMax: 0.145},
	"B8A": {Name: "B8A", CommonName: "nir08", Description: "Band 8A - Narrow NIR", CenterWavelength: 0.865, FullWidthHalfMax: 0.033},
	"B09": {Name: "B09", CommonName: "nir09", Description: "Band 9 - Water vapor", CenterWavelength: 0.945, FullWidthHalfMax: 0.026},
	"B10": {Name: "B10", CommonName: "cirrus", Description: "Band 10 - Cirrus", CenterWavelength: 1.3735, FullWidthHalfMax: 0.075},
	"B11": {Name: "B11", CommonName: "swir16", Description: "Band 11 - SWIR (1.6)", CenterWavelength: 1.61, FullWidthHalfMax: 0.143},
	"B12": {Name: "B12", CommonName: "swir22", Description: "Band 12 - SWIR (2.2)", CenterWavelength: 2.19, FullWidthHalfMax: 0.242},
}

// BandsToResolutions maps each band id to the resolutions it is distributed
// at; the first entry is the band's native resolution.
var BandsToResolutions = map[string][]int{
	"B01": {60},
	"B02": {10, 20, 60},
	"B03": {10, 20, 60},
	"B04": {10, 20, 60},
	"B05": {20, 60},
	"B06": {20, 60},
	"B07": {20, 60},
	"B08": {10},
	"B8A": {20, 60},
	"B09": {60},
	"B10": {60},
	"B11": {20, 60},
	"B12": {20, 60},
}

// L1CImagePaths is the canonical relative image layout of a Level-1C tile in
// the Sinergise flat layout
var L1CImagePaths = []string{
	"B01.jp2",
	"B02.jp2",
	"B03.jp2",
	"B04.jp2",
	"B05.jp2",
	"B06.jp2",
	"B07.jp2",
	"B08.jp2",
	"B8A.jp2",
	"B09.jp2",
	"B10.jp2",
	"B11.jp2",
	"B12.jp2",
	"TCI.jp2",
}

// L2AImagePaths is the canonical relative image layout of a Level-2A tile in
// the Sinergise flat layout
var L2AImagePaths = []string{
	"R10m/B02.jp2",
	"R10m/B03.jp2",
	"R10m/B04.jp2",
	"R10m/B08.jp2",
	"R10m/TCI.jp2",
	"R10m/AOT.jp2",
	"R10m/WVP.jp2",
	"R20m/B01.jp2",
	"R20m/B02.jp2",
	"R20m/B03.jp2",
	"R20m/B04.jp2",
	"R20m/B05.jp2",
	"R20m/B06.jp2",
	"R20m/B07.jp2",
	"R20m/B8A.jp2",
	"R20m/B11.jp2",
	"R20m/B12.jp2",
	"R20m/TCI.jp2",
	"R20m/AOT.jp2",
	"R20m/WVP.jp2",
	"R20m/SCL.jp2",
	"R60m/B01.jp2",
	"R60m/B02.jp2",
	"R60m/B03.jp2",
	"R60m/B04.jp2",
	"R60m/B05.jp2",
	"R60m/B06.jp2",
	"R60m/B07.jp2",
	"R60m/B8A.jp2",
	"R60m/B09.jp2",
	"R60m/B11.jp2",
	"R60m/B12.jp2",
	"R60m/TCI.jp2",
	"R60m/AOT.jp2",
	"R60m/WVP.jp2",
	"R60m/SCL.jp2",
	"qi/L2A_PVI.jp2",
}
