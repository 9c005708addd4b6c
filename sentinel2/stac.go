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

// Package sentinel2 converts Sentinel-2 product metadata, from either a SAFE
// archive layout or a Sinergise flat tile layout, into one standardized
// catalog item describing the scene.
package sentinel2

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/m-mohr/stactools-sentinel2/model"
	"github.com/m-mohr/stactools-sentinel2/util"
)

// ErrMissingEPSG reports extracted metadata without a resolvable projection
var ErrMissingEPSG = errors.New("could not determine EPSG code")

// https://earth.esa.int/web/sentinel/user-guides/sentinel-2-msi/naming-convention
var mgrsPattern = regexp.MustCompile(`_T(\d{1,2})([CDEFGHJKLMNPQRSTUVWX])([ABCDEFGHJKLMNPQRSTUVWXYZ][ABCDEFGHJKLMNPQRSTUV])`)

// Context is the context for one item creation operation
type Context struct {
	sessionID string
}

// AppName returns the application name used in log entries
func (c *Context) AppName() string {
	return "stactools-sentinel2"
}

// SessionID returns a Session ID, creating one if needed
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = util.PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *Context) LogRootDir() string {
	return ""
}

// CreateItemOptions are the options for CreateItem
type CreateItemOptions struct {
	// Tolerance is the geometry simplification tolerance; it is only used by
	// the Sinergise flat tile layout
	Tolerance float64
	// AdditionalProviders are recorded after the fixed default provider
	AdditionalProviders []model.Provider
	// ReadHrefModifier, when set, rewrites every href before it is read
	ReadHrefModifier ReadHrefModifier
	// AssetHrefPrefix, when set, replaces the granule href as the base for
	// image asset hrefs; extra metadata assets keep the original base
	AssetHrefPrefix string
	// Readers supply the upstream metadata document extractors
	Readers DocumentReaders
}

// CreateItem converts one Sentinel-2 granule's metadata into a catalog item.
// A granule href ending in the SAFE archive suffix selects the SAFE manifest
// route; any other href selects the Sinergise granule+tileInfo route.
func CreateItem(ctx *Context, granuleHref string, options CreateItemOptions) (*model.Item, error) {
	var (
		metadata *Metadata
		err      error
	)
	if strings.HasSuffix(strings.ToLower(granuleHref), ".safe") {
		metadata, err = metadataFromSafeManifest(ctx, granuleHref, options.Readers, options.ReadHrefModifier)
	} else {
		metadata, err = metadataFromGranuleMetadata(ctx, granuleHref, options.Readers, options.ReadHrefModifier, options.Tolerance)
	}
	if err != nil {
		return nil, err
	}

	item := model.NewItem(metadata.SceneID, metadata.Geometry, metadata.Bbox, metadata.Datetime)

	// Common metadata
	providers := append([]model.Provider{SentinelProvider}, options.AdditionalProviders...)
	item.Properties["providers"] = providers
	item.Properties["platform"] = strings.ToLower(metadata.Platform)
	item.Properties["constellation"] = SentinelConstellation
	item.Properties["instruments"] = SentinelInstruments

	// Electro-optical properties
	item.EnsureExtension(eoExtensionSchema)
	if metadata.CloudCover != nil {
		item.Properties["eo:cloud_cover"] = *metadata.CloudCover
	}

	// Satellite orbit properties
	if metadata.OrbitState != nil || metadata.RelativeOrbit != nil {
		item.EnsureExtension(satExtensionSchema)
		if metadata.OrbitState != nil {
			item.Properties["sat:orbit_state"] = strings.ToLower(*metadata.OrbitState)
		}
		if metadata.RelativeOrbit != nil {
			item.Properties["sat:relative_orbit"] = *metadata.RelativeOrbit
		}
	}

	// Projection; a scene without a resolvable EPSG code is unusable
	item.EnsureExtension(projectionExtensionSchema)
	if metadata.EPSG == nil {
		return nil, util.LogSimpleErr(ctx, fmt.Sprintf("No EPSG code for %v.", granuleHref), ErrMissingEPSG)
	}
	item.Properties["proj:epsg"] = *metadata.EPSG

	// MGRS and grid properties, parsed from the scene id. Older scene ids
	// lack the tile designator; that only costs the grid properties.
	if match := mgrsPattern.FindStringSubmatch(metadata.SceneID); match != nil {
		utmZone, _ := strconv.Atoi(match[1])
		item.EnsureExtension(mgrsExtensionSchema)
		item.Properties["mgrs:utm_zone"] = utmZone
		item.Properties["mgrs:latitude_band"] = match[2]
		item.Properties["mgrs:grid_square"] = match[3]
		item.EnsureExtension(gridExtensionSchema)
		item.Properties["grid:code"] = fmt.Sprintf("MGRS-%d%s%s", utmZone, match[2], match[3])
	} else {
		util.LogAlert(ctx, fmt.Sprintf("Error populating MGRS and grid fields from ID: %v", metadata.SceneID))
	}

	// View geometry from the mean solar angles
	item.EnsureExtension(viewExtensionSchema)
	if azimuth, ok := metadataFloat(metadata.MetadataMap, PropertyPrefix+":mean_solar_azimuth"); ok {
		item.Properties["view:sun_azimuth"] = azimuth
	}
	if zenith, ok := metadataFloat(metadata.MetadataMap, PropertyPrefix+":mean_solar_zenith"); ok {
		item.Properties["view:sun_elevation"] = 90 - zenith
	}

	// Domain properties
	for key, value := range metadata.MetadataMap {
		item.Properties[key] = value
	}

	// Assets
	assetBase := granuleHref
	if options.AssetHrefPrefix != "" {
		assetBase = options.AssetHrefPrefix
	}
	for _, imagePath := range metadata.ImagePaths {
		key, asset, err := ImageAssetFromHref(JoinHref(assetBase, imagePath), metadata.ResolutionToShape, metadata.ProjBbox, metadata.ImageMediaType)
		if err != nil {
			return nil, util.LogSimpleErr(ctx, fmt.Sprintf("Failed to classify image asset %v.", imagePath), err)
		}
		if err = item.AddAsset(key, asset); err != nil {
			return nil, util.LogSimpleErr(ctx, fmt.Sprintf("Invariant violation while adding image asset %v.", imagePath), err)
		}
	}
	for _, extra := range metadata.ExtraAssets {
		if err = item.AddAsset(extra.Key, extra.Asset); err != nil {
			return nil, util.LogSimpleErr(ctx, fmt.Sprintf("Invariant violation while adding extra asset %v.", extra.Key), err)
		}
	}

	item.Links = append(item.Links, SentinelLicense)

	return item, nil
}

// metadataFloat reads a float-valued key out of a free-form metadata mapping
func metadataFloat(metadataMap map[string]interface{}, key string) (float64, bool) {
	switch value := metadataMap[key].(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	default:
		return 0, false
	}
}
