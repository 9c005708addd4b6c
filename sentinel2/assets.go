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

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/m-mohr/stactools-sentinel2/geo"
	"github.com/m-mohr/stactools-sentinel2/model"
)

// ErrUnexpectedAsset reports an image path matching no classification rule
var ErrUnexpectedAsset = errors.New("unexpected asset")

// ErrUnknownMediaType reports an image path whose media type cannot be
// derived and was not overridden
var ErrUnknownMediaType = errors.New("unknown asset media type")

var (
	bandPattern       = regexp.MustCompile(`[_/](B\w{2})`)
	bandIDPattern     = regexp.MustCompile(`[_/](B\d[A\d])`)
	tciPattern        = regexp.MustCompile(`[_/]TCI[_.]`)
	isTCIPattern      = regexp.MustCompile(`[_/]TCI`)
	aotPattern        = regexp.MustCompile(`[_/]AOT[_.]`)
	wvpPattern        = regexp.MustCompile(`[_/]WVP[_.]`)
	sclPattern        = regexp.MustCompile(`[_/]SCL[_.]`)
	resolutionPattern = regexp.MustCompile(`(\d{2})m`)
)

// assetInput carries everything one classification rule needs to build its
// asset descriptor
type assetInput struct {
	href              string
	mediaType         model.MediaType
	resolutionToShape map[int][2]int
	projBbox          []float64
}

// assetRule pairs a filename predicate with an asset builder. Rules are
// evaluated in a fixed order; the first match wins.
type assetRule struct {
	match func(href string) bool
	build func(input assetInput) (string, *model.Asset, error)
}

var assetRules = []assetRule{
	{matchPreview, buildPreviewAsset},
	{bandIDPattern.MatchString, buildBandAsset},
	{tciPattern.MatchString, buildVisualAsset},
	{aotPattern.MatchString, buildAerosolAsset},
	{wvpPattern.MatchString, buildWaterVaporAsset},
	{sclPattern.MatchString, buildClassificationAsset},
}

// ImageAssetFromHref classifies one image asset href and builds its unique
// key and fully populated descriptor
func ImageAssetFromHref(assetHref string, resolutionToShape map[int][2]int, projBbox []float64, mediaType model.MediaType) (string, *model.Asset, error) {
	assetMediaType, err := resolveMediaType(assetHref, mediaType)
	if err != nil {
		return "", nil, err
	}

	input := assetInput{
		href:              assetHref,
		mediaType:         assetMediaType,
		resolutionToShape: resolutionToShape,
		projBbox:          projBbox,
	}
	for _, rule := range assetRules {
		if rule.match(assetHref) {
			return rule.build(input)
		}
	}
	return "", nil, fmt.Errorf("%w: %s", ErrUnexpectedAsset, assetHref)
}

func resolveMediaType(assetHref string, override model.MediaType) (model.MediaType, error) {
	if override != "" {
		return override, nil
	}
	switch strings.ToLower(path.Ext(assetHref)) {
	case ".jp2":
		return model.JPEG2000, nil
	case ".tif", ".tiff":
		return model.GeoTIFF, nil
	default:
		return "", fmt.Errorf("%w: must supply a media type for asset %s", ErrUnknownMediaType, assetHref)
	}
}

// extractResolution parses an explicit resolution tag (10m/20m/60m style)
// out of an asset href
func extractResolution(assetHref string) (int, bool) {
	match := resolutionPattern.FindStringSubmatch(assetHref)
	if match == nil {
		return 0, false
	}
	resolution, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return resolution, true
}

// resolveResolution applies the resolution fallback order: explicit filename
// tag, the band's native resolution, then the true-color default.
func resolveResolution(assetHref string) (int, bool) {
	if resolution, ok := extractResolution(assetHref); ok {
		return resolution, true
	}
	if match := bandPattern.FindStringSubmatch(assetHref); match != nil {
		if resolutions, ok := BandsToResolutions[match[1]]; ok {
			return resolutions[0], true
		}
	}
	if isTCIPattern.MatchString(assetHref) {
		return defaultVisualResolution, true
	}
	return 0, false
}

// projectionInfo resolves the resolution, pixel shape and derived north-up
// transform for a georeferenced asset
func projectionInfo(input assetInput) (int, [2]int, []float64, error) {
	resolution, ok := resolveResolution(input.href)
	if !ok {
		return 0, [2]int{}, nil, fmt.Errorf("could not determine resolution of asset: %s", input.href)
	}
	shape, ok := input.resolutionToShape[resolution]
	if !ok {
		return 0, [2]int{}, nil, fmt.Errorf("no pixel shape known for resolution %dm of asset: %s", resolution, input.href)
	}
	return resolution, shape, geo.TransformFromBbox(input.projBbox, shape), nil
}

func applyProjection(asset *model.Asset, shape [2]int, projBbox []float64, transform []float64) {
	asset.ProjShape = []int{shape[0], shape[1]}
	asset.ProjBbox = projBbox
	asset.ProjTransform = transform
}

func trueColorBands() []model.Band {
	return []model.Band{SentinelBands["B04"], SentinelBands["B03"], SentinelBands["B02"]}
}

func matchPreview(href string) bool {
	return strings.Contains(href, "_PVI")
}

// buildPreviewAsset handles the true-color preview image; previews are not
// georeferenced rasters, so no projection metadata is attached.
func buildPreviewAsset(input assetInput) (string, *model.Asset, error) {
	return PreviewAssetKey, &model.Asset{
		Href:      input.href,
		MediaType: input.mediaType,
		Title:     "True color preview",
		Roles:     []string{"data"},
		Bands:     trueColorBands(),
	}, nil
}

func buildBandAsset(input assetInput) (string, *model.Asset, error) {
	resolution, shape, transform, err := projectionInfo(input)
	if err != nil {
		return "", nil, err
	}

	bandID := bandIDPattern.FindStringSubmatch(input.href)[1]
	assetResolution := resolution
	band, ok := SentinelBands[bandID]
	if !ok {
		// Level-1C scenes embed resolution-folder tokens that are not band
		// ids; recover the band from the filename stem and its native
		// resolution from the lookup table.
		stem := strings.TrimSuffix(path.Base(input.href), path.Ext(input.href))
		tokens := strings.Split(stem, "_")
		fallbackID := tokens[len(tokens)-1]
		if band, ok = SentinelBands[fallbackID]; !ok {
			return "", nil, fmt.Errorf("%w: unknown band id in %s", ErrUnexpectedAsset, input.href)
		}
		resolutions, ok := BandsToResolutions[bandID]
		if !ok {
			return "", nil, fmt.Errorf("%w: no native resolution for band token %s in %s", ErrUnexpectedAsset, bandID, input.href)
		}
		bandID = fallbackID
		assetResolution = resolutions[0]
	}

	// Rasters resampled away from the band's native ground sample distance
	// get a suffixed key and no GSD.
	nativeResolution := BandsToResolutions[bandID][0]
	asset := &model.Asset{
		Href:      input.href,
		MediaType: input.mediaType,
		Title:     fmt.Sprintf("%s - %dm", band.Description, assetResolution),
		Roles:     []string{"data"},
		Bands:     []model.Band{band},
	}
	key := bandID
	if assetResolution == nativeResolution {
		asset.GSD = model.Float64(float64(assetResolution))
	} else {
		key = fmt.Sprintf("%s_%dm", bandID, assetResolution)
	}
	applyProjection(asset, shape, input.projBbox, transform)
	return key, asset, nil
}

func buildVisualAsset(input assetInput) (string, *model.Asset, error) {
	_, shape, transform, err := projectionInfo(input)
	if err != nil {
		return "", nil, err
	}
	asset := &model.Asset{
		Href:      input.href,
		MediaType: input.mediaType,
		Title:     "True color image",
		Roles:     []string{"visual"},
		Bands:     trueColorBands(),
	}
	applyProjection(asset, shape, input.projBbox, transform)

	key := "visual"
	if resolution, ok := extractResolution(input.href); ok && resolution != defaultVisualResolution {
		key = fmt.Sprintf("visual_%dm", resolution)
	}
	return key, asset, nil
}

func buildAerosolAsset(input assetInput) (string, *model.Asset, error) {
	return buildAuxiliaryAsset(input, "AOT", "Aerosol optical thickness (AOT)")
}

func buildWaterVaporAsset(input assetInput) (string, *model.Asset, error) {
	return buildAuxiliaryAsset(input, "WVP", "Water vapour (WVP)")
}

func buildClassificationAsset(input assetInput) (string, *model.Asset, error) {
	return buildAuxiliaryAsset(input, "SCL", "Scene classification map (SCL)")
}

func buildAuxiliaryAsset(input assetInput, name string, title string) (string, *model.Asset, error) {
	_, shape, transform, err := projectionInfo(input)
	if err != nil {
		return "", nil, err
	}
	asset := &model.Asset{
		Href:      input.href,
		MediaType: input.mediaType,
		Title:     title,
		Roles:     []string{"data"},
	}
	applyProjection(asset, shape, input.projBbox, transform)
	return auxiliaryAssetKey(input.href, name), asset, nil
}

func auxiliaryAssetKey(assetHref string, name string) string {
	if resolution, ok := extractResolution(assetHref); ok && resolution != defaultAuxiliaryResolution {
		return fmt.Sprintf("%s_%dm", name, resolution)
	}
	return name
}
