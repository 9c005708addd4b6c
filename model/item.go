package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

// StacVersion is the catalog schema version emitted for every item
const StacVersion = "1.0.0"

// ErrAssetKeyCollision reports two assets mapping to the same key. This is an
// invariant violation in the classification logic, not a data condition.
var ErrAssetKeyCollision = fmt.Errorf("asset key collision")

// Provider describes an organization that captured or processed the scene
type Provider struct {
	Name  string   `json:"name"`
	Roles []string `json:"roles,omitempty"`
	URL   string   `json:"url,omitempty"`
}

// Link relates an item to an external resource
type Link struct {
	Rel   string `json:"rel"`
	Href  string `json:"href"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
}

// Item is the standardized catalog record for one scene. Assets are keyed
// uniquely; key order is preserved from insertion.
type Item struct {
	ID             string
	Geometry       interface{}
	Bbox           []float64
	Datetime       time.Time
	Properties     map[string]interface{}
	StacExtensions []string
	Links          []Link

	assetKeys []string
	assets    map[string]*Asset
}

// NewItem creates an Item with the common fields set and the datetime
// rendered into the property mapping
func NewItem(id string, geometry interface{}, bbox []float64, datetime time.Time) *Item {
	item := &Item{
		ID:         id,
		Geometry:   geometry,
		Bbox:       bbox,
		Datetime:   datetime,
		Properties: map[string]interface{}{},
		assets:     map[string]*Asset{},
	}
	item.Properties["datetime"] = datetime.UTC().Format(StandardTimeLayout)
	return item
}

// AddAsset adds an asset under the given key, failing on key collision
func (item *Item) AddAsset(key string, asset *Asset) error {
	if _, exists := item.assets[key]; exists {
		return fmt.Errorf("%w: %s", ErrAssetKeyCollision, key)
	}
	item.assetKeys = append(item.assetKeys, key)
	item.assets[key] = asset
	return nil
}

// Asset returns the asset stored under key, if any
func (item *Item) Asset(key string) (*Asset, bool) {
	asset, ok := item.assets[key]
	return asset, ok
}

// AssetKeys returns all asset keys in insertion order
func (item *Item) AssetKeys() []string {
	keys := make([]string, len(item.assetKeys))
	copy(keys, item.assetKeys)
	return keys
}

// EnsureExtension records an extension schema URI on the item if not already present
func (item *Item) EnsureExtension(uri string) {
	for _, existing := range item.StacExtensions {
		if existing == uri {
			return
		}
	}
	item.StacExtensions = append(item.StacExtensions, uri)
}

type itemJSON struct {
	Type           string                 `json:"type"`
	StacVersion    string                 `json:"stac_version"`
	StacExtensions []string               `json:"stac_extensions,omitempty"`
	ID             string                 `json:"id"`
	Geometry       interface{}            `json:"geometry"`
	Bbox           []float64              `json:"bbox"`
	Properties     map[string]interface{} `json:"properties"`
	Links          []Link                 `json:"links"`
	Assets         orderedAssets          `json:"assets"`
}

// orderedAssets serializes the asset mapping in insertion order rather than
// the sorted key order encoding/json gives maps
type orderedAssets struct {
	keys   []string
	assets map[string]*Asset
}

func (a orderedAssets) MarshalJSON() ([]byte, error) {
	buffer := bytes.Buffer{}
	buffer.WriteByte('{')
	for i, key := range a.keys {
		if i > 0 {
			buffer.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		assetJSON, err := json.Marshal(a.assets[key])
		if err != nil {
			return nil, err
		}
		buffer.Write(keyJSON)
		buffer.WriteByte(':')
		buffer.Write(assetJSON)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// MarshalJSON renders the item as a GeoJSON feature following the externally
// defined catalog schema. Output is deterministic for identical inputs;
// assets appear in insertion order.
func (item *Item) MarshalJSON() ([]byte, error) {
	links := item.Links
	if links == nil {
		links = []Link{}
	}
	return json.Marshal(itemJSON{
		Type:           "Feature",
		StacVersion:    StacVersion,
		StacExtensions: item.StacExtensions,
		ID:             item.ID,
		Geometry:       item.Geometry,
		Bbox:           item.Bbox,
		Properties:     item.Properties,
		Links:          links,
		Assets:         orderedAssets{keys: item.assetKeys, assets: item.assets},
	})
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (item *Item) GeoJSONFeature() (*geojson.Feature, error) {
	properties := make(map[string]interface{}, len(item.Properties))
	for key, value := range item.Properties {
		properties[key] = value
	}
	feature := geojson.NewFeature(item.Geometry, item.ID, properties)
	feature.Bbox = geojson.BoundingBox(item.Bbox)
	return feature, nil
}
