package model

// Band describes a single spectral band of a sensor
type Band struct {
	Name             string  `json:"name"`
	CommonName       string  `json:"common_name,omitempty"`
	Description      string  `json:"description,omitempty"`
	CenterWavelength float64 `json:"center_wavelength,omitempty"`
	FullWidthHalfMax float64 `json:"full_width_half_max,omitempty"`
}

// Asset is a single downloadable image or metadata file belonging to an item.
// The projection fields are only set for georeferenced rasters; GSD is only
// set when the raster resolution matches the band's true ground sample
// distance.
type Asset struct {
	Href          string    `json:"href"`
	MediaType     MediaType `json:"type,omitempty"`
	Title         string    `json:"title,omitempty"`
	Roles         []string  `json:"roles,omitempty"`
	Bands         []Band    `json:"eo:bands,omitempty"`
	GSD           *float64  `json:"gsd,omitempty"`
	ProjShape     []int     `json:"proj:shape,omitempty"`
	ProjBbox      []float64 `json:"proj:bbox,omitempty"`
	ProjTransform []float64 `json:"proj:transform,omitempty"`
}

// Float64 returns a pointer to the given float64, for optional fields
func Float64(value float64) *float64 {
	return &value
}

// Int returns a pointer to the given int, for optional fields
func Int(value int) *int {
	return &value
}

// String returns a pointer to the given string, for optional fields
func String(value string) *string {
	return &value
}
