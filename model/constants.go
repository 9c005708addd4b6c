package model

// MediaType is an enum type for recognized asset media types
type MediaType string

// JPEG2000 corresponds to .JP2 imagery
const JPEG2000 MediaType = "image/jp2"

// GeoTIFF corresponds to .TIF files with geospatial info
const GeoTIFF MediaType = "image/tiff; application=geotiff"

// COG corresponds to cloud-optimized GeoTIFF files
const COG MediaType = "image/tiff; application=geotiff; profile=cloud-optimized"

// XML corresponds to XML metadata documents
const XML MediaType = "application/xml"

// JSON corresponds to JSON metadata documents
const JSON MediaType = "application/json"
