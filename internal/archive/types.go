// Package archive stores rendered swatch sheets in a single SQLite file.
package archive

import (
	"errors"
	"strconv"
)

// ErrNotFound is returned when a sheet is not in the archive.
var ErrNotFound = errors.New("sheet not found")

// Metadata describes how the sheets in an archive were produced.
type Metadata struct {
	Name           string
	Description    string
	Version        string
	Format         string // always "png" for sheets written by the CLI
	PNGCompression string
	Rows           int
	Columns        int
	CellSize       int
	HueStep        float64
	LightnessStep  float64
}

// ToMap flattens Metadata into name/value rows. Zero fields are omitted.
func (m Metadata) ToMap() map[string]string {
	result := make(map[string]string)

	put := func(key, value string) {
		if value != "" {
			result[key] = value
		}
	}
	putInt := func(key string, v int) {
		if v > 0 {
			result[key] = strconv.Itoa(v)
		}
	}
	putFloat := func(key string, v float64) {
		if v != 0 {
			result[key] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}

	put("name", m.Name)
	put("description", m.Description)
	put("version", m.Version)
	put("format", m.Format)
	put("png_compression", m.PNGCompression)
	putInt("rows", m.Rows)
	putInt("columns", m.Columns)
	putInt("cell_size", m.CellSize)
	putFloat("hue_step", m.HueStep)
	putFloat("lightness_step", m.LightnessStep)

	return result
}

// metadataFromMap is the inverse of ToMap. Unparsable numbers are left zero.
func metadataFromMap(values map[string]string) Metadata {
	atoi := func(key string) int {
		v, _ := strconv.Atoi(values[key])
		return v
	}
	atof := func(key string) float64 {
		v, _ := strconv.ParseFloat(values[key], 64)
		return v
	}

	return Metadata{
		Name:           values["name"],
		Description:    values["description"],
		Version:        values["version"],
		Format:         values["format"],
		PNGCompression: values["png_compression"],
		Rows:           atoi("rows"),
		Columns:        atoi("columns"),
		CellSize:       atoi("cell_size"),
		HueStep:        atof("hue_step"),
		LightnessStep:  atof("lightness_step"),
	}
}
